package constants

// Pagination Query Parameters
const (
	QueryParamPage   = "page"
	QueryParamSize   = "size"
	QueryParamSearch = "search"
	QueryParamSortBy = "sortBy"
)

// Default Pagination Values (as strings for query parsing)
const (
	DefaultPage = "0"
	DefaultSize = "20"
)

// Pagination Limits
const (
	MinPage = 0
	MinSize = 1
	MaxSize = 100
)
