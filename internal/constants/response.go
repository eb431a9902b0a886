package constants

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Standard Response Field Keys
const (
	ResponseFieldMessage = "message"
	ResponseFieldCode    = "code"
	ResponseFieldDetails = "details"
	ResponseFieldError   = "error"
	ResponseFieldURL     = "url"
)

// PaginationParams holds a zero-based page request
type PaginationParams struct {
	Page   int
	Size   int
	Offset int
}

// ParsePaginationParams parses page and size query parameters.
// Pages are zero-based; size is clamped to [MinSize, MaxSize].
func ParsePaginationParams(c *gin.Context) PaginationParams {
	page, err := strconv.Atoi(c.DefaultQuery(QueryParamPage, DefaultPage))
	if err != nil || page < MinPage {
		page = MinPage
	}

	size, err := strconv.Atoi(c.DefaultQuery(QueryParamSize, DefaultSize))
	if err != nil {
		size, _ = strconv.Atoi(DefaultSize)
	}
	if size < MinSize {
		size = MinSize
	}
	if size > MaxSize {
		size = MaxSize
	}

	return PaginationParams{
		Page:   page,
		Size:   size,
		Offset: page * size,
	}
}

// TotalPages returns the number of pages needed for total items
func TotalPages(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

// Response Format Functions
func BuildErrorResponse(message string, details any) map[string]any {
	response := map[string]any{
		ResponseFieldMessage: message,
	}

	if details != nil {
		response[ResponseFieldDetails] = details
	}

	return response
}

func BuildErrorResponseWithCode(code, message string, details any) map[string]any {
	response := BuildErrorResponse(message, details)
	if code != "" {
		response[ResponseFieldCode] = code
	}
	return response
}

// BuildUploadErrorResponse matches the upload endpoint's {error} shape
func BuildUploadErrorResponse(message string) map[string]any {
	return map[string]any{
		ResponseFieldError: message,
	}
}

func BuildUploadResponse(url, message string) map[string]any {
	return map[string]any{
		ResponseFieldURL:     url,
		ResponseFieldMessage: message,
	}
}
