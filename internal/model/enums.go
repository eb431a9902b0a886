package model

// Role is the closed set of account roles
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
	RoleCustomer Role = "CUSTOMER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleCustomer:
		return true
	}
	return false
}

type OAuthProvider string

const (
	ProviderEmail  OAuthProvider = "EMAIL"
	ProviderGoogle OAuthProvider = "GOOGLE"
)

type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "FULL_TIME"
	EmploymentPartTime EmploymentType = "PART_TIME"
	EmploymentContract EmploymentType = "CONTRACT"
)

type SalaryType string

const (
	SalaryMonthly SalaryType = "MONTHLY"
	SalaryHourly  SalaryType = "HOURLY"
	SalaryDaily   SalaryType = "DAILY"
)

type VariantStatus string

const (
	VariantActive    VariantStatus = "ACTIVE"
	VariantRetired   VariantStatus = "RETIRED"
	VariantRentedOut VariantStatus = "RENTED_OUT"
)

type ItemCategory string

const (
	ItemDressVariant ItemCategory = "DRESS_VARIANT"
	ItemConsumable   ItemCategory = "CONSUMABLE"
	ItemSparePart    ItemCategory = "SPARE_PART"
	ItemMachine      ItemCategory = "MACHINE"
	ItemService      ItemCategory = "SERVICE"
)

type StockUnit string

const (
	UnitPieces StockUnit = "PCS"
	UnitMeter  StockUnit = "METER"
	UnitRoll   StockUnit = "ROLL"
	UnitPair   StockUnit = "PAIR"
	UnitHour   StockUnit = "HOUR"
)

// OrderStatusCancelled is the only order status this service interprets
const OrderStatusCancelled = "CANCELLED"

// SortBy selects the catalog ordering
type SortBy string

const (
	SortPriceLowToHigh SortBy = "PRICE_LOW_TO_HIGH"
	SortPriceHighToLow SortBy = "PRICE_HIGH_TO_LOW"
	SortPopularity     SortBy = "POPULARITY"
	SortNewest         SortBy = "NEWEST"
)

func (s SortBy) Valid() bool {
	switch s {
	case SortPriceLowToHigh, SortPriceHighToLow, SortPopularity, SortNewest:
		return true
	}
	return false
}
