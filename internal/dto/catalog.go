package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/model"
)

type CategoryRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

type CategoryResponse struct {
	CategoryID uint   `json:"categoryId"`
	Name       string `json:"name"`
	DressCount int64  `json:"dressCount"`
}

type DressRequest struct {
	CategoryID         uint             `json:"categoryId" binding:"required"`
	Name               string           `json:"name" binding:"required,min=2,max=150"`
	Description        string           `json:"description" binding:"max=2000"`
	BaseSalePrice      *decimal.Decimal `json:"baseSalePrice" binding:"omitempty,gte=0"`
	BaseRentalPrice    *decimal.Decimal `json:"baseRentalPrice" binding:"omitempty,gte=0"`
	AvailableForSale   *bool            `json:"availableForSale"`
	AvailableForRental *bool            `json:"availableForRental"`
}

type DressVariantRequest struct {
	Size  string `json:"size" binding:"required,max=20"`
	Color string `json:"color" binding:"required,max=50"`
	SKU   string `json:"sku" binding:"required,max=50"`
}

type DressImageRequest struct {
	URL          string `json:"url" binding:"required,max=500"`
	DisplayOrder int    `json:"displayOrder"`
}

// CatalogFilter is the parsed browse query. Page is 0-based.
type CatalogFilter struct {
	CategoryID         *uint
	Colors             []string
	Sizes              []string
	MinPrice           *decimal.Decimal
	MaxPrice           *decimal.Decimal
	AvailableForSale   *bool
	AvailableForRental *bool
	Search             string
	SortBy             model.SortBy
	Page               int
	Size               int
}

type DressResponse struct {
	DressID            uint                   `json:"dressId"`
	CategoryID         uint                   `json:"categoryId"`
	CategoryName       string                 `json:"categoryName,omitempty"`
	Name               string                 `json:"name"`
	Description        string                 `json:"description,omitempty"`
	BaseSalePrice      *decimal.Decimal       `json:"baseSalePrice,omitempty"`
	BaseRentalPrice    *decimal.Decimal       `json:"baseRentalPrice,omitempty"`
	AvailableForSale   bool                   `json:"availableForSale"`
	AvailableForRental bool                   `json:"availableForRental"`
	OrderCount         int                    `json:"orderCount"`
	CreatedAt          time.Time              `json:"createdAt"`
	Variants           []DressVariantResponse `json:"variants,omitempty"`
	Images             []DressImageResponse   `json:"images,omitempty"`
	HasAvailableStock  bool                   `json:"hasAvailableStock"`
	AvailableSizes     []string               `json:"availableSizes,omitempty"`
	AvailableColors    []string               `json:"availableColors,omitempty"`
}

type DressVariantResponse struct {
	VariantID          uint                `json:"variantId"`
	StockItemID        uint                `json:"stockItemId"`
	Size               string              `json:"size"`
	Color              string              `json:"color"`
	Status             model.VariantStatus `json:"status"`
	InStock            bool                `json:"inStock"`
	AvailableForRental bool                `json:"availableForRental"`
}

func NewDressVariantResponse(v *model.DressVariant) DressVariantResponse {
	return DressVariantResponse{
		VariantID:          v.VariantID,
		StockItemID:        v.StockItemID,
		Size:               v.Size,
		Color:              v.Color,
		Status:             v.Status,
		InStock:            v.InStock(),
		AvailableForRental: v.AvailableForRental(),
	}
}

type DressImageResponse struct {
	ImageID      uint   `json:"imageId"`
	URL          string `json:"url"`
	DisplayOrder int    `json:"displayOrder"`
}

func NewDressImageResponse(img *model.DressImage) DressImageResponse {
	return DressImageResponse{
		ImageID:      img.ImageID,
		URL:          img.URL,
		DisplayOrder: img.DisplayOrder,
	}
}

type DressPageResponse struct {
	Dresses     []DressResponse `json:"dresses"`
	CurrentPage int             `json:"currentPage"`
	TotalPages  int             `json:"totalPages"`
	TotalItems  int64           `json:"totalItems"`
	PageSize    int             `json:"pageSize"`
}

type UploadResponse struct {
	URL     string `json:"url"`
	Message string `json:"message"`
}
