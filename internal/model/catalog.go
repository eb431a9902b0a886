package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	CategoryID uint   `gorm:"column:category_id;primaryKey"`
	Name       string `gorm:"column:name;size:100;not null;uniqueIndex"`
}

func (Category) TableName() string {
	return "categories"
}

// Dress is a catalog product. Deletion only clears IsActive.
type Dress struct {
	DressID            uint             `gorm:"column:dress_id;primaryKey"`
	CategoryID         uint             `gorm:"column:category_id;not null;index"`
	Category           *Category        `gorm:"foreignKey:CategoryID;references:CategoryID"`
	Name               string           `gorm:"column:name;size:150;not null"`
	Description        string           `gorm:"column:description;type:text"`
	BaseRentalPrice    *decimal.Decimal `gorm:"column:base_rental_price;type:decimal(10,2)"`
	BaseSalePrice      *decimal.Decimal `gorm:"column:base_sale_price;type:decimal(10,2)"`
	AvailableForSale   bool             `gorm:"column:available_for_sale;not null"`
	AvailableForRental bool             `gorm:"column:available_for_rental;not null"`
	IsActive           bool             `gorm:"column:is_active;not null;default:true;index"`
	OrderCount         int              `gorm:"column:order_count;not null;default:0"`
	CreatedAt          time.Time        `gorm:"column:created_at;autoCreateTime"`
	Variants           []DressVariant   `gorm:"foreignKey:DressID;references:DressID"`
	Images             []DressImage     `gorm:"foreignKey:DressID;references:DressID"`
}

func (Dress) TableName() string {
	return "dresses"
}

// DressVariant is a size/color combination backed by one stock item
type DressVariant struct {
	VariantID   uint          `gorm:"column:variant_id;primaryKey"`
	DressID     uint          `gorm:"column:dress_id;not null;uniqueIndex:uq_variant_dress_size_color,priority:1"`
	StockItemID uint          `gorm:"column:stock_item_id;not null"`
	StockItem   *StockItem    `gorm:"foreignKey:StockItemID;references:StockItemID"`
	Size        string        `gorm:"column:size;size:20;not null;uniqueIndex:uq_variant_dress_size_color,priority:2"`
	Color       string        `gorm:"column:color;size:50;not null;uniqueIndex:uq_variant_dress_size_color,priority:3"`
	Status      VariantStatus `gorm:"column:status;size:20;not null;default:ACTIVE"`
}

func (DressVariant) TableName() string {
	return "dress_variants"
}

// InStock is true for an active variant with positive stock
func (v *DressVariant) InStock() bool {
	if v.Status != VariantActive || v.StockItem == nil || v.StockItem.StockLevel == nil {
		return false
	}
	return v.StockItem.StockLevel.Quantity.IsPositive()
}

// AvailableForRental is true while the variant is not retired or rented out
func (v *DressVariant) AvailableForRental() bool {
	return v.Status == VariantActive
}

type DressImage struct {
	ImageID      uint   `gorm:"column:image_id;primaryKey"`
	DressID      uint   `gorm:"column:dress_id;not null;index"`
	URL          string `gorm:"column:url;size:500;not null"`
	DisplayOrder int    `gorm:"column:display_order;not null;default:0"`
}

func (DressImage) TableName() string {
	return "dress_images"
}
