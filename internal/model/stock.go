package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type StockItem struct {
	StockItemID   uint            `gorm:"column:stock_item_id;primaryKey"`
	ItemType      ItemCategory    `gorm:"column:item_type;size:30;not null"`
	Name          string          `gorm:"column:name;size:150;not null"`
	SKU           string          `gorm:"column:sku;size:50;not null;uniqueIndex"`
	UnitOfMeasure StockUnit       `gorm:"column:unit_of_measure;size:10;not null;default:PCS"`
	CostPrice     decimal.Decimal `gorm:"column:cost_price;type:decimal(10,2);not null"`
	ReorderLevel  decimal.Decimal `gorm:"column:reorder_level;type:decimal(10,2);not null"`
	IsStocked     bool            `gorm:"column:is_stocked;not null;default:true"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	StockLevel    *StockLevel     `gorm:"foreignKey:StockItemID;references:StockItemID"`
}

func (StockItem) TableName() string {
	return "stock_items"
}

// StockLevel shares its primary key with the stock item
type StockLevel struct {
	StockItemID uint            `gorm:"column:stock_item_id;primaryKey;autoIncrement:false"`
	Quantity    decimal.Decimal `gorm:"column:quantity;type:decimal(10,3);not null"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (StockLevel) TableName() string {
	return "stock_levels"
}
