package model

import "time"

// Order is read only here, to decide which employee handles which customer.
type Order struct {
	OrderID             uint      `gorm:"column:order_id;primaryKey"`
	CustomerID          uint      `gorm:"column:customer_id;not null;index"`
	HandledByEmployeeID *uint     `gorm:"column:handled_by_employee_id;index"`
	OrderStatus         string    `gorm:"column:order_status;size:30;not null"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Order) TableName() string {
	return "orders"
}
