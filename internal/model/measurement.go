package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerMeasurement is one snapshot of a customer's body measurements in cm.
// Rows are never updated in place; at most one row per customer is active.
type CustomerMeasurement struct {
	MeasurementID    uint  `gorm:"column:measurement_id;primaryKey"`
	CustomerID       uint  `gorm:"column:customer_id;not null;index"`
	Customer         *User `gorm:"foreignKey:CustomerID;references:UserID"`
	RecordedByUserID *uint `gorm:"column:recorded_by_user_id"`
	RecordedBy       *User `gorm:"foreignKey:RecordedByUserID;references:UserID"`

	HeightWithShoes     *decimal.Decimal `gorm:"column:height_with_shoes;type:decimal(5,2)"`
	HollowToHem         *decimal.Decimal `gorm:"column:hollow_to_hem;type:decimal(5,2)"`
	FullBust            *decimal.Decimal `gorm:"column:full_bust;type:decimal(5,2)"`
	UnderBust           *decimal.Decimal `gorm:"column:under_bust;type:decimal(5,2)"`
	NaturalWaist        *decimal.Decimal `gorm:"column:natural_waist;type:decimal(5,2)"`
	FullHip             *decimal.Decimal `gorm:"column:full_hip;type:decimal(5,2)"`
	ShoulderWidth       *decimal.Decimal `gorm:"column:shoulder_width;type:decimal(5,2)"`
	TorsoLength         *decimal.Decimal `gorm:"column:torso_length;type:decimal(5,2)"`
	ThighCircumference  *decimal.Decimal `gorm:"column:thigh_circumference;type:decimal(5,2)"`
	WaistToKnee         *decimal.Decimal `gorm:"column:waist_to_knee;type:decimal(5,2)"`
	WaistToFloor        *decimal.Decimal `gorm:"column:waist_to_floor;type:decimal(5,2)"`
	Armhole             *decimal.Decimal `gorm:"column:armhole;type:decimal(5,2)"`
	BicepCircumference  *decimal.Decimal `gorm:"column:bicep_circumference;type:decimal(5,2)"`
	ElbowCircumference  *decimal.Decimal `gorm:"column:elbow_circumference;type:decimal(5,2)"`
	WristCircumference  *decimal.Decimal `gorm:"column:wrist_circumference;type:decimal(5,2)"`
	SleeveLength        *decimal.Decimal `gorm:"column:sleeve_length;type:decimal(5,2)"`
	UpperBust           *decimal.Decimal `gorm:"column:upper_bust;type:decimal(5,2)"`
	BustApexDistance    *decimal.Decimal `gorm:"column:bust_apex_distance;type:decimal(5,2)"`
	ShoulderToBustPoint *decimal.Decimal `gorm:"column:shoulder_to_bust_point;type:decimal(5,2)"`
	NeckCircumference   *decimal.Decimal `gorm:"column:neck_circumference;type:decimal(5,2)"`
	TrainLength         *decimal.Decimal `gorm:"column:train_length;type:decimal(5,2)"`

	Notes     string    `gorm:"column:notes;type:text"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (CustomerMeasurement) TableName() string {
	return "customer_measurements"
}
