package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/model"
)

// MeasurementRequest records a new snapshot. Omitted fields were not measured.
type MeasurementRequest struct {
	CustomerID uint `json:"customerId" binding:"required"`

	HeightWithShoes     *decimal.Decimal `json:"heightWithShoes" binding:"omitempty,gte=0"`
	HollowToHem         *decimal.Decimal `json:"hollowToHem" binding:"omitempty,gte=0"`
	FullBust            *decimal.Decimal `json:"fullBust" binding:"omitempty,gte=0"`
	UnderBust           *decimal.Decimal `json:"underBust" binding:"omitempty,gte=0"`
	NaturalWaist        *decimal.Decimal `json:"naturalWaist" binding:"omitempty,gte=0"`
	FullHip             *decimal.Decimal `json:"fullHip" binding:"omitempty,gte=0"`
	ShoulderWidth       *decimal.Decimal `json:"shoulderWidth" binding:"omitempty,gte=0"`
	TorsoLength         *decimal.Decimal `json:"torsoLength" binding:"omitempty,gte=0"`
	ThighCircumference  *decimal.Decimal `json:"thighCircumference" binding:"omitempty,gte=0"`
	WaistToKnee         *decimal.Decimal `json:"waistToKnee" binding:"omitempty,gte=0"`
	WaistToFloor        *decimal.Decimal `json:"waistToFloor" binding:"omitempty,gte=0"`
	Armhole             *decimal.Decimal `json:"armhole" binding:"omitempty,gte=0"`
	BicepCircumference  *decimal.Decimal `json:"bicepCircumference" binding:"omitempty,gte=0"`
	ElbowCircumference  *decimal.Decimal `json:"elbowCircumference" binding:"omitempty,gte=0"`
	WristCircumference  *decimal.Decimal `json:"wristCircumference" binding:"omitempty,gte=0"`
	SleeveLength        *decimal.Decimal `json:"sleeveLength" binding:"omitempty,gte=0"`
	UpperBust           *decimal.Decimal `json:"upperBust" binding:"omitempty,gte=0"`
	BustApexDistance    *decimal.Decimal `json:"bustApexDistance" binding:"omitempty,gte=0"`
	ShoulderToBustPoint *decimal.Decimal `json:"shoulderToBustPoint" binding:"omitempty,gte=0"`
	NeckCircumference   *decimal.Decimal `json:"neckCircumference" binding:"omitempty,gte=0"`
	TrainLength         *decimal.Decimal `json:"trainLength" binding:"omitempty,gte=0"`

	Notes string `json:"notes" binding:"max=2000"`
}

// ToModel builds an active measurement row recorded by recordedBy
func (r *MeasurementRequest) ToModel(recordedBy uint) *model.CustomerMeasurement {
	return &model.CustomerMeasurement{
		CustomerID:          r.CustomerID,
		RecordedByUserID:    &recordedBy,
		HeightWithShoes:     r.HeightWithShoes,
		HollowToHem:         r.HollowToHem,
		FullBust:            r.FullBust,
		UnderBust:           r.UnderBust,
		NaturalWaist:        r.NaturalWaist,
		FullHip:             r.FullHip,
		ShoulderWidth:       r.ShoulderWidth,
		TorsoLength:         r.TorsoLength,
		ThighCircumference:  r.ThighCircumference,
		WaistToKnee:         r.WaistToKnee,
		WaistToFloor:        r.WaistToFloor,
		Armhole:             r.Armhole,
		BicepCircumference:  r.BicepCircumference,
		ElbowCircumference:  r.ElbowCircumference,
		WristCircumference:  r.WristCircumference,
		SleeveLength:        r.SleeveLength,
		UpperBust:           r.UpperBust,
		BustApexDistance:    r.BustApexDistance,
		ShoulderToBustPoint: r.ShoulderToBustPoint,
		NeckCircumference:   r.NeckCircumference,
		TrainLength:         r.TrainLength,
		Notes:               r.Notes,
		IsActive:            true,
	}
}

type MeasurementResponse struct {
	MeasurementID    uint   `json:"measurementId"`
	CustomerID       uint   `json:"customerId"`
	CustomerName     string `json:"customerName,omitempty"`
	RecordedByUserID *uint  `json:"recordedByUserId,omitempty"`
	RecordedByName   string `json:"recordedByName,omitempty"`

	HeightWithShoes     *decimal.Decimal `json:"heightWithShoes,omitempty"`
	HollowToHem         *decimal.Decimal `json:"hollowToHem,omitempty"`
	FullBust            *decimal.Decimal `json:"fullBust,omitempty"`
	UnderBust           *decimal.Decimal `json:"underBust,omitempty"`
	NaturalWaist        *decimal.Decimal `json:"naturalWaist,omitempty"`
	FullHip             *decimal.Decimal `json:"fullHip,omitempty"`
	ShoulderWidth       *decimal.Decimal `json:"shoulderWidth,omitempty"`
	TorsoLength         *decimal.Decimal `json:"torsoLength,omitempty"`
	ThighCircumference  *decimal.Decimal `json:"thighCircumference,omitempty"`
	WaistToKnee         *decimal.Decimal `json:"waistToKnee,omitempty"`
	WaistToFloor        *decimal.Decimal `json:"waistToFloor,omitempty"`
	Armhole             *decimal.Decimal `json:"armhole,omitempty"`
	BicepCircumference  *decimal.Decimal `json:"bicepCircumference,omitempty"`
	ElbowCircumference  *decimal.Decimal `json:"elbowCircumference,omitempty"`
	WristCircumference  *decimal.Decimal `json:"wristCircumference,omitempty"`
	SleeveLength        *decimal.Decimal `json:"sleeveLength,omitempty"`
	UpperBust           *decimal.Decimal `json:"upperBust,omitempty"`
	BustApexDistance    *decimal.Decimal `json:"bustApexDistance,omitempty"`
	ShoulderToBustPoint *decimal.Decimal `json:"shoulderToBustPoint,omitempty"`
	NeckCircumference   *decimal.Decimal `json:"neckCircumference,omitempty"`
	TrainLength         *decimal.Decimal `json:"trainLength,omitempty"`

	Notes     string    `json:"notes,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewMeasurementResponse(m *model.CustomerMeasurement) *MeasurementResponse {
	resp := &MeasurementResponse{
		MeasurementID:       m.MeasurementID,
		CustomerID:          m.CustomerID,
		RecordedByUserID:    m.RecordedByUserID,
		HeightWithShoes:     m.HeightWithShoes,
		HollowToHem:         m.HollowToHem,
		FullBust:            m.FullBust,
		UnderBust:           m.UnderBust,
		NaturalWaist:        m.NaturalWaist,
		FullHip:             m.FullHip,
		ShoulderWidth:       m.ShoulderWidth,
		TorsoLength:         m.TorsoLength,
		ThighCircumference:  m.ThighCircumference,
		WaistToKnee:         m.WaistToKnee,
		WaistToFloor:        m.WaistToFloor,
		Armhole:             m.Armhole,
		BicepCircumference:  m.BicepCircumference,
		ElbowCircumference:  m.ElbowCircumference,
		WristCircumference:  m.WristCircumference,
		SleeveLength:        m.SleeveLength,
		UpperBust:           m.UpperBust,
		BustApexDistance:    m.BustApexDistance,
		ShoulderToBustPoint: m.ShoulderToBustPoint,
		NeckCircumference:   m.NeckCircumference,
		TrainLength:         m.TrainLength,
		Notes:               m.Notes,
		IsActive:            m.IsActive,
		CreatedAt:           m.CreatedAt,
	}
	if m.Customer != nil {
		resp.CustomerName = m.Customer.FullName
	}
	if m.RecordedBy != nil {
		resp.RecordedByName = m.RecordedBy.FullName
	}
	return resp
}

type CustomerProfileResponse struct {
	UserID            uint                 `json:"userId"`
	FullName          string               `json:"fullName"`
	Email             string               `json:"email"`
	Phone             string               `json:"phone,omitempty"`
	LatestMeasurement *MeasurementResponse `json:"latestMeasurement,omitempty"`
}
