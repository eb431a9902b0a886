package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/model"
	ctxutil "github.com/deelaka-ransilu/bridal-shop-backend/pkg/context"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/logger"
)

type MeasurementRepository struct {
	db *gorm.DB
}

func NewMeasurementRepository(db *gorm.DB) *MeasurementRepository {
	return &MeasurementRepository{db: db}
}

// GetActive returns the customer's current measurement head
func (r *MeasurementRepository) GetActive(ctx context.Context, customerID uint) (*model.CustomerMeasurement, error) {
	ctx = ctxutil.WithFunction(ctx, "repository", "GetActiveMeasurement")

	start := time.Now()
	var m model.CustomerMeasurement
	err := conn(ctx, r.db).
		Preload("Customer").
		Preload("RecordedBy").
		Where("customer_id = ? AND is_active = ?", customerID, true).
		Order("created_at DESC, measurement_id DESC").
		First(&m).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.ErrorWithContext(ctx, "Failed to load measurement").
				Uint("customer_id", customerID).
				Duration(time.Since(start)).
				Err(err).
				Log()
		}
		return nil, err
	}
	return &m, nil
}

func (r *MeasurementRepository) DeactivateAll(ctx context.Context, customerID uint) (int64, error) {
	result := conn(ctx, r.db).Model(&model.CustomerMeasurement{}).
		Where("customer_id = ? AND is_active = ?", customerID, true).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

func (r *MeasurementRepository) Create(ctx context.Context, m *model.CustomerMeasurement) error {
	ctx = ctxutil.WithFunction(ctx, "repository", "CreateMeasurement")

	if err := conn(ctx, r.db).Omit("Customer", "RecordedBy").Create(m).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to insert measurement").
			Uint("customer_id", m.CustomerID).
			Err(err).
			Log()
		return err
	}
	return nil
}

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// HandlesCustomer reports whether the employee handles any non-cancelled order of the customer
func (r *OrderRepository) HandlesCustomer(ctx context.Context, employeeID, customerID uint) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&model.Order{}).
		Where("handled_by_employee_id = ? AND customer_id = ? AND order_status NOT IN ?",
			employeeID, customerID, []string{model.OrderStatusCancelled}).
		Count(&count).Error
	return count > 0, err
}
