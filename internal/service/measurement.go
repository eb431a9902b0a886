package service

import (
	"context"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/dto"
	apperrors "github.com/deelaka-ransilu/bridal-shop-backend/internal/errors"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/model"
	ctxutil "github.com/deelaka-ransilu/bridal-shop-backend/pkg/context"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/logger"
)

// AssignmentLookup reports whether the calling employee handles an order of the customer
type AssignmentLookup func(ctx context.Context) (bool, error)

// CheckMeasurementAccess decides whether auth may read customerID's measurements.
// Admins read everything, employees read customers of orders they handle,
// customers read only themselves.
func CheckMeasurementAccess(ctx context.Context, auth AuthContext, customerID uint, assigned AssignmentLookup) error {
	switch auth.Role {
	case model.RoleAdmin:
		return nil
	case model.RoleEmployee:
		ok, err := assigned(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.WithMessage(apperrors.ErrForbidden, "You can only view measurements for customers assigned to your orders")
		}
		return nil
	case model.RoleCustomer:
		if auth.UserID != customerID {
			return apperrors.WithMessage(apperrors.ErrForbidden, "You can only view your own measurements")
		}
		return nil
	default:
		return apperrors.ErrForbidden
	}
}

type MeasurementService struct {
	tx           Transactor
	users        UserStore
	employees    EmployeeStore
	orders       OrderStore
	measurements MeasurementStore
}

func NewMeasurementService(tx Transactor, users UserStore, employees EmployeeStore, orders OrderStore, measurements MeasurementStore) *MeasurementService {
	return &MeasurementService{
		tx:           tx,
		users:        users,
		employees:    employees,
		orders:       orders,
		measurements: measurements,
	}
}

func (s *MeasurementService) checkAccess(ctx context.Context, auth AuthContext, customerID uint) error {
	err := CheckMeasurementAccess(ctx, auth, customerID, func(ctx context.Context) (bool, error) {
		employee, err := s.employees.GetByUserID(ctx, auth.UserID)
		if err != nil {
			if isNotFound(err) {
				return false, apperrors.NotFound("Employee record")
			}
			return false, err
		}
		return s.orders.HandlesCustomer(ctx, employee.EmployeeID, customerID)
	})
	if err != nil {
		logger.WarnWithContext(ctx, "Measurement access denied").
			Uint("user_id", auth.UserID).
			String("role", string(auth.Role)).
			Uint("customer_id", customerID).
			Err(err).
			Log()
		return toDomainError(err)
	}
	return nil
}

// GetProfile returns contact details and the latest measurement, when one exists
func (s *MeasurementService) GetProfile(ctx context.Context, auth AuthContext, customerID uint) (*dto.CustomerProfileResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "GetCustomerProfile")

	if err := s.checkAccess(ctx, auth, customerID); err != nil {
		return nil, err
	}

	customer, err := s.users.GetByID(ctx, customerID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("Customer")
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	resp := &dto.CustomerProfileResponse{
		UserID:   customer.UserID,
		FullName: customer.FullName,
		Email:    customer.Email,
		Phone:    customer.Phone,
	}

	latest, err := s.measurements.GetActive(ctx, customerID)
	switch {
	case err == nil:
		resp.LatestMeasurement = dto.NewMeasurementResponse(latest)
	case !isNotFound(err):
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return resp, nil
}

func (s *MeasurementService) GetLatest(ctx context.Context, auth AuthContext, customerID uint) (*dto.MeasurementResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "GetLatestMeasurement")

	if err := s.checkAccess(ctx, auth, customerID); err != nil {
		return nil, err
	}

	latest, err := s.measurements.GetActive(ctx, customerID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.WithMessage(apperrors.ErrResourceNotFound, "No measurements found for this customer")
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return dto.NewMeasurementResponse(latest), nil
}

// Add records a new snapshot. Previous active rows are deactivated in the
// same transaction, so each customer keeps exactly one active measurement.
func (s *MeasurementService) Add(ctx context.Context, auth AuthContext, req *dto.MeasurementRequest) (*dto.MeasurementResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "AddMeasurement")

	if !auth.IsAdmin() {
		return nil, apperrors.WithMessage(apperrors.ErrForbidden, "Only admins can record measurements")
	}

	var saved *model.CustomerMeasurement
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.users.GetByID(ctx, req.CustomerID); err != nil {
			if isNotFound(err) {
				return apperrors.NotFound("Customer")
			}
			return err
		}

		replaced, err := s.measurements.DeactivateAll(ctx, req.CustomerID)
		if err != nil {
			return err
		}

		m := req.ToModel(auth.UserID)
		if err := s.measurements.Create(ctx, m); err != nil {
			return err
		}

		logger.InfoWithContext(ctx, "Measurement recorded").
			Uint("customer_id", req.CustomerID).
			Uint("measurement_id", m.MeasurementID).
			Int64("replaced", replaced).
			Log()

		saved, err = s.measurements.GetActive(ctx, req.CustomerID)
		return err
	})
	if err != nil {
		return nil, toDomainError(err)
	}
	return dto.NewMeasurementResponse(saved), nil
}
