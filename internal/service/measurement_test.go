package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/dto"
	apperrors "github.com/deelaka-ransilu/bridal-shop-backend/internal/errors"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/model"
)

type measurementFixture struct {
	svc          *MeasurementService
	users        *fakeUsers
	employees    *fakeEmployees
	orders       *fakeOrders
	measurements *fakeMeasurements

	admin, employee, customer, other *model.User
}

func newMeasurementFixture() *measurementFixture {
	f := &measurementFixture{
		users:     newFakeUsers(),
		employees: newFakeEmployees(),
		orders:    &fakeOrders{handled: map[uint][]uint{}},
	}
	f.measurements = &fakeMeasurements{users: f.users}
	f.svc = NewMeasurementService(&fakeTx{}, f.users, f.employees, f.orders, f.measurements)

	f.admin = f.users.add(model.User{FullName: "Admin", Email: "admin@example.com", Role: model.RoleAdmin, IsActive: true})
	f.employee = f.users.add(model.User{FullName: "Staff", Email: "staff@example.com", Role: model.RoleEmployee, IsActive: true})
	f.customer = f.users.add(model.User{FullName: "Bride", Email: "bride@example.com", Phone: "+94770000000", Role: model.RoleCustomer, IsActive: true})
	f.other = f.users.add(model.User{FullName: "Other", Email: "other@example.com", Role: model.RoleCustomer, IsActive: true})
	return f
}

func authOf(u *model.User) AuthContext {
	return AuthContext{UserID: u.UserID, Role: u.Role, Email: u.Email}
}

func bust(v int64) *dto.MeasurementRequest {
	d := decimal.NewFromInt(v)
	return &dto.MeasurementRequest{FullBust: &d}
}

func TestAddMeasurement_KeepsExactlyOneActive(t *testing.T) {
	f := newMeasurementFixture()
	ctx := context.Background()

	req := bust(86)
	req.CustomerID = f.customer.UserID
	_, err := f.svc.Add(ctx, authOf(f.admin), req)
	require.NoError(t, err)

	req = bust(90)
	req.CustomerID = f.customer.UserID
	saved, err := f.svc.Add(ctx, authOf(f.admin), req)
	require.NoError(t, err)
	assert.True(t, saved.IsActive)
	require.NotNil(t, saved.RecordedByUserID)
	assert.Equal(t, f.admin.UserID, *saved.RecordedByUserID)

	assert.Equal(t, 1, f.measurements.activeCount(f.customer.UserID))
	assert.Len(t, f.measurements.rows, 2)

	latest, err := f.svc.GetLatest(ctx, authOf(f.admin), f.customer.UserID)
	require.NoError(t, err)
	assert.True(t, latest.FullBust.Equal(decimal.NewFromInt(90)))
	assert.Equal(t, "Bride", latest.CustomerName)
}

func TestAddMeasurement_Rejections(t *testing.T) {
	f := newMeasurementFixture()

	req := bust(86)
	req.CustomerID = f.customer.UserID
	_, err := f.svc.Add(context.Background(), authOf(f.employee), req)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Equal(t, "Only admins can record measurements", apperrors.GetErrorMessage(err))

	req.CustomerID = 999
	_, err = f.svc.Add(context.Background(), authOf(f.admin), req)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.Equal(t, "Customer not found", apperrors.GetErrorMessage(err))
	assert.Empty(t, f.measurements.rows)
}

func TestGetLatest_NoMeasurements(t *testing.T) {
	f := newMeasurementFixture()

	_, err := f.svc.GetLatest(context.Background(), authOf(f.customer), f.customer.UserID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.Equal(t, "No measurements found for this customer", apperrors.GetErrorMessage(err))
}

func TestGetProfile_CustomerAccess(t *testing.T) {
	f := newMeasurementFixture()

	own, err := f.svc.GetProfile(context.Background(), authOf(f.customer), f.customer.UserID)
	require.NoError(t, err)
	assert.Equal(t, "bride@example.com", own.Email)
	assert.Nil(t, own.LatestMeasurement)

	_, err = f.svc.GetProfile(context.Background(), authOf(f.customer), f.other.UserID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Equal(t, "You can only view your own measurements", apperrors.GetErrorMessage(err))
}

func TestGetProfile_EmployeeAccess(t *testing.T) {
	f := newMeasurementFixture()
	ctx := context.Background()

	_, err := f.svc.GetProfile(ctx, authOf(f.employee), f.customer.UserID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.Equal(t, "Employee record not found", apperrors.GetErrorMessage(err))

	require.NoError(t, f.employees.Create(ctx, &model.Employee{UserID: f.employee.UserID, IsActive: true}))
	emp, _ := f.employees.GetByUserID(ctx, f.employee.UserID)

	_, err = f.svc.GetProfile(ctx, authOf(f.employee), f.customer.UserID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	f.orders.handled[emp.EmployeeID] = []uint{f.customer.UserID}
	profile, err := f.svc.GetProfile(ctx, authOf(f.employee), f.customer.UserID)
	require.NoError(t, err)
	assert.Equal(t, f.customer.UserID, profile.UserID)
}

func TestCheckMeasurementAccess(t *testing.T) {
	never := func(context.Context) (bool, error) {
		t.Fatal("assignment lookup must not run")
		return false, nil
	}
	assigned := func(context.Context) (bool, error) { return true, nil }
	unassigned := func(context.Context) (bool, error) { return false, nil }

	tests := []struct {
		name   string
		auth   AuthContext
		target uint
		lookup AssignmentLookup
		allow  bool
	}{
		{"admin any customer", AuthContext{UserID: 1, Role: model.RoleAdmin}, 7, never, true},
		{"employee assigned", AuthContext{UserID: 2, Role: model.RoleEmployee}, 7, assigned, true},
		{"employee unassigned", AuthContext{UserID: 2, Role: model.RoleEmployee}, 7, unassigned, false},
		{"customer self", AuthContext{UserID: 7, Role: model.RoleCustomer}, 7, never, true},
		{"customer other", AuthContext{UserID: 8, Role: model.RoleCustomer}, 7, never, false},
		{"unknown role", AuthContext{UserID: 9, Role: "GUEST"}, 7, never, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckMeasurementAccess(context.Background(), tt.auth, tt.target, tt.lookup)
			if tt.allow {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, apperrors.ErrForbidden)
			}
		})
	}
}
