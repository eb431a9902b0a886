package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/dto"
	apperrors "github.com/deelaka-ransilu/bridal-shop-backend/internal/errors"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/model"
	ctxutil "github.com/deelaka-ransilu/bridal-shop-backend/pkg/context"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/logger"
)

type StaffMailer interface {
	SendEmployeeWelcome(ctx context.Context, user *model.User, temporaryPassword string)
}

type UserService struct {
	tx        Transactor
	users     UserStore
	employees EmployeeStore
	mail      StaffMailer
	now       func() time.Time
}

func NewUserService(tx Transactor, users UserStore, employees EmployeeStore, mail StaffMailer) *UserService {
	return &UserService{
		tx:        tx,
		users:     users,
		employees: employees,
		mail:      mail,
		now:       time.Now,
	}
}

func (s *UserService) GetMe(ctx context.Context, auth AuthContext) (*dto.UserResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "GetMe")

	user, err := s.users.GetByID(ctx, auth.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("User")
		}
		logger.ErrorWithContext(ctx, "Failed to load current user").
			Uint("user_id", auth.UserID).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// CreateStaff provisions an EMPLOYEE or ADMIN account with a temporary
// password and its Employee record, then emails the credentials.
func (s *UserService) CreateStaff(ctx context.Context, req *dto.CreateEmployeeRequest, role model.Role) (*dto.UserResponse, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "CreateStaff")

	if role != model.RoleEmployee && role != model.RoleAdmin {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Staff role must be EMPLOYEE or ADMIN")
	}
	email := normalizeEmail(req.Email)

	logger.InfoWithContext(ctx, "Provisioning staff account").
		String("email", email).
		String("role", string(role)).
		Log()

	var (
		user     *model.User
		password string
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.users.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.WithMessage(apperrors.ErrEmailAlreadyExists, "Email already exists")
		}

		if password, err = GenerateTemporaryPassword(); err != nil {
			return err
		}
		hash, err := HashPassword(password)
		if err != nil {
			return err
		}

		provider := model.ProviderEmail
		user = &model.User{
			FullName:               strings.TrimSpace(req.FullName),
			Email:                  email,
			Phone:                  strings.TrimSpace(req.Phone),
			Address:                strings.TrimSpace(req.Address),
			PasswordHash:           &hash,
			Role:                   role,
			IsActive:               true,
			OAuthProvider:          &provider,
			EmailVerified:          true,
			ProfileCompleted:       true,
			PasswordChangeRequired: true,
		}
		if err := s.users.Create(ctx, user); err != nil {
			if isDuplicateKey(err) {
				return apperrors.WithMessage(apperrors.ErrEmailAlreadyExists, "Email already exists")
			}
			return err
		}

		y, m, d := s.now().Date()
		employee := &model.Employee{
			UserID:         user.UserID,
			JobTitle:       strings.TrimSpace(req.JobTitle),
			EmploymentType: req.EmploymentType,
			SalaryType:     req.SalaryType,
			BaseSalary:     req.BaseSalary,
			HireDate:       datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)),
			IsActive:       true,
		}
		return s.employees.Create(ctx, employee)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			logger.WarnWithContext(ctx, "Staff email already exists").
				String("email", email).
				Log()
			return nil, err
		}
		logger.ErrorWithContext(ctx, "Failed to provision staff account").
			String("email", email).
			Err(err).
			Log()
		return nil, toDomainError(err)
	}

	s.mail.SendEmployeeWelcome(ctx, user, password)

	logger.InfoWithContext(ctx, "Staff account created").
		Uint("user_id", user.UserID).
		String("role", string(role)).
		Log()

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// SetActive toggles the account flag. Deactivated users fail authentication.
func (s *UserService) SetActive(ctx context.Context, userID uint, active bool) error {
	ctx = ctxutil.WithFunction(ctx, "service", "SetActive")

	if err := s.users.SetActive(ctx, userID, active); err != nil {
		if isNotFound(err) {
			return apperrors.NotFound("User")
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "User active flag changed").
		Uint("user_id", userID).
		Bool("active", active).
		Log()
	return nil
}
