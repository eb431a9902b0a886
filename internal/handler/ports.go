package handler

import (
	"context"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/dto"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/model"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/service"
)

// Service ports consumed by the handlers. The *service types satisfy them.

type AuthAPI interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	GoogleLogin(ctx context.Context, req *dto.GoogleLoginRequest) (*dto.AuthResponse, error)
	CompleteProfile(ctx context.Context, auth service.AuthContext, req *dto.CompleteProfileRequest) (*dto.UserResponse, error)
	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
	Refresh(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenRefreshResponse, error)
	Logout(ctx context.Context, auth service.AuthContext) error
}

type CatalogAPI interface {
	ListCategories(ctx context.Context) ([]dto.CategoryResponse, error)
	GetCategory(ctx context.Context, id uint) (*dto.CategoryResponse, error)
	CreateCategory(ctx context.Context, req *dto.CategoryRequest) (*dto.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id uint, req *dto.CategoryRequest) (*dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id uint) error

	BrowseDresses(ctx context.Context, f dto.CatalogFilter) (*dto.DressPageResponse, error)
	GetDress(ctx context.Context, id uint) (*dto.DressResponse, error)
	CreateDress(ctx context.Context, req *dto.DressRequest) (*dto.DressResponse, error)
	UpdateDress(ctx context.Context, id uint, req *dto.DressRequest) (*dto.DressResponse, error)
	DeleteDress(ctx context.Context, id uint) error

	AddVariant(ctx context.Context, dressID uint, req *dto.DressVariantRequest) (*dto.DressVariantResponse, error)
	RetireVariant(ctx context.Context, dressID, variantID uint) error
	AddImage(ctx context.Context, dressID uint, req *dto.DressImageRequest) (*dto.DressImageResponse, error)
	DeleteImage(ctx context.Context, dressID, imageID uint) error
}

type MeasurementAPI interface {
	GetProfile(ctx context.Context, auth service.AuthContext, customerID uint) (*dto.CustomerProfileResponse, error)
	GetLatest(ctx context.Context, auth service.AuthContext, customerID uint) (*dto.MeasurementResponse, error)
	Add(ctx context.Context, auth service.AuthContext, req *dto.MeasurementRequest) (*dto.MeasurementResponse, error)
}

type UserAPI interface {
	GetMe(ctx context.Context, auth service.AuthContext) (*dto.UserResponse, error)
	CreateStaff(ctx context.Context, req *dto.CreateEmployeeRequest, role model.Role) (*dto.UserResponse, error)
	SetActive(ctx context.Context, userID uint, active bool) error
}

type UploadAPI interface {
	UploadDressImage(ctx context.Context, file service.UploadFile) (string, error)
}
