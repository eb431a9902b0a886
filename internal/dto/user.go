package dto

import (
	"github.com/shopspring/decimal"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/model"
)

type UserResponse struct {
	UserID                 uint       `json:"userId"`
	FullName               string     `json:"fullName"`
	Email                  string     `json:"email"`
	Phone                  string     `json:"phone,omitempty"`
	Address                string     `json:"address,omitempty"`
	Role                   model.Role `json:"role"`
	EmailVerified          bool       `json:"emailVerified"`
	PhoneVerified          bool       `json:"phoneVerified"`
	ProfileCompleted       bool       `json:"profileCompleted"`
	PasswordChangeRequired bool       `json:"passwordChangeRequired"`
}

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		UserID:                 u.UserID,
		FullName:               u.FullName,
		Email:                  u.Email,
		Phone:                  u.Phone,
		Address:                u.Address,
		Role:                   u.Role,
		EmailVerified:          u.EmailVerified,
		PhoneVerified:          u.PhoneVerified,
		ProfileCompleted:       u.ProfileCompleted,
		PasswordChangeRequired: u.PasswordChangeRequired,
	}
}

// CreateEmployeeRequest provisions both employees and admins
type CreateEmployeeRequest struct {
	FullName       string               `json:"fullName" binding:"required,min=2,max=100"`
	Email          string               `json:"email" binding:"required,email,max=150"`
	Phone          string               `json:"phone" binding:"required,phone"`
	Address        string               `json:"address" binding:"omitempty,max=500"`
	JobTitle       string               `json:"jobTitle" binding:"required,max=100"`
	EmploymentType model.EmploymentType `json:"employmentType" binding:"required,oneof=FULL_TIME PART_TIME CONTRACT"`
	SalaryType     model.SalaryType     `json:"salaryType" binding:"required,oneof=MONTHLY HOURLY DAILY"`
	BaseSalary     decimal.Decimal      `json:"baseSalary" binding:"required,gt=0"`
}
