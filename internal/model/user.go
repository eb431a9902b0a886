package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type User struct {
	UserID                 uint           `gorm:"column:user_id;primaryKey"`
	FullName               string         `gorm:"column:full_name;size:100;not null"`
	Email                  string         `gorm:"column:email;size:150;not null;uniqueIndex"`
	Phone                  string         `gorm:"column:phone;size:20"`
	Address                string         `gorm:"column:address;type:text"`
	PasswordHash           *string        `gorm:"column:password_hash"`
	Role                   Role           `gorm:"column:role;size:20;not null;default:CUSTOMER"`
	IsActive               bool           `gorm:"column:is_active;not null;default:true"`
	GoogleID               *string        `gorm:"column:google_id;uniqueIndex"`
	OAuthProvider          *OAuthProvider `gorm:"column:oauth_provider;size:50"`
	EmailVerified          bool           `gorm:"column:email_verified;not null;default:false"`
	PhoneVerified          bool           `gorm:"column:phone_verified;not null;default:false"`
	ProfileCompleted       bool           `gorm:"column:profile_completed;not null;default:false"`
	PasswordChangeRequired bool           `gorm:"column:password_change_required;not null;default:false"`
	CreatedAt              time.Time      `gorm:"column:created_at;autoCreateTime"`
	LastLoginAt            *time.Time     `gorm:"column:last_login_at"`
}

func (User) TableName() string {
	return "users"
}

// HasPassword reports whether the account can sign in with a password
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

type Employee struct {
	EmployeeID     uint            `gorm:"column:employee_id;primaryKey"`
	UserID         uint            `gorm:"column:user_id;not null;index"`
	User           *User           `gorm:"foreignKey:UserID;references:UserID"`
	JobTitle       string          `gorm:"column:job_title;size:100"`
	EmploymentType EmploymentType  `gorm:"column:employment_type;size:20;not null;default:FULL_TIME"`
	SalaryType     SalaryType      `gorm:"column:salary_type;size:20;not null;default:MONTHLY"`
	BaseSalary     decimal.Decimal `gorm:"column:base_salary;type:decimal(10,2);not null"`
	HireDate       datatypes.Date  `gorm:"column:hire_date"`
	IsActive       bool            `gorm:"column:is_active;not null;default:true"`
}

func (Employee) TableName() string {
	return "employees"
}
