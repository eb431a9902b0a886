package model

import "time"

// RefreshToken is a session continuation credential.
// ParentTokenID links a rotated token to the one it superseded.
type RefreshToken struct {
	TokenID       uint          `gorm:"column:token_id;primaryKey"`
	UserID        uint          `gorm:"column:user_id;not null;index"`
	User          *User         `gorm:"foreignKey:UserID;references:UserID"`
	Token         string        `gorm:"column:token;size:500;not null;uniqueIndex"`
	ExpiresAt     time.Time     `gorm:"column:expires_at;not null;index"`
	Revoked       bool          `gorm:"column:revoked;not null;default:false"`
	ParentTokenID *uint         `gorm:"column:parent_token_id"`
	ParentToken   *RefreshToken `gorm:"foreignKey:ParentTokenID;references:TokenID"`
	CreatedAt     time.Time     `gorm:"column:created_at;autoCreateTime"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (t *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

type EmailVerificationToken struct {
	TokenID   uint      `gorm:"column:token_id;primaryKey"`
	UserID    uint      `gorm:"column:user_id;not null;index"`
	User      *User     `gorm:"foreignKey:UserID;references:UserID"`
	Token     string    `gorm:"column:token;size:255;not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
	Verified  bool      `gorm:"column:verified;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (EmailVerificationToken) TableName() string {
	return "email_verification_tokens"
}

func (t *EmailVerificationToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

type PasswordResetToken struct {
	TokenID   uint      `gorm:"column:token_id;primaryKey"`
	UserID    uint      `gorm:"column:user_id;not null;index"`
	User      *User     `gorm:"foreignKey:UserID;references:UserID"`
	Token     string    `gorm:"column:token;size:255;not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"column:expires_at;not null"`
	Used      bool      `gorm:"column:used;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}

func (t *PasswordResetToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
