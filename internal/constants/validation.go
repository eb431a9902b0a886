package constants

// Field Length Limits
const (
	MinPasswordLength = 8
	MaxPasswordLength = 100
	MinNameLength     = 2
	MaxNameLength     = 100
	MaxEmailLength    = 150
)

// Token Settings
const (
	ActionTokenBytes      = 32
	RefreshTokenBytes     = 64
	TemporaryPasswordSize = 12
)

// Validation Patterns
const (
	PhonePattern = `^\+?[0-9]{10,15}$`
)

// Temporary password alphabets
const (
	PasswordLower   = "abcdefghijklmnopqrstuvwxyz"
	PasswordUpper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	PasswordDigits  = "0123456789"
	PasswordSpecial = "@$!%*?&"
)
