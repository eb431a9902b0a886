package constants

// Application Information
const (
	AppName    = "Bridal Shop Backend"
	AppVersion = "1.0.0"
)

// Environment Types
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Default Application Settings
const (
	DefaultPort        = "8080"
	DefaultEnvironment = EnvDevelopment
)

// Cache Key Prefixes
const (
	CacheKeyPrefix     = "bridal:"
	CacheKeyCategories = CacheKeyPrefix + "catalog:categories"
)

// Storage layout for uploaded images
const (
	DefaultUploadFolder   = "bridal-shop"
	UploadCategoryDresses = "dresses"
)

// Log Levels
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
	LogLevelFatal = "fatal"
)
