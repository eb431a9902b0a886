package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Token     TokenConfig
	Mail      MailConfig
	Queue     QueueConfig
	Storage   StorageConfig
	Google    GoogleConfig
	Scheduler SchedulerConfig
	RateLimit RateLimitConfig
	Seed      SeedConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Timeout     time.Duration
	Port        string
	BasePath    string
	FrontendURL string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type JWTConfig struct {
	Secret          string
	ExpirationTime  time.Duration
	RefreshDuration time.Duration
}

// TokenConfig holds lifetimes of single-use action tokens.
type TokenConfig struct {
	EmailVerificationTTL time.Duration
	PasswordResetTTL     time.Duration
}

type RedisConfig struct {
	Enabled      bool
	Host         string
	Port         int
	Password     string
	Database     int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolTimeout  time.Duration
	CatalogTTL   time.Duration
}

type MailConfig struct {
	SMTPHost        string
	SMTPPort        int
	SMTPUser        string
	SMTPPassword    string
	FromAddress     string
	VerificationURL string
	ResetURL        string
	LoginURL        string
}

type QueueConfig struct {
	URL       string
	EmailName string
}

type StorageConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	Region        string
	UseSSL        bool
	PublicBaseURL string
	RootFolder    string
}

type GoogleConfig struct {
	ClientID         string
	TokenInfoURL     string
	Timeout          time.Duration
	BreakerThreshold int
	BreakerTimeout   time.Duration
}

type SchedulerConfig struct {
	Enabled     bool
	CleanupSpec string
}

type RateLimitConfig struct {
	Request  int
	Duration int
}

type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
	AdminPhone    string
}

func LoadConfig() (*Config, error) {
	// a missing .env is fine, the process environment still applies
	_ = godotenv.Load()

	frontend := getEnv("FRONTEND_URL", "http://localhost:3000")

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "bridal-shop-backend"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
			Timeout:     getEnvAsDuration("APP_TIMEOUT", 30*time.Second),
			BasePath:    getEnv("APP_BASE_PATH", ""),
			FrontendURL: frontend,
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			Name:            getEnv("DB_NAME", "bridal_shop"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 50),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnMaxIdleTime: getEnvAsDuration("DB_CONN_MAX_IDLE_TIME", 10*time.Minute),
		},
		Redis: RedisConfig{
			Enabled:      getEnvAsBool("REDIS_ENABLED", false),
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnvAsInt("REDIS_PORT", 6379),
			Password:     getEnv("REDIS_PASSWORD", ""),
			Database:     getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
			DialTimeout:  getEnvAsDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getEnvAsDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getEnvAsDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			PoolTimeout:  getEnvAsDuration("REDIS_POOL_TIMEOUT", 4*time.Second),
			CatalogTTL:   getEnvAsDuration("REDIS_CATALOG_TTL", 5*time.Minute),
		},
		JWT: JWTConfig{
			Secret:          getEnv("JWT_SECRET", "default_secret_key_change_in_production"),
			ExpirationTime:  getEnvAsDuration("JWT_EXPIRATION", 15*time.Minute),
			RefreshDuration: getEnvAsDuration("JWT_REFRESH_DURATION", 7*24*time.Hour),
		},
		Token: TokenConfig{
			EmailVerificationTTL: getEnvAsDuration("EMAIL_VERIFICATION_TTL", 24*time.Hour),
			PasswordResetTTL:     getEnvAsDuration("PASSWORD_RESET_TTL", time.Hour),
		},
		Mail: MailConfig{
			SMTPHost:        getEnv("SMTP_HOST", "localhost"),
			SMTPPort:        getEnvAsInt("SMTP_PORT", 587),
			SMTPUser:        getEnv("SMTP_USER", ""),
			SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
			FromAddress:     getEnv("MAIL_FROM", "no-reply@bridalshop.local"),
			VerificationURL: getEnv("MAIL_VERIFICATION_URL", frontend+"/verify-email"),
			ResetURL:        getEnv("MAIL_RESET_PASSWORD_URL", frontend+"/reset-password"),
			LoginURL:        getEnv("MAIL_LOGIN_URL", frontend+"/login"),
		},
		Queue: QueueConfig{
			URL:       getEnv("AMQP_URL", ""),
			EmailName: getEnv("AMQP_EMAIL_QUEUE", "email.outbound"),
		},
		Storage: StorageConfig{
			Endpoint:      getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKey:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretKey:     getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			Bucket:        getEnv("STORAGE_BUCKET", "bridal-shop"),
			Region:        getEnv("STORAGE_REGION", "us-east-1"),
			UseSSL:        getEnvAsBool("STORAGE_USE_SSL", false),
			PublicBaseURL: getEnv("STORAGE_PUBLIC_BASE_URL", "http://localhost:9000/bridal-shop"),
			RootFolder:    getEnv("STORAGE_ROOT_FOLDER", "bridal-shop"),
		},
		Google: GoogleConfig{
			ClientID:         getEnv("GOOGLE_CLIENT_ID", ""),
			TokenInfoURL:     getEnv("GOOGLE_TOKENINFO_URL", "https://oauth2.googleapis.com/tokeninfo"),
			Timeout:          getEnvAsDuration("GOOGLE_TIMEOUT", 5*time.Second),
			BreakerThreshold: getEnvAsInt("GOOGLE_BREAKER_THRESHOLD", 5),
			BreakerTimeout:   getEnvAsDuration("GOOGLE_BREAKER_TIMEOUT", 30*time.Second),
		},
		Scheduler: SchedulerConfig{
			Enabled:     getEnvAsBool("SCHEDULER_ENABLED", true),
			CleanupSpec: getEnv("SCHEDULER_TOKEN_CLEANUP_SPEC", "0 0 3 * * *"),
		},
		RateLimit: RateLimitConfig{
			Request:  getEnvAsInt("RATE_LIMIT_MAX_REQUEST", 100),
			Duration: getEnvAsInt("RATE_LIMIT_DURATION", 60),
		},
		Seed: SeedConfig{
			AdminEmail:    getEnv("SEED_ADMIN_EMAIL", "admin@bridalshop.local"),
			AdminPassword: getEnv("SEED_ADMIN_PASSWORD", "Admin@12345"),
			AdminName:     getEnv("SEED_ADMIN_NAME", "Shop Administrator"),
			AdminPhone:    getEnv("SEED_ADMIN_PHONE", "+94770000000"),
		},
	}

	if config.App.Environment == "production" && config.JWT.Secret == "default_secret_key_change_in_production" {
		return nil, fmt.Errorf("JWT_SECRET must be set in production")
	}

	return config, nil
}

func (c *Config) DatabaseConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func (c *Config) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		boolValue, err := strconv.ParseBool(value)
		if err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
