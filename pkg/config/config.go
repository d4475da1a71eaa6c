package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultJWTSecret signs tokens when JWT_SECRET is unset. It is only
// acceptable outside production.
const DefaultJWTSecret = "supersecretjwtkey"

type Config struct {
	Port                    string
	Env                     string
	FirebaseCredentialsPath string
	PostgresUrl             string
	MongoURI                string
	MongoDatabase           string
	RequestTimeout          time.Duration
	RateLimit               float64

	Database DatabaseConfig
	JWT      JWTConfig
	OTP      OTPConfig
	Mail     MailConfig
	Storage  StorageConfig
	Google   GoogleConfig
	Cache    CacheConfig
}

// DatabaseConfig tunes the postgres and mongo connection pools.
type DatabaseConfig struct {
	ConnectTimeout  time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	MongoMaxPool    uint64
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type OTPConfig struct {
	Length int
	TTL    time.Duration
}

// MailConfig selects between the smtp and sendgrid providers.
type MailConfig struct {
	Provider       string
	FromEmail      string
	FromName       string
	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SMTPPassword   string
	SendgridAPIKey string
}

// StorageConfig selects between the s3 and local providers.
type StorageConfig struct {
	Provider  string
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	BaseURL   string
	LocalDir  string
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type CacheConfig struct {
	TTL         time.Duration
	CleanupFreq time.Duration
}

func Load() *Config {
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		PostgresUrl:             getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "introhub"),
		RequestTimeout:          getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		RateLimit:               getEnvFloat("AUTH_RATE_LIMIT", 5),
		Database: DatabaseConfig{
			ConnectTimeout:  getEnvDuration("DB_CONNECT_TIMEOUT", 10*time.Second),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			MongoMaxPool:    uint64(getEnvInt("MONGO_MAX_POOL_SIZE", 50)),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", DefaultJWTSecret),
			TTL:    getEnvDuration("JWT_TTL", 72*time.Hour),
		},
		OTP: OTPConfig{
			Length: getEnvInt("OTP_LENGTH", 6),
			TTL:    getEnvDuration("OTP_TTL", 2*time.Minute),
		},
		Mail: MailConfig{
			Provider:       strings.ToLower(getEnv("MAIL_PROVIDER", "smtp")),
			FromEmail:      getEnv("MAIL_FROM", "no-reply@introhub.local"),
			FromName:       getEnv("MAIL_FROM_NAME", "IntroHub"),
			SMTPHost:       getEnv("SMTP_HOST", "localhost"),
			SMTPPort:       getEnvInt("SMTP_PORT", 587),
			SMTPUser:       getEnv("SMTP_USER", ""),
			SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
			SendgridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		},
		Storage: StorageConfig{
			Provider:  strings.ToLower(getEnv("STORAGE_PROVIDER", "local")),
			Bucket:    getEnv("S3_BUCKET", ""),
			Region:    getEnv("S3_REGION", "us-east-1"),
			Endpoint:  getEnv("S3_ENDPOINT", ""),
			AccessKey: getEnv("S3_ACCESS_KEY", ""),
			SecretKey: getEnv("S3_SECRET_KEY", ""),
			BaseURL:   getEnv("STORAGE_BASE_URL", ""),
			LocalDir:  getEnv("STORAGE_LOCAL_DIR", "./uploads"),
		},
		Google: GoogleConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "postmessage"),
		},
		Cache: CacheConfig{
			TTL:         getEnvDuration("CACHE_TTL", 60*time.Second),
			CleanupFreq: getEnvDuration("CACHE_CLEANUP", 5*time.Minute),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate rejects settings that are only safe in development.
func (c *Config) Validate() error {
	if c.IsProduction() && (c.JWT.Secret == "" || c.JWT.Secret == DefaultJWTSecret) {
		return errors.New("JWT_SECRET must be set to a non-default value in production")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}
