package config

import (
	"os"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Identity provider
	IdentityURL       string
	IdentityAPIKey    string
	IdentityJWTSecret string

	// Object storage
	S3Bucket        string
	S3Region        string
	S3PublicBaseURL string

	// Email
	SendGridAPIKey string
	SenderEmail    string
	DashboardURL   string

	// Doctor-role upgrade gate
	DoctorAccessCode string

	// Classifier
	ModelURL     string
	ModelTimeout time.Duration

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "respirex_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		IdentityURL:       getEnv("IDENTITY_URL", ""),
		IdentityAPIKey:    getEnv("IDENTITY_API_KEY", ""),
		IdentityJWTSecret: getEnv("IDENTITY_JWT_SECRET", ""),

		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Region:        getEnv("S3_REGION", "us-east-1"),
		S3PublicBaseURL: getEnv("S3_PUBLIC_BASE_URL", ""),

		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		SenderEmail:    getEnv("SENDER_EMAIL", "reports@respirex.app"),
		DashboardURL:   getEnv("DASHBOARD_URL", "https://respirex.vercel.app"),

		DoctorAccessCode: getEnv("DOCTOR_ACCESS_CODE", ""),

		ModelURL:     getEnv("MODEL_URL", ""),
		ModelTimeout: parseDuration(getEnv("MODEL_TIMEOUT", "30s")),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 30 * time.Second
	}
	return d
}
