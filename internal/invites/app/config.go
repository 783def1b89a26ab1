package app

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	JWTSecret string // Required: HMAC secret shared with the main application's token issuer
	JWTIssuer string // Optional: expected issuer claim (empty disables the check)

	AppBaseURL string // Public frontend origin used to build accept links (default: http://localhost:3000)
	AppName    string // Product name used in email copy (default: Shiftbook)

	DatabaseFile string // Path to SQLite database file (default: ./invites.db)
	PepperFile   string // Path to file containing pepper for password hashing (default: ./pepper)

	ExpiryDays int // Default invitation lifetime in days (default: 7)

	MailProvider          string // "ses" or "noop" (default: noop)
	MailFromAddress       string
	MailFromName          string
	SESRegion             string
	SESAccessKeyID        string
	SESSecretAccessKey    string
	SESInsecureSkipVerify bool

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	env := getEnvOrDefault("ENV", "dev")

	// Local development reads a .env file; deployed environments rely on
	// real environment variables, so a missing file is only a warning.
	if env != "prod" {
		if err := godotenv.Load(); err != nil {
			log.Printf("no .env file loaded: %v", err)
		}
	}

	return Config{
		JWTSecret: os.Getenv("INVITES_JWT_SECRET"),
		JWTIssuer: os.Getenv("INVITES_JWT_ISSUER"),

		AppBaseURL: getEnvOrDefault("APP_BASE_URL", "http://localhost:3000"),
		AppName:    getEnvOrDefault("APP_NAME", "Shiftbook"),

		DatabaseFile: getEnvOrDefault("INVITES_DATABASE_FILE", "invites.db"),
		PepperFile:   getEnvOrDefault("INVITES_PEPPER_FILE", "pepper"),

		ExpiryDays: getEnvIntOrDefault("INVITES_EXPIRY_DAYS", 7),

		MailProvider:          getEnvOrDefault("MAIL_PROVIDER", "noop"),
		MailFromAddress:       os.Getenv("MAIL_FROM_ADDRESS"),
		MailFromName:          os.Getenv("MAIL_FROM_NAME"),
		SESRegion:             getEnvOrDefault("SES_REGION", "ap-southeast-2"),
		SESAccessKeyID:        os.Getenv("SES_ACCESS_KEY_ID"),
		SESSecretAccessKey:    os.Getenv("SES_SECRET_ACCESS_KEY"),
		SESInsecureSkipVerify: os.Getenv("SES_INSECURE_SKIP_VERIFY") == "true",

		Env:                 env,
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
