// internal/config/config.go
package config

import (
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every configuration parameter of the application. Values are
// read once at startup from the environment; there is no hot reload.
type Config struct {
	TelegramToken string
	BotUsername   string
	DatabaseURL   string
	AppEnv        string
	Port          string
	JWTSecret     string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// UPI collection identity used when generating payment QR codes.
	UPIVirtualAddress string
	UPIPayeeName      string

	// Idle intake sessions are evicted after this interval.
	SessionIdleTimeout time.Duration

	// OTP codes expire after this interval.
	OTPLifetime time.Duration
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		TelegramToken:     os.Getenv("TELEGRAM_APITOKEN"),
		BotUsername:       os.Getenv("BOT_USERNAME"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		AppEnv:            os.Getenv("ENV"),
		Port:              os.Getenv("PORT"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		UPIVirtualAddress: os.Getenv("UPI_VPA"),
		UPIPayeeName:      os.Getenv("UPI_PAYEE_NAME"),
		OTPLifetime:       5 * time.Minute,
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	idleMinutes := 30
	if raw := os.Getenv("SESSION_IDLE_MINUTES"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			log.Printf("Warning: invalid SESSION_IDLE_MINUTES value '%s', using default 30.", raw)
		} else {
			idleMinutes = parsed
		}
	}
	cfg.SessionIdleTimeout = time.Duration(idleMinutes) * time.Minute

	if cfg.TelegramToken == "" {
		log.Println("Critical: TELEGRAM_APITOKEN is not set. The bot will not start.")
	}
	if cfg.JWTSecret == "" {
		log.Println("Critical: JWT_SECRET is not set. API authentication will not work.")
	}
	if cfg.UPIVirtualAddress == "" {
		log.Println("Warning: UPI_VPA is not set. Payment QR generation will be unavailable.")
	}
	if cfg.BotUsername == "" {
		log.Println("Warning: BOT_USERNAME is not set.")
	}

	if cfg.DatabaseURL == "" {
		log.Println("Critical: DATABASE_URL is not set.")
	} else {
		parsedURL, parseErr := url.Parse(cfg.DatabaseURL)
		if parseErr != nil {
			log.Printf("Critical: failed to parse DATABASE_URL: %v", parseErr)
		} else {
			cfg.DBHost = parsedURL.Hostname()
			cfg.DBPort = parsedURL.Port()
			if cfg.DBPort == "" {
				cfg.DBPort = "5432"
			}
			cfg.DBUser = parsedURL.User.Username()
			cfg.DBPassword, _ = parsedURL.User.Password()
			cfg.DBName = strings.TrimPrefix(parsedURL.Path, "/")
		}
	}

	log.Println("Configuration loaded.")
	return cfg, nil
}
