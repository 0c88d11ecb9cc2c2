// Package config loads runtime configuration from the environment.
// A .env file in the working directory is honoured when present.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// App holds the configuration of the terminal application.
type App struct {
	APIBaseURL    string        // GOBARBER_API_BASE_URL
	APITimeout    time.Duration // GOBARBER_API_TIMEOUT
	SubmitTimeout time.Duration // GOBARBER_SUBMIT_TIMEOUT
	LogLevel      string        // LOG_LEVEL
	LogFormat     string        // LOG_FORMAT (text|json)
}

// DevAPI holds the configuration of the stand-in users API.
type DevAPI struct {
	Addr          string        // DEVAPI_ADDR
	DatabaseURL   string        // DATABASE_URL (postgres); empty selects SQLite
	SQLitePath    string        // SQLITE_PATH
	RedisHost     string        // REDIS_HOST
	RedisPort     string        // REDIS_PORT
	RedisPassword string        // REDIS_PASSWORD
	SignupLimit   int           // SIGNUP_LIMIT attempts per window and client
	SignupWindow  time.Duration // SIGNUP_WINDOW
	LogLevel      string
	LogFormat     string
}

// LoadDotEnv reads .env into the process environment if the file exists.
func LoadDotEnv() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}
}

// LoadApp loads the terminal application configuration.
func LoadApp() App {
	return App{
		APIBaseURL:    getString("GOBARBER_API_BASE_URL", "http://localhost:3333"),
		APITimeout:    getDuration("GOBARBER_API_TIMEOUT", 10*time.Second),
		SubmitTimeout: getDuration("GOBARBER_SUBMIT_TIMEOUT", 15*time.Second),
		LogLevel:      getString("LOG_LEVEL", "info"),
		LogFormat:     getString("LOG_FORMAT", "text"),
	}
}

// LoadDevAPI loads the stand-in users API configuration.
func LoadDevAPI() DevAPI {
	return DevAPI{
		Addr:          getString("DEVAPI_ADDR", ":3333"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SQLitePath:    getString("SQLITE_PATH", "gobarber.db"),
		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getString("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		SignupLimit:   getInt("SIGNUP_LIMIT", 10),
		SignupWindow:  getDuration("SIGNUP_WINDOW", time.Minute),
		LogLevel:      getString("LOG_LEVEL", "info"),
		LogFormat:     getString("LOG_FORMAT", "text"),
	}
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("[WARN] invalid %s=%q, using %v", key, v, def)
		return def
	}
	return d
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("[WARN] invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}
