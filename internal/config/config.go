// Package config loads application configuration from environment variables.
// A .env file in the working directory is loaded first when present; real
// environment variables always win.
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the runtime configuration of the HTTP server.
type Config struct {
	Env       string // application environment (dev, test, prod)
	Port      string // HTTP port to listen on
	LogLevel  string // echo logger level: DEBUG, INFO, WARN, ERROR, OFF
	DBUser    string
	DBPass    string // may be empty
	DBHost    string
	DBPort    string
	DBName    string
	JWTSecret string // verifies admin access tokens issued by the auth service

	Seating SeatingConfig
	Solver  SolverConfig
	Queue   QueueConfig
}

// Load reads the configuration. Required variables are enforced by must()
// and missing values stop the process.
func Load() Config {
	loadDotEnv(".env")
	return Config{
		Env:       envStr("APP_ENV", "dev"),
		Port:      must("APP_PORT"),
		LogLevel:  envStr("APP_LOG_LEVEL", "INFO"),
		DBUser:    must("DB_USER"),
		DBPass:    os.Getenv("DB_PASS"),
		DBHost:    must("DB_HOST"),
		DBPort:    envStr("DB_PORT", "3306"),
		DBName:    must("DB_NAME"),
		JWTSecret: must("JWT_SECRET"),
		Seating:   LoadSeatingConfig(),
		Solver:    LoadSolverConfig(),
		Queue:     LoadQueueConfig(),
	}
}

// loadDotEnv loads path if it exists. godotenv never overrides variables
// that are already set.
func loadDotEnv(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		log.Printf("config: could not load %s: %v", path, err)
	}
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// MustEnv loads .env and returns the required variable key, exiting when
// it is unset.
func MustEnv(key string) string {
	loadDotEnv(".env")
	return must(key)
}
