package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const defaultInputPath = "data/halifax:1-bedroom-apartments/dataset_Facebook-marketplace-scraper_2025-03-16_22-23-18-811.json"

// Config holds all application configuration loaded from environment variables.
type Config struct {
	InputPath      string
	ListingsDSN    string
	ListingsTable  string
	ConnectRetries int

	PromptOutputPath string
	PromptLogPath    string
	PromptLimit      int

	MinPrice         float64
	SpecialSubstring string

	LogLevel string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		InputPath:      getEnv("INPUT_PATH", defaultInputPath),
		ListingsDSN:    getEnv("LISTINGS_DSN", ""),
		ListingsTable:  getEnv("LISTINGS_TABLE", "listings_raw"),
		ConnectRetries: getEnvInt("LISTINGS_CONNECT_RETRIES", 5),

		PromptOutputPath: getEnv("PROMPT_OUTPUT_PATH", "prompt.txt"),
		PromptLogPath:    getEnv("PROMPT_LOG_PATH", "prompt_errors.log"),
		PromptLimit:      getEnvInt("PROMPT_LIMIT", 120),

		MinPrice:         getEnvFloat("MIN_PRICE", 600),
		SpecialSubstring: getEnv("SPECIAL_SUBSTRING", "123"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// UsePostgres reports whether listings should be read from PostgreSQL
// instead of the JSON dataset file.
func (c *Config) UsePostgres() bool {
	return c.ListingsDSN != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}
