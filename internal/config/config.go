package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	JWTSecret string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AnthropicModel string
	MockGenerator  bool
	UseCLI         bool
	CLIPath        string

	DefaultNumQuestions int
	SecondsPerQuestion  int
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults when values are missing.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Port:      envOr("PORT", "8080"),
		JWTSecret: envOr("JWT_SECRET", "please-change-this"),

		DBHost:     envOr("DB_HOST", "localhost"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     envOr("DB_USER", "quiz_user"),
		DBPassword: envOr("DB_PASSWORD", "quiz_password"),
		DBName:     envOr("DB_NAME", "quiz_db"),
		DBSSLMode:  envOr("DB_SSLMODE", "disable"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envIntOr("REDIS_DB", 0),

		AnthropicModel: envOr("ANTHROPIC_MODEL", "claude-opus-4-5-20251101"),
		MockGenerator:  os.Getenv("MOCK_GENERATOR") == "true",
		UseCLI:         os.Getenv("USE_CLI_GENERATOR") == "true",
		CLIPath:        envOr("CLAUDE_CLI_PATH", "claude"),

		DefaultNumQuestions: envIntOr("QUIZ_DEFAULT_NUM_QUESTIONS", 10),
		// 0 disables the countdown.
		SecondsPerQuestion: envIntOr("QUIZ_SECONDS_PER_QUESTION", 0),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
