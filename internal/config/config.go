package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Rewards  RewardsConfig
}

type ServerConfig struct {
	Port         string
	Environment  string
	JWTSecret    string
	AllowOrigins string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RewardsConfig holds credit amounts for community actions. These are
// defaults; the unlock cost can be overridden via the settings table.
type RewardsConfig struct {
	MarkHelpful        int
	HelpfulClickFirst  int
	HelpfulClickSecond int
	HelpfulClickThird  int
	ContactUnlockCost  int
}

func (d DatabaseConfig) DSN() string {
	return "postgres://" + d.User + ":" + d.Password + "@" + d.Host + ":" + d.Port + "/" + d.Name + "?sslmode=" + d.SSLMode
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Environment:  getEnv("ENVIRONMENT", "development"),
			JWTSecret:    getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AllowOrigins: getEnv("ALLOW_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "clearmarket"),
			Password: getEnv("DB_PASSWORD", "clearmarket"),
			Name:     getEnv("DB_NAME", "clearmarket"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Rewards: RewardsConfig{
			MarkHelpful:        getEnvInt("REWARD_MARK_HELPFUL", 1),
			HelpfulClickFirst:  getEnvInt("REWARD_HELPFUL_FIRST", 3),
			HelpfulClickSecond: getEnvInt("REWARD_HELPFUL_SECOND", 2),
			HelpfulClickThird:  getEnvInt("REWARD_HELPFUL_THIRD", 1),
			ContactUnlockCost:  getEnvInt("CONTACT_UNLOCK_COST", 5),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// Settings table keys
const (
	SettingContactUnlockCost = "contact_unlock_cost"
)
