package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ServerAddr    string `yaml:"server_addr"`
	DBDriver      string `yaml:"db_driver"`
	DBHost        string `yaml:"db_host"`
	DBPort        string `yaml:"db_port"`
	DBUser        string `yaml:"db_user"`
	DBPassword    string `yaml:"db_password"`
	DBName        string `yaml:"db_name"`
	SessionStore  string `yaml:"session_store"`
	RedisHost     string `yaml:"redis_host"`
	RedisPort     string `yaml:"redis_port"`
	RedisPassword string `yaml:"redis_password"`
	SessionSecret string `yaml:"session_secret"`
	GinMode       string `yaml:"gin_mode"`
	LogLevel      string `yaml:"log_level"`
	LogFile       string `yaml:"log_file"`
	OpenAIAPIKey  string `yaml:"openai_api_key"`
	OpenAIModel   string `yaml:"openai_model"`
}

// Load builds the configuration. Values come from, in increasing priority:
// built-in defaults, the YAML file named by CONFIG_FILE, a local .env file and
// the process environment.
func Load() (*Config, error) {
	// A missing .env is fine, real deployments set the environment directly.
	_ = godotenv.Load()

	file := &Config{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, file); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	return &Config{
		ServerAddr:    getEnv("SERVER_ADDR", or(file.ServerAddr, ":8080")),
		DBDriver:      getEnv("DB_DRIVER", or(file.DBDriver, "mysql")),
		DBHost:        getEnv("DB_HOST", or(file.DBHost, "localhost")),
		DBPort:        getEnv("DB_PORT", or(file.DBPort, "3306")),
		DBUser:        getEnv("DB_USER", or(file.DBUser, "calorieuser")),
		DBPassword:    getEnv("DB_PASSWORD", or(file.DBPassword, "caloriepassword")),
		DBName:        getEnv("DB_NAME", or(file.DBName, "calorie_tracker")),
		SessionStore:  getEnv("SESSION_STORE", or(file.SessionStore, "redis")),
		RedisHost:     getEnv("REDIS_HOST", or(file.RedisHost, "localhost")),
		RedisPort:     getEnv("REDIS_PORT", or(file.RedisPort, "6379")),
		RedisPassword: getEnv("REDIS_PASSWORD", file.RedisPassword),
		SessionSecret: getEnv("SESSION_SECRET", or(file.SessionSecret, "default-secret-key-change-me")),
		GinMode:       getEnv("GIN_MODE", or(file.GinMode, "debug")),
		LogLevel:      getEnv("LOG_LEVEL", or(file.LogLevel, "info")),
		LogFile:       getEnv("LOG_FILE", file.LogFile),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", file.OpenAIAPIKey),
		OpenAIModel:   getEnv("OPENAI_MODEL", or(file.OpenAIModel, "gpt-4o-mini")),
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func or(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
