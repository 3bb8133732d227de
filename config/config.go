package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB    int    `mapstructure:"REDIS_CACHE_DB"`
	RedisLocationDB int    `mapstructure:"REDIS_LOCATION_DB"`
	RedisQueueDB    int    `mapstructure:"REDIS_QUEUE_DB"`

	// Directory seeding.
	DirectorySeedFile string `mapstructure:"DIRECTORY_SEED_FILE"`

	// Map tile templates, parameterized by {z}/{x}/{y}.
	TileURLLight string `mapstructure:"TILE_URL_LIGHT"`
	TileURLDark  string `mapstructure:"TILE_URL_DARK"`

	// Presence simulation interval in seconds.
	PresenceIntervalSec int `mapstructure:"PRESENCE_INTERVAL_SEC"`

	// Location cache TTL in minutes.
	LocationTTLMin int `mapstructure:"LOCATION_TTL_MIN"`

	// Gemini API key; empty disables the AI reply source.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`

	// Firebase service account for FCM pushes; empty disables pushes.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_LOCATION_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DIRECTORY_SEED_FILE", "config/directory_seed.json")
	viper.SetDefault("TILE_URL_LIGHT", "https://basemaps.cartocdn.com/light_all/{z}/{x}/{y}.png")
	viper.SetDefault("TILE_URL_DARK", "https://basemaps.cartocdn.com/dark_all/{z}/{x}/{y}.png")
	viper.SetDefault("PRESENCE_INTERVAL_SEC", 15)
	viper.SetDefault("LOCATION_TTL_MIN", 30)
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
