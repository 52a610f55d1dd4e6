package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Cookie names are fixed; only their flags vary by environment.
const (
	SessionCookieName = "peerdesk_session"
	RefreshCookieName = "refresh_token"
	// RefreshCookiePath scopes the refresh cookie to the auth routes so it
	// is not sent with every request.
	RefreshCookiePath = "/auth"
)

// Config holds application configuration, built once at startup and
// injected into constructors.
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Auth    AuthConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
	// TTLs are human-readable strings ("15m", "7d", bare seconds); they are
	// parsed when the token codec is constructed and malformed values abort
	// startup.
	AccessTokenTTL  string
	RefreshTokenTTL string
}

type AuthConfig struct {
	LoginPath  string
	BcryptCost int
}

// IsProduction reports whether cookie flags should be strict.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "5002")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("JWT_ACCESS_TOKEN_TTL", "15m")
	viper.SetDefault("JWT_REFRESH_TOKEN_TTL", "7d")
	viper.SetDefault("AUTH_LOGIN_PATH", "/login")
	viper.SetDefault("AUTH_BCRYPT_COST", 10)

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:      getEnvOrPanic("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		},
		JWT: JWTConfig{
			Secret:          os.Getenv("JWT_SECRET"),
			AccessTokenTTL:  viper.GetString("JWT_ACCESS_TOKEN_TTL"),
			RefreshTokenTTL: viper.GetString("JWT_REFRESH_TOKEN_TTL"),
		},
		Auth: AuthConfig{
			LoginPath:  viper.GetString("AUTH_LOGIN_PATH"),
			BcryptCost: viper.GetInt("AUTH_BCRYPT_COST"),
		},
	}

	// Basic validation
	if cfg.JWT.Secret == "" {
		log.Println("WARNING: JWT_SECRET is not set; set a secure value in production")
	}

	return cfg, nil
}

func getEnvOrPanic(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("environment variable %s is required", key)
	}
	return v
}
