package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers
const (
	StorageMongoDB = "mongodb"
	StorageRedis   = "redis"
	StorageMemory  = "memory"
)

var otpPattern = regexp.MustCompile(`^[0-9]{4}$`)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	MongoDB MongoDBConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Auth    AuthConfig
	Timers  TimersConfig
	SMS     SMSConfig
	Advisor AdvisorConfig
	Log     LogConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// StorageConfig selects the persistence driver
type StorageConfig struct {
	Driver string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int // seconds
}

// AuthConfig holds the fixed verification codes
type AuthConfig struct {
	OTPCode       string
	ActionOTPCode string
}

// TimersConfig holds the simulated device delays
type TimersConfig struct {
	ScanDelay               time.Duration
	ScanFeedbackDelay       time.Duration
	BiometricDelay          time.Duration
	PaymentSuccessAutoClose time.Duration
}

// SMSConfig holds SMS gateway-specific configuration
type SMSConfig struct {
	MTNGateway     MTNGatewayConfig
	MockSMSGateway bool
}

// MTNGatewayConfig holds MTN SMS gateway-specific configuration
type MTNGatewayConfig struct {
	BaseURL   string
	APIKey    string
	APISecret string
}

// AdvisorConfig holds the generative language API configuration
type AdvisorConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	MockAPI bool
	Timeout time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
	File   string
}

// Load loads configuration from a .env file, environment variables and config files
func Load() (*Config, error) {
	// A missing .env file is fine
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	applyPlatformEnv(&config)

	return &config, nil
}

// Validate rejects configurations the server cannot start with
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT secret must be set")
	}
	switch c.Storage.Driver {
	case StorageMongoDB, StorageRedis, StorageMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if !otpPattern.MatchString(c.Auth.OTPCode) {
		return errors.New("login OTP code must be 4 digits")
	}
	if !otpPattern.MatchString(c.Auth.ActionOTPCode) {
		return errors.New("action OTP code must be 4 digits")
	}
	return nil
}

// TokenTTL returns the session token lifetime
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.ExpiresIn) * time.Second
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("Server.Port", "4000")
	v.SetDefault("Server.AllowedOrigins", []string{"http://localhost:3000"})
	v.SetDefault("Storage.Driver", StorageMemory)
	v.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	v.SetDefault("MongoDB.Database", "gaspay")
	v.SetDefault("Redis.Addr", "localhost:6379")
	v.SetDefault("Redis.Password", "")
	v.SetDefault("Redis.DB", 0)
	v.SetDefault("JWT.Secret", "")
	v.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	v.SetDefault("Auth.OTPCode", "1234")
	v.SetDefault("Auth.ActionOTPCode", "1234")
	v.SetDefault("Timers.ScanDelay", 2500*time.Millisecond)
	v.SetDefault("Timers.ScanFeedbackDelay", 700*time.Millisecond)
	v.SetDefault("Timers.BiometricDelay", 1500*time.Millisecond)
	v.SetDefault("Timers.PaymentSuccessAutoClose", 4*time.Second)
	v.SetDefault("SMS.MockSMSGateway", true)
	v.SetDefault("SMS.MTNGateway.BaseURL", "")
	v.SetDefault("SMS.MTNGateway.APIKey", "")
	v.SetDefault("SMS.MTNGateway.APISecret", "")
	v.SetDefault("Advisor.BaseURL", "https://generativelanguage.googleapis.com")
	v.SetDefault("Advisor.APIKey", "")
	v.SetDefault("Advisor.Model", "gemini-2.5-flash")
	v.SetDefault("Advisor.MockAPI", true)
	v.SetDefault("Advisor.Timeout", 15*time.Second)
	v.SetDefault("Log.Level", "info")
	v.SetDefault("Log.Format", "text")
	v.SetDefault("Log.File", "")
}
