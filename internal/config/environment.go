package config

import (
	"os"
	"strconv"
	"strings"
)

// applyPlatformEnv applies the unprefixed variables hosting platforms and
// the mobile client tooling set, on top of the viper keys.
func applyPlatformEnv(cfg *Config) {
	cfg.Server.Port = envString("PORT", cfg.Server.Port)
	cfg.Server.AllowedOrigins = envList("ALLOWED_ORIGINS", cfg.Server.AllowedOrigins)
	cfg.Redis.Addr = envString("REDIS_URL", cfg.Redis.Addr)
	cfg.Advisor.APIKey = envString("GEMINI_API_KEY", cfg.Advisor.APIKey)
	if cfg.Advisor.APIKey != "" {
		cfg.Advisor.MockAPI = envBool("MOCK_ADVISOR", false)
	}
}

func envString(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func envBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// envList splits a comma separated variable, dropping empty items
func envList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
