package utils

import (
	"errors"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/viper"
)

var defaults = map[string]any{
	"APP_PORT":                    "8080",
	"APP_URL":                     "http://localhost:8080",
	"TIMEZONE":                    "Africa/Accra",
	"DB_HOST":                     "localhost",
	"DB_PORT":                     "5432",
	"DB_USER":                     "postgres",
	"DB_NAME":                     "tmm",
	"DB_SSLMODE":                  "disable",
	"CORS_ALLOW_ORIGINS":          "*",
	"COOKIE_SECURE":               false,
	"SESSION_TTL_HOURS":           168,
	"STORAGE_DRIVER":              "local",
	"UPLOAD_DIR":                  "./public/uploads",
	"PUBLIC_UPLOAD_PATH":          "/uploads",
	"SMTP_PORT":                   "587",
	"SMTP_SENDER_NAME":            "Taste Mummies Made",
	"KAFKA_TOPIC":                 "tmm-orders",
	"ORDER_REQUIRE_PAYMENT_PROOF": false,
	"ORDER_PROOF_FAILURE_POLICY":  "proceed",
	"ORDER_MAX_PROOF_BYTES":       5 << 20,
	"RATE_LIMIT_PER_SECOND":       10,
}

// LoadConfig reads config.yaml (or $TMM_CONFIG) and lets environment variables
// override every key. A missing file is not an error.
func LoadConfig() {
	for key, value := range defaults {
		viper.SetDefault(key, value)
	}
	viper.AutomaticEnv()

	if path := os.Getenv("TMM_CONFIG"); path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			log.Info("config file not found, using defaults and environment")
			return
		}
		log.Errorf("error reading config file: %v", err)
	}
}

func GetConfig(key string) string {
	return viper.GetString(key)
}

func GetBool(key string) bool {
	return viper.GetBool(key)
}

func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetStrings splits a comma separated value, dropping empty entries.
func GetStrings(key string) []string {
	if values := viper.GetStringSlice(key); len(values) > 1 {
		return values
	}
	var out []string
	for _, part := range strings.Split(viper.GetString(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
