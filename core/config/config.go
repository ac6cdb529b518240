package config

import (
	"reflect"
	"strings"

	"hotel-inventory/core/database"
	"hotel-inventory/core/lock"
	"hotel-inventory/core/logger"
	"hotel-inventory/core/reconcile"
	"hotel-inventory/core/server"
	"hotel-inventory/core/storage"
	"hotel-inventory/core/upstream"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Upstream holds the property-management stream endpoint and credentials.
	Upstream upstream.Config `mapstructure:"upstream"`
	// Reconcile holds poll cycle settings.
	Reconcile reconcile.Config `mapstructure:"reconcile"`
	// Storage holds configuration for the raw batch archive (S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Lock holds configuration for the redis cycle lease.
	Lock lock.Config `mapstructure:"lock"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." || path == "" {
		envPath = ".env"
	}

	// Missing .env is fine (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. UPSTREAM_HOST -> upstream.host)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set the default, even when empty, so AutomaticEnv sees the key
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
