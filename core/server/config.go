package server

import "strings"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// Swagger exposes the API documentation under /swagger.
	Swagger bool `mapstructure:"swagger" default:"true"`
}

// Address returns the listen address for the configured port.
// A port given with a leading colon or a host part is used as-is.
func (c Config) Address() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		return ":8080"
	}
	if strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}
