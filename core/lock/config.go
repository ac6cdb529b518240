package lock

// Config holds configuration for the redis-backed cycle lease.
type Config struct {
	// Enabled turns on the lease; when false cycles are never serialised.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Addr is the redis host:port.
	Addr string `mapstructure:"addr" default:"localhost:6379"`
	// Password is the optional redis password.
	Password string `mapstructure:"password" default:""`
	// DB is the redis database number.
	DB int `mapstructure:"db" default:"0"`
	// Key is the lease key shared by every poller instance.
	Key string `mapstructure:"key" default:"hotel-inventory:poll-cycle"`
	// TTLSeconds bounds how long a crashed holder can block other cycles.
	TTLSeconds int `mapstructure:"ttl_seconds" default:"120"`
}
