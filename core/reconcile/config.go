package reconcile

// Config holds settings for poll cycles.
type Config struct {
	// BatchSize is the maximum number of messages requested per poll.
	BatchSize int `mapstructure:"batch_size" default:"10"`
	// IntervalSeconds is the time between scheduled cycles.
	IntervalSeconds int `mapstructure:"interval_seconds" default:"60"`
	// AckConcurrency bounds concurrent acknowledge calls within one cycle.
	AckConcurrency int `mapstructure:"ack_concurrency" default:"4"`
	// Schedule runs cycles on a timer inside the start command.
	Schedule bool `mapstructure:"schedule" default:"true"`
}
