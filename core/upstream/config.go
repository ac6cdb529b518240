package upstream

// Config holds configuration for the upstream property-management stream.
type Config struct {
	// Host is the base URL of the upstream API, including scheme.
	Host string `mapstructure:"host" default:""`
	// AppID identifies this property's message stream.
	AppID string `mapstructure:"app_id" default:""`
	// Username is the basic-auth user.
	Username string `mapstructure:"username" default:""`
	// Password is the basic-auth password.
	Password string `mapstructure:"password" default:""`
	// TimeoutSeconds bounds each poll and acknowledge call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}

// Validate reports the first missing required setting.
func (c Config) Validate() error {
	switch {
	case c.Host == "":
		return errMissing("upstream.host")
	case c.AppID == "":
		return errMissing("upstream.app_id")
	case c.Username == "":
		return errMissing("upstream.username")
	case c.Password == "":
		return errMissing("upstream.password")
	}
	return nil
}
