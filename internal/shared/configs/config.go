package configs

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Log       LogConfig       `mapstructure:"log" validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth" validate:"required"`
	Analytics AnalyticsConfig `mapstructure:"analytics" validate:"required"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"min=0"`                // seconds (response); 0 disables, required for long-lived event streams
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// AuthConfig holds configuration for the admin token verifier.
type AuthConfig struct {
	JWTSecret       string `mapstructure:"jwt_secret" validate:"required,min=16"`
	AdminRole       string `mapstructure:"admin_role" validate:"required"`
	TokenQueryParam string `mapstructure:"token_query_param" validate:"required"` // fallback for streaming clients that cannot set headers
}

// AnalyticsConfig holds configuration for the traffic aggregator and its endpoints.
type AnalyticsConfig struct {
	ActivityWindowSeconds int `mapstructure:"activity_window_seconds" validate:"required,min=1"`
	ActivityCap           int `mapstructure:"activity_cap" validate:"required,min=1"`
	TopPagesLimit         int `mapstructure:"top_pages_limit" validate:"required,min=1,max=100"`
	BucketRetentionHours  int `mapstructure:"bucket_retention_hours" validate:"required,min=25"` // one hour of slack beyond the reported 24h series
	StreamIntervalSeconds int `mapstructure:"stream_interval_seconds" validate:"required,min=1"`
}
