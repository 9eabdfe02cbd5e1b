package domain

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetCORSAllowedOrigins() []string

	GetGeminiAPIKey() string
	GetGeminiModel() string
	GetGeminiBaseURL() string
	GetLLMTimeoutSeconds() int
	GetGCPProjectID() string
	GetGCPLocation() string

	GetDatabaseURL() string
	GetJWTSecret() string
	GetTokenTTLMinutes() int

	GetArchiveBackend() string
	GetArchiveBucket() string
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetS3Endpoint() string
	GetS3Region() string
	GetS3AccessKey() string
	GetS3SecretKey() string
}
