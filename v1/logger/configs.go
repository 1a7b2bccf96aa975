package logger

// Log levels accepted by Config.Level.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum level that will be logged.
	// One of "debug", "info", "warning", "error". Defaults to "info".
	Level string `yaml:"level" envconfig:"ZAP_LOGGER_LEVEL"`

	// ServiceName is attached to every log entry as the "service" field.
	ServiceName string `yaml:"service_name" envconfig:"SERVICE_NAME"`

	// EnableTracing controls whether the *WithContext methods extract
	// trace and span IDs from the context and attach them to log entries.
	EnableTracing bool `yaml:"enable_tracing" envconfig:"LOGGER_ENABLE_TRACING"`
}
