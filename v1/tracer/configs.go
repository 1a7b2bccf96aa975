package tracer

// Config defines the configuration structure for the tracer client.
type Config struct {
	// ServiceName identifies this service in trace data. It appears as the
	// service.name resource attribute on every exported span.
	ServiceName string `yaml:"service_name" envconfig:"TRACER_SERVICE_NAME"`

	// AppEnv names the deployment environment, e.g. "development",
	// "staging", or "production". It is attached to every span as the
	// deployment environment resource attribute.
	AppEnv string `yaml:"app_env" envconfig:"APP_ENV"`

	// EnableExport controls whether spans are exported over OTLP/HTTP.
	// When false the tracer still creates spans and propagates context,
	// but nothing leaves the process. The exporter endpoint is taken from
	// the standard OTEL_EXPORTER_OTLP_* environment variables.
	EnableExport bool `yaml:"enable_export" envconfig:"TRACER_ENABLE_EXPORT"`
}
