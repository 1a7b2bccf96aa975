package metrics

// DefaultMetricsAddress is used when no listen address is specified.
const DefaultMetricsAddress = ":9090"

// Config defines the configuration structure for the Prometheus metrics server.
type Config struct {
	// Address determines the network address where the Prometheus
	// metrics HTTP server listens, e.g. ":9090" or "127.0.0.1:9100".
	// Default: ":9090".
	Address string `yaml:"address" envconfig:"METRICS_ADDRESS"`

	// EnableDefaultCollectors controls whether the built-in Go runtime
	// and process metrics are automatically registered.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" envconfig:"METRICS_ENABLE_DEFAULT_COLLECTORS"`

	// ServiceName identifies the service exposing metrics. It is applied
	// as a constant "service" label on every metric.
	ServiceName string `yaml:"service_name" envconfig:"METRICS_SERVICE_NAME"`
}
