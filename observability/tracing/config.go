package tracing

import "time"

const (
	reconnectionPeriod = 30 * time.Second
	shutdownTimeout    = 5 * time.Second
)

// Config holds the configuration for the tracing system.
type Config struct {
	// Disable, if true, installs a no-op tracer provider. Spans are neither collected nor exported.
	Disable bool `yaml:"disable" default:"false"`

	// SampleRate is the fraction of traces sampled, between 0.0 and 1.0.
	SampleRate float64 `yaml:"sample_rate" validate:"gte=0,lte=1" default:"1"`

	// ExporterHost is the hostname or IP address of the OTLP collector.
	ExporterHost string `yaml:"exporter_host" validate:"required_if=Disable false"`

	// ExporterPort is the port number of the OTLP collector.
	ExporterPort int `yaml:"exporter_port" validate:"required_if=Disable false"`

	// Tags are added as resource attributes to all spans.
	Tags map[string]string `yaml:"tags"`
}
