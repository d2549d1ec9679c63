package config

const (
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
	defaultNamespace = "convee"
)

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Price: PriceConfig{
			Discount: 0.02,
			Tax:      0.10,
		},
		Batch: BatchConfig{
			Workers: 4,
			Drain:   true,
		},
		Metrics: MetricsConfig{
			Namespace: defaultNamespace,
		},
	}
}
