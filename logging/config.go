package logging

// Config defines the logging configuration options.
type Config struct {
	// Level is the log level (e.g., "debug", "info", "warn", "error").
	Level string `yaml:"level,omitempty"`

	// ReportCaller enables logging the calling function.
	ReportCaller bool `yaml:"report_caller,omitempty"`

	// Format holds formatter options.
	Format FormatConfig `yaml:"format,omitempty"`
}

// FormatConfig controls the text formatter output.
type FormatConfig struct {
	// Preset selects a formatter preset: "text" (default), "json", or "simple".
	Preset string `yaml:"preset,omitempty"`

	// DisableTimestamp omits the timestamp from each entry.
	DisableTimestamp bool `yaml:"disable_timestamp,omitempty"`

	// DisableComponent omits the component tag from each entry.
	DisableComponent bool `yaml:"disable_component,omitempty"`
}
