// Package config provides configuration for validator policy and formatter selection.
package config

// ReportMode represents how the validator reports structural violations.
type ReportMode string

const (
	// ReportFirst reports only the first violation in pre-order
	// (left-most, shallowest) traversal.
	ReportFirst ReportMode = "first"
	// ReportAll collects every violation in pre-order and reports them
	// together.
	ReportAll ReportMode = "all"
)

// TermPolicy represents how term payloads are judged empty.
type TermPolicy string

const (
	// TermPolicyBlank treats whitespace-only payloads as empty.
	TermPolicyBlank TermPolicy = "blank"
	// TermPolicyStrict treats only zero-length payloads as empty.
	TermPolicyStrict TermPolicy = "strict"
)

// FormatterType represents the type of interchange formatter to use.
type FormatterType string

const (
	// FormatterBSON represents the BSON document interchange format
	FormatterBSON FormatterType = "bson"
	// FormatterExtJSON represents the canonical extended JSON interchange format
	FormatterExtJSON FormatterType = "extjson"
)

// Config represents the configuration for a validator and formatter pairing.
type Config struct {
	ReportMode ReportMode
	TermPolicy TermPolicy
	Formatter  FormatterType
}

// Default returns the default configuration with first-error reporting,
// blank-term policy, and the BSON formatter.
func Default() *Config {
	return &Config{
		ReportMode: ReportFirst,
		TermPolicy: TermPolicyBlank,
		Formatter:  FormatterBSON,
	}
}

// WithReportMode sets the report mode and returns the config.
func (c *Config) WithReportMode(mode ReportMode) *Config {
	c.ReportMode = mode
	return c
}

// WithTermPolicy sets the term policy and returns the config.
func (c *Config) WithTermPolicy(policy TermPolicy) *Config {
	c.TermPolicy = policy
	return c
}

// WithFormatter sets the formatter type and returns the config.
func (c *Config) WithFormatter(formatter FormatterType) *Config {
	c.Formatter = formatter
	return c
}
