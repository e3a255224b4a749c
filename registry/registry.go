// Package registry provides dynamic discovery and registration of validators and codecs.
package registry

import (
	"fmt"

	"github.com/arclabs561/qexpr"
	"github.com/arclabs561/qexpr/config"
	"github.com/arclabs561/qexpr/formatter"
	bsonformatter "github.com/arclabs561/qexpr/formatter/bson"
	"github.com/arclabs561/qexpr/formatter/extjson"
)

// ValidatorFactory creates a validator instance for a configuration.
type ValidatorFactory func(cfg *config.Config) *qexpr.Validator

// CodecFactory creates a new interchange codec instance.
type CodecFactory func() formatter.Codec

// ValidatorRegistry manages available validator policies.
type ValidatorRegistry struct {
	validators map[config.ReportMode]ValidatorFactory
}

// CodecRegistry manages available interchange codecs.
type CodecRegistry struct {
	codecs map[config.FormatterType]CodecFactory
}

// Registry combines validator and codec registries.
type Registry struct {
	Validators *ValidatorRegistry
	Codecs     *CodecRegistry
}

// New creates a new registry with the default validators and codecs.
func New() *Registry {
	return &Registry{
		Validators: NewValidatorRegistry(),
		Codecs:     NewCodecRegistry(),
	}
}

// NewValidatorRegistry creates a new validator registry with both built-in
// report modes registered.
func NewValidatorRegistry() *ValidatorRegistry {
	registry := &ValidatorRegistry{
		validators: make(map[config.ReportMode]ValidatorFactory),
	}
	registry.RegisterValidator(config.ReportFirst, qexpr.NewValidator)
	registry.RegisterValidator(config.ReportAll, qexpr.NewValidator)
	return registry
}

// NewCodecRegistry creates a new codec registry with the built-in BSON and
// extended JSON codecs registered.
func NewCodecRegistry() *CodecRegistry {
	registry := &CodecRegistry{
		codecs: make(map[config.FormatterType]CodecFactory),
	}
	registry.RegisterCodec(config.FormatterBSON, func() formatter.Codec { return bsonformatter.NewCodec() })
	registry.RegisterCodec(config.FormatterExtJSON, func() formatter.Codec { return extjson.NewCodec() })
	return registry
}

// RegisterValidator registers a validator factory.
func (vr *ValidatorRegistry) RegisterValidator(mode config.ReportMode, factory ValidatorFactory) {
	vr.validators[mode] = factory
}

// RegisterCodec registers a codec factory.
func (cr *CodecRegistry) RegisterCodec(formatterType config.FormatterType, factory CodecFactory) {
	cr.codecs[formatterType] = factory
}

// GetValidator creates a validator instance for the given configuration.
func (vr *ValidatorRegistry) GetValidator(cfg *config.Config) (*qexpr.Validator, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	factory, exists := vr.validators[cfg.ReportMode]
	if !exists {
		return nil, fmt.Errorf("unsupported report mode: %s", cfg.ReportMode)
	}
	return factory(cfg), nil
}

// GetCodec creates a codec instance.
func (cr *CodecRegistry) GetCodec(formatterType config.FormatterType) (formatter.Codec, error) {
	factory, exists := cr.codecs[formatterType]
	if !exists {
		return nil, fmt.Errorf("unsupported formatter type: %s", formatterType)
	}
	return factory(), nil
}

// ListReportModes returns all registered report modes.
func (vr *ValidatorRegistry) ListReportModes() []config.ReportMode {
	var modes []config.ReportMode
	for mode := range vr.validators {
		modes = append(modes, mode)
	}
	return modes
}

// ListCodecs returns all registered formatter types.
func (cr *CodecRegistry) ListCodecs() []config.FormatterType {
	var formatters []config.FormatterType
	for formatterType := range cr.codecs {
		formatters = append(formatters, formatterType)
	}
	return formatters
}

// ValidateConfig validates that a report-mode and formatter combination is
// supported. A nil config is checked as the default configuration.
func (r *Registry) ValidateConfig(cfg *config.Config) error {
	if cfg == nil {
		cfg = config.Default()
	}

	_, err := r.Validators.GetValidator(cfg)
	if err != nil {
		return fmt.Errorf("invalid report mode: %w", err)
	}

	_, err = r.Codecs.GetCodec(cfg.Formatter)
	if err != nil {
		return fmt.Errorf("invalid formatter: %w", err)
	}

	return nil
}

// Global registry instance
var DefaultRegistry = New()

// RegisterValidator registers a validator with the global registry.
func RegisterValidator(mode config.ReportMode, factory ValidatorFactory) {
	DefaultRegistry.Validators.RegisterValidator(mode, factory)
}

// RegisterCodec registers a codec with the global registry.
func RegisterCodec(formatterType config.FormatterType, factory CodecFactory) {
	DefaultRegistry.Codecs.RegisterCodec(formatterType, factory)
}
