// Package factory provides factory functions for creating validators, formatters, and codecs.
package factory

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/arclabs561/qexpr"
	"github.com/arclabs561/qexpr/config"
	"github.com/arclabs561/qexpr/formatter"
	bsonformatter "github.com/arclabs561/qexpr/formatter/bson"
	"github.com/arclabs561/qexpr/formatter/extjson"
)

// CreateValidator creates a validator for the given configuration.
func CreateValidator(cfg *config.Config) (*qexpr.Validator, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	switch cfg.ReportMode {
	case config.ReportFirst, config.ReportAll:
		return qexpr.NewValidator(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported report mode: %s", cfg.ReportMode)
	}
}

// CreateCodec creates an interchange codec based on the formatter type.
func CreateCodec(formatterType config.FormatterType) (formatter.Codec, error) {
	switch formatterType {
	case config.FormatterBSON:
		return bsonformatter.NewCodec(), nil
	case config.FormatterExtJSON:
		return extjson.NewCodec(), nil
	default:
		return nil, fmt.Errorf("unsupported formatter type: %s", formatterType)
	}
}

// CreateDocumentFormatter creates a BSON document formatter with proper typing.
func CreateDocumentFormatter() formatter.Formatter[bson.M] {
	return bsonformatter.New()
}

// CreateTextFormatter creates an extended JSON text formatter with proper typing.
func CreateTextFormatter() formatter.Formatter[[]byte] {
	return extjson.New()
}
