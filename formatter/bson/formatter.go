// Package bson provides the BSON document interchange format for query expressions.
//
// The wire layout is externally tagged: every node becomes a single-key
// document whose key names the variant.
//
//	{"term": "alpha"}
//	{"phrase": ["new", "york"]}
//	{"near": {"terms": ["deep", "learning"], "slop": 5, "ordered": false}}
//	{"and": [ ... ]}   {"or": [ ... ]}   {"not": { ... }}
//	{"field": {"name": "title", "expr": { ... }}}
package bson

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/arclabs561/qexpr"
	"github.com/arclabs561/qexpr/formatter"
)

// Variant tags of the wire layout.
const (
	tagTerm   = "term"
	tagPhrase = "phrase"
	tagNear   = "near"
	tagAnd    = "and"
	tagOr     = "or"
	tagNot    = "not"
	tagField  = "field"
)

// Formatter represents a BSON document formatter for query expressions.
type Formatter struct{}

// New creates a new BSON formatter instance.
func New() *Formatter {
	return &Formatter{}
}

// Ensure Formatter implements the generic interface
var _ formatter.Formatter[bson.M] = (*Formatter)(nil)

// Format lowers an expression tree into its BSON interchange document.
// It encodes shape only; structural validity remains the validator's job.
func (f *Formatter) Format(expr qexpr.Expr) (bson.M, error) {
	return Encode(expr)
}

// Encode lowers an expression tree into its BSON interchange document.
func Encode(expr qexpr.Expr) (bson.M, error) {
	switch node := expr.(type) {
	case qexpr.Term:
		return bson.M{tagTerm: node.Text}, nil
	case qexpr.Phrase:
		return bson.M{tagPhrase: encodeTerms(node.Terms)}, nil
	case qexpr.Near:
		return bson.M{tagNear: bson.M{
			"terms":   encodeTerms(node.Terms),
			"slop":    int64(node.Slop),
			"ordered": node.Ordered,
		}}, nil
	case qexpr.And:
		children, err := encodeChildren(node.Children)
		if err != nil {
			return nil, err
		}
		return bson.M{tagAnd: children}, nil
	case qexpr.Or:
		children, err := encodeChildren(node.Children)
		if err != nil {
			return nil, err
		}
		return bson.M{tagOr: children}, nil
	case qexpr.Not:
		child, err := Encode(node.Expr)
		if err != nil {
			return nil, err
		}
		return bson.M{tagNot: child}, nil
	case qexpr.Field:
		child, err := Encode(node.Expr)
		if err != nil {
			return nil, err
		}
		return bson.M{tagField: bson.M{"name": node.Name, "expr": child}}, nil
	case nil:
		return nil, fmt.Errorf("cannot encode nil expression")
	default:
		return nil, fmt.Errorf("cannot encode expression type %T", expr)
	}
}

// Decode rebuilds an expression tree from its BSON interchange document.
//
// Decode checks wire shape only (unknown variant tag, wrong value type);
// it deliberately accepts trees that fail validation so the receiving side
// can run the validator itself and observe the same verdict as the sender.
func Decode(doc bson.M) (qexpr.Expr, error) {
	if len(doc) != 1 {
		return nil, fmt.Errorf("expected a single-key variant document, got %d keys", len(doc))
	}
	for tag, value := range doc {
		switch tag {
		case tagTerm:
			text, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("term payload must be a string, got %T", value)
			}
			return qexpr.NewTerm(text), nil
		case tagPhrase:
			terms, err := decodeTerms(value)
			if err != nil {
				return nil, fmt.Errorf("phrase: %w", err)
			}
			return qexpr.NewPhrase(terms...), nil
		case tagNear:
			return decodeNear(value)
		case tagAnd:
			children, err := decodeChildren(value)
			if err != nil {
				return nil, fmt.Errorf("and: %w", err)
			}
			return qexpr.NewAnd(children...), nil
		case tagOr:
			children, err := decodeChildren(value)
			if err != nil {
				return nil, fmt.Errorf("or: %w", err)
			}
			return qexpr.NewOr(children...), nil
		case tagNot:
			child, err := decodeChild(value)
			if err != nil {
				return nil, fmt.Errorf("not: %w", err)
			}
			return qexpr.NewNot(child), nil
		case tagField:
			return decodeField(value)
		default:
			return nil, fmt.Errorf("unknown variant tag %q", tag)
		}
	}
	return nil, fmt.Errorf("empty variant document")
}

// Codec is the byte-level BSON interchange surface.
type Codec struct{}

// NewCodec creates a new BSON codec instance.
func NewCodec() Codec {
	return Codec{}
}

// Ensure Codec implements the formatter interface
var _ formatter.Codec = Codec{}

// Marshal encodes an expression tree to BSON bytes.
func (Codec) Marshal(expr qexpr.Expr) ([]byte, error) {
	return Marshal(expr)
}

// Unmarshal rebuilds an expression tree from BSON bytes.
func (Codec) Unmarshal(data []byte) (qexpr.Expr, error) {
	return Unmarshal(data)
}

// Marshal encodes an expression tree to BSON bytes for byte-level interchange.
func Marshal(expr qexpr.Expr) ([]byte, error) {
	doc, err := Encode(expr)
	if err != nil {
		return nil, err
	}
	return bson.Marshal(doc)
}

// Unmarshal rebuilds an expression tree from BSON bytes.
func Unmarshal(data []byte) (qexpr.Expr, error) {
	var doc bson.M
	if err := bson.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return Decode(doc)
}

func encodeTerms(terms []qexpr.Term) bson.A {
	out := make(bson.A, len(terms))
	for i, t := range terms {
		out[i] = t.Text
	}
	return out
}

func encodeChildren(children []qexpr.Expr) (bson.A, error) {
	out := make(bson.A, len(children))
	for i, child := range children {
		doc, err := Encode(child)
		if err != nil {
			return nil, err
		}
		out[i] = doc
	}
	return out, nil
}

func decodeTerms(value interface{}) ([]qexpr.Term, error) {
	seq, err := asArray(value)
	if err != nil {
		return nil, err
	}
	terms := make([]qexpr.Term, len(seq))
	for i, item := range seq {
		text, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("term %d must be a string, got %T", i, item)
		}
		terms[i] = qexpr.NewTerm(text)
	}
	return terms, nil
}

func decodeChildren(value interface{}) ([]qexpr.Expr, error) {
	seq, err := asArray(value)
	if err != nil {
		return nil, err
	}
	children := make([]qexpr.Expr, len(seq))
	for i, item := range seq {
		doc, err := asDocument(item)
		if err != nil {
			return nil, fmt.Errorf("child %d: %w", i, err)
		}
		child, err := Decode(doc)
		if err != nil {
			return nil, fmt.Errorf("child %d: %w", i, err)
		}
		children[i] = child
	}
	return children, nil
}

func decodeChild(value interface{}) (qexpr.Expr, error) {
	doc, err := asDocument(value)
	if err != nil {
		return nil, err
	}
	return Decode(doc)
}

func decodeNear(value interface{}) (qexpr.Expr, error) {
	doc, err := asDocument(value)
	if err != nil {
		return nil, fmt.Errorf("near: %w", err)
	}
	terms, err := decodeTerms(doc["terms"])
	if err != nil {
		return nil, fmt.Errorf("near: %w", err)
	}
	slop, err := asInt(doc["slop"])
	if err != nil {
		return nil, fmt.Errorf("near slop: %w", err)
	}
	ordered, ok := doc["ordered"].(bool)
	if !ok {
		return nil, fmt.Errorf("near ordered must be a boolean, got %T", doc["ordered"])
	}
	return qexpr.NewNear(terms, slop, ordered), nil
}

func decodeField(value interface{}) (qexpr.Expr, error) {
	doc, err := asDocument(value)
	if err != nil {
		return nil, fmt.Errorf("field: %w", err)
	}
	name, ok := doc["name"].(string)
	if !ok {
		return nil, fmt.Errorf("field name must be a string, got %T", doc["name"])
	}
	child, err := decodeChild(doc["expr"])
	if err != nil {
		return nil, fmt.Errorf("field: %w", err)
	}
	return qexpr.NewField(name, child), nil
}

// asDocument accepts both bson.M (in-memory construction) and bson.D
// (the driver's default unmarshal form for nested documents).
func asDocument(value interface{}) (bson.M, error) {
	switch v := value.(type) {
	case bson.M:
		return v, nil
	case bson.D:
		return v.Map(), nil
	default:
		return nil, fmt.Errorf("expected a document, got %T", value)
	}
}

func asArray(value interface{}) (bson.A, error) {
	switch v := value.(type) {
	case bson.A:
		return v, nil
	case []interface{}:
		return bson.A(v), nil
	default:
		return nil, fmt.Errorf("expected an array, got %T", value)
	}
}

func asInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case int:
		return v, nil
	default:
		return 0, fmt.Errorf("expected an integer, got %T", value)
	}
}
