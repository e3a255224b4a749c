// Package extjson provides a canonical extended JSON interchange format for
// query expressions, for peers that want a text wire format rather than raw
// BSON bytes. The document layout is identical to the bson formatter's.
package extjson

import (
	mongobson "go.mongodb.org/mongo-driver/bson"

	"github.com/arclabs561/qexpr"
	"github.com/arclabs561/qexpr/formatter"
	bsonformatter "github.com/arclabs561/qexpr/formatter/bson"
)

// Formatter represents an extended JSON formatter for query expressions.
type Formatter struct {
	// Canonical selects canonical extended JSON; relaxed otherwise.
	Canonical bool
}

// New creates a new extended JSON formatter producing canonical output.
func New() *Formatter {
	return &Formatter{Canonical: true}
}

// Ensure Formatter implements the generic interface
var _ formatter.Formatter[[]byte] = (*Formatter)(nil)

// Format renders an expression tree as extended JSON text.
func (f *Formatter) Format(expr qexpr.Expr) ([]byte, error) {
	doc, err := bsonformatter.Encode(expr)
	if err != nil {
		return nil, err
	}
	return mongobson.MarshalExtJSON(doc, f.Canonical, false)
}

// Codec is the byte-level extended JSON interchange surface.
type Codec struct{}

// NewCodec creates a new extended JSON codec instance producing canonical output.
func NewCodec() Codec {
	return Codec{}
}

// Ensure Codec implements the formatter interface
var _ formatter.Codec = Codec{}

// Marshal renders an expression tree as canonical extended JSON text.
func (Codec) Marshal(expr qexpr.Expr) ([]byte, error) {
	return New().Format(expr)
}

// Unmarshal rebuilds an expression tree from extended JSON text.
func (Codec) Unmarshal(data []byte) (qexpr.Expr, error) {
	return Unmarshal(data)
}

// Unmarshal rebuilds an expression tree from extended JSON text.
func Unmarshal(data []byte) (qexpr.Expr, error) {
	var doc mongobson.M
	if err := mongobson.UnmarshalExtJSON(data, true, &doc); err != nil {
		return nil, err
	}
	return bsonformatter.Decode(doc)
}
