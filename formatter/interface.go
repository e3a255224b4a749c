// Package formatter provides interfaces for query expression interchange formatters.
package formatter

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/arclabs561/qexpr"
)

// Formatter represents an expression encoder for a specific interchange type.
//
// Formatters are shape-preserving: they lower a tree to the target
// representation without validating, rewriting, or repairing it, so an
// interchange peer receiving an ill-formed tree sees the same validator
// verdict the sender would.
type Formatter[T any] interface {
	Format(expr qexpr.Expr) (T, error)
}

// Codec is the byte-level interchange surface: an encoder paired with its
// inverse. Unmarshal rebuilds the tree shape without validating it, so both
// interchange peers observe the same validator verdict for the same tree.
type Codec interface {
	Marshal(expr qexpr.Expr) ([]byte, error)
	Unmarshal(data []byte) (qexpr.Expr, error)
}

// Type aliases for formatter types
type DocumentFormatter = Formatter[bson.M]
type TextFormatter = Formatter[[]byte]
