// Package qexpr provides a typed query-expression algebra for retrieval systems.
//
// The package models the meaning of a query — boolean composition of terms,
// phrases, proximity constraints, and field scoping — as an immutable tree of
// typed nodes, independent of any query syntax or index backend. Producers
// (parsers, query builders) construct trees bottom-up with the New*
// constructors, validate them once with Validate at a natural checkpoint, and
// hand them to downstream plan compilers. The package is intentionally not a
// parser and not an execution engine.
package qexpr

import (
	"fmt"
	"strings"
)

// Expr is the interface implemented by all query expression nodes.
//
// The variant set is closed: Term, Phrase, Near, And, Or, Not, and Field.
// Consumers should dispatch with an exhaustive type switch over these
// concrete types.
type Expr interface {
	fmt.Stringer
	expr() // marker method
}

// Term is a single atomic query token.
//
// The payload is opaque to this package: normalization policy (casing,
// stemming, tokenization) belongs to the producer. Equality is value-based.
type Term struct {
	Text string
}

// Phrase is an ordered sequence of terms that must appear contiguously and
// in the given order. A one-term phrase is legal and semantically equivalent
// to the bare term.
type Phrase struct {
	Terms []Term
}

// Near is a proximity constraint over a sequence of terms.
//
// Slop bounds the maximum token-distance between the terms: there must exist
// an assignment of positions, one per term, with max(pos)-min(pos) <= Slop.
// If Ordered is true the terms must additionally respect their given
// relative order.
type Near struct {
	Terms   []Term
	Slop    int
	Ordered bool
}

// And is an n-ary conjunction: all children must match. A single-child And
// collapses semantically to its child.
type And struct {
	Children []Expr
}

// Or is an n-ary disjunction: any child may match. A single-child Or
// collapses semantically to its child.
type Or struct {
	Children []Expr
}

// Not negates its inner expression, excluding its matches.
type Not struct {
	Expr Expr
}

// Field scopes an expression to a named field (e.g. title:term).
//
// Evaluation requires field-aware indexing or a compiler that rewrites the
// scope into field-specific terms.
type Field struct {
	Name string
	Expr Expr
}

func (Term) expr()   {}
func (Phrase) expr() {}
func (Near) expr()   {}
func (And) expr()    {}
func (Or) expr()     {}
func (Not) expr()    {}
func (Field) expr()  {}

// NewTerm creates a term. Construction never fails; an empty or blank
// payload is a validation concern, not a constructor concern, so trees can
// be assembled from streaming or partial input.
func NewTerm(text string) Term {
	return Term{Text: text}
}

// NewPhrase creates a phrase from the given terms. Any sequence is accepted,
// including an empty one; emptiness is flagged by the validator.
func NewPhrase(terms ...Term) Phrase {
	return Phrase{Terms: terms}
}

// NewNear creates a proximity constraint. Term count and slop sign are
// validator concerns, not constructor concerns.
func NewNear(terms []Term, slop int, ordered bool) Near {
	return Near{Terms: terms, Slop: slop, Ordered: ordered}
}

// NewAnd creates an n-ary conjunction of the given children.
func NewAnd(children ...Expr) And {
	return And{Children: children}
}

// NewOr creates an n-ary disjunction of the given children.
func NewOr(children ...Expr) Or {
	return Or{Children: children}
}

// NewNot creates a negation of the given child expression.
func NewNot(child Expr) Not {
	return Not{Expr: child}
}

// NewField scopes the given expression to a named field.
func NewField(name string, child Expr) Field {
	return Field{Name: name, Expr: child}
}

// IsBlank reports whether the term payload is empty or whitespace-only.
func (t Term) IsBlank() bool {
	return strings.TrimSpace(t.Text) == ""
}

// Compare orders terms by payload, returning -1, 0, or +1.
func (t Term) Compare(other Term) int {
	return strings.Compare(t.Text, other.Text)
}

// String returns a compact diagnostic rendering of the term.
func (t Term) String() string {
	return fmt.Sprintf("term(%q)", t.Text)
}

// String returns a compact diagnostic rendering of the phrase.
func (p Phrase) String() string {
	return "phrase(" + joinTerms(p.Terms) + ")"
}

// String returns a compact diagnostic rendering of the proximity constraint.
func (n Near) String() string {
	kind := "near"
	if n.Ordered {
		kind = "onear"
	}
	return fmt.Sprintf("%s/%d(%s)", kind, n.Slop, joinTerms(n.Terms))
}

// String returns a compact diagnostic rendering of the conjunction.
func (a And) String() string {
	return "and(" + joinExprs(a.Children) + ")"
}

// String returns a compact diagnostic rendering of the disjunction.
func (o Or) String() string {
	return "or(" + joinExprs(o.Children) + ")"
}

// String returns a compact diagnostic rendering of the negation.
func (n Not) String() string {
	if n.Expr == nil {
		return "not()"
	}
	return "not(" + n.Expr.String() + ")"
}

// String returns a compact diagnostic rendering of the field scope.
func (f Field) String() string {
	inner := ""
	if f.Expr != nil {
		inner = f.Expr.String()
	}
	return fmt.Sprintf("field(%q, %s)", f.Name, inner)
}

func joinTerms(terms []Term) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = fmt.Sprintf("%q", t.Text)
	}
	return strings.Join(parts, ", ")
}

func joinExprs(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		if e == nil {
			parts[i] = "<nil>"
			continue
		}
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}
