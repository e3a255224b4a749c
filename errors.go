package qexpr

import "errors"

// Structural validation errors reported by Validate and ValidateAll.
//
// All of them are sentinel values: match with errors.Is, including through
// the joined error returned by ValidateAll. Validation errors are purely
// diagnostic — the tree is never mutated or repaired, and every error is
// recoverable by the caller.
var (
	// ErrEmptyTerm reports a term whose payload is empty (or blank under
	// the default term policy).
	ErrEmptyTerm = errors.New("empty term")

	// ErrEmptyPhrase reports a phrase with zero terms.
	ErrEmptyPhrase = errors.New("phrase has no terms")

	// ErrNearTooFewTerms reports a proximity constraint with fewer than
	// two terms.
	ErrNearTooFewTerms = errors.New("near requires at least 2 terms")

	// ErrNegativeSlop reports a proximity constraint with a negative slop
	// bound.
	ErrNegativeSlop = errors.New("near slop must be non-negative")

	// ErrEmptyBooleanGroup reports an And or Or with zero children.
	ErrEmptyBooleanGroup = errors.New("boolean group has no children")

	// ErrBlankFieldName reports a field scope with an empty or blank name.
	ErrBlankFieldName = errors.New("blank field name")

	// ErrNilExpr reports a nil node inside the tree. The type system fixes
	// the arity of every variant, but Go interfaces make a nil child
	// representable; a nil node is always a producer bug.
	ErrNilExpr = errors.New("nil expression")
)
