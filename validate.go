package qexpr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arclabs561/qexpr/config"
)

// Validate walks the expression tree in pre-order and returns the first
// structural violation found, or nil if the tree is well-formed.
//
// The traversal visits each node's local checks before its children and
// children in their stored order, so the reported violation always belongs
// to the left-most, shallowest offending node. The result is a deterministic
// function of the tree's shape: the same tree fails identically on every
// call. Per-node checks, in order:
//
//   - Term: payload must not be blank.
//   - Phrase: at least one term, then every term non-blank left to right.
//   - Near: at least two terms, then slop >= 0, then every term non-blank.
//   - And/Or: at least one child, then every child recursively.
//   - Not: the child recursively.
//   - Field: non-blank name, then the child recursively.
//
// Validate uses the default policy (blank-term semantics). Use NewValidator
// to configure reporting and term policy.
func Validate(e Expr) error {
	return defaultValidator.Validate(e)
}

// ValidateAll walks the entire expression tree in pre-order and returns
// every structural violation joined into a single error, or nil if the tree
// is well-formed. Individual violations remain matchable with errors.Is.
func ValidateAll(e Expr) error {
	v := Validator{mode: config.ReportAll, policy: config.TermPolicyBlank}
	return v.Validate(e)
}

var defaultValidator = Validator{
	mode:   config.ReportFirst,
	policy: config.TermPolicyBlank,
}

// Validator validates expression trees under a configured policy.
//
// Construct instances with NewValidator. A Validator is stateless and safe
// for concurrent use.
type Validator struct {
	mode   config.ReportMode
	policy config.TermPolicy
}

// NewValidator creates a validator from the given configuration. A nil
// config selects the defaults (first-error reporting, blank-term policy).
func NewValidator(cfg *config.Config) *Validator {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Validator{mode: cfg.ReportMode, policy: cfg.TermPolicy}
}

// Validate checks the tree under the validator's policy. In first-error
// mode it returns the pre-order first violation; in report-all mode it
// returns every violation joined with errors.Join. Either way a nil result
// means the tree is well-formed.
func (v Validator) Validate(e Expr) error {
	if v.mode == config.ReportAll {
		var errs []error
		v.walk(e, func(err error) bool {
			errs = append(errs, err)
			return true
		})
		return errors.Join(errs...)
	}

	var first error
	v.walk(e, func(err error) bool {
		first = err
		return false
	})
	return first
}

// walk traverses e in pre-order, reporting each violation to emit. If emit
// returns false the traversal stops.
func (v Validator) walk(e Expr, emit func(error) bool) bool {
	switch node := e.(type) {
	case nil:
		return emit(ErrNilExpr)
	case Term:
		if v.termEmpty(node) {
			return emit(ErrEmptyTerm)
		}
	case Phrase:
		if len(node.Terms) == 0 {
			return emit(ErrEmptyPhrase)
		}
		for _, t := range node.Terms {
			if v.termEmpty(t) {
				if !emit(ErrEmptyTerm) {
					return false
				}
			}
		}
	case Near:
		// Check order is fixed: term count, then slop, then term payloads.
		if len(node.Terms) < 2 {
			if !emit(ErrNearTooFewTerms) {
				return false
			}
		}
		if node.Slop < 0 {
			if !emit(ErrNegativeSlop) {
				return false
			}
		}
		for _, t := range node.Terms {
			if v.termEmpty(t) {
				if !emit(ErrEmptyTerm) {
					return false
				}
			}
		}
	case And:
		return v.walkChildren(node.Children, emit)
	case Or:
		return v.walkChildren(node.Children, emit)
	case Not:
		return v.walk(node.Expr, emit)
	case Field:
		if strings.TrimSpace(node.Name) == "" {
			if !emit(ErrBlankFieldName) {
				return false
			}
		}
		return v.walk(node.Expr, emit)
	default:
		return emit(fmt.Errorf("unsupported expression type %T", e))
	}
	return true
}

func (v Validator) walkChildren(children []Expr, emit func(error) bool) bool {
	if len(children) == 0 {
		return emit(ErrEmptyBooleanGroup)
	}
	for _, child := range children {
		if !v.walk(child, emit) {
			return false
		}
	}
	return true
}

func (v Validator) termEmpty(t Term) bool {
	if v.policy == config.TermPolicyStrict {
		return t.Text == ""
	}
	return t.IsBlank()
}
