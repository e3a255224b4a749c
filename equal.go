package qexpr

// Equal reports whether two expressions are structurally equal: same
// variant at every node, same term payloads, same Near bounds and ordering
// flags, same field names, and children equal pairwise in order.
//
// Equality is value-based; two trees built independently from the same
// input compare equal. Two nil expressions compare equal.
func Equal(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case Term:
		y, ok := b.(Term)
		return ok && x == y
	case Phrase:
		y, ok := b.(Phrase)
		return ok && termsEqual(x.Terms, y.Terms)
	case Near:
		y, ok := b.(Near)
		return ok && x.Slop == y.Slop && x.Ordered == y.Ordered && termsEqual(x.Terms, y.Terms)
	case And:
		y, ok := b.(And)
		return ok && exprsEqual(x.Children, y.Children)
	case Or:
		y, ok := b.(Or)
		return ok && exprsEqual(x.Children, y.Children)
	case Not:
		y, ok := b.(Not)
		return ok && Equal(x.Expr, y.Expr)
	case Field:
		y, ok := b.(Field)
		return ok && x.Name == y.Name && Equal(x.Expr, y.Expr)
	}
	return false
}

func termsEqual(a, b []Term) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func exprsEqual(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
