package sat

import "fmt"

// Literal represents a literal, which either represents a boolean variable or
// its negation.
//
// The encoding packs variable id and polarity into a single int: for
// variable v (v >= 1) the positive literal is 2*v and the negative literal
// is 2*v+1. Literal(0) is Undef, the sentinel literal, which is distinct
// from the literal of every real variable since variable ids start at 1.
type Literal int

// Undef is the sentinel literal used to mark "no literal" (e.g. the FUIP
// slot before it is known, or a missing watch).
const Undef Literal = 0

// NewLiteral returns the literal of variable v with the given polarity.
func NewLiteral(v int, positive bool) Literal {
	if positive {
		return Literal(2 * v)
	}
	return Literal(2*v + 1)
}

// VarID returns the ID of the literal's variable.
func (l Literal) VarID() int {
	return int(l) / 2
}

// IsPositive returns true if and only if the literal represents the value of
// its boolean variable (i.e. not its negation).
func (l Literal) IsPositive() bool {
	return l&1 == 0
}

// Opposite returns the opposite literal.
func (l Literal) Opposite() Literal {
	return l ^ 1
}

// Xor returns l negated when positive is false, and l unchanged otherwise.
// This mirrors the sign-application used when instantiating a signed DIMACS
// literal onto a variable's positive literal.
func (l Literal) Xor(positive bool) Literal {
	if positive {
		return l
	}
	return l.Opposite()
}

func (l Literal) String() string {
	if l == Undef {
		return "undef"
	}
	if l.IsPositive() {
		return fmt.Sprintf("%d", l.VarID())
	}
	return fmt.Sprintf("-%d", l.VarID())
}
