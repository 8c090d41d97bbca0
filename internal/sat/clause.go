package sat

import "strings"

// Clause is an ordered, duplicate-free, non-tautological disjunction of
// literals. Once a Clause is returned by ClauseStore.Intern its length never
// changes and its backing array is never reallocated: a PropagationIndex
// keeps references to it and, for clauses of length >= 3, to specific slots
// within it, so both the clause's address and its length must stay stable
// for the store's lifetime.
//
// The first two slots are the exception: PropagationIndex rewrites them in
// place as the watched-literal invariant is maintained. A *Clause is itself
// a stable, non-owning clause identity -- Go's non-moving garbage collector
// already gives pointers the address stability an arena would otherwise
// need to provide by hand.
type Clause struct {
	literals []Literal

	// scanFrom remembers where PropagationIndex last stopped scanning this
	// clause for a new literal to watch, so repeated propagation of long
	// clauses does not always rescan from position 2. It is bookkeeping
	// private to the index, not part of the clause's logical content.
	scanFrom int
}

// Literals returns the clause's literals. The first two elements are always
// the two watched literals; callers must not assume any fixed order for the
// remainder, since those can move during rewatching too.
func (c *Clause) Literals() []Literal {
	return c.literals
}

// Len returns the number of literals in the clause.
func (c *Clause) Len() int {
	return len(c.literals)
}

func (c *Clause) String() string {
	if len(c.literals) == 0 {
		return "Clause[]"
	}
	sb := strings.Builder{}
	sb.WriteString("Clause[")
	sb.WriteString(c.literals[0].String())
	for _, l := range c.literals[1:] {
		sb.WriteByte(' ')
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// ClauseStore owns the backing storage for every clause accepted by a
// Checker, whether an original input clause or one added by a successful
// RUP check. Clauses are never deleted, so the store only ever grows.
type ClauseStore struct {
	clauses []*Clause
}

// Intern normalizes lits (duplicate removal and tautology detection) and, if
// the clause is not a tautology, allocates a permanent Clause for the
// normalized literals. lits is reordered in place by normalization; callers
// must not depend on its order or reuse it as a clause's backing array
// afterwards.
//
// Intern does not consult the current assignment: whether a clause is
// already satisfied, falsified, or unit under the trail is the Checker's
// responsibility, not the store's (see sat.Checker.Assert/Check). A returned
// Clause may therefore have 0 literals (an immediately-contradictory input)
// or 1 literal (a unit clause, interned so it has a stable identity to serve
// as a reason pointer, but never registered with a PropagationIndex).
func (s *ClauseStore) Intern(lits []Literal) (c *Clause, tautology bool) {
	normalized, tautology := normalizeLiterals(lits)
	if tautology {
		return nil, true
	}
	c = &Clause{literals: append([]Literal(nil), normalized...)}
	s.clauses = append(s.clauses, c)
	return c, false
}

// Len returns the number of clauses ever interned (including unit clauses).
func (s *ClauseStore) Len() int {
	return len(s.clauses)
}
