package sat

import "log"

// Trail is the assignment trail: the chronologically-ordered record of
// literals assigned so far, each tagged with the decision level and reason
// clause its variable was assigned at.
type Trail struct {
	value  []LBool  // indexed by Literal: True iff that literal currently holds
	reason []*Clause // indexed by VarID
	level  []int     // indexed by VarID
	lits   []Literal // chronological assignment order
}

// NewTrail returns a Trail sized for numVars variables (VarIDs in
// [0, numVars)), all initially unassigned.
func NewTrail(numVars int) *Trail {
	return &Trail{
		value:  make([]LBool, 2*numVars),
		reason: make([]*Clause, numVars),
		level:  make([]int, numVars),
		lits:   make([]Literal, 0, numVars),
	}
}

// Value reports whether l currently holds, is falsified, or is unassigned.
func (t *Trail) Value(l Literal) LBool {
	return t.value[l]
}

// VarValue reports the current value of variable v's positive literal.
func (t *Trail) VarValue(v int) LBool {
	return t.value[PositiveLiteral(v)]
}

// Reason returns the clause that forced variable v's current assignment by
// unit propagation, or nil if v is unassigned or was assigned as a
// hypothesis.
func (t *Trail) Reason(v int) *Clause {
	return t.reason[v]
}

// Level returns the decision level at which variable v was assigned. The
// result is meaningless if v is currently unassigned.
func (t *Trail) Level(v int) int {
	return t.level[v]
}

// Len returns the number of literals currently assigned.
func (t *Trail) Len() int {
	return len(t.lits)
}

// Literals returns the trail in chronological assignment order. Callers
// must not retain the returned slice across a call to Assign or
// CancelAbove.
func (t *Trail) Literals() []Literal {
	return t.lits
}

// Assign records l as newly assigned at the given decision level with the
// given reason clause (nil for a hypothesis). The precondition that l's
// variable is currently unassigned must already hold: violating it is an
// internal invariant failure, not a recoverable condition, so Assign fails
// fast rather than silently overwriting state a caller elsewhere may be
// relying on.
func (t *Trail) Assign(l Literal, reason *Clause, level int) {
	v := l.VarID()
	if t.value[PositiveLiteral(v)] != Unknown {
		log.Fatalf("sat: Assign precondition violated: variable %d already assigned", v)
	}
	t.value[l] = True
	t.value[l.Opposite()] = False
	t.reason[v] = reason
	t.level[v] = level
	t.lits = append(t.lits, l)
}

// CancelAbove undoes every assignment made at a decision level greater than
// level, restoring those variables to Unknown. It runs in time proportional
// to the number of assignments undone.
func (t *Trail) CancelAbove(level int) {
	i := len(t.lits)
	for i > 0 && t.level[t.lits[i-1].VarID()] > level {
		i--
	}
	for _, l := range t.lits[i:] {
		v := l.VarID()
		t.value[l] = Unknown
		t.value[l.Opposite()] = Unknown
		t.reason[v] = nil
	}
	t.lits = t.lits[:i]
}
