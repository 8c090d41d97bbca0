package sat

import (
	"fmt"
	"io"
)

// Checker is a RUP (reverse unit propagation) proof checker for CNF
// formulas over a fixed set of variables. It bundles a ClauseStore, a
// Trail, and a PropagationIndex behind two operations: Assert, for
// permanently adding a clause known to hold, and Check, for verifying that
// a candidate clause is RUP-implied by the clauses asserted so far and, if
// so, adding it too.
type Checker struct {
	numVars int
	store   *ClauseStore
	trail   *Trail
	index   *PropagationIndex
	queue   *Queue[Literal]

	conflictAtLevel0   bool
	numLevel0Conflicts int
	numAssignments     int

	trace io.Writer
}

// NewChecker returns a Checker for a formula over numVars variables, with
// VarIDs in [0, numVars).
func NewChecker(numVars int) *Checker {
	return &Checker{
		numVars: numVars,
		store:   &ClauseStore{},
		trail:   NewTrail(numVars),
		index:   NewPropagationIndex(numVars),
		queue:   NewQueue[Literal](64),
	}
}

// SetTrace directs Checker to write one line per assignment, conflict, and
// backtrack to w. Tracing is off (nil) by default.
func (ck *Checker) SetTrace(w io.Writer) {
	ck.trace = w
}

// NumVars returns the number of variables the checker was created for.
func (ck *Checker) NumVars() int { return ck.numVars }

// NumClauses returns the number of clauses interned so far, including unit
// clauses. Tautologies are never interned and so never counted.
func (ck *Checker) NumClauses() int { return ck.store.Len() }

// NumLevel0Conflicts returns the number of times Assert or Check observed
// the formula to already be contradictory at decision level 0.
func (ck *Checker) NumLevel0Conflicts() int { return ck.numLevel0Conflicts }

// NumAssignments returns the number of literals ever committed to the
// trail, across both permanent (level 0) and hypothesis (level >= 1)
// assignments.
func (ck *Checker) NumAssignments() int { return ck.numAssignments }

// UnsatisfiableAtLevel0 reports whether a level-0 conflict has already been
// observed, meaning the asserted clauses alone are unsatisfiable.
func (ck *Checker) UnsatisfiableAtLevel0() bool { return ck.conflictAtLevel0 }

func (ck *Checker) tracef(format string, args ...any) {
	if ck.trace == nil {
		return
	}
	fmt.Fprintf(ck.trace, format, args...)
}

// isSatisfied reports whether any literal in lits currently holds.
func isSatisfied(trail *Trail, lits []Literal) bool {
	for _, l := range lits {
		if trail.Value(l) == True {
			return true
		}
	}
	return false
}

// enqueue commits l as forced by reason at level if l's variable is
// currently unassigned, scheduling it for propagation, and reports whether
// the assignment is consistent. A variable already holding l's value is a
// no-op success (the same forced fact reached from two directions); a
// variable holding l's opposite is a conflict.
func (ck *Checker) enqueue(l Literal, reason *Clause, level int) bool {
	switch ck.trail.Value(l) {
	case False:
		return false
	case True:
		return true
	default:
		ck.trail.Assign(l, reason, level)
		ck.numAssignments++
		ck.queue.Push(l)
		ck.tracef("assign %s level=%d reason=%s\n", l, level, reason)
		return true
	}
}

// propagateToFixpoint drains the propagation queue, applying
// PropagationIndex.Propagate to each newly-committed literal in turn and
// committing every literal that forces, until the queue empties or a
// conflict is found.
func (ck *Checker) propagateToFixpoint(level int) *Clause {
	enqueueAt := func(l Literal, reason *Clause) bool {
		return ck.enqueue(l, reason, level)
	}
	for ck.queue.Size() > 0 {
		l := ck.queue.Pop()
		if conflict := ck.index.Propagate(ck.trail, enqueueAt, l); conflict != nil {
			ck.queue.Clear()
			return conflict
		}
	}
	return nil
}

func (ck *Checker) recordConflict() {
	ck.conflictAtLevel0 = true
	ck.numLevel0Conflicts++
	ck.tracef("conflict at level 0\n")
}

// registerClause interns lits and, depending on what the normalized clause
// turns out to be, records a level-0 conflict, forces its sole literal, or
// registers it with the propagation index -- forcing that too if
// registration finds it presently unit. Shared by Assert (after its own
// already-satisfied check) and Check's success path (where that check does
// not apply; see hypothesizeAndPropagate).
func (ck *Checker) registerClause(lits []Literal) {
	c, tautology := ck.store.Intern(lits)
	if tautology {
		return
	}
	switch c.Len() {
	case 0:
		ck.recordConflict()
	case 1:
		ck.forceUnit(c.Literals()[0], c)
	default:
		lit, result := ck.index.AddClause(ck.trail, c)
		switch result {
		case watchConflict:
			ck.recordConflict()
		case watchUnit:
			ck.forceUnit(lit, c)
		}
	}
}

// forceUnit commits lit as forced by reason at level 0 and propagates to
// fixpoint, recording a conflict instead if lit's variable already holds
// the opposite value.
func (ck *Checker) forceUnit(lit Literal, reason *Clause) {
	if !ck.enqueue(lit, reason, 0) {
		ck.recordConflict()
		return
	}
	if conflict := ck.propagateToFixpoint(0); conflict != nil {
		ck.recordConflict()
	}
}

// Assert permanently adds lits to the knowledge base at decision level 0.
// It has no failure mode visible to the caller: a
// contradictory set of asserted clauses is a valid, if useless, input, and
// is expected to surface as Check(nil) (the empty clause) later succeeding
// immediately.
func (ck *Checker) Assert(lits []Literal) {
	if isSatisfied(ck.trail, lits) {
		return
	}
	ck.registerClause(lits)
}

// Check reports whether lits is RUP-implied by the clauses established so
// far: assuming the negation of each of its literals and propagating must
// derive a conflict. On success lits is permanently added, exactly as
// Assert would, and the checker is left at decision level 0 either way.
func (ck *Checker) Check(lits []Literal) bool {
	if len(lits) == 0 {
		// Propagation from previously asserted clauses must already have
		// produced the level-0 conflict for the empty clause to be
		// RUP-implied; there is nothing left to hypothesize.
		return ck.conflictAtLevel0
	}

	const hypothesisLevel = 1
	conflict := ck.hypothesizeAndPropagate(lits, hypothesisLevel)
	if conflict != nil {
		ck.tracef("conflict at level %d: %s\n", hypothesisLevel, conflict)
	}
	ck.trail.CancelAbove(0)
	ck.tracef("backtrack to level 0\n")
	if conflict == nil {
		ck.tracef("check failed: %v\n", lits)
		return false
	}
	ck.tracef("check succeeded: %v\n", lits)
	ck.registerClause(lits)
	return true
}

// hypothesizeAndPropagate assumes the negation of each literal of lits in
// turn, propagating to fixpoint after each new assignment, and stops as soon
// as a conflict is found. A literal of lits already holding its own value is
// not a conflict: it means the hypothesis built so far is already
// inconsistent with lits itself, so the whole check is abandoned immediately
// (a nil result, same as exhausting lits without ever propagating a
// conflict) rather than counted as a trivial success.
func (ck *Checker) hypothesizeAndPropagate(lits []Literal, level int) *Clause {
	for _, lit := range lits {
		switch ck.trail.Value(lit) {
		case True:
			return nil
		case False:
			// -lit already holds; consistent with the hypothesis already.
			continue
		default:
			ck.trail.Assign(lit.Opposite(), nil, level)
			ck.numAssignments++
			ck.queue.Push(lit.Opposite())
			ck.tracef("hypothesize %s\n", lit.Opposite())
			if conflict := ck.propagateToFixpoint(level); conflict != nil {
				return conflict
			}
		}
	}
	return nil
}
