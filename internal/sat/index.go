package sat

// implEntry is one edge of a binary clause's implication list: when the
// owning literal is falsified, other must hold, unless it already does (the
// clause is satisfied) or is itself falsified (a conflict).
type implEntry struct {
	clause *Clause
	other  Literal
}

// PropagationIndex drives unit propagation via two parallel tables over
// literals: a binary-implication table for
// 2-literal clauses, checked directly with no rewatching, and a
// two-watched-literal table for clauses of length >= 3. Both tables are
// indexed by the literal whose falsification should trigger a check --
// i.e. watch-list(L) and impl-list(L) hold clauses that name L as one of
// their two watched/implying literals, matched against sat.Checker's call
// with the literal that was just assigned true.
type PropagationIndex struct {
	impl  [][]implEntry
	watch [][]*Clause
}

// NewPropagationIndex returns an index sized for numVars variables.
func NewPropagationIndex(numVars int) *PropagationIndex {
	n := 2 * numVars
	return &PropagationIndex{
		impl:  make([][]implEntry, n),
		watch: make([][]*Clause, n),
	}
}

// watchResult classifies the outcome of AddClause's registration scan.
type watchResult int

const (
	watchNormal   watchResult = iota // two or more unassigned literals found
	watchUnit                        // exactly one unassigned literal found
	watchConflict                    // zero unassigned literals: already falsified
)

// AddClause registers c (whose length must be >= 2) into the index,
// choosing its two watched literals: the first two unassigned literals
// encountered, or, if only one is unassigned, that literal plus the
// falsified literal with the highest decision level (so the clause keeps
// behaving correctly even after the level that falsified its other
// literals is later superseded).
//
// A clause with zero unassigned literals is already falsified under the
// current trail and is left unregistered: sat.Checker only ever calls
// AddClause at decision level 0, which is never undone, so such a clause
// can never become unfalsified and a watch on it would never fire again.
func (idx *PropagationIndex) AddClause(trail *Trail, c *Clause) (unit Literal, result watchResult) {
	lits := c.literals
	n := 0
	for i, l := range lits {
		if trail.Value(l) != Unknown {
			continue
		}
		switch n {
		case 0:
			lits[0], lits[i] = lits[i], lits[0]
		case 1:
			lits[1], lits[i] = lits[i], lits[1]
		}
		n++
		if n == 2 {
			break
		}
	}

	switch n {
	case 0:
		return 0, watchConflict
	case 1:
		maxLevel, maxAt := -1, 1
		for i := 1; i < len(lits); i++ {
			if lvl := trail.Level(lits[i].VarID()); lvl > maxLevel {
				maxLevel, maxAt = lvl, i
			}
		}
		lits[1], lits[maxAt] = lits[maxAt], lits[1]
		idx.register(c)
		return lits[0], watchUnit
	default:
		idx.register(c)
		return 0, watchNormal
	}
}

func (idx *PropagationIndex) register(c *Clause) {
	lits := c.literals
	if len(lits) == 2 {
		idx.impl[lits[0]] = append(idx.impl[lits[0]], implEntry{c, lits[1]})
		idx.impl[lits[1]] = append(idx.impl[lits[1]], implEntry{c, lits[0]})
		return
	}
	idx.watch[lits[0]] = append(idx.watch[lits[0]], c)
	idx.watch[lits[1]] = append(idx.watch[lits[1]], c)
}

// scanNonFalse returns the index (>= 2) of the first literal in c that is
// not falsified under trail, resuming from c's remembered scan position and
// wrapping around once, or -1 if every literal from position 2 onward is
// falsified.
func scanNonFalse(trail *Trail, c *Clause) int {
	lits := c.literals
	if c.scanFrom < 2 || c.scanFrom >= len(lits) {
		c.scanFrom = 2
	}
	for i := c.scanFrom; i < len(lits); i++ {
		if trail.Value(lits[i]) != False {
			c.scanFrom = i
			return i
		}
	}
	for i := 2; i < c.scanFrom; i++ {
		if trail.Value(lits[i]) != False {
			c.scanFrom = i
			return i
		}
	}
	return -1
}

// moveWatch transfers c's watch from oldLit (whichever of c.literals[0],
// c.literals[1] currently equals it) to the literal presently at position
// pos (pos >= 2), swapping it into oldLit's slot so the clause's first two
// literals remain its two watched literals. It only adds c to the new
// literal's watch list; removing c from oldLit's watch list is the caller's
// job.
func (idx *PropagationIndex) moveWatch(oldLit Literal, c *Clause, pos int) {
	lits := c.literals
	newLit := lits[pos]
	if lits[0] == oldLit {
		lits[0], lits[pos] = lits[pos], lits[0]
	} else {
		lits[1], lits[pos] = lits[pos], lits[1]
	}
	idx.watch[newLit] = append(idx.watch[newLit], c)
}

// Propagate processes literal l having just been assigned true, so its
// opposite is freshly falsified. It calls enqueue for every literal thereby
// forced, and returns the clause responsible for a conflict, or nil if none
// is found. enqueue reports false if the literal it was asked to force
// already holds the opposite value; Propagate treats that exactly like
// discovering the conflict itself, via the implication/watch list entry
// that triggered it.
func (idx *PropagationIndex) Propagate(trail *Trail, enqueue func(Literal, *Clause) bool, l Literal) *Clause {
	falsified := l.Opposite()

	for _, e := range idx.impl[falsified] {
		switch trail.Value(e.other) {
		case True:
			continue
		case False:
			return e.clause
		default:
			if !enqueue(e.other, e.clause) {
				return e.clause
			}
		}
	}

	wl := idx.watch[falsified]
	for i := 0; i < len(wl); i++ {
		c := wl[i]
		lits := c.literals
		other := lits[0]
		if other == falsified {
			other = lits[1]
		}

		switch trail.Value(other) {
		case True:
			continue // other satisfies the clause; leave the watch in place

		case Unknown:
			pos := scanNonFalse(trail, c)
			switch {
			case pos < 0:
				// every other literal is falsified: other is forced.
				if !enqueue(other, c) {
					idx.watch[falsified] = wl
					return c
				}
			case trail.Value(lits[pos]) == True:
				// found a satisfying literal further in; leave as is.
			default:
				wl[i] = wl[len(wl)-1]
				wl = wl[:len(wl)-1]
				i--
				idx.moveWatch(falsified, c, pos)
			}

		default: // other is falsified too
			pos := scanNonFalse(trail, c)
			if pos < 0 {
				idx.watch[falsified] = wl
				return c
			}
			if trail.Value(lits[pos]) == True {
				continue
			}
			wl[i] = wl[len(wl)-1]
			wl = wl[:len(wl)-1]
			i--
			newLit := lits[pos]
			idx.moveWatch(falsified, c, pos)

			// Both of c's original watches were falsified; look for a
			// second live literal so `other` also moves off a falsified
			// slot rather than staying put until the next propagation.
			pos2 := scanNonFalse(trail, c)
			switch {
			case pos2 < 0:
				if !enqueue(newLit, c) {
					return c
				}
			case trail.Value(lits[pos2]) == True:
				// satisfied; leave other's watch where it is.
			default:
				ow := idx.watch[other]
				for j := range ow {
					if ow[j] == c {
						ow[j] = ow[len(ow)-1]
						idx.watch[other] = ow[:len(ow)-1]
						break
					}
				}
				idx.moveWatch(other, c, pos2)
			}
		}
	}
	idx.watch[falsified] = wl
	return nil
}
