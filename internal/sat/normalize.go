package sat

import "sync"

// seenPool holds scratch sets reused across calls to normalizeLiterals,
// avoiding a fresh allocation per call. Pulled out to package scope since
// normalization has no single long-lived struct to hang the field off.
var seenPool = sync.Pool{
	New: func() any { return make(map[Literal]struct{}) },
}

// normalizeLiterals removes duplicate literals from lits in place and
// reports whether the clause is a tautology (a literal and its negation both
// present, which makes the clause trivially true and unregisterable).
//
// This runs unconditionally for every clause handed to ClauseStore.Intern.
// The original C++ this spec was distilled from defined an equivalent
// _removeDuplictedLiterals but never called it from the main path; that is
// fixed here.
func normalizeLiterals(lits []Literal) (normalized []Literal, tautology bool) {
	seen := seenPool.Get().(map[Literal]struct{})
	defer func() {
		clear(seen)
		seenPool.Put(seen)
	}()

	size := len(lits)
	for i := size - 1; i >= 0; i-- {
		l := lits[i]
		if _, ok := seen[l.Opposite()]; ok {
			return nil, true
		}
		if _, ok := seen[l]; ok {
			size--
			lits[i], lits[size] = lits[size], lits[i]
			continue
		}
		seen[l] = struct{}{}
	}
	return lits[:size], false
}
