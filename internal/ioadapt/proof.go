package ioadapt

import (
	"errors"
	"fmt"

	"github.com/rhartert/dimacs"

	"github.com/rhartert/rupcheck/internal/sat"
)

// ErrProofRefuted is returned by CheckProof when a proof step is not
// RUP-implied by the clauses established before it.
var ErrProofRefuted = errors.New("proof step is not RUP-implied by the preceding clauses")

// errProofComplete is a sentinel used internally to stop the underlying
// DIMACS scan as soon as the empty clause is derived; CheckProof never
// returns it.
var errProofComplete = errors.New("rupcheck: proof complete")

// CheckProof replays every clause of the RUP proof file against checker in
// order, stopping as soon as either the empty clause is derived -- proving
// the instance checker was built from is unsatisfiable -- or a step fails
// verification.
//
// A proof file shares DIMACS's clause syntax but carries no problem line:
// this reuses the library's streaming parser for a header-less stream via
// a Builder whose Problem implementation rejects the line it should never
// see.
func CheckProof(filename string, gzipped bool, checker *sat.Checker) error {
	r, err := openReader(filename, gzipped)
	if err != nil {
		return fmt.Errorf("opening proof %q: %w", filename, err)
	}
	defer r.Close()

	b := &proofBuilder{checker: checker}
	err = dimacs.ReadBuilder(r, b)

	if b.provedUnsat {
		return nil
	}
	if errors.Is(err, ErrProofRefuted) {
		return ErrProofRefuted
	}
	if err != nil {
		return fmt.Errorf("parsing proof %q: %w", filename, err)
	}
	return fmt.Errorf("proof %q ended without deriving the empty clause", filename)
}

type proofBuilder struct {
	checker     *sat.Checker
	provedUnsat bool
}

func (b *proofBuilder) Problem(problem string, nVars int, nClauses int) error {
	return fmt.Errorf("proof files must not have a problem line")
}

func (b *proofBuilder) Comment(_ string) error {
	return nil // ignore comments
}

func (b *proofBuilder) Clause(tmp []int) error {
	lits := toLiterals(tmp)
	if !b.checker.Check(lits) {
		return ErrProofRefuted
	}
	if len(lits) == 0 {
		b.provedUnsat = true
		return errProofComplete
	}
	return nil
}
