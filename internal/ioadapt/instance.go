// Package ioadapt adapts github.com/rhartert/dimacs's streaming DIMACS
// parser onto sat.Checker, for both the CNF instance a proof is checked
// against and the RUP proof file itself.
package ioadapt

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/rhartert/dimacs"

	"github.com/rhartert/rupcheck/internal/sat"
)

func openReader(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			file.Close()
			return nil, err
		}
	}
	return rc, nil
}

// LoadInstance parses a DIMACS CNF file and returns a Checker with its
// variables allocated and every clause already asserted.
func LoadInstance(filename string, gzipped bool) (*sat.Checker, error) {
	r, err := openReader(filename, gzipped)
	if err != nil {
		return nil, fmt.Errorf("opening instance %q: %w", filename, err)
	}
	defer r.Close()

	b := &instanceBuilder{}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return nil, fmt.Errorf("parsing instance %q: %w", filename, err)
	}
	if b.checker == nil {
		return nil, fmt.Errorf("parsing instance %q: missing problem line", filename)
	}
	return b.checker, nil
}

// instanceBuilder implements dimacs.Builder, allocating a sat.Checker as
// soon as the problem line gives the variable count and asserting each
// clause as it streams in. Unlike a builder that grows its solver one
// variable at a time, this allocates the Checker up front, since RUP
// checking never introduces a variable the instance didn't already declare.
type instanceBuilder struct {
	checker *sat.Checker
}

func (b *instanceBuilder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("not a CNF problem: %q", problem)
	}
	b.checker = sat.NewChecker(nVars)
	return nil
}

func (b *instanceBuilder) Clause(tmp []int) error {
	if b.checker == nil {
		return fmt.Errorf("clause line before problem line")
	}
	b.checker.Assert(toLiterals(tmp))
	return nil
}

func (b *instanceBuilder) Comment(_ string) error {
	return nil // ignore comments
}

// toLiterals converts a DIMACS clause (1-based variables, negative for
// negated literals) into this module's 0-based sat.Literal encoding.
func toLiterals(tmp []int) []sat.Literal {
	lits := make([]sat.Literal, len(tmp))
	for i, l := range tmp {
		if l < 0 {
			lits[i] = sat.NegativeLiteral(-l - 1)
		} else {
			lits[i] = sat.PositiveLiteral(l - 1)
		}
	}
	return lits
}
