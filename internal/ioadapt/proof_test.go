package ioadapt

import (
	"errors"
	"testing"
)

func TestCheckProof_valid(t *testing.T) {
	// instance_unsat.cnf's four clauses force variable 2 both true and
	// false twice over: once from the clauses sharing literal 1 (used to
	// derive clause "1" itself), and again from the clauses sharing literal
	// !1 once "1" is permanently registered. proof_valid.rup derives "1"
	// and leans on the second collision to close with the empty clause.
	checker, err := LoadInstance("testdata/instance_unsat.cnf", false)
	if err != nil {
		t.Fatalf("LoadInstance(): want no error, got %s", err)
	}

	if err := CheckProof("testdata/proof_valid.rup", false, checker); err != nil {
		t.Fatalf("CheckProof(): want no error, got %s", err)
	}
	if !checker.UnsatisfiableAtLevel0() {
		t.Errorf("UnsatisfiableAtLevel0(): want true after a proof deriving the empty clause")
	}
}

func TestCheckProof_invalid(t *testing.T) {
	checker, err := LoadInstance("testdata/instance.cnf", false)
	if err != nil {
		t.Fatalf("LoadInstance(): want no error, got %s", err)
	}

	err = CheckProof("testdata/proof_invalid.rup", false, checker)
	if !errors.Is(err, ErrProofRefuted) {
		t.Fatalf("CheckProof(): want ErrProofRefuted, got %v", err)
	}
}

func TestCheckProof_headerRejected(t *testing.T) {
	checker, err := LoadInstance("testdata/instance.cnf", false)
	if err != nil {
		t.Fatalf("LoadInstance(): want no error, got %s", err)
	}

	err = CheckProof("testdata/proof_with_header.rup", false, checker)
	if err == nil || errors.Is(err, ErrProofRefuted) {
		t.Fatalf("CheckProof(): want a parse error (proof files must not have a problem line), got %v", err)
	}
}

func TestCheckProof_incompleteProof(t *testing.T) {
	checker, err := LoadInstance("testdata/instance.cnf", false)
	if err != nil {
		t.Fatalf("LoadInstance(): want no error, got %s", err)
	}

	// A single verified step (clause 2, RUP-implied from the instance's two
	// binary clauses) that never derives the empty clause.
	err = CheckProof("testdata/proof_incomplete.rup", false, checker)
	if err == nil || errors.Is(err, ErrProofRefuted) {
		t.Fatalf("CheckProof(): want an error reporting an incomplete proof, got %v", err)
	}
}

func TestCheckProof_noFile(t *testing.T) {
	checker, err := LoadInstance("testdata/instance.cnf", false)
	if err != nil {
		t.Fatalf("LoadInstance(): want no error, got %s", err)
	}

	if err := CheckProof("testdata/does-not-exist.rup", false, checker); err == nil {
		t.Errorf("CheckProof(): want error, got none")
	}
}
