package ioadapt

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rhartert/rupcheck/internal/sat"
)

func TestLoadInstance(t *testing.T) {
	checker, err := LoadInstance("testdata/instance.cnf", false)
	if err != nil {
		t.Fatalf("LoadInstance(): want no error, got %s", err)
	}
	if got := checker.NumVars(); got != 2 {
		t.Errorf("NumVars(): want 2, got %d", got)
	}
	if got := checker.NumClauses(); got != 2 {
		t.Errorf("NumClauses(): want 2, got %d", got)
	}
}

func TestLoadInstance_gzip(t *testing.T) {
	checker, err := LoadInstance("testdata/instance.cnf.gz", true)
	if err != nil {
		t.Fatalf("LoadInstance(): want no error, got %s", err)
	}
	if got := checker.NumVars(); got != 2 {
		t.Errorf("NumVars(): want 2, got %d", got)
	}
}

func TestLoadInstance_noFile(t *testing.T) {
	if _, err := LoadInstance("testdata/does-not-exist.cnf", false); err == nil {
		t.Errorf("LoadInstance(): want error, got none")
	}
}

func TestLoadInstance_gzip_notGzipFile(t *testing.T) {
	if _, err := LoadInstance("testdata/instance.cnf", true); err == nil {
		t.Errorf("LoadInstance(): want error, got none")
	}
}

func TestLoadInstance_malformed(t *testing.T) {
	if _, err := LoadInstance("testdata/malformed.cnf", false); err == nil {
		t.Errorf("LoadInstance(): want error, got none")
	}
}

func TestLoadInstance_missingProblemLine(t *testing.T) {
	// proof_invalid.rup is a bare clause stream with no "p cnf" header.
	if _, err := LoadInstance("testdata/proof_invalid.rup", false); err == nil {
		t.Errorf("LoadInstance(): want error for a file with no problem line, got none")
	}
}

func TestToLiterals(t *testing.T) {
	got := toLiterals([]int{1, -2, 3})
	want := []sat.Literal{
		sat.PositiveLiteral(0),
		sat.NegativeLiteral(1),
		sat.PositiveLiteral(2),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("toLiterals(): mismatch (-want, +got):\n%s", diff)
	}
}
