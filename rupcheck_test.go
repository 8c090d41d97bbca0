package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// This test suite evaluates end-to-end proof checking by running the full
// instance-load-then-replay-proof pipeline against a set of fixtures (see
// testdataDir).
//
// Each test case lives in its own subdirectory of testdataDir and is found
// by the presence of an "instance.cnf" file alongside an "instance.cnf.rup"
// proof file and an "instance.cnf.want" file holding a single word,
// "verified" or "refuted", naming the expected outcome.
var testdataDir = "testdata"

type testCase struct {
	name         string
	instanceFile string
	proofFile    string
	wantFile     string
}

// listTestCases returns the list of test cases contained in the file tree
// rooted in the given directory.
func listTestCases(dir string) ([]testCase, error) {
	var testCases []testCase
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != "instance.cnf" {
			return nil
		}
		testCases = append(testCases, testCase{
			name:         filepath.Base(filepath.Dir(path)),
			instanceFile: path,
			proofFile:    path + ".rup",
			wantFile:     path + ".want",
		})
		return nil
	})
	return testCases, err
}

// TestRun verifies that run reports the expected outcome for every fixture
// under testdataDir. Test cases are evaluated in parallel.
func TestRun(t *testing.T) {
	testCases, err := listTestCases(testdataDir)
	if err != nil {
		t.Fatalf("error listing test cases: %s", err)
	}
	if len(testCases) == 0 {
		t.Fatalf("no test cases found under %q", testdataDir)
	}

	for i := 0; i < len(testCases); i++ {
		tc := testCases[i]
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			wantBytes, err := os.ReadFile(tc.wantFile)
			if err != nil {
				t.Fatalf("reading %q: %s", tc.wantFile, err)
			}
			want := strings.TrimSpace(string(wantBytes))
			if want != "verified" && want != "refuted" {
				t.Fatalf("%q: unrecognized expectation %q", tc.wantFile, want)
			}

			cfg := &config{instanceFile: tc.instanceFile, proofFile: tc.proofFile}
			verified, err := run(cfg)
			if err != nil {
				t.Fatalf("run(): unexpected error %s", err)
			}

			got := "refuted"
			if verified {
				got = "verified"
			}
			if got != want {
				t.Errorf("run(): want %s, got %s", want, got)
			}
		})
	}
}
