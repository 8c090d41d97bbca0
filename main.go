package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/rhartert/rupcheck/internal/ioadapt"
)

var flagGzip = flag.Bool(
	"gz",
	false,
	"treat the instance and proof files as gzip-compressed",
)

var flagTrace = flag.Bool(
	"trace",
	false,
	"write a trace of every assignment, conflict, and backtrack to stderr",
)

func parseConfig() (*config, error) {
	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		return nil, fmt.Errorf("usage: rupcheck [flags] <instance.cnf> [<proof.rup>]")
	}
	proofFile := "/dev/stdin" // the proof is read from standard input when omitted
	if flag.NArg() == 2 {
		proofFile = flag.Arg(1)
	}
	return &config{
		instanceFile: flag.Arg(0),
		proofFile:    proofFile,
		gzipped:      *flagGzip,
		trace:        *flagTrace,
	}, nil
}

type config struct {
	instanceFile string
	proofFile    string
	gzipped      bool
	trace        bool
}

// run loads the instance and replays the proof against it. The returned
// bool reports whether the proof verified; a refuted proof step prints FAIL
// and returns false with a nil error. A non-nil error is returned, and
// neither OK nor FAIL is printed, for a malformed file, a missing problem
// line, or a proof that ends without deriving the empty clause.
func run(cfg *config) (bool, error) {
	checker, err := ioadapt.LoadInstance(cfg.instanceFile, cfg.gzipped)
	if err != nil {
		return false, err
	}
	if cfg.trace {
		checker.SetTrace(os.Stderr)
	}

	fmt.Fprintf(os.Stderr, "c variables: %d\n", checker.NumVars())
	fmt.Fprintf(os.Stderr, "c clauses:   %d\n", checker.NumClauses())

	start := time.Now()
	err = ioadapt.CheckProof(cfg.proofFile, cfg.gzipped, checker)
	elapsed := time.Since(start)
	fmt.Fprintf(os.Stderr, "c time (sec): %f\n", elapsed.Seconds())
	fmt.Fprintf(os.Stderr, "c assignments: %d\n", checker.NumAssignments())
	fmt.Fprintf(os.Stderr, "c level-0 conflicts: %d\n", checker.NumLevel0Conflicts())

	if errors.Is(err, ioadapt.ErrProofRefuted) {
		fmt.Println("FAIL")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	fmt.Println("OK")
	return true, nil
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	verified, err := run(cfg)
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
	if !verified {
		os.Exit(1)
	}
}
