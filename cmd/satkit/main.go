// Command satkit is the CLI entry point wiring internal/simplify and
// internal/sat together: it reads a DIMACS CNF file (or a directory of
// them, for benchmark), optionally simplifies it, searches for a model,
// and reports the result. Flag-based per the teacher's main.go (no
// subcommand framework appears anywhere in the retrieval pack for a SAT
// CLI), generalized from a single implicit action into two named
// subcommands, solve and benchmark, per spec §6.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	"github.com/satkit/satkit/internal/parsers"
	"github.com/satkit/satkit/internal/sat"
	"github.com/satkit/satkit/internal/simplify"
)

const benchmarkDeadline = 1000 * time.Second

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "solve":
		err = runSolve(os.Args[2:])
	case "benchmark":
		err = runBenchmark(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: satkit solve [flags] <dimacs-file>")
	fmt.Fprintln(os.Stderr, "       satkit benchmark <dir> <log-file>")
}

// runSolve implements the solve subcommand: exit 0 on SAT, 1 on UNSAT, 2
// on bad usage (spec §6).
func runSolve(args []string) error {
	fs := flag.NewFlagSet("solve", flag.ExitOnError)
	preprocess := fs.Bool("preprocess", true, "run the simplifier before search")
	gzipped := fs.Bool("gzip", false, "treat the input file as gzip-compressed")
	maxConflicts := fs.Int64("max_conflicts", -1, "maximum conflicts allowed (-1 = no maximum)")
	verify := fs.Bool("verify", false, "re-check the reported model against every original clause")
	cpuProfile := fs.Bool("cpuprof", false, "save a pprof CPU profile to cpuprof")
	memProfile := fs.Bool("memprof", false, "save a pprof heap profile to memprof")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	instanceFile := fs.Arg(0)

	if *cpuProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			return err
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	opts := sat.DefaultOptions
	if *maxConflicts >= 0 {
		opts.MaxConflicts = *maxConflicts
	}
	opts.Verify = *verify

	status, model, elapsed, err := solveOne(instanceFile, *gzipped, *preprocess, opts, simplify.DefaultOptions)
	if err != nil {
		return err
	}

	fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
	printResult(status, model)

	if *memProfile {
		f, err := os.Create("memprof")
		if err != nil {
			return err
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}

	// os.Exit below skips deferred calls, so the CPU profile is stopped
	// (and flushed to disk) here.
	if *cpuProfile {
		pprof.StopCPUProfile()
	}

	switch status {
	case sat.True:
		os.Exit(0)
	case sat.False:
		os.Exit(1)
	default:
		os.Exit(2)
	}
	return nil
}

// printResult prints the literal SAT/UNSAT contract required by spec §6:
// SAT is followed by the total assignment as one signed variable per
// original variable (positive if TRUE, negative if FALSE); UNSAT is
// printed alone.
func printResult(status sat.LBool, model []bool) {
	switch status {
	case sat.True:
		fmt.Println("SAT")
		for v := 1; v < len(model); v++ {
			if model[v] {
				fmt.Printf("%d ", v)
			} else {
				fmt.Printf("%d ", -v)
			}
		}
		fmt.Println("0")
	case sat.False:
		fmt.Println("UNSAT")
	default:
		fmt.Println("UNKNOWN")
	}
}

// solveOne loads, optionally simplifies, and solves a single DIMACS file,
// returning the final status, the total assignment lifted back onto the
// original DIMACS numbering (1-indexed, slot 0 unused; nil unless SAT),
// and the wall-clock time taken.
func solveOne(instanceFile string, gzipped, preprocess bool, opts sat.Options, simplifyOpts simplify.Options) (sat.LBool, []bool, time.Duration, error) {
	start := time.Now()

	result, err := parsers.LoadDIMACS(instanceFile, gzipped, preprocess, opts, simplifyOpts)
	if err != nil {
		return sat.Unknown, nil, time.Since(start), err
	}
	if result.UNSAT {
		return sat.False, nil, time.Since(start), nil
	}

	status := result.Solver.Solve()
	elapsed := time.Since(start)

	var model []bool
	if status == sat.True {
		reduced := parsers.Model(result.Solver)
		if result.Reconstructor != nil {
			lifted := result.Reconstructor.Lift(reduced)
			model = make([]bool, len(lifted)+1)
			copy(model[1:], lifted)
		} else {
			model = reduced
		}
	}

	return status, model, elapsed, nil
}

// runBenchmark implements the benchmark subcommand (spec §6): iterate
// every *.cnf file in dir, solve each with preprocessing enabled and a
// 1000-second per-instance deadline, and append one result line per
// instance to logFile.
func runBenchmark(args []string) error {
	if len(args) != 2 {
		usage()
		os.Exit(2)
	}
	dir, logFile := args[0], args[1]

	matches, err := filepath.Glob(filepath.Join(dir, "*.cnf"))
	if err != nil {
		return err
	}

	logW, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer logW.Close()

	for _, instanceFile := range matches {
		opts := sat.DefaultOptions
		opts.Deadline = time.Now().Add(benchmarkDeadline)

		status, _, elapsed, err := solveOne(instanceFile, false, true, opts, simplify.DefaultOptions)

		word := "TIMEOUT"
		switch {
		case err != nil:
			word = fmt.Sprintf("ERROR (%s)", err)
		case status == sat.True:
			word = "SAT"
		case status == sat.False:
			word = "UNSAT"
		}

		fmt.Fprintf(logW, "%s ... %s, time: %f seconds\n", instanceFile, word, elapsed.Seconds())
	}
	return nil
}
