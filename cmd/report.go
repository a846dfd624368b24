package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cgt"
	"github.com/etnz/cgt/renderer"
	"github.com/google/subcommands"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	loss     float64
	jsonOut  bool
	jsonFile string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "full capital gains report, per tax year and per disposal" }
func (*reportCmd) Usage() string {
	return `cgtcalc report [-loss <amount>] [-json] [-o <file>]

  Runs the full calculation over the transactions file and displays one
  summary per tax year followed by every disposal with the rule that
  matched it.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.loss, "loss", 0, "Loss brought forward from years before the earliest transaction, in sterling.")
	f.BoolVar(&c.jsonOut, "json", false, "Write the report as JSON instead of markdown.")
	f.StringVar(&c.jsonFile, "o", "", "Write the JSON report to this file instead of stdout. Implies -json.")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.loss < 0 {
		fmt.Fprintln(os.Stderr, "-loss must not be negative")
		return subcommands.ExitUsageError
	}

	report, status := compute(c.loss)
	if report == nil {
		return status
	}

	if c.jsonOut || c.jsonFile != "" {
		w := os.Stdout
		if c.jsonFile != "" {
			file, err := os.Create(c.jsonFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.jsonFile, err)
				return subcommands.ExitFailure
			}
			defer file.Close()
			w = file
		}
		if err := cgt.EncodeReport(w, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.ReportMarkdown(report))
	return subcommands.ExitSuccess
}

// compute runs the whole pipeline with the shared flags. On failure it
// prints the error and returns a nil report with the exit status to use.
func compute(loss float64) (*cgt.Report, subcommands.ExitStatus) {
	txs, err := LoadTransactions()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil, subcommands.ExitFailure
	}
	calc, err := NewCalculator(loss)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil, subcommands.ExitFailure
	}
	report, err := calc.Calculate(txs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error calculating gains: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	return report, subcommands.ExitSuccess
}
