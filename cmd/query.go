package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/cgt"
	"github.com/google/subcommands"
)

// queryCmd holds the flags for the 'query' subcommand.
type queryCmd struct {
	loss float64
}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "extract one value from the report with a JSONPath expression" }
func (*queryCmd) Usage() string {
	return `cgtcalc query [-loss <amount>] <jsonpath>

  Runs the calculation and evaluates a JSONPath expression against the JSON
  report, for scripting. Examples:

    cgtcalc query '$.taxYears[0].taxableGain.amount'
    cgtcalc query '$.disposals[?(@.rule=="same-day")].gain'
`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.loss, "loss", 0, "Loss brought forward from years before the earliest transaction, in sterling.")
}

func (c *queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "query expects exactly one JSONPath expression")
		return subcommands.ExitUsageError
	}
	expr := f.Arg(0)

	report, status := compute(c.loss)
	if report == nil {
		return status
	}

	// Round-trip through the JSON encoding so the query sees exactly the
	// exported document.
	var buf bytes.Buffer
	if err := cgt.EncodeReport(&buf, report); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	var jobj interface{}
	if err := json.Unmarshal(buf.Bytes(), &jobj); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	jval, err := jsonpath.Get(expr, jobj)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error evaluating %q: %v\n", expr, err)
		return subcommands.ExitFailure
	}

	out, err := json.MarshalIndent(jval, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Println(string(out))
	return subcommands.ExitSuccess
}
