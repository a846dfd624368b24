package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/cgt"
	"github.com/etnz/cgt/renderer"
	"github.com/google/subcommands"
)

// disposalsCmd holds the flags for the 'disposals' subcommand.
type disposalsCmd struct {
	year     string
	security string
	detail   bool
}

func (*disposalsCmd) Name() string     { return "disposals" }
func (*disposalsCmd) Synopsis() string { return "list computed disposals with their matching rules" }
func (*disposalsCmd) Usage() string {
	return `cgtcalc disposals [-year <tax-year>] [-security <id>] [-detail]

  Lists every disposal in date order with its proceeds, allowable cost and
  gain or loss. With -detail, each disposal shows the per-rule portions it
  was matched from.
`
}

func (c *disposalsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.year, "year", "", "Only disposals of this tax year, e.g. 2024-2025.")
	f.StringVar(&c.security, "security", "", "Only disposals of this security identifier.")
	f.BoolVar(&c.detail, "detail", false, "Show the per-rule portions of each disposal.")
}

func (c *disposalsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var year cgt.TaxYear
	if c.year != "" {
		var err error
		year, err = cgt.ParseTaxYear(c.year)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing tax year: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	report, status := compute(0)
	if report == nil {
		return status
	}

	var disposals []cgt.Disposal
	for _, d := range report.Disposals {
		if c.year != "" && d.TaxYear() != year {
			continue
		}
		if c.security != "" && !strings.EqualFold(d.Security.ID(), c.security) {
			continue
		}
		disposals = append(disposals, d)
	}

	if c.detail {
		var b strings.Builder
		for _, d := range disposals {
			b.WriteString(renderer.DisposalMarkdown(d))
			b.WriteString("\n")
		}
		if len(disposals) == 0 {
			b.WriteString("No disposals.\n")
		}
		printMarkdown(b.String())
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.DisposalsMarkdown(disposals))
	return subcommands.ExitSuccess
}
