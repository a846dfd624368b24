// Package renderer turns computed capital gains data into markdown
// documents. It holds no calculation logic: everything it prints comes from
// the cgt package's records.
package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/cgt"
)

// DisposalsMarkdown renders the full disposal list as a markdown table, one
// row per disposal, in the order the report holds them.
func DisposalsMarkdown(disposals []cgt.Disposal) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Disposals\n\n")
	if len(disposals) == 0 {
		fmt.Fprintln(&b, "No disposals.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Date | Security | Quantity | Rule | Proceeds | Allowable Cost | Gain/Loss |")
	fmt.Fprintln(&b, "|:---|:---|---:|:---|---:|---:|---:|")
	for _, d := range disposals {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			d.Date,
			d.Security.Name(),
			d.Quantity,
			d.RuleLabel(),
			d.Proceeds,
			d.AllowableCost,
			d.Gain.SignedString(),
		)
	}
	return b.String()
}

// DisposalMarkdown renders one disposal with its per-rule portions, for the
// detailed view of a single sale.
func DisposalMarkdown(d cgt.Disposal) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Disposal of %s %s on %s\n\n", d.Quantity, d.Security.Name(), d.Date)
	fmt.Fprintf(&b, "Tax year: %s\n\n", d.TaxYear().Label())

	fmt.Fprintln(&b, "| Rule | Quantity | Acquired | Cost |")
	fmt.Fprintln(&b, "|:---|---:|:---|---:|")
	for _, p := range d.Portions {
		acquired := "pool"
		if !p.Acquired.IsZero() {
			acquired = p.Acquired.String()
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", p.Rule, p.Quantity, acquired, p.Cost)
	}
	fmt.Fprintf(&b, "\nProceeds: %s\n\n", d.Proceeds)
	fmt.Fprintf(&b, "Allowable cost: %s\n\n", d.AllowableCost)
	fmt.Fprintf(&b, "Gain/Loss: %s\n", d.Gain.SignedString())
	return b.String()
}
