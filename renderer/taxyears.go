package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/cgt"
)

// TaxYearsMarkdown renders the per tax year summaries as a markdown table,
// one row per year, oldest first.
func TaxYearsMarkdown(years []cgt.TaxYearSummary) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Capital Gains by Tax Year\n\n")
	if len(years) == 0 {
		fmt.Fprintln(&b, "No disposals, nothing to report.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Tax Year | Disposals | Gains | Losses | Net | Loss Offset | Exemption Used | Taxable | Carried Forward |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|---:|---:|")
	for _, y := range years {
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %s | %s | %s | **%s** | %s |\n",
			y.Year.Label(),
			len(y.Disposals),
			y.TotalGains,
			y.TotalLosses,
			y.NetGain.SignedString(),
			y.LossOffset,
			y.ExemptUsed,
			y.TaxableGain,
			y.CarriedForward,
		)
	}
	return b.String()
}

// ReportMarkdown renders the whole report: the tax year table followed by
// the disposal table.
func ReportMarkdown(r *cgt.Report) string {
	var b strings.Builder
	b.WriteString(TaxYearsMarkdown(r.Years))
	b.WriteString("\n")
	b.WriteString(DisposalsMarkdown(r.Disposals))
	return b.String()
}
