package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/covid-focus-report/internal/domain"
)

// Summary describes the closing lines of the report.
type Summary struct {
	Charts    int
	OutputDir string
}

// Write prints the latest figures of every focus country that has a snapshot
// row, in focus order, followed by the closing lines. Countries without data
// are skipped.
func (s Summary) Write(w io.Writer, rep domain.Report) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n  SUMMARY REPORT\n%s\n", rule, rule)

	for _, country := range rep.Focus.Names() {
		row, ok := rep.Latest.Get(country)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\n  %s\n", country)
		fmt.Fprintf(&b, "    Total Cases      : %15s\n", grouped(row.CumulativeCases, 0))
		fmt.Fprintf(&b, "    Total Deaths     : %15s\n", grouped(row.CumulativeDeaths, 0))
		fmt.Fprintf(&b, "    Cases/Million    : %15s\n", grouped(row.CasesPerMillion, 0))
		fmt.Fprintf(&b, "    Deaths/Million   : %15s\n", grouped(row.DeathsPerMillion, 2))
		fmt.Fprintf(&b, "    CFR              : %13s%%\n", fixed(row.CaseFatalityRatePct, 2))
		fmt.Fprintf(&b, "    Vaccinated       : %13s%%\n", fixed(row.VaccinatedPct, 1))
		fmt.Fprintf(&b, "    Recovery Rate    : %13s%%\n", fixed(row.RecoveryRatePct, 1))
	}

	dir := s.dir()
	fmt.Fprintf(&b, "\n%s\n  %d charts saved to -> ./%s/\n%s\n", rule, s.Charts, dir, rule)
	fmt.Fprintf(&b, "\nAnalysis complete! Open %s/ to view all charts.\n\n", dir)

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

// dir is the output directory as printed, without redundant separators.
func (s Summary) dir() string {
	return filepath.ToSlash(filepath.Clean(s.OutputDir))
}
