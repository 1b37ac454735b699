// Package report writes the console progress and summary text and the
// optional snapshot workbook.
package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer = message.NewPrinter(language.English)
	rule    = strings.Repeat("=", 60)
)

const detailIndent = "      "

// Console writes the numbered progress lines. The first write error sticks
// and later writes are skipped.
type Console struct {
	w     io.Writer
	total int
	err   error
}

// NewConsole creates a Console for a run of total steps.
func NewConsole(w io.Writer, total int) *Console {
	return &Console{w: w, total: total}
}

func (c *Console) printf(format string, args ...any) {
	if c.err != nil {
		return
	}
	_, c.err = printer.Fprintf(c.w, format, args...)
}

// Banner writes the run header.
func (c *Console) Banner() {
	c.printf("%s\n  COVID-19 Global Data Analysis\n%s\n", rule, rule)
}

// Step announces step n.
func (c *Console) Step(n int, title string) {
	c.printf("\n[%d/%d] %s\n", n, c.total, title)
}

// Detail writes an indented line under the current step. Integers are
// grouped with thousands separators.
func (c *Console) Detail(format string, args ...any) {
	c.printf(detailIndent+format+"\n", args...)
}

// Saved reports a written output file.
func (c *Console) Saved(name string) {
	c.Detail("Saved: %s", name)
}

// Err returns the first write error.
func (c *Console) Err() error {
	return c.err
}

// grouped formats v with thousands separators and the given decimals.
// Missing values print as "nan".
func grouped(v float64, decimals int) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return printer.Sprintf(fmt.Sprintf("%%.%df", decimals), v)
}

// fixed formats v with the given decimals and no grouping.
func fixed(v float64, decimals int) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return fmt.Sprintf("%.*f", decimals, v)
}
