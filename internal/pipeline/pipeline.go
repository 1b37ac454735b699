// Package pipeline runs the report: load, prepare, render every chart, and
// print the summary, announcing each step on the console.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/covid-focus-report/internal/config"
	"github.com/couchcryptid/covid-focus-report/internal/domain"
	"github.com/couchcryptid/covid-focus-report/internal/observability"
	"github.com/couchcryptid/covid-focus-report/internal/report"
)

// Loader reads the full dataset.
type Loader interface {
	Load(ctx context.Context) ([]domain.Observation, error)
}

// Renderer draws one chart from the prepared report.
type Renderer interface {
	Filename() string
	Description() string
	Render(w io.Writer, rep domain.Report) error
}

// Pipeline runs the ordered report steps once.
type Pipeline struct {
	loader    Loader
	renderers []Renderer
	analysis  config.Analysis
	out       io.Writer
	logger    *slog.Logger
	metrics   *observability.Metrics
	workbook  string
}

// New creates a Pipeline that prints progress and the summary to out.
func New(l Loader, renderers []Renderer, analysis config.Analysis, out io.Writer, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		loader:    l,
		renderers: renderers,
		analysis:  analysis,
		out:       out,
		logger:    logger,
		metrics:   metrics,
	}
}

// WithWorkbook makes Run also export the snapshot workbook to path.
func (p *Pipeline) WithWorkbook(path string) *Pipeline {
	p.workbook = path
	return p
}

// Steps is the number of numbered console steps a run announces.
func (p *Pipeline) Steps() int {
	return len(p.renderers) + 3
}

// Run executes every step in order. A load failure returns before the output
// directory is created.
func (p *Pipeline) Run(ctx context.Context) error {
	console := report.NewConsole(p.out, p.Steps())
	console.Banner()

	console.Step(1, "Loading dataset...")
	start := clock.Now()
	obs, err := p.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	stats := domain.Describe(obs)
	p.metrics.RowsLoaded.Set(float64(stats.Rows))
	p.stageDone("load", start, "rows", stats.Rows, "countries", stats.Countries)
	console.Detail("Loaded %d rows | %s countries in dataset", stats.Rows, strconv.Itoa(stats.Countries))

	console.Step(2, "Preparing and cleaning data...")
	start = clock.Now()
	focus := domain.NewFocusSet(p.analysis.FocusCountries...)
	rep := domain.BuildReport(obs, focus, p.analysis.RollingWindow)
	missing := domain.MissingValues(rep.Rows)
	p.metrics.FocusRows.Set(float64(len(rep.Rows)))
	p.metrics.MissingValues.Set(float64(missing))
	p.metrics.CountriesReported.Set(float64(rep.Latest.Len()))
	for _, name := range focus.Names() {
		if _, ok := rep.Latest.Get(name); !ok {
			p.logger.Debug("focus country has no data", "country", name)
		}
	}
	p.stageDone("prepare", start, "focus_rows", len(rep.Rows), "dropped_rows", len(obs)-len(rep.Rows), "missing_values", missing)
	console.Detail("Date range  : %s → %s", dateOrNA(stats.FirstDate), dateOrNA(stats.LastDate))
	console.Detail("Focus       : %s", strings.Join(focus.Names(), ", "))
	console.Detail("Missing vals: %s", strconv.Itoa(missing))

	if err := os.MkdirAll(p.analysis.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for i, r := range p.renderers {
		if err := ctx.Err(); err != nil {
			return err
		}
		console.Step(i+3, fmt.Sprintf("Chart %d: %s...", i+1, r.Description()))
		if err := p.render(r, rep); err != nil {
			p.metrics.ChartRenderErrors.WithLabelValues(r.Filename()).Inc()
			return err
		}
		console.Saved(r.Filename())
	}

	if p.workbook != "" {
		start = clock.Now()
		if err := report.WriteWorkbook(p.workbook, rep); err != nil {
			return err
		}
		p.stageDone("workbook", start, "path", p.workbook)
	}

	console.Step(p.Steps(), "Building summary report...")
	if err := console.Err(); err != nil {
		return fmt.Errorf("write progress: %w", err)
	}
	start = clock.Now()
	summary := report.Summary{Charts: len(p.renderers), OutputDir: p.analysis.OutputDir}
	if err := summary.Write(p.out, rep); err != nil {
		return err
	}
	p.stageDone("summary", start, "countries", rep.Latest.Len())

	p.metrics.LastRunCompletedAt.Set(float64(clock.Now().Unix()))
	return nil
}

// render encodes the chart in memory before replacing the file so a failed
// render leaves no partial image behind.
func (p *Pipeline) render(r Renderer, rep domain.Report) error {
	start := clock.Now()
	var buf bytes.Buffer
	if err := r.Render(&buf, rep); err != nil {
		return fmt.Errorf("render %s: %w", r.Filename(), err)
	}
	path := filepath.Join(p.analysis.OutputDir, r.Filename())
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", r.Filename(), err)
	}
	p.metrics.ChartsRendered.WithLabelValues(r.Filename()).Inc()
	p.stageDone("render", start, "chart", r.Filename(), "bytes", buf.Len())
	return nil
}

func (p *Pipeline) stageDone(stage string, start time.Time, attrs ...any) {
	elapsed := clock.Since(start)
	p.metrics.StageDuration.WithLabelValues(stage).Observe(elapsed.Seconds())
	p.logger.Info("stage complete", append([]any{"stage", stage, "duration", elapsed}, attrs...)...)
}

func dateOrNA(t time.Time) string {
	if t.IsZero() {
		return "n/a"
	}
	return t.Format("2006-01-02")
}
