// Package dataset loads the weekly per-country CSV export into observations.
package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/couchcryptid/covid-focus-report/internal/domain"
)

// ErrInputNotFound is returned when the input file does not exist.
var ErrInputNotFound = errors.New("input file not found")

const (
	countryColumn = "Country"
	dateColumn    = "Date"
)

// dateLayouts are tried in order for the Date column.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// naValues are the cells read as missing numbers, in addition to blanks.
var naValues = []string{"", "NA", "N/A", "NaN", "nan", "null", "<nil>"}

// CSVLoader reads the dataset from a fixed path.
// It implements pipeline.Loader.
type CSVLoader struct {
	path   string
	logger *slog.Logger
}

// NewCSVLoader creates a loader for the CSV file at path.
func NewCSVLoader(path string, logger *slog.Logger) *CSVLoader {
	return &CSVLoader{path: path, logger: logger}
}

// Path returns the file the loader reads.
func (l *CSVLoader) Path() string {
	return l.path
}

// Load checks that the file exists and parses every row. A missing file
// yields ErrInputNotFound before anything is read.
func (l *CSVLoader) Load(ctx context.Context) ([]domain.Observation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, l.path)
	}
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	obs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", l.path, err)
	}
	l.logger.Debug("dataset parsed", "path", l.path, "rows", len(obs))
	return obs, nil
}

// Parse reads CSV data with a header row into observations. Numeric cells
// that are blank or NA become domain.Missing. An unparsable date is an error.
func Parse(r io.Reader) ([]domain.Observation, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	types := map[string]series.Type{
		countryColumn: series.String,
		dateColumn:    series.String,
	}
	for _, m := range domain.Metrics {
		types[m.Column()] = series.Float
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.WithTypes(types),
		dataframe.NaNValues(naValues),
	)
	if df.Err != nil {
		// A header without rows is an empty dataset, not a failure.
		if names, ok := headerOnly(data); ok {
			if err := checkColumns(names); err != nil {
				return nil, err
			}
			return []domain.Observation{}, nil
		}
		return nil, fmt.Errorf("read csv: %w", df.Err)
	}

	if err := checkColumns(df.Names()); err != nil {
		return nil, err
	}

	countries := df.Col(countryColumn).Records()
	dates := df.Col(dateColumn).Records()
	values := make([][]float64, len(domain.Metrics))
	for i, m := range domain.Metrics {
		values[i] = df.Col(m.Column()).Float()
	}

	out := make([]domain.Observation, df.Nrow())
	for row := range out {
		date, err := parseDate(dates[row])
		if err != nil {
			// +2: one for the header, one for 1-based line numbers.
			return nil, fmt.Errorf("line %d: %w", row+2, err)
		}
		o := domain.Observation{
			Country: strings.TrimSpace(countries[row]),
			Date:    date,
		}
		for i, m := range domain.Metrics {
			o.SetValue(m, values[i][row])
		}
		out[row] = o
	}
	return out, nil
}

// headerOnly returns the column names when data holds a header and no rows.
func headerOnly(data []byte) ([]string, bool) {
	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(false),
		dataframe.DetectTypes(false),
	)
	if df.Err != nil || df.Nrow() != 1 {
		return nil, false
	}
	return df.Records()[1], true
}

func checkColumns(names []string) error {
	have := make(map[string]bool, len(names))
	for _, n := range names {
		have[n] = true
	}

	required := []string{countryColumn, dateColumn}
	for _, m := range domain.Metrics {
		required = append(required, m.Column())
	}

	var missing []string
	for _, c := range required {
		if !have[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable date %q", s)
}
