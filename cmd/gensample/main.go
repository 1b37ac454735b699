// Command gensample writes a deterministic synthetic dataset in the input
// schema, for local runs and manual checks of the charts.
//
// Usage:
//
//	go run ./cmd/gensample -out covid19_global_data.csv -weeks 156 -seed 7
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"strconv"
	"time"

	"github.com/go-gota/gota/dataframe"

	"github.com/couchcryptid/covid-focus-report/internal/domain"
)

// country drives one synthetic series.
type country struct {
	name       string
	population float64 // millions
	peakCases  float64 // weekly cases at the top of a wave
	cfr        float64 // percent
	vaxCeiling float64 // percent
}

var countries = []country{
	{name: "France", population: 67.8, peakCases: 900_000, cfr: 0.6, vaxCeiling: 80},
	{name: "Italy", population: 59.0, peakCases: 700_000, cfr: 0.8, vaxCeiling: 85},
	{name: "Russia", population: 144.0, peakCases: 1_100_000, cfr: 1.9, vaxCeiling: 55},
	{name: "South Africa", population: 60.0, peakCases: 150_000, cfr: 2.5, vaxCeiling: 40},
	{name: "Australia", population: 26.0, peakCases: 350_000, cfr: 0.2, vaxCeiling: 86},
	{name: "Germany", population: 84.0, peakCases: 1_000_000, cfr: 0.5, vaxCeiling: 78},
	{name: "Brazil", population: 216.0, peakCases: 1_200_000, cfr: 1.9, vaxCeiling: 83},
	{name: "Japan", population: 125.0, peakCases: 1_300_000, cfr: 0.2, vaxCeiling: 84},
}

type options struct {
	start       time.Time
	weeks       int
	seed        uint64
	missingRate float64
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "covid19_global_data.csv", "output CSV path")
	weeks := flag.Int("weeks", 156, "weeks of data per country")
	start := flag.String("start", "2020-01-05", "first week-ending date (YYYY-MM-DD)")
	seed := flag.Uint64("seed", 7, "random seed")
	missing := flag.Float64("missing-rate", 0.02, "share of numeric cells left blank")
	flag.Parse()

	startDate, err := time.Parse("2006-01-02", *start)
	if err != nil {
		return fmt.Errorf("invalid -start: %w", err)
	}
	if *weeks < 1 {
		return fmt.Errorf("-weeks must be at least 1")
	}

	df := dataframe.LoadRecords(generate(options{
		start:       startDate,
		weeks:       *weeks,
		seed:        *seed,
		missingRate: *missing,
	}), dataframe.DetectTypes(false), dataframe.HasHeader(true))
	if df.Err != nil {
		return fmt.Errorf("build dataframe: %w", df.Err)
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := df.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("write csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	log.Printf("wrote %d rows for %d countries to %s", df.Nrow(), len(countries), *out)
	return nil
}

func header() []string {
	h := []string{"Country", "Date"}
	for _, m := range domain.Metrics {
		h = append(h, m.Column())
	}
	return h
}

// generate returns the header and one record per country and week. The same
// options always yield the same records.
func generate(opts options) [][]string {
	rng := rand.New(rand.NewPCG(opts.seed, opts.seed^0x9e3779b97f4a7c15))
	records := [][]string{header()}

	for ci, c := range countries {
		var cumCases, cumDeaths float64
		phase := float64(ci) * 3.5
		for w := 0; w < opts.weeks; w++ {
			date := opts.start.AddDate(0, 0, 7*w)

			// Waves roughly every 26 weeks, sharper than a plain sine.
			wave := math.Pow(math.Max(0, math.Sin((float64(w)+phase)*2*math.Pi/26)), 3)
			cases := math.Round(c.peakCases * (0.02 + wave) * (0.85 + 0.3*rng.Float64()))
			deaths := math.Round(cases * c.cfr / 100 * (0.8 + 0.4*rng.Float64()))
			cumCases += cases
			cumDeaths += deaths

			cfr := 0.0
			if cumCases > 0 {
				cfr = cumDeaths / cumCases * 100
			}
			vax := c.vaxCeiling / (1 + math.Exp(-(float64(w)-70)/8))
			recovery := math.Min(99.5, 100-cfr-3*wave*rng.Float64())

			values := []float64{
				cases,
				deaths,
				cumCases,
				cumDeaths,
				cumCases / c.population,
				cumDeaths / c.population,
				cfr,
				vax,
				recovery,
			}

			rec := []string{c.name, date.Format("2006-01-02")}
			for i, v := range values {
				if rng.Float64() < opts.missingRate {
					rec = append(rec, "")
					continue
				}
				rec = append(rec, strconv.FormatFloat(v, 'f', decimals[i], 64))
			}
			records = append(records, rec)
		}
	}
	return records
}

// decimals per metric column, in domain.Metrics order.
var decimals = []int{0, 0, 0, 0, 2, 2, 2, 2, 2}
