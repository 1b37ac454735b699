package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/covid-focus-report/internal/adapter/dataset"
	"github.com/couchcryptid/covid-focus-report/internal/domain"
)

func testOptions() options {
	return options{
		start:       time.Date(2020, 1, 5, 0, 0, 0, 0, time.UTC),
		weeks:       12,
		seed:        7,
		missingRate: 0.05,
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	assert.Equal(t, generate(testOptions()), generate(testOptions()))

	other := testOptions()
	other.seed = 8
	assert.NotEqual(t, generate(testOptions()), generate(other))
}

func TestGenerate_Shape(t *testing.T) {
	records := generate(testOptions())

	require.Len(t, records, 1+len(countries)*12)
	assert.Equal(t, header(), records[0])
	for _, rec := range records[1:] {
		assert.Len(t, rec, len(records[0]))
	}
	assert.Equal(t, "2020-01-05", records[1][1])
	assert.Equal(t, "2020-01-12", records[2][1])
}

func TestGenerate_NoMissingAtZeroRate(t *testing.T) {
	opts := testOptions()
	opts.missingRate = 0
	for _, rec := range generate(opts)[1:] {
		for _, cell := range rec {
			assert.NotEmpty(t, cell)
		}
	}
}

func TestGenerate_ParsesAsDataset(t *testing.T) {
	df := dataframe.LoadRecords(generate(testOptions()), dataframe.DetectTypes(false), dataframe.HasHeader(true))
	require.NoError(t, df.Err)

	var buf bytes.Buffer
	require.NoError(t, df.WriteCSV(&buf))

	obs, err := dataset.Parse(&buf)
	require.NoError(t, err)
	require.Len(t, obs, len(countries)*12)

	stats := domain.Describe(obs)
	assert.Equal(t, len(countries), stats.Countries)

	rep := domain.BuildReport(obs, domain.NewFocusSet("France", "Italy", "Russia", "South Africa", "Australia"), 4)
	assert.Equal(t, 5, rep.Latest.Len())
	assert.Len(t, rep.Rows, 5*12)
}
