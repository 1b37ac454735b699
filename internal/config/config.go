package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the process settings. Analysis parameters are fixed constants;
// only the ambient settings (logging, metrics, optional exports) come from the
// environment.
type Config struct {
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text" validate:"oneof=json text"`

	// MetricsTextfile is the node-exporter textfile path written after a run.
	// Empty disables the export.
	MetricsTextfile string `envconfig:"METRICS_TEXTFILE"`

	// SnapshotWorkbook is an optional .xlsx path for the prepared table and
	// latest snapshot. Empty disables the export.
	SnapshotWorkbook string `envconfig:"SNAPSHOT_WORKBOOK"`

	Analysis Analysis `ignored:"true"`
}

// Analysis is the immutable set of parameters every stage receives by value.
type Analysis struct {
	InputPath string `validate:"required"`
	OutputDir string `validate:"required"`

	FocusCountries []string `validate:"min=1,dive,required"`
	Palette        []string `validate:"min=1,dive,hexcolor"`
	RollingWindow  int      `validate:"min=1"`

	VaccinationTarget float64
	VaccinationBand   [2]float64
	VaccinationYRange [2]float64

	RecoveryBenchmark float64
	RecoveryYRange    [2]float64

	DPI int `validate:"min=1"`
}

// DefaultAnalysis returns a fresh copy of the fixed analysis parameters.
func DefaultAnalysis() Analysis {
	return Analysis{
		InputPath:         "covid19_global_data.csv",
		OutputDir:         "output_charts",
		FocusCountries:    []string{"France", "Italy", "Russia", "South Africa", "Australia"},
		Palette:           []string{"#2C7BB6", "#D7191C", "#1A9641", "#FDAE61", "#7B2D8B"},
		RollingWindow:     4,
		VaccinationTarget: 70,
		VaccinationBand:   [2]float64{70, 100},
		VaccinationYRange: [2]float64{0, 105},
		RecoveryBenchmark: 95,
		RecoveryYRange:    [2]float64{80, 102},
		DPI:               150,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads the ambient settings from the environment, applying defaults
// where unset, and attaches the fixed analysis parameters.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}
	cfg.Analysis = DefaultAnalysis()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the ambient settings and the analysis parameters.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return c.Analysis.Validate()
}

// Validate checks that the analysis parameters are usable.
func (a Analysis) Validate() error {
	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("invalid analysis parameters: %w", err)
	}
	// Colors are assigned by focus position, so every country needs one.
	if len(a.Palette) < len(a.FocusCountries) {
		return errors.New("palette has fewer colors than focus countries")
	}
	if a.VaccinationBand[0] > a.VaccinationBand[1] {
		return errors.New("vaccination band is inverted")
	}
	if a.VaccinationYRange[0] >= a.VaccinationYRange[1] || a.RecoveryYRange[0] >= a.RecoveryYRange[1] {
		return errors.New("chart y-range is empty")
	}
	return nil
}
