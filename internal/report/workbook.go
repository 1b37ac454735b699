package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/covid-focus-report/internal/domain"
)

// Workbook sheet names.
const (
	LatestSheet  = "Latest"
	WeeklySheet  = "Weekly"
	MonthlySheet = "Monthly"
)

const dateLayout = "2006-01-02"

var rowHeader = func() []string {
	h := []string{"Country", "Date"}
	for _, m := range domain.Metrics {
		h = append(h, m.Column())
	}
	return append(h, "Weekly_New_Cases_avg", "Weekly_New_Deaths_avg", "Month")
}()

var monthlyHeader = []string{"Country", "Month", "Weeks", "Weekly_New_Cases", "Weekly_New_Deaths", "Peak"}

// WriteWorkbook saves the latest snapshot, the prepared weekly rows, and the
// monthly totals to an .xlsx file at path. Missing values are left blank.
func WriteWorkbook(path string, rep domain.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", LatestSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeRows(f, LatestSheet, rep.Latest.Rows()); err != nil {
		return err
	}

	if _, err := f.NewSheet(WeeklySheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", WeeklySheet, err)
	}
	if err := writeRows(f, WeeklySheet, rep.Rows); err != nil {
		return err
	}

	if _, err := f.NewSheet(MonthlySheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", MonthlySheet, err)
	}
	if err := writeMonthly(f, domain.MonthlyTotals(rep.Rows)); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows []domain.Row) error {
	if err := writeHeader(f, sheet, rowHeader); err != nil {
		return err
	}
	for i := range rows {
		r := &rows[i]
		record := []any{r.Country, r.Date.Format(dateLayout)}
		for _, m := range domain.Metrics {
			record = append(record, cellValue(r.Value(m)))
		}
		record = append(record, cellValue(r.WeeklyNewCasesAvg), cellValue(r.WeeklyNewDeathsAvg), r.Month.String())

		if err := setRow(f, sheet, i+2, record); err != nil {
			return err
		}
	}
	return nil
}

func writeMonthly(f *excelize.File, totals []domain.MonthlyTotal) error {
	if err := writeHeader(f, MonthlySheet, monthlyHeader); err != nil {
		return err
	}
	for i, t := range totals {
		peak := ""
		if t.Peak {
			peak = "yes"
		}
		record := []any{t.Country, t.Month.String(), t.Weeks, t.Cases, t.Deaths, peak}
		if err := setRow(f, MonthlySheet, i+2, record); err != nil {
			return err
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, header []string) error {
	record := make([]any, len(header))
	for i, h := range header {
		record[i] = h
	}
	if err := setRow(f, sheet, 1, record); err != nil {
		return err
	}
	first, _ := excelize.ColumnNumberToName(1)
	last, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetColWidth(sheet, first, last, 16); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, record []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &record); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

// cellValue maps a missing value to an empty cell.
func cellValue(v float64) any {
	if domain.IsMissing(v) {
		return nil
	}
	return v
}
