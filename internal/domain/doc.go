// Package domain models per-country weekly pandemic observations and the pure
// stages that turn them into a focus-country report.
//
// # Data Source
//
// The input is a single CSV export with one row per (Country, Date). Rows are
// weekly: the Weekly_* columns hold the counts reported in the week ending on
// Date, the Cumulative_* columns hold running totals up to that date.
//
//	Country, Date,
//	Weekly_New_Cases, Weekly_New_Deaths,
//	Cumulative_Cases, Cumulative_Deaths,
//	Cases_Per_Million, Deaths_Per_Million,
//	Case_Fatality_Rate_Pct, Vaccinated_Pct, Recovery_Rate_Pct
//
// (Country, Date) pairs are assumed unique. Nothing is de-duplicated.
//
// # Missing Values
//
// A blank or NA numeric cell is carried as NaN ([Missing]); test with
// [IsMissing]. Missing values are never errors. Each consumer drops them from
// its own computation only:
//
//   - rolling means average the values present in the window, and are missing
//     only when the whole window is missing
//   - bar charts drop the country from that chart
//   - line charts drop the point
//
// # Preparation
//
// [Prepare] keeps the focus countries, stable-sorts by (Country, Date), and adds
// per-country trailing means of Weekly_New_Cases and Weekly_New_Deaths over a
// window of up to four rows, plus a calendar month bucket. The month bucket is
// not used by any chart; it is exported with the optional workbook only,
// alongside the per-month sums of [MonthlyTotals].
//
// [Latest] picks the last prepared row of every country. Rows with equal dates
// keep their source order, so the later source row wins.
package domain
