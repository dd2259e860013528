package ledger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// chartSheet is the sheet the loader reads account rows from.
const chartSheet = "accounts"

// LoadChartFromXLSX reads a chart of accounts from a spreadsheet.
//
// The sheet named "accounts" (or the first sheet if it does not exist) must
// have a header row followed by rows of: account code, account class digit,
// account name. Keys are trimmed; blank rows are skipped.
func LoadChartFromXLSX(path string) (Chart, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Chart{}, fmt.Errorf("failed to open chart spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := chartSheet
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return Chart{}, fmt.Errorf("failed to read chart sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return Chart{}, fmt.Errorf("chart sheet %q has no account rows", sheet)
	}

	var chart Chart
	seen := make(map[string]bool)
	for i, row := range rows[1:] { // skip header
		if len(row) == 0 {
			continue
		}
		code := strings.TrimSpace(row[0])
		if code == "" {
			continue
		}
		if len(row) < 3 {
			return Chart{}, fmt.Errorf("chart row %d: want code, class, name; got %d columns", i+2, len(row))
		}
		if seen[code] {
			return Chart{}, fmt.Errorf("chart row %d: duplicate account code %s", i+2, code)
		}
		seen[code] = true

		classDigit, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			return Chart{}, fmt.Errorf("chart row %d: invalid account class %q", i+2, row[1])
		}

		chart.Entries = append(chart.Entries, ChartEntry{
			Code:  code,
			Name:  strings.TrimSpace(row[2]),
			Class: AccountClass(classDigit),
		})
	}

	if len(chart.Entries) == 0 {
		return Chart{}, fmt.Errorf("chart sheet %q has no account rows", sheet)
	}

	return chart, nil
}
