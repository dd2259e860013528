package ledger

// ChartEntry describes one account of the chart of accounts.
type ChartEntry struct {
	Code  string       `json:"code"`
	Name  string       `json:"name"`
	Class AccountClass `json:"class"`
}

// Chart is the read-only chart-of-accounts configuration supplied once per
// run. Entry order is preserved so books iterate accounts deterministically.
type Chart struct {
	Entries []ChartEntry `json:"entries"`
}

// DefaultChart returns the built-in chart used when no spreadsheet is
// supplied. Codes follow the national uniform chart conventions the model
// was calibrated against.
func DefaultChart() Chart {
	return Chart{Entries: []ChartEntry{
		{Code: "1105", Name: "Cash and banks", Class: ClassAsset},
		{Code: "1405", Name: "Raw material inventory", Class: ClassAsset},
		{Code: "1410", Name: "Work-in-progress inventory", Class: ClassAsset},
		{Code: "1430", Name: "Finished goods inventory", Class: ClassAsset},
		{Code: "1435", Name: "Merchandise inventory", Class: ClassAsset},
		{Code: "2205", Name: "Domestic suppliers payable", Class: ClassLiability},
		{Code: "2408", Name: "VAT payable", Class: ClassLiability},
		{Code: "4120", Name: "Revenue from manufactured goods", Class: ClassRevenue},
		{Code: "4135", Name: "Revenue from merchandise", Class: ClassRevenue},
		{Code: "6120", Name: "Cost of manufactured goods sold", Class: ClassCostOfSale},
		{Code: "6135", Name: "Cost of merchandise sold", Class: ClassCostOfSale},
		{Code: "71", Name: "Direct production costs", Class: ClassProduction},
		{Code: "73", Name: "Indirect production costs", Class: ClassProduction},
	}}
}
