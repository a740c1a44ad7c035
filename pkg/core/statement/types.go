// Package statement defines the financial statement input model for SME
// analysis. Uploaded statements arrive as loosely structured JSON; every
// lookup tolerates missing fields by substituting zero, and downstream
// arithmetic converts impossible divisions into nil rather than errors.
package statement

import "encoding/json"

// Section is one statement section (balance sheet, income statement, ...).
// Keys are canonical field names; absent fields read as zero.
type Section map[string]float64

// Get returns the first non-zero value among the given keys, or zero.
// Multiple keys express field aliases (e.g. "net_income" / "net_profit").
func (s Section) Get(keys ...string) float64 {
	for _, k := range keys {
		if v, ok := s[k]; ok && v != 0 {
			return v
		}
	}
	return 0
}

// Has reports whether the section carries any entries at all.
func (s Section) Has() bool {
	return len(s) > 0
}

// FinancialData is the full uploaded dataset for one company.
// Every section is optional; a zero-value FinancialData is valid input for
// every analysis entry point.
type FinancialData struct {
	BalanceSheet      Section   `json:"balance_sheet,omitempty"`
	IncomeStatement   Section   `json:"income_statement,omitempty"`
	CashFlow          Section   `json:"cash_flow,omitempty"`
	CurrentPeriod     Section   `json:"current_period,omitempty"`
	PreviousPeriod    Section   `json:"previous_period,omitempty"`
	HistoricalRevenue []float64 `json:"historical_revenue,omitempty"`
	OverduePayables   float64   `json:"overdue_payables,omitempty"`
}

// BusinessInfo carries non-statement context used by credit scoring.
type BusinessInfo struct {
	YearsInBusiness float64 `json:"years_in_business,omitempty"`
}

// Parse decodes raw JSON into FinancialData. Unknown fields are ignored;
// a syntactically broken document is the only error case.
func Parse(raw []byte) (*FinancialData, error) {
	var data FinancialData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &data, nil
}
