package statement

import (
	"fmt"
	"math"
)

// IssueSeverity grades a validation finding.
type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
	SeverityInfo    IssueSeverity = "info"
)

// Issue is a single validation finding on uploaded statement data.
type Issue struct {
	Field    string        `json:"field"`
	Message  string        `json:"message"`
	Severity IssueSeverity `json:"severity"`
}

// maxPlausibleValue flags figures that are almost certainly unit mistakes
// (e.g. paise uploaded as crores).
const maxPlausibleValue = 1e15

// Validate runs sanity checks on statement data and returns findings.
// Validation never blocks analysis: all findings here are warnings, and the
// analytical pipeline accepts the data regardless.
func Validate(data *FinancialData) []Issue {
	var issues []Issue
	if data == nil {
		return issues
	}

	sections := []struct {
		name string
		sec  Section
	}{
		{"balance_sheet", data.BalanceSheet},
		{"income_statement", data.IncomeStatement},
		{"cash_flow", data.CashFlow},
		{"current_period", data.CurrentPeriod},
		{"previous_period", data.PreviousPeriod},
	}
	for _, s := range sections {
		for field, value := range s.sec {
			if math.Abs(value) > maxPlausibleValue {
				issues = append(issues, Issue{
					Field:    s.name + "." + field,
					Message:  "Unusually large value detected",
					Severity: SeverityWarning,
				})
			}
		}
	}

	// Balance sheet identity: Assets = Liabilities + Equity (within 1%).
	bs := data.BalanceSheet
	assets := bs.Get("total_assets")
	liabilities := bs.Get("total_liabilities")
	equity := bs.Get("total_equity", "shareholders_equity")
	if assets != 0 && liabilities != 0 && equity != 0 {
		gap := math.Abs(assets - (liabilities + equity))
		if gap > math.Abs(assets)*0.01 {
			issues = append(issues, Issue{
				Field:    "balance_sheet.total_assets",
				Message:  fmt.Sprintf("Balance sheet does not balance: assets %.2f vs liabilities+equity %.2f", assets, liabilities+equity),
				Severity: SeverityWarning,
			})
		}
	}

	// Current assets should not exceed total assets.
	if ca, ta := bs.Get("current_assets"), bs.Get("total_assets"); ca != 0 && ta != 0 && ca > ta {
		issues = append(issues, Issue{
			Field:    "balance_sheet.current_assets",
			Message:  "Current assets exceed total assets",
			Severity: SeverityWarning,
		})
	}

	return issues
}
