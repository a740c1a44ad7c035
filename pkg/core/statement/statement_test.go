package statement

import "testing"

func TestParse(t *testing.T) {
	raw := []byte(`{
		"balance_sheet": {"current_assets": 150000, "current_liabilities": 100000},
		"income_statement": {"revenue": 500000, "net_income": 40000},
		"historical_revenue": [400000, 450000, 500000],
		"overdue_payables": 2500,
		"unknown_field": {"ignored": true}
	}`)

	data, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := data.BalanceSheet.Get("current_assets"); got != 150000 {
		t.Errorf("current_assets = %v, want 150000", got)
	}
	if len(data.HistoricalRevenue) != 3 {
		t.Errorf("historical revenue length = %d, want 3", len(data.HistoricalRevenue))
	}
	if data.OverduePayables != 2500 {
		t.Errorf("overdue_payables = %v, want 2500", data.OverduePayables)
	}
}

func TestParseRejectsBrokenJSON(t *testing.T) {
	if _, err := Parse([]byte(`{"balance_sheet": `)); err == nil {
		t.Error("Parse accepted truncated JSON")
	}
}

func TestSectionGetAliases(t *testing.T) {
	s := Section{"net_profit": 5000}
	if got := s.Get("net_income", "net_profit"); got != 5000 {
		t.Errorf("Get with alias = %v, want 5000", got)
	}
	if got := s.Get("missing"); got != 0 {
		t.Errorf("Get missing key = %v, want 0", got)
	}
	// Zero values are skipped in favor of a later non-zero alias.
	s = Section{"revenue": 0, "total_revenue": 90000}
	if got := s.Get("revenue", "total_revenue"); got != 90000 {
		t.Errorf("Get skipping zero = %v, want 90000", got)
	}
}

func TestValidateBalanceIdentity(t *testing.T) {
	data := &FinancialData{
		BalanceSheet: Section{
			"total_assets":      100000,
			"total_liabilities": 40000,
			"total_equity":      40000, // 20000 gap, well over 1%
		},
	}
	issues := Validate(data)
	if len(issues) != 1 {
		t.Fatalf("issues = %d, want 1", len(issues))
	}
	if issues[0].Field != "balance_sheet.total_assets" || issues[0].Severity != SeverityWarning {
		t.Errorf("issue = %+v", issues[0])
	}

	// Within tolerance.
	data.BalanceSheet["total_equity"] = 59500
	if issues := Validate(data); len(issues) != 0 {
		t.Errorf("issues = %d, want 0 within 1%% tolerance", len(issues))
	}
}

func TestValidateFlagsImplausibleValues(t *testing.T) {
	data := &FinancialData{
		IncomeStatement: Section{"revenue": 2e15},
	}
	issues := Validate(data)
	if len(issues) != 1 {
		t.Fatalf("issues = %d, want 1", len(issues))
	}
	if issues[0].Field != "income_statement.revenue" {
		t.Errorf("field = %q", issues[0].Field)
	}
}

func TestValidateCurrentVsTotalAssets(t *testing.T) {
	data := &FinancialData{
		BalanceSheet: Section{
			"current_assets": 120000,
			"total_assets":   100000,
		},
	}
	issues := Validate(data)
	if len(issues) != 1 {
		t.Fatalf("issues = %d, want 1", len(issues))
	}
	if issues[0].Field != "balance_sheet.current_assets" {
		t.Errorf("field = %q", issues[0].Field)
	}
}

func TestValidateNilData(t *testing.T) {
	if issues := Validate(nil); len(issues) != 0 {
		t.Errorf("issues = %d, want 0 for nil data", len(issues))
	}
}
