package metrics

// benchmarkSet holds per-industry target values for the rated ratios.
// A nil entry means the industry has no meaningful benchmark for that ratio
// (e.g. inventory turnover for pure service businesses).
type benchmarkSet struct {
	CurrentRatio        *float64
	QuickRatio          *float64
	GrossMargin         *float64
	NetMargin           *float64
	DebtToEquity        *float64
	InventoryTurnover   *float64
	ReceivablesTurnover *float64
}

// industryBenchmarks are simplified sector averages used for rating.
var industryBenchmarks = map[string]benchmarkSet{
	"manufacturing": {
		CurrentRatio:        floatPtr(1.5),
		QuickRatio:          floatPtr(1.0),
		GrossMargin:         floatPtr(0.25),
		NetMargin:           floatPtr(0.08),
		DebtToEquity:        floatPtr(1.0),
		InventoryTurnover:   floatPtr(6.0),
		ReceivablesTurnover: floatPtr(8.0),
	},
	"retail": {
		CurrentRatio:        floatPtr(1.2),
		QuickRatio:          floatPtr(0.5),
		GrossMargin:         floatPtr(0.30),
		NetMargin:           floatPtr(0.05),
		DebtToEquity:        floatPtr(0.8),
		InventoryTurnover:   floatPtr(8.0),
		ReceivablesTurnover: floatPtr(20.0),
	},
	"services": {
		CurrentRatio:        floatPtr(1.5),
		QuickRatio:          floatPtr(1.2),
		GrossMargin:         floatPtr(0.40),
		NetMargin:           floatPtr(0.15),
		DebtToEquity:        floatPtr(0.5),
		InventoryTurnover:   nil, // service businesses carry no inventory
		ReceivablesTurnover: floatPtr(10.0),
	},
	"ecommerce": {
		CurrentRatio:        floatPtr(1.3),
		QuickRatio:          floatPtr(0.8),
		GrossMargin:         floatPtr(0.35),
		NetMargin:           floatPtr(0.06),
		DebtToEquity:        floatPtr(0.7),
		InventoryTurnover:   floatPtr(10.0),
		ReceivablesTurnover: floatPtr(15.0),
	},
	"default": {
		CurrentRatio:        floatPtr(1.5),
		QuickRatio:          floatPtr(1.0),
		GrossMargin:         floatPtr(0.30),
		NetMargin:           floatPtr(0.10),
		DebtToEquity:        floatPtr(1.0),
		InventoryTurnover:   floatPtr(6.0),
		ReceivablesTurnover: floatPtr(10.0),
	},
}
