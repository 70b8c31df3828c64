package report

import (
	"sort"
	"time"

	"calculation-console/internal/store"
)

// OperationCount is the number of calculations using one operator.
type OperationCount struct {
	Operator string `json:"operator"`
	Count    int    `json:"count"`
}

// UsageSummary aggregates stored calculations.
type UsageSummary struct {
	TotalCalculations int              `json:"total_calculations"`
	PerOperation      []OperationCount `json:"per_operation"`
	LastCalculationAt *time.Time       `json:"last_calculation_at"`
}

// BuildUsageSummary counts calculations per operator, sorted by operator
// name. Calculations without an operation are counted as "unknown".
func BuildUsageSummary(calcs []*store.Calculation) UsageSummary {
	counts := make(map[string]int)
	var last *time.Time

	for _, c := range calcs {
		op := c.Type
		if op == "" {
			op = "unknown"
		}
		counts[op]++

		if !c.CreatedAt.IsZero() && (last == nil || c.CreatedAt.After(*last)) {
			t := c.CreatedAt.UTC()
			last = &t
		}
	}

	per := make([]OperationCount, 0, len(counts))
	for op, n := range counts {
		per = append(per, OperationCount{Operator: op, Count: n})
	}
	sort.Slice(per, func(i, j int) bool { return per[i].Operator < per[j].Operator })

	return UsageSummary{
		TotalCalculations: len(calcs),
		PerOperation:      per,
		LastCalculationAt: last,
	}
}
