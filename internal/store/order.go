package store

import (
	"sort"

	"github.com/iwvelando/invoice-roi/internal/simulation"
)

// sortNewestFirst orders by CreatedAt descending. The sort is stable so
// callers that pass scenarios in reverse insertion order keep that order for
// equal timestamps.
func sortNewestFirst(scenarios []simulation.Scenario) {
	sort.SliceStable(scenarios, func(i, j int) bool {
		return scenarios[i].CreatedAt.After(scenarios[j].CreatedAt)
	})
}
