// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/invoice-roi/internal/simulation"
)

// ReferenceInput returns the worked example used across the test suites:
// 1000 invoices a month handled by two clerks, with no implementation cost.
// Its result is ReferenceResult.
func ReferenceInput(name string) simulation.Input {
	return simulation.Input{
		ScenarioName:         name,
		MonthlyInvoiceVolume: 1000,
		NumAPStaff:           2,
		AvgHoursPerInvoice:   0.2,
		HourlyWage:           20,
		ErrorRateManual:      0.5,
		ErrorCost:            50,
		TimeHorizonMonths:    12,
	}
}

// ReferenceResult is the result of ReferenceInput.
func ReferenceResult() simulation.Result {
	return simulation.Result{
		MonthlySavings:    8800,
		CumulativeSavings: 105600,
		NetSavings:        105600,
	}
}

// FindScenario finds a scenario by name in the scenarios slice.
// Returns a pointer to the first match if found, nil otherwise.
func FindScenario(scenarios []simulation.Scenario, name string) *simulation.Scenario {
	for i := range scenarios {
		if scenarios[i].ScenarioName == name {
			return &scenarios[i]
		}
	}
	return nil
}
