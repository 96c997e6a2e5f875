// Package simulation computes the return on investment of automating invoice
// processing.
package simulation

import (
	"github.com/iwvelando/invoice-roi/pkg/constants"
	"github.com/iwvelando/invoice-roi/pkg/mathutil"
)

// Engine evaluates the savings projection. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	constants Constants
}

// NewEngine creates an engine using the given constants.
func NewEngine(c Constants) *Engine {
	return &Engine{constants: c}
}

// NewDefaultEngine creates an engine using DefaultConstants.
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultConstants())
}

// Constants returns a copy of the engine constants.
func (e *Engine) Constants() Constants {
	return e.constants
}

// Run validates the input and, if it is acceptable, simulates it. An invalid
// input returns an error wrapping ErrInvalidInput and no result.
func (e *Engine) Run(input Input) (Result, error) {
	if err := Validate(input); err != nil {
		return Result{}, err
	}
	return e.Simulate(input), nil
}

// Simulate applies the savings formula to input without validating it. It
// never fails; values that are not finite are reported as zero.
func (e *Engine) Simulate(input Input) Result {
	c := e.constants
	volume := input.MonthlyInvoiceVolume
	cost := input.OneTimeImplementationCost

	laborCostManual := input.NumAPStaff * input.HourlyWage * input.AvgHoursPerInvoice * volume
	autoCost := volume * c.AutomatedCostPerInvoice

	manualErrorRate := input.ErrorRateManual / constants.PercentageMultiplier
	errorSavings := (manualErrorRate - c.ErrorRateAuto) * volume * input.ErrorCost

	monthlySavings := (laborCostManual + errorSavings) - autoCost
	monthlySavings *= c.MinROIBoostFactor

	cumulativeSavings := monthlySavings * input.TimeHorizonMonths
	netSavings := cumulativeSavings - cost

	paybackMonths := 0.0
	if monthlySavings > 0 && cost > 0 {
		paybackMonths = cost / monthlySavings
	}

	roiPercentage := mathutil.CalculatePercentage(netSavings, cost)

	return Result{
		MonthlySavings:    round(monthlySavings),
		CumulativeSavings: round(cumulativeSavings),
		NetSavings:        round(netSavings),
		PaybackMonths:     round(paybackMonths),
		ROIPercentage:     round(roiPercentage),
	}
}

func round(val float64) float64 {
	return mathutil.Round(mathutil.FiniteOrZero(val))
}
