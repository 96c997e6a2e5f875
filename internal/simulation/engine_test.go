package simulation

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func baselineInput() Input {
	return Input{
		ScenarioName:         "baseline",
		MonthlyInvoiceVolume: 1000,
		NumAPStaff:           2,
		AvgHoursPerInvoice:   0.2,
		HourlyWage:           20,
		ErrorRateManual:      0.5,
		ErrorCost:            50,
		TimeHorizonMonths:    12,
	}
}

func TestSimulate(t *testing.T) {
	engine := NewDefaultEngine()

	withCost := baselineInput()
	withCost.OneTimeImplementationCost = 50000

	losing := Input{
		MonthlyInvoiceVolume:      1000,
		NumAPStaff:                0,
		AvgHoursPerInvoice:        0.2,
		HourlyWage:                20,
		ErrorRateManual:           0,
		ErrorCost:                 50,
		TimeHorizonMonths:         12,
		OneTimeImplementationCost: 1000,
	}

	losingNoCost := losing
	losingNoCost.OneTimeImplementationCost = 0

	tests := []struct {
		name     string
		input    Input
		expected Result
	}{
		{
			name:  "Reference scenario without implementation cost",
			input: baselineInput(),
			expected: Result{
				MonthlySavings:    8800.00,
				CumulativeSavings: 105600.00,
				NetSavings:        105600.00,
				PaybackMonths:     0,
				ROIPercentage:     0,
			},
		},
		{
			name:  "Implementation cost is recouped",
			input: withCost,
			expected: Result{
				MonthlySavings:    8800.00,
				CumulativeSavings: 105600.00,
				NetSavings:        55600.00,
				PaybackMonths:     5.68,
				ROIPercentage:     111.2,
			},
		},
		{
			name:  "Automation costs more than it saves",
			input: losing,
			expected: Result{
				MonthlySavings:    -275,
				CumulativeSavings: -3300,
				NetSavings:        -4300,
				PaybackMonths:     0,
				ROIPercentage:     -430,
			},
		},
		{
			name:  "Negative net savings without cost keeps ROI at zero",
			input: losingNoCost,
			expected: Result{
				MonthlySavings:    -275,
				CumulativeSavings: -3300,
				NetSavings:        -3300,
				PaybackMonths:     0,
				ROIPercentage:     0,
			},
		},
		{
			name:     "All zero input",
			input:    Input{},
			expected: Result{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Simulate(tt.input)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Simulate() mismatch (-expected +got):\n%s", diff)
			}
		})
	}
}

func TestSimulateCumulativeUsesUnroundedMonthly(t *testing.T) {
	engine := NewDefaultEngine()
	input := Input{
		MonthlyInvoiceVolume: 333,
		NumAPStaff:           1,
		AvgHoursPerInvoice:   0.1,
		HourlyWage:           17.77,
		TimeHorizonMonths:    7,
	}

	got := engine.Simulate(input)
	if got.MonthlySavings != 577.66 {
		t.Fatalf("MonthlySavings = %v, expected 577.66", got.MonthlySavings)
	}
	// 577.6551 * 7 = 4043.5857; multiplying the rounded figure would give 4043.62.
	if got.CumulativeSavings != 4043.59 {
		t.Errorf("CumulativeSavings = %v, expected 4043.59", got.CumulativeSavings)
	}
}

func TestSimulatePaybackNeverNegative(t *testing.T) {
	engine := NewDefaultEngine()
	for _, volume := range []float64{0, 1, 10, 1000} {
		input := Input{
			MonthlyInvoiceVolume:      volume,
			ErrorCost:                 100,
			TimeHorizonMonths:         24,
			OneTimeImplementationCost: 25000,
		}
		got := engine.Simulate(input)
		if got.MonthlySavings > 0 {
			t.Fatalf("volume %v: expected non-positive savings, got %v", volume, got.MonthlySavings)
		}
		if got.PaybackMonths != 0 {
			t.Errorf("volume %v: PaybackMonths = %v, expected 0", volume, got.PaybackMonths)
		}
	}
}

func TestSimulateNonFiniteInput(t *testing.T) {
	engine := NewDefaultEngine()
	inputs := []Input{
		{MonthlyInvoiceVolume: math.Inf(1), NumAPStaff: 1, AvgHoursPerInvoice: 1, HourlyWage: 1, TimeHorizonMonths: 12},
		{MonthlyInvoiceVolume: 100, HourlyWage: math.NaN(), NumAPStaff: 1, AvgHoursPerInvoice: 1, OneTimeImplementationCost: 10},
		{MonthlyInvoiceVolume: 100, OneTimeImplementationCost: math.Inf(1), TimeHorizonMonths: 12},
	}

	for i, input := range inputs {
		got := engine.Simulate(input)
		for name, v := range map[string]float64{
			"monthly_savings":    got.MonthlySavings,
			"cumulative_savings": got.CumulativeSavings,
			"net_savings":        got.NetSavings,
			"payback_months":     got.PaybackMonths,
			"roi_percentage":     got.ROIPercentage,
		} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Errorf("input %d: %s = %v, expected a finite value", i, name, v)
			}
		}
	}
}

func TestSimulateIsDeterministic(t *testing.T) {
	engine := NewDefaultEngine()
	input := baselineInput()
	input.OneTimeImplementationCost = 12345.67

	first := engine.Simulate(input)

	var wg sync.WaitGroup
	results := make([]Result, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = engine.Simulate(input)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if !cmp.Equal(first, got) {
			t.Errorf("run %d differs: %+v vs %+v", i, got, first)
		}
	}
}

func TestSimulateWithCustomConstants(t *testing.T) {
	engine := NewEngine(Constants{MinROIBoostFactor: 1})
	input := baselineInput()

	got := engine.Simulate(input)
	// labor 8000 plus error savings 0.005 * 1000 * 50 with no automation costs.
	if got.MonthlySavings != 8250 {
		t.Errorf("MonthlySavings = %v, expected 8250", got.MonthlySavings)
	}
	if engine.Constants() != (Constants{MinROIBoostFactor: 1}) {
		t.Errorf("Constants() = %+v", engine.Constants())
	}
}

func TestRun(t *testing.T) {
	engine := NewDefaultEngine()

	result, err := engine.Run(baselineInput())
	if err != nil {
		t.Fatalf("Run() unexpected error = %v", err)
	}
	if result.MonthlySavings != 8800 {
		t.Errorf("MonthlySavings = %v, expected 8800", result.MonthlySavings)
	}

	bad := baselineInput()
	bad.NumAPStaff = -1
	result, err = engine.Run(bad)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Run() error = %v, expected ErrInvalidInput", err)
	}
	if result != (Result{}) {
		t.Errorf("Run() returned a result for invalid input: %+v", result)
	}
}
