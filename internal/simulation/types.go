package simulation

import "time"

// Input is the set of business figures describing the manual process.
type Input struct {
	ScenarioName              string  `json:"scenario_name" yaml:"scenario_name,omitempty"`
	MonthlyInvoiceVolume      float64 `json:"monthly_invoice_volume" yaml:"monthly_invoice_volume"`
	NumAPStaff                float64 `json:"num_ap_staff" yaml:"num_ap_staff"`
	AvgHoursPerInvoice        float64 `json:"avg_hours_per_invoice" yaml:"avg_hours_per_invoice"`
	HourlyWage                float64 `json:"hourly_wage" yaml:"hourly_wage"`
	ErrorRateManual           float64 `json:"error_rate_manual" yaml:"error_rate_manual"` // percent, 0-100
	ErrorCost                 float64 `json:"error_cost" yaml:"error_cost"`
	TimeHorizonMonths         float64 `json:"time_horizon_months" yaml:"time_horizon_months"`
	OneTimeImplementationCost float64 `json:"one_time_implementation_cost" yaml:"one_time_implementation_cost"`
}

// Result holds the derived metrics, each rounded to two decimal places.
type Result struct {
	MonthlySavings    float64 `json:"monthly_savings" yaml:"monthly_savings"`
	CumulativeSavings float64 `json:"cumulative_savings" yaml:"cumulative_savings"`
	NetSavings        float64 `json:"net_savings" yaml:"net_savings"`
	PaybackMonths     float64 `json:"payback_months" yaml:"payback_months"`
	ROIPercentage     float64 `json:"roi_percentage" yaml:"roi_percentage"`
}

// Scenario is a persisted Input and its Result. ID and CreatedAt are assigned
// by the store on insert. The embedded structs flatten into a single JSON
// object whose input and result keys never overlap.
type Scenario struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Input
	Result
}

// NewScenario merges an input and its result into an unsaved Scenario.
func NewScenario(input Input, result Result) Scenario {
	return Scenario{Input: input, Result: result}
}

// Split separates a stored scenario back into its input and result.
func (s Scenario) Split() (Input, Result) {
	return s.Input, s.Result
}
