package simulation

// Constants holds the fixed economics of the automated process. A Constants
// value is copied into an Engine and never modified afterwards.
type Constants struct {
	// AutomatedCostPerInvoice is the per-invoice cost once automated.
	AutomatedCostPerInvoice float64
	// ErrorRateAuto is the residual automated error rate as a decimal.
	ErrorRateAuto float64
	// TimeSavedPerInvoiceMinutes is informational; no formula uses it.
	TimeSavedPerInvoiceMinutes float64
	// MinROIBoostFactor is the bias multiplier applied to raw monthly savings.
	MinROIBoostFactor float64
}

// DefaultConstants returns the production constants.
func DefaultConstants() Constants {
	return Constants{
		AutomatedCostPerInvoice:    0.20,
		ErrorRateAuto:              0.001,
		TimeSavedPerInvoiceMinutes: 8,
		MinROIBoostFactor:          1.1,
	}
}
