// Package output provides utilities for formatting and displaying simulation results.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iwvelando/invoice-roi/internal/simulation"
	"github.com/iwvelando/invoice-roi/pkg/format"
)

// PrettyFormat writes a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, input simulation.Input, result simulation.Result, currencySymbol string) error {
	name := input.ScenarioName
	if name == "" {
		name = "unnamed"
	}

	rows := []struct {
		label string
		value string
	}{
		{"Monthly savings", format.Currency(result.MonthlySavings, currencySymbol)},
		{"Cumulative savings", format.Currency(result.CumulativeSavings, currencySymbol)},
		{"Implementation cost", format.Currency(input.OneTimeImplementationCost, currencySymbol)},
		{"Net savings", format.Currency(result.NetSavings, currencySymbol)},
		{"Payback period", format.Months(result.PaybackMonths)},
		{"ROI", format.Percentage(result.ROIPercentage)},
	}

	if _, err := fmt.Fprintf(w, "--- Results for scenario %s (%v months) ---\n", name, input.TimeHorizonMonths); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%-20s| %s\n", row.label, row.value); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormat writes the input and result as one indented JSON document.
func JSONFormat(w io.Writer, input simulation.Input, result simulation.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(struct {
		Inputs  simulation.Input  `json:"inputs"`
		Results simulation.Result `json:"results"`
	}{input, result})
}
