package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iwvelando/invoice-roi/internal/simulation"
	"github.com/iwvelando/invoice-roi/pkg/testutil"
)

func sample() (simulation.Input, simulation.Result) {
	input := testutil.ReferenceInput("Q4 Pilot")
	input.OneTimeImplementationCost = 50000
	return input, simulation.NewDefaultEngine().Simulate(input)
}

func TestPrettyFormat(t *testing.T) {
	input, result := sample()

	var buf bytes.Buffer
	if err := PrettyFormat(&buf, input, result, "$"); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	out := buf.String()

	for _, expected := range []string{
		"--- Results for scenario Q4 Pilot (12 months) ---",
		"Monthly savings     | $8,800.00",
		"Cumulative savings  | $105,600.00",
		"Implementation cost | $50,000.00",
		"Net savings         | $55,600.00",
		"Payback period      | 5.68 months",
		"ROI                 | 111.2%",
	} {
		if !strings.Contains(out, expected) {
			t.Errorf("PrettyFormat output missing %q:\n%s", expected, out)
		}
	}
}

func TestPrettyFormatUnnamed(t *testing.T) {
	input, result := sample()
	input.ScenarioName = ""

	var buf bytes.Buffer
	if err := PrettyFormat(&buf, input, result, ""); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	if !strings.Contains(buf.String(), "scenario unnamed") {
		t.Errorf("expected placeholder name, got:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "$") {
		t.Errorf("expected no currency symbol, got:\n%s", buf.String())
	}
}

func TestJSONFormat(t *testing.T) {
	input, result := sample()

	var buf bytes.Buffer
	if err := JSONFormat(&buf, input, result); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}

	var decoded struct {
		Inputs  map[string]interface{} `json:"inputs"`
		Results map[string]float64     `json:"results"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode output: %v\n%s", err, buf.String())
	}
	if decoded.Inputs["scenario_name"] != "Q4 Pilot" {
		t.Errorf("inputs.scenario_name = %v", decoded.Inputs["scenario_name"])
	}
	if decoded.Results["payback_months"] != 5.68 {
		t.Errorf("results.payback_months = %v", decoded.Results["payback_months"])
	}
}
