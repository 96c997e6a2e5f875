package simulation

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Input)
		expectErr string
	}{
		{
			name:   "Valid input",
			mutate: func(*Input) {},
		},
		{
			name:   "Zero volume is a valid edge case",
			mutate: func(in *Input) { in.MonthlyInvoiceVolume = 0 },
		},
		{
			name:   "Error rate of exactly one hundred percent",
			mutate: func(in *Input) { in.ErrorRateManual = 100 },
		},
		{
			name:      "Negative volume",
			mutate:    func(in *Input) { in.MonthlyInvoiceVolume = -5 },
			expectErr: "monthly_invoice_volume must not be negative",
		},
		{
			name:      "Negative implementation cost",
			mutate:    func(in *Input) { in.OneTimeImplementationCost = -1 },
			expectErr: "one_time_implementation_cost must not be negative",
		},
		{
			name:      "NaN wage",
			mutate:    func(in *Input) { in.HourlyWage = math.NaN() },
			expectErr: "hourly_wage must be a finite number",
		},
		{
			name:      "Infinite horizon",
			mutate:    func(in *Input) { in.TimeHorizonMonths = math.Inf(1) },
			expectErr: "time_horizon_months must be a finite number",
		},
		{
			name:      "Error rate above one hundred percent",
			mutate:    func(in *Input) { in.ErrorRateManual = 150 },
			expectErr: "must not exceed 100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := baselineInput()
			tt.mutate(&input)
			err := Validate(input)
			if tt.expectErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("Validate() error = %v, expected ErrInvalidInput", err)
			}
			if !strings.Contains(err.Error(), tt.expectErr) {
				t.Errorf("Validate() error = %q, expected it to contain %q", err.Error(), tt.expectErr)
			}
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	err := Validate(Input{NumAPStaff: -1, ErrorCost: -2})
	if err == nil {
		t.Fatal("Validate() expected error but got none")
	}
	for _, field := range []string{FieldNumAPStaff, FieldErrorCost} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not mention %s", err.Error(), field)
		}
	}
}

func TestDecodeInput(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		expected  Input
		expectErr string
	}{
		{
			name: "JSON numbers",
			body: `{"scenario_name":"Q4 Pilot","monthly_invoice_volume":1000,"num_ap_staff":2,
				"avg_hours_per_invoice":0.2,"hourly_wage":20,"error_rate_manual":0.5,"error_cost":50,
				"time_horizon_months":12,"one_time_implementation_cost":50000}`,
			expected: Input{
				ScenarioName:              "Q4 Pilot",
				MonthlyInvoiceVolume:      1000,
				NumAPStaff:                2,
				AvgHoursPerInvoice:        0.2,
				HourlyWage:                20,
				ErrorRateManual:           0.5,
				ErrorCost:                 50,
				TimeHorizonMonths:         12,
				OneTimeImplementationCost: 50000,
			},
		},
		{
			name: "Form strings with blank implementation cost",
			body: `{"scenario_name":"  padded  ","monthly_invoice_volume":"2000","num_ap_staff":"3",
				"avg_hours_per_invoice":"0.17","hourly_wage":"30","error_rate_manual":"0.5","error_cost":"100",
				"time_horizon_months":"36","one_time_implementation_cost":""}`,
			expected: Input{
				ScenarioName:         "padded",
				MonthlyInvoiceVolume: 2000,
				NumAPStaff:           3,
				AvgHoursPerInvoice:   0.17,
				HourlyWage:           30,
				ErrorRateManual:      0.5,
				ErrorCost:            100,
				TimeHorizonMonths:    36,
			},
		},
		{
			name:      "Missing required field",
			body:      `{"monthly_invoice_volume":1000,"num_ap_staff":2,"avg_hours_per_invoice":0.2,"hourly_wage":20,"error_rate_manual":0.5,"error_cost":50}`,
			expectErr: "time_horizon_months is required",
		},
		{
			name:      "Blank required field",
			body:      `{"monthly_invoice_volume":"","num_ap_staff":2,"avg_hours_per_invoice":0.2,"hourly_wage":20,"error_rate_manual":0.5,"error_cost":50,"time_horizon_months":12}`,
			expectErr: "monthly_invoice_volume is required",
		},
		{
			name:      "Non numeric string",
			body:      `{"monthly_invoice_volume":"lots","num_ap_staff":2,"avg_hours_per_invoice":0.2,"hourly_wage":20,"error_rate_manual":0.5,"error_cost":50,"time_horizon_months":12}`,
			expectErr: `not a number: "lots"`,
		},
		{
			name:      "Boolean value",
			body:      `{"monthly_invoice_volume":true,"num_ap_staff":2,"avg_hours_per_invoice":0.2,"hourly_wage":20,"error_rate_manual":0.5,"error_cost":50,"time_horizon_months":12}`,
			expectErr: "unsupported value type bool",
		},
		{
			name:      "Scenario name of the wrong type",
			body:      `{"scenario_name":7,"monthly_invoice_volume":1,"num_ap_staff":2,"avg_hours_per_invoice":0.2,"hourly_wage":20,"error_rate_manual":0.5,"error_cost":50,"time_horizon_months":12}`,
			expectErr: "scenario_name must be a string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw map[string]interface{}
			if err := json.Unmarshal([]byte(tt.body), &raw); err != nil {
				t.Fatalf("failed to unmarshal test body: %v", err)
			}

			got, err := DecodeInput(raw)
			if tt.expectErr != "" {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("DecodeInput() error = %v, expected ErrInvalidInput", err)
				}
				if !strings.Contains(err.Error(), tt.expectErr) {
					t.Errorf("DecodeInput() error = %q, expected it to contain %q", err.Error(), tt.expectErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeInput() unexpected error = %v", err)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("DecodeInput() mismatch (-expected +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeInputJSONNumber(t *testing.T) {
	raw := map[string]interface{}{
		FieldMonthlyInvoiceVolume: json.Number("1500"),
		FieldNumAPStaff:           json.Number("2"),
		FieldAvgHoursPerInvoice:   json.Number("0.25"),
		FieldHourlyWage:           json.Number("22.5"),
		FieldErrorRateManual:      json.Number("1"),
		FieldErrorCost:            json.Number("40"),
		FieldTimeHorizonMonths:    json.Number("24"),
	}

	got, err := DecodeInput(raw)
	if err != nil {
		t.Fatalf("DecodeInput() unexpected error = %v", err)
	}
	if got.HourlyWage != 22.5 || got.TimeHorizonMonths != 24 {
		t.Errorf("DecodeInput() = %+v", got)
	}
}
