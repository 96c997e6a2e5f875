package simulation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/iwvelando/invoice-roi/pkg/constants"
	"github.com/iwvelando/invoice-roi/pkg/mathutil"
)

// ErrInvalidInput is wrapped by every validation and decoding failure.
var ErrInvalidInput = errors.New("invalid input")

// Input field names as they appear on the wire.
const (
	FieldScenarioName              = "scenario_name"
	FieldMonthlyInvoiceVolume      = "monthly_invoice_volume"
	FieldNumAPStaff                = "num_ap_staff"
	FieldAvgHoursPerInvoice        = "avg_hours_per_invoice"
	FieldHourlyWage                = "hourly_wage"
	FieldErrorRateManual           = "error_rate_manual"
	FieldErrorCost                 = "error_cost"
	FieldTimeHorizonMonths         = "time_horizon_months"
	FieldOneTimeImplementationCost = "one_time_implementation_cost"
)

type numericField struct {
	name     string
	required bool
	value    func(*Input) *float64
}

var numericFields = []numericField{
	{FieldMonthlyInvoiceVolume, true, func(in *Input) *float64 { return &in.MonthlyInvoiceVolume }},
	{FieldNumAPStaff, true, func(in *Input) *float64 { return &in.NumAPStaff }},
	{FieldAvgHoursPerInvoice, true, func(in *Input) *float64 { return &in.AvgHoursPerInvoice }},
	{FieldHourlyWage, true, func(in *Input) *float64 { return &in.HourlyWage }},
	{FieldErrorRateManual, true, func(in *Input) *float64 { return &in.ErrorRateManual }},
	{FieldErrorCost, true, func(in *Input) *float64 { return &in.ErrorCost }},
	{FieldTimeHorizonMonths, true, func(in *Input) *float64 { return &in.TimeHorizonMonths }},
	{FieldOneTimeImplementationCost, false, func(in *Input) *float64 { return &in.OneTimeImplementationCost }},
}

// Validate rejects inputs with non-finite or negative figures and manual
// error rates above 100 percent. Zero is accepted for every field.
func Validate(input Input) error {
	var problems []string
	for _, field := range numericFields {
		v := *field.value(&input)
		switch {
		case !mathutil.IsFinite(v):
			problems = append(problems, fmt.Sprintf("%s must be a finite number", field.name))
		case v < 0:
			problems = append(problems, fmt.Sprintf("%s must not be negative, got %v", field.name, v))
		}
	}
	if input.ErrorRateManual > constants.PercentageMultiplier {
		problems = append(problems, fmt.Sprintf("%s is a percentage and must not exceed 100, got %v",
			FieldErrorRateManual, input.ErrorRateManual))
	}
	return problemsError(problems)
}

// DecodeInput builds an Input from a decoded JSON object. Numbers may be
// given as JSON numbers or numeric strings, as HTML forms submit them. The
// implementation cost defaults to zero when absent or blank; every other
// numeric field is required. Unknown keys are ignored.
func DecodeInput(raw map[string]interface{}) (Input, error) {
	var input Input
	var problems []string

	if name, ok := raw[FieldScenarioName]; ok && name != nil {
		s, ok := name.(string)
		if !ok {
			problems = append(problems, fmt.Sprintf("%s must be a string", FieldScenarioName))
		}
		input.ScenarioName = strings.TrimSpace(s)
	}

	for _, field := range numericFields {
		v, present, err := coerceFloat(raw[field.name])
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", field.name, err))
			continue
		}
		if !present {
			if field.required {
				problems = append(problems, fmt.Sprintf("%s is required", field.name))
			}
			continue
		}
		*field.value(&input) = v
	}

	if err := problemsError(problems); err != nil {
		return Input{}, err
	}
	return input, nil
}

// coerceFloat converts a decoded JSON value into a float. present is false
// for nil and blank strings.
func coerceFloat(value interface{}) (v float64, present bool, err error) {
	switch t := value.(type) {
	case nil:
		return 0, false, nil
	case float64:
		return t, true, nil
	case float32:
		return float64(t), true, nil
	case int:
		return float64(t), true, nil
	case int64:
		return float64(t), true, nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, true, fmt.Errorf("not a number: %q", t.String())
		}
		return f, true, nil
	case string:
		trimmed := strings.TrimSpace(t)
		if trimmed == "" {
			return 0, false, nil
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, true, fmt.Errorf("not a number: %q", t)
		}
		return f, true, nil
	default:
		return 0, true, fmt.Errorf("unsupported value type %T", value)
	}
}

func problemsError(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(problems, "; "))
}
