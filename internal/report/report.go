// Package report renders downloadable HTML summaries of a simulation result.
package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/iwvelando/invoice-roi/internal/simulation"
	"github.com/iwvelando/invoice-roi/pkg/constants"
	"github.com/iwvelando/invoice-roi/pkg/format"
)

//go:embed report.html.tmpl
var reportTemplate string

var page = template.Must(template.New("report").Parse(reportTemplate))

var whitespace = regexp.MustCompile(`\s+`)

// ContentType is the media type of a rendered report.
const ContentType = "text/html; charset=utf-8"

// Report is the material a single report is built from. Input is optional;
// when present the report also states how much staff time automation frees.
type Report struct {
	ScenarioName string
	Result       simulation.Result
	Input        *simulation.Input
	GeneratedAt  time.Time
}

// Renderer writes reports with a fixed currency symbol and engine constants.
type Renderer struct {
	currencySymbol string
	constants      simulation.Constants
}

// NewRenderer returns a Renderer. The symbol may be empty.
func NewRenderer(currencySymbol string, c simulation.Constants) *Renderer {
	return &Renderer{currencySymbol: currencySymbol, constants: c}
}

type view struct {
	ScenarioName   string
	MonthlySavings string
	Payback        string
	ROI            string
	NetSavings     string
	HoursSaved     string
	Volume         string
	GeneratedAt    string
}

// Render writes the HTML document for rep to w.
func (r *Renderer) Render(w io.Writer, rep Report) error {
	generated := rep.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	v := view{
		ScenarioName:   displayName(rep.ScenarioName),
		MonthlySavings: format.Currency(rep.Result.MonthlySavings, r.currencySymbol),
		Payback:        format.Months(rep.Result.PaybackMonths),
		ROI:            format.Percentage(rep.Result.ROIPercentage),
		NetSavings:     format.Currency(rep.Result.NetSavings, r.currencySymbol),
		GeneratedAt:    generated.UTC().Format(time.RFC1123),
	}
	if in := rep.Input; in != nil && in.MonthlyInvoiceVolume > 0 {
		hours := in.MonthlyInvoiceVolume * r.constants.TimeSavedPerInvoiceMinutes / 60
		v.HoursSaved = format.NumericCurrency(hours)
		v.Volume = format.Number(in.MonthlyInvoiceVolume)
	}

	if err := page.Execute(w, v); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// Filename returns the download name for a scenario's report, e.g.
// "ROI_Report_Q4_Pilot.html".
func Filename(scenarioName string) string {
	return constants.ReportFilePrefix + whitespace.ReplaceAllString(displayName(scenarioName), "_") + ".html"
}

func displayName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "Untitled"
	}
	return trimmed
}
