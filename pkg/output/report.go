// Package output provides utilities for formatting and displaying investment results.
package output

import (
	"fmt"
	"io"

	"github.com/iwvelando/rental-forecast/internal/investment"
	"github.com/iwvelando/rental-forecast/internal/sensitivity"
	"github.com/iwvelando/rental-forecast/pkg/constants"
	"github.com/iwvelando/rental-forecast/pkg/loans"
)

// Report bundles everything rendered for one scenario.
type Report struct {
	Name         string                `json:"name,omitempty"`
	Currency     string                `json:"currency"`
	Inputs       investment.Inputs     `json:"inputs"`
	Result       investment.Result     `json:"result"`
	Sensitivity  *sensitivity.Analysis `json:"sensitivity,omitempty"`
	Amortization []loans.Payment       `json:"amortization,omitempty"`
	Warnings     []string              `json:"warnings,omitempty"`
}

func (r Report) currency() string {
	if r.Currency == "" {
		return constants.DefaultCurrency
	}
	return r.Currency
}

func (r Report) title() string {
	if r.Name == "" {
		return "rental property"
	}
	return r.Name
}

func breakEvenText(year *int) string {
	if year == nil {
		return "Never"
	}
	if *year == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%d years", *year)
}

func yearLabel(y investment.YearlySnapshot) string {
	if y.Label != "" {
		return y.Label
	}
	return fmt.Sprintf("Year %d", y.Year)
}

// Write renders the report in the requested format. Markdown is written
// unstyled; use MarkdownFormat directly for terminal rendering.
func Write(w io.Writer, outputFormat string, r Report) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, r)
	case constants.OutputFormatCSV:
		return CsvFormat(w, r)
	case constants.OutputFormatJSON:
		return JSONFormat(w, r)
	case constants.OutputFormatMarkdown:
		return MarkdownFormat(w, r, "")
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}
