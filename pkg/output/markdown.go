package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/glamour"
	"github.com/iwvelando/rental-forecast/pkg/format"
)

// markdownWordWrap is the column at which styled markdown is wrapped.
const markdownWordWrap = 120

const reportTemplate = `# {{ .Title }}

| Purchase | Down payment | Loan | Monthly payment |
|---:|---:|---:|---:|
| {{ money .Inputs.PropertyPrice }} | {{ money .Inputs.DownPayment }} ({{ pct .Inputs.DownPaymentPercent }}) | {{ money .Inputs.LoanAmount }} at {{ pct .Inputs.InterestRate }}, {{ .Inputs.LoanTermYears }}y | {{ money .Inputs.MonthlyPayment }} |

## Monthly cash flow

| Item | Amount |
|:---|---:|
| Gross rent | {{ money .Result.Monthly.GrossRent }} |
| Effective income | {{ money .Result.Monthly.EffectiveIncome }} |
| Operating expenses | {{ money .Result.Monthly.TotalExpenses }} |
| Net operating income | {{ money .Result.Monthly.NetOperatingIncome }} |
| Debt service | {{ money .Result.Monthly.DebtService }} |
| **Net cash flow** | **{{ money .Result.Monthly.NetCashFlow }}** |

## Returns

| Metric | Value |
|:---|---:|
| IRR | {{ pct .Result.IRR }}{{ if not .Result.IRRConverged }} (not converged){{ end }} |
| NPV | {{ money .Result.NPV }} |
| Break-even | {{ breakEven .Result.BreakEvenYear }} |
| Sale proceeds | {{ money .Result.SaleProceeds }} |
| Total capital gain | {{ money .Result.TotalCapitalGain }} |
| Cash-on-cash ROI | {{ pct .Result.CashOnCashROI }} |

## Yearly projection

| Year | Value | Rent | Expenses | NOI | Debt service | Net cash flow | Tax savings | ROI | Cumulative ROI |
|:---|---:|---:|---:|---:|---:|---:|---:|---:|---:|
{{- range .Result.Years }}
| {{ label . }} | {{ money .PropertyValue }} | {{ money .AnnualRent }} | {{ money .OperatingExpenses }} | {{ money .NetOperatingIncome }} | {{ money .DebtService }} | {{ money .NetCashFlow }} | {{ money .TaxSavings }} | {{ pct .ROI }} | {{ pct .CumulativeROI }} |
{{- end }}
{{- with .Sensitivity }}

## Rent sensitivity

| Change | Monthly rent | Monthly cash flow | Total capital gain | IRR |
|---:|---:|---:|---:|---:|
{{- range .Rent }}
| {{ pct .ChangePercent }} | {{ money .MonthlyRent }} | {{ money .MonthlyCashFlow }} | {{ money .TotalCapitalGain }} | {{ pct .IRR }} |
{{- end }}

## Appreciation sensitivity

| Rate | Final value | Total return | IRR |
|---:|---:|---:|---:|
{{- range .Appreciation }}
| {{ pct .AppreciationRate }} | {{ money .FinalPropertyValue }} | {{ pct .TotalReturnPercent }} | {{ pct .IRR }} |
{{- end }}
{{- end }}
{{- if .Amortization }}

## Amortization schedule

| Month | Payment | Principal | Interest | Remaining principal |
|---:|---:|---:|---:|---:|
{{- range .Amortization }}
| {{ .Month }} | {{ money .Payment }} | {{ money .Principal }} | {{ money .Interest }} | {{ money .RemainingPrincipal }} |
{{- end }}
{{- end }}
{{- if .Warnings }}

## Warnings
{{ range .Warnings }}
- {{ . }}
{{- end }}
{{- end }}
`

// markdownView is the data handed to the report template.
type markdownView struct {
	Report
	Title string
}

func reportTmpl(currency string) *template.Template {
	return template.Must(template.New("report").Funcs(template.FuncMap{
		"money":     func(v float64) string { return format.CurrencyIn(v, currency) },
		"pct":       format.Percent,
		"breakEven": breakEvenText,
		"label":     yearLabel,
	}).Parse(reportTemplate))
}

// MarkdownString renders the report as a GitHub-flavored markdown document.
func MarkdownString(r Report) (string, error) {
	var b strings.Builder
	if err := reportTmpl(r.currency()).Execute(&b, markdownView{Report: r, Title: r.title()}); err != nil {
		return "", fmt.Errorf("failed to render markdown report: %w", err)
	}
	return b.String(), nil
}

// MarkdownFormat writes the markdown report. An empty style writes the raw
// markdown; otherwise the document is rendered for the terminal with the
// named glamour style ("auto", "dark", "light", "notty", ...).
func MarkdownFormat(w io.Writer, r Report, style string) error {
	md, err := MarkdownString(r)
	if err != nil {
		return err
	}
	if style != "" {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStylePath(style),
			glamour.WithWordWrap(markdownWordWrap),
		)
		if err != nil {
			return fmt.Errorf("failed to create markdown renderer: %w", err)
		}
		if md, err = renderer.Render(md); err != nil {
			return fmt.Errorf("failed to style markdown report: %w", err)
		}
	}
	_, err = io.WriteString(w, md)
	return err
}
