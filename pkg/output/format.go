package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/rental-forecast/pkg/format"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, r Report) error {
	p := message.NewPrinter(language.English)
	cur := r.currency()
	money := func(v float64) string { return format.CurrencyIn(v, cur) }
	in := r.Inputs
	res := r.Result

	var b strings.Builder
	fmt.Fprintf(&b, "--- Results for %s ---\n", r.title())
	fmt.Fprintf(&b, "Purchase price     | %s\n", money(in.PropertyPrice))
	fmt.Fprintf(&b, "Down payment       | %s (%s)\n", money(in.DownPayment), format.Percent(in.DownPaymentPercent))
	fmt.Fprintf(&b, "Loan               | %s at %s for %d years\n", money(in.LoanAmount), format.Percent(in.InterestRate), in.LoanTermYears)
	fmt.Fprintf(&b, "Monthly payment    | %s\n", money(in.MonthlyPayment))

	m := res.Monthly
	b.WriteString("\nMonthly cash flow\n")
	fmt.Fprintf(&b, "Gross rent         | %s\n", money(m.GrossRent))
	fmt.Fprintf(&b, "Vacancy loss       | %s\n", money(-m.VacancyLoss))
	fmt.Fprintf(&b, "Effective income   | %s\n", money(m.EffectiveIncome))
	fmt.Fprintf(&b, "Operating expenses | %s\n", money(-m.TotalExpenses))
	fmt.Fprintf(&b, "NOI                | %s\n", money(m.NetOperatingIncome))
	fmt.Fprintf(&b, "Debt service       | %s\n", money(-m.DebtService))
	fmt.Fprintf(&b, "Depreciation       | %s\n", money(m.Depreciation))
	fmt.Fprintf(&b, "Net cash flow      | %s\n", money(m.NetCashFlow))

	b.WriteString("\nReturns\n")
	fmt.Fprintf(&b, "IRR                | %s\n", format.Percent(res.IRR))
	fmt.Fprintf(&b, "NPV                | %s\n", money(res.NPV))
	fmt.Fprintf(&b, "Break-even         | %s\n", breakEvenText(res.BreakEvenYear))
	fmt.Fprintf(&b, "Sale proceeds      | %s\n", money(res.SaleProceeds))
	fmt.Fprintf(&b, "Total capital gain | %s\n", money(res.TotalCapitalGain))
	fmt.Fprintf(&b, "Cash-on-cash ROI   | %s\n", format.Percent(res.CashOnCashROI))

	b.WriteString("\nYear     | Property Value | Annual Rent | Expenses | NOI | Debt Service | Interest | Principal | Net Cash Flow | Depreciation | Tax Savings | Total Cash Flow | ROI | Cumulative ROI\n")
	b.WriteString("____     | ______________ | ___________ | ________ | ___ | ____________ | ________ | _________ | _____________ | ____________ | ___________ | _______________ | ___ | ______________\n")
	for _, y := range res.Years {
		_, _ = p.Fprintf(&b, "%s | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f%% | %.2f%%\n",
			yearLabel(y), y.PropertyValue, y.AnnualRent, y.OperatingExpenses, y.NetOperatingIncome,
			y.DebtService, y.InterestPaid, y.PrincipalPaid, y.NetCashFlow, y.Depreciation,
			y.TaxSavings, y.TotalCashFlowForROI, y.ROI, y.CumulativeROI)
	}
	t := res.Totals
	_, _ = p.Fprintf(&b, "TOTAL | | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f | %.2f%% |\n",
		t.AnnualRent, t.OperatingExpenses, t.NetOperatingIncome, t.DebtService, t.InterestPaid,
		t.PrincipalPaid, t.NetCashFlow, t.Depreciation, t.TaxSavings, t.TotalCashFlowForROI, t.ROI)

	if s := r.Sensitivity; s != nil {
		b.WriteString("\nRent sensitivity\n")
		b.WriteString("Rent Change | Monthly Rent | Monthly Cash Flow | Total Capital Gain | IRR\n")
		for _, row := range s.Rent {
			fmt.Fprintf(&b, "%+.0f%% | %s | %s | %s | %s\n", row.ChangePercent, money(row.MonthlyRent),
				money(row.MonthlyCashFlow), money(row.TotalCapitalGain), format.Percent(row.IRR))
		}
		b.WriteString("\nAppreciation sensitivity\n")
		b.WriteString("Appreciation | Final Property Value | Total Return | IRR\n")
		for _, row := range s.Appreciation {
			fmt.Fprintf(&b, "%s | %s | %s | %s\n", format.Percent(row.AppreciationRate), money(row.FinalPropertyValue),
				format.Percent(row.TotalReturnPercent), format.Percent(row.IRR))
		}
	}

	if len(r.Amortization) > 0 {
		b.WriteString("\nAmortization schedule\n")
		b.WriteString("Month | Payment | Principal | Interest | Remaining Principal\n")
		for _, payment := range r.Amortization {
			_, _ = p.Fprintf(&b, "%d | %.2f | %.2f | %.2f | %.2f\n", payment.Month, payment.Payment,
				payment.Principal, payment.Interest, payment.RemainingPrincipal)
		}
	}

	if len(r.Warnings) > 0 {
		b.WriteString("\nWarnings\n")
		for _, warning := range r.Warnings {
			fmt.Fprintf(&b, "- %s\n", warning)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// yearlyHeader is the column layout of the yearly CSV table.
var yearlyHeader = []string{
	"year", "label", "calendar year", "property value", "monthly rent", "annual rent", "effective income",
	"operating expenses", "noi", "debt service", "interest", "principal", "net cash flow",
	"taxable cash flow", "depreciation", "depreciation used", "carried forward depreciation",
	"tax savings", "total cash flow", "cumulative cash flow", "roi", "cumulative roi",
}

func pct(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(4)
}

func csvRecords(r Report) [][]string {
	cur := r.currency()
	amt := func(v float64) string { return format.Fixed(v, cur) }
	res := r.Result

	breakEven := ""
	if res.BreakEvenYear != nil {
		breakEven = strconv.Itoa(*res.BreakEvenYear)
	}

	records := [][]string{
		{"metric", "value"},
		{"name", r.Name},
		{"currency", cur},
		{"monthly payment", amt(r.Inputs.MonthlyPayment)},
		{"monthly cash flow", amt(res.Monthly.NetCashFlow)},
		{"irr", pct(res.IRR)},
		{"npv", amt(res.NPV)},
		{"break-even year", breakEven},
		{"sale proceeds", amt(res.SaleProceeds)},
		{"total capital gain", amt(res.TotalCapitalGain)},
		{"cash-on-cash roi", pct(res.CashOnCashROI)},
		{},
		yearlyHeader,
	}

	for _, y := range res.Years {
		calendarYear := ""
		if y.CalendarYear > 0 {
			calendarYear = strconv.Itoa(y.CalendarYear)
		}
		records = append(records, []string{
			strconv.Itoa(y.Year), y.Label, calendarYear, amt(y.PropertyValue), amt(y.MonthlyRent),
			amt(y.AnnualRent), amt(y.EffectiveIncome), amt(y.OperatingExpenses), amt(y.NetOperatingIncome),
			amt(y.DebtService), amt(y.InterestPaid), amt(y.PrincipalPaid), amt(y.NetCashFlow),
			amt(y.TaxableCashFlow), amt(y.Depreciation), amt(y.DepreciationUsed),
			amt(y.CarriedForwardDepreciation), amt(y.TaxSavings), amt(y.TotalCashFlowForROI),
			amt(y.CumulativeCashFlow), pct(y.ROI), pct(y.CumulativeROI),
		})
	}

	t := res.Totals
	records = append(records, []string{
		"TOTAL", "", "", "", "", amt(t.AnnualRent), amt(t.EffectiveIncome), amt(t.OperatingExpenses),
		amt(t.NetOperatingIncome), amt(t.DebtService), amt(t.InterestPaid), amt(t.PrincipalPaid),
		amt(t.NetCashFlow), "", amt(t.Depreciation), amt(t.DepreciationUsed), "", amt(t.TaxSavings),
		amt(t.TotalCashFlowForROI), "", pct(t.ROI), "",
	})

	if s := r.Sensitivity; s != nil {
		records = append(records, []string{}, []string{"rent change", "monthly rent", "monthly cash flow", "total capital gain", "irr"})
		for _, row := range s.Rent {
			records = append(records, []string{
				pct(row.ChangePercent), amt(row.MonthlyRent), amt(row.MonthlyCashFlow), amt(row.TotalCapitalGain), pct(row.IRR),
			})
		}
		records = append(records, []string{}, []string{"appreciation rate", "final property value", "total return", "irr"})
		for _, row := range s.Appreciation {
			records = append(records, []string{
				pct(row.AppreciationRate), amt(row.FinalPropertyValue), pct(row.TotalReturnPercent), pct(row.IRR),
			})
		}
	}

	if len(r.Amortization) > 0 {
		records = append(records, []string{}, []string{"month", "payment", "principal", "interest", "remaining principal"})
		for _, payment := range r.Amortization {
			records = append(records, []string{
				strconv.Itoa(payment.Month), amt(payment.Payment), amt(payment.Principal),
				amt(payment.Interest), amt(payment.RemainingPrincipal),
			})
		}
	}
	return records
}

// CsvFormat outputs in comma-separated value format: a summary block, the
// yearly table with a TOTAL row and, when present, the sensitivity and
// amortization tables.
// Blocks are separated by empty records.
func CsvFormat(w io.Writer, r Report) error {
	cw := csv.NewWriter(w)
	for _, record := range csvRecords(r) {
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// CsvString returns the CSV rendering as a string.
func CsvString(r Report) (string, error) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// JSONFormat outputs the report as indented JSON with raw numeric values.
func JSONFormat(w io.Writer, r Report) error {
	r.Currency = r.currency()
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
