// Package loans provides common loan processing utilities.
package loans

import (
	"math"

	"github.com/iwvelando/rental-forecast/pkg/constants"
	"github.com/iwvelando/rental-forecast/pkg/mathutil"
)

// Loan describes a fixed-rate, fully amortizing mortgage.
type Loan struct {
	Principal      float64
	AnnualRate     float64 // percent, e.g. 4.5
	TermYears      int
	MonthlyPayment float64
}

// Payment holds the values for a given payment.
type Payment struct {
	Month              int
	Payment            float64
	Principal          float64
	Interest           float64
	RemainingPrincipal float64
}

// TermMonths returns the number of scheduled payments.
func (l Loan) TermMonths() int {
	return l.TermYears * constants.MonthsPerYear
}

// CalculateMonthlyPayment calculates the monthly payment for a loan using the standard amortization formula.
// Degenerate loans (no principal, no term or a negative rate) have no payment.
func CalculateMonthlyPayment(principal, annualInterestRate float64, termYears int) float64 {
	termMonths := termYears * constants.MonthsPerYear
	if principal <= 0 || termMonths <= 0 || annualInterestRate < 0 {
		return 0
	}
	if annualInterestRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(termMonths)
	}

	periodicInterestRate := mathutil.MonthlyRate(annualInterestRate)
	power := math.Pow(1.00+periodicInterestRate, float64(termMonths))
	return principal * periodicInterestRate * power / (power - 1.00)
}

// CalculateInterestPayment calculates the interest portion of a payment.
func CalculateInterestPayment(remainingPrincipal, annualInterestRate float64) float64 {
	return remainingPrincipal * mathutil.MonthlyRate(annualInterestRate)
}

// RemainingBalance returns the outstanding principal after yearsElapsed full
// years of scheduled payments, computed as the present value of the payments
// still due. It is 0 once the loan has been paid off.
func RemainingBalance(loan Loan, yearsElapsed int) float64 {
	remaining := loan.TermMonths() - yearsElapsed*constants.MonthsPerYear
	if remaining <= 0 || loan.MonthlyPayment <= 0 {
		return 0
	}
	r := mathutil.MonthlyRate(loan.AnnualRate)
	if r == 0 {
		return loan.MonthlyPayment * float64(remaining)
	}
	return loan.MonthlyPayment * (1 - math.Pow(1+r, -float64(remaining))) / r
}

// AnnualInterestAndPrincipal splits the payments made during year (1-based)
// into interest and principal. Months past the end of the term contribute
// nothing, so any year after payoff returns (0, 0).
func AnnualInterestAndPrincipal(loan Loan, year int) (interest, principal float64) {
	if year < 1 {
		return 0, 0
	}
	first := (year-1)*constants.MonthsPerYear + 1
	last := year * constants.MonthsPerYear
	if termMonths := loan.TermMonths(); last > termMonths {
		last = termMonths
	}
	if first > last {
		return 0, 0
	}

	balance := RemainingBalance(loan, year-1)
	for month := first; month <= last; month++ {
		monthInterest := CalculateInterestPayment(balance, loan.AnnualRate)
		monthPrincipal := loan.MonthlyPayment - monthInterest
		interest += monthInterest
		principal += monthPrincipal
		balance -= monthPrincipal
	}
	return interest, principal
}

// Schedule returns the full month-by-month amortization of the loan. The
// opening balance is RemainingBalance(loan, 0), so an overridden payment is
// amortized over the same balances AnnualInterestAndPrincipal uses.
func Schedule(loan Loan) []Payment {
	termMonths := loan.TermMonths()
	if termMonths <= 0 || loan.MonthlyPayment <= 0 {
		return nil
	}

	schedule := make([]Payment, 0, termMonths)
	balance := RemainingBalance(loan, 0)
	for month := 1; month <= termMonths; month++ {
		var p Payment
		p.Month = month
		p.Payment = loan.MonthlyPayment
		p.Interest = CalculateInterestPayment(balance, loan.AnnualRate)
		p.Principal = loan.MonthlyPayment - p.Interest
		if month == termMonths || mathutil.Round(balance-p.Principal) == 0 {
			// We will get machine error otherwise so just set to 0.
			p.RemainingPrincipal = 0.00
		} else {
			p.RemainingPrincipal = balance - p.Principal
		}
		balance = p.RemainingPrincipal
		schedule = append(schedule, p)
	}
	return schedule
}
