// Package output provides utilities for formatting and displaying payoff
// plan results.
package output

import (
	"fmt"
	"strings"

	"github.com/paydownlabs/paydown/internal/payoff"
	"github.com/paydownlabs/paydown/pkg/datetime"
	"github.com/paydownlabs/paydown/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// dateFor maps a 1-based simulation month onto a calendar month relative to
// startMonth. Returns an empty string if startMonth is unparseable.
func dateFor(startMonth string, month int) string {
	date, err := datetime.OffsetDate(startMonth, datetime.DateTimeLayout, month-1)
	if err != nil {
		return ""
	}
	return date
}

// PrettyFormat outputs a human-readable summary of both strategies plus the
// timeline of the selected one.
func PrettyFormat(result *payoff.Result, startMonth string) {
	p := message.NewPrinter(language.English)

	fmt.Printf("--- Debt payoff plan ---\n")
	_, _ = p.Printf("Total debt: %s | Minimum payments: %s/mo | Budget: %s/mo\n\n",
		format.Currency(result.TotalDebt, result.Currency),
		format.Currency(result.TotalMinimumPayments, result.Currency),
		format.Currency(result.MonthlyPayment, result.Currency))

	fmt.Printf("Strategy  | Months | Debt-free | Total paid      | Total interest\n")
	fmt.Printf("________  | ______ | _________ | ______________  | ______________\n")
	for _, sr := range []payoff.StrategyResult{result.Avalanche, result.Snowball} {
		debtFree := "-"
		if sr.Converged && sr.Months > 0 {
			debtFree = dateFor(startMonth, sr.Months)
		} else if !sr.Converged {
			debtFree = "never"
		}
		_, _ = p.Printf("%-9s | %6d | %-9s | %-15s | %s\n",
			sr.Strategy, sr.Months, debtFree,
			format.Currency(sr.TotalPaid, result.Currency),
			format.Currency(sr.TotalInterest, result.Currency))
	}

	if result.InterestSaved != 0 || result.TimeDifference != 0 {
		_, _ = p.Printf("\nAvalanche saves %s in interest and %d month(s) versus snowball\n",
			format.Currency(result.InterestSaved, result.Currency), result.TimeDifference)
	}

	selected := result.Selected()
	fmt.Printf("\n--- %s timeline ---\n", selected.Strategy)
	fmt.Printf("Month | Date    | Payment     | Principal   | Interest    | Remaining     | Paid off\n")
	fmt.Printf("_____ | ____    | _______     | _________   | ________    | _________     | ________\n")
	for _, snapshot := range selected.Timeline {
		_, _ = p.Printf("%5d | %-7s | %-11s | %-11s | %-11s | %-13s | %s\n",
			snapshot.Month,
			dateFor(startMonth, snapshot.Month),
			format.Currency(snapshot.TotalPayment, result.Currency),
			format.Currency(snapshot.TotalPrincipal, result.Currency),
			format.Currency(snapshot.TotalInterest, result.Currency),
			format.Currency(snapshot.TotalRemainingBalance, result.Currency),
			strings.Join(snapshot.DebtsPaidOff, ","))
	}

	if len(selected.PayoffOrder) > 0 {
		fmt.Printf("\nPayoff order: %s\n", strings.Join(selected.PayoffOrder, ", "))
	}
	if !selected.Converged {
		fmt.Printf("\nWARNING: debts remain after %d months; minimum payments may not cover interest\n",
			selected.Months)
	}
}

// CsvFormat outputs both strategy timelines in comma-separated value format.
func CsvFormat(result *payoff.Result, startMonth string) {
	fmt.Printf(`"strategy","month","date","payment","principal","interest","remainingBalance","debtsPaidOff"`)
	fmt.Printf("\n")
	for _, sr := range []payoff.StrategyResult{result.Avalanche, result.Snowball} {
		for _, snapshot := range sr.Timeline {
			fmt.Printf(`"%s","%d","%s","%.2f","%.2f","%.2f","%.2f","%s"`,
				sr.Strategy, snapshot.Month, dateFor(startMonth, snapshot.Month),
				snapshot.TotalPayment, snapshot.TotalPrincipal, snapshot.TotalInterest,
				snapshot.TotalRemainingBalance, strings.Join(snapshot.DebtsPaidOff, ";"))
			fmt.Printf("\n")
		}
	}
}
