// Package debt defines the liability input type consumed by the payoff
// simulator along with common helpers for filtering and interest math.
package debt

import (
	"strings"

	"github.com/google/uuid"
	"github.com/paydownlabs/paydown/pkg/constants"
)

// Debt represents one liability supplied by the caller. The simulator never
// mutates these records; it works on per-strategy copies.
type Debt struct {
	ID             string  `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	Balance        float64 `json:"balance" yaml:"balance"`
	InterestRate   float64 `json:"interestRate" yaml:"interestRate"`     // annual percentage, e.g. 18.0
	MinimumPayment float64 `json:"minimumPayment" yaml:"minimumPayment"` // currency per month
}

// Valid reports whether a debt participates in simulation. Debts with a
// non-positive balance or a blank name are silently excluded rather than
// reported as errors.
func (d Debt) Valid() bool {
	return d.Balance > 0 && strings.TrimSpace(d.Name) != ""
}

// Filter returns the debts that participate in simulation, preserving input
// order.
func Filter(debts []Debt) []Debt {
	valid := make([]Debt, 0, len(debts))
	for _, d := range debts {
		if d.Valid() {
			valid = append(valid, d)
		}
	}
	return valid
}

// EnsureIDs assigns a fresh UUID to any debt with an empty ID and returns the
// slice for chaining.
func EnsureIDs(debts []Debt) []Debt {
	for i := range debts {
		if strings.TrimSpace(debts[i].ID) == "" {
			debts[i].ID = uuid.NewString()
		}
	}
	return debts
}

// MonthlyInterest calculates one month of interest accrual on a balance.
func MonthlyInterest(balance, annualInterestRate float64) float64 {
	return balance * annualInterestRate / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// TotalBalance sums the balances of the given debts.
func TotalBalance(debts []Debt) float64 {
	total := 0.0
	for _, d := range debts {
		total += d.Balance
	}
	return total
}

// TotalMinimumPayments sums the minimum payments of the given debts.
func TotalMinimumPayments(debts []Debt) float64 {
	total := 0.0
	for _, d := range debts {
		total += d.MinimumPayment
	}
	return total
}
