// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/paydownlabs/paydown/internal/payoff"
	"github.com/paydownlabs/paydown/pkg/debt"
)

// NewDebt builds a debt record for tests.
func NewDebt(name string, balance, interestRate, minimumPayment float64) debt.Debt {
	return debt.Debt{
		ID:             name,
		Name:           name,
		Balance:        balance,
		InterestRate:   interestRate,
		MinimumPayment: minimumPayment,
	}
}

// FindPayment finds the payment record for a debt by name in a monthly
// snapshot. Returns a pointer to the record if found, nil otherwise.
func FindPayment(snapshot payoff.MonthlySnapshot, debtName string) *payoff.PaymentRecord {
	for i := range snapshot.Payments {
		if snapshot.Payments[i].DebtName == debtName {
			return &snapshot.Payments[i]
		}
	}
	return nil
}

// PayoffMonth returns the 1-based month in which the named debt was paid off,
// or 0 if it never was.
func PayoffMonth(result payoff.StrategyResult, debtName string) int {
	for _, snapshot := range result.Timeline {
		for _, name := range snapshot.DebtsPaidOff {
			if name == debtName {
				return snapshot.Month
			}
		}
	}
	return 0
}
