// Package validation provides input validation utilities. Invalid debts are
// never errors; the simulator clamps or filters them, and validation only
// surfaces warnings so callers can explain surprising results.
package validation

import (
	"fmt"
	"strings"

	"github.com/paydownlabs/paydown/pkg/debt"
	"github.com/paydownlabs/paydown/pkg/mathutil"
)

// ValidateDebt checks a single debt and returns warnings.
func ValidateDebt(d debt.Debt) []string {
	var warnings []string

	label := strings.TrimSpace(d.Name)
	if label == "" {
		warnings = append(warnings, "Debt with blank name will be excluded from simulation")
		return warnings
	}

	if d.Balance <= 0 {
		warnings = append(warnings, fmt.Sprintf("Debt '%s' has non-positive balance %.2f and will be excluded from simulation",
			label, d.Balance))
		return warnings
	}

	if d.InterestRate < 0 {
		warnings = append(warnings, fmt.Sprintf("Debt '%s' has negative interest rate %.2f", label, d.InterestRate))
	}
	if d.MinimumPayment < 0 {
		warnings = append(warnings, fmt.Sprintf("Debt '%s' has negative minimum payment %.2f", label, d.MinimumPayment))
	}

	firstMonthInterest := mathutil.Round(debt.MonthlyInterest(d.Balance, d.InterestRate))
	if d.MinimumPayment >= 0 && d.MinimumPayment < firstMonthInterest {
		warnings = append(warnings, fmt.Sprintf(
			"Debt '%s' minimum payment %.2f does not cover monthly interest %.2f - it will never pay off without extra payments",
			label, d.MinimumPayment, firstMonthInterest))
	}

	return warnings
}

// ValidateDebts checks the full plan input and returns warnings.
func ValidateDebts(debts []debt.Debt, extraPayment float64) []string {
	var warnings []string

	if extraPayment < 0 {
		warnings = append(warnings, fmt.Sprintf("Extra payment %.2f is negative and will be treated as no extra payment", extraPayment))
	}

	for _, d := range debts {
		warnings = append(warnings, ValidateDebt(d)...)
	}

	if len(debt.Filter(debts)) == 0 {
		warnings = append(warnings, "No valid debts to simulate")
	}

	return warnings
}
