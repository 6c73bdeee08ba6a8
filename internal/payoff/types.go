// Package payoff defines the data structures related to a debt payoff plan
// and includes functions for simulating the payoff strategies.
package payoff

import (
	"fmt"

	"github.com/paydownlabs/paydown/pkg/constants"
	"github.com/paydownlabs/paydown/pkg/debt"
)

// Strategy selects the ordering used when applying extra payments.
type Strategy string

const (
	// Avalanche targets the highest interest rate first to minimize total
	// interest paid.
	Avalanche Strategy = constants.StrategyAvalanche

	// Snowball targets the smallest balance first to maximize early payoffs.
	Snowball Strategy = constants.StrategySnowball
)

// ParseStrategy normalizes a strategy tag, defaulting to avalanche when empty.
func ParseStrategy(value string) (Strategy, error) {
	switch Strategy(value) {
	case "":
		return Avalanche, nil
	case Avalanche:
		return Avalanche, nil
	case Snowball:
		return Snowball, nil
	default:
		return "", fmt.Errorf("unknown strategy %q, expected %s or %s",
			value, constants.StrategyAvalanche, constants.StrategySnowball)
	}
}

// LumpSum is a one-time extra payment applied in a specific simulation month
// (1-based) on top of the recurring extra payment.
type LumpSum struct {
	Month  int     `json:"month" yaml:"month"`
	Amount float64 `json:"amount" yaml:"amount"`
}

// Input is the in-process call contract for a payoff plan.
type Input struct {
	Debts        []debt.Debt `json:"debts" yaml:"debts"`
	ExtraPayment float64     `json:"extraPayment" yaml:"extraPayment"`
	Strategy     Strategy    `json:"strategy" yaml:"strategy"`
	Currency     string      `json:"currency,omitempty" yaml:"currency,omitempty"`
	LumpSums     []LumpSum   `json:"lumpSums,omitempty" yaml:"lumpSums,omitempty"`
}

// PaymentRecord is the per-debt breakdown of one simulated month.
type PaymentRecord struct {
	DebtID           string  `json:"debtId"`
	DebtName         string  `json:"debtName"`
	Payment          float64 `json:"payment"`
	Principal        float64 `json:"principal"`
	Interest         float64 `json:"interest"`
	RemainingBalance float64 `json:"remainingBalance"`
}

// MonthlySnapshot captures one simulated month, immutable once appended to a
// timeline.
type MonthlySnapshot struct {
	Month                 int             `json:"month"`
	TotalPayment          float64         `json:"totalPayment"`
	TotalPrincipal        float64         `json:"totalPrincipal"`
	TotalInterest         float64         `json:"totalInterest"`
	TotalRemainingBalance float64         `json:"totalRemainingBalance"`
	Payments              []PaymentRecord `json:"payments"`
	DebtsPaidOff          []string        `json:"debtsPaidOff,omitempty"`
}

// StrategyResult is the full outcome of simulating one strategy.
type StrategyResult struct {
	Strategy      Strategy          `json:"strategy"`
	Months        int               `json:"months"`
	TotalPaid     float64           `json:"totalPaid"`
	TotalInterest float64           `json:"totalInterest"`
	PayoffOrder   []string          `json:"payoffOrder"`
	Timeline      []MonthlySnapshot `json:"timeline"`
	Converged     bool              `json:"converged"`
}

// Result holds both strategy simulations plus derived comparison metrics.
type Result struct {
	TotalDebt            float64        `json:"totalDebt"`
	TotalMinimumPayments float64        `json:"totalMinimumPayments"`
	MonthlyPayment       float64        `json:"monthlyPayment"`
	Avalanche            StrategyResult `json:"avalanche"`
	Snowball             StrategyResult `json:"snowball"`
	InterestSaved        float64        `json:"interestSaved"`
	TimeDifference       int            `json:"timeDifference"`
	SelectedStrategy     Strategy       `json:"selectedStrategy"`
	Currency             string         `json:"currency,omitempty"`
}

// Selected returns the StrategyResult for the strategy the caller asked for.
func (r *Result) Selected() StrategyResult {
	if r.SelectedStrategy == Snowball {
		return r.Snowball
	}
	return r.Avalanche
}
