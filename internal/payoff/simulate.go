package payoff

import (
	"fmt"
	"sort"

	"github.com/paydownlabs/paydown/pkg/constants"
	"github.com/paydownlabs/paydown/pkg/debt"
	"github.com/paydownlabs/paydown/pkg/mathutil"
	"go.uber.org/zap"
)

// debtState is the mutable per-debt working record for one strategy run.
// It is created fresh from the immutable input at the start of each run and
// never shared between strategies.
type debtState struct {
	debt           debt.Debt
	currentBalance float64
	isPaidOff      bool
}

func newStates(debts []debt.Debt) []*debtState {
	states := make([]*debtState, len(debts))
	for i, d := range debts {
		states[i] = &debtState{debt: d, currentBalance: d.Balance}
	}
	return states
}

// activeOrder returns the indexes of still-active debts sorted by strategy
// priority. Ordering is recomputed every month since balances change; ties
// preserve input order.
func activeOrder(states []*debtState, strategy Strategy) []int {
	var order []int
	for i, s := range states {
		if !s.isPaidOff && mathutil.IsPositive(s.currentBalance) {
			order = append(order, i)
		}
	}
	switch strategy {
	case Snowball:
		sort.SliceStable(order, func(a, b int) bool {
			return states[order[a]].currentBalance < states[order[b]].currentBalance
		})
	default: // Avalanche
		sort.SliceStable(order, func(a, b int) bool {
			return states[order[a]].debt.InterestRate > states[order[b]].debt.InterestRate
		})
	}
	return order
}

func lumpSumForMonth(lumpSums []LumpSum, month int) float64 {
	amount := 0.0
	for _, ls := range lumpSums {
		if ls.Month == month && ls.Amount > 0 {
			amount += ls.Amount
		}
	}
	return amount
}

// simulateStrategy runs the month-by-month payoff simulation for one strategy
// until every debt reaches zero balance or the horizon cap is hit.
func simulateStrategy(logger *zap.Logger, debts []debt.Debt, extraPayment float64,
	lumpSums []LumpSum, strategy Strategy) StrategyResult {
	if logger == nil {
		logger = zap.NewNop()
	}

	result := StrategyResult{Strategy: strategy}
	states := newStates(debts)

	for month := 1; month <= constants.MaxMonths; month++ {
		if len(activeOrder(states, strategy)) == 0 {
			break
		}

		// Minimums freed by closed debts roll into the extra pool; this
		// waterfall is the defining characteristic of both strategies.
		availableExtra := extraPayment + lumpSumForMonth(lumpSums, month)
		for _, s := range states {
			if s.isPaidOff {
				availableExtra += s.debt.MinimumPayment
			}
		}
		availableExtra = mathutil.Round(availableExtra)

		snapshot := MonthlySnapshot{Month: month}
		records := make(map[int]*PaymentRecord)

		// Pass 1: interest accrual and minimum payments.
		for i, s := range states {
			if s.isPaidOff || !mathutil.IsPositive(s.currentBalance) {
				continue
			}
			interest := mathutil.Round(debt.MonthlyInterest(s.currentBalance, s.debt.InterestRate))
			// Cap the minimum so it cannot push the balance below zero.
			payment := mathutil.Round(mathutil.Min(s.debt.MinimumPayment, mathutil.Round(s.currentBalance+interest)))
			principal := mathutil.Round(mathutil.Max(0, payment-interest))
			s.currentBalance = mathutil.Round(s.currentBalance + interest - payment)

			record := &PaymentRecord{
				DebtID:           s.debt.ID,
				DebtName:         s.debt.Name,
				Payment:          payment,
				Principal:        principal,
				Interest:         interest,
				RemainingBalance: s.currentBalance,
			}
			records[i] = record
		}

		// Pass 2: extra payment waterfall in strategy-sorted order.
		for _, i := range activeOrder(states, strategy) {
			if !mathutil.IsPositive(availableExtra) {
				break
			}
			s := states[i]
			extraToApply := mathutil.Round(mathutil.Min(availableExtra, s.currentBalance))
			if extraToApply <= 0 {
				continue
			}
			s.currentBalance = mathutil.Round(s.currentBalance - extraToApply)
			availableExtra = mathutil.Round(availableExtra - extraToApply)

			record := records[i]
			record.Payment = mathutil.Round(record.Payment + extraToApply)
			record.Principal = mathutil.Round(record.Principal + extraToApply)
			record.RemainingBalance = s.currentBalance
		}

		// Per-debt entries are reported in input order.
		for i := range states {
			if record, ok := records[i]; ok {
				snapshot.Payments = append(snapshot.Payments, *record)
			}
		}

		// Payoff detection: balances at or below the tolerance are closed out.
		for _, s := range states {
			if s.isPaidOff {
				continue
			}
			if s.currentBalance <= constants.CurrencyTolerance {
				s.isPaidOff = true
				s.currentBalance = 0
				snapshot.DebtsPaidOff = append(snapshot.DebtsPaidOff, s.debt.Name)
				result.PayoffOrder = append(result.PayoffOrder, s.debt.Name)
				logger.Debug(fmt.Sprintf("month %d: debt %s paid off", month, s.debt.Name),
					zap.String("op", "payoff.simulateStrategy"),
					zap.String("strategy", string(strategy)),
				)
			}
		}

		for _, record := range snapshot.Payments {
			snapshot.TotalPayment = mathutil.Round(snapshot.TotalPayment + record.Payment)
			snapshot.TotalPrincipal = mathutil.Round(snapshot.TotalPrincipal + record.Principal)
			snapshot.TotalInterest = mathutil.Round(snapshot.TotalInterest + record.Interest)
		}
		for _, s := range states {
			snapshot.TotalRemainingBalance = mathutil.Round(snapshot.TotalRemainingBalance + s.currentBalance)
		}

		result.TotalPaid = mathutil.Round(result.TotalPaid + snapshot.TotalPayment)
		result.TotalInterest = mathutil.Round(result.TotalInterest + snapshot.TotalInterest)
		result.Timeline = append(result.Timeline, snapshot)
	}

	result.Months = len(result.Timeline)
	result.Converged = true
	for _, s := range states {
		if !s.isPaidOff {
			result.Converged = false
			break
		}
	}

	if !result.Converged {
		logger.Debug(fmt.Sprintf("simulation hit the %d-month cap with outstanding balances", constants.MaxMonths),
			zap.String("op", "payoff.simulateStrategy"),
			zap.String("strategy", string(strategy)),
		)
	}

	return result
}
