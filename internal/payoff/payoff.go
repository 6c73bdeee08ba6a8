package payoff

import (
	"fmt"

	"github.com/paydownlabs/paydown/pkg/debt"
	"github.com/paydownlabs/paydown/pkg/mathutil"
	"go.uber.org/zap"
)

// Run simulates both payoff strategies on independent working copies of the
// input debts and derives the comparison metrics between them. The input is
// never mutated.
func Run(logger *zap.Logger, input Input) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	selected, err := ParseStrategy(string(input.Strategy))
	if err != nil {
		return nil, err
	}

	valid := debt.Filter(input.Debts)
	extra := mathutil.Max(0, input.ExtraPayment)

	result := &Result{
		TotalDebt:            mathutil.Round(debt.TotalBalance(valid)),
		TotalMinimumPayments: mathutil.Round(debt.TotalMinimumPayments(valid)),
		MonthlyPayment:       mathutil.Round(debt.TotalMinimumPayments(valid) + extra),
		SelectedStrategy:     selected,
		Currency:             input.Currency,
	}

	if len(valid) == 0 {
		logger.Debug("no valid debts to simulate",
			zap.String("op", "payoff.Run"),
		)
		result.Avalanche = StrategyResult{Strategy: Avalanche, Converged: true}
		result.Snowball = StrategyResult{Strategy: Snowball, Converged: true}
		return result, nil
	}

	logger.Debug(fmt.Sprintf("simulating payoff of %d debts with %.2f extra per month",
		len(valid), extra),
		zap.String("op", "payoff.Run"),
	)

	result.Avalanche = simulateStrategy(logger, valid, extra, input.LumpSums, Avalanche)
	result.Snowball = simulateStrategy(logger, valid, extra, input.LumpSums, Snowball)

	result.InterestSaved = mathutil.Round(result.Snowball.TotalInterest - result.Avalanche.TotalInterest)
	result.TimeDifference = result.Snowball.Months - result.Avalanche.Months

	return result, nil
}
