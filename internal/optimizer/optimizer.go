// Package optimizer searches for the smallest monthly extra payment that
// reaches debt freedom within a target number of months.
package optimizer

import (
	"fmt"

	"github.com/paydownlabs/paydown/internal/config"
	"github.com/paydownlabs/paydown/internal/payoff"
	"github.com/paydownlabs/paydown/pkg/debt"
	"github.com/paydownlabs/paydown/pkg/mathutil"
	"go.uber.org/zap"
)

// Summary captures the result of one optimizer run.
type Summary struct {
	TargetMonths  int      `json:"targetMonths"`
	Original      float64  `json:"original"` // configured extra payment
	Value         float64  `json:"value"`    // optimized extra payment
	Months        int      `json:"months"`   // payoff months at Value
	TotalInterest float64  `json:"totalInterest"`
	Iterations    int      `json:"iterations"`
	Converged     bool     `json:"converged"`
	Notes         []string `json:"notes,omitempty"`
}

// Runner evaluates candidate extra payments against the configured debts.
type Runner struct {
	logger *zap.Logger
	conf   *config.Configuration
}

// NewRunner constructs a Runner for the provided configuration.
func NewRunner(logger *zap.Logger, conf *config.Configuration) (*Runner, error) {
	if conf == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if conf.Optimizer == nil {
		return nil, fmt.Errorf("configuration has no optimizer directive")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	conf.Optimizer.Normalize()
	if err := conf.Optimizer.Validate(); err != nil {
		return nil, err
	}
	return &Runner{logger: logger, conf: conf}, nil
}

// monthsAt simulates the selected strategy with the candidate extra payment
// and reports the resulting payoff horizon.
func (r *Runner) monthsAt(extra float64) (payoff.StrategyResult, error) {
	input := r.conf.PlanInput()
	input.ExtraPayment = extra
	result, err := payoff.Run(r.logger, input)
	if err != nil {
		return payoff.StrategyResult{}, err
	}
	return result.Selected(), nil
}

func feasible(sr payoff.StrategyResult, targetMonths int) bool {
	return sr.Converged && sr.Months <= targetMonths
}

// Run performs a bisection search over the extra payment. The lower bound is
// zero; the upper bound doubles from the configured extra payment until
// feasible, capped at the total debt (paying the entire balance in month one
// is always feasible when any payoff is).
func (r *Runner) Run() (*Summary, error) {
	cfg := r.conf.Optimizer
	target := cfg.TargetMonths

	summary := &Summary{
		TargetMonths: target,
		Original:     r.conf.ExtraPayment,
	}

	upperBound := mathutil.Round(debt.TotalBalance(debt.Filter(r.conf.Debts)))
	if upperBound <= 0 {
		summary.Notes = append(summary.Notes, "no valid debts to optimize")
		summary.Converged = true
		return summary, nil
	}

	upper := mathutil.Max(r.conf.ExtraPayment, 1)
	var upperEval payoff.StrategyResult
	for {
		eval, err := r.monthsAt(upper)
		if err != nil {
			return nil, err
		}
		upperEval = eval
		if feasible(eval, target) || upper >= upperBound {
			break
		}
		upper = mathutil.Min(upper*2, upperBound)
	}

	if !feasible(upperEval, target) {
		summary.Value = upper
		summary.Months = upperEval.Months
		summary.TotalInterest = upperEval.TotalInterest
		summary.Notes = append(summary.Notes, fmt.Sprintf(
			"unable to reach debt freedom within %d months even at %.2f extra per month", target, upper))
		return summary, nil
	}

	lower := 0.0
	lowerEval, err := r.monthsAt(lower)
	if err != nil {
		return nil, err
	}
	if feasible(lowerEval, target) {
		// Minimum payments alone already meet the target.
		summary.Value = 0
		summary.Months = lowerEval.Months
		summary.TotalInterest = lowerEval.TotalInterest
		summary.Converged = true
		return summary, nil
	}

	best := upperEval
	bestValue := upper
	iterations := 0
	for iterations < cfg.MaxIterations && upper-lower > cfg.Tolerance {
		mid := mathutil.Round(lower + (upper-lower)/2)
		eval, err := r.monthsAt(mid)
		if err != nil {
			return nil, err
		}
		iterations++
		if feasible(eval, target) {
			best = eval
			bestValue = mid
			upper = mid
		} else {
			lower = mid
		}
	}

	summary.Value = bestValue
	summary.Months = best.Months
	summary.TotalInterest = best.TotalInterest
	summary.Iterations = iterations
	summary.Converged = true

	r.logger.Info("optimizer found extra payment",
		zap.String("op", "optimizer.Run"),
		zap.Int("targetMonths", target),
		zap.Float64("original", summary.Original),
		zap.Float64("optimized", summary.Value),
		zap.Int("months", summary.Months),
		zap.Int("iterations", iterations),
	)

	return summary, nil
}
