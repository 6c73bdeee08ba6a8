package optimizer

import (
	"testing"

	"github.com/paydownlabs/paydown/internal/config"
	"github.com/paydownlabs/paydown/internal/payoff"
	"github.com/paydownlabs/paydown/pkg/debt"
	"go.uber.org/zap"
)

func testConf(targetMonths int, extraPayment float64, debts []debt.Debt) *config.Configuration {
	return &config.Configuration{
		Strategy:     "avalanche",
		ExtraPayment: extraPayment,
		Debts:        debts,
		Optimizer:    &config.OptimizerConfig{TargetMonths: targetMonths},
	}
}

func TestNewRunnerRequiresDirective(t *testing.T) {
	if _, err := NewRunner(nil, &config.Configuration{}); err == nil {
		t.Error("NewRunner() expected error without optimizer directive")
	}
	if _, err := NewRunner(nil, nil); err == nil {
		t.Error("NewRunner() expected error for nil configuration")
	}
}

func TestOptimizerFindsExtraPayment(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	conf := testConf(24, 0, []debt.Debt{
		{Name: "Card", Balance: 5000, InterestRate: 20, MinimumPayment: 150},
		{Name: "Loan", Balance: 2000, InterestRate: 10, MinimumPayment: 100},
	})

	runner, err := NewRunner(logger, conf)
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}
	summary, err := runner.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !summary.Converged {
		t.Fatalf("optimizer did not converge: %v", summary.Notes)
	}
	if summary.Months > 24 {
		t.Errorf("Months = %d, expected at most 24", summary.Months)
	}
	if summary.Value < 0 {
		t.Errorf("Value = %.2f, expected non-negative", summary.Value)
	}

	// The found payment must actually meet the target when simulated.
	input := conf.PlanInput()
	input.ExtraPayment = summary.Value
	result, err := payoff.Run(nil, input)
	if err != nil {
		t.Fatalf("verification Run() error = %v", err)
	}
	if selected := result.Selected(); !selected.Converged || selected.Months > 24 {
		t.Errorf("verification: months = %d, converged = %v", selected.Months, selected.Converged)
	}
}

func TestOptimizerZeroWhenMinimumsSuffice(t *testing.T) {
	conf := testConf(120, 50, []debt.Debt{
		{Name: "Small", Balance: 1000, InterestRate: 5, MinimumPayment: 100},
	})

	runner, err := NewRunner(nil, conf)
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}
	summary, err := runner.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !summary.Converged {
		t.Fatalf("expected convergence, notes = %v", summary.Notes)
	}
	if summary.Value != 0 {
		t.Errorf("Value = %.2f, expected 0 when minimums alone meet the target", summary.Value)
	}
}

func TestOptimizerUnreachableTarget(t *testing.T) {
	// One month to clear a large balance cannot be met even with the whole
	// balance as extra payment (interest accrues first).
	conf := testConf(1, 0, []debt.Debt{
		{Name: "Huge", Balance: 100000, InterestRate: 25, MinimumPayment: 0},
	})

	runner, err := NewRunner(nil, conf)
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}
	summary, err := runner.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if summary.Converged {
		t.Error("Converged = true, expected false for unreachable target")
	}
	if len(summary.Notes) == 0 {
		t.Error("expected a note explaining the unreachable target")
	}
}

func TestOptimizerNoDebts(t *testing.T) {
	conf := testConf(12, 0, nil)

	runner, err := NewRunner(nil, conf)
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}
	summary, err := runner.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !summary.Converged {
		t.Error("Converged = false, expected true for empty debt list")
	}
	if summary.Value != 0 {
		t.Errorf("Value = %.2f, expected 0", summary.Value)
	}
}
