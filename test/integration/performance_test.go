package integration

import (
	"fmt"
	"testing"
	"time"

	"github.com/paydownlabs/paydown/internal/payoff"
	"github.com/paydownlabs/paydown/pkg/debt"
	"github.com/paydownlabs/paydown/pkg/testutil"
	"go.uber.org/zap"
)

// largePortfolio builds a synthetic portfolio big enough to stress the
// monthly re-sort and waterfall.
func largePortfolio(n int) []debt.Debt {
	debts := make([]debt.Debt, n)
	for i := 0; i < n; i++ {
		debts[i] = testutil.NewDebt(fmt.Sprintf("Debt %03d", i),
			float64(1000+i*250), float64(3+i%22), float64(50+i*5))
	}
	return debts
}

// TestPerformance bounds the wall-clock cost of simulating a large portfolio.
// The limit is generous; the point is catching accidental quadratic blowups.
func TestPerformance(t *testing.T) {
	logger := zap.NewNop()

	input := payoff.Input{
		Debts:        largePortfolio(100),
		ExtraPayment: 500,
	}

	start := time.Now()
	result, err := payoff.Run(logger, input)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	elapsed := time.Since(start)

	if !result.Avalanche.Converged || !result.Snowball.Converged {
		t.Fatal("large portfolio did not converge")
	}
	if elapsed > 2*time.Second {
		t.Errorf("simulation took %v, expected under 2s", elapsed)
	}
	t.Logf("simulated %d debts in %v (avalanche %d months, snowball %d months)",
		len(input.Debts), elapsed, result.Avalanche.Months, result.Snowball.Months)
}

func BenchmarkRunSmall(b *testing.B) {
	input := payoff.Input{
		Debts: []debt.Debt{
			{Name: "Card", Balance: 5000, InterestRate: 20, MinimumPayment: 150},
			{Name: "Loan", Balance: 2000, InterestRate: 10, MinimumPayment: 100},
		},
		ExtraPayment: 200,
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := payoff.Run(nil, input); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRunLargePortfolio(b *testing.B) {
	input := payoff.Input{
		Debts:        largePortfolio(100),
		ExtraPayment: 500,
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := payoff.Run(nil, input); err != nil {
			b.Fatal(err)
		}
	}
}
