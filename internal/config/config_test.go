package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paydownlabs/paydown/internal/payoff"
	"github.com/paydownlabs/paydown/pkg/debt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfiguration(t *testing.T) {
	path := writeConfig(t, `
startDate: 2026-01
currency: USD
strategy: snowball
extraPayment: 200
debts:
  - name: Credit Card
    balance: 5000
    interestRate: 19.99
    minimumPayment: 150
  - id: car-loan
    name: Car Loan
    balance: 12000
    interestRate: 6.5
    minimumPayment: 320
lumpSums:
  - month: 6
    amount: 1000
optimizer:
  targetMonths: 24
`)

	conf, err := LoadConfiguration(path)
	require.NoError(t, err)

	assert.Equal(t, "2026-01", conf.StartDate)
	assert.Equal(t, "USD", conf.Currency)
	assert.Equal(t, "snowball", conf.Strategy)
	assert.Equal(t, 200.0, conf.ExtraPayment)
	require.Len(t, conf.Debts, 2)
	assert.Equal(t, "Credit Card", conf.Debts[0].Name)
	assert.Equal(t, 19.99, conf.Debts[0].InterestRate)
	assert.Equal(t, "car-loan", conf.Debts[1].ID)
	require.Len(t, conf.LumpSums, 1)
	assert.Equal(t, 6, conf.LumpSums[0].Month)
	require.NotNil(t, conf.Optimizer)
	assert.Equal(t, 24, conf.Optimizer.TargetMonths)
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	_, err := LoadConfiguration(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestPlanInput(t *testing.T) {
	conf := &Configuration{
		Currency:     "EUR",
		Strategy:     "avalanche",
		ExtraPayment: 75,
		Debts: []debt.Debt{
			{Name: "Card", Balance: 1000, InterestRate: 18, MinimumPayment: 40},
			{ID: "keep-me", Name: "Loan", Balance: 2000, InterestRate: 7, MinimumPayment: 80},
		},
		LumpSums: []payoff.LumpSum{{Month: 3, Amount: 500}},
	}

	input := conf.PlanInput()

	assert.Equal(t, payoff.Strategy("avalanche"), input.Strategy)
	assert.Equal(t, "EUR", input.Currency)
	assert.Equal(t, 75.0, input.ExtraPayment)
	require.Len(t, input.Debts, 2)
	assert.NotEmpty(t, input.Debts[0].ID, "missing ID should be assigned")
	assert.Equal(t, "keep-me", input.Debts[1].ID)
	require.Len(t, input.LumpSums, 1)

	// The configuration's own debts must keep their original IDs.
	assert.Empty(t, conf.Debts[0].ID)
}

func TestStartMonth(t *testing.T) {
	conf := &Configuration{StartDate: "2026-03"}
	assert.Equal(t, "2026-03", conf.StartMonth())

	empty := &Configuration{}
	assert.NotEmpty(t, empty.StartMonth())
}

func TestValidateConfiguration(t *testing.T) {
	conf := &Configuration{
		Strategy:     "blizzard",
		ExtraPayment: 100,
		Debts: []debt.Debt{
			{Name: "Card", Balance: 1000, InterestRate: 18, MinimumPayment: 40},
		},
		LumpSums: []payoff.LumpSum{
			{Month: 0, Amount: 500},
			{Month: 2, Amount: -10},
		},
	}

	warnings := conf.ValidateConfiguration()

	joined := strings.Join(warnings, "\n")
	assert.Contains(t, joined, "blizzard")
	assert.Contains(t, joined, "outside the simulation horizon")
	assert.Contains(t, joined, "non-positive amount")
}

func TestOptimizerConfigDefaults(t *testing.T) {
	o := &OptimizerConfig{TargetMonths: 24}
	o.Normalize()
	assert.Equal(t, 50, o.MaxIterations)
	assert.Equal(t, 1.0, o.Tolerance)
	assert.NoError(t, o.Validate())

	bad := &OptimizerConfig{TargetMonths: 0}
	assert.Error(t, bad.Validate())

	tooLong := &OptimizerConfig{TargetMonths: 999}
	assert.Error(t, tooLong.Validate())
}
