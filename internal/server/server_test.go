package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/paydownlabs/paydown/internal/cache"
	"github.com/paydownlabs/paydown/internal/payoff"
	"github.com/paydownlabs/paydown/pkg/debt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInput() payoff.Input {
	return payoff.Input{
		Debts: []debt.Debt{
			{Name: "Credit Card", Balance: 5000, InterestRate: 20, MinimumPayment: 150},
			{Name: "Car Loan", Balance: 2000, InterestRate: 10, MinimumPayment: 100},
		},
		ExtraPayment: 200,
		Strategy:     payoff.Avalanche,
	}
}

func postPlan(t *testing.T, h http.Handler, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/plan", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandlePlan(t *testing.T) {
	h := NewHandler(nil, 0, "test", nil, 0)

	body, err := json.Marshal(testInput())
	require.NoError(t, err)

	rec := postPlan(t, h, body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp planResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Result)
	assert.False(t, resp.Cached)
	assert.Equal(t, 7000.0, resp.Result.TotalDebt)
	assert.Equal(t, 450.0, resp.Result.MonthlyPayment)
	assert.True(t, resp.Result.Avalanche.Converged)
	assert.True(t, resp.Result.Snowball.Converged)
	assert.GreaterOrEqual(t, resp.Result.InterestSaved, 0.0)
}

func TestHandlePlanCaching(t *testing.T) {
	plans := cache.NewMemoryCache()
	h := NewHandler(nil, 0, "test", plans, time.Minute)

	body, err := json.Marshal(testInput())
	require.NoError(t, err)

	first := postPlan(t, h, body)
	require.Equal(t, http.StatusOK, first.Code)
	var firstResp planResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &firstResp))
	assert.False(t, firstResp.Cached)

	second := postPlan(t, h, body)
	require.Equal(t, http.StatusOK, second.Code)
	var secondResp planResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &secondResp))
	assert.True(t, secondResp.Cached)
	assert.Equal(t, firstResp.Result.Avalanche.Months, secondResp.Result.Avalanche.Months)
	assert.Equal(t, firstResp.Result.TotalDebt, secondResp.Result.TotalDebt)
}

func TestHandlePlanMethodNotAllowed(t *testing.T) {
	h := NewHandler(nil, 0, "test", nil, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/plan", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandlePlanMalformedBody(t *testing.T) {
	h := NewHandler(nil, 0, "test", nil, 0)

	rec := postPlan(t, h, []byte(`{"debts": not-json`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to parse request")
}

func TestHandlePlanUnknownField(t *testing.T) {
	h := NewHandler(nil, 0, "test", nil, 0)

	rec := postPlan(t, h, []byte(`{"debts": [], "surprise": true}`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlePlanUnknownStrategy(t *testing.T) {
	h := NewHandler(nil, 0, "test", nil, 0)

	input := testInput()
	input.Strategy = "blizzard"
	body, err := json.Marshal(input)
	require.NoError(t, err)

	rec := postPlan(t, h, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "blizzard")
}

func TestHandlePlanRequestTooLarge(t *testing.T) {
	h := NewHandler(nil, 64, "test", nil, 0)

	oversized := []byte(`{"debts": [], "extraPayment": 0, "strategy": "` + strings.Repeat("a", 512) + `"}`)
	rec := postPlan(t, h, oversized)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestHandlePlanEmptyDebts(t *testing.T) {
	h := NewHandler(nil, 0, "test", nil, 0)

	rec := postPlan(t, h, []byte(`{"debts": []}`))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp planResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Result)
	assert.Equal(t, 0.0, resp.Result.TotalDebt)
	assert.Equal(t, 0, resp.Result.Avalanche.Months)
	assert.Contains(t, strings.Join(resp.Warnings, "\n"), "No valid debts")
}

func TestHandleVersion(t *testing.T) {
	h := NewHandler(nil, 0, "1.2.3", nil, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "1.2.3", resp["version"])

	post := httptest.NewRequest(http.MethodPost, "/api/version", nil)
	postRec := httptest.NewRecorder()
	h.ServeHTTP(postRec, post)
	assert.Equal(t, http.StatusMethodNotAllowed, postRec.Code)
}
