// Package server exposes the payoff planner as a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/paydownlabs/paydown/internal/cache"
	"github.com/paydownlabs/paydown/internal/payoff"
	"github.com/paydownlabs/paydown/pkg/constants"
	"github.com/paydownlabs/paydown/pkg/debt"
	"github.com/paydownlabs/paydown/pkg/validation"
	"go.uber.org/zap"
)

type handler struct {
	logger         *zap.Logger
	maxRequestSize int64
	version        string
	plans          cache.PlanCache
	cacheTTL       time.Duration
}

// NewHandler constructs the HTTP handler that serves the plan API. A nil
// plans cache disables caching.
func NewHandler(logger *zap.Logger, maxRequestSize int64, version string,
	plans cache.PlanCache, cacheTTL time.Duration) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxRequestSize <= 0 {
		maxRequestSize = constants.DefaultMaxRequestSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:         logger,
		maxRequestSize: maxRequestSize,
		version:        trimmedVersion,
		plans:          plans,
		cacheTTL:       cacheTTL,
	}

	mux := http.NewServeMux()

	// Plan API endpoint
	mux.HandleFunc("/api/plan", h.handlePlan)

	// Version endpoint for client metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type planResponse struct {
	Result   *payoff.Result `json:"result"`
	Warnings []string       `json:"warnings,omitempty"`
	Duration string         `json:"duration"`
	Cached   bool           `json:"cached"`
}

func (h *handler) handlePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	if h.maxRequestSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	}

	var input payoff.Input
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&input); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize))
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse request: %v", err))
		return
	}

	if _, err := payoff.ParseStrategy(string(input.Strategy)); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	warnings := validation.ValidateDebts(input.Debts, input.ExtraPayment)

	// The cache key is derived before ID assignment so that logically equal
	// requests hit the same entry.
	var cacheKey string
	if h.plans != nil {
		key, err := cache.Key(input)
		if err != nil {
			h.logger.Warn("failed to derive cache key",
				zap.String("op", "server.handlePlan"),
				zap.Error(err),
			)
		} else {
			cacheKey = key
			if serialized, ok := h.plans.Get(r.Context(), cacheKey); ok {
				var cached payoff.Result
				if err := json.Unmarshal([]byte(serialized), &cached); err == nil {
					h.respondJSON(w, http.StatusOK, planResponse{
						Result:   &cached,
						Warnings: warnings,
						Duration: time.Since(start).String(),
						Cached:   true,
					})
					return
				}
				h.logger.Warn("discarding unreadable cache entry",
					zap.String("op", "server.handlePlan"),
					zap.Error(err),
				)
			}
		}
	}

	input.Debts = debt.EnsureIDs(input.Debts)

	result, err := payoff.Run(h.logger, input)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if h.plans != nil && cacheKey != "" {
		if serialized, err := json.Marshal(result); err == nil {
			if err := h.plans.Set(r.Context(), cacheKey, string(serialized), h.cacheTTL); err != nil {
				h.logger.Warn("failed to cache plan result",
					zap.String("op", "server.handlePlan"),
					zap.Error(err),
				)
			}
		}
	}

	h.respondJSON(w, http.StatusOK, planResponse{
		Result:   result,
		Warnings: warnings,
		Duration: time.Since(start).String(),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

func (h *handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Warn("failed to encode response",
			zap.String("op", "server.respondJSON"),
			zap.Error(err),
		)
	}
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.respondJSON(w, status, map[string]string{"error": msg})
}
