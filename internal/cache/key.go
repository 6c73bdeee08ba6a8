package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/paydownlabs/paydown/internal/payoff"
	"github.com/pkg/errors"
)

// Key derives a stable cache key from a plan input. Two inputs with the same
// debts, extra payment, strategy, and lump sums always map to the same key.
func Key(input payoff.Input) (string, error) {
	data, err := json.Marshal(input)
	if err != nil {
		return "", errors.Wrap(err, "failed to serialize plan input for cache key")
	}
	digest := sha256.Sum256(data)
	return "paydown:plan:" + hex.EncodeToString(digest[:]), nil
}
