package cmd

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// parseAmount accepts any finite decimal. The ledger would seal NaN and infinities with a
// null amount, so they are refused here as input mistakes.
func parseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("amount must be finite, got %q", s)
	}
	return v, nil
}

func parseDifficulty(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid difficulty %q", s)
	}
	return uint32(v), nil
}

type txSpec struct {
	Sender    string
	Recipient string
	Amount    float64
}

// parseTxSpec parses "sender:recipient:amount". Sender and recipient may be empty.
func parseTxSpec(s string) (txSpec, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return txSpec{}, fmt.Errorf("transaction %q must look like sender:recipient:amount", s)
	}
	amount, err := parseAmount(parts[2])
	if err != nil {
		return txSpec{}, err
	}
	return txSpec{Sender: parts[0], Recipient: parts[1], Amount: amount}, nil
}
