package merkle

import (
	"fmt"

	"github.com/mezonai/powchain/hasher"
	"github.com/mezonai/powchain/transaction"
)

// Pairing selects how a level of hashes is reduced to its parents.
type Pairing int

const (
	// LeftToRight pairs (0,1), (2,3), ... and re-pads every odd level with a copy of its
	// last hash. This is the canonical order.
	LeftToRight Pairing = iota
	// PopFromEnd pads the leaves once, then repeatedly pops the last two hashes and pushes
	// hash(last + second_to_last). It exists to reproduce roots recorded by older chains.
	PopFromEnd
)

func (p Pairing) String() string {
	switch p {
	case LeftToRight:
		return "left-to-right"
	case PopFromEnd:
		return "pop-from-end"
	default:
		return fmt.Sprintf("pairing(%d)", int(p))
	}
}

// ParsePairing accepts the names produced by Pairing.String.
func ParsePairing(s string) (Pairing, error) {
	switch s {
	case "", "left-to-right":
		return LeftToRight, nil
	case "pop-from-end":
		return PopFromEnd, nil
	}
	return 0, fmt.Errorf("unknown merkle pairing %q", s)
}

// EmptyRoot is the root of a transaction list with no entries: the digest of zero bytes.
var EmptyRoot = hasher.SumBytes(nil)

// Build commits txs to a single digest using LeftToRight pairing.
func Build(txs []transaction.Transaction) (string, error) {
	return BuildWith(txs, LeftToRight)
}

func BuildWith(txs []transaction.Transaction, pairing Pairing) (string, error) {
	leaves := make([]string, 0, len(txs)+1)
	for i, tx := range txs {
		h, err := tx.Hash()
		if err != nil {
			return "", fmt.Errorf("hash transaction %d: %w", i, err)
		}
		leaves = append(leaves, h)
	}
	return Root(leaves, pairing)
}

// Root reduces already computed leaf hashes. The leaves slice is not modified.
func Root(leaves []string, pairing Pairing) (string, error) {
	if len(leaves) == 0 {
		return EmptyRoot, nil
	}
	level := make([]string, len(leaves), len(leaves)+1)
	copy(level, leaves)

	switch pairing {
	case LeftToRight:
		return reduceLeftToRight(level), nil
	case PopFromEnd:
		return reducePopFromEnd(level), nil
	}
	return "", fmt.Errorf("unknown merkle pairing %d", int(pairing))
}

func combine(left, right string) string {
	return hasher.MustSum(left + right)
}

func reduceLeftToRight(level []string) string {
	for {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}
		next := make([]string, 0, len(level)/2+1)
		for i := 0; i < len(level); i += 2 {
			next = append(next, combine(level[i], level[i+1]))
		}
		level = next
		if len(level) == 1 {
			return level[0]
		}
	}
}

func reducePopFromEnd(stack []string) string {
	if len(stack)%2 == 1 {
		stack = append(stack, stack[len(stack)-1])
	}
	for len(stack) > 1 {
		last := stack[len(stack)-1]
		prev := stack[len(stack)-2]
		stack = append(stack[:len(stack)-2], combine(last, prev))
	}
	return stack[0]
}
