// Package pow searches for a header nonce whose hash satisfies the difficulty predicate.
package pow

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/holiman/uint256"
	"github.com/mezonai/powchain/block"
	"github.com/mezonai/powchain/errors"
	"github.com/mezonai/powchain/hasher"
)

// Rule decides whether a header hash is accepted at a given difficulty.
type Rule int

const (
	// RuleDecimalZero parses the first difficulty hex characters as a base-10 integer and
	// accepts only when that succeeds with the value zero. Any prefix holding a-f fails to
	// parse and is rejected. An empty prefix also fails to parse, so difficulty 0 is never
	// satisfiable under this rule.
	RuleDecimalZero Rule = iota
	// RuleLeadingZeros accepts when the first difficulty hex characters are all '0'.
	// Difficulty 0 accepts any hash.
	RuleLeadingZeros
)

func (r Rule) String() string {
	switch r {
	case RuleDecimalZero:
		return "decimal-zero"
	case RuleLeadingZeros:
		return "leading-zeros"
	default:
		return fmt.Sprintf("rule(%d)", int(r))
	}
}

func ParseRule(s string) (Rule, error) {
	switch s {
	case "", "decimal-zero":
		return RuleDecimalZero, nil
	case "leading-zeros":
		return RuleLeadingZeros, nil
	}
	return 0, fmt.Errorf("unknown proof-of-work rule %q", s)
}

// Accepts reports whether hash meets difficulty under r. A difficulty longer than the
// hash is never accepted.
func (r Rule) Accepts(hash string, difficulty uint32) bool {
	if int(difficulty) > len(hash) {
		return false
	}
	prefix := hash[:difficulty]
	switch r {
	case RuleLeadingZeros:
		return strings.TrimLeft(prefix, "0") == ""
	default:
		v, err := strconv.ParseUint(prefix, 10, 32)
		return err == nil && v == 0
	}
}

// Satisfiable reports whether any hash at all could be accepted at difficulty.
func (r Rule) Satisfiable(difficulty uint32) bool {
	if difficulty > hasher.DigestHexLen {
		return false
	}
	return r != RuleDecimalZero || difficulty > 0
}

// DefaultMaxAttempts bounds a search to the nonce range of a 32-bit counter.
const DefaultMaxAttempts uint64 = math.MaxUint32

// ctx is polled once per checkInterval hashes.
const checkInterval = 1024

type Options struct {
	Rule        Rule
	MaxAttempts uint64 // 0 means DefaultMaxAttempts
}

func (o Options) maxAttempts() uint64 {
	if o.MaxAttempts == 0 {
		return DefaultMaxAttempts
	}
	return o.MaxAttempts
}

type Result struct {
	Nonce    uint64
	Hash     string
	Attempts uint64
	Elapsed  time.Duration
}

var (
	ErrDifficultyExceedsDigest = errors.NewError(errors.ErrCodeDifficultyExceedsDigest, errors.ErrMsgDifficultyExceedsDigest)
	ErrUnsatisfiable           = errors.NewError(errors.ErrCodeUnsatisfiableDifficulty, errors.ErrMsgUnsatisfiableDifficulty)
	ErrNonceExhausted          = errors.NewError(errors.ErrCodeNonceExhausted, errors.ErrMsgNonceExhausted)
	ErrCancelled               = errors.NewError(errors.ErrCodeMiningCancelled, errors.ErrMsgMiningCancelled)
)

// Search increments header.Nonce from its current value until the header hash is
// accepted by opts.Rule at header.Difficulty. Only the nonce is modified. On error the
// nonce is left at an unspecified value and the header must not be sealed.
func Search(ctx context.Context, header *block.BlockHeader, opts Options) (Result, error) {
	difficulty := header.Difficulty
	if difficulty > hasher.DigestHexLen {
		return Result{}, errors.NewError(errors.ErrCodeDifficultyExceedsDigest,
			fmt.Sprintf(errors.ErrMsgDifficultyExceedsDigest, difficulty, hasher.DigestHexLen))
	}
	if !opts.Rule.Satisfiable(difficulty) {
		return Result{}, errors.NewError(errors.ErrCodeUnsatisfiableDifficulty,
			fmt.Sprintf(errors.ErrMsgUnsatisfiableDifficulty, difficulty, opts.Rule))
	}

	start := time.Now()
	limit := opts.maxAttempts()
	var attempts uint64
	for {
		if attempts%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Result{Attempts: attempts, Elapsed: time.Since(start)}, errors.Wrap(err,
					errors.ErrCodeMiningCancelled, fmt.Sprintf(errors.ErrMsgMiningCancelled, attempts))
			}
		}
		if attempts >= limit {
			return Result{Attempts: attempts, Elapsed: time.Since(start)}, errors.NewError(
				errors.ErrCodeNonceExhausted, fmt.Sprintf(errors.ErrMsgNonceExhausted, limit))
		}

		hash := header.Hash()
		attempts++
		if opts.Rule.Accepts(hash, difficulty) {
			return Result{
				Nonce:    header.Nonce,
				Hash:     hash,
				Attempts: attempts,
				Elapsed:  time.Since(start),
			}, nil
		}
		header.Nonce++
	}
}

// ExpectedAttempts is the mean number of hashes needed at difficulty, 16^difficulty,
// saturating at the largest uint256.
func ExpectedAttempts(difficulty uint32) *uint256.Int {
	if difficulty >= hasher.DigestHexLen {
		return new(uint256.Int).SetAllOne()
	}
	return new(uint256.Int).Lsh(uint256.NewInt(1), uint(4*difficulty))
}
