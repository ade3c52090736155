// Package hasher computes the canonical content digest of chain records.
//
// A record is encoded with jsonx (declared field order, field names, no whitespace) and the
// SHA-256 of those bytes is rendered as lowercase hex. Every digest stored on the chain uses
// this hex form, so the encoding must never change for the lifetime of a chain.
package hasher

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/mezonai/powchain/errors"
	"github.com/mezonai/powchain/jsonx"
)

// DigestHexLen is the length of a hex-encoded digest.
const DigestHexLen = sha256.Size * 2

// GenesisSentinel is the previous hash recorded by the block at height 0.
var GenesisSentinel = strings.Repeat("0", DigestHexLen)

// ErrEncoding matches any failure to canonically encode a record.
var ErrEncoding = errors.NewError(errors.ErrCodeEncodingFailed, errors.ErrMsgEncodingFailed)

// Sum returns the hex digest of v's canonical encoding.
func Sum(v interface{}) (string, error) {
	b, err := jsonx.Marshal(v)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeEncodingFailed, errors.ErrMsgEncodingFailed)
	}
	return SumBytes(b), nil
}

// MustSum is Sum for records whose encoding cannot fail: strings, headers and transactions.
func MustSum(v interface{}) string {
	h, err := Sum(v)
	if err != nil {
		panic(err)
	}
	return h
}

func SumBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
