package errors

import (
	stderrors "errors"

	"github.com/mezonai/powchain/jsonx"
)

// LedgerErrorCode represents standardized error codes for ledger operations
type LedgerErrorCode string

const (
	// General errors
	ErrCodeInternal LedgerErrorCode = "internal_error"

	// Hashing errors
	ErrCodeEncodingFailed LedgerErrorCode = "encoding_failed"

	// Proof-of-work errors
	ErrCodeDifficultyExceedsDigest LedgerErrorCode = "difficulty_exceeds_digest"
	ErrCodeUnsatisfiableDifficulty LedgerErrorCode = "unsatisfiable_difficulty"
	ErrCodeNonceExhausted          LedgerErrorCode = "nonce_exhausted"
	ErrCodeMiningCancelled         LedgerErrorCode = "mining_cancelled"
)

// Error message constants
const (
	ErrMsgInternal                = "Internal ledger error"
	ErrMsgEncodingFailed          = "Record could not be canonically encoded"
	ErrMsgDifficultyExceedsDigest = "Difficulty %d exceeds digest length %d"
	ErrMsgUnsatisfiableDifficulty = "Difficulty %d can never be satisfied by rule %s"
	ErrMsgNonceExhausted          = "No accepted nonce within %d attempts"
	ErrMsgMiningCancelled         = "Mining cancelled after %d attempts"
)

// LedgerError represents a standardized ledger error
type LedgerError struct {
	Code    LedgerErrorCode `json:"code"`
	Message string          `json:"message"`

	cause error
}

// Error implements the error interface
func (e *LedgerError) Error() string {
	err, _ := jsonx.Marshal(LedgerError{
		Code:    e.Code,
		Message: e.Message,
	})
	return string(err)
}

// Unwrap exposes the underlying cause, if any.
func (e *LedgerError) Unwrap() error {
	return e.cause
}

// Is reports whether target is a LedgerError carrying the same code, so sentinel
// values built with NewError match any error of that kind regardless of message.
func (e *LedgerError) Is(target error) bool {
	t, ok := target.(*LedgerError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewError creates a new LedgerError and returns it as error interface
func NewError(code LedgerErrorCode, message string) error {
	return &LedgerError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a LedgerError that keeps cause reachable through errors.Unwrap.
func Wrap(cause error, code LedgerErrorCode, message string) error {
	if cause != nil {
		message = message + ": " + cause.Error()
	}
	return &LedgerError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// CodeOf returns the code of the first LedgerError in err's chain, or ErrCodeInternal.
func CodeOf(err error) LedgerErrorCode {
	var le *LedgerError
	if stderrors.As(err, &le) {
		return le.Code
	}
	return ErrCodeInternal
}
