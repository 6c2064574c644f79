package teos

import (
	"errors"
	"fmt"

	"github.com/torlnapp/teos-go/internal/crypto"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrInvalidFormat is returned when bytes or an envelope do not have the
	// TEOS shape: wrong discriminant, unknown mode, bad field lengths.
	ErrInvalidFormat = errors.New("invalid TEOS format")

	// ErrSignatureInvalid is returned when signature verification fails.
	ErrSignatureInvalid = errors.New("invalid TEOS signature")

	// ErrCryptoProvider is returned when a cryptographic primitive fails.
	ErrCryptoProvider = errors.New("crypto provider error")

	// ErrDecryptionFailed is returned when the AEAD refuses to open the
	// ciphertext. It is only reachable after the signature has verified.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrInvalidAAD is returned when caller-supplied AAD is unusable.
	ErrInvalidAAD = errors.New("invalid AAD")

	// ErrModeMismatch is returned when a mode-specific operation receives an
	// envelope of the other mode.
	ErrModeMismatch = errors.New("envelope mode mismatch")
)

// TEOSError is implemented by all errors defined in this package.
type TEOSError interface {
	error
	TEOSError() // marker method
}

// FormatError describes a structural problem with an envelope or its
// serialized form.
type FormatError struct {
	Field   string
	Message string
	Err     error
}

func (e *FormatError) Error() string {
	msg := "invalid TEOS format"
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

// TEOSError implements the TEOSError interface.
func (e *FormatError) TEOSError() {}

// AuthenticationError indicates the envelope signature did not verify.
// Nothing has been decrypted when this error is returned.
type AuthenticationError struct {
	Identifier string
	Message    string
}

func (e *AuthenticationError) Error() string {
	if e.Identifier != "" {
		return fmt.Sprintf("invalid TEOS signature on %s: %s", e.Identifier, e.Message)
	}
	return fmt.Sprintf("invalid TEOS signature: %s", e.Message)
}

// Is implements errors.Is for sentinel error matching.
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrSignatureInvalid
}

// TEOSError implements the TEOSError interface.
func (e *AuthenticationError) TEOSError() {}

// CryptoProviderError wraps a failure of the underlying primitives.
type CryptoProviderError struct {
	Op  string // "derive", "seal", "open", "sign", "random"
	Err error
}

func (e *CryptoProviderError) Error() string {
	return fmt.Sprintf("crypto provider failed at %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *CryptoProviderError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *CryptoProviderError) Is(target error) bool {
	if target == ErrCryptoProvider {
		return true
	}
	return target == ErrDecryptionFailed && errors.Is(e.Err, crypto.ErrDecryptionFailed)
}

// TEOSError implements the TEOSError interface.
func (e *CryptoProviderError) TEOSError() {}

// ValidationError contains multiple validation failures of caller input.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Errors)
}

// Is implements errors.Is for sentinel error matching.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidAAD
}

// TEOSError implements the TEOSError interface.
func (e *ValidationError) TEOSError() {}

func formatErr(field, message string) error {
	return &FormatError{Field: field, Message: message}
}

func providerErr(op string, err error) error {
	return &CryptoProviderError{Op: op, Err: err}
}
