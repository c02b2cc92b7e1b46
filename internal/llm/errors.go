package llm

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ErrRateLimit indicates the upstream service returned a rate limit error.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the model returned content that does not
// conform to the requested schema, or no usable content at all.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid model response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the upstream service is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider unavailable: %v", e.Err)
	}
	return "provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the response was truncated at the
// MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "model response truncated: max tokens exceeded"
}

// ErrContentBlocked indicates the upstream safety filter refused the
// generation. Shown to the user as its own condition, never folded into
// the generic failure message.
type ErrContentBlocked struct {
	Reason string
}

func (e *ErrContentBlocked) Error() string {
	if e.Reason != "" {
		return "content blocked by safety filter: " + e.Reason
	}
	return "content blocked by safety filter"
}

// ErrConfiguration indicates the provider selection or its settings
// are unusable before any request is made.
type ErrConfiguration struct {
	Reason string
}

func (e *ErrConfiguration) Error() string {
	return "provider configuration: " + e.Reason
}

// ErrInvalidCredential indicates the configured API key was rejected.
// The credential manager clears the persisted key when it sees this.
type ErrInvalidCredential struct {
	Err error
}

func (e *ErrInvalidCredential) Error() string {
	return fmt.Sprintf("invalid API credential: %v", e.Err)
}

func (e *ErrInvalidCredential) Unwrap() error { return e.Err }

// credentialPatterns are substrings that identify a rejected API key in
// upstream error text. The services do not expose a stable error code for
// this, so pattern matching is the only detection available.
var credentialPatterns = []string{
	"api key not valid",
	"api_key_invalid",
	"invalid api key",
	"invalid x-api-key",
	"incorrect api key",
	"authentication_error",
	"permission_denied",
}

// looksLikeBadCredential reports whether an upstream error message
// describes a rejected API key.
func looksLikeBadCredential(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, p := range credentialPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
