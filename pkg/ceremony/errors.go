// Copyright (c) 2026 PoolBet Technologies
//
// This file is part of go-passkey.
//
// go-passkey is licensed under the GNU Affero General Public License v3.0.
// See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

package ceremony

import (
	"errors"
	"fmt"
)

// Sentinel errors for ceremony operations.
var (
	// ErrInsecureContext is returned by the secure-context guard when the
	// page is being served in a way the platform credential manager will
	// refuse to work with.
	ErrInsecureContext = errors.New("credential operations require a secure context")

	// ErrUserDeclined is returned when the user cancels an input prompt.
	// It aborts the ceremony silently and is never surfaced as a failure.
	ErrUserDeclined = errors.New("user declined")

	// ErrTransport is returned when the relying party cannot be reached or
	// returns a body that cannot be parsed. The user-facing message is
	// generic; no internal detail is leaked.
	ErrTransport = errors.New("could not reach the authentication server")

	// ErrServerRejected is matched by explicit rejections from the relying
	// party. The server-supplied message is carried by ServerError.
	ErrServerRejected = errors.New("server rejected the ceremony")

	// ErrPlatform is matched by failures of the platform credential-manager
	// operation (user dismissed the prompt, authenticator error, timeout).
	ErrPlatform = errors.New("authenticator operation failed")

	// ErrNotConfigured is returned when the client is missing a required
	// dependency.
	ErrNotConfigured = errors.New("ceremony client not configured")
)

// Error wraps an error with the operation that produced it.
type Error struct {
	Op  string // Operation that failed
	Err error  // Underlying error
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether the target error matches.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// WrapError wraps an error with an operation name if it's not nil.
func WrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// ServerError is an explicit rejection declared in a relying-party response
// body. Its message is shown to the user verbatim.
type ServerError struct {
	Message string
}

// Error returns the server-supplied message.
func (e *ServerError) Error() string {
	return e.Message
}

// Is matches ServerError against ErrServerRejected.
func (e *ServerError) Is(target error) bool {
	return target == ErrServerRejected
}

// PlatformError wraps a failure reported by the platform credential manager.
// Its message is passed through to the user unmodified.
type PlatformError struct {
	Err error
}

// Error returns the platform-supplied message.
func (e *PlatformError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *PlatformError) Unwrap() error {
	return e.Err
}

// Is matches PlatformError against ErrPlatform.
func (e *PlatformError) Is(target error) bool {
	return target == ErrPlatform
}

// IsInsecureContext returns true if the error came from the secure-context guard.
func IsInsecureContext(err error) bool {
	return errors.Is(err, ErrInsecureContext)
}

// IsUserDeclined returns true if the error indicates the user cancelled a prompt.
func IsUserDeclined(err error) bool {
	return errors.Is(err, ErrUserDeclined)
}

// IsServerRejection returns true if the relying party explicitly rejected the
// ceremony.
func IsServerRejection(err error) bool {
	return errors.Is(err, ErrServerRejected)
}

// IsTransportFailure returns true if the relying party could not be reached
// or produced an unparseable response.
func IsTransportFailure(err error) bool {
	return errors.Is(err, ErrTransport)
}

// failureMessage maps a terminal ceremony error to the single human-readable
// message exposed through the Failed outcome. Server and platform messages
// are passed through verbatim; transport and codec failures collapse into a
// generic message.
func failureMessage(err error) string {
	var serverErr *ServerError
	if errors.As(err, &serverErr) {
		return serverErr.Message
	}
	var platformErr *PlatformError
	if errors.As(err, &platformErr) {
		return platformErr.Err.Error()
	}
	if errors.Is(err, ErrInsecureContext) {
		return err.Error()
	}
	if errors.Is(err, ErrTransport) {
		return "Could not reach the authentication server. Please try again."
	}
	return err.Error()
}
