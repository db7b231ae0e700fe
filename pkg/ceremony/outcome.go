// Copyright (c) 2026 PoolBet Technologies
//
// This file is part of go-passkey.
//
// go-passkey is licensed under the GNU Affero General Public License v3.0.
// See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

package ceremony

// Status is the terminal status of a ceremony run.
type Status string

const (
	// StatusDone means the ceremony completed and the relying party
	// accepted the credential or assertion.
	StatusDone Status = "done"

	// StatusFailed means the ceremony terminated with an error. Message
	// carries the single human-readable reason.
	StatusFailed Status = "failed"

	// StatusDeclined means the user cancelled an input prompt before any
	// network call was made. Nothing failed; nothing was consumed.
	StatusDeclined Status = "declined"
)

// Outcome is the only result a ceremony exposes to its caller. There is no
// partial or ambiguous state: a run ends done, failed, or declined, and a
// failed run must be restarted from the top so the relying party issues a
// fresh challenge.
type Outcome struct {
	Status Status

	// RedirectURL is where the caller should navigate after a successful
	// authentication. Empty after registration.
	RedirectURL string

	// Message is the failure reason shown to the user verbatim. Empty
	// unless Status is StatusFailed.
	Message string
}

// Success reports whether the ceremony completed.
func (o Outcome) Success() bool {
	return o.Status == StatusDone
}

// Done builds a successful outcome.
func Done(redirectURL string) Outcome {
	return Outcome{Status: StatusDone, RedirectURL: redirectURL}
}

// Failed builds a failed outcome with the message shown to the user.
func Failed(message string) Outcome {
	return Outcome{Status: StatusFailed, Message: message}
}

// Declined is the outcome of a silently aborted ceremony.
var Declined = Outcome{Status: StatusDeclined}
