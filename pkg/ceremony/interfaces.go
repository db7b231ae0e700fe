// Copyright (c) 2026 PoolBet Technologies
//
// This file is part of go-passkey.
//
// go-passkey is licensed under the GNU Affero General Public License v3.0.
// See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

package ceremony

import (
	"context"
	"encoding/json"
)

// Authenticator is the capability interface over the platform credential
// manager. Implementations perform the actual key operations and challenge
// signing; the ceremonies never see key material.
//
// Both operations block until the platform resolves them and must honor
// context cancellation. A platform failure (user dismissed the prompt,
// authenticator error, timeout) is returned as an ordinary error whose
// message is shown to the user unmodified.
type Authenticator interface {
	// CreateCredential asks the platform to mint a new credential for the
	// decoded creation options.
	CreateCredential(ctx context.Context, opts *CreationOptions) (*Attestation, error)

	// GetAssertion asks the platform to sign the challenge in the decoded
	// request options with an existing credential. With an empty allow-list
	// the platform resolves the credential itself (usernameless flow).
	GetAssertion(ctx context.Context, opts *RequestOptions) (*Assertion, error)
}

// LabelPrompter supplies the human-readable device label attached to a new
// registration. Returning an empty label or ErrUserDeclined aborts the
// ceremony silently - the user changed their mind, nothing failed.
type LabelPrompter interface {
	DeviceLabel(ctx context.Context) (string, error)
}

// PromptFunc adapts a function to the LabelPrompter interface.
type PromptFunc func(ctx context.Context) (string, error)

// DeviceLabel calls f.
func (f PromptFunc) DeviceLabel(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticLabel returns a LabelPrompter that always answers with label.
func StaticLabel(label string) LabelPrompter {
	return PromptFunc(func(context.Context) (string, error) {
		return label, nil
	})
}

// TokenSource supplies the anti-forgery token attached as a header to every
// relying-party call. The token is treated as an opaque string; it is read
// from the hosting page's form or meta state by the collaborator that
// implements this interface.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to the TokenSource interface.
type TokenFunc func(ctx context.Context) (string, error)

// Token calls f.
func (f TokenFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticToken returns a TokenSource that always answers with token.
func StaticToken(token string) TokenSource {
	return TokenFunc(func(context.Context) (string, error) {
		return token, nil
	})
}

// Transport performs the two network round-trips of a ceremony against the
// relying party.
type Transport interface {
	// Begin performs the first exchange and returns the raw options body.
	// A body carrying an explicit error indicator is returned as a
	// ServerError; an unreachable server or unparseable body as ErrTransport.
	Begin(ctx context.Context, path string, payload any) (json.RawMessage, error)

	// Complete performs the second exchange. A non-success status is
	// returned as a ServerError carrying the server's message.
	Complete(ctx context.Context, path string, payload any) (*ServerResult, error)
}
