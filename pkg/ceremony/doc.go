// Copyright (c) 2026 PoolBet Technologies
//
// This file is part of go-passkey.
//
// go-passkey is licensed under the GNU Affero General Public License v3.0.
// See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

// Package ceremony drives client-side WebAuthn (FIDO2) registration and
// authentication ceremonies against a relying party.
//
// This package orchestrates the two-phase ceremony protocol and provides:
//   - A shared ceremony skeleton: begin exchange, option decode, platform
//     operation, response encode, complete exchange
//   - Pluggable collaborator interfaces for the platform credential
//     manager, device-label prompt, and anti-forgery token source
//   - An HTTP transport with CSRF header injection and request correlation
//   - A secure-context guard matching the platform's own refusal rules
//
// # Architecture
//
// The package is designed with a layered architecture:
//
//  1. Ceremony layer (Client) - Registration and authentication runs
//  2. Collaborator layer (Authenticator, LabelPrompter, TokenSource) -
//     Pluggable platform and UI integration
//  3. Transport layer (Transport, HTTPTransport) - Relying-party exchanges
//
// # Usage
//
// Basic usage against a relying party:
//
//	client, err := ceremony.NewClient(ceremony.ClientParams{
//	    Config: &ceremony.Config{
//	        Origin: "https://bets.example.com",
//	    },
//	    Authenticator: platformAuthenticator,
//	    Prompter:      ceremony.StaticLabel("My Laptop"),
//	    TokenSource:   ceremony.StaticToken(csrfToken),
//	})
//	outcome := client.Login(ctx, "alice")
//	if outcome.Success() {
//	    // navigate to outcome.RedirectURL
//	}
//
// Every run terminates in exactly one Outcome: done, failed with a single
// human-readable message, or silently declined by the user. A failed run is
// restarted from the top so the relying party issues a fresh challenge;
// options and responses are never reused across runs.
//
// # WebAuthn Specification Compliance
//
// The ceremony protocol follows the W3C Web Authentication specification:
//   - https://www.w3.org/TR/webauthn-2/
//   - https://www.w3.org/TR/webauthn-3/
//
// Note: WebAuthn requires a secure context. Ceremonies refuse to start when
// the origin is a dotted-quad IP served over plain HTTP; localhost is
// exempt for development.
package ceremony
