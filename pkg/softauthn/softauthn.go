// Copyright (c) 2026 PoolBet Technologies
//
// This file is part of go-passkey.
//
// go-passkey is licensed under the GNU Affero General Public License v3.0.
// See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

// Package softauthn provides a software authenticator backed by
// github.com/descope/virtualwebauthn. It implements the platform
// credential-manager interface of pkg/ceremony entirely in memory, which
// makes full ceremonies runnable in tests and headless tooling without
// hardware or a browser.
package softauthn

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/descope/virtualwebauthn"

	"github.com/poolbet/go-passkey/pkg/ceremony"
)

// Options configures a software authenticator.
type Options struct {
	// Origin is the web origin bound into client data (required), e.g.
	// "https://localhost".
	Origin string

	// RelyingPartyID overrides the RP ID bound into responses. Defaults to
	// the rpId carried in the server options.
	RelyingPartyID string

	// RelyingPartyName is informational.
	RelyingPartyName string

	// UserHandle, when set, is returned with assertions so the relying
	// party can resolve the account in usernameless ceremonies.
	UserHandle []byte
}

// Authenticator is an in-memory authenticator. It mints EC2 (ES256)
// credentials, signs assertion challenges with them, and maintains the
// signature counter across assertions.
//
// All methods are safe for concurrent use.
type Authenticator struct {
	mu    sync.Mutex
	opts  Options
	auth  virtualwebauthn.Authenticator
	creds []*virtualwebauthn.Credential
	fail  error
}

// New creates a software authenticator.
func New(opts Options) *Authenticator {
	auth := virtualwebauthn.NewAuthenticator()
	if opts.UserHandle != nil {
		auth = virtualwebauthn.NewAuthenticatorWithOptions(virtualwebauthn.AuthenticatorOptions{
			UserHandle: opts.UserHandle,
		})
	}
	return &Authenticator{opts: opts, auth: auth}
}

// FailWith makes every subsequent operation return err, simulating a
// platform refusal. Pass nil to clear.
func (a *Authenticator) FailWith(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.fail = err
}

// Credentials returns the credentials minted so far, oldest first.
func (a *Authenticator) Credentials() []*virtualwebauthn.Credential {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*virtualwebauthn.Credential, len(a.creds))
	copy(out, a.creds)
	return out
}

// CreateCredential mints a new EC2 credential for the creation options and
// returns its attestation. The credential is retained for later assertions.
func (a *Authenticator) CreateCredential(ctx context.Context, opts *ceremony.CreationOptions) (*ceremony.Attestation, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.fail != nil {
		return nil, a.fail
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	optionsJSON, err := json.Marshal(opts)
	if err != nil {
		return nil, fmt.Errorf("encode creation options: %w", err)
	}
	parsed, err := virtualwebauthn.ParseAttestationOptions(string(optionsJSON))
	if err != nil {
		return nil, fmt.Errorf("parse creation options: %w", err)
	}

	for _, excluded := range opts.ExcludeCredentials {
		for _, minted := range a.creds {
			if bytes.Equal(excluded.ID, minted.ID) {
				return nil, fmt.Errorf("credential already registered")
			}
		}
	}

	rp := a.relyingParty(opts.RP.ID, opts.RP.Name)
	credential := virtualwebauthn.NewCredential(virtualwebauthn.KeyTypeEC2)

	responseJSON := virtualwebauthn.CreateAttestationResponse(rp, a.auth, credential, *parsed)

	var attestation ceremony.Attestation
	if err := json.Unmarshal([]byte(responseJSON), &attestation); err != nil {
		return nil, fmt.Errorf("decode attestation response: %w", err)
	}

	a.auth.AddCredential(credential)
	a.creds = append(a.creds, &credential)
	return &attestation, nil
}

// GetAssertion signs the challenge in the request options with a matching
// credential. With a non-empty allow-list the credential is picked from it;
// with an empty allow-list the first minted credential answers, matching
// how a platform resolves discoverable credentials.
func (a *Authenticator) GetAssertion(ctx context.Context, opts *ceremony.RequestOptions) (*ceremony.Assertion, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.fail != nil {
		return nil, a.fail
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	credential := a.pickCredential(opts.AllowCredentials)
	if credential == nil {
		return nil, fmt.Errorf("no matching credential")
	}

	optionsJSON, err := json.Marshal(opts)
	if err != nil {
		return nil, fmt.Errorf("encode request options: %w", err)
	}
	parsed, err := virtualwebauthn.ParseAssertionOptions(string(optionsJSON))
	if err != nil {
		return nil, fmt.Errorf("parse request options: %w", err)
	}

	credential.Counter++
	rp := a.relyingParty(opts.RPID, a.opts.RelyingPartyName)
	responseJSON := virtualwebauthn.CreateAssertionResponse(rp, a.auth, *credential, *parsed)

	var assertion ceremony.Assertion
	if err := json.Unmarshal([]byte(responseJSON), &assertion); err != nil {
		return nil, fmt.Errorf("decode assertion response: %w", err)
	}
	// Platforms that return no user handle yield nil, not empty bytes.
	if assertion.Response.UserHandle != nil && len(*assertion.Response.UserHandle) == 0 {
		assertion.Response.UserHandle = nil
	}
	return &assertion, nil
}

func (a *Authenticator) relyingParty(id, name string) virtualwebauthn.RelyingParty {
	if a.opts.RelyingPartyID != "" {
		id = a.opts.RelyingPartyID
	}
	if a.opts.RelyingPartyName != "" {
		name = a.opts.RelyingPartyName
	}
	return virtualwebauthn.RelyingParty{
		ID:     id,
		Name:   name,
		Origin: a.opts.Origin,
	}
}

func (a *Authenticator) pickCredential(allowed []ceremony.CredentialDescriptor) *virtualwebauthn.Credential {
	if len(allowed) == 0 {
		if len(a.creds) == 0 {
			return nil
		}
		return a.creds[0]
	}
	for _, descriptor := range allowed {
		for _, credential := range a.creds {
			if bytes.Equal(descriptor.ID, credential.ID) {
				return credential
			}
		}
	}
	return nil
}
