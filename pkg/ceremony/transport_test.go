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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransport(t *testing.T, handler http.Handler) *HTTPTransport {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	transport, err := NewHTTPTransport(HTTPTransportParams{
		BaseURL:     server.URL,
		TokenSource: StaticToken("csrf-token-1"),
	})
	require.NoError(t, err)
	return transport
}

func TestNewHTTPTransport(t *testing.T) {
	_, err := NewHTTPTransport(HTTPTransportParams{})
	assert.Error(t, err)

	transport, err := NewHTTPTransport(HTTPTransportParams{BaseURL: "https://example.com"})
	require.NoError(t, err)
	assert.NotNil(t, transport)
}

func TestBeginSendsHeaders(t *testing.T) {
	var gotCSRF, gotContentType, gotRequestID, gotCookie string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCSRF = r.Header.Get("X-CSRFToken")
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get("X-Request-Id")
		gotCookie = r.Header.Get("Cookie")
		_, _ = w.Write([]byte(`{"challenge":"AQID"}`))
	})
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	transport, err := NewHTTPTransport(HTTPTransportParams{
		BaseURL:     server.URL,
		TokenSource: StaticToken("csrf-token-1"),
		Headers:     http.Header{"Cookie": []string{"sessionid=abc"}},
	})
	require.NoError(t, err)

	body, err := transport.Begin(context.Background(), "/webauthn/register/begin/", nil)
	require.NoError(t, err)

	assert.JSONEq(t, `{"challenge":"AQID"}`, string(body))
	assert.Equal(t, "csrf-token-1", gotCSRF)
	assert.Equal(t, "application/json", gotContentType)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "sessionid=abc", gotCookie)
}

func TestBeginSendsPayload(t *testing.T) {
	var gotBody map[string]string
	transport := newTestTransport(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"challenge":"AQID"}`))
	}))

	_, err := transport.Begin(context.Background(), "/webauthn/login/begin/", &loginHint{Username: ""})
	require.NoError(t, err)

	// The username key is present even for the usernameless flow.
	username, ok := gotBody["username"]
	assert.True(t, ok)
	assert.Empty(t, username)
}

func TestBeginDeclaredError(t *testing.T) {
	transport := newTestTransport(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":"error","message":"Registration unavailable."}`))
	}))

	_, err := transport.Begin(context.Background(), "/webauthn/register/begin/", nil)
	require.Error(t, err)
	assert.True(t, IsServerRejection(err))
	assert.Equal(t, "Registration unavailable.", failureMessage(err))
}

func TestBeginServerUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	transport, err := NewHTTPTransport(HTTPTransportParams{BaseURL: url})
	require.NoError(t, err)

	_, err = transport.Begin(context.Background(), "/webauthn/register/begin/", nil)
	assert.True(t, IsTransportFailure(err))
}

func TestCompleteSuccess(t *testing.T) {
	transport := newTestTransport(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"success","redirect_url":"/dashboard/"}`))
	}))

	result, err := transport.Complete(context.Background(), "/webauthn/login/complete/", &loginHint{})
	require.NoError(t, err)
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, "/dashboard/", result.RedirectURL)
}

func TestCompleteRejection(t *testing.T) {
	transport := newTestTransport(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":"error","message":"Login failed. Error: signature invalid."}`))
	}))

	_, err := transport.Complete(context.Background(), "/webauthn/login/complete/", nil)
	require.Error(t, err)
	assert.True(t, IsServerRejection(err))
	assert.Equal(t, "Login failed. Error: signature invalid.", failureMessage(err))
}

func TestCompleteUnparseableBody(t *testing.T) {
	transport := newTestTransport(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>gateway error</html>`))
	}))

	_, err := transport.Complete(context.Background(), "/webauthn/login/complete/", nil)
	assert.True(t, IsTransportFailure(err))
}

func TestCompleteErrorWithoutMessage(t *testing.T) {
	transport := newTestTransport(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":"error"}`))
	}))

	_, err := transport.Complete(context.Background(), "/webauthn/register/complete/", nil)
	require.Error(t, err)
	assert.True(t, IsServerRejection(err))
	assert.Equal(t, "The server rejected the request.", failureMessage(err))
}
