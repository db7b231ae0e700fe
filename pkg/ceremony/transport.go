// Copyright (c) 2026 PoolBet Technologies
//
// This file is part of go-passkey.
//
// go-passkey is licensed under the GNU Affero General Public License v3.0.
// See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

package ceremony

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/poolbet/go-passkey/pkg/correlation"
)

// maxResponseBytes bounds how much of a relying-party response is read.
const maxResponseBytes = 1 << 20

// HTTPTransport performs ceremony round trips over HTTP with a JSON body,
// the anti-forgery token attached as a header, and a request ID for log
// correlation.
type HTTPTransport struct {
	base       *url.URL
	client     *http.Client
	tokens     TokenSource
	csrfHeader string
	headers    http.Header
	logger     *slog.Logger
}

// HTTPTransportParams contains dependencies for creating an HTTPTransport.
type HTTPTransportParams struct {
	// BaseURL is the relying-party base URL (required).
	BaseURL string

	// TokenSource supplies the anti-forgery token. Optional; when nil no
	// token header is sent.
	TokenSource TokenSource

	// CSRFHeader is the header name for the anti-forgery token.
	// Default: "X-CSRFToken".
	CSRFHeader string

	// HTTPClient is the underlying client. Default: http.DefaultClient.
	HTTPClient *http.Client

	// Headers are extra headers attached to every request, e.g. a session
	// cookie when driving ceremonies outside a browser.
	Headers http.Header

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// NewHTTPTransport creates a transport for the given relying party.
func NewHTTPTransport(params HTTPTransportParams) (*HTTPTransport, error) {
	if params.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	base, err := url.Parse(params.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", params.BaseURL, err)
	}
	client := params.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	csrfHeader := params.CSRFHeader
	if csrfHeader == "" {
		csrfHeader = "X-CSRFToken"
	}
	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPTransport{
		base:       base,
		client:     client,
		tokens:     params.TokenSource,
		csrfHeader: csrfHeader,
		headers:    params.Headers,
		logger:     logger,
	}, nil
}

// Begin posts the payload to path and returns the raw options body. A body
// declaring {"status":"error"} is returned as a ServerError with the
// server's message.
func (t *HTTPTransport) Begin(ctx context.Context, path string, payload any) (json.RawMessage, error) {
	body, err := t.post(ctx, path, payload)
	if err != nil {
		return nil, err
	}
	if serverErr := declaredError(body); serverErr != nil {
		return nil, serverErr
	}
	return body, nil
}

// Complete posts the payload to path and parses the terminal result. Any
// status other than "success" is returned as a ServerError.
func (t *HTTPTransport) Complete(ctx context.Context, path string, payload any) (*ServerResult, error) {
	body, err := t.post(ctx, path, payload)
	if err != nil {
		return nil, err
	}
	var result ServerResult
	if err := json.Unmarshal(body, &result); err != nil || result.Status == "" {
		return nil, WrapError("parse completion response", ErrTransport)
	}
	if result.Status != "success" {
		message := result.Message
		if strings.TrimSpace(message) == "" {
			message = "The server rejected the request."
		}
		return nil, &ServerError{Message: message}
	}
	return &result, nil
}

// post performs one JSON request/response exchange. A nil payload sends no
// body. Non-2xx responses still surface a server-declared error when the
// body carries one; everything else collapses to ErrTransport.
func (t *HTTPTransport) post(ctx context.Context, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, WrapError("encode request", err)
		}
		reqBody = bytes.NewReader(data)
	}

	target := t.base.JoinPath(path).String()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, reqBody)
	if err != nil {
		return nil, WrapError("build request", err)
	}

	requestID := correlation.GetOrGenerate(ctx)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(correlation.RequestIDHeader, requestID)
	for name, values := range t.headers {
		for _, value := range values {
			req.Header.Add(name, value)
		}
	}
	if t.tokens != nil {
		token, err := t.tokens.Token(ctx)
		if err != nil {
			return nil, WrapError("read anti-forgery token", fmt.Errorf("%w: %v", ErrTransport, err))
		}
		req.Header.Set(t.csrfHeader, token)
	}

	t.logger.Debug("ceremony exchange",
		"path", path,
		"request_id", requestID)

	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.Debug("ceremony exchange failed",
			"path", path,
			"request_id", requestID,
			"error", err)
		return nil, WrapError("post "+path, fmt.Errorf("%w: %v", ErrTransport, err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, WrapError("read response", fmt.Errorf("%w: %v", ErrTransport, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Rejections arrive with 4xx codes and an error body; surface the
		// server's message when it parses, a generic failure when it doesn't.
		if serverErr := declaredError(body); serverErr != nil {
			return nil, serverErr
		}
		return nil, WrapError("post "+path, fmt.Errorf("%w: unexpected status %d", ErrTransport, resp.StatusCode))
	}
	return body, nil
}

// declaredError returns a ServerError when the body explicitly declares an
// error, nil otherwise.
func declaredError(body []byte) *ServerError {
	var result ServerResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil
	}
	if result.Status == "error" || (result.Status != "" && result.Status != "success" && result.Message != "") {
		message := result.Message
		if strings.TrimSpace(message) == "" {
			message = "The server rejected the request."
		}
		return &ServerError{Message: message}
	}
	return nil
}
