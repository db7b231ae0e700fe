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
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/poolbet/go-passkey/pkg/correlation"
	"github.com/poolbet/go-passkey/pkg/metrics"
)

// Client drives WebAuthn ceremonies against a relying party through a
// platform credential manager. One client runs any number of ceremonies;
// each Register or Login call is an independent run ending in an Outcome.
type Client struct {
	config     *Config
	auth       Authenticator
	prompter   LabelPrompter
	transport  Transport
	logger     *slog.Logger
	configured bool
}

// ClientParams contains dependencies for creating a ceremony client.
type ClientParams struct {
	// Config is the ceremony configuration (required).
	Config *Config

	// Authenticator is the platform credential manager (required).
	Authenticator Authenticator

	// Prompter supplies the device label attached to new registrations
	// (required for Register).
	Prompter LabelPrompter

	// TokenSource supplies the anti-forgery token. Used when Transport is
	// nil and a default HTTP transport is built.
	TokenSource TokenSource

	// Transport performs the ceremony round trips. If nil, an HTTP
	// transport is built from Config and TokenSource.
	Transport Transport

	// HTTPClient is used by the default transport. Ignored when Transport
	// is set.
	HTTPClient *http.Client

	// Headers are extra headers for the default transport. Ignored when
	// Transport is set.
	Headers http.Header

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// NewClient creates a new ceremony client with the provided dependencies.
func NewClient(params ClientParams) (*Client, error) {
	if params.Config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if params.Authenticator == nil {
		return nil, fmt.Errorf("authenticator is required")
	}

	params.Config.SetDefaults()
	if err := params.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}

	transport := params.Transport
	if transport == nil {
		client := params.HTTPClient
		if client == nil {
			client = &http.Client{Timeout: params.Config.Timeout}
		}
		var err error
		transport, err = NewHTTPTransport(HTTPTransportParams{
			BaseURL:     params.Config.BaseURL,
			TokenSource: params.TokenSource,
			CSRFHeader:  params.Config.CSRFHeader,
			HTTPClient:  client,
			Headers:     params.Headers,
			Logger:      logger,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create transport: %w", err)
		}
	}

	return &Client{
		config:     params.Config,
		auth:       params.Authenticator,
		prompter:   params.Prompter,
		transport:  transport,
		logger:     logger,
		configured: true,
	}, nil
}

// run executes the shared ceremony skeleton: secure-context guard, input
// prompts, begin exchange, decode of the server options, platform
// operation, complete exchange. Each step either advances the run or
// terminates it; a failed run cannot be resumed because its challenge is
// spent on the server.
func (c *Client) run(ctx context.Context, ceremony string, beginPath, completePath string, beginPayload any, prepare func(ctx context.Context) error, exchange func(ctx context.Context, options json.RawMessage) (any, error)) Outcome {
	runID := correlation.GetOrGenerate(ctx)
	ctx = correlation.WithRunID(ctx, runID)
	logger := c.logger.With("ceremony", ceremony, "run_id", runID)
	started := time.Now()

	outcome := func(o Outcome) Outcome {
		metrics.RecordCeremony(ceremony, string(o.Status), time.Since(started).Seconds())
		switch o.Status {
		case StatusDone:
			logger.Info("ceremony completed")
		case StatusDeclined:
			logger.Debug("ceremony declined")
		default:
			logger.Info("ceremony failed", "message", o.Message)
		}
		return o
	}

	scheme, host := c.config.originParts()
	if err := CheckSecureContext(host, scheme); err != nil {
		return outcome(Failed(failureMessage(err)))
	}

	if prepare != nil {
		if err := prepare(ctx); err != nil {
			if IsUserDeclined(err) {
				return outcome(Declined)
			}
			return outcome(Failed(failureMessage(err)))
		}
	}

	logger.Debug("beginning ceremony", "path", beginPath)
	options, err := c.transport.Begin(ctx, beginPath, beginPayload)
	if err != nil {
		return outcome(Failed(failureMessage(err)))
	}

	logger.Debug("options received, invoking authenticator")
	upload, err := exchange(ctx, options)
	if err != nil {
		if IsUserDeclined(err) {
			return outcome(Declined)
		}
		return outcome(Failed(failureMessage(err)))
	}

	logger.Debug("completing ceremony", "path", completePath)
	result, err := c.transport.Complete(ctx, completePath, upload)
	if err != nil {
		return outcome(Failed(failureMessage(err)))
	}

	return outcome(Done(result.RedirectURL))
}
