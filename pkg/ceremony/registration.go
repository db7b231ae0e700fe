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
	"strings"
)

// Register runs a registration ceremony for the signed-in account: prompt
// for a device label, fetch creation options, mint a credential on the
// platform, and upload the attestation with the label.
//
// An empty label or a declined prompt aborts the run silently before any
// network call. Every other terminal condition produces a Done or Failed
// outcome; Register never returns an error.
func (c *Client) Register(ctx context.Context) Outcome {
	if !c.configured {
		return Failed(failureMessage(ErrNotConfigured))
	}
	if c.prompter == nil {
		return Failed(failureMessage(fmt.Errorf("%w: no device label prompter", ErrNotConfigured)))
	}

	var label string
	prompt := func(ctx context.Context) error {
		// A change of heart at the prompt consumes nothing on the server.
		answer, err := c.prompter.DeviceLabel(ctx)
		if err != nil {
			if IsUserDeclined(err) {
				return err
			}
			return WrapError("prompt device label", err)
		}
		label = strings.TrimSpace(answer)
		if label == "" {
			return ErrUserDeclined
		}
		return nil
	}

	return c.run(ctx, "registration", c.config.RegisterBeginPath, c.config.RegisterCompletePath, nil, prompt,
		func(ctx context.Context, raw json.RawMessage) (any, error) {
			var opts CreationOptions
			if err := json.Unmarshal(raw, &opts); err != nil {
				return nil, WrapError("decode creation options", ErrTransport)
			}
			attestation, err := c.auth.CreateCredential(ctx, &opts)
			if err != nil {
				if IsUserDeclined(err) {
					return nil, err
				}
				return nil, &PlatformError{Err: err}
			}
			return &registrationUpload{Attestation: *attestation, DeviceName: label}, nil
		})
}
