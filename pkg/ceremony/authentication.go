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

// Login runs an authentication ceremony. The username hint is forwarded to
// the relying party as typed; an empty hint requests a discoverable
// (usernameless) ceremony, in which case the server issues options with an
// empty allow-list and the platform resolves the credential itself.
//
// On success the outcome carries the redirect URL issued by the relying
// party. Login never returns an error.
func (c *Client) Login(ctx context.Context, username string) Outcome {
	if !c.configured {
		return Failed(failureMessage(ErrNotConfigured))
	}

	return c.run(ctx, "authentication", c.config.LoginBeginPath, c.config.LoginCompletePath, &loginHint{Username: username}, nil,
		func(ctx context.Context, raw json.RawMessage) (any, error) {
			var opts RequestOptions
			if err := json.Unmarshal(raw, &opts); err != nil {
				return nil, WrapError("decode request options", ErrTransport)
			}
			assertion, err := c.auth.GetAssertion(ctx, &opts)
			if err != nil {
				if IsUserDeclined(err) {
					return nil, err
				}
				return nil, &PlatformError{Err: err}
			}
			return assertion, nil
		})
}
