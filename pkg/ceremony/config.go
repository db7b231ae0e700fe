// Copyright (c) 2026 PoolBet Technologies
//
// This file is part of go-passkey.
//
// go-passkey is licensed under the GNU Affero General Public License v3.0.
// See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

package ceremony

import (
	"fmt"
	"net/url"
	"time"
)

// Config configures the ceremony client.
type Config struct {
	// Origin is the web origin the ceremonies run under, e.g.
	// "https://bets.example.com". The secure-context guard inspects its
	// scheme and host, and software authenticators bind client data to it.
	Origin string `yaml:"origin" json:"origin"`

	// BaseURL is the relying-party base URL the transport calls. Defaults
	// to Origin; set it separately when the server is reached through a
	// tunnel or a test listener.
	BaseURL string `yaml:"base_url" json:"base_url"`

	// Ceremony endpoint paths, relative to BaseURL.
	RegisterBeginPath    string `yaml:"register_begin_path" json:"register_begin_path"`
	RegisterCompletePath string `yaml:"register_complete_path" json:"register_complete_path"`
	LoginBeginPath       string `yaml:"login_begin_path" json:"login_begin_path"`
	LoginCompletePath    string `yaml:"login_complete_path" json:"login_complete_path"`

	// CSRFHeader is the request header the anti-forgery token is sent in.
	// Default: "X-CSRFToken".
	CSRFHeader string `yaml:"csrf_header" json:"csrf_header"`

	// Timeout bounds each network round trip. Default: 30 seconds.
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// SetDefaults sets default values for unset configuration fields.
func (c *Config) SetDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = c.Origin
	}
	if c.RegisterBeginPath == "" {
		c.RegisterBeginPath = "/webauthn/register/begin/"
	}
	if c.RegisterCompletePath == "" {
		c.RegisterCompletePath = "/webauthn/register/complete/"
	}
	if c.LoginBeginPath == "" {
		c.LoginBeginPath = "/webauthn/login/begin/"
	}
	if c.LoginCompletePath == "" {
		c.LoginCompletePath = "/webauthn/login/complete/"
	}
	if c.CSRFHeader == "" {
		c.CSRFHeader = "X-CSRFToken"
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.Origin == "" {
		return fmt.Errorf("origin is required")
	}
	origin, err := url.Parse(c.Origin)
	if err != nil {
		return fmt.Errorf("invalid origin %q: %w", c.Origin, err)
	}
	if origin.Scheme == "" || origin.Hostname() == "" {
		return fmt.Errorf("origin %q must carry a scheme and host", c.Origin)
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
	}
	return nil
}

// originParts returns the scheme and hostname of the configured origin.
// Only valid after Validate.
func (c *Config) originParts() (scheme, host string) {
	origin, err := url.Parse(c.Origin)
	if err != nil {
		return "", ""
	}
	return origin.Scheme, origin.Hostname()
}
