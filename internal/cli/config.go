// Copyright (c) 2026 PoolBet Technologies
//
// This file is part of go-passkey.
//
// go-passkey is licensed under the GNU Affero General Public License v3.0.
// See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

package cli

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/poolbet/go-passkey/pkg/ceremony"
	"github.com/poolbet/go-passkey/pkg/softauthn"
)

// Config holds global CLI configuration
type Config struct {
	// ConfigFile is the path to the configuration file
	ConfigFile string `yaml:"-"`

	// Origin is the web origin of the relying party
	Origin string `yaml:"origin"`

	// BaseURL is the relying-party base URL (defaults to Origin)
	BaseURL string `yaml:"base_url"`

	// CSRFToken is the anti-forgery token sent with every request
	CSRFToken string `yaml:"csrf_token"`

	// SessionCookie is the cookie attached to every request,
	// e.g. "sessionid=abc" for an authenticated session
	SessionCookie string `yaml:"session_cookie"`

	// UserHandle labels the software authenticator's discoverable
	// credentials; the relying party receives it with assertions
	UserHandle string `yaml:"user_handle"`

	// OutputFormat controls output formatting (json, text)
	OutputFormat string `yaml:"output"`

	// Verbose enables verbose logging
	Verbose bool `yaml:"verbose"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		OutputFormat: "text",
		Verbose:      false,
	}
}

// Load merges the configuration file and environment overrides into the
// flag values. Precedence: flags > environment > file.
func (c *Config) Load() error {
	path := c.ConfigFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, ".passkey.yaml")
		}
	}
	if path != "" {
		if err := c.loadFile(path, c.ConfigFile != ""); err != nil {
			return err
		}
	}

	c.applyEnv()
	return nil
}

// loadFile reads a YAML config file. A missing file is only an error when
// it was named explicitly.
func (c *Config) loadFile(path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fileConfig Config
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	// Flags win over file values.
	if c.Origin == "" {
		c.Origin = fileConfig.Origin
	}
	if c.BaseURL == "" {
		c.BaseURL = fileConfig.BaseURL
	}
	if c.CSRFToken == "" {
		c.CSRFToken = fileConfig.CSRFToken
	}
	if c.SessionCookie == "" {
		c.SessionCookie = fileConfig.SessionCookie
	}
	if c.UserHandle == "" {
		c.UserHandle = fileConfig.UserHandle
	}
	return nil
}

// applyEnv fills unset values from PASSKEY_* environment variables.
func (c *Config) applyEnv() {
	if c.Origin == "" {
		c.Origin = os.Getenv("PASSKEY_ORIGIN")
	}
	if c.BaseURL == "" {
		c.BaseURL = os.Getenv("PASSKEY_BASE_URL")
	}
	if c.CSRFToken == "" {
		c.CSRFToken = os.Getenv("PASSKEY_CSRF_TOKEN")
	}
	if c.SessionCookie == "" {
		c.SessionCookie = os.Getenv("PASSKEY_SESSION_COOKIE")
	}
}

// BuildClient creates a ceremony client from the configuration, backed by
// an in-memory software authenticator.
func (c *Config) BuildClient(prompter ceremony.LabelPrompter) (*ceremony.Client, error) {
	if c.Origin == "" {
		return nil, fmt.Errorf("origin is required (flag --origin, PASSKEY_ORIGIN, or config file)")
	}

	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var headers http.Header
	if c.SessionCookie != "" {
		headers = http.Header{"Cookie": []string{c.SessionCookie}}
	}

	var handle []byte
	if c.UserHandle != "" {
		handle = []byte(c.UserHandle)
	}
	auth := softauthn.New(softauthn.Options{
		Origin:     c.Origin,
		UserHandle: handle,
	})

	return ceremony.NewClient(ceremony.ClientParams{
		Config: &ceremony.Config{
			Origin:  c.Origin,
			BaseURL: c.BaseURL,
		},
		Authenticator: auth,
		Prompter:      prompter,
		TokenSource:   ceremony.StaticToken(c.CSRFToken),
		Headers:       headers,
		Logger:        logger,
	})
}
