// Copyright (c) 2026 PoolBet Technologies
//
// This file is part of go-passkey.
//
// go-passkey is licensed under the GNU Affero General Public License v3.0.
// See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poolbet/go-passkey/pkg/ceremony"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passkey.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
origin: https://bets.example.com
csrf_token: file-token
session_cookie: sessionid=abc
`), 0o600))

	cfg := NewConfig()
	cfg.ConfigFile = path
	require.NoError(t, cfg.Load())

	assert.Equal(t, "https://bets.example.com", cfg.Origin)
	assert.Equal(t, "file-token", cfg.CSRFToken)
	assert.Equal(t, "sessionid=abc", cfg.SessionCookie)
}

func TestLoadFlagsWinOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passkey.yaml")
	require.NoError(t, os.WriteFile(path, []byte("origin: https://file.example.com\n"), 0o600))

	cfg := NewConfig()
	cfg.ConfigFile = path
	cfg.Origin = "https://flag.example.com"
	require.NoError(t, cfg.Load())

	assert.Equal(t, "https://flag.example.com", cfg.Origin)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PASSKEY_ORIGIN", "https://env.example.com")
	t.Setenv("PASSKEY_CSRF_TOKEN", "env-token")

	cfg := NewConfig()
	cfg.ConfigFile = filepath.Join(t.TempDir(), "missing.yaml")
	err := cfg.Load()
	require.Error(t, err) // explicitly named file must exist

	cfg = NewConfig()
	cfg.ConfigFile = ""
	require.NoError(t, cfg.loadFile(filepath.Join(t.TempDir(), "missing.yaml"), false))
	cfg.applyEnv()

	assert.Equal(t, "https://env.example.com", cfg.Origin)
	assert.Equal(t, "env-token", cfg.CSRFToken)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passkey.yaml")
	require.NoError(t, os.WriteFile(path, []byte("origin: [unclosed"), 0o600))

	cfg := NewConfig()
	cfg.ConfigFile = path
	assert.Error(t, cfg.Load())
}

func TestBuildClient(t *testing.T) {
	cfg := NewConfig()
	cfg.Origin = "https://bets.example.com"
	cfg.CSRFToken = "token"

	client, err := cfg.BuildClient(ceremony.StaticLabel("Work Laptop"))
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestBuildClientRequiresOrigin(t *testing.T) {
	cfg := NewConfig()

	_, err := cfg.BuildClient(nil)
	assert.ErrorContains(t, err, "origin is required")
}
