// Copyright (c) 2026 PoolBet Technologies
//
// This file is part of go-passkey.
//
// go-passkey is licensed under the GNU Affero General Public License v3.0.
// See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

package correlation

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRunID(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-1")
	assert.Equal(t, "run-1", RunID(ctx))
}

func TestRunIDMissing(t *testing.T) {
	assert.Empty(t, RunID(context.Background()))
	assert.Empty(t, RunID(nil))
}

func TestNewID(t *testing.T) {
	id := NewID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	assert.NotEqual(t, id, NewID())
}

func TestGetOrGenerate(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-1")
	assert.Equal(t, "run-1", GetOrGenerate(ctx))

	generated := GetOrGenerate(context.Background())
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)
}
