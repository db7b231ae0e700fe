// Copyright (c) 2026 PoolBet Technologies
//
// This file is part of go-passkey.
//
// go-passkey is licensed under the GNU Affero General Public License v3.0.
// See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

package main

import (
	"fmt"
	"os"

	"github.com/poolbet/go-passkey/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
