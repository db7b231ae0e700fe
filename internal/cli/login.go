// Copyright (c) 2026 PoolBet Technologies
//
// This file is part of go-passkey.
//
// go-passkey is licensed under the GNU Affero General Public License v3.0.
// See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/poolbet/go-passkey/pkg/ceremony"
)

var loginUsername string

// loginCmd runs an authentication ceremony
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with a passkey",
	Long: `Run an authentication ceremony against the relying party.

With --username the relying party narrows the ceremony to that
account's credentials. Without it the ceremony is usernameless: the
authenticator resolves a discoverable credential and the relying party
identifies the account from its user handle.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := getConfig()
		if err := cfg.Load(); err != nil {
			handleError(err)
			return
		}
		printer := NewPrinter(cfg.OutputFormat, os.Stdout)

		client, err := cfg.BuildClient(nil)
		if err != nil {
			handleError(err)
			return
		}

		printVerbose("Starting authentication ceremony against %s", cfg.Origin)
		outcome := client.Login(context.Background(), loginUsername)
		if err := printer.PrintOutcome(outcome); err != nil {
			handleError(err)
			return
		}
		if outcome.Status == ceremony.StatusFailed {
			os.Exit(1)
		}
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "",
		"username hint (empty for a usernameless ceremony)")
}
