// Copyright (c) 2026 PoolBet Technologies
//
// This file is part of go-passkey.
//
// go-passkey is licensed under the GNU Affero General Public License v3.0.
// See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/poolbet/go-passkey/pkg/ceremony"
)

var registerDeviceName string

// registerCmd runs a registration ceremony
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new passkey",
	Long: `Run a registration ceremony for the signed-in account.

The relying party issues creation options, the software authenticator
mints a credential, and the attestation is uploaded together with a
device name. Requires an authenticated session (--session-cookie) and
an anti-forgery token (--csrf-token).`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := getConfig()
		if err := cfg.Load(); err != nil {
			handleError(err)
			return
		}
		printer := NewPrinter(cfg.OutputFormat, os.Stdout)

		prompter := ceremony.StaticLabel(registerDeviceName)
		if registerDeviceName == "" {
			prompter = ceremony.PromptFunc(promptDeviceName(cmd))
		}

		client, err := cfg.BuildClient(prompter)
		if err != nil {
			handleError(err)
			return
		}

		printVerbose("Starting registration ceremony against %s", cfg.Origin)
		outcome := client.Register(context.Background())
		if err := printer.PrintOutcome(outcome); err != nil {
			handleError(err)
			return
		}
		if outcome.Status == ceremony.StatusFailed {
			os.Exit(1)
		}
	},
}

// promptDeviceName reads the device name interactively. An empty answer
// declines the ceremony.
func promptDeviceName(cmd *cobra.Command) func(ctx context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		fmt.Fprint(cmd.OutOrStdout(), "Name this device (empty to cancel): ")
		reader := bufio.NewReader(cmd.InOrStdin())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return "", ceremony.ErrUserDeclined
		}
		return strings.TrimSpace(line), nil
	}
}

func init() {
	registerCmd.Flags().StringVar(&registerDeviceName, "device-name", "",
		"device name for the new passkey (prompted when empty)")
}
