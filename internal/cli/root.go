// Copyright (c) 2026 PoolBet Technologies
//
// This file is part of go-passkey.
//
// go-passkey is licensed under the GNU Affero General Public License v3.0.
// See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global configuration
	globalConfig *Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "passkey",
	Short: "go-passkey CLI - Passwordless authentication ceremonies",
	Long: `go-passkey CLI drives WebAuthn (FIDO2) registration and
authentication ceremonies against a relying party from the command
line, using an in-memory software authenticator.

It speaks the same two-phase wire protocol a browser client would:
fetch options from the begin endpoint, perform the credential
operation, and upload the signed result to the complete endpoint.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Initialize global config
	globalConfig = NewConfig()

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&globalConfig.ConfigFile, "config", "",
		"config file (default is $HOME/.passkey.yaml)")
	rootCmd.PersistentFlags().StringVar(&globalConfig.Origin, "origin", "",
		"web origin of the relying party, e.g. https://bets.example.com")
	rootCmd.PersistentFlags().StringVar(&globalConfig.BaseURL, "base-url", "",
		"relying-party base URL (defaults to the origin)")
	rootCmd.PersistentFlags().StringVar(&globalConfig.CSRFToken, "csrf-token", "",
		"anti-forgery token sent with every request")
	rootCmd.PersistentFlags().StringVar(&globalConfig.SessionCookie, "session-cookie", "",
		"session cookie attached to every request, e.g. sessionid=abc")
	rootCmd.PersistentFlags().StringVarP(&globalConfig.OutputFormat, "output", "o", "text",
		"output format (text, json)")
	rootCmd.PersistentFlags().BoolVarP(&globalConfig.Verbose, "verbose", "v", false,
		"verbose output")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
}

// getConfig returns the global configuration
func getConfig() *Config {
	return globalConfig
}

// handleError prints an error and exits with code 1
func handleError(err error) {
	printer := NewPrinter(globalConfig.OutputFormat, os.Stderr)
	_ = printer.PrintError(err) // Error printing to stderr is best-effort
	os.Exit(1)
}

// printVerbose prints a message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if globalConfig.Verbose {
		fmt.Fprintf(os.Stderr, "[VERBOSE] "+format+"\n", args...)
	}
}
