// Copyright (c) 2026 PoolBet Technologies
//
// This file is part of go-passkey.
//
// go-passkey is licensed under the GNU Affero General Public License v3.0.
// See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/poolbet/go-passkey/pkg/ceremony"
)

// OutputFormat defines the output format type
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
)

// Printer handles formatted output
type Printer struct {
	format OutputFormat
	writer io.Writer
}

// NewPrinter creates a new Printer
func NewPrinter(format string, writer io.Writer) *Printer {
	return &Printer{
		format: OutputFormat(format),
		writer: writer,
	}
}

// PrintOutcome prints a ceremony outcome
func (p *Printer) PrintOutcome(outcome ceremony.Outcome) error {
	switch p.format {
	case OutputFormatJSON:
		body := map[string]interface{}{
			"status": string(outcome.Status),
		}
		if outcome.RedirectURL != "" {
			body["redirect_url"] = outcome.RedirectURL
		}
		if outcome.Message != "" {
			body["message"] = outcome.Message
		}
		return p.printJSON(body)
	case OutputFormatText:
		switch outcome.Status {
		case ceremony.StatusDone:
			fmt.Fprintln(p.writer, "Ceremony completed")
			if outcome.RedirectURL != "" {
				fmt.Fprintf(p.writer, "Redirect: %s\n", outcome.RedirectURL)
			}
		case ceremony.StatusDeclined:
			fmt.Fprintln(p.writer, "Ceremony declined")
		default:
			fmt.Fprintf(p.writer, "Ceremony failed: %s\n", outcome.Message)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintMessage prints an informational message
func (p *Printer) PrintMessage(message string) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"message": message,
		})
	case OutputFormatText:
		fmt.Fprintln(p.writer, message)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintError prints an error
func (p *Printer) PrintError(err error) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		})
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Error: %v\n", err)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// printJSON prints indented JSON
func (p *Printer) printJSON(data interface{}) error {
	encoder := json.NewEncoder(p.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
