/*
 * Copyright (c) 2026 Firefly Software Solutions Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

/*
Package cli provides the terminal output helpers used by notifctl.

COLORS:
=======
ANSI escape codes for terminal text formatting. Colors are disabled when
NO_COLOR is set or the output is not a terminal.

ICONS:
======
- IconSuccess (✓), IconError (✗), IconWarning (⚠)
- IconInfo (ℹ), IconArrow (→)

USAGE:
======

	p := cli.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())
	p.Success("decoded %s", "config_info")
	p.KeyValue("format", "stream")
*/
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ANSI color codes for terminal output.
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

// Icons for CLI output
const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "⚠"
	IconInfo    = "ℹ"
	IconArrow   = "→"
)

// Printer writes decorated messages to an output and an error stream.
type Printer struct {
	out    io.Writer
	errOut io.Writer
	colors bool
}

// NewPrinter creates a printer. Colors start enabled only when out is a
// terminal and NO_COLOR is unset.
func NewPrinter(out, errOut io.Writer) *Printer {
	return &Printer{out: out, errOut: errOut, colors: colorsWanted(out)}
}

func colorsWanted(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// SetColorsEnabled enables or disables color output.
func (p *Printer) SetColorsEnabled(enabled bool) {
	p.colors = enabled
}

func (p *Printer) colorize(color, text string) string {
	if !p.colors {
		return text
	}
	return color + text + Reset
}

// Success prints a success message.
func (p *Printer) Success(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.colorize(Green, IconSuccess+" "+fmt.Sprintf(format, args...)))
}

// Error prints an error message to the error stream.
func (p *Printer) Error(format string, args ...interface{}) {
	fmt.Fprintln(p.errOut, p.colorize(Red, IconError+" "+fmt.Sprintf(format, args...)))
}

// ErrorWithHint prints an error message with a helpful hint.
func (p *Printer) ErrorWithHint(message string, hint string) {
	fmt.Fprintln(p.errOut, p.colorize(Red, IconError+" "+message))
	if hint != "" {
		fmt.Fprintln(p.errOut, p.colorize(Dim, "  "+IconArrow+" Hint: "+hint))
	}
}

// Warning prints a warning message.
func (p *Printer) Warning(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.colorize(Yellow, IconWarning+" "+fmt.Sprintf(format, args...)))
}

// Info prints an info message.
func (p *Printer) Info(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.colorize(Cyan, IconInfo+" "+fmt.Sprintf(format, args...)))
}

// Header prints a header/title.
func (p *Printer) Header(text string) {
	fmt.Fprintln(p.out, p.colorize(Bold+Cyan, text))
}

// KeyValue prints a key-value pair.
func (p *Printer) KeyValue(key string, value interface{}) {
	fmt.Fprintf(p.out, "  %s: %v\n", p.colorize(Dim, key), value)
}

// Separator prints a horizontal line.
func (p *Printer) Separator() {
	fmt.Fprintln(p.out, p.colorize(Dim, strings.Repeat("─", 40)))
}

// Example prints an example command.
func (p *Printer) Example(description, command string) {
	fmt.Fprintf(p.out, "  %s\n", p.colorize(Dim, "# "+description))
	fmt.Fprintf(p.out, "  %s\n", p.colorize(Cyan, command))
}
