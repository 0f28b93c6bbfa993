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
Package banner prints the notifctl banner and the effective configuration
shown by `notifctl version --verbose`.

USAGE:
======

	banner.PrintTo(w)               // banner with version
	banner.PrintWithConfigTo(w, cfg) // banner plus configuration summary
*/
package banner

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"notifcommons/internal/config"
	"notifcommons/pkg/serde"
)

const bannerText = `             _   _  __      _   _
 _ __   ___ | |_(_)/ _| ___| |_| |
| '_ \ / _ \| __| | |_ / __| __| |
| | | | (_) | |_| |  _| (__| |_| |
|_| |_|\___/ \__|_|_|  \___|\__|_|
`

// ANSI escape codes for terminal text formatting.
const (
	AnsiGreen  = "\033[32m"
	AnsiYellow = "\033[33m"
	AnsiCyan   = "\033[36m"
	AnsiReset  = "\033[0m"
	AnsiBold   = "\033[1m"
	AnsiDim    = "\033[2m"
)

// Version information
const (
	Version   = "1.0.0"
	Copyright = "Copyright (c) 2026 Firefly Software Solutions Inc."
	License   = "Licensed under Apache License 2.0"
)

// GetBanner returns the raw ASCII banner text.
func GetBanner() string {
	return bannerText
}

// GetBannerLines returns the banner as individual lines.
func GetBannerLines() []string {
	return strings.Split(strings.TrimRight(bannerText, "\n"), "\n")
}

// VersionString returns the one-line version used by `notifctl version`.
func VersionString() string {
	return fmt.Sprintf("notifctl v%s (%s, %s/%s)", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// PrintTo writes the banner to the specified writer.
func PrintTo(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, AnsiCyan+AnsiBold)
	for _, line := range GetBannerLines() {
		fmt.Fprintln(w, "  "+line)
	}
	fmt.Fprintln(w, AnsiReset)
	fmt.Fprintln(w, AnsiGreen+AnsiBold+"  notifctl"+AnsiReset+" "+AnsiDim+"v"+Version+AnsiReset)
	fmt.Fprintln(w, AnsiDim+"  Notification model codec tool"+AnsiReset)
	fmt.Fprintln(w)
	fmt.Fprintln(w, AnsiDim+"  "+Copyright+AnsiReset)
	fmt.Fprintln(w)
}

// PrintWithConfigTo writes the banner followed by the effective configuration.
func PrintWithConfigTo(w io.Writer, cfg *config.Config) {
	PrintTo(w)

	const lineWidth = 78
	fmt.Fprint(w, "  "+AnsiDim+"Config: "+AnsiReset)
	if cfg.ConfigFile != "" {
		fmt.Fprintln(w, AnsiYellow+cfg.ConfigFile+AnsiReset)
	} else {
		fmt.Fprintln(w, AnsiDim+"defaults + environment"+AnsiReset)
	}
	fmt.Fprintln(w)

	printSectionHeader(w, "Logging", lineWidth)
	printRow2(w, fmtKV("Level", cfg.LogLevel), fmtKV("JSON", fmtEnabled("json", cfg.LogJSON)))
	fmt.Fprintln(w)

	printSectionHeader(w, "Codec", lineWidth)
	printRow3(w,
		fmtKV("Format", AnsiGreen+cfg.Codec.DefaultFormat+AnsiReset),
		fmtKV("Frame", formatBytes(int64(cfg.Codec.MaxFrameSize))),
		fmtKV("Document", formatBytes(cfg.Codec.MaxDocumentSize)))
	printRow2(w, fmtKV("Pretty", fmtEnabled("pretty", cfg.Codec.PrettyDocuments)),
		fmtKV("Formats", strings.Join(serde.Names(), ", ")))
	fmt.Fprintln(w)
}

func printSectionHeader(w io.Writer, title string, width int) {
	titleLen := len(title) + 4 // "[ title ]"
	leftPad := 2
	rightPad := max(width-leftPad-titleLen, 0)
	fmt.Fprintf(w, "  %s[ %s%s%s ]%s%s\n",
		AnsiDim+strings.Repeat("-", leftPad),
		AnsiReset+AnsiCyan+AnsiBold, title, AnsiReset+AnsiDim,
		strings.Repeat("-", rightPad),
		AnsiReset)
}

func fmtKV(key, value string) string {
	return fmt.Sprintf("%s%s:%s %s", AnsiDim, key, AnsiReset, value)
}

func fmtEnabled(name string, enabled bool) string {
	if enabled {
		return AnsiGreen + name + AnsiReset
	}
	return AnsiDim + name + AnsiReset
}

func printRow3(w io.Writer, col1, col2, col3 string) {
	fmt.Fprintf(w, "  %-32s %-26s %s\n", col1, col2, col3)
}

func printRow2(w io.Writer, col1, col2 string) {
	fmt.Fprintf(w, "  %-40s %s\n", col1, col2)
}

func formatBytes(bytes int64) string {
	if bytes == 0 {
		return "unlimited"
	}
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.0f%cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
