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
Package logging provides the structured logger used by notifctl and the
transport layer. Library packages that only encode or decode models never
log; they return errors.

OUTPUT FORMATS:
===============
Text (default):

	2026-01-02T15:04:05.000Z [WARN ] [transport] Dropping frame kind=0x03 size=12

JSON (one object per line):

	{"timestamp":"...","level":"WARN","component":"transport","message":"Dropping frame","fields":{...}}

Fields are key/value pairs passed after the message. Child loggers created
with With carry their fields into every entry.
*/
package logging

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
)

// Level represents the severity of a log message.
type Level int

const (
	// DEBUG level for detailed debugging information.
	DEBUG Level = iota
	// INFO level for general operational information.
	INFO
	// WARN level for warning conditions.
	WARN
	// ERROR level for error conditions.
	ERROR
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a string into a Level. Unknown names map to INFO.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return DEBUG
	case "info":
		return INFO
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}

// Entry represents a single log entry with all its metadata.
type Entry struct {
	Timestamp time.Time              `json:"timestamp"`
	Level     string                 `json:"level"`
	Component string                 `json:"component"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

var entryJSON = jsoniter.Config{EscapeHTML: false, SortMapKeys: true}.Froze()

// Logger provides structured logging capabilities.
type Logger struct {
	component string
	fields    []interface{}
	mu        *sync.Mutex
}

// Config holds logger configuration options.
type Config struct {
	Level    Level
	Output   io.Writer
	JSONMode bool
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:    INFO,
		Output:   os.Stderr,
		JSONMode: false,
	}
}

var (
	globalConfig = DefaultConfig()
	globalMu     sync.RWMutex
)

// Configure replaces the global logger configuration.
func Configure(cfg Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	globalConfig = cfg
}

// SetGlobalLevel sets the global log level.
func SetGlobalLevel(level Level) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig.Level = level
}

// SetGlobalOutput sets the global log output.
func SetGlobalOutput(w io.Writer) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig.Output = w
}

// SetJSONMode enables or disables JSON output mode.
func SetJSONMode(enabled bool) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig.JSONMode = enabled
}

// NewLogger creates a new Logger for the specified component.
func NewLogger(component string) *Logger {
	return &Logger{component: component, mu: &sync.Mutex{}}
}

// With returns a child logger that adds the given key/value pairs to every
// entry. The parent is unchanged.
func (l *Logger) With(args ...interface{}) *Logger {
	return &Logger{
		component: l.component,
		fields:    append(slices.Clip(l.fields), args...),
		mu:        l.mu,
	}
}

// Enabled reports whether entries at level would be written.
func (l *Logger) Enabled(level Level) bool {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return level >= globalConfig.Level
}

func buildFields(args []interface{}) map[string]interface{} {
	if len(args) == 0 {
		return nil
	}
	fields := make(map[string]interface{}, len(args)/2+1)
	for i := 0; i < len(args)-1; i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprintf("arg%d", i)
		}
		if err, isErr := args[i+1].(error); isErr {
			fields[key] = err.Error()
			continue
		}
		fields[key] = args[i+1]
	}
	if len(args)%2 != 0 {
		fields["extra"] = args[len(args)-1]
	}
	return fields
}

// log writes a log entry at the specified level.
func (l *Logger) log(level Level, msg string, args ...interface{}) {
	globalMu.RLock()
	cfg := globalConfig
	globalMu.RUnlock()

	if level < cfg.Level {
		return
	}

	entry := Entry{
		Timestamp: time.Now().UTC(),
		Level:     level.String(),
		Component: l.component,
		Message:   msg,
		Fields:    buildFields(append(slices.Clip(l.fields), args...)),
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if cfg.JSONMode {
		writeJSON(cfg.Output, entry)
	} else {
		writeText(cfg.Output, entry)
	}
}

func writeJSON(w io.Writer, entry Entry) {
	data, err := entryJSON.Marshal(entry)
	if err != nil {
		fmt.Fprintf(w, "ERROR: failed to marshal log entry: %v\n", err)
		return
	}
	fmt.Fprintln(w, string(data))
}

var levelColors = map[string]string{
	"DEBUG": "\033[36m",
	"INFO":  "\033[32m",
	"WARN":  "\033[33m",
	"ERROR": "\033[31m",
}

// writeText writes the entry in human-readable text format with fields in
// key order.
func writeText(w io.Writer, entry Entry) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s[%-5s]\033[0m [%s] %s",
		entry.Timestamp.Format("2006-01-02T15:04:05.000Z"),
		lo.ValueOr(levelColors, entry.Level, "\033[0m"),
		entry.Level, entry.Component, entry.Message)

	keys := lo.Keys(entry.Fields)
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%v", k, entry.Fields[k])
	}
	fmt.Fprintln(w, sb.String())
}

// Debug logs a message at DEBUG level.
func (l *Logger) Debug(msg string, args ...interface{}) {
	l.log(DEBUG, msg, args...)
}

// Info logs a message at INFO level.
func (l *Logger) Info(msg string, args ...interface{}) {
	l.log(INFO, msg, args...)
}

// Warn logs a message at WARN level.
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.log(WARN, msg, args...)
}

// Error logs a message at ERROR level.
func (l *Logger) Error(msg string, args ...interface{}) {
	l.log(ERROR, msg, args...)
}
