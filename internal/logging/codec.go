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

package logging

import (
	"fmt"
	"time"
)

// slowConversion is the latency above which a conversion is logged at WARN.
const slowConversion = time.Second

// CodecLogger logs codec events at the process edges: frames read off a
// connection and conversions run by notifctl. Payload contents are never
// logged because channel data carries webhook URLs and header secrets.
type CodecLogger struct {
	logger *Logger
}

// NewCodecLogger creates a new codec logger.
func NewCodecLogger(logger *Logger) *CodecLogger {
	return &CodecLogger{logger: logger}
}

// LogFrame logs a frame that was read or written.
func (cl *CodecLogger) LogFrame(direction, kind string, flags byte, size int) {
	cl.logger.Debug("Frame",
		"direction", direction,
		"kind", kind,
		"flags", fmt.Sprintf("0x%02x", flags),
		"size", size,
	)
}

// LogDecodeFailure logs a payload that could not be decoded.
func (cl *CodecLogger) LogDecodeFailure(format, kind string, data []byte, err error) {
	cl.logger.Warn("Decode failed",
		"format", format,
		"kind", kind,
		"payload", SanitizePayload(data),
		"error", err,
	)
}

// LogConversion logs a completed format conversion.
func (cl *CodecLogger) LogConversion(from, to string, inBytes, outBytes int, latency time.Duration) {
	level := DEBUG
	if latency > slowConversion {
		level = WARN
	}
	cl.logger.log(level, "Converted",
		"from", from,
		"to", to,
		"in_bytes", inBytes,
		"out_bytes", outBytes,
		"latency_ms", float64(latency.Microseconds())/1000,
	)
}

// SanitizePayload describes a payload for logging without exposing content.
func SanitizePayload(data []byte) string {
	if len(data) == 0 {
		return "[empty]"
	}
	return fmt.Sprintf("[%d bytes]", len(data))
}
