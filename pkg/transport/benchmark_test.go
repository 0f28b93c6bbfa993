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

package transport

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"notifcommons/pkg/model"
	"notifcommons/pkg/stream"
	"notifcommons/pkg/xcontent"
)

func benchmarkMessage(b *testing.B, size int) *model.ChannelMessage {
	b.Helper()
	att, err := model.NewAttachment("payload.bin", "base64", strings.Repeat("A", size), nil)
	if err != nil {
		b.Fatalf("NewAttachment failed: %v", err)
	}
	html := "<p>benchmark message</p>"
	msg, err := model.NewChannelMessage("benchmark message", &html, att)
	if err != nil {
		b.Fatalf("NewChannelMessage failed: %v", err)
	}
	return msg
}

// BenchmarkFrameWrite benchmarks binary frame encoding
func BenchmarkFrameWrite(b *testing.B) {
	msg := benchmarkMessage(b, 256)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var buf bytes.Buffer
		if err := EncodeFrame(&buf, msg, false); err != nil {
			b.Fatalf("EncodeFrame failed: %v", err)
		}
	}
}

// BenchmarkFrameRead benchmarks binary frame decoding
func BenchmarkFrameRead(b *testing.B) {
	encoded, err := Marshal(benchmarkMessage(b, 256), false)
	if err != nil {
		b.Fatalf("Marshal failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Unmarshal(encoded); err != nil {
			b.Fatalf("Unmarshal failed: %v", err)
		}
	}
}

// BenchmarkMessageSizes compares the binary and document forms across
// attachment sizes.
func BenchmarkMessageSizes(b *testing.B) {
	sizes := []int{64, 256, 1024, 4096, 16384}

	for _, size := range sizes {
		msg := benchmarkMessage(b, size)

		b.Run(fmt.Sprintf("Stream_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := stream.Decode(stream.Encode(msg), model.ReadChannelMessage); err != nil {
					b.Fatalf("stream round trip failed: %v", err)
				}
			}
		})

		b.Run(fmt.Sprintf("Document_%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				doc, err := xcontent.Marshal(msg, false)
				if err != nil {
					b.Fatalf("Marshal failed: %v", err)
				}
				if _, err := xcontent.Unmarshal(doc, model.ParseChannelMessage); err != nil {
					b.Fatalf("Unmarshal failed: %v", err)
				}
			}
		})
	}
}
