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
Package metrics counts frames moving through the transport codec.

COUNTERS:
=========
- Frames: read and written, per model kind
- Bytes: payload bytes read and written, per model kind
- Failures: payloads that failed to decode, per model kind

TEXT FORMAT:
============
WriteText emits the counters in Prometheus text exposition format:

	notif_frames_read_total{kind="channel_message"} 12
	notif_frames_written_total{kind="config_info"} 3
	notif_decode_failures_total{kind="attachment"} 1
*/
package metrics

import (
	"fmt"
	"io"
	"slices"
	"sync"
	"sync/atomic"
)

// Metrics holds the codec counters.
type Metrics struct {
	FramesRead     atomic.Uint64
	FramesWritten  atomic.Uint64
	DecodeFailures atomic.Uint64

	kindMetrics sync.Map // map[string]*KindMetrics
}

// KindMetrics holds the counters of one model kind.
type KindMetrics struct {
	FramesRead     atomic.Uint64
	FramesWritten  atomic.Uint64
	BytesRead      atomic.Uint64
	BytesWritten   atomic.Uint64
	DecodeFailures atomic.Uint64
}

// Global metrics instance
var globalMetrics = &Metrics{}

// Get returns the global metrics instance.
func Get() *Metrics {
	return globalMetrics
}

// GetKindMetrics returns the counters for a model kind.
func (m *Metrics) GetKindMetrics(kind string) *KindMetrics {
	if km, ok := m.kindMetrics.Load(kind); ok {
		return km.(*KindMetrics)
	}
	km := &KindMetrics{}
	actual, _ := m.kindMetrics.LoadOrStore(kind, km)
	return actual.(*KindMetrics)
}

// RecordRead records a frame read with a payload of the given size.
func (m *Metrics) RecordRead(kind string, bytes int) {
	m.FramesRead.Add(1)

	km := m.GetKindMetrics(kind)
	km.FramesRead.Add(1)
	km.BytesRead.Add(uint64(bytes))
}

// RecordWrite records a frame written with a payload of the given size.
func (m *Metrics) RecordWrite(kind string, bytes int) {
	m.FramesWritten.Add(1)

	km := m.GetKindMetrics(kind)
	km.FramesWritten.Add(1)
	km.BytesWritten.Add(uint64(bytes))
}

// RecordDecodeFailure records a payload that did not decode.
func (m *Metrics) RecordDecodeFailure(kind string) {
	m.DecodeFailures.Add(1)
	m.GetKindMetrics(kind).DecodeFailures.Add(1)
}

// Kinds lists the kinds seen so far in sorted order.
func (m *Metrics) Kinds() []string {
	var kinds []string
	m.kindMetrics.Range(func(key, _ interface{}) bool {
		kinds = append(kinds, key.(string))
		return true
	})
	slices.Sort(kinds)
	return kinds
}

// WriteText writes every counter in Prometheus text format.
func (m *Metrics) WriteText(w io.Writer) {
	fmt.Fprintf(w, "# HELP notif_frames_read_total Total frames read\n")
	fmt.Fprintf(w, "# TYPE notif_frames_read_total counter\n")
	fmt.Fprintf(w, "notif_frames_read_total %d\n", m.FramesRead.Load())

	fmt.Fprintf(w, "# HELP notif_frames_written_total Total frames written\n")
	fmt.Fprintf(w, "# TYPE notif_frames_written_total counter\n")
	fmt.Fprintf(w, "notif_frames_written_total %d\n", m.FramesWritten.Load())

	fmt.Fprintf(w, "# HELP notif_decode_failures_total Total payloads that failed to decode\n")
	fmt.Fprintf(w, "# TYPE notif_decode_failures_total counter\n")
	fmt.Fprintf(w, "notif_decode_failures_total %d\n", m.DecodeFailures.Load())

	kinds := m.Kinds()
	perKind := []struct {
		name, help string
		value      func(*KindMetrics) uint64
	}{
		{"notif_kind_frames_read_total", "Frames read per kind", func(km *KindMetrics) uint64 { return km.FramesRead.Load() }},
		{"notif_kind_bytes_read_total", "Payload bytes read per kind", func(km *KindMetrics) uint64 { return km.BytesRead.Load() }},
		{"notif_kind_frames_written_total", "Frames written per kind", func(km *KindMetrics) uint64 { return km.FramesWritten.Load() }},
		{"notif_kind_bytes_written_total", "Payload bytes written per kind", func(km *KindMetrics) uint64 { return km.BytesWritten.Load() }},
		{"notif_kind_decode_failures_total", "Decode failures per kind", func(km *KindMetrics) uint64 { return km.DecodeFailures.Load() }},
	}
	for _, c := range perKind {
		fmt.Fprintf(w, "# HELP %s %s\n", c.name, c.help)
		fmt.Fprintf(w, "# TYPE %s counter\n", c.name)
		for _, kind := range kinds {
			fmt.Fprintf(w, "%s{kind=%q} %d\n", c.name, kind, c.value(m.GetKindMetrics(kind)))
		}
	}
}
