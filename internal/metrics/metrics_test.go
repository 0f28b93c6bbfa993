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

package metrics

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	require.NotNil(t, Get())
	assert.Same(t, Get(), Get())
}

func TestRecordRead(t *testing.T) {
	m := &Metrics{}

	m.RecordRead("channel_message", 100)
	m.RecordRead("channel_message", 20)

	assert.Equal(t, uint64(2), m.FramesRead.Load())
	km := m.GetKindMetrics("channel_message")
	assert.Equal(t, uint64(2), km.FramesRead.Load())
	assert.Equal(t, uint64(120), km.BytesRead.Load())
	assert.Zero(t, km.FramesWritten.Load())
}

func TestRecordWrite(t *testing.T) {
	m := &Metrics{}

	m.RecordWrite("config_info", 200)

	assert.Equal(t, uint64(1), m.FramesWritten.Load())
	km := m.GetKindMetrics("config_info")
	assert.Equal(t, uint64(1), km.FramesWritten.Load())
	assert.Equal(t, uint64(200), km.BytesWritten.Load())
}

func TestRecordDecodeFailure(t *testing.T) {
	m := &Metrics{}

	m.RecordDecodeFailure("attachment")
	m.RecordDecodeFailure("attachment")

	assert.Equal(t, uint64(2), m.DecodeFailures.Load())
	assert.Equal(t, uint64(2), m.GetKindMetrics("attachment").DecodeFailures.Load())
}

func TestGetKindMetrics(t *testing.T) {
	m := &Metrics{}

	km1 := m.GetKindMetrics("attachment")
	km2 := m.GetKindMetrics("attachment")
	assert.Same(t, km1, km2)

	km3 := m.GetKindMetrics("config_info")
	assert.NotSame(t, km1, km3)
	assert.Equal(t, []string{"attachment", "config_info"}, m.Kinds())
}

func TestConcurrentRecords(t *testing.T) {
	m := &Metrics{}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.RecordRead("channel_message", 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, uint64(800), m.FramesRead.Load())
	assert.Equal(t, uint64(800), m.GetKindMetrics("channel_message").BytesRead.Load())
}

func TestWriteText(t *testing.T) {
	m := &Metrics{}
	m.RecordRead("channel_message", 5)
	m.RecordWrite("config_info", 7)
	m.RecordDecodeFailure("channel_message")

	var buf bytes.Buffer
	m.WriteText(&buf)
	out := buf.String()

	assert.Contains(t, out, "# TYPE notif_frames_read_total counter\n")
	assert.Contains(t, out, "notif_frames_read_total 1\n")
	assert.Contains(t, out, "notif_frames_written_total 1\n")
	assert.Contains(t, out, "notif_decode_failures_total 1\n")
	assert.Contains(t, out, "notif_kind_bytes_read_total{kind=\"channel_message\"} 5\n")
	assert.Contains(t, out, "notif_kind_bytes_written_total{kind=\"config_info\"} 7\n")
	assert.Contains(t, out, "notif_kind_decode_failures_total{kind=\"config_info\"} 0\n")
}
