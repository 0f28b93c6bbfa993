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
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notifcommons/internal/logging"
	"notifcommons/internal/metrics"
	"notifcommons/pkg/model"
	"notifcommons/pkg/validate"
)

var fixedTime = time.UnixMilli(1767225600000).UTC()

func TestFrameReaderWriter(t *testing.T) {
	var buf bytes.Buffer
	models := sampleModels(t)
	binaryWriter := NewFrameWriter(&buf, false)
	documentWriter := NewFrameWriter(&buf, true)
	for i, m := range models {
		w := binaryWriter
		if i%2 == 1 {
			w = documentWriter
		}
		require.NoError(t, w.Write(m))
	}

	fr := NewFrameReader(&buf, 0)
	for _, want := range models {
		got, err := fr.Next()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := fr.Next()
	assert.ErrorIs(t, err, io.EOF)
	assert.ErrorIs(t, fr.Err(), io.EOF)
}

func TestFrameReaderSurvivesBadPayload(t *testing.T) {
	var logs bytes.Buffer
	logging.SetGlobalOutput(&logs)
	logging.SetGlobalLevel(logging.DEBUG)
	t.Cleanup(func() {
		logging.Configure(logging.DefaultConfig())
	})

	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, KindChannelMessage, FlagDocument, []byte(`{"text_description":"secret","html_description":5}`)))
	msg, err := model.NewChannelMessage("next", nil, nil)
	require.NoError(t, err)
	require.NoError(t, EncodeFrame(&buf, msg, false))

	fr := NewFrameReader(&buf, 0)
	counters := &metrics.Metrics{}
	fr.metrics = counters
	_, err = fr.Next()
	require.Error(t, err)
	assert.NoError(t, fr.Err())

	got, err := fr.Next()
	require.NoError(t, err)
	assert.Equal(t, msg, got)

	assert.Equal(t, uint64(2), counters.FramesRead.Load())
	assert.Equal(t, uint64(1), counters.GetKindMetrics("channel_message").DecodeFailures.Load())

	assert.Contains(t, logs.String(), "channel_message")
	assert.NotContains(t, logs.String(), "secret")
}

func TestFrameReaderHeaderErrorIsSticky(t *testing.T) {
	var buf bytes.Buffer
	msg, err := model.NewChannelMessage("too big for the limit", nil, nil)
	require.NoError(t, err)
	require.NoError(t, EncodeFrame(&buf, msg, false))
	require.NoError(t, EncodeFrame(&buf, msg, false))

	fr := NewFrameReader(&buf, 8)
	_, err = fr.Next()
	assert.ErrorIs(t, err, ErrFrameTooLarge)
	_, err = fr.Next()
	assert.ErrorIs(t, err, ErrFrameTooLarge)
	assert.ErrorIs(t, fr.Err(), ErrFrameTooLarge)
}

func TestFrameWriterCountsPayloadBytes(t *testing.T) {
	var buf bytes.Buffer
	fw := NewFrameWriter(&buf, false)
	counters := &metrics.Metrics{}
	fw.metrics = counters

	msg, err := model.NewChannelMessage("hi", nil, nil)
	require.NoError(t, err)
	require.NoError(t, fw.Write(msg))

	km := counters.GetKindMetrics("channel_message")
	assert.Equal(t, uint64(1), km.FramesWritten.Load())
	assert.Equal(t, uint64(buf.Len()-HeaderSize), km.BytesWritten.Load())
}

func TestFrameWriterRejectsUnknownModel(t *testing.T) {
	fw := NewFrameWriter(io.Discard, false)
	err := fw.Write(&model.Slack{URL: "https://example.com"})
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestFrameReaderRemoteError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteError(&buf, validate.ErrIllegalArgument))
	_, err := NewFrameReader(&buf, 0).Next()
	assert.ErrorIs(t, err, ErrRemote)
}
