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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notifcommons/pkg/action"
	"notifcommons/pkg/model"
	"notifcommons/pkg/transport"
)

func run(t *testing.T, stdin []byte, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("NOTIF_CONFIG", "")
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetIn(bytes.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestSampleEveryKind(t *testing.T) {
	for _, k := range transport.Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			out, _, err := run(t, nil, "sample", "--kind", k.String(), "--format", "json")
			require.NoError(t, err)

			_, _, err = run(t, []byte(out), "validate", "--kind", k.String())
			assert.NoError(t, err)
		})
	}
}

func TestConvertRoundTrip(t *testing.T) {
	doc, _, err := run(t, nil, "sample", "--kind", "config_search_result", "--format", "json")
	require.NoError(t, err)

	dir := t.TempDir()
	bin := filepath.Join(dir, "result.bin")
	_, _, err = run(t, []byte(doc), "convert", "--kind", "config_search_result", "--from", "json", "--to", "stream", "-o", bin)
	require.NoError(t, err)

	back, _, err := run(t, nil, "convert", "--kind", "config_search_result", "--from", "stream", "--to", "json", bin)
	require.NoError(t, err)
	assert.JSONEq(t, doc, back)
}

func TestConvertFrames(t *testing.T) {
	msg, err := model.NewChannelMessage("deploy done", nil, nil)
	require.NoError(t, err)
	frame, err := transport.Marshal(msg, false)
	require.NoError(t, err)

	out, _, err := run(t, frame, "convert", "--from", "frame", "--to", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"text_description":"deploy done"}`, out)

	_, stderr, err := run(t, frame, "convert", "--from", "frame", "--kind", "attachment", "--to", "json")
	require.Error(t, err)
	assert.Contains(t, stderr, "frame holds channel_message")

	hexOut, _, err := run(t, []byte(`{"compact":true}`), "convert", "--kind", "plugin_features_request", "--to", "frame", "--hex")
	require.NoError(t, err)
	assert.Equal(t, "4e0110000000000101\n", hexOut)
}

func TestConvertFrameRespectsConfiguredLimit(t *testing.T) {
	msg, err := model.NewChannelMessage(strings.Repeat("x", 64), nil, nil)
	require.NoError(t, err)
	frame, err := transport.Marshal(msg, false)
	require.NoError(t, err)

	t.Setenv("NOTIF_CODEC_MAX_FRAME_SIZE", "16")
	_, _, err = run(t, frame, "convert", "--from", "frame", "--to", "json")
	require.Error(t, err)
	assert.ErrorIs(t, err, transport.ErrFrameTooLarge)

	t.Setenv("NOTIF_CODEC_MAX_FRAME_SIZE", "128")
	out, _, err := run(t, frame, "convert", "--from", "frame", "--to", "json")
	require.NoError(t, err)
	assert.Contains(t, out, strings.Repeat("x", 64))
}

func TestConvertRequiresKind(t *testing.T) {
	_, _, err := run(t, []byte(`{}`), "convert", "--from", "json", "--to", "stream")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--kind is required")

	_, stderr, err := run(t, []byte(`{}`), "convert", "--kind", "bogus", "--to", "stream")
	require.Error(t, err)
	assert.ErrorIs(t, err, transport.ErrUnknownKind)
	assert.Contains(t, stderr, "channel_message")
}

func TestValidateReportsCategory(t *testing.T) {
	tests := []struct {
		name     string
		kind     string
		format   string
		input    string
		category string
	}{
		{"bare string", "plugin_features_request", "json", `"sample message"`, "parse error"},
		{"empty text", "channel_message", "json", `{"text_description":""}`, "illegal argument"},
		{"missing text", "channel_message", "json", `{"html_description":"<b>x</b>"}`, "illegal argument"},
		{"truncated stream", "channel_message", "stream", "\x05ab", "stream corruption"},
		{"unknown config type", "plugin_features_response", "json", `{"allowed_config_type_list":["pager"],"plugin_features":{}}`, "parse error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := run(t, []byte(tt.input), "validate", "--kind", tt.kind, "--format", tt.format)
			require.Error(t, err)
			assert.Contains(t, stderr, tt.category)
		})
	}
}

func TestValidateSuccess(t *testing.T) {
	out, _, err := run(t, []byte(`{"text_description":"hello","extra":{"nested":[1,2]}}`), "validate", "--kind", "channel_message")
	require.NoError(t, err)
	assert.Contains(t, out, "valid channel_message")
}

func TestFrames(t *testing.T) {
	req := action.NewGetPluginFeaturesRequest(true)
	resp, err := action.NewGetPluginFeaturesResponse([]string{"slack"}, map[string]string{"tooltip_support": "true"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, transport.EncodeFrame(&buf, req, false))
	require.NoError(t, transport.WriteFrame(&buf, transport.KindChannelMessage, 0, []byte{0x00}))
	require.NoError(t, transport.EncodeFrame(&buf, resp, true))

	_, _, err = run(t, buf.Bytes(), "frames")
	require.Error(t, err)

	out, stderr, err := run(t, buf.Bytes(), "frames", "--keep-going", "--stats")
	require.NoError(t, err)
	var docs []string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "{") {
			docs = append(docs, line)
		}
	}
	require.Len(t, docs, 2)
	assert.JSONEq(t, `{"compact":true}`, docs[0])
	assert.JSONEq(t, `{"allowed_config_type_list":["slack"],"plugin_features":{"tooltip_support":"true"}}`, docs[1])
	assert.Contains(t, stderr, "frame 2")
	assert.Contains(t, out, "1 of 3 frames failed")
	assert.Contains(t, stderr, "# TYPE notif_frames_read_total counter")
	assert.Contains(t, stderr, `notif_kind_decode_failures_total{kind="channel_message"}`)
}

func TestFramesRespectsConfiguredLimit(t *testing.T) {
	msg, err := model.NewChannelMessage(strings.Repeat("x", 64), nil, nil)
	require.NoError(t, err)
	frame, err := transport.Marshal(msg, false)
	require.NoError(t, err)

	t.Setenv("NOTIF_CODEC_MAX_FRAME_SIZE", "16")
	_, stderr, err := run(t, frame, "frames", "--keep-going")
	require.Error(t, err)
	assert.ErrorIs(t, err, transport.ErrFrameTooLarge)
	assert.Contains(t, stderr, "frame 1")
}

func TestInputLimit(t *testing.T) {
	t.Setenv("NOTIF_CODEC_MAX_DOCUMENT_SIZE", "8")
	_, _, err := run(t, []byte(`{"text_description":"too long"}`), "validate", "--kind", "channel_message")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_document_size")
}

func TestConfigFileAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notif.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"codec":{"pretty_documents":true}}`), 0o600))

	out, _, err := run(t, []byte(`{"compact":false}`), "--config", path, "convert", "--kind", "plugin_features_request", "--to", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"compact":false}`, out)
	assert.Contains(t, out, "\n  ")

	_, _, err = run(t, nil, "--log-level", "loud", "version")
	assert.Error(t, err)

	_, _, err = run(t, nil, "--config", filepath.Join(t.TempDir(), "missing.json"), "version")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "notifctl v")

	out, _, err = run(t, nil, "version", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "Codec")
	assert.Contains(t, out, "avro, json, json-pretty, stream")
}
