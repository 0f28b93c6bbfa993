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

package model

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notifcommons/pkg/stream"
	"notifcommons/pkg/validate"
	"notifcommons/pkg/xcontent"
)

func mustAttachment(t *testing.T, contentType *string) *Attachment {
	t.Helper()
	a, err := NewAttachment("report.pdf", "base64", "JVBERi0xLjQK", contentType)
	require.NoError(t, err)
	return a
}

func TestEndToEndExample(t *testing.T) {
	doc := `{"text_description":"hi","attachment":{"file_name":"a","file_encoding":"b","file_data":"c","file_content_type":"d"},"extra":"x"}`

	msg, err := xcontent.Unmarshal([]byte(doc), ParseChannelMessage)
	require.NoError(t, err)
	want := &ChannelMessage{
		TextDescription: "hi",
		Attachment: &Attachment{
			FileName:        "a",
			FileEncoding:    "b",
			FileData:        "c",
			FileContentType: lo.ToPtr("d"),
		},
	}
	assert.Equal(t, want, msg)

	viaBinary, err := stream.Decode(stream.Encode(msg), ReadChannelMessage)
	require.NoError(t, err)
	out, err := xcontent.Marshal(viaBinary, false)
	require.NoError(t, err)
	again, err := xcontent.Unmarshal(out, ParseChannelMessage)
	require.NoError(t, err)
	assert.Equal(t, msg, again)
	assert.NotContains(t, string(out), "extra")
}

func TestChannelMessageBinaryLayout(t *testing.T) {
	msg, err := NewChannelMessage("hi", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 'h', 'i', 0x00, 0x00}, stream.Encode(msg))
}

func TestChannelMessageRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		html *string
		att  *Attachment
	}{
		{"text only", nil, nil},
		{"with html", lo.ToPtr("<b>hi</b>"), nil},
		{"with attachment", nil, mustAttachment(t, nil)},
		{"everything", lo.ToPtr("<i>hi</i>"), mustAttachment(t, lo.ToPtr("application/pdf"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := NewChannelMessage("hello", tt.html, tt.att)
			require.NoError(t, err)

			data, err := msg.MarshalBinary()
			require.NoError(t, err)
			var fromBinary ChannelMessage
			require.NoError(t, fromBinary.UnmarshalBinary(data))
			assert.Equal(t, msg, &fromBinary)

			doc, err := msg.MarshalJSON()
			require.NoError(t, err)
			var fromDoc ChannelMessage
			require.NoError(t, fromDoc.UnmarshalJSON(doc))
			assert.Equal(t, msg, &fromDoc)

			avroData, err := msg.MarshalAvro()
			require.NoError(t, err)
			var fromAvro ChannelMessage
			require.NoError(t, fromAvro.UnmarshalAvro(avroData))
			assert.Equal(t, msg, &fromAvro)
		})
	}
}

func TestChannelMessageForwardCompatibility(t *testing.T) {
	plain := `{"text_description":"hi","html_description":"<p>hi</p>"}`
	extended := `{"priority":3,"text_description":"hi","tags":["a",{"b":[1,2]}],` +
		`"html_description":"<p>hi</p>","meta":{"deep":{"deeper":null}},"flag":true}`

	a, err := xcontent.Unmarshal([]byte(plain), ParseChannelMessage)
	require.NoError(t, err)
	b, err := xcontent.Unmarshal([]byte(extended), ParseChannelMessage)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestChannelMessageRequiredText(t *testing.T) {
	for _, doc := range []string{
		`{"html_description":"<p>hi</p>"}`,
		`{"text_description":""}`,
		`{"text_description":null}`,
	} {
		_, err := xcontent.Unmarshal([]byte(doc), ParseChannelMessage)
		require.Error(t, err, doc)
		assert.ErrorIs(t, err, validate.ErrIllegalArgument, doc)
		assert.Contains(t, err.Error(), TextDescriptionTag, doc)
	}

	_, err := NewChannelMessage("", nil, nil)
	assert.ErrorIs(t, err, validate.ErrIllegalArgument)
}

func TestChannelMessageOptionalOmission(t *testing.T) {
	msg, err := xcontent.Unmarshal([]byte(`{"text_description":"hi"}`), ParseChannelMessage)
	require.NoError(t, err)
	assert.Nil(t, msg.HTMLDescription)
	assert.Nil(t, msg.Attachment)

	msg, err = xcontent.Unmarshal([]byte(`{"text_description":"hi","html_description":null,"attachment":null}`), ParseChannelMessage)
	require.NoError(t, err)
	assert.Nil(t, msg.HTMLDescription)
	assert.Nil(t, msg.Attachment)

	doc, err := xcontent.Marshal(msg, false)
	require.NoError(t, err)
	assert.Equal(t, `{"text_description":"hi"}`, string(doc))
}

func TestChannelMessageLastFieldWins(t *testing.T) {
	msg, err := xcontent.Unmarshal([]byte(`{"text_description":"one","text_description":"two"}`), ParseChannelMessage)
	require.NoError(t, err)
	assert.Equal(t, "two", msg.TextDescription)
}

func TestChannelMessageMalformed(t *testing.T) {
	tests := []string{
		`"sample message"`,
		`["hi"]`,
		`{"text_description":["hi"]}`,
		`{"text_description":"hi","attachment":"file"}`,
		`{"text_description":"hi","html_description":1}`,
	}
	for _, doc := range tests {
		_, err := xcontent.Unmarshal([]byte(doc), ParseChannelMessage)
		require.Error(t, err, doc)
		assert.ErrorIs(t, err, xcontent.ErrParse, doc)
	}
}

func TestChannelMessageRejectsInvalidUTF8(t *testing.T) {
	_, err := xcontent.Unmarshal([]byte("{\"text_description\":\"a\xffb\"}"), ParseChannelMessage)
	assert.ErrorIs(t, err, xcontent.ErrParse)

	tests := []struct {
		name  string
		build func() (*ChannelMessage, error)
		field string
	}{
		{"text", func() (*ChannelMessage, error) {
			return NewChannelMessage("a\xffb", nil, nil)
		}, TextDescriptionTag},
		{"html", func() (*ChannelMessage, error) {
			return NewChannelMessage("hi", lo.ToPtr("<p>\xc3</p>"), nil)
		}, HTMLDescriptionTag},
		{"attachment", func() (*ChannelMessage, error) {
			return NewChannelMessage("hi", nil, &Attachment{FileName: "r\xfe.pdf", FileEncoding: "base64", FileData: "x"})
		}, FileNameTag},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			require.Error(t, err)
			assert.ErrorIs(t, err, validate.ErrIllegalArgument)
			assert.Contains(t, err.Error(), tt.field)
		})
	}

	// Anything that constructs must survive the binary form.
	msg, err := NewChannelMessage("héllo ✓", lo.ToPtr("<b>ünïcode</b>"), mustAttachment(t, lo.ToPtr("text/plain; charset=utf-8")))
	require.NoError(t, err)
	back, err := stream.Decode(stream.Encode(msg), ReadChannelMessage)
	require.NoError(t, err)
	assert.Equal(t, msg, back)
}

func TestChannelMessageStreamCorruption(t *testing.T) {
	good := stream.Encode(&ChannelMessage{
		TextDescription: "hello",
		Attachment:      mustAttachment(t, lo.ToPtr("application/pdf")),
	})
	for cut := 0; cut < len(good); cut++ {
		_, err := stream.Decode(good[:cut], ReadChannelMessage)
		require.Error(t, err, "cut at %d", cut)
		assert.ErrorIs(t, err, stream.ErrStreamCorruption, "cut at %d", cut)
	}

	// A nested attachment that decodes but is invalid still fails the read
	// as corruption, with the cause kept.
	out := stream.NewOutput(0)
	out.WriteString("hello")
	out.WriteOptionalString(nil)
	out.WriteBool(true)
	(&Attachment{FileName: "", FileEncoding: "b", FileData: "c"}).WriteStream(out)
	_, err := stream.Decode(out.Bytes(), ReadChannelMessage)
	assert.ErrorIs(t, err, stream.ErrStreamCorruption)
	assert.ErrorIs(t, err, validate.ErrIllegalArgument)
}

func TestAttachmentValidation(t *testing.T) {
	tests := []struct {
		name                   string
		fileName, enc, payload string
		field                  string
	}{
		{"no name", "", "base64", "x", FileNameTag},
		{"no encoding", "a.txt", "", "x", FileEncodingTag},
		{"no data", "a.txt", "base64", "", FileDataTag},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAttachment(tt.fileName, tt.enc, tt.payload, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, validate.ErrIllegalArgument)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestAttachmentDocument(t *testing.T) {
	a := mustAttachment(t, nil)
	doc, err := a.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"file_name":"report.pdf","file_encoding":"base64","file_data":"JVBERi0xLjQK"}`, string(doc))

	var back Attachment
	require.NoError(t, back.UnmarshalJSON(doc))
	assert.Equal(t, a, &back)

	var fromAvro Attachment
	data, err := a.MarshalAvro()
	require.NoError(t, err)
	require.NoError(t, fromAvro.UnmarshalAvro(data))
	assert.Equal(t, a, &fromAvro)
}

func TestAvroRejectsInvalidModel(t *testing.T) {
	data, err := (&ChannelMessage{TextDescription: ""}).MarshalAvro()
	require.NoError(t, err)

	var m ChannelMessage
	assert.ErrorIs(t, m.UnmarshalAvro(data), validate.ErrIllegalArgument)
}
