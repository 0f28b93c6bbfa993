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
	"fmt"

	"github.com/hamba/avro/v2"
)

// Avro forms of the message models, for publishing channel messages into
// Avro-based pipelines. Optional fields are ["null", T] unions.

const attachmentAvroFields = `[
	{"name": "file_name", "type": "string"},
	{"name": "file_encoding", "type": "string"},
	{"name": "file_data", "type": "string"},
	{"name": "file_content_type", "type": ["null", "string"], "default": null}
]`

// AttachmentAvroSchema is the Avro schema of Attachment.
var AttachmentAvroSchema = mustParseAvro(`{
	"type": "record",
	"name": "Attachment",
	"namespace": "notifcommons.model",
	"fields": ` + attachmentAvroFields + `
}`)

// ChannelMessageAvroSchema is the Avro schema of ChannelMessage.
var ChannelMessageAvroSchema = mustParseAvro(`{
	"type": "record",
	"name": "ChannelMessage",
	"namespace": "notifcommons.model",
	"fields": [
		{"name": "text_description", "type": "string"},
		{"name": "html_description", "type": ["null", "string"], "default": null},
		{"name": "attachment", "type": ["null", {
			"type": "record",
			"name": "Attachment",
			"fields": ` + attachmentAvroFields + `
		}], "default": null}
	]
}`)

// Each schema gets its own cache so the shared Attachment name never clashes.
func mustParseAvro(schema string) avro.Schema {
	s, err := avro.ParseWithCache(schema, "", &avro.SchemaCache{})
	if err != nil {
		panic(err)
	}
	return s
}

type avroAttachment struct {
	FileName        string  `avro:"file_name"`
	FileEncoding    string  `avro:"file_encoding"`
	FileData        string  `avro:"file_data"`
	FileContentType *string `avro:"file_content_type"`
}

type avroChannelMessage struct {
	TextDescription string          `avro:"text_description"`
	HTMLDescription *string         `avro:"html_description"`
	Attachment      *avroAttachment `avro:"attachment"`
}

func (a *Attachment) toAvro() *avroAttachment {
	if a == nil {
		return nil
	}
	return &avroAttachment{
		FileName:        a.FileName,
		FileEncoding:    a.FileEncoding,
		FileData:        a.FileData,
		FileContentType: a.FileContentType,
	}
}

func (r *avroAttachment) toModel() (*Attachment, error) {
	if r == nil {
		return nil, nil
	}
	return NewAttachment(r.FileName, r.FileEncoding, r.FileData, r.FileContentType)
}

// MarshalAvro encodes the attachment with AttachmentAvroSchema.
func (a *Attachment) MarshalAvro() ([]byte, error) {
	return avro.Marshal(AttachmentAvroSchema, a.toAvro())
}

// UnmarshalAvro decodes an attachment encoded with AttachmentAvroSchema.
func (a *Attachment) UnmarshalAvro(data []byte) error {
	var rec avroAttachment
	if err := avro.Unmarshal(AttachmentAvroSchema, data, &rec); err != nil {
		return fmt.Errorf("attachment avro: %w", err)
	}
	parsed, err := rec.toModel()
	if err != nil {
		return err
	}
	*a = *parsed
	return nil
}

// MarshalAvro encodes the message with ChannelMessageAvroSchema.
func (m *ChannelMessage) MarshalAvro() ([]byte, error) {
	return avro.Marshal(ChannelMessageAvroSchema, &avroChannelMessage{
		TextDescription: m.TextDescription,
		HTMLDescription: m.HTMLDescription,
		Attachment:      m.Attachment.toAvro(),
	})
}

// UnmarshalAvro decodes a message encoded with ChannelMessageAvroSchema.
func (m *ChannelMessage) UnmarshalAvro(data []byte) error {
	var rec avroChannelMessage
	if err := avro.Unmarshal(ChannelMessageAvroSchema, data, &rec); err != nil {
		return fmt.Errorf("channel message avro: %w", err)
	}
	attachment, err := rec.Attachment.toModel()
	if err != nil {
		return err
	}
	parsed, err := NewChannelMessage(rec.TextDescription, rec.HTMLDescription, attachment)
	if err != nil {
		return err
	}
	*m = *parsed
	return nil
}
