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

	"notifcommons/pkg/stream"
	"notifcommons/pkg/validate"
	"notifcommons/pkg/xcontent"
)

// ChannelMessage document field names.
const (
	TextDescriptionTag = "text_description"
	HTMLDescriptionTag = "html_description"
	AttachmentTag      = "attachment"
)

// ChannelMessage is the content delivered to a notification channel.
//
// Binary layout: text_description, optional html_description, optional attachment.
type ChannelMessage struct {
	TextDescription string      `json:"text_description" validate:"required,utf8"`
	HTMLDescription *string     `json:"html_description,omitempty" validate:"omitempty,utf8"`
	Attachment      *Attachment `json:"attachment,omitempty"`
}

// NewChannelMessage builds a validated channel message.
func NewChannelMessage(textDescription string, htmlDescription *string, attachment *Attachment) (*ChannelMessage, error) {
	m := &ChannelMessage{
		TextDescription: textDescription,
		HTMLDescription: htmlDescription,
		Attachment:      attachment,
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("channel message: %w", err)
	}
	return m, nil
}

// Validate checks the message field rules.
func (m *ChannelMessage) Validate() error {
	return validate.Struct(m)
}

// ReadChannelMessage reads a message from its binary form.
func ReadChannelMessage(in *stream.Input) (*ChannelMessage, error) {
	textDescription, err := in.ReadString()
	if err != nil {
		return nil, err
	}
	htmlDescription, err := in.ReadOptionalString()
	if err != nil {
		return nil, err
	}
	attachment, err := stream.ReadOptional(in, ReadAttachment)
	if err != nil {
		return nil, err
	}
	return NewChannelMessage(textDescription, htmlDescription, attachment)
}

// WriteStream writes the binary form.
func (m *ChannelMessage) WriteStream(out *stream.Output) {
	out.WriteString(m.TextDescription)
	out.WriteOptionalString(m.HTMLDescription)
	stream.WriteOptional(out, m.Attachment)
}

// ParseChannelMessage reads a message from its document form.
func ParseChannelMessage(p *xcontent.Parser) (*ChannelMessage, error) {
	var textDescription string
	var htmlDescription *string
	var attachment *Attachment
	err := p.Object(func(field string) error {
		var err error
		switch field {
		case TextDescriptionTag:
			textDescription, err = p.TextOrEmpty()
		case HTMLDescriptionTag:
			htmlDescription, err = p.TextOrNil()
		case AttachmentTag:
			if p.IsNull() {
				attachment = nil
				return p.Skip()
			}
			attachment, err = ParseAttachment(p)
		default:
			return p.Skip()
		}
		if err != nil {
			return fmt.Errorf("channel message %s: %w", field, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewChannelMessage(textDescription, htmlDescription, attachment)
}

// ToDocument writes the document form.
func (m *ChannelMessage) ToDocument(b *xcontent.Builder) {
	b.StartObject().
		StringField(TextDescriptionTag, m.TextDescription).
		FieldIfNotNull(HTMLDescriptionTag, m.HTMLDescription)
	xcontent.ObjectIfNotNull(b, AttachmentTag, m.Attachment)
	b.EndObject()
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (m *ChannelMessage) MarshalBinary() ([]byte, error) {
	return stream.Encode(m), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (m *ChannelMessage) UnmarshalBinary(data []byte) error {
	parsed, err := stream.Decode(data, ReadChannelMessage)
	if err != nil {
		return err
	}
	*m = *parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (m *ChannelMessage) MarshalJSON() ([]byte, error) {
	return xcontent.Marshal(m, false)
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *ChannelMessage) UnmarshalJSON(data []byte) error {
	parsed, err := xcontent.Unmarshal(data, ParseChannelMessage)
	if err != nil {
		return err
	}
	*m = *parsed
	return nil
}
