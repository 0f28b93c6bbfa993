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

// Attachment document field names.
const (
	FileNameTag        = "file_name"
	FileEncodingTag    = "file_encoding"
	FileDataTag        = "file_data"
	FileContentTypeTag = "file_content_type"
)

// Attachment is a file payload carried by a ChannelMessage.
//
// Binary layout: file_name, file_encoding, file_data, optional file_content_type.
type Attachment struct {
	FileName        string  `json:"file_name" validate:"required,utf8"`
	FileEncoding    string  `json:"file_encoding" validate:"required,utf8"`
	FileData        string  `json:"file_data" validate:"required,utf8"` // encoded payload, e.g. base64
	FileContentType *string `json:"file_content_type,omitempty" validate:"omitempty,utf8"`
}

// NewAttachment builds a validated attachment.
func NewAttachment(fileName, fileEncoding, fileData string, fileContentType *string) (*Attachment, error) {
	a := &Attachment{
		FileName:        fileName,
		FileEncoding:    fileEncoding,
		FileData:        fileData,
		FileContentType: fileContentType,
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("attachment: %w", err)
	}
	return a, nil
}

// Validate checks the attachment field rules.
func (a *Attachment) Validate() error {
	return validate.Struct(a)
}

// ReadAttachment reads an attachment from its binary form.
func ReadAttachment(in *stream.Input) (*Attachment, error) {
	fileName, err := in.ReadString()
	if err != nil {
		return nil, err
	}
	fileEncoding, err := in.ReadString()
	if err != nil {
		return nil, err
	}
	fileData, err := in.ReadString()
	if err != nil {
		return nil, err
	}
	fileContentType, err := in.ReadOptionalString()
	if err != nil {
		return nil, err
	}
	return NewAttachment(fileName, fileEncoding, fileData, fileContentType)
}

// WriteStream writes the binary form.
func (a *Attachment) WriteStream(out *stream.Output) {
	out.WriteString(a.FileName)
	out.WriteString(a.FileEncoding)
	out.WriteString(a.FileData)
	out.WriteOptionalString(a.FileContentType)
}

// ParseAttachment reads an attachment from its document form.
func ParseAttachment(p *xcontent.Parser) (*Attachment, error) {
	var fileName, fileEncoding, fileData string
	var fileContentType *string
	err := p.Object(func(field string) error {
		var err error
		switch field {
		case FileNameTag:
			fileName, err = p.TextOrEmpty()
		case FileEncodingTag:
			fileEncoding, err = p.TextOrEmpty()
		case FileDataTag:
			fileData, err = p.TextOrEmpty()
		case FileContentTypeTag:
			fileContentType, err = p.TextOrNil()
		default:
			return p.Skip()
		}
		if err != nil {
			return fmt.Errorf("attachment %s: %w", field, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewAttachment(fileName, fileEncoding, fileData, fileContentType)
}

// ToDocument writes the document form.
func (a *Attachment) ToDocument(b *xcontent.Builder) {
	b.StartObject().
		StringField(FileNameTag, a.FileName).
		StringField(FileEncodingTag, a.FileEncoding).
		StringField(FileDataTag, a.FileData).
		FieldIfNotNull(FileContentTypeTag, a.FileContentType).
		EndObject()
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (a *Attachment) MarshalBinary() ([]byte, error) {
	return stream.Encode(a), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (a *Attachment) UnmarshalBinary(data []byte) error {
	parsed, err := stream.Decode(data, ReadAttachment)
	if err != nil {
		return err
	}
	*a = *parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (a *Attachment) MarshalJSON() ([]byte, error) {
	return xcontent.Marshal(a, false)
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Attachment) UnmarshalJSON(data []byte) error {
	parsed, err := xcontent.Unmarshal(data, ParseAttachment)
	if err != nil {
		return err
	}
	*a = *parsed
	return nil
}
