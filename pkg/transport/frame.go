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
Package transport moves notification models between processes.

FRAME FORMAT:
=============
Every model travels as an 8-byte header followed by its encoded payload:

	+-------+-------+-------+-------+-------+-------+-------+-------+
	| Magic | Ver   | Kind  | Flags | Length (4 bytes, big-endian) |
	+-------+-------+-------+-------+-------+-------+-------+-------+
	|                    Payload (Length bytes)                     |
	+---------------------------------------------------------------+

HEADER FIELDS:
==============
  - Magic (1 byte): 0x4E
  - Version (1 byte): 0x01. The payload layouts have no field versioning, so a
    breaking layout change must bump this byte.
  - Kind (1 byte): which model the payload holds (see Kind constants)
  - Flags (1 byte): FlagDocument marks a JSON document payload; otherwise the
    payload is the binary stream form
  - Length (4 bytes): payload length, at most MaxFrameSize unless the reader
    was given another limit

EXAMPLE: GET PLUGIN FEATURES REQUEST (compact=true)
===================================================

	4E 01 10 00 00 00 00 01   header: kind 0x10, binary, length 1
	01                        compact = true

A KindError frame carries a UTF-8 error message instead of a model.

GRPC:
=====
grpc.go provides encoding.Codec implementations over the same two payload
forms, for services that exchange models as gRPC messages.
*/
package transport

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/samber/lo"

	"notifcommons/pkg/action"
	"notifcommons/pkg/model"
	"notifcommons/pkg/stream"
	"notifcommons/pkg/xcontent"
)

// Frame constants define the wire format parameters.
const (
	// MagicByte identifies notification frames.
	MagicByte byte = 0x4E

	// FrameVersion is the current frame and payload layout version.
	FrameVersion byte = 0x01

	// MaxFrameSize is the default payload limit.
	MaxFrameSize = 16 * 1024 * 1024 // 16MB

	// HeaderSize is the fixed size of the frame header in bytes.
	HeaderSize = 8
)

// FlagDocument marks a payload in the JSON document form.
const FlagDocument byte = 0x01

// Kind identifies the model carried by a frame.
type Kind byte

// Kind codes. Values are part of the wire contract.
const (
	KindAttachment         Kind = 0x01
	KindChannelMessage     Kind = 0x02
	KindNotificationConfig Kind = 0x03
	KindConfigInfo         Kind = 0x04
	KindConfigSearchResult Kind = 0x05

	KindPluginFeaturesRequest  Kind = 0x10
	KindPluginFeaturesResponse Kind = 0x11

	KindError Kind = 0xFF
)

// Frame errors.
var (
	// ErrInvalidMagic indicates the first byte is not MagicByte; the peer is
	// not speaking this protocol.
	ErrInvalidMagic = errors.New("invalid magic byte")

	// ErrInvalidVersion indicates an unsupported frame version.
	ErrInvalidVersion = errors.New("invalid frame version")

	// ErrFrameTooLarge indicates the payload exceeds the size limit.
	ErrFrameTooLarge = errors.New("frame too large")

	// ErrUnknownKind indicates a kind byte or model type with no codec.
	ErrUnknownKind = errors.New("unknown frame kind")

	// ErrRemote wraps the message of a KindError frame.
	ErrRemote = errors.New("remote error")
)

// Header is the fixed-size header that precedes every payload.
type Header struct {
	Magic   byte
	Version byte
	Kind    Kind
	Flags   byte
	Length  uint32
}

// IsDocument reports whether the payload is in document form.
func (h Header) IsDocument() bool {
	return h.Flags&FlagDocument != 0
}

// Frame is a complete header plus payload.
type Frame struct {
	Header  Header
	Payload []byte
}

// kindCodec decodes one kind of model from either payload form.
type kindCodec struct {
	name  string
	read  stream.Reader[model.BaseModel]
	parse func(*xcontent.Parser) (model.BaseModel, error)
}

func codecOf[T model.BaseModel](name string, read func(*stream.Input) (T, error), parse func(*xcontent.Parser) (T, error)) kindCodec {
	return kindCodec{
		name: name,
		read: func(in *stream.Input) (model.BaseModel, error) {
			v, err := read(in)
			if err != nil {
				return nil, err
			}
			return v, nil
		},
		parse: func(p *xcontent.Parser) (model.BaseModel, error) {
			v, err := parse(p)
			if err != nil {
				return nil, err
			}
			return v, nil
		},
	}
}

var kindCodecs = map[Kind]kindCodec{
	KindAttachment:             codecOf("attachment", model.ReadAttachment, model.ParseAttachment),
	KindChannelMessage:         codecOf("channel_message", model.ReadChannelMessage, model.ParseChannelMessage),
	KindNotificationConfig:     codecOf("notification_config", model.ReadNotificationConfig, model.ParseNotificationConfig),
	KindConfigInfo:             codecOf("config_info", model.ReadConfigInfo, model.ParseConfigInfo),
	KindConfigSearchResult:     codecOf("config_search_result", model.ReadConfigSearchResult, model.ParseConfigSearchResult),
	KindPluginFeaturesRequest:  codecOf("plugin_features_request", action.ReadGetPluginFeaturesRequest, action.ParseGetPluginFeaturesRequest),
	KindPluginFeaturesResponse: codecOf("plugin_features_response", action.ReadGetPluginFeaturesResponse, action.ParseGetPluginFeaturesResponse),
}

// String returns the model name of k.
func (k Kind) String() string {
	if k == KindError {
		return "error"
	}
	if c, ok := kindCodecs[k]; ok {
		return c.name
	}
	return fmt.Sprintf("kind(0x%02x)", byte(k))
}

// Kinds lists the model kinds in code order.
func Kinds() []Kind {
	kinds := lo.Keys(kindCodecs)
	slices.Sort(kinds)
	return kinds
}

// ParseKind returns the kind whose model name is name.
func ParseKind(name string) (Kind, error) {
	k, ok := lo.FindKeyBy(kindCodecs, func(_ Kind, c kindCodec) bool { return c.name == name })
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	return k, nil
}

// KindOf returns the frame kind for a model value.
func KindOf(m model.BaseModel) (Kind, error) {
	switch m.(type) {
	case *model.Attachment:
		return KindAttachment, nil
	case *model.ChannelMessage:
		return KindChannelMessage, nil
	case *model.NotificationConfig:
		return KindNotificationConfig, nil
	case *model.ConfigInfo:
		return KindConfigInfo, nil
	case *model.ConfigSearchResult:
		return KindConfigSearchResult, nil
	case *action.GetPluginFeaturesRequest:
		return KindPluginFeaturesRequest, nil
	case *action.GetPluginFeaturesResponse:
		return KindPluginFeaturesResponse, nil
	default:
		return 0, fmt.Errorf("%w: no kind for %T", ErrUnknownKind, m)
	}
}

// ReadHeader reads and validates a frame header. Lengths above maxSize fail
// with ErrFrameTooLarge.
func ReadHeader(r io.Reader, maxSize uint32) (Header, error) {
	buf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Header{}, err
	}

	h := Header{
		Magic:   buf[0],
		Version: buf[1],
		Kind:    Kind(buf[2]),
		Flags:   buf[3],
		Length:  binary.BigEndian.Uint32(buf[4:]),
	}

	if h.Magic != MagicByte {
		return Header{}, ErrInvalidMagic
	}
	if h.Version != FrameVersion {
		return Header{}, ErrInvalidVersion
	}
	if h.Length > maxSize {
		return Header{}, fmt.Errorf("%w: %d bytes, limit %d", ErrFrameTooLarge, h.Length, maxSize)
	}
	return h, nil
}

// WriteHeader writes a frame header as 8 big-endian bytes.
func WriteHeader(w io.Writer, h Header) error {
	buf := make([]byte, HeaderSize)
	buf[0] = h.Magic
	buf[1] = h.Version
	buf[2] = byte(h.Kind)
	buf[3] = h.Flags
	binary.BigEndian.PutUint32(buf[4:], h.Length)
	_, err := w.Write(buf)
	return err
}

// ReadFrame reads a complete frame with the default size limit.
func ReadFrame(r io.Reader) (*Frame, error) {
	return readFrame(r, MaxFrameSize)
}

func readFrame(r io.Reader, maxSize uint32) (*Frame, error) {
	h, err := ReadHeader(r, maxSize)
	if err != nil {
		return nil, err
	}
	f := &Frame{Header: h}
	if h.Length > 0 {
		f.Payload = make([]byte, h.Length)
		if _, err := io.ReadFull(r, f.Payload); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// WriteFrame writes a header and payload.
func WriteFrame(w io.Writer, kind Kind, flags byte, payload []byte) error {
	if len(payload) > MaxFrameSize {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrFrameTooLarge, len(payload), MaxFrameSize)
	}
	h := Header{
		Magic:   MagicByte,
		Version: FrameVersion,
		Kind:    kind,
		Flags:   flags,
		Length:  uint32(len(payload)),
	}
	if err := WriteHeader(w, h); err != nil {
		return err
	}
	if len(payload) > 0 {
		_, err := w.Write(payload)
		return err
	}
	return nil
}

// WriteError sends an error frame carrying err's message.
func WriteError(w io.Writer, err error) error {
	return WriteFrame(w, KindError, 0, []byte(err.Error()))
}

// EncodeFrame writes m as one frame, in document form when document is set.
func EncodeFrame(w io.Writer, m model.BaseModel, document bool) error {
	kind, err := KindOf(m)
	if err != nil {
		return err
	}
	if !document {
		return WriteFrame(w, kind, 0, stream.Encode(m))
	}
	payload, err := xcontent.Marshal(m, false)
	if err != nil {
		return err
	}
	return WriteFrame(w, kind, FlagDocument, payload)
}

// DecodeFrame rebuilds the model carried by f. KindError frames come back
// as an error wrapping ErrRemote.
func DecodeFrame(f *Frame) (model.BaseModel, error) {
	if f.Header.Kind == KindError {
		return nil, fmt.Errorf("%w: %s", ErrRemote, f.Payload)
	}
	c, ok := kindCodecs[f.Header.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownKind, byte(f.Header.Kind))
	}
	if f.Header.IsDocument() {
		return xcontent.Unmarshal(f.Payload, c.parse)
	}
	return stream.Decode(f.Payload, c.read)
}

// Marshal returns m as a complete frame.
func Marshal(m model.BaseModel, document bool) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeFrame(&buf, m, document); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a single complete frame.
func Unmarshal(data []byte) (model.BaseModel, error) {
	return UnmarshalLimit(data, MaxFrameSize)
}

// UnmarshalLimit is Unmarshal with a payload limit other than MaxFrameSize.
func UnmarshalLimit(data []byte, maxSize uint32) (model.BaseModel, error) {
	f, err := readFrame(bytes.NewReader(data), maxSize)
	if err != nil {
		return nil, err
	}
	return DecodeFrame(f)
}
