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

// Package serde is a registry of named wire formats for notification models.
//
// Built-in formats:
//
//	stream       binary form (encoding.BinaryMarshaler)
//	json         compact document form
//	json-pretty  indented document form
//	avro         Avro records, for models with an Avro schema
//
// Decoding always goes through the model's own Unmarshal method, so every
// format re-validates what it reads.
package serde

import (
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"

	"notifcommons/pkg/xcontent"
)

// ErrUnknownFormat is returned by Get for a name nobody registered.
var ErrUnknownFormat = errors.New("unknown serde format")

// ErrUnsupportedType is returned when a value cannot be handled by a format.
var ErrUnsupportedType = errors.New("unsupported type for serde format")

// Encoder defines the interface for model encoding.
type Encoder interface {
	Encode(v interface{}) ([]byte, error)
	Name() string
}

// Decoder defines the interface for model decoding.
type Decoder interface {
	Decode(data []byte, v interface{}) error
	Name() string
}

// AvroMarshaler is implemented by models that have an Avro form.
type AvroMarshaler interface {
	MarshalAvro() ([]byte, error)
}

// AvroUnmarshaler is implemented by models that can be read from Avro.
type AvroUnmarshaler interface {
	UnmarshalAvro(data []byte) error
}

// Built-in formats.
var (
	StreamSerde     = &streamSerde{}
	JSONSerde       = &jsonSerde{name: "json", api: compactAPI}
	PrettyJSONSerde = &jsonSerde{name: "json-pretty", pretty: true, api: prettyAPI}
	AvroSerde       = &avroSerde{}
)

type streamSerde struct{}

func (s *streamSerde) Encode(v interface{}) ([]byte, error) {
	m, ok := v.(encoding.BinaryMarshaler)
	if !ok {
		return nil, fmt.Errorf("%w: stream encoder expects encoding.BinaryMarshaler, got %T", ErrUnsupportedType, v)
	}
	return m.MarshalBinary()
}

func (s *streamSerde) Decode(data []byte, v interface{}) error {
	u, ok := v.(encoding.BinaryUnmarshaler)
	if !ok {
		return fmt.Errorf("%w: stream decoder expects encoding.BinaryUnmarshaler, got %T", ErrUnsupportedType, v)
	}
	return u.UnmarshalBinary(data)
}

func (s *streamSerde) Name() string { return "stream" }

// jsonSerde writes models through their document form and falls back to
// jsoniter for plain values.
type jsonSerde struct {
	name   string
	pretty bool
	api    jsoniter.API
}

var (
	compactAPI = jsoniter.Config{EscapeHTML: false, SortMapKeys: true}.Froze()
	prettyAPI  = jsoniter.Config{EscapeHTML: false, IndentionStep: 2, SortMapKeys: true}.Froze()
)

func (s *jsonSerde) Encode(v interface{}) ([]byte, error) {
	if doc, ok := v.(xcontent.ToDocument); ok {
		return xcontent.Marshal(doc, s.pretty)
	}
	return s.api.Marshal(v)
}

func (s *jsonSerde) Decode(data []byte, v interface{}) error {
	if u, ok := v.(json.Unmarshaler); ok {
		return u.UnmarshalJSON(data)
	}
	return s.api.Unmarshal(data, v)
}

func (s *jsonSerde) Name() string { return s.name }

type avroSerde struct{}

func (s *avroSerde) Encode(v interface{}) ([]byte, error) {
	m, ok := v.(AvroMarshaler)
	if !ok {
		return nil, fmt.Errorf("%w: avro encoder expects a model with an Avro schema, got %T", ErrUnsupportedType, v)
	}
	return m.MarshalAvro()
}

func (s *avroSerde) Decode(data []byte, v interface{}) error {
	u, ok := v.(AvroUnmarshaler)
	if !ok {
		return fmt.Errorf("%w: avro decoder expects a model with an Avro schema, got %T", ErrUnsupportedType, v)
	}
	return u.UnmarshalAvro(data)
}

func (s *avroSerde) Name() string { return "avro" }

// Registry manages encoders and decoders by name.
type Registry struct {
	encoders map[string]Encoder
	decoders map[string]Decoder
	mu       sync.RWMutex
}

// NewRegistry returns a registry holding the built-in formats.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
		decoders: make(map[string]Decoder),
	}
	r.Register(StreamSerde, StreamSerde)
	r.Register(JSONSerde, JSONSerde)
	r.Register(PrettyJSONSerde, PrettyJSONSerde)
	r.Register(AvroSerde, AvroSerde)
	return r
}

// Register adds or replaces an encoder and decoder.
func (r *Registry) Register(e Encoder, d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.encoders[e.Name()] = e
	r.decoders[d.Name()] = d
}

// Get returns the encoder and decoder registered under name.
func (r *Registry) Get(name string) (Encoder, Decoder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, okE := r.encoders[name]
	d, okD := r.decoders[name]
	if !okE || !okD {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
	return e, d, nil
}

// Names lists the registered formats in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := lo.Intersect(lo.Keys(r.encoders), lo.Keys(r.decoders))
	slices.Sort(names)
	return names
}

var globalRegistry = NewRegistry()

// Register registers an encoder and decoder in the global registry.
func Register(e Encoder, d Decoder) {
	globalRegistry.Register(e, d)
}

// Get returns a format from the global registry.
func Get(name string) (Encoder, Decoder, error) {
	return globalRegistry.Get(name)
}

// Names lists the formats of the global registry.
func Names() []string {
	return globalRegistry.Names()
}

// Convert decodes data in one format into v and re-encodes it in another.
func Convert(data []byte, from, to string, v interface{}) ([]byte, error) {
	_, dec, err := Get(from)
	if err != nil {
		return nil, err
	}
	enc, _, err := Get(to)
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(data, v); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", from, err)
	}
	out, err := enc.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", to, err)
	}
	return out, nil
}
