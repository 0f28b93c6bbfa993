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
	"encoding"
	"encoding/json"
	"fmt"
	"sync"

	grpcenc "google.golang.org/grpc/encoding"

	"notifcommons/pkg/xcontent"
)

// gRPC codec names, selected by clients with grpc.CallContentSubtype.
const (
	StreamCodecName   = "notification-stream"
	DocumentCodecName = "notification-json"
)

var (
	_ grpcenc.Codec = StreamCodec{}
	_ grpcenc.Codec = DocumentCodec{}
)

// StreamCodec carries models as gRPC messages in their binary form.
type StreamCodec struct{}

// Marshal implements grpc encoding.Codec.
func (StreamCodec) Marshal(v interface{}) ([]byte, error) {
	m, ok := v.(encoding.BinaryMarshaler)
	if !ok {
		return nil, fmt.Errorf("%s: cannot marshal %T", StreamCodecName, v)
	}
	return m.MarshalBinary()
}

// Unmarshal implements grpc encoding.Codec.
func (StreamCodec) Unmarshal(data []byte, v interface{}) error {
	u, ok := v.(encoding.BinaryUnmarshaler)
	if !ok {
		return fmt.Errorf("%s: cannot unmarshal into %T", StreamCodecName, v)
	}
	return u.UnmarshalBinary(data)
}

// Name implements grpc encoding.Codec.
func (StreamCodec) Name() string { return StreamCodecName }

// DocumentCodec carries models as gRPC messages in their JSON document form.
type DocumentCodec struct{}

// Marshal implements grpc encoding.Codec.
func (DocumentCodec) Marshal(v interface{}) ([]byte, error) {
	doc, ok := v.(xcontent.ToDocument)
	if !ok {
		return nil, fmt.Errorf("%s: cannot marshal %T", DocumentCodecName, v)
	}
	return xcontent.Marshal(doc, false)
}

// Unmarshal implements grpc encoding.Codec.
func (DocumentCodec) Unmarshal(data []byte, v interface{}) error {
	u, ok := v.(json.Unmarshaler)
	if !ok {
		return fmt.Errorf("%s: cannot unmarshal into %T", DocumentCodecName, v)
	}
	return u.UnmarshalJSON(data)
}

// Name implements grpc encoding.Codec.
func (DocumentCodec) Name() string { return DocumentCodecName }

var registerOnce sync.Once

// RegisterCodecs registers both codecs with gRPC. Safe to call repeatedly.
func RegisterCodecs() {
	registerOnce.Do(func() {
		grpcenc.RegisterCodec(StreamCodec{})
		grpcenc.RegisterCodec(DocumentCodec{})
	})
}
