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
Package stream implements the binary transport form of notification models.

OVERVIEW:
=========
Every model writes its fields to an Output in a fixed, type-defined order and
reads them back from an Input in exactly the same order. Field names are never
written; encoder and decoder agree on position only.

PRIMITIVE ENCODING:
===================

	String:   [uvarint byte length][UTF-8 bytes]
	Long:     [8 bytes, big-endian two's complement]
	Int:      [4 bytes, big-endian two's complement]
	Boolean:  [1 byte] 0x00=false, 0x01=true
	Enum:     [uvarint ordinal]
	Count:    [uvarint] (must fit in a signed 32-bit integer)
	Optional: [boolean presence flag][value, only when the flag is true]
	List:     [count][elements...]
	Map:      [count][key string][value string]... (keys ascending)

EXAMPLE: ChannelMessage{"hi", nil, nil}
=======================================

	02 68 69    text_description "hi"
	00          html_description absent
	00          attachment absent

SCHEMA EVOLUTION:
=================
There is no per-field tag or version. New fields may only be appended at the
end of a type's layout; readers ignore trailing bytes after the last field
they know. Inserting or removing a field in the middle breaks every peer.
*/
package stream

import (
	"encoding/binary"
	"slices"

	"github.com/samber/lo"
	"google.golang.org/protobuf/encoding/protowire"
)

// Writeable is implemented by every type with a binary transport form.
type Writeable interface {
	WriteStream(out *Output)
}

// Output is an append-only binary sink.
type Output struct {
	buf []byte
}

// NewOutput creates an output with the given initial capacity.
func NewOutput(capacity int) *Output {
	return &Output{buf: make([]byte, 0, capacity)}
}

// Bytes returns the encoded bytes. The slice aliases the output buffer.
func (o *Output) Bytes() []byte {
	return o.buf
}

// Len returns the number of bytes written so far.
func (o *Output) Len() int {
	return len(o.buf)
}

// Reset empties the output for reuse.
func (o *Output) Reset() {
	o.buf = o.buf[:0]
}

// WriteString writes a length-prefixed UTF-8 string.
func (o *Output) WriteString(s string) {
	o.buf = protowire.AppendVarint(o.buf, uint64(len(s)))
	o.buf = append(o.buf, s...)
}

// WriteOptionalString writes a presence flag followed by the string if s is non-nil.
func (o *Output) WriteOptionalString(s *string) {
	o.WriteBool(s != nil)
	if s != nil {
		o.WriteString(*s)
	}
}

// WriteLong writes a signed 64-bit integer.
func (o *Output) WriteLong(v int64) {
	o.buf = binary.BigEndian.AppendUint64(o.buf, uint64(v))
}

// WriteInt writes a signed 32-bit integer.
func (o *Output) WriteInt(v int32) {
	o.buf = binary.BigEndian.AppendUint32(o.buf, uint32(v))
}

// WriteBool writes a single boolean byte.
func (o *Output) WriteBool(b bool) {
	if b {
		o.buf = append(o.buf, 0x01)
		return
	}
	o.buf = append(o.buf, 0x00)
}

// WriteEnum writes an enum constant by ordinal.
func (o *Output) WriteEnum(ordinal int) {
	o.buf = protowire.AppendVarint(o.buf, uint64(ordinal))
}

// WriteCount writes a collection size prefix.
func (o *Output) WriteCount(n int) {
	o.buf = protowire.AppendVarint(o.buf, uint64(n))
}

// WriteStringList writes a count-prefixed list of strings.
func (o *Output) WriteStringList(list []string) {
	o.WriteCount(len(list))
	for _, s := range list {
		o.WriteString(s)
	}
}

// WriteStringMap writes a count-prefixed map with keys in ascending order,
// so equal maps always produce equal bytes.
func (o *Output) WriteStringMap(m map[string]string) {
	keys := lo.Keys(m)
	slices.Sort(keys)
	o.WriteCount(len(keys))
	for _, k := range keys {
		o.WriteString(k)
		o.WriteString(m[k])
	}
}

// WriteOptional writes a presence flag followed by v when v is non-nil.
func WriteOptional[T any, P interface {
	*T
	Writeable
}](out *Output, v *T) {
	out.WriteBool(v != nil)
	if v != nil {
		P(v).WriteStream(out)
	}
}

// WriteList writes a count-prefixed list of nested objects.
func WriteList[T Writeable](out *Output, items []T) {
	out.WriteCount(len(items))
	for _, item := range items {
		item.WriteStream(out)
	}
}

// Encode returns the binary form of w.
func Encode(w Writeable) []byte {
	out := NewOutput(64)
	w.WriteStream(out)
	return out.Bytes()
}
