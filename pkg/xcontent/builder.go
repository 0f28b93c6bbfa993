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

package xcontent

import (
	"fmt"
	"slices"

	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
)

var (
	compactConfig = jsoniter.Config{EscapeHTML: false}.Froze()
	prettyConfig  = jsoniter.Config{EscapeHTML: false, IndentionStep: 2}.Froze()
)

// ToDocument is implemented by every type with a document form. It writes
// one complete object, braces included.
type ToDocument interface {
	ToDocument(b *Builder)
}

// Builder writes a structured document.
type Builder struct {
	stream *jsoniter.Stream
	// first[i] is true until the container at depth i receives its first entry.
	first   []bool
	inField bool
}

// NewBuilder creates a builder producing compact or indented output.
func NewBuilder(pretty bool) *Builder {
	cfg := compactConfig
	if pretty {
		cfg = prettyConfig
	}
	return &Builder{stream: jsoniter.NewStream(cfg, nil, 512)}
}

func (b *Builder) beforeValue() {
	if b.inField {
		b.inField = false
		return
	}
	n := len(b.first)
	if n == 0 {
		return
	}
	if b.first[n-1] {
		b.first[n-1] = false
		return
	}
	b.stream.WriteMore()
}

// StartObject opens an object.
func (b *Builder) StartObject() *Builder {
	b.beforeValue()
	b.stream.WriteObjectStart()
	b.first = append(b.first, true)
	return b
}

// EndObject closes the innermost object.
func (b *Builder) EndObject() *Builder {
	b.first = b.first[:len(b.first)-1]
	b.stream.WriteObjectEnd()
	return b
}

// StartArray opens an array.
func (b *Builder) StartArray() *Builder {
	b.beforeValue()
	b.stream.WriteArrayStart()
	b.first = append(b.first, true)
	return b
}

// EndArray closes the innermost array.
func (b *Builder) EndArray() *Builder {
	b.first = b.first[:len(b.first)-1]
	b.stream.WriteArrayEnd()
	return b
}

// Field writes a field name. The next value written belongs to it.
func (b *Builder) Field(name string) *Builder {
	b.beforeValue()
	b.stream.WriteObjectField(name)
	b.inField = true
	return b
}

// Value writes a string value.
func (b *Builder) Value(s string) *Builder {
	b.beforeValue()
	b.stream.WriteString(s)
	return b
}

// StringField writes a named string.
func (b *Builder) StringField(name, value string) *Builder {
	return b.Field(name).Value(value)
}

// LongField writes a named integer.
func (b *Builder) LongField(name string, value int64) *Builder {
	b.Field(name).beforeValue()
	b.stream.WriteInt64(value)
	return b
}

// BoolField writes a named boolean.
func (b *Builder) BoolField(name string, value bool) *Builder {
	b.Field(name).beforeValue()
	b.stream.WriteBool(value)
	return b
}

// FieldIfNotNull writes a named string only when value is non-nil.
func (b *Builder) FieldIfNotNull(name string, value *string) *Builder {
	if value != nil {
		b.StringField(name, *value)
	}
	return b
}

// ObjectField writes a named nested object.
func (b *Builder) ObjectField(name string, value ToDocument) *Builder {
	b.Field(name)
	value.ToDocument(b)
	return b
}

// ObjectIfNotNull writes a named nested object only when value is non-nil.
func ObjectIfNotNull[T any, P interface {
	*T
	ToDocument
}](b *Builder, name string, value *T) *Builder {
	if value != nil {
		b.ObjectField(name, P(value))
	}
	return b
}

// StringListField writes a named array of strings.
func (b *Builder) StringListField(name string, values []string) *Builder {
	b.Field(name).StartArray()
	for _, v := range values {
		b.Value(v)
	}
	return b.EndArray()
}

// StringMapField writes a named object of string values with sorted keys.
func (b *Builder) StringMapField(name string, values map[string]string) *Builder {
	keys := lo.Keys(values)
	slices.Sort(keys)
	b.Field(name).StartObject()
	for _, k := range keys {
		b.StringField(k, values[k])
	}
	return b.EndObject()
}

// ObjectListField writes a named array of nested objects.
func ObjectListField[T ToDocument](b *Builder, name string, items []T) *Builder {
	b.Field(name).StartArray()
	for _, item := range items {
		item.ToDocument(b)
	}
	return b.EndArray()
}

// Bytes returns a copy of the document written so far.
func (b *Builder) Bytes() ([]byte, error) {
	if b.stream.Error != nil {
		return nil, fmt.Errorf("building document: %w", b.stream.Error)
	}
	if len(b.first) != 0 {
		return nil, fmt.Errorf("building document: %d containers left open", len(b.first))
	}
	return slices.Clone(b.stream.Buffer()), nil
}

// Marshal returns the document form of v.
func Marshal(v ToDocument, pretty bool) ([]byte, error) {
	b := NewBuilder(pretty)
	v.ToDocument(b)
	return b.Bytes()
}
