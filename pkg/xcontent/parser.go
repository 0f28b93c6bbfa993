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
Package xcontent implements the structured document form of notification
models on top of json-iterator's token-level Iterator and Stream.

PARSING:
========
Parsers walk one object at a time. For each field the caller either reads the
value with a typed accessor or skips it:

	err := p.Object(func(field string) error {
	    switch field {
	    case "text_description":
	        text, err = p.TextOrEmpty()
	        return err
	    default:
	        return p.Skip()
	    }
	})

Unknown fields are skipped whatever their shape (scalar, array, object). A
field that appears twice is delivered twice, so the last occurrence wins.
A value of the wrong type for a known field fails with ErrParse.

BUILDING:
=========
Builder emits objects, arrays and named fields, inserting separators itself.
Absent optional values are omitted rather than written as null.
*/
package xcontent

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"
)

// ErrParse is returned when the token stream does not have the expected shape.
var ErrParse = errors.New("document parse error")

var parseConfig = jsoniter.Config{EscapeHTML: false}.Froze()

// Parser reads a structured document token by token.
type Parser struct {
	iter *jsoniter.Iterator
}

// NewParser creates a parser over an in-memory document.
func NewParser(data []byte) *Parser {
	return &Parser{iter: jsoniter.ParseBytes(parseConfig, data)}
}

// NewParserFrom creates a parser reading from r with the given buffer size.
// The caller owns r and must close it.
func NewParserFrom(r io.Reader, bufSize int) *Parser {
	return &Parser{iter: jsoniter.Parse(parseConfig, r, bufSize)}
}

func typeName(t jsoniter.ValueType) string {
	switch t {
	case jsoniter.StringValue:
		return "string"
	case jsoniter.NumberValue:
		return "number"
	case jsoniter.NilValue:
		return "null"
	case jsoniter.BoolValue:
		return "boolean"
	case jsoniter.ArrayValue:
		return "start of array"
	case jsoniter.ObjectValue:
		return "start of object"
	default:
		return "invalid token"
	}
}

func (p *Parser) err() error {
	if p.iter.Error == nil {
		return nil
	}
	if p.iter.Error == io.EOF {
		return fmt.Errorf("%w: unexpected end of document", ErrParse)
	}
	return fmt.Errorf("%w: %v", ErrParse, p.iter.Error)
}

func (p *Parser) expect(want jsoniter.ValueType) error {
	got := p.iter.WhatIsNext()
	if got == want {
		return nil
	}
	if err := p.err(); err != nil {
		return err
	}
	return fmt.Errorf("%w: expected %s but found %s", ErrParse, typeName(want), typeName(got))
}

// Object consumes an object, calling fn for every field in document order.
// fn must consume the field value, either with a typed read or with Skip.
func (p *Parser) Object(fn func(field string) error) error {
	if err := p.expect(jsoniter.ObjectValue); err != nil {
		return err
	}
	var fieldErr error
	p.iter.ReadObjectCB(func(_ *jsoniter.Iterator, field string) bool {
		if err := fn(field); err != nil {
			fieldErr = err
			return false
		}
		return p.iter.Error == nil
	})
	if fieldErr != nil {
		return fieldErr
	}
	return p.err()
}

// Array consumes an array, calling fn once per element. fn must consume the
// element.
func (p *Parser) Array(fn func() error) error {
	if err := p.expect(jsoniter.ArrayValue); err != nil {
		return err
	}
	var elemErr error
	p.iter.ReadArrayCB(func(_ *jsoniter.Iterator) bool {
		if err := fn(); err != nil {
			elemErr = err
			return false
		}
		return p.iter.Error == nil
	})
	if elemErr != nil {
		return elemErr
	}
	return p.err()
}

// IsNull reports whether the next value is null without consuming it.
func (p *Parser) IsNull() bool {
	return p.iter.WhatIsNext() == jsoniter.NilValue
}

// Text reads a string value.
func (p *Parser) Text() (string, error) {
	if err := p.expect(jsoniter.StringValue); err != nil {
		return "", err
	}
	s := p.iter.ReadString()
	if err := p.err(); err != nil {
		return "", err
	}
	if !utf8.ValidString(s) {
		return "", fmt.Errorf("%w: string is not valid UTF-8", ErrParse)
	}
	return s, nil
}

// TextOrNil reads a string value, returning nil for null.
func (p *Parser) TextOrNil() (*string, error) {
	if p.IsNull() {
		p.iter.ReadNil()
		return nil, p.err()
	}
	s, err := p.Text()
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// TextOrEmpty reads a string value, returning "" for null. Required fields
// use it so that null reaches validation and is reported as missing.
func (p *Parser) TextOrEmpty() (string, error) {
	s, err := p.TextOrNil()
	if err != nil || s == nil {
		return "", err
	}
	return *s, nil
}

// Long reads an integral number.
func (p *Parser) Long() (int64, error) {
	if err := p.expect(jsoniter.NumberValue); err != nil {
		return 0, err
	}
	n := p.iter.ReadNumber()
	if err := p.err(); err != nil {
		return 0, err
	}
	v, err := n.Int64()
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrParse, n.String())
	}
	return v, nil
}

// Bool reads a boolean value.
func (p *Parser) Bool() (bool, error) {
	if err := p.expect(jsoniter.BoolValue); err != nil {
		return false, err
	}
	b := p.iter.ReadBool()
	return b, p.err()
}

// Skip consumes the next value whatever its type, including nested arrays
// and objects.
func (p *Parser) Skip() error {
	p.iter.Skip()
	return p.err()
}

// End verifies that nothing but whitespace follows the parsed value.
func (p *Parser) End() error {
	next := p.iter.WhatIsNext()
	if next == jsoniter.InvalidValue && p.iter.Error == io.EOF {
		p.iter.Error = nil
		return nil
	}
	if err := p.err(); err != nil {
		return err
	}
	return fmt.Errorf("%w: unexpected %s after end of document", ErrParse, typeName(next))
}

// ObjectList reads an array of objects, parsing each element with parse.
func ObjectList[T any](p *Parser, parse func(*Parser) (T, error)) ([]T, error) {
	items := []T{}
	err := p.Array(func() error {
		item, err := parse(p)
		if err != nil {
			return err
		}
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// StringList reads an array of strings.
func StringList(p *Parser) ([]string, error) {
	return ObjectList(p, (*Parser).Text)
}

// StringMap reads an object whose values are all strings. Repeated keys keep
// the last value.
func StringMap(p *Parser) (map[string]string, error) {
	m := map[string]string{}
	err := p.Object(func(field string) error {
		v, err := p.Text()
		if err != nil {
			return fmt.Errorf("%s: %w", field, err)
		}
		m[field] = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Unmarshal parses a complete document with parse.
func Unmarshal[T any](data []byte, parse func(*Parser) (T, error)) (T, error) {
	p := NewParser(data)
	v, err := parse(p)
	if err != nil {
		var zero T
		return zero, err
	}
	if err := p.End(); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}
