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

package stream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"
)

// ErrStreamCorruption is returned when a binary source ends early or holds a
// value of the wrong shape. The read position after this error is undefined.
var ErrStreamCorruption = errors.New("stream corruption")

// Reader decodes one value from an Input.
type Reader[T any] func(in *Input) (T, error)

// Input is a read cursor over an encoded byte slice.
type Input struct {
	data []byte
	off  int
}

// NewInput creates an input over data. The slice is not copied.
func NewInput(data []byte) *Input {
	return &Input{data: data}
}

// NewInputFrom drains r into a new Input, refusing sources larger than maxSize.
// The caller still owns r and must close it.
func NewInputFrom(r io.Reader, maxSize int64) (*Input, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%w: source exceeds %d bytes", ErrStreamCorruption, maxSize)
	}
	return NewInput(data), nil
}

// Remaining returns the number of unread bytes.
func (in *Input) Remaining() int {
	return len(in.data) - in.off
}

// Offset returns the current read position.
func (in *Input) Offset() int {
	return in.off
}

func (in *Input) corrupt(format string, args ...interface{}) error {
	return fmt.Errorf("%w at offset %d: %s", ErrStreamCorruption, in.off, fmt.Sprintf(format, args...))
}

func (in *Input) readUvarint(what string) (uint64, error) {
	v, n := protowire.ConsumeVarint(in.data[in.off:])
	if n < 0 {
		return 0, in.corrupt("reading %s: %v", what, protowire.ParseError(n))
	}
	in.off += n
	return v, nil
}

// ReadString reads a length-prefixed UTF-8 string.
func (in *Input) ReadString() (string, error) {
	n, err := in.readUvarint("string length")
	if err != nil {
		return "", err
	}
	if n > uint64(in.Remaining()) {
		return "", in.corrupt("string length %d exceeds %d remaining bytes", n, in.Remaining())
	}
	s := string(in.data[in.off : in.off+int(n)])
	if !utf8.ValidString(s) {
		return "", in.corrupt("string is not valid UTF-8")
	}
	in.off += int(n)
	return s, nil
}

// ReadOptionalString reads a presence flag and, if set, a string.
func (in *Input) ReadOptionalString() (*string, error) {
	present, err := in.ReadBool()
	if err != nil || !present {
		return nil, err
	}
	s, err := in.ReadString()
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ReadLong reads a signed 64-bit integer.
func (in *Input) ReadLong() (int64, error) {
	if in.Remaining() < 8 {
		return 0, in.corrupt("need 8 bytes for long, have %d", in.Remaining())
	}
	v := binary.BigEndian.Uint64(in.data[in.off:])
	in.off += 8
	return int64(v), nil
}

// ReadInt reads a signed 32-bit integer.
func (in *Input) ReadInt() (int32, error) {
	if in.Remaining() < 4 {
		return 0, in.corrupt("need 4 bytes for int, have %d", in.Remaining())
	}
	v := binary.BigEndian.Uint32(in.data[in.off:])
	in.off += 4
	return int32(v), nil
}

// ReadBool reads a boolean byte. Only 0x00 and 0x01 are accepted.
func (in *Input) ReadBool() (bool, error) {
	if in.Remaining() < 1 {
		return false, in.corrupt("need 1 byte for boolean, have 0")
	}
	b := in.data[in.off]
	switch b {
	case 0x00:
		in.off++
		return false, nil
	case 0x01:
		in.off++
		return true, nil
	default:
		return false, in.corrupt("invalid boolean byte 0x%02x", b)
	}
}

// ReadEnum reads an enum ordinal and checks it against the number of constants.
func (in *Input) ReadEnum(size int) (int, error) {
	v, err := in.readUvarint("enum ordinal")
	if err != nil {
		return 0, err
	}
	if v >= uint64(size) {
		return 0, in.corrupt("enum ordinal %d out of range [0,%d)", v, size)
	}
	return int(v), nil
}

// ReadCount reads a collection size prefix. Every element takes at least one
// byte, so a count larger than the remaining input is rejected up front.
func (in *Input) ReadCount() (int, error) {
	v, err := in.readUvarint("count")
	if err != nil {
		return 0, err
	}
	if v > math.MaxInt32 {
		return 0, in.corrupt("negative or oversized count %d", int32(v))
	}
	if v > uint64(in.Remaining()) {
		return 0, in.corrupt("count %d exceeds %d remaining bytes", v, in.Remaining())
	}
	return int(v), nil
}

// ReadStringList reads a count-prefixed list of strings.
func (in *Input) ReadStringList() ([]string, error) {
	n, err := in.ReadCount()
	if err != nil {
		return nil, err
	}
	list := make([]string, 0, n)
	for i := 0; i < n; i++ {
		s, err := in.ReadString()
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, nil
}

// ReadStringMap reads a count-prefixed string map. Duplicate keys are corrupt.
func (in *Input) ReadStringMap() (map[string]string, error) {
	n, err := in.ReadCount()
	if err != nil {
		return nil, err
	}
	m := make(map[string]string, n)
	for i := 0; i < n; i++ {
		k, err := in.ReadString()
		if err != nil {
			return nil, err
		}
		v, err := in.ReadString()
		if err != nil {
			return nil, err
		}
		if _, dup := m[k]; dup {
			return nil, in.corrupt("duplicate map key %q", k)
		}
		m[k] = v
	}
	return m, nil
}

// nested marks a failure inside a nested object as stream corruption while
// keeping the original cause reachable with errors.Is.
func nested(what string, err error) error {
	if errors.Is(err, ErrStreamCorruption) {
		return err
	}
	return fmt.Errorf("%w: reading %s: %w", ErrStreamCorruption, what, err)
}

// ReadOptional reads a presence flag and, if set, a nested object.
func ReadOptional[T any](in *Input, read Reader[*T]) (*T, error) {
	v, _, err := ReadOptionalValue(in, read)
	return v, err
}

// ReadOptionalValue is ReadOptional for values that are not plain pointers,
// such as interfaces. present reports whether the flag was set.
func ReadOptionalValue[T any](in *Input, read Reader[T]) (v T, present bool, err error) {
	present, err = in.ReadBool()
	if err != nil || !present {
		return v, false, err
	}
	v, err = read(in)
	if err != nil {
		var zero T
		return zero, true, nested("optional object", err)
	}
	return v, true, nil
}

// ReadList reads a count-prefixed list of nested objects.
func ReadList[T any](in *Input, read Reader[T]) ([]T, error) {
	n, err := in.ReadCount()
	if err != nil {
		return nil, err
	}
	items := make([]T, 0, n)
	for i := 0; i < n; i++ {
		item, err := read(in)
		if err != nil {
			return nil, nested(fmt.Sprintf("list element %d", i), err)
		}
		items = append(items, item)
	}
	return items, nil
}

// Decode reads one value from data. Trailing bytes are ignored so that peers
// appending new fields stay readable.
func Decode[T any](data []byte, read Reader[T]) (T, error) {
	return read(NewInput(data))
}
