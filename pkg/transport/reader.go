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
	"bufio"
	"errors"
	"io"

	"notifcommons/internal/logging"
	"notifcommons/internal/metrics"
	"notifcommons/pkg/model"
)

// FrameReader reads consecutive frames from a connection.
//
// A frame whose payload fails to decode is logged and reported to the
// caller; the reader stays usable because the header already delimited the
// payload. Header errors are fatal: the stream position is lost.
type FrameReader struct {
	r       *bufio.Reader
	maxSize uint32
	logger  *logging.Logger
	codec   *logging.CodecLogger
	metrics *metrics.Metrics
	broken  error
}

// NewFrameReader wraps r. A zero maxSize selects MaxFrameSize.
func NewFrameReader(r io.Reader, maxSize uint32) *FrameReader {
	if maxSize == 0 {
		maxSize = MaxFrameSize
	}
	logger := logging.NewLogger("transport")
	return &FrameReader{
		r:       bufio.NewReader(r),
		maxSize: maxSize,
		logger:  logger,
		codec:   logging.NewCodecLogger(logger),
		metrics: metrics.Get(),
	}
}

// Next returns the next model. io.EOF means the peer closed cleanly between
// frames.
func (fr *FrameReader) Next() (model.BaseModel, error) {
	if fr.broken != nil {
		return nil, fr.broken
	}
	f, err := readFrame(fr.r, fr.maxSize)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			fr.logger.Warn("Frame stream broken", "error", err)
		}
		fr.broken = err
		return nil, err
	}
	kind := f.Header.Kind.String()
	fr.codec.LogFrame("in", kind, f.Header.Flags, len(f.Payload))
	fr.metrics.RecordRead(kind, len(f.Payload))

	m, err := DecodeFrame(f)
	if err != nil && !errors.Is(err, ErrRemote) {
		format := "stream"
		if f.Header.IsDocument() {
			format = "json"
		}
		fr.codec.LogDecodeFailure(format, kind, f.Payload, err)
		fr.metrics.RecordDecodeFailure(kind)
	}
	return m, err
}

// Err returns the header error that stopped the reader, or nil while frames
// can still be read.
func (fr *FrameReader) Err() error {
	return fr.broken
}

// FrameWriter writes models as frames in one payload form.
type FrameWriter struct {
	w        io.Writer
	document bool
	codec    *logging.CodecLogger
	metrics  *metrics.Metrics
}

// NewFrameWriter wraps w. When document is set, payloads use the JSON
// document form.
func NewFrameWriter(w io.Writer, document bool) *FrameWriter {
	return &FrameWriter{
		w:        w,
		document: document,
		codec:    logging.NewCodecLogger(logging.NewLogger("transport")),
		metrics:  metrics.Get(),
	}
}

// Write sends m as one frame.
func (fw *FrameWriter) Write(m model.BaseModel) error {
	kind, err := KindOf(m)
	if err != nil {
		return err
	}
	data, err := Marshal(m, fw.document)
	if err != nil {
		return err
	}
	if _, err := fw.w.Write(data); err != nil {
		return err
	}
	flags := byte(0)
	if fw.document {
		flags = FlagDocument
	}
	fw.codec.LogFrame("out", kind.String(), flags, len(data)-HeaderSize)
	fw.metrics.RecordWrite(kind.String(), len(data)-HeaderSize)
	return nil
}
