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

package main

import (
	"bytes"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"notifcommons/internal/metrics"
	"notifcommons/pkg/transport"
	"notifcommons/pkg/xcontent"
)

func newFramesCmd(a *app) *cobra.Command {
	var keepGoing, stats bool

	cmd := &cobra.Command{
		Use:   "frames [file]",
		Short: "Dump a sequence of frames as documents",
		Long: `Read consecutive frames, as captured from a connection, and print each
model as a JSON document line. Frames larger than the configured
max_frame_size are rejected. --stats writes the frame counters to stderr
in Prometheus text format once the input is consumed.

Example:
  notifctl frames capture.bin
  notifctl frames --keep-going --stats < capture.bin`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.readInput(cmd, firstArg(args))
			if err != nil {
				a.printer.Error("read input: %v", err)
				return err
			}

			if stats {
				defer metrics.Get().WriteText(cmd.ErrOrStderr())
			}

			fr := transport.NewFrameReader(bytes.NewReader(data), a.cfg.Codec.MaxFrameSize)
			out := cmd.OutOrStdout()
			var count, failed int
			for {
				m, err := fr.Next()
				if errors.Is(err, io.EOF) {
					break
				}
				count++
				if err != nil {
					a.printer.Error("frame %d: %s: %v", count, describeError(err), err)
					if fr.Err() != nil || !keepGoing {
						return err
					}
					failed++
					continue
				}
				doc, err := xcontent.Marshal(m, a.cfg.Codec.PrettyDocuments)
				if err != nil {
					return err
				}
				if _, err := out.Write(append(doc, '\n')); err != nil {
					return err
				}
			}
			if failed > 0 {
				a.printer.Warning("%d of %d frames failed to decode", failed, count)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&keepGoing, "keep-going", false, "continue past frames whose payload fails to decode")
	cmd.Flags().BoolVar(&stats, "stats", false, "print frame counters when done")
	return cmd
}
