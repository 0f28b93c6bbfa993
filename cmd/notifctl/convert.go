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
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"notifcommons/internal/logging"
	"notifcommons/pkg/model"
	"notifcommons/pkg/serde"
	"notifcommons/pkg/transport"
)

func newConvertCmd(a *app) *cobra.Command {
	var kind, from, to, output string
	var asHex bool

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert a model between wire formats",
		Long: `Decode a model in one format and re-encode it in another. The input is
read from the file argument or from standard input.

Formats: the serde formats (stream, json, json-pretty, avro) plus "frame"
and "frame-json" for a framed binary or document payload. Framed input
carries its own kind, so --kind may be omitted.

Example:
  notifctl convert --kind channel_message --from json --to stream --hex msg.json
  notifctl convert --from frame --to json-pretty capture.bin`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.readInput(cmd, firstArg(args))
			if err != nil {
				a.printer.Error("read input: %v", err)
				return err
			}
			if to == "" {
				to = a.cfg.Codec.DefaultFormat
			}

			start := time.Now()
			m, err := a.decode(kind, from, data)
			if err != nil {
				a.printer.Error("%s: %v", describeError(err), err)
				return err
			}
			out, err := a.encode(m, to)
			if err != nil {
				a.printer.Error("%s: %v", describeError(err), err)
				return err
			}
			logging.NewCodecLogger(a.logger).LogConversion(from, to, len(data), len(out), time.Since(start))

			if asHex {
				out = []byte(hex.EncodeToString(out))
			}
			if asHex || strings.HasPrefix(to, "json") {
				out = append(out, '\n')
			}
			if output != "" {
				return os.WriteFile(output, out, 0o644)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "model kind ("+kindNames()+")")
	cmd.Flags().StringVarP(&from, "from", "f", "json", "input format")
	cmd.Flags().StringVarP(&to, "to", "t", "", "output format (default from configuration)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of standard output")
	cmd.Flags().BoolVar(&asHex, "hex", false, "hex-encode the output")
	return cmd
}

// decode reads one model of the named kind from data in format.
func (a *app) decode(kindName, format string, data []byte) (model.BaseModel, error) {
	if format == formatFrame || format == formatFrameDocument {
		m, err := transport.UnmarshalLimit(data, a.cfg.Codec.MaxFrameSize)
		if err != nil {
			return nil, err
		}
		if kindName != "" {
			want, _, err := lookupKind(kindName)
			if err != nil {
				return nil, err
			}
			if got, _ := transport.KindOf(m); got != want {
				return nil, fmt.Errorf("frame holds %s, not %s", got, want)
			}
		}
		return m, nil
	}

	if kindName == "" {
		return nil, fmt.Errorf("--kind is required for %s input", format)
	}
	_, spec, err := lookupKind(kindName)
	if err != nil {
		return nil, err
	}
	_, dec, err := serde.Get(format)
	if err != nil {
		return nil, err
	}
	m := spec.newValue()
	if err := dec.Decode(data, m); err != nil {
		return nil, err
	}
	return m, nil
}

// encode writes m in format. Plain json becomes json-pretty when the
// configuration asks for pretty documents.
func (a *app) encode(m model.BaseModel, format string) ([]byte, error) {
	switch format {
	case formatFrame:
		return transport.Marshal(m, false)
	case formatFrameDocument:
		return transport.Marshal(m, true)
	case serde.JSONSerde.Name():
		if a.cfg.Codec.PrettyDocuments {
			format = serde.PrettyJSONSerde.Name()
		}
	}
	enc, _, err := serde.Get(format)
	if err != nil {
		return nil, err
	}
	return enc.Encode(m)
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
