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
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newSampleCmd(a *app) *cobra.Command {
	var kind, format string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print a sample model",
		Long: `Print a valid sample of a model kind, useful as a starting point for
hand-written input. Config ids are fresh UUIDs.

Example:
  notifctl sample --kind notification_config
  notifctl sample --kind config_search_result --format json-pretty`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, spec, err := lookupKind(kind)
			if err != nil {
				a.printer.Error("%v", err)
				return err
			}
			m, err := spec.sample(time.Now())
			if err != nil {
				return err
			}
			if format == "" {
				format = a.cfg.Codec.DefaultFormat
			}
			out, err := a.encode(m, format)
			if err != nil {
				a.printer.Error("%v", err)
				return err
			}
			if strings.HasPrefix(format, "json") {
				out = append(out, '\n')
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "channel_message", "model kind ("+kindNames()+")")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format (default from configuration)")
	return cmd
}
