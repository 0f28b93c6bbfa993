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
	"github.com/spf13/cobra"

	"notifcommons/pkg/transport"
)

func newValidateCmd(a *app) *cobra.Command {
	var kind, format string

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check that input decodes to a valid model",
		Long: `Decode a model and report whether it is well formed and valid. The exit
status is non-zero when it is not.

Example:
  notifctl validate --kind config_info info.json
  notifctl validate --format stream --kind attachment att.bin`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.readInput(cmd, firstArg(args))
			if err != nil {
				a.printer.Error("read input: %v", err)
				return err
			}
			m, err := a.decode(kind, format, data)
			if err != nil {
				a.logger.Warn("Rejected input", "format", format, "kind", kind, "error", err)
				a.printer.Error("invalid (%s): %v", describeError(err), err)
				return err
			}
			k, _ := transport.KindOf(m)
			a.printer.Success("valid %s", k)
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "model kind ("+kindNames()+")")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "input format")
	return cmd
}
