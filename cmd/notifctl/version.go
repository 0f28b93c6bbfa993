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
	"fmt"

	"github.com/spf13/cobra"

	"notifcommons/internal/banner"
)

func newVersionCmd(a *app) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print the notifctl version. With --verbose, also print the banner and
the effective configuration.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if verbose {
				banner.PrintWithConfigTo(cmd.OutOrStdout(), a.cfg)
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), banner.VersionString())
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print banner and configuration")
	return cmd
}
