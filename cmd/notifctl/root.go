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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"notifcommons/internal/config"
	"notifcommons/internal/logging"
	"notifcommons/pkg/cli"
	"notifcommons/pkg/stream"
	"notifcommons/pkg/validate"
	"notifcommons/pkg/xcontent"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	configPath string
	logLevel   string
	logJSON    bool
	cfg        *config.Config
	printer    *cli.Printer
	logger     *logging.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "notifctl",
		Short: "notifctl - notification model codec tool",
		Long: `notifctl converts notification models between their binary stream,
JSON document, Avro and framed forms, and validates them on the way.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "configuration file (default $"+config.EnvConfigFile+")")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&a.logJSON, "log-json", false, "log JSON lines")

	root.AddCommand(
		newConvertCmd(a),
		newValidateCmd(a),
		newSampleCmd(a),
		newFramesCmd(a),
		newVersionCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	a.printer = cli.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())

	cfg, err := config.NewManager().Load(a.configPath)
	if err != nil {
		a.printer.ErrorWithHint(err.Error(), "check the configuration file and "+config.EnvPrefix+"_* variables")
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if cmd.Flags().Changed("log-json") {
		cfg.LogJSON = a.logJSON
	}
	if err := cfg.Validate(); err != nil {
		a.printer.Error("%v", err)
		return err
	}
	a.cfg = cfg

	logCfg := cfg.LoggingConfig()
	logCfg.Output = cmd.ErrOrStderr()
	logging.Configure(logCfg)
	a.logger = logging.NewLogger("notifctl").With("command", cmd.Name())
	return nil
}

// readInput reads the named file, or standard input for "" and "-",
// refusing anything larger than the configured document limit.
func (a *app) readInput(cmd *cobra.Command, path string) ([]byte, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	limit := a.cfg.Codec.MaxDocumentSize
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("input exceeds max_document_size of %d bytes", limit)
	}
	return data, nil
}

// describeError names the failure category of a codec error.
func describeError(err error) string {
	switch {
	case errors.Is(err, stream.ErrStreamCorruption):
		return "stream corruption"
	case errors.Is(err, xcontent.ErrParse):
		return "parse error"
	case errors.Is(err, validate.ErrIllegalArgument):
		return "illegal argument"
	default:
		return "error"
	}
}
