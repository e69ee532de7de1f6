// Copyright © 2025 The Knative Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"os"
	"strings"

	"github.com/knative-extensions/kn-connectors/connectorspec"
	"github.com/knative-extensions/kn-connectors/docgen"
	"github.com/knative-extensions/kn-connectors/internal/logging"
	"github.com/knative-extensions/kn-connectors/lint"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var errMissingKamelet = errors.New("kamelet name is required (--kamelet or KN_CONNECTOR_KAMELET_NAME)")

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	// Flags can also be set through environment variables prefixed with
	// KN_CONNECTOR, e.g. KN_CONNECTOR_KAMELET_NAME.
	v := viper.New()
	v.SetEnvPrefix("kn_connector")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	cmdRoot := &cobra.Command{
		Use:          "kn-connector",
		Short:        "Tooling around generating Knative connector related files",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger := logging.NewConsole(cmd.ErrOrStderr(), v.GetString("log.level"))
			cmd.SetContext(logger.WithContext(cmd.Context()))
		},
	}
	cmdRoot.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error)")
	_ = v.BindPFlag("log.level", cmdRoot.PersistentFlags().Lookup("log-level"))

	cmdGenerate := &cobra.Command{
		Use:   "generate",
		Short: "Generate connector specification files from a Kamelet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return connectorspec.NewCommand(
				v.GetString("kamelet.name"),
				v.GetString("output"),
				v.GetString("resources"),
				v.GetBool("skip"),
			).Execute(cmd.Context())
		},
	}
	cmdGenerate.Flags().StringP("kamelet", "k", "", "name of the Kamelet, e.g. aws-s3-source")
	cmdGenerate.Flags().StringP("output", "o", ".", "directory the files are written to")
	cmdGenerate.Flags().StringP("resources", "r", "src/main/resources", "directory containing kamelets/<name>.kamelet.yaml")
	cmdGenerate.Flags().Bool("skip", false, "skip the generation")

	cmdDocgen := &cobra.Command{
		Use:   "docgen",
		Short: "Update the kn-connector regions of a connector documentation page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return docgen.NewCommand(
				v.GetString("kamelet.name"),
				os.DirFS(v.GetString("resources")),
				v.GetString("doc"),
				v.GetBool("write"),
			).Execute(cmd.Context())
		},
	}
	cmdDocgen.Flags().StringP("kamelet", "k", "", "name of the Kamelet, e.g. aws-s3-source")
	cmdDocgen.Flags().StringP("resources", "r", "src/main/resources", "directory containing kamelets/<name>.kamelet.yaml")
	cmdDocgen.Flags().StringP("doc", "d", "./README.adoc", "path to the AsciiDoc page")
	cmdDocgen.Flags().BoolP("write", "w", false, "overwrite the page instead of printing to stdout")

	cmdLint := &cobra.Command{
		Use:   "lint",
		Short: "Lint a Kamelet definition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetErrPrefix("Linter errors:\n")
			return lint.NewCommand(
				v.GetString("kamelet.name"),
				os.DirFS(v.GetString("resources")),
			).Execute(cmd.Context())
		},
	}
	cmdLint.Flags().StringP("kamelet", "k", "", "name of the Kamelet, e.g. aws-s3-source")
	cmdLint.Flags().StringP("resources", "r", "src/main/resources", "directory containing kamelets/<name>.kamelet.yaml")

	// The subcommands share the viper keys, bind them right before running
	// so only the flags of the executed command are used.
	for _, c := range []*cobra.Command{cmdGenerate, cmdDocgen, cmdLint} {
		c.PreRunE = func(cmd *cobra.Command, _ []string) error {
			if err := v.BindPFlag("kamelet.name", cmd.Flags().Lookup("kamelet")); err != nil {
				return err
			}
			for _, name := range []string{"output", "resources", "skip", "doc", "write"} {
				if f := cmd.Flags().Lookup(name); f != nil {
					if err := v.BindPFlag(name, f); err != nil {
						return err
					}
				}
			}
			if v.GetString("kamelet.name") == "" {
				return errMissingKamelet
			}
			return nil
		}
	}

	cmdRoot.AddCommand(
		cmdGenerate,
		cmdDocgen,
		cmdLint,
	)
	cmdRoot.CompletionOptions.DisableDefaultCmd = true

	return cmdRoot
}
