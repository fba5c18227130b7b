// Copyright 2025 StreamNative, Inc.
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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/streamnative/affinity-rules/cmd/apply"
	"github.com/streamnative/affinity-rules/cmd/classify"
	"github.com/streamnative/affinity-rules/cmd/decode"
	"github.com/streamnative/affinity-rules/cmd/encode"
	"github.com/streamnative/affinity-rules/cmd/inspect"
	"github.com/streamnative/affinity-rules/cmd/render"
	"github.com/streamnative/affinity-rules/cmd/validate"
	"github.com/streamnative/affinity-rules/common/logging"
)

type LogLevelError string

func (l LogLevelError) Error() string {
	return fmt.Sprintf("unknown log level (%s)", string(l))
}

var (
	logLevelStr string

	rootCmd = &cobra.Command{
		Use:               "affinity-rules",
		Short:             "Translate affinity rules",
		Long:              `Translate between flat affinity rule lists and the Kubernetes affinity of database cluster components`,
		PersistentPreRunE: configureLogging,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&logLevelStr, "log-level", "l", logging.DefaultLogLevel.String(), "Set logging level [debug|info|warn|error]")
	rootCmd.PersistentFlags().BoolVarP(&logging.LogJSON, "log-json", "j", false, "Print logs in JSON format")

	rootCmd.AddCommand(encode.Cmd)
	rootCmd.AddCommand(decode.Cmd)
	rootCmd.AddCommand(classify.Cmd)
	rootCmd.AddCommand(validate.Cmd)
	rootCmd.AddCommand(apply.Cmd)
	rootCmd.AddCommand(render.Cmd)
	rootCmd.AddCommand(inspect.Cmd)
}

func configureLogging(*cobra.Command, []string) error {
	level, err := logging.ParseLogLevel(logLevelStr)
	if err != nil {
		return LogLevelError(logLevelStr)
	}
	logging.LogLevel = level
	logging.ConfigureLogger()
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
