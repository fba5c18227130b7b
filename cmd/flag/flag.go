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

package flag

import (
	"github.com/spf13/cobra"

	"github.com/streamnative/affinity-rules/cmd/common"
)

func File(cmd *cobra.Command, conf *string, usage string) {
	cmd.Flags().StringVarP(conf, "file", "f", common.Stdin, usage)
}

func Conf(cmd *cobra.Command, conf *string) {
	cmd.Flags().StringVarP(conf, "conf", "c", "", "Default rule table file, the built-in table is used when unset")
}

func Component(cmd *cobra.Command, conf *string) {
	cmd.Flags().StringVar(conf, "component", "", "Component: db-node, proxy or config-server")
}
