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

package classify

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/streamnative/affinity-rules/affinity"
	"github.com/streamnative/affinity-rules/cmd/common"
	"github.com/streamnative/affinity-rules/cmd/flag"
)

type Config struct {
	File       string
	ConfigFile string
	Engine     string
	Sharding   bool
}

var (
	config = Config{}

	Cmd = &cobra.Command{
		Use:   "classify",
		Short: "Check whether rules are the engine defaults",
		Long:  `Print true when the rules are exactly the default rule set of the engine, false otherwise`,
		Args:  cobra.NoArgs,
		RunE:  exec,
	}
)

func init() {
	flag.File(Cmd, &config.File, "Rules file, '-' for stdin")
	flag.Conf(Cmd, &config.ConfigFile)
	Cmd.Flags().StringVarP(&config.Engine, "engine", "e", string(affinity.PXC), "Database engine: pxc, psmdb or postgresql")
	Cmd.Flags().BoolVar(&config.Sharding, "sharding", false, "Whether the cluster is sharded")
	Cmd.SilenceUsage = true
}

func exec(cmd *cobra.Command, _ []string) error {
	table, err := common.LoadDefaultTable(config.ConfigFile)
	if err != nil {
		return err
	}
	rules, err := common.ReadRules(cmd.InOrStdin(), config.File)
	if err != nil {
		return err
	}

	isDefault := affinity.IsDefaultRuleSet(rules, table, affinity.EngineType(config.Engine), config.Sharding)
	_, err = fmt.Fprintln(cmd.OutOrStdout(), isDefault)
	return err
}
