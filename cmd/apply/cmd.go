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

package apply

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/streamnative/affinity-rules/affinity"
	"github.com/streamnative/affinity-rules/cmd/common"
	"github.com/streamnative/affinity-rules/cmd/flag"
	"github.com/streamnative/affinity-rules/kubernetes"
)

type Config struct {
	File       string
	RulesFile  string
	ConfigFile string
}

var (
	config = Config{}

	Cmd = &cobra.Command{
		Use:   "apply",
		Short: "Embed affinity rules into a database cluster",
		Long: `Encode a rule list per component and embed the documents into a database cluster resource.
Without --rules, the default rules of the cluster engine are applied.`,
		Args: cobra.NoArgs,
		RunE: exec,
	}
)

func init() {
	flag.File(Cmd, &config.File, "Cluster file, '-' for stdin")
	flag.Conf(Cmd, &config.ConfigFile)
	Cmd.Flags().StringVarP(&config.RulesFile, "rules", "r", "", "Rules file")
	Cmd.SilenceUsage = true
}

func exec(cmd *cobra.Command, _ []string) error {
	cluster, err := common.ReadCluster(cmd.InOrStdin(), config.File)
	if err != nil {
		return err
	}

	var rules []affinity.Rule
	if config.RulesFile != "" {
		if rules, err = common.ReadRules(cmd.InOrStdin(), config.RulesFile); err != nil {
			return err
		}
	} else {
		table, err := common.LoadDefaultTable(config.ConfigFile)
		if err != nil {
			return err
		}
		engine := cluster.Spec.Engine.Type
		rules = affinity.DefaultRules(table, engine, cluster.Spec.ShardingEnabled())
		slog.Info(
			"Applying default rules",
			slog.Any("engine", engine),
			slog.Bool("sharding", cluster.Spec.ShardingEnabled()),
			slog.Int("rules", len(rules)),
		)
	}

	kubernetes.ApplyRules(cluster, rules)
	return common.WriteYaml(cmd.OutOrStdout(), cluster)
}
