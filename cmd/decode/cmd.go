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

package decode

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	coreV1 "k8s.io/api/core/v1"

	"github.com/streamnative/affinity-rules/affinity"
	"github.com/streamnative/affinity-rules/cmd/common"
	"github.com/streamnative/affinity-rules/cmd/flag"
	"github.com/streamnative/affinity-rules/kubernetes"
)

type Config struct {
	File      string
	Component string
}

var (
	config = Config{}

	Cmd = &cobra.Command{
		Use:   "decode",
		Short: "Decode affinity documents into rules",
		Long: `Decode the affinity of every component of a database cluster into a flat rule list.
With --component, the file holds a single affinity document for that component.`,
		Args: cobra.NoArgs,
		RunE: exec,
	}
)

func init() {
	flag.File(Cmd, &config.File, "Cluster or affinity file, '-' for stdin")
	flag.Component(Cmd, &config.Component)
	Cmd.SilenceUsage = true
}

func exec(cmd *cobra.Command, _ []string) error {
	if config.Component == "" {
		cluster, err := common.ReadCluster(cmd.InOrStdin(), config.File)
		if err != nil {
			return err
		}
		return common.WriteYaml(cmd.OutOrStdout(), kubernetes.LoadRules(cluster))
	}

	component := affinity.Component(config.Component)
	if !component.IsValid() {
		return errors.Wrapf(affinity.ErrUnknownComponent, "%q", config.Component)
	}
	doc := &coreV1.Affinity{}
	if err := common.ReadYaml(cmd.InOrStdin(), config.File, doc); err != nil {
		return err
	}
	return common.WriteYaml(cmd.OutOrStdout(), affinity.Decode(doc, component))
}
