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

package encode

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	coreV1 "k8s.io/api/core/v1"

	"github.com/streamnative/affinity-rules/affinity"
	"github.com/streamnative/affinity-rules/cmd/common"
	"github.com/streamnative/affinity-rules/cmd/flag"
)

type Config struct {
	File      string
	Component string
}

var (
	config = Config{}

	Cmd = &cobra.Command{
		Use:   "encode",
		Short: "Encode affinity rules",
		Long:  `Encode a flat list of affinity rules into one affinity document per component`,
		Args:  cobra.NoArgs,
		RunE:  exec,
	}
)

func init() {
	flag.File(Cmd, &config.File, "Rules file, '-' for stdin")
	flag.Component(Cmd, &config.Component)
	Cmd.SilenceUsage = true
}

func exec(cmd *cobra.Command, _ []string) error {
	rules, err := common.ReadRules(cmd.InOrStdin(), config.File)
	if err != nil {
		return err
	}

	partitions := affinity.PartitionByComponent(rules)
	if config.Component != "" {
		component := affinity.Component(config.Component)
		if !component.IsValid() {
			return errors.Wrapf(affinity.ErrUnknownComponent, "%q", config.Component)
		}
		return common.WriteYaml(cmd.OutOrStdout(), affinity.Encode(partitions[component]))
	}

	documents := make(map[affinity.Component]*coreV1.Affinity, len(partitions))
	for component, partition := range partitions {
		documents[component] = affinity.Encode(partition)
	}
	return common.WriteYaml(cmd.OutOrStdout(), documents)
}
