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

package render

import (
	"github.com/spf13/cobra"

	"github.com/streamnative/affinity-rules/cmd/common"
	"github.com/streamnative/affinity-rules/cmd/flag"
	"github.com/streamnative/affinity-rules/kubernetes"
)

var (
	file string

	Cmd = &cobra.Command{
		Use:   "render",
		Short: "Render component workloads",
		Long:  `Render the StatefulSet of every component of a database cluster, with its affinity in the pod template`,
		Args:  cobra.NoArgs,
		RunE:  exec,
	}
)

func init() {
	flag.File(Cmd, &file, "Cluster file, '-' for stdin")
	Cmd.SilenceUsage = true
}

func exec(cmd *cobra.Command, _ []string) error {
	cluster, err := common.ReadCluster(cmd.InOrStdin(), file)
	if err != nil {
		return err
	}

	for i, component := range kubernetes.ComponentsOf(cluster) {
		if i > 0 {
			if _, err := cmd.OutOrStdout().Write([]byte("---\n")); err != nil {
				return err
			}
		}
		if err := common.WriteYaml(cmd.OutOrStdout(), kubernetes.StatefulSet(cluster, component)); err != nil {
			return err
		}
	}
	return nil
}
