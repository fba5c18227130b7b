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

package inspect

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	k8s "k8s.io/client-go/kubernetes"

	"github.com/streamnative/affinity-rules/cmd/common"
	"github.com/streamnative/affinity-rules/kubernetes"
)

type Config struct {
	Namespace string
	Name      string
	Timeout   time.Duration
}

func NewConfig() Config {
	return Config{
		Namespace: "default",
		Timeout:   30 * time.Second,
	}
}

var (
	config = NewConfig()

	// NewClientset is replaced in tests.
	NewClientset = func() (k8s.Interface, error) {
		restConfig, err := kubernetes.NewClientConfig()
		if err != nil {
			return nil, err
		}
		return kubernetes.NewKubernetesClientset(restConfig)
	}

	Cmd = &cobra.Command{
		Use:     "inspect",
		Short:   "Read affinity rules from running workloads",
		Long:    `Decode the pod affinity of the workloads of a running database cluster into a flat rule list`,
		Args:    cobra.NoArgs,
		PreRunE: validate,
		RunE:    exec,
	}
)

func init() {
	Cmd.Flags().StringVarP(&config.Namespace, "namespace", "n", config.Namespace, "Kubernetes namespace of the cluster")
	Cmd.Flags().StringVar(&config.Name, "name", config.Name, "Database cluster name")
	Cmd.Flags().DurationVar(&config.Timeout, "timeout", config.Timeout, "Timeout for Kubernetes API calls")
	Cmd.SilenceUsage = true
}

func validate(*cobra.Command, []string) error {
	if config.Name == "" {
		return errors.New("name must be set")
	}
	return nil
}

func exec(cmd *cobra.Command, _ []string) error {
	clientset, err := NewClientset()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), config.Timeout)
	defer cancel()

	rules, err := kubernetes.NewClusterClient(clientset).Rules(ctx, config.Namespace, config.Name)
	if err != nil {
		return err
	}
	return common.WriteYaml(cmd.OutOrStdout(), rules)
}
