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

package kubernetes

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	k8sErrors "k8s.io/apimachinery/pkg/api/errors"
	k8s "k8s.io/client-go/kubernetes"

	"github.com/streamnative/affinity-rules/affinity"
	"github.com/streamnative/affinity-rules/pkg/apis/database/v1alpha1"
)

// ClusterClient reconciles the component workloads of a cluster and reads
// back the affinity they currently run with.
type ClusterClient interface {
	Apply(ctx context.Context, cluster *v1alpha1.DatabaseCluster) error
	Rules(ctx context.Context, namespace, name string) ([]affinity.Rule, error)
}

type clusterClientImpl struct {
	kubernetes k8s.Interface
}

func NewClusterClient(kubernetes k8s.Interface) ClusterClient {
	return &clusterClientImpl{
		kubernetes: kubernetes,
	}
}

func (c *clusterClientImpl) Apply(ctx context.Context, cluster *v1alpha1.DatabaseCluster) error {
	var errs error
	for _, component := range ComponentsOf(cluster) {
		_, err := StatefulSets(c.kubernetes).Upsert(ctx, cluster.Namespace, StatefulSet(cluster, component))
		errs = multierr.Append(errs, errors.Wrapf(err, "failed to apply %s", component))
	}
	return errs
}

// Rules decodes the pod affinity of every component workload found for the
// cluster. Missing workloads contribute no rules.
func (c *clusterClientImpl) Rules(ctx context.Context, namespace, name string) ([]affinity.Rule, error) {
	rules := make([]affinity.Rule, 0)
	for _, component := range affinity.Components {
		statefulSet, err := StatefulSets(c.kubernetes).Get(ctx, namespace, resourceName(component, name))
		if k8sErrors.IsNotFound(err) {
			slog.Debug(
				"No workload found for component",
				slog.String("namespace", namespace),
				slog.String("cluster", name),
				slog.Any("component", component),
			)
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to get %s workload", component)
		}
		rules = append(rules, affinity.Decode(statefulSet.Spec.Template.Spec.Affinity, component)...)
	}
	return rules, nil
}
