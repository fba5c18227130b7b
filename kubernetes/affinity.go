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
	"log/slog"

	"github.com/samber/lo"
	coreV1 "k8s.io/api/core/v1"

	"github.com/streamnative/affinity-rules/affinity"
	"github.com/streamnative/affinity-rules/pkg/apis/database/v1alpha1"
)

// ComponentsOf lists the components a cluster runs, in decoding order.
func ComponentsOf(cluster *v1alpha1.DatabaseCluster) []affinity.Component {
	components := []affinity.Component{affinity.DBNode, affinity.Proxy}
	if cluster.Spec.ShardingEnabled() {
		components = append(components, affinity.ConfigServer)
	}
	return components
}

// AffinityFor returns the affinity document embedded for the component, or nil.
func AffinityFor(cluster *v1alpha1.DatabaseCluster, component affinity.Component) *coreV1.Affinity {
	switch component {
	case affinity.DBNode:
		return cluster.Spec.Engine.Affinity
	case affinity.Proxy:
		return cluster.Spec.Proxy.Affinity
	case affinity.ConfigServer:
		if cluster.Spec.Sharding != nil {
			return cluster.Spec.Sharding.ConfigServer.Affinity
		}
	}
	return nil
}

// SetAffinity embeds the document at the component position. Empty documents
// are stored as nil so that the affinity key is omitted from the resource.
// It reports false when the cluster has no position for the component.
func SetAffinity(cluster *v1alpha1.DatabaseCluster, component affinity.Component, doc *coreV1.Affinity) bool {
	if isEmpty(doc) {
		doc = nil
	}
	switch component {
	case affinity.DBNode:
		cluster.Spec.Engine.Affinity = doc
	case affinity.Proxy:
		cluster.Spec.Proxy.Affinity = doc
	case affinity.ConfigServer:
		if cluster.Spec.Sharding == nil {
			return doc == nil
		}
		cluster.Spec.Sharding.ConfigServer.Affinity = doc
	default:
		return false
	}
	return true
}

func isEmpty(doc *coreV1.Affinity) bool {
	return doc == nil || (doc.NodeAffinity == nil && doc.PodAffinity == nil && doc.PodAntiAffinity == nil)
}

// LoadRules flattens every component's affinity into a single editable list.
func LoadRules(cluster *v1alpha1.DatabaseCluster) []affinity.Rule {
	rules := make([]affinity.Rule, 0)
	for _, component := range ComponentsOf(cluster) {
		rules = append(rules, affinity.Decode(AffinityFor(cluster, component), component)...)
	}
	return rules
}

// ApplyRules replaces the affinity of every component with the encoding of
// its rules. Components without rules lose their affinity, and so do
// components the cluster does not run. Rules for those are dropped.
func ApplyRules(cluster *v1alpha1.DatabaseCluster, rules []affinity.Rule) {
	partitions := affinity.PartitionByComponent(rules)
	running := ComponentsOf(cluster)
	for _, component := range running {
		SetAffinity(cluster, component, affinity.Encode(partitions[component]))
		delete(partitions, component)
	}
	for _, component := range lo.Without(affinity.Components, running...) {
		SetAffinity(cluster, component, nil)
	}

	for component, dropped := range partitions {
		slog.Warn(
			"Dropping affinity rules for a component the cluster does not run",
			slog.String("cluster", cluster.Name),
			slog.Any("component", component),
			slog.Int("rules", len(dropped)),
		)
	}
}

// IsDefault reports whether rules are the default set for the cluster engine.
func IsDefault(cluster *v1alpha1.DatabaseCluster, rules []affinity.Rule, table affinity.DefaultTable) bool {
	return affinity.IsDefaultRuleSet(rules, table, cluster.Spec.Engine.Type, cluster.Spec.ShardingEnabled())
}
