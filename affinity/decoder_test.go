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

package affinity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	coreV1 "k8s.io/api/core/v1"
	metaV1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func semantic(rules []Rule) []SemanticRule {
	return lo.Map(rules, func(rule Rule, _ int) SemanticRule {
		return rule.Semantic()
	})
}

func TestDecodeEmpty(t *testing.T) {
	assert.Equal(t, []Rule{}, Decode(nil, DBNode))
	assert.Equal(t, []Rule{}, Decode(&coreV1.Affinity{}, Proxy))
	assert.Equal(t, []Rule{}, Decode(&coreV1.Affinity{
		NodeAffinity:    &coreV1.NodeAffinity{},
		PodAffinity:     &coreV1.PodAffinity{},
		PodAntiAffinity: &coreV1.PodAntiAffinity{},
	}, ConfigServer))
}

func TestDecodeTraversalOrder(t *testing.T) {
	selector := func(key string, op metaV1.LabelSelectorOperator, values ...string) *metaV1.LabelSelector {
		return &metaV1.LabelSelector{MatchExpressions: []metaV1.LabelSelectorRequirement{
			{Key: key, Operator: op, Values: values},
		}}
	}
	doc := &coreV1.Affinity{
		PodAntiAffinity: &coreV1.PodAntiAffinity{
			PreferredDuringSchedulingIgnoredDuringExecution: []coreV1.WeightedPodAffinityTerm{{
				Weight:          20,
				PodAffinityTerm: coreV1.PodAffinityTerm{TopologyKey: "zone", LabelSelector: selector("app", metaV1.LabelSelectorOpNotIn, "a", "b")},
			}},
			RequiredDuringSchedulingIgnoredDuringExecution: []coreV1.PodAffinityTerm{
				{TopologyKey: DefaultTopologyKey},
			},
		},
		PodAffinity: &coreV1.PodAffinity{
			RequiredDuringSchedulingIgnoredDuringExecution: []coreV1.PodAffinityTerm{
				{TopologyKey: "rack", LabelSelector: selector("tier", metaV1.LabelSelectorOpExists)},
			},
		},
		NodeAffinity: &coreV1.NodeAffinity{
			PreferredDuringSchedulingIgnoredDuringExecution: []coreV1.PreferredSchedulingTerm{{
				Weight: 5,
				Preference: coreV1.NodeSelectorTerm{MatchExpressions: []coreV1.NodeSelectorRequirement{
					{Key: "disk", Operator: coreV1.NodeSelectorOpIn, Values: []string{"ssd", "nvme"}},
				}},
			}},
			RequiredDuringSchedulingIgnoredDuringExecution: &coreV1.NodeSelector{
				NodeSelectorTerms: []coreV1.NodeSelectorTerm{
					{MatchExpressions: []coreV1.NodeSelectorRequirement{{Key: "pool", Operator: coreV1.NodeSelectorOpDoesNotExist}}},
				},
			},
		},
	}

	rules := Decode(doc, Proxy)

	assert.Equal(t, []SemanticRule{
		{Component: Proxy, Type: NodeAffinity, Priority: Required, Key: "pool", Operator: DoesNotExist},
		{Component: Proxy, Type: NodeAffinity, Priority: Preferred, Weight: 5, Key: "disk", Operator: In, Values: "ssd,nvme"},
		{Component: Proxy, Type: PodAffinity, Priority: Required, TopologyKey: "rack", Key: "tier", Operator: Exists},
		{Component: Proxy, Type: PodAntiAffinity, Priority: Required, TopologyKey: DefaultTopologyKey},
		{Component: Proxy, Type: PodAntiAffinity, Priority: Preferred, Weight: 20, TopologyKey: "zone", Key: "app", Operator: NotIn, Values: "a,b"},
	}, semantic(rules))
}

func TestDecodeAssignsFreshUIDs(t *testing.T) {
	doc := Encode([]Rule{
		{Type: PodAntiAffinity, Priority: Preferred, Weight: 1, TopologyKey: DefaultTopologyKey, UID: "kept-out"},
		{Type: PodAntiAffinity, Priority: Preferred, Weight: 1, TopologyKey: DefaultTopologyKey, UID: "kept-out"},
	})

	rules := Decode(doc, DBNode)

	assert.Len(t, rules, 2)
	seen := map[string]bool{}
	for _, rule := range rules {
		_, err := uuid.Parse(rule.UID)
		assert.NoError(t, err)
		assert.NotEqual(t, "kept-out", rule.UID)
		seen[rule.UID] = true
	}
	assert.Len(t, seen, 2)
}

func TestDecodeReadsOnlyFirstExpression(t *testing.T) {
	doc := &coreV1.Affinity{
		NodeAffinity: &coreV1.NodeAffinity{
			RequiredDuringSchedulingIgnoredDuringExecution: &coreV1.NodeSelector{
				NodeSelectorTerms: []coreV1.NodeSelectorTerm{{
					MatchExpressions: []coreV1.NodeSelectorRequirement{
						{Key: "first", Operator: coreV1.NodeSelectorOpExists},
						{Key: "second", Operator: coreV1.NodeSelectorOpExists},
					},
				}},
			},
		},
		PodAffinity: &coreV1.PodAffinity{
			RequiredDuringSchedulingIgnoredDuringExecution: []coreV1.PodAffinityTerm{{
				TopologyKey: "zone",
				LabelSelector: &metaV1.LabelSelector{MatchExpressions: []metaV1.LabelSelectorRequirement{
					{Key: "first", Operator: metaV1.LabelSelectorOpExists},
					{Key: "second", Operator: metaV1.LabelSelectorOpExists},
				}},
			}},
		},
	}

	assert.Equal(t, []SemanticRule{
		{Component: DBNode, Type: NodeAffinity, Priority: Required, Key: "first", Operator: Exists},
		{Component: DBNode, Type: PodAffinity, Priority: Required, TopologyKey: "zone", Key: "first", Operator: Exists},
	}, semantic(Decode(doc, DBNode)))
}

func TestDecodeTermWithoutExpressions(t *testing.T) {
	doc := &coreV1.Affinity{
		NodeAffinity: &coreV1.NodeAffinity{
			PreferredDuringSchedulingIgnoredDuringExecution: []coreV1.PreferredSchedulingTerm{{Weight: 3}},
		},
		PodAffinity: &coreV1.PodAffinity{
			PreferredDuringSchedulingIgnoredDuringExecution: []coreV1.WeightedPodAffinityTerm{{
				Weight:          7,
				PodAffinityTerm: coreV1.PodAffinityTerm{TopologyKey: "zone", LabelSelector: &metaV1.LabelSelector{}},
			}},
		},
	}

	assert.Equal(t, []SemanticRule{
		{Component: ConfigServer, Type: NodeAffinity, Priority: Preferred, Weight: 3},
		{Component: ConfigServer, Type: PodAffinity, Priority: Preferred, Weight: 7, TopologyKey: "zone"},
	}, semantic(Decode(doc, ConfigServer)))
}

func TestValueListFidelity(t *testing.T) {
	doc := Encode([]Rule{{Type: NodeAffinity, Priority: Required, Key: "disk", Operator: In, Values: "a, b,c"}})

	assert.Equal(t, []string{"a", "b", "c"},
		doc.NodeAffinity.RequiredDuringSchedulingIgnoredDuringExecution.NodeSelectorTerms[0].MatchExpressions[0].Values)

	rules := Decode(doc, DBNode)
	assert.Equal(t, "a,b,c", rules[0].Values)
}
