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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	coreV1 "k8s.io/api/core/v1"
	metaV1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func TestEncodeEmpty(t *testing.T) {
	doc := Encode(nil)
	assert.Equal(t, &coreV1.Affinity{}, doc)

	bytes, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(bytes))

	assert.Equal(t, &coreV1.Affinity{}, Encode([]Rule{}))
}

func TestEncodeRequiredNodeAffinity(t *testing.T) {
	doc := Encode([]Rule{{
		Component: DBNode,
		Type:      NodeAffinity,
		Priority:  Required,
		Key:       "my-key",
		Operator:  Exists,
	}})

	bytes, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"nodeAffinity": {
			"requiredDuringSchedulingIgnoredDuringExecution": {
				"nodeSelectorTerms": [{"matchExpressions": [{"key": "my-key", "operator": "Exists"}]}]
			}
		}
	}`, string(bytes))
}

func TestEncodeRequiredNodeAffinityKeepsOneTermPerRule(t *testing.T) {
	doc := Encode([]Rule{
		{Component: DBNode, Type: NodeAffinity, Priority: Required, Key: "my-key", Operator: Exists},
		{Component: DBNode, Type: NodeAffinity, Priority: Required, Key: "my-key", Operator: In, Values: "value1,value2"},
	})

	assert.Equal(t, &coreV1.Affinity{
		NodeAffinity: &coreV1.NodeAffinity{
			RequiredDuringSchedulingIgnoredDuringExecution: &coreV1.NodeSelector{
				NodeSelectorTerms: []coreV1.NodeSelectorTerm{
					{MatchExpressions: []coreV1.NodeSelectorRequirement{
						{Key: "my-key", Operator: coreV1.NodeSelectorOpExists},
					}},
					{MatchExpressions: []coreV1.NodeSelectorRequirement{
						{Key: "my-key", Operator: coreV1.NodeSelectorOpIn, Values: []string{"value1", "value2"}},
					}},
				},
			},
		},
	}, doc)
}

func TestEncodeMixedRules(t *testing.T) {
	doc := Encode([]Rule{
		{Component: DBNode, Type: NodeAffinity, Priority: Preferred, Weight: 10, Key: "my-key", Operator: Exists},
		{Component: DBNode, Type: PodAffinity, Priority: Required, TopologyKey: "my-topology-key"},
		{
			Component:   DBNode,
			Type:        PodAntiAffinity,
			Priority:    Preferred,
			Weight:      20,
			TopologyKey: "my-topology-key",
			Key:         "my-key",
			Operator:    NotIn,
			Values:      "value1",
		},
	})

	assert.Equal(t, &coreV1.Affinity{
		NodeAffinity: &coreV1.NodeAffinity{
			PreferredDuringSchedulingIgnoredDuringExecution: []coreV1.PreferredSchedulingTerm{{
				Weight: 10,
				Preference: coreV1.NodeSelectorTerm{
					MatchExpressions: []coreV1.NodeSelectorRequirement{
						{Key: "my-key", Operator: coreV1.NodeSelectorOpExists},
					},
				},
			}},
		},
		PodAffinity: &coreV1.PodAffinity{
			RequiredDuringSchedulingIgnoredDuringExecution: []coreV1.PodAffinityTerm{
				{TopologyKey: "my-topology-key"},
			},
		},
		PodAntiAffinity: &coreV1.PodAntiAffinity{
			PreferredDuringSchedulingIgnoredDuringExecution: []coreV1.WeightedPodAffinityTerm{{
				Weight: 20,
				PodAffinityTerm: coreV1.PodAffinityTerm{
					TopologyKey: "my-topology-key",
					LabelSelector: &metaV1.LabelSelector{
						MatchExpressions: []metaV1.LabelSelectorRequirement{
							{Key: "my-key", Operator: metaV1.LabelSelectorOpNotIn, Values: []string{"value1"}},
						},
					},
				},
			}},
		},
	}, doc)

	bytes, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"nodeAffinity": {
			"preferredDuringSchedulingIgnoredDuringExecution": [
				{"weight": 10, "preference": {"matchExpressions": [{"key": "my-key", "operator": "Exists"}]}}
			]
		},
		"podAffinity": {
			"requiredDuringSchedulingIgnoredDuringExecution": [{"topologyKey": "my-topology-key"}]
		},
		"podAntiAffinity": {
			"preferredDuringSchedulingIgnoredDuringExecution": [{
				"weight": 20,
				"podAffinityTerm": {
					"topologyKey": "my-topology-key",
					"labelSelector": {"matchExpressions": [{"key": "my-key", "operator": "NotIn", "values": ["value1"]}]}
				}
			}]
		}
	}`, string(bytes))
}

func TestEncodeDropsStaleValues(t *testing.T) {
	doc := Encode([]Rule{
		{Type: NodeAffinity, Priority: Required, Key: "disk", Operator: Exists, Values: "ssd"},
		{Type: PodAffinity, Priority: Required, TopologyKey: "zone", Key: "app", Operator: DoesNotExist, Values: "db"},
	})

	assert.Nil(t, doc.NodeAffinity.RequiredDuringSchedulingIgnoredDuringExecution.NodeSelectorTerms[0].MatchExpressions[0].Values)
	assert.Nil(t, doc.PodAffinity.RequiredDuringSchedulingIgnoredDuringExecution[0].LabelSelector.MatchExpressions[0].Values)
}

func TestEncodeEmptyValuesForIn(t *testing.T) {
	doc := Encode([]Rule{{Type: NodeAffinity, Priority: Required, Key: "disk", Operator: In}})

	values := doc.NodeAffinity.RequiredDuringSchedulingIgnoredDuringExecution.NodeSelectorTerms[0].MatchExpressions[0].Values
	assert.NotNil(t, values)
	assert.Empty(t, values)
}

func TestEncodePartialRules(t *testing.T) {
	doc := Encode([]Rule{
		{Type: NodeAffinity, Priority: Required, Key: "disk"},
		{Type: "topology-spread", Priority: Required, Key: "ignored"},
		{Type: PodAffinity, Priority: "sometimes", TopologyKey: "ignored"},
	})

	assert.Equal(t, &coreV1.Affinity{
		NodeAffinity: &coreV1.NodeAffinity{
			RequiredDuringSchedulingIgnoredDuringExecution: &coreV1.NodeSelector{
				NodeSelectorTerms: []coreV1.NodeSelectorTerm{
					{MatchExpressions: []coreV1.NodeSelectorRequirement{{Key: "disk"}}},
				},
			},
		},
	}, doc)
}

func TestEncodeOmitsUntouchedSections(t *testing.T) {
	for _, test := range []struct {
		ruleType RuleType
		check    func(*coreV1.Affinity) bool
	}{
		{NodeAffinity, func(doc *coreV1.Affinity) bool {
			return doc.NodeAffinity != nil && doc.PodAffinity == nil && doc.PodAntiAffinity == nil
		}},
		{PodAffinity, func(doc *coreV1.Affinity) bool {
			return doc.NodeAffinity == nil && doc.PodAffinity != nil && doc.PodAntiAffinity == nil
		}},
		{PodAntiAffinity, func(doc *coreV1.Affinity) bool {
			return doc.NodeAffinity == nil && doc.PodAffinity == nil && doc.PodAntiAffinity != nil
		}},
	} {
		t.Run(string(test.ruleType), func(t *testing.T) {
			doc := Encode([]Rule{{
				Type:        test.ruleType,
				Priority:    Preferred,
				Weight:      50,
				TopologyKey: DefaultTopologyKey,
				Key:         "app",
				Operator:    Exists,
			}})
			assert.True(t, test.check(doc))
		})
	}
}

func TestEncodeWeightPlacement(t *testing.T) {
	doc := Encode([]Rule{
		{Type: PodAntiAffinity, Priority: Required, Weight: 30, TopologyKey: "zone"},
		{Type: PodAntiAffinity, Priority: Preferred, Weight: 40, TopologyKey: "zone"},
	})

	required, err := json.Marshal(doc.PodAntiAffinity.RequiredDuringSchedulingIgnoredDuringExecution)
	require.NoError(t, err)
	assert.NotContains(t, string(required), "weight")

	preferred, err := json.Marshal(doc.PodAntiAffinity.PreferredDuringSchedulingIgnoredDuringExecution)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"weight": 40, "podAffinityTerm": {"topologyKey": "zone"}}]`, string(preferred))
}
