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
	coreV1 "k8s.io/api/core/v1"
	metaV1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Encode builds the affinity document for a rule list that already belongs to
// a single component. It never fails: incomplete rules produce minimal match
// expressions and rules of unknown type or priority are skipped.
//
// Every rule produces exactly one term. Required node rules are never merged
// into the match expressions of a shared term.
func Encode(rules []Rule) *coreV1.Affinity {
	doc := &coreV1.Affinity{}

	var node nodeBucket
	var pod, antiPod podBucket
	for _, rule := range rules {
		switch rule.Type {
		case NodeAffinity:
			node.add(rule)
		case PodAffinity:
			pod.add(rule)
		case PodAntiAffinity:
			antiPod.add(rule)
		}
	}

	doc.NodeAffinity = node.build()
	if required, preferred, ok := pod.build(); ok {
		doc.PodAffinity = &coreV1.PodAffinity{
			RequiredDuringSchedulingIgnoredDuringExecution:  required,
			PreferredDuringSchedulingIgnoredDuringExecution: preferred,
		}
	}
	if required, preferred, ok := antiPod.build(); ok {
		doc.PodAntiAffinity = &coreV1.PodAntiAffinity{
			RequiredDuringSchedulingIgnoredDuringExecution:  required,
			PreferredDuringSchedulingIgnoredDuringExecution: preferred,
		}
	}
	return doc
}

type nodeBucket struct {
	required  []coreV1.NodeSelectorTerm
	preferred []coreV1.PreferredSchedulingTerm
}

func (b *nodeBucket) add(rule Rule) {
	term := coreV1.NodeSelectorTerm{
		MatchExpressions: []coreV1.NodeSelectorRequirement{nodeRequirement(rule)},
	}
	switch rule.Priority {
	case Required:
		b.required = append(b.required, term)
	case Preferred:
		b.preferred = append(b.preferred, coreV1.PreferredSchedulingTerm{
			Weight:     rule.Weight,
			Preference: term,
		})
	}
}

func (b *nodeBucket) build() *coreV1.NodeAffinity {
	if len(b.required) == 0 && len(b.preferred) == 0 {
		return nil
	}
	nodeAffinity := &coreV1.NodeAffinity{
		PreferredDuringSchedulingIgnoredDuringExecution: b.preferred,
	}
	if len(b.required) > 0 {
		nodeAffinity.RequiredDuringSchedulingIgnoredDuringExecution = &coreV1.NodeSelector{
			NodeSelectorTerms: b.required,
		}
	}
	return nodeAffinity
}

// podBucket serves both pod affinity and pod anti-affinity, which share a shape.
type podBucket struct {
	required  []coreV1.PodAffinityTerm
	preferred []coreV1.WeightedPodAffinityTerm
}

func (b *podBucket) add(rule Rule) {
	term := coreV1.PodAffinityTerm{
		TopologyKey:   rule.TopologyKey,
		LabelSelector: labelSelector(rule),
	}
	switch rule.Priority {
	case Required:
		b.required = append(b.required, term)
	case Preferred:
		b.preferred = append(b.preferred, coreV1.WeightedPodAffinityTerm{
			Weight:          rule.Weight,
			PodAffinityTerm: term,
		})
	}
}

func (b *podBucket) build() ([]coreV1.PodAffinityTerm, []coreV1.WeightedPodAffinityTerm, bool) {
	return b.required, b.preferred, len(b.required) > 0 || len(b.preferred) > 0
}

func nodeRequirement(rule Rule) coreV1.NodeSelectorRequirement {
	requirement := coreV1.NodeSelectorRequirement{
		Key:      rule.Key,
		Operator: coreV1.NodeSelectorOperator(rule.Operator),
	}
	if rule.Operator.TakesValues() {
		requirement.Values = ParseValues(rule.Values)
	}
	return requirement
}

// labelSelector is nil when the rule only carries a topology key.
func labelSelector(rule Rule) *metaV1.LabelSelector {
	if rule.Key == "" {
		return nil
	}
	requirement := metaV1.LabelSelectorRequirement{
		Key:      rule.Key,
		Operator: metaV1.LabelSelectorOperator(rule.Operator),
	}
	if rule.Operator.TakesValues() {
		requirement.Values = ParseValues(rule.Values)
	}
	return &metaV1.LabelSelector{
		MatchExpressions: []metaV1.LabelSelectorRequirement{requirement},
	}
}
