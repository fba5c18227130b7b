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
	"log/slog"

	"github.com/google/uuid"
	coreV1 "k8s.io/api/core/v1"
)

// Decode flattens an affinity document into rules tagged with the given
// component. Rules are produced in the order node affinity (required,
// preferred), pod affinity (required, preferred), pod anti-affinity
// (required, preferred), and each one gets a fresh UID.
//
// Only the first match expression of a term is read. A nil document, or one
// without any recognised section, yields an empty list.
func Decode(doc *coreV1.Affinity, component Component) []Rule {
	d := decoder{component: component, rules: make([]Rule, 0)}
	if doc == nil {
		return d.rules
	}

	if na := doc.NodeAffinity; na != nil {
		if na.RequiredDuringSchedulingIgnoredDuringExecution != nil {
			for _, term := range na.RequiredDuringSchedulingIgnoredDuringExecution.NodeSelectorTerms {
				d.node(Required, 0, term)
			}
		}
		for _, term := range na.PreferredDuringSchedulingIgnoredDuringExecution {
			d.node(Preferred, term.Weight, term.Preference)
		}
	}

	if pa := doc.PodAffinity; pa != nil {
		d.pod(PodAffinity, pa.RequiredDuringSchedulingIgnoredDuringExecution, pa.PreferredDuringSchedulingIgnoredDuringExecution)
	}
	if paa := doc.PodAntiAffinity; paa != nil {
		d.pod(PodAntiAffinity, paa.RequiredDuringSchedulingIgnoredDuringExecution, paa.PreferredDuringSchedulingIgnoredDuringExecution)
	}

	return d.rules
}

type decoder struct {
	component Component
	rules     []Rule
}

func (d *decoder) emit(rule Rule) {
	rule.Component = d.component
	rule.UID = uuid.NewString()
	d.rules = append(d.rules, rule)
}

func (d *decoder) node(priority Priority, weight int32, term coreV1.NodeSelectorTerm) {
	rule := Rule{Type: NodeAffinity, Priority: priority, Weight: weight}
	if len(term.MatchExpressions) > 0 {
		expression := term.MatchExpressions[0]
		rule.Key = expression.Key
		rule.Operator = Operator(expression.Operator)
		rule.Values = JoinValues(expression.Values)
		d.dropped(NodeAffinity, len(term.MatchExpressions)-1)
	}
	d.emit(rule)
}

func (d *decoder) pod(ruleType RuleType, required []coreV1.PodAffinityTerm, preferred []coreV1.WeightedPodAffinityTerm) {
	for _, term := range required {
		d.podTerm(ruleType, Required, 0, term)
	}
	for _, term := range preferred {
		d.podTerm(ruleType, Preferred, term.Weight, term.PodAffinityTerm)
	}
}

func (d *decoder) podTerm(ruleType RuleType, priority Priority, weight int32, term coreV1.PodAffinityTerm) {
	rule := Rule{
		Type:        ruleType,
		Priority:    priority,
		Weight:      weight,
		TopologyKey: term.TopologyKey,
	}
	if selector := term.LabelSelector; selector != nil && len(selector.MatchExpressions) > 0 {
		expression := selector.MatchExpressions[0]
		rule.Key = expression.Key
		rule.Operator = Operator(expression.Operator)
		rule.Values = JoinValues(expression.Values)
		d.dropped(ruleType, len(selector.MatchExpressions)-1)
	}
	d.emit(rule)
}

func (d *decoder) dropped(ruleType RuleType, count int) {
	if count <= 0 {
		return
	}
	slog.Debug(
		"Ignoring match expressions beyond the first one",
		slog.Any("component", d.component),
		slog.Any("type", ruleType),
		slog.Int("dropped", count),
	)
}
