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
	"github.com/samber/lo"
	"golang.org/x/exp/maps"
)

// IsDefaultRuleSet reports whether rules are exactly the default set of the
// engine for the given sharding flag. Rules are compared per component,
// ignoring order and UIDs.
func IsDefaultRuleSet(rules []Rule, table DefaultTable, engine EngineType, sharding bool) bool {
	defaults, ok := table[DefaultKey{Engine: engine, Sharding: sharding}]
	if !ok || len(defaults) != len(rules) {
		return false
	}

	actual := PartitionByComponent(rules)
	expected := PartitionByComponent(defaults)
	if len(actual) != len(expected) {
		return false
	}
	for component, want := range expected {
		if !sameRules(actual[component], want) {
			return false
		}
	}
	return true
}

func sameRules(a, b []Rule) bool {
	if len(a) != len(b) {
		return false
	}
	return maps.Equal(
		lo.CountValuesBy(a, Rule.Semantic),
		lo.CountValuesBy(b, Rule.Semantic),
	)
}

// PartitionByComponent splits rules per component, keeping their relative order.
func PartitionByComponent(rules []Rule) map[Component][]Rule {
	return lo.GroupBy(rules, func(rule Rule) Component {
		return rule.Component
	})
}
