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
	"strings"
)

// Component identifies the logical pod group a rule is applied to.
type Component string

const (
	DBNode       Component = "db-node"
	Proxy        Component = "proxy"
	ConfigServer Component = "config-server"
)

// Components lists every known component in the order documents are decoded.
var Components = []Component{DBNode, Proxy, ConfigServer}

func (c Component) IsValid() bool {
	switch c {
	case DBNode, Proxy, ConfigServer:
		return true
	}
	return false
}

type RuleType string

const (
	NodeAffinity    RuleType = "node-affinity"
	PodAffinity     RuleType = "pod-affinity"
	PodAntiAffinity RuleType = "pod-anti-affinity"
)

func (t RuleType) IsValid() bool {
	switch t {
	case NodeAffinity, PodAffinity, PodAntiAffinity:
		return true
	}
	return false
}

// Priority is the scheduling strength of a rule.
type Priority string

const (
	// Required rules must hold for a pod to be placed.
	Required Priority = "required"
	// Preferred rules are soft and ranked by their weight.
	Preferred Priority = "preferred"
)

func (p Priority) IsValid() bool {
	return p == Required || p == Preferred
}

type Operator string

const (
	In           Operator = "In"
	NotIn        Operator = "NotIn"
	Exists       Operator = "Exists"
	DoesNotExist Operator = "DoesNotExist"
)

func (o Operator) IsValid() bool {
	switch o {
	case In, NotIn, Exists, DoesNotExist:
		return true
	}
	return false
}

// TakesValues reports whether match expressions using the operator carry a value list.
func (o Operator) TakesValues() bool {
	return o == In || o == NotIn
}

const (
	MinWeight int32 = 1
	MaxWeight int32 = 100
)

// Rule is a single flat, user-editable scheduling constraint.
type Rule struct {
	Component   Component `json:"component" yaml:"component"`
	Type        RuleType  `json:"type" yaml:"type"`
	Priority    Priority  `json:"priority" yaml:"priority"`
	Weight      int32     `json:"weight,omitempty" yaml:"weight,omitempty"`
	TopologyKey string    `json:"topologyKey,omitempty" yaml:"topologyKey,omitempty"`
	Key         string    `json:"key,omitempty" yaml:"key,omitempty"`
	Operator    Operator  `json:"operator,omitempty" yaml:"operator,omitempty"`
	Values      string    `json:"values,omitempty" yaml:"values,omitempty"`

	// UID only tracks list items while editing and is never encoded.
	UID string `json:"uid,omitempty" yaml:"uid,omitempty"`
}

// SemanticRule is a Rule without its identity. Values are comparable with ==.
type SemanticRule struct {
	Component   Component
	Type        RuleType
	Priority    Priority
	Weight      int32
	TopologyKey string
	Key         string
	Operator    Operator
	Values      string
}

func (r Rule) Semantic() SemanticRule {
	return SemanticRule{
		Component:   r.Component,
		Type:        r.Type,
		Priority:    r.Priority,
		Weight:      r.Weight,
		TopologyKey: r.TopologyKey,
		Key:         r.Key,
		Operator:    r.Operator,
		Values:      r.Values,
	}
}

// ParseValues splits a comma separated value list, trimming whitespace and
// dropping empty tokens. The result is never nil.
func ParseValues(values string) []string {
	parsed := make([]string, 0)
	for _, token := range strings.Split(values, ",") {
		if token = strings.TrimSpace(token); token != "" {
			parsed = append(parsed, token)
		}
	}
	return parsed
}

// JoinValues is the inverse of ParseValues.
func JoinValues(values []string) string {
	return strings.Join(values, ",")
}
