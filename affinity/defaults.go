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
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type EngineType string

const (
	PXC        EngineType = "pxc"
	PSMDB      EngineType = "psmdb"
	PostgreSQL EngineType = "postgresql"
)

const DefaultTopologyKey = "kubernetes.io/hostname"

// DefaultKey selects a default rule set.
type DefaultKey struct {
	Engine   EngineType
	Sharding bool
}

// DefaultTable maps an engine and sharding flag to the rules a new cluster
// starts with. A missing entry means the combination has no default.
type DefaultTable map[DefaultKey][]Rule

// DefaultEntry is the serialized form of one table entry.
type DefaultEntry struct {
	Engine   EngineType `json:"engine" yaml:"engine"`
	Sharding bool       `json:"sharding" yaml:"sharding"`
	Rules    []Rule     `json:"rules" yaml:"rules"`
}

func NewDefaultTable(entries ...DefaultEntry) DefaultTable {
	table := make(DefaultTable, len(entries))
	for _, entry := range entries {
		key := DefaultKey{Engine: entry.Engine, Sharding: entry.Sharding}
		table[key] = append(table[key], entry.Rules...)
	}
	return table
}

// BuiltinDefaults returns a new copy of the built-in table: one preferred
// pod anti-affinity rule spreading each component across hosts.
func BuiltinDefaults() DefaultTable {
	return NewDefaultTable(
		DefaultEntry{Engine: PXC, Rules: spreadAcrossHosts(DBNode, Proxy)},
		DefaultEntry{Engine: PostgreSQL, Rules: spreadAcrossHosts(DBNode, Proxy)},
		DefaultEntry{Engine: PSMDB, Rules: spreadAcrossHosts(DBNode)},
		DefaultEntry{Engine: PSMDB, Sharding: true, Rules: spreadAcrossHosts(DBNode, Proxy, ConfigServer)},
	)
}

func spreadAcrossHosts(components ...Component) []Rule {
	return lo.Map(components, func(component Component, _ int) Rule {
		return Rule{
			Component:   component,
			Type:        PodAntiAffinity,
			Priority:    Preferred,
			Weight:      1,
			TopologyKey: DefaultTopologyKey,
		}
	})
}

// DefaultRules returns the default rules for the engine with fresh UIDs, or
// nil when the table has no entry for it.
func DefaultRules(table DefaultTable, engine EngineType, sharding bool) []Rule {
	defaults, ok := table[DefaultKey{Engine: engine, Sharding: sharding}]
	if !ok {
		return nil
	}
	return lo.Map(defaults, func(rule Rule, _ int) Rule {
		rule.UID = uuid.NewString()
		return rule
	})
}
