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

package v1alpha1

import (
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/streamnative/affinity-rules/affinity"
)

const (
	Group   = "console.streamnative.io"
	Version = "v1alpha1"
	Kind    = "DatabaseCluster"
)

// EngineType is the engine vocabulary the default rule table is keyed by.
type EngineType = affinity.EngineType

const (
	EnginePXC        = affinity.PXC
	EnginePSMDB      = affinity.PSMDB
	EnginePostgreSQL = affinity.PostgreSQL
)

// DatabaseCluster is a specification for a DatabaseCluster resource
type DatabaseCluster struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec DatabaseClusterSpec `json:"spec"`
}

// DatabaseClusterSpec is the spec for a DatabaseCluster resource
type DatabaseClusterSpec struct {
	// Engine contains configuration specific to the database nodes
	Engine Engine `json:"engine"`

	// Proxy contains configuration specific to the proxy or router in front of the database nodes
	Proxy Proxy `json:"proxy,omitempty"`

	// Sharding is only honoured by engines that support it
	Sharding *Sharding `json:"sharding,omitempty"`

	// Image contains configuration specific to the image being used
	Image Image `json:"image,omitempty"`
}

type Engine struct {
	// Type is the database engine, one of pxc, psmdb or postgresql
	Type EngineType `json:"type"`

	// Replicas is the number of database pods that should be running
	Replicas int32 `json:"replicas"`

	// Storage describes the size of the persistent volume allocated to each pod
	Storage resource.Quantity `json:"storage,omitempty"`

	// Resources describes the requests and limits allocated to each pod
	Resources corev1.ResourceRequirements `json:"resources,omitempty"`

	// Affinity constrains the placement of the database pods
	Affinity *corev1.Affinity `json:"affinity,omitempty"`
}

type Proxy struct {
	// Replicas is the number of proxy pods that should be running
	Replicas int32 `json:"replicas,omitempty"`

	// Resources describes the requests and limits allocated to each pod
	Resources corev1.ResourceRequirements `json:"resources,omitempty"`

	// Affinity constrains the placement of the proxy pods
	Affinity *corev1.Affinity `json:"affinity,omitempty"`
}

type Sharding struct {
	Enabled bool `json:"enabled"`

	// Shards is the number of shards the data set is split into
	Shards int32 `json:"shards,omitempty"`

	// ConfigServer contains configuration specific to the config server replica set
	ConfigServer ConfigServer `json:"configServer,omitempty"`
}

type ConfigServer struct {
	// Replicas is the number of config server pods that should be running
	Replicas int32 `json:"replicas,omitempty"`

	// Affinity constrains the placement of the config server pods
	Affinity *corev1.Affinity `json:"affinity,omitempty"`
}

type Image struct {
	// Repository is the container image name
	Repository string `json:"repository,omitempty"`

	// Tag is the container image tag
	Tag string `json:"tag,omitempty"`

	// PullPolicy is one of Always, Never, IfNotPresent
	PullPolicy *corev1.PullPolicy `json:"pullPolicy,omitempty"`
}

// ShardingEnabled reports whether the cluster runs a sharded topology.
func (s *DatabaseClusterSpec) ShardingEnabled() bool {
	return s.Sharding != nil && s.Sharding.Enabled
}
