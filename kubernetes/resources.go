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
	"fmt"

	"golang.org/x/exp/maps"
	appsV1 "k8s.io/api/apps/v1"
	coreV1 "k8s.io/api/core/v1"
	metaV1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	"github.com/streamnative/affinity-rules/affinity"
	"github.com/streamnative/affinity-rules/pkg/apis/database/v1alpha1"
)

func resourceName(component affinity.Component, name string) string {
	switch component {
	case affinity.Proxy:
		return name + "-proxy"
	case affinity.ConfigServer:
		return name + "-cfg"
	}
	return name
}

func objectMeta(component affinity.Component, cluster *v1alpha1.DatabaseCluster) metaV1.ObjectMeta {
	return metaV1.ObjectMeta{
		Name:      resourceName(component, cluster.Name),
		Namespace: cluster.Namespace,
		Labels:    allLabels(component, cluster),
	}
}

func allLabels(component affinity.Component, cluster *v1alpha1.DatabaseCluster) map[string]string {
	_allLabels := make(map[string]string)
	maps.Copy(_allLabels, selectorLabels(component, cluster.Name))
	maps.Copy(_allLabels, additionalLabels(cluster))
	return _allLabels
}

func selectorLabels(component affinity.Component, name string) map[string]string {
	return map[string]string{
		"app.kubernetes.io/name":      "database-cluster",
		"app.kubernetes.io/component": string(component),
		"app.kubernetes.io/instance":  name,
	}
}

func additionalLabels(cluster *v1alpha1.DatabaseCluster) map[string]string {
	return map[string]string{
		"app.kubernetes.io/version":    cluster.Spec.Image.Tag,
		"app.kubernetes.io/part-of":    string(cluster.Spec.Engine.Type),
		"app.kubernetes.io/managed-by": "affinity-rules",
	}
}

func replicas(component affinity.Component, cluster *v1alpha1.DatabaseCluster) int32 {
	switch component {
	case affinity.Proxy:
		return cluster.Spec.Proxy.Replicas
	case affinity.ConfigServer:
		if cluster.Spec.Sharding != nil {
			return cluster.Spec.Sharding.ConfigServer.Replicas
		}
		return 0
	}
	return cluster.Spec.Engine.Replicas
}

// StatefulSet renders the workload of a component with its affinity embedded
// in the pod template.
func StatefulSet(cluster *v1alpha1.DatabaseCluster, component affinity.Component) *appsV1.StatefulSet {
	_resourceName := resourceName(component, cluster.Name)
	statefulSet := &appsV1.StatefulSet{
		ObjectMeta: objectMeta(component, cluster),
		Spec: appsV1.StatefulSetSpec{
			Replicas:    ptr.To(replicas(component, cluster)),
			Selector:    &metaV1.LabelSelector{MatchLabels: selectorLabels(component, cluster.Name)},
			ServiceName: _resourceName,
			Template: coreV1.PodTemplateSpec{
				ObjectMeta: objectMeta(component, cluster),
				Spec: coreV1.PodSpec{
					Affinity: AffinityFor(cluster, component).DeepCopy(),
					Containers: []coreV1.Container{{
						Name:  string(component),
						Image: image(cluster.Spec.Image),
						Ports: transform(ports(cluster.Spec.Engine.Type, component), containerPort),
					}},
				},
			},
		},
	}
	if component == affinity.DBNode {
		statefulSet.Spec.Template.Spec.Containers[0].Resources = cluster.Spec.Engine.Resources
	} else if component == affinity.Proxy {
		statefulSet.Spec.Template.Spec.Containers[0].Resources = cluster.Spec.Proxy.Resources
	}
	if cluster.Spec.Image.PullPolicy != nil {
		statefulSet.Spec.Template.Spec.Containers[0].ImagePullPolicy = *cluster.Spec.Image.PullPolicy
	}
	return statefulSet
}

func image(image v1alpha1.Image) string {
	if image.Tag == "" {
		return image.Repository
	}
	return fmt.Sprintf("%s:%s", image.Repository, image.Tag)
}

func containerPort(port NamedPort) coreV1.ContainerPort {
	return coreV1.ContainerPort{
		ContainerPort: int32(port.Port),
		Name:          port.Name,
	}
}

func transform[To any](ports []NamedPort, toFunc func(NamedPort) To) []To {
	to := make([]To, len(ports))
	for i, port := range ports {
		to[i] = toFunc(port)
	}
	return to
}
