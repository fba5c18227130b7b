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
	"context"

	"github.com/pkg/errors"
	appsV1 "k8s.io/api/apps/v1"
	k8sErrors "k8s.io/apimachinery/pkg/api/errors"
	metaV1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	k8s "k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

func NewClientConfig() (*rest.Config, error) {
	kubeconfigGetter := clientcmd.NewDefaultClientConfigLoadingRules().Load
	config, err := clientcmd.BuildConfigFromKubeconfigGetter("", kubeconfigGetter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load kubeconfig")
	}
	return config, nil
}

func NewKubernetesClientset(config *rest.Config) (k8s.Interface, error) {
	clientset, err := k8s.NewForConfig(config)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create client")
	}
	return clientset, nil
}

func StatefulSets(kubernetes k8s.Interface) Client[appsV1.StatefulSet] {
	return newNamespaceClient[appsV1.StatefulSet](func(namespace string) ResourceInterface[appsV1.StatefulSet] {
		return kubernetes.AppsV1().StatefulSets(namespace)
	})
}

func newNamespaceClient[Resource resource](clientFunc func(string) ResourceInterface[Resource]) Client[Resource] {
	return &clientImpl[Resource]{
		clientFunc: clientFunc,
	}
}

type ResourceInterface[Resource resource] interface {
	Create(ctx context.Context, obj *Resource, opts metaV1.CreateOptions) (*Resource, error)
	Update(ctx context.Context, obj *Resource, opts metaV1.UpdateOptions) (*Resource, error)
	Get(ctx context.Context, name string, opts metaV1.GetOptions) (*Resource, error)
}

type resource interface {
	appsV1.StatefulSet
}

type Client[Resource resource] interface {
	Upsert(ctx context.Context, namespace string, resource *Resource) (*Resource, error)
	Get(ctx context.Context, namespace, name string) (*Resource, error)
}

type clientImpl[Resource resource] struct {
	clientFunc func(string) ResourceInterface[Resource]
}

func (c *clientImpl[Resource]) Upsert(ctx context.Context, namespace string, resource *Resource) (*Resource, error) {
	client := c.clientFunc(namespace)
	result, err := client.Update(ctx, resource, metaV1.UpdateOptions{})
	if k8sErrors.IsNotFound(err) {
		result, err = client.Create(ctx, resource, metaV1.CreateOptions{})
	}
	return result, err
}

func (c *clientImpl[Resource]) Get(ctx context.Context, namespace, name string) (*Resource, error) {
	client := c.clientFunc(namespace)
	return client.Get(ctx, name, metaV1.GetOptions{})
}
