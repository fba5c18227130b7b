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

package common

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/streamnative/affinity-rules/affinity"
	"github.com/streamnative/affinity-rules/pkg/apis/database/v1alpha1"
)

// Stdin is read from whenever a file argument is "-".
const Stdin = "-"

func readFile(in io.Reader, path string) ([]byte, error) {
	if path == Stdin {
		return io.ReadAll(in)
	}
	return os.ReadFile(path)
}

func ReadYaml(in io.Reader, path string, value any) error {
	bytes, err := readFile(in, path)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", path)
	}
	if err := yaml.UnmarshalStrict(bytes, value); err != nil {
		return errors.Wrapf(err, "failed to parse %s", path)
	}
	return nil
}

func ReadRules(in io.Reader, path string) ([]affinity.Rule, error) {
	rules := make([]affinity.Rule, 0)
	if err := ReadYaml(in, path, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

func ReadCluster(in io.Reader, path string) (*v1alpha1.DatabaseCluster, error) {
	cluster := &v1alpha1.DatabaseCluster{}
	if err := ReadYaml(in, path, cluster); err != nil {
		return nil, err
	}
	return cluster, nil
}

func WriteYaml(out io.Writer, value any) error {
	bytes, err := yaml.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "failed to marshal output")
	}
	_, err = out.Write(bytes)
	return err
}
