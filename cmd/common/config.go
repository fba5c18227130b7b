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
	"fmt"
	"log/slog"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/streamnative/affinity-rules/affinity"
)

// DefaultsConfig is the layout of the file that overrides the built-in
// default rule table.
type DefaultsConfig struct {
	Defaults []affinity.DefaultEntry `json:"defaults" yaml:"defaults"`
}

// LoadDefaultTable returns the built-in table when configFile is empty, and
// the table described by the file otherwise.
func LoadDefaultTable(configFile string) (affinity.DefaultTable, error) {
	if configFile == "" {
		return affinity.BuiltinDefaults(), nil
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", configFile)
	}

	conf := DefaultsConfig{}
	if err := v.Unmarshal(&conf,
		viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
			valueListHook(),
		)),
		rejectUnknownKeys,
	); err != nil {
		return nil, errors.Wrap(err, "failed to load default rule table")
	}

	slog.Debug(
		"Loaded default rule table",
		slog.String("file", configFile),
		slog.Int("entries", len(conf.Defaults)),
	)
	return affinity.NewDefaultTable(conf.Defaults...), nil
}

// rejectUnknownKeys makes a misspelled field an error instead of a zero value.
func rejectUnknownKeys(c *mapstructure.DecoderConfig) {
	c.ErrorUnused = true
}

// valueListHook accepts rule values written as a YAML list.
func valueListHook() mapstructure.DecodeHookFuncKind {
	return func(from reflect.Kind, to reflect.Kind, data any) (any, error) {
		if from != reflect.Slice || to != reflect.String {
			return data, nil
		}
		items := reflect.ValueOf(data)
		values := make([]string, items.Len())
		for i := range values {
			values[i] = fmt.Sprint(items.Index(i).Interface())
		}
		return affinity.JoinValues(values), nil
	}
}
