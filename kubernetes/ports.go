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
	"github.com/streamnative/affinity-rules/affinity"
	"github.com/streamnative/affinity-rules/pkg/apis/database/v1alpha1"
)

type NamedPort struct {
	Name string
	Port int
}

var (
	MySQLPort        = NamedPort{"mysql", 3306}
	MongoDBPort      = NamedPort{"mongodb", 27017}
	ConfigServerPort = NamedPort{"mongodb-cfg", 27019}
	PostgreSQLPort   = NamedPort{"postgresql", 5432}
)

func ports(engine v1alpha1.EngineType, component affinity.Component) []NamedPort {
	switch engine {
	case v1alpha1.EnginePSMDB:
		if component == affinity.ConfigServer {
			return []NamedPort{ConfigServerPort}
		}
		return []NamedPort{MongoDBPort}
	case v1alpha1.EnginePostgreSQL:
		return []NamedPort{PostgreSQLPort}
	default:
		return []NamedPort{MySQLPort}
	}
}
