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

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"k8s.io/apimachinery/pkg/util/validation"
)

var (
	ErrUnknownComponent    = errors.New("unknown component")
	ErrUnknownType         = errors.New("unknown rule type")
	ErrUnknownPriority     = errors.New("unknown priority")
	ErrUnknownOperator     = errors.New("unknown operator")
	ErrWeightOutOfRange    = errors.New("weight must be between 1 and 100")
	ErrWeightNotAllowed    = errors.New("weight is only allowed on preferred rules")
	ErrMissingTopologyKey  = errors.New("topology key is required for pod affinity rules")
	ErrTopologyNotAllowed  = errors.New("topology key is not allowed on node affinity rules")
	ErrMissingKey          = errors.New("key is required for node affinity rules")
	ErrMissingOperator     = errors.New("operator is required when a key is set")
	ErrOperatorWithoutKey  = errors.New("operator is set without a key")
	ErrMissingValues       = errors.New("values are required for In and NotIn")
	ErrInvalidQualifiedKey = errors.New("invalid qualified name")
)

// Validate checks that a rule is well formed. Encode never calls it and
// accepts any rule; this is for the editing layer to report problems before
// submitting. All problems are returned together.
func Validate(rule Rule) error {
	var errs error
	if !rule.Component.IsValid() {
		errs = multierr.Append(errs, errors.Wrapf(ErrUnknownComponent, "%q", rule.Component))
	}
	if !rule.Type.IsValid() {
		errs = multierr.Append(errs, errors.Wrapf(ErrUnknownType, "%q", rule.Type))
	}

	switch rule.Priority {
	case Preferred:
		if rule.Weight < MinWeight || rule.Weight > MaxWeight {
			errs = multierr.Append(errs, errors.Wrapf(ErrWeightOutOfRange, "got %d", rule.Weight))
		}
	case Required:
		if rule.Weight != 0 {
			errs = multierr.Append(errs, ErrWeightNotAllowed)
		}
	default:
		errs = multierr.Append(errs, errors.Wrapf(ErrUnknownPriority, "%q", rule.Priority))
	}

	switch rule.Type {
	case NodeAffinity:
		if rule.TopologyKey != "" {
			errs = multierr.Append(errs, ErrTopologyNotAllowed)
		}
		if rule.Key == "" {
			errs = multierr.Append(errs, ErrMissingKey)
		}
	case PodAffinity, PodAntiAffinity:
		if rule.TopologyKey == "" {
			errs = multierr.Append(errs, ErrMissingTopologyKey)
		} else {
			errs = multierr.Append(errs, qualifiedName("topology key", rule.TopologyKey))
		}
	}

	if rule.Key != "" {
		errs = multierr.Append(errs, qualifiedName("key", rule.Key))
		errs = multierr.Append(errs, validateOperator(rule))
	} else if rule.Operator != "" {
		errs = multierr.Append(errs, ErrOperatorWithoutKey)
	}
	return errs
}

func validateOperator(rule Rule) error {
	switch {
	case rule.Operator == "":
		return ErrMissingOperator
	case !rule.Operator.IsValid():
		return errors.Wrapf(ErrUnknownOperator, "%q", rule.Operator)
	case rule.Operator.TakesValues() && len(ParseValues(rule.Values)) == 0:
		return errors.Wrapf(ErrMissingValues, "operator %s", rule.Operator)
	}
	return nil
}

func qualifiedName(field, value string) error {
	if problems := validation.IsQualifiedName(value); len(problems) > 0 {
		return errors.Wrapf(ErrInvalidQualifiedKey, "%s %q: %s", field, value, strings.Join(problems, "; "))
	}
	return nil
}

// ValidateAll validates every rule, prefixing problems with the rule position.
func ValidateAll(rules []Rule) error {
	var errs error
	for i, rule := range rules {
		if err := Validate(rule); err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "rule %d (%s)", i, rule.Component))
		}
	}
	return errs
}
