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

package validate

import (
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/streamnative/affinity-rules/affinity"
	"github.com/streamnative/affinity-rules/cmd/common"
	"github.com/streamnative/affinity-rules/cmd/flag"
)

var ErrInvalidRules = errors.New("invalid rules")

var (
	file string

	Cmd = &cobra.Command{
		Use:   "validate",
		Short: "Validate affinity rules",
		Long:  `Report every problem found in a rule list before it is encoded`,
		Args:  cobra.NoArgs,
		RunE:  exec,
	}
)

func init() {
	flag.File(Cmd, &file, "Rules file, '-' for stdin")
	Cmd.SilenceUsage = true
}

func exec(cmd *cobra.Command, _ []string) error {
	rules, err := common.ReadRules(cmd.InOrStdin(), file)
	if err != nil {
		return err
	}

	problems := multierr.Errors(affinity.ValidateAll(rules))
	for _, problem := range problems {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), problem); err != nil {
			return err
		}
	}
	if len(problems) > 0 {
		return errors.Wrapf(ErrInvalidRules, "%d invalid rules", len(problems))
	}

	slog.Info("Rules are valid", slog.Int("rules", len(rules)))
	return nil
}
