// Copyright © 2025 The Knative Authors
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

// Package lint checks Kamelet definitions for problems that would produce
// incomplete connector specifications or documentation.
package lint

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/knative-extensions/kn-connectors/internal/logging"
	"github.com/knative-extensions/kn-connectors/kamelet"
)

// Linter checks a single aspect of a Kamelet.
type Linter interface {
	Name() string
	Lint(ctx context.Context, name string, k *kamelet.Kamelet) []error
}

type Command struct {
	name      string
	resources fs.FS
	linters   []Linter
}

func NewCommand(name string, resources fs.FS) *Command {
	return &Command{
		name:      name,
		resources: resources,
		linters: []Linter{
			&NameLinter{},
			&PropertiesLinter{},
			&DependenciesLinter{},
		},
	}
}

func (cmd *Command) Execute(ctx context.Context) error {
	k, err := kamelet.Load(cmd.resources, cmd.name)
	if err != nil {
		return fmt.Errorf("failed to load kamelet: %w", err)
	}

	var linterErrs linterErrors
	for _, linter := range cmd.linters {
		errs := linter.Lint(ctx, cmd.name, k)
		for _, err := range errs {
			linterErrs = append(linterErrs, newLinterError(linter, err))
		}
	}

	if len(linterErrs) > 0 {
		// The if is needed to avoid returning a typed nil.
		return linterErrs
	}

	logging.Logger(ctx).Info().Str("kamelet", cmd.name).Msg("no lint errors found")
	return nil
}
