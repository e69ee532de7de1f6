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

package lint

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/knative-extensions/kn-connectors/kamelet"
)

var (
	ErrNameMismatch        = errors.New("metadata.name does not match the kamelet name")
	ErrNameSuffix          = errors.New("kamelet name should end with -source or -sink")
	ErrMissingTitle        = errors.New("property has no title")
	ErrMissingDescription  = errors.New("property has no description")
	ErrUnknownType         = errors.New("property has an unknown type")
	ErrDefaultNotInEnum    = errors.New("property default is not one of the enum values")
	ErrDuplicateDependency = errors.New("dependency is listed more than once")
	ErrInvalidDependency   = errors.New("dependency is not a valid camel:, mvn: or github: coordinate")
)

// NameLinter checks the Kamelet is named like a Knative connector.
type NameLinter struct{}

func (l *NameLinter) Name() string { return "name" }

func (l *NameLinter) Lint(_ context.Context, name string, k *kamelet.Kamelet) []error {
	var errs []error
	if k.Metadata.Name != "" && k.Metadata.Name != name {
		errs = append(errs, fmt.Errorf("%w: %q != %q", ErrNameMismatch, k.Metadata.Name, name))
	}
	if !strings.HasSuffix(name, "-source") && !strings.HasSuffix(name, "-sink") {
		errs = append(errs, fmt.Errorf("%w: %q", ErrNameSuffix, name))
	}
	return errs
}

var propertyTypes = []string{"string", "integer", "number", "boolean", "array", "object", "binary"}

// PropertiesLinter checks every property is documented well enough to
// render a useful property table.
type PropertiesLinter struct{}

func (l *PropertiesLinter) Name() string { return "properties" }

func (l *PropertiesLinter) Lint(_ context.Context, _ string, k *kamelet.Kamelet) []error {
	var errs []error
	for name, prop := range k.Spec.Definition.Properties.All() {
		if prop.Title == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingTitle, name))
		}
		if strings.TrimSpace(prop.Description) == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingDescription, name))
		}
		if !slices.Contains(propertyTypes, prop.Type) {
			errs = append(errs, fmt.Errorf("%w: %s has type %q", ErrUnknownType, name, prop.Type))
		}
		if prop.Default != nil && len(prop.Enum) > 0 && !slices.ContainsFunc(prop.Enum, func(v kamelet.Value) bool {
			return v.String() == prop.Default.String()
		}) {
			errs = append(errs, fmt.Errorf("%w: %s default %q", ErrDefaultNotInEnum, name, prop.Default.String()))
		}
	}
	return errs
}

// DependenciesLinter checks the dependency coordinates.
type DependenciesLinter struct{}

func (l *DependenciesLinter) Name() string { return "dependencies" }

func (l *DependenciesLinter) Lint(_ context.Context, _ string, k *kamelet.Kamelet) []error {
	var errs []error
	seen := make(map[string]bool)
	for _, dep := range k.Spec.Dependencies {
		if seen[dep] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateDependency, dep))
			continue
		}
		seen[dep] = true

		scheme, coordinate, ok := strings.Cut(dep, ":")
		if !ok || coordinate == "" || !slices.Contains([]string{"camel", "mvn", "github"}, scheme) {
			errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidDependency, dep))
		}
	}
	return errs
}
