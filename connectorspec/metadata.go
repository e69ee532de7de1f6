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

package connectorspec

import (
	"strings"

	"github.com/knative-extensions/kn-connectors/kamelet"
)

// Dependencies provided by the connector runtime itself. They are left out
// of the generated dependency metadata.
var (
	runtimeDependencies = []string{
		"camel:core",
		"camel:kamelet",
	}
	runtimeDependencyFragment = "org.apache.camel.kamelets:camel-kamelets-utils"
)

// FilterDependencies returns deps without the dependencies that are always
// present in the connector runtime. The order of the remaining entries is
// preserved and the result is never nil.
func FilterDependencies(deps []string) []string {
	out := make([]string, 0, len(deps))
	for _, dep := range deps {
		if isRuntimeDependency(dep) {
			continue
		}
		out = append(out, dep)
	}
	return out
}

func isRuntimeDependency(dep string) bool {
	for _, d := range runtimeDependencies {
		if dep == d {
			return true
		}
	}
	return strings.Contains(dep, runtimeDependencyFragment)
}

// RenderPropertiesJSON renders the Kamelet definition, including all
// property definitions, as pretty printed JSON.
func RenderPropertiesJSON(def kamelet.Definition) ([]byte, error) {
	doc := newObject().
		setNonEmpty("title", def.Title).
		setNonEmpty("description", def.Description).
		set("required", def.Required).
		setNonEmpty("type", def.Type).
		set("properties", propertyDefinitions(def.Properties, true))

	out := prune(doc)
	if out == nil {
		out = newObject()
	}
	return encodeJSON(out)
}

// RenderDependenciesJSON renders the filtered dependency list as a pretty
// printed JSON array.
func RenderDependenciesJSON(deps []string) ([]byte, error) {
	return encodeJSON(FilterDependencies(deps))
}

// propertyDefinitions converts properties into an ordered tree. If full is
// false only the fields used in CRD schemas are included.
func propertyDefinitions(props kamelet.Properties, full bool) *object {
	out := newObject()
	for name, prop := range props.All() {
		p := newObject().
			setNonEmpty("type", prop.Type).
			setNonEmpty("title", prop.Title).
			setNonEmpty("description", prop.Description).
			set("default", valueOf(prop.Default)).
			set("example", valueOf(prop.Example))
		if full {
			p.setNonEmpty("format", prop.Format)
			p.set("enum", valuesOf(prop.Enum))
			p.set("x-descriptors", prop.XDescriptors)
		}
		out.set(name, p)
	}
	return out
}

// valueOf returns v itself so that it is encoded with its literal text and
// YAML type, or nil if the value was not declared.
func valueOf(v *kamelet.Value) any {
	if v == nil {
		return nil
	}
	return v
}

func valuesOf(vs []kamelet.Value) []any {
	if len(vs) == 0 {
		return nil
	}
	out := make([]any, len(vs))
	for i := range vs {
		out[i] = &vs[i]
	}
	return out
}
