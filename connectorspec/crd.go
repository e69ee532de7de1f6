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
	"github.com/knative-extensions/kn-connectors/kamelet"
)

// RenderPropertiesYAML renders the connector properties as a schema fragment
// of a custom resource definition. The connector name determines the nesting:
// "aws-s3-source" is placed at spec.aws.s3, "timer-source" at spec.timer.
func RenderPropertiesYAML(name string, def kamelet.Definition) ([]byte, error) {
	props := schemaObject(propertyDefinitions(def.Properties, false))

	short := ShortName(name)
	spec := newObject()
	if outer, inner, ok := SplitName(short); ok {
		spec.set(outer, schemaObject(newObject().set(inner, props)))
	} else {
		spec.set(short, props)
	}

	doc := newObject().set("spec", spec)
	out := prune(doc)
	if out == nil {
		out = newObject()
	}
	return encodeYAML(out)
}
