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
	"bytes"
	"embed"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/knative-extensions/kn-connectors/kamelet"
)

var (
	//go:embed templates/*
	templates embed.FS

	propertiesAdocTmpl = template.Must(
		template.New("properties.adoc.tmpl").
			Funcs(sprig.TxtFuncMap()).
			ParseFS(templates, "templates/properties.adoc.tmpl"),
	)
)

type propertyRow struct {
	Name        string
	Required    bool
	Default     *kamelet.Value
	Description string
}

// RenderPropertiesAdoc renders the AsciiDoc table that documents the
// properties of the connector, one row per property in declaration order.
func RenderPropertiesAdoc(name string, def kamelet.Definition) ([]byte, error) {
	rows := make([]propertyRow, 0, def.Properties.Len())
	for propName, prop := range def.Properties.All() {
		rows = append(rows, propertyRow{
			Name:        propName,
			Required:    def.IsRequired(propName),
			Default:     prop.Default,
			Description: prop.Description,
		})
	}

	var buf bytes.Buffer
	err := propertiesAdocTmpl.Execute(&buf, map[string]any{
		"Connector":  name,
		"Properties": rows,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
