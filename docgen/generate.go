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

// Package docgen keeps the documentation page of a connector in sync with
// its Kamelet definition.
package docgen

import (
	"embed"
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/knative-extensions/kn-connectors/connectorspec"
	"github.com/knative-extensions/kn-connectors/kamelet"
)

//go:embed templates/*
var templates embed.FS

type GenerateOptions struct {
	// Name of the connector.
	Name    string
	Kamelet *kamelet.Kamelet
	// DocPath is the AsciiDoc page containing kn-connector regions.
	DocPath string
	Out     io.Writer
}

// Generate reads the page at DocPath, fills all kn-connector regions with
// data from the Kamelet and writes the result to Out.
func Generate(opts GenerateOptions) error {
	doc, err := os.ReadFile(opts.DocPath)
	if err != nil {
		return fmt.Errorf("could not read doc file %v: %w", opts.DocPath, err)
	}
	docTmpl, err := Preprocess(string(doc))
	if err != nil {
		return fmt.Errorf("could not preprocess doc file %v: %w", opts.DocPath, err)
	}

	t := template.New("doc").Funcs(sprig.TxtFuncMap())
	t = template.Must(t.ParseFS(templates, "templates/*.tmpl"))
	t, err = t.Parse(docTmpl)
	if err != nil {
		return fmt.Errorf("could not parse doc file %v: %w", opts.DocPath, err)
	}

	data, err := templateData(opts.Name, opts.Kamelet)
	if err != nil {
		return err
	}
	return t.Execute(opts.Out, data)
}

func templateData(name string, k *kamelet.Kamelet) (map[string]any, error) {
	propertiesAdoc, err := connectorspec.RenderPropertiesAdoc(name, k.Spec.Definition)
	if err != nil {
		return nil, fmt.Errorf("could not render properties: %w", err)
	}
	return map[string]any{
		"name":           name,
		"definition":     k.Spec.Definition,
		"propertiesAdoc": string(propertiesAdoc),
		"dependencies":   connectorspec.FilterDependencies(k.Spec.Dependencies),
	}, nil
}
