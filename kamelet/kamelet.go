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

// Package kamelet contains the model of a Kamelet definition as far as the
// connector tooling needs it, together with functions to load it from YAML.
package kamelet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

// Dir is the directory inside a resource filesystem that holds Kamelet
// definitions.
const Dir = "kamelets"

// Kamelet is a declarative connector definition.
type Kamelet struct {
	APIVersion string   `yaml:"apiVersion" json:"apiVersion,omitempty"`
	Kind       string   `yaml:"kind" json:"kind,omitempty"`
	Metadata   Metadata `yaml:"metadata" json:"metadata"`
	Spec       Spec     `yaml:"spec" json:"spec"`
}

type Metadata struct {
	Name        string            `yaml:"name" json:"name,omitempty"`
	Labels      map[string]string `yaml:"labels" json:"labels,omitempty"`
	Annotations map[string]string `yaml:"annotations" json:"annotations,omitempty"`
}

// Spec holds the parts of the Kamelet specification used for generating
// connector metadata. Template, data types and sources are ignored.
type Spec struct {
	Definition   Definition `yaml:"definition" json:"definition"`
	Dependencies []string   `yaml:"dependencies" json:"dependencies,omitempty"`
}

// Definition is the formal configuration of the Kamelet.
type Definition struct {
	Title       string     `yaml:"title" json:"title,omitempty"`
	Description string     `yaml:"description" json:"description,omitempty"`
	Required    []string   `yaml:"required" json:"required,omitempty"`
	Type        string     `yaml:"type" json:"type,omitempty"`
	Properties  Properties `yaml:"properties" json:"properties,omitempty"`
}

// IsRequired returns true if the property with the given name is listed in
// the required properties.
func (d Definition) IsRequired(name string) bool {
	for _, r := range d.Required {
		if r == name {
			return true
		}
	}
	return false
}

// Filename returns the conventional file name of the Kamelet with the given
// name, relative to the resource root.
func Filename(name string) string {
	return path.Join(Dir, name+".kamelet.yaml")
}

// Load reads the Kamelet with the given name from fsys. The file is expected
// at kamelets/<name>.kamelet.yaml.
func Load(fsys fs.FS, name string) (*Kamelet, error) {
	filename := Filename(name)
	raw, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read kamelet %q: %w", name, err)
	}
	k, err := Parse(raw)
	if err != nil {
		return nil, withPath(err, filename)
	}
	return k, nil
}

// LoadFile reads and parses the Kamelet stored in filename.
func LoadFile(filename string) (*Kamelet, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read kamelet file: %w", err)
	}
	k, err := Parse(raw)
	if err != nil {
		return nil, withPath(err, filename)
	}
	return k, nil
}

// Parse decodes a Kamelet from its YAML representation and validates the
// definition. Any failure is reported as a *ParseError.
func Parse(raw []byte) (*Kamelet, error) {
	var k Kamelet
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&k); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Err: errors.New("document is empty")}
		}
		return nil, &ParseError{Err: err}
	}
	if err := k.Spec.Definition.validate(); err != nil {
		return nil, &ParseError{Err: err}
	}
	return &k, nil
}

func (d Definition) validate() error {
	var errs []error
	seen := make(map[string]bool, len(d.Required))
	for _, name := range d.Required {
		if seen[name] {
			continue
		}
		seen[name] = true
		if _, ok := d.Properties.Get(name); !ok {
			errs = append(errs, fmt.Errorf("required property %q is not defined", name))
		}
	}
	return errors.Join(errs...)
}

func withPath(err error, filename string) error {
	var perr *ParseError
	if errors.As(err, &perr) && perr.Path == "" {
		perr.Path = filename
	}
	return err
}
