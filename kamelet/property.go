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

package kamelet

import (
	"bytes"
	"fmt"
	"iter"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Property describes a single configurable property of a Kamelet.
type Property struct {
	Type         string   `yaml:"type" json:"type,omitempty"`
	Title        string   `yaml:"title" json:"title,omitempty"`
	Description  string   `yaml:"description" json:"description,omitempty"`
	Default      *Value   `yaml:"default" json:"default,omitempty"`
	Example      *Value   `yaml:"example" json:"example,omitempty"`
	Format       string   `yaml:"format" json:"format,omitempty"`
	Enum         []Value  `yaml:"enum" json:"enum,omitempty"`
	XDescriptors []string `yaml:"x-descriptors" json:"x-descriptors,omitempty"`
}

// Properties is a mapping from property name to Property that remembers the
// order in which the properties were declared.
type Properties struct {
	names  []string
	byName map[string]Property
}

// Set adds or replaces the property with the given name. New properties are
// appended after all existing ones.
func (p *Properties) Set(name string, prop Property) {
	if p.byName == nil {
		p.byName = make(map[string]Property)
	}
	if _, ok := p.byName[name]; !ok {
		p.names = append(p.names, name)
	}
	p.byName[name] = prop
}

func (p Properties) Get(name string) (Property, bool) {
	prop, ok := p.byName[name]
	return prop, ok
}

func (p Properties) Len() int {
	return len(p.names)
}

// Names returns the property names in declaration order.
func (p Properties) Names() []string {
	out := make([]string, len(p.names))
	copy(out, p.names)
	return out
}

// All iterates over the properties in declaration order.
func (p Properties) All() iter.Seq2[string, Property] {
	return func(yield func(string, Property) bool) {
		for _, name := range p.names {
			if !yield(name, p.byName[name]) {
				return
			}
		}
	}
}

func (p *Properties) UnmarshalYAML(node *yaml.Node) error {
	*p = Properties{}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: properties must be a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		name := keyNode.Value
		if _, ok := p.Get(name); ok {
			return fmt.Errorf("line %d: property %q declared twice", keyNode.Line, name)
		}
		var prop Property
		if err := valNode.Decode(&prop); err != nil {
			return fmt.Errorf("property %q: %w", name, err)
		}
		p.Set(name, prop)
	}
	return nil
}

func (p Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range p.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(p.byName[name])
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Value is a scalar (or, rarely, structured) value of a property default or
// example. It keeps the decoded value for typed serialization and the
// literal text as it appeared in the YAML document.
type Value struct {
	v    any
	text string
	// tag is the resolved YAML tag of a scalar, e.g. "!!float". It is empty
	// for values not read from YAML and for collections.
	tag string
}

// NewValue returns a Value wrapping v. The text form is produced with
// fmt.Sprint.
func NewValue(v any) *Value {
	return &Value{v: v, text: fmt.Sprint(v)}
}

// Interface returns the decoded value.
func (v Value) Interface() any {
	return v.v
}

// String returns the value as written in the source document.
func (v Value) String() string {
	return v.text
}

func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var out any
	if err := node.Decode(&out); err != nil {
		return err
	}
	v.v = out
	if node.Kind == yaml.ScalarNode {
		v.text = node.Value
		v.tag = node.ShortTag()
		return nil
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("line %d: unsupported value: %w", node.Line, err)
	}
	v.text = string(raw)
	return nil
}

// MarshalJSON encodes numbers with their literal text, so 1.0 stays 1.0.
func (v Value) MarshalJSON() ([]byte, error) {
	if (v.tag == "!!int" || v.tag == "!!float") && isJSONNumber(v.text) {
		return []byte(v.text), nil
	}
	return json.Marshal(v.v)
}

// MarshalYAML encodes scalars with their literal text and tag.
func (v Value) MarshalYAML() (any, error) {
	if v.tag == "" {
		return v.v, nil
	}
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   v.tag,
		Value: v.text,
	}, nil
}

func isJSONNumber(s string) bool {
	if s == "" || (s[0] != '-' && (s[0] < '0' || s[0] > '9')) {
		return false
	}
	var n json.Number
	return json.Unmarshal([]byte(s), &n) == nil
}
