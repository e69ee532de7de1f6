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
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// object is a mapping that keeps the insertion order of its keys, so that
// encoded documents follow the order of the Kamelet definition.
type object struct {
	keys   []string
	values map[string]any
}

func newObject() *object {
	return &object{values: make(map[string]any)}
}

func (o *object) set(key string, val any) *object {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = val
	return o
}

// setNonEmpty sets key only if val is not empty. It is used for plain string
// fields where the zero value means the field was not declared.
func (o *object) setNonEmpty(key, val string) *object {
	if val == "" {
		return o
	}
	return o.set(key, val)
}

func (o *object) len() int {
	return len(o.keys)
}

// schemaObject wraps properties into a node shaped like a CRD object schema.
func schemaObject(properties *object) *object {
	return newObject().
		set("type", "object").
		set("properties", properties)
}

func (o *object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshalJSON(key)
		if err != nil {
			return nil, err
		}
		v, err := marshalJSON(o.values[key])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (o *object) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range o.keys {
		var k, v yaml.Node
		if err := k.Encode(key); err != nil {
			return nil, err
		}
		if err := v.Encode(o.values[key]); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		n.Content = append(n.Content, &k, &v)
	}
	return n, nil
}

// prune returns v without nil values and empty collections. Strings are kept
// as they are, a declared empty default is a real value.
// Entries of an object that are empty after pruning are dropped. The
// returned value is nil if v itself is empty.
func prune(v any) any {
	switch v := v.(type) {
	case nil:
		return nil
	case *object:
		if v == nil {
			return nil
		}
		out := newObject()
		for _, key := range v.keys {
			if pv := prune(v.values[key]); pv != nil {
				out.set(key, pv)
			}
		}
		if out.len() == 0 {
			return nil
		}
		return out
	case []string:
		if len(v) == 0 {
			return nil
		}
		return v
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			if pi := prune(item); pi != nil {
				out = append(out, pi)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case map[string]any:
		if len(v) == 0 {
			return nil
		}
		return v
	default:
		return v
	}
}

// marshalJSON encodes v without escaping HTML characters, descriptions
// regularly contain them.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// encodeJSON pretty prints v with an indent of two spaces.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode to json: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode to yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode to yaml: %w", err)
	}
	return buf.Bytes(), nil
}
