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
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/matryer/is"
	"gopkg.in/yaml.v3"
)

func TestLoad(t *testing.T) {
	is := is.New(t)

	k, err := Load(os.DirFS("testdata"), "aws-s3-source")
	is.NoErr(err)

	is.Equal(k.Kind, "Kamelet")
	is.Equal(k.Metadata.Name, "aws-s3-source")
	is.Equal(k.Metadata.Labels["camel.apache.org/kamelet.type"], "source")

	def := k.Spec.Definition
	is.Equal(def.Title, "AWS S3 Source")
	is.Equal(def.Type, "object")
	is.Equal(def.Required, []string{"bucketNameOrArn", "region"})
	is.Equal(def.Properties.Names(), []string{
		"bucketNameOrArn",
		"deleteAfterRead",
		"region",
		"delay",
		"uriEndpointOverride",
	})
	is.True(def.IsRequired("region"))
	is.True(!def.IsRequired("delay"))

	prop, ok := def.Properties.Get("deleteAfterRead")
	is.True(ok)
	is.Equal(prop.Type, "boolean")
	is.Equal(prop.Default.String(), "true")
	is.Equal(prop.Default.Interface(), true)
	is.Equal(prop.XDescriptors, []string{"urn:keda:metadata:deleteAfterRead"})

	prop, _ = def.Properties.Get("delay")
	is.Equal(prop.Default.Interface(), 500)

	prop, _ = def.Properties.Get("region")
	is.True(prop.Default == nil)
	is.Equal(prop.Example.String(), "eu-west-1")
	is.Equal(len(prop.Enum), 2)

	is.Equal(k.Spec.Dependencies, []string{
		"camel:core",
		"camel:aws2-s3",
		"mvn:org.apache.camel.kamelets:camel-kamelets-utils:4.4.0",
		"camel:kamelet",
		"camel:jackson",
	})
}

func TestLoad_NotFound(t *testing.T) {
	is := is.New(t)

	_, err := Load(fstest.MapFS{}, "timer-source")
	is.True(errors.Is(err, fs.ErrNotExist))

	var perr *ParseError
	is.True(!errors.As(err, &perr))
}

func TestLoadFile(t *testing.T) {
	is := is.New(t)

	k, err := LoadFile(filepath.Join("testdata", "kamelets", "aws-s3-source.kamelet.yaml"))
	is.NoErr(err)
	is.Equal(k.Spec.Definition.Properties.Len(), 5)

	_, err = LoadFile(filepath.Join("testdata", "missing.yaml"))
	is.True(errors.Is(err, fs.ErrNotExist))
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name string
		have string
	}{{
		name: "empty document",
		have: "",
	}, {
		name: "malformed yaml",
		have: "spec: [",
	}, {
		name: "properties not a mapping",
		have: `
spec:
  definition:
    properties: [a, b]`,
	}, {
		name: "property not a mapping",
		have: `
spec:
  definition:
    properties:
      foo: bar`,
	}, {
		name: "duplicate property",
		have: `
spec:
  definition:
    properties:
      foo:
        type: string
      foo:
        type: integer`,
	}, {
		name: "required property not defined",
		have: `
spec:
  definition:
    required: [foo, bar]
    properties:
      foo:
        type: string`,
	}, {
		name: "dependencies not a list",
		have: `
spec:
  dependencies: 
    foo: bar`,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			_, err := Parse([]byte(tc.have))
			is.True(err != nil)

			var perr *ParseError
			is.True(errors.As(err, &perr))
			is.Equal(perr.Path, "")
		})
	}
}

func TestLoad_ParseErrorPath(t *testing.T) {
	is := is.New(t)

	fsys := fstest.MapFS{
		"kamelets/broken.kamelet.yaml": &fstest.MapFile{Data: []byte("spec: [")},
	}
	_, err := Load(fsys, "broken")

	var perr *ParseError
	is.True(errors.As(err, &perr))
	is.Equal(perr.Path, "kamelets/broken.kamelet.yaml")
}

func TestParse_MinimalDocument(t *testing.T) {
	is := is.New(t)

	k, err := Parse([]byte("metadata:\n  name: minimal\n"))
	is.NoErr(err)
	is.Equal(k.Metadata.Name, "minimal")
	is.Equal(k.Spec.Definition.Properties.Len(), 0)
	is.Equal(len(k.Spec.Dependencies), 0)
}

func TestValue_KeepsLiteralAndType(t *testing.T) {
	is := is.New(t)

	k, err := Parse([]byte(`
spec:
  definition:
    properties:
      quoted:
        default: "5000"
      number:
        default: 5000
      float:
        default: 0.5
      list:
        default: [a, b]
`))
	is.NoErr(err)

	props := k.Spec.Definition.Properties
	quoted, _ := props.Get("quoted")
	number, _ := props.Get("number")
	float, _ := props.Get("float")
	list, _ := props.Get("list")

	is.Equal(quoted.Default.String(), "5000")
	is.Equal(quoted.Default.Interface(), "5000")
	is.Equal(number.Default.String(), "5000")
	is.Equal(number.Default.Interface(), 5000)
	is.Equal(float.Default.Interface(), 0.5)
	is.Equal(list.Default.String(), `["a","b"]`)

	got, err := json.Marshal(props)
	is.NoErr(err)
	want := `{"quoted":{"default":"5000"},"number":{"default":5000},"float":{"default":0.5},"list":{"default":["a","b"]}}`
	is.Equal("", cmp.Diff(want, string(got)))
}

func TestValue_KeepsFloatLiteral(t *testing.T) {
	is := is.New(t)

	k, err := Parse([]byte(`
spec:
  definition:
    properties:
      ratio:
        default: 1.0
      hex:
        default: 0x10
      empty:
        default: ""
`))
	is.NoErr(err)

	props := k.Spec.Definition.Properties
	gotJSON, err := json.Marshal(props)
	is.NoErr(err)
	wantJSON := `{"ratio":{"default":1.0},"hex":{"default":16},"empty":{"default":""}}`
	is.Equal("", cmp.Diff(wantJSON, string(gotJSON)))

	ratio, _ := props.Get("ratio")
	gotYAML, err := yaml.Marshal(ratio.Default)
	is.NoErr(err)
	is.Equal(string(gotYAML), "1.0\n")

	empty, _ := props.Get("empty")
	gotYAML, err = yaml.Marshal(empty.Default)
	is.NoErr(err)
	is.Equal(string(gotYAML), "\"\"\n")

	gotYAML, err = yaml.Marshal(NewValue(2.5))
	is.NoErr(err)
	is.Equal(string(gotYAML), "2.5\n")
}

func TestProperties_Set(t *testing.T) {
	is := is.New(t)

	var p Properties
	p.Set("b", Property{Type: "string"})
	p.Set("a", Property{Type: "integer"})
	p.Set("b", Property{Type: "boolean"})

	is.Equal(p.Names(), []string{"b", "a"})
	prop, ok := p.Get("b")
	is.True(ok)
	is.Equal(prop.Type, "boolean")

	var names []string
	for name := range p.All() {
		names = append(names, name)
		break
	}
	is.Equal(names, []string{"b"})
}

func TestFilename(t *testing.T) {
	is := is.New(t)
	is.Equal(Filename("aws-sqs-sink"), "kamelets/aws-sqs-sink.kamelet.yaml")
}

func TestNewValue(t *testing.T) {
	is := is.New(t)
	v := NewValue(42)
	is.Equal(v.String(), "42")
	is.Equal(v.Interface(), 42)
}
