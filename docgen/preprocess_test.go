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

package docgen

import "testing"

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    string
		wantErr bool
	}{{
		name: "no tags",
		data: "hello world",
		want: "hello world",
	}, {
		name:    "tag not closed (missing)",
		data:    "// kn-connector:name\nsome text\n",
		wantErr: true,
	}, {
		name:    "tag not closed (wrong tag name)",
		data:    "// kn-connector:name\nsome text\n// /kn-connector:title\n",
		wantErr: true,
	}, {
		name:    "close tag with trailing text",
		data:    "// kn-connector:name\nsome text\n// /kn-connector:name and more\n",
		wantErr: true,
	}, {
		name:    "open tag on last line",
		data:    "text\n// kn-connector:name",
		wantErr: true,
	}, {
		name:    "unknown tag",
		data:    "// kn-connector:foo\nsome text\n// /kn-connector:foo\n",
		wantErr: true,
	}, {
		name: "tag not at line start is ignored",
		data: "see // kn-connector:name for details",
		want: "see // kn-connector:name for details",
	}, {
		name: "delimiters outside of regions are escaped",
		data: "use {{ .secret }}\n// kn-connector:name\nold\n// /kn-connector:name\n{{{x}}}",
		want: "use {{\"{{\"}} .secret }}\n// kn-connector:name\n{{ .name }}\n// /kn-connector:name\n{{\"{{\"}}{x}}}",
	}, {
		name: "single tag",
		data: "// kn-connector:name\nsome text\n// /kn-connector:name\n",
		want: "// kn-connector:name\n{{ .name }}\n// /kn-connector:name\n",
	}, {
		name: "close tag at end of data",
		data: "// kn-connector:name\n// /kn-connector:name",
		want: "// kn-connector:name\n{{ .name }}\n// /kn-connector:name",
	}, {
		name: "multiple tags",
		data: `= Title

// kn-connector:properties

This text will be overwritten,

regardless of what it holds...

// /kn-connector:properties

== This will stay!

// kn-connector:name
Another overwritten text
// /kn-connector:name
`,
		want: `= Title

// kn-connector:properties
{{ .propertiesAdoc }}// /kn-connector:properties

== This will stay!

// kn-connector:name
{{ .name }}
// /kn-connector:name
`,
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Preprocess(tt.data)
			if (err != nil) != tt.wantErr {
				t.Errorf("Preprocess() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("Preprocess() = %v, want %v", got, tt.want)
			}
		})
	}
}
