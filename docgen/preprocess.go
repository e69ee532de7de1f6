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

import (
	"errors"
	"strings"
)

const (
	tagPrefix = "kn-connector:"
	openTag   = "// " + tagPrefix
	closeTag  = "// /" + tagPrefix

	openTagLength  = len(openTag)
	closeTagLength = len(closeTag)
)

var (
	preprocessTags = map[string]string{
		"name":         "{{ .name }}\n",
		"title":        "{{ .definition.Title }}\n",
		"description":  "{{ .definition.Description | trimSuffix \"\\n\" }}\n",
		"properties":   `{{ .propertiesAdoc }}`,
		"dependencies": `{{ template "dependencies.adoc.tmpl" .dependencies }}`,
	}
	errTagNotFound = errors.New("kn-connector open tag not found")
)

// escapeActions turns template delimiters in literal page content, e.g. a
// {{placeholder}}, into actions printing them unchanged.
func escapeActions(s string) string {
	return strings.ReplaceAll(s, "{{", `{{"{{"}}`)
}

// Preprocess takes the contents of an AsciiDoc page and turns it into a
// template by replacing the content of kn-connector regions. A region starts
// with the line comment "// kn-connector:tag" and ends with the line comment
// "// /kn-connector:tag". Everything between the two lines is replaced with
// the template for the tag. An unknown tag, or a region that is not closed,
// results in an error. Template delimiters outside of regions are escaped.
func Preprocess(data string) (string, error) {
	var out strings.Builder
	for {
		region, err := nextRegion(data)
		if errors.Is(err, errTagNotFound) {
			_, _ = out.WriteString(escapeActions(data))
			break
		}
		if err != nil {
			return "", err
		}

		tmpl, ok := preprocessTags[region.tag]
		if !ok {
			return "", errors.New("unknown kn-connector tag: " + region.tag)
		}

		_, _ = out.WriteString(escapeActions(data[:region.openEndIndex]))
		_, _ = out.WriteString(tmpl)
		_, _ = out.WriteString(escapeActions(data[region.closeStartIndex:region.closeEndIndex]))
		data = data[region.closeEndIndex:]
	}
	return out.String(), nil
}

func nextRegion(data string) (region, error) {
	openStartIndex := indexLineStart(data, openTag)
	if openStartIndex == -1 {
		return region{}, errTagNotFound
	}
	openEndIndex := strings.IndexByte(data[openStartIndex:], '\n')
	if openEndIndex == -1 {
		return region{}, errors.New("kn-connector open tag is the last line")
	}
	openEndIndex += openStartIndex + 1

	tag := strings.TrimSpace(data[openStartIndex+openTagLength : openEndIndex])

	closeStartIndex := indexLineStart(data[openEndIndex:], closeTag+tag)
	if closeStartIndex == -1 {
		return region{}, errors.New("kn-connector close tag not found for " + tag)
	}
	closeStartIndex += openEndIndex

	closeEndIndex := strings.IndexByte(data[closeStartIndex:], '\n')
	if closeEndIndex == -1 {
		closeEndIndex = len(data)
	} else {
		closeEndIndex += closeStartIndex
	}

	// the close tag line must contain only the tag
	if strings.TrimSpace(data[closeStartIndex+closeTagLength:closeEndIndex]) != tag {
		return region{}, errors.New("kn-connector close tag not found for " + tag)
	}

	return region{
		openStartIndex:  openStartIndex,
		openEndIndex:    openEndIndex,
		closeStartIndex: closeStartIndex,
		closeEndIndex:   closeEndIndex,
		tag:             tag,
	}, nil
}

// indexLineStart returns the index of the first occurrence of substr that
// starts a line, or -1.
func indexLineStart(data, substr string) int {
	offset := 0
	for {
		i := strings.Index(data[offset:], substr)
		if i == -1 {
			return -1
		}
		i += offset
		if i == 0 || data[i-1] == '\n' {
			return i
		}
		offset = i + 1
	}
}

type region struct {
	openStartIndex  int
	openEndIndex    int
	closeStartIndex int
	closeEndIndex   int
	tag             string
}
