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

import "strings"

const (
	sourceSuffix = "-source"
	sinkSuffix   = "-sink"
)

// ShortName strips a trailing "-source" or "-sink" from a connector name.
// Names without either suffix are returned unchanged.
func ShortName(name string) string {
	switch {
	case strings.HasSuffix(name, sourceSuffix):
		return strings.TrimSuffix(name, sourceSuffix)
	case strings.HasSuffix(name, sinkSuffix):
		return strings.TrimSuffix(name, sinkSuffix)
	default:
		return name
	}
}

// SplitName splits a short name once on its first hyphen. For "aws-s3" it
// returns "aws" and "s3". Remaining hyphens stay in the inner part, e.g.
// "aws-ddb-streams" yields "aws" and "ddb-streams". The boolean is false if
// the name contains no hyphen.
func SplitName(short string) (outer, inner string, ok bool) {
	return strings.Cut(short, "-")
}
