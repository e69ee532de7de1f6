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
	"testing"

	"github.com/matryer/is"
)

func TestShortName(t *testing.T) {
	testCases := []struct {
		have string
		want string
	}{
		{have: "aws-s3-source", want: "aws-s3"},
		{have: "aws-sqs-sink", want: "aws-sqs"},
		{have: "timer-source", want: "timer"},
		{have: "log-sink", want: "log"},
		{have: "jsonata-transformer", want: "jsonata-transformer"},
		{have: "source-timer", want: "source-timer"},
		{have: "timer-sources", want: "timer-sources"},
		{have: "timer", want: "timer"},
	}

	for _, tc := range testCases {
		t.Run(tc.have, func(t *testing.T) {
			is := is.New(t)
			is.Equal(ShortName(tc.have), tc.want)
		})
	}
}

func TestSplitName(t *testing.T) {
	testCases := []struct {
		have      string
		wantOuter string
		wantInner string
		wantOK    bool
	}{
		{have: "aws-s3", wantOuter: "aws", wantInner: "s3", wantOK: true},
		{have: "aws-ddb-streams", wantOuter: "aws", wantInner: "ddb-streams", wantOK: true},
		{have: "foo-bar-baz", wantOuter: "foo", wantInner: "bar-baz", wantOK: true},
		{have: "timer", wantOuter: "timer", wantInner: "", wantOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.have, func(t *testing.T) {
			is := is.New(t)
			outer, inner, ok := SplitName(tc.have)
			is.Equal(outer, tc.wantOuter)
			is.Equal(inner, tc.wantInner)
			is.Equal(ok, tc.wantOK)
		})
	}
}
