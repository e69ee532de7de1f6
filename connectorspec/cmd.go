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
	"context"
	"os"
)

type Command struct {
	name         string
	outputDir    string
	resourcesDir string
	skip         bool
}

func NewCommand(name, outputDir, resourcesDir string, skip bool) *Command {
	return &Command{
		name:         name,
		outputDir:    outputDir,
		resourcesDir: resourcesDir,
		skip:         skip,
	}
}

func (cmd *Command) Execute(ctx context.Context) error {
	_, err := Generate(ctx, Options{
		Name:      cmd.name,
		OutputDir: cmd.outputDir,
		Resources: os.DirFS(cmd.resourcesDir),
		Skip:      cmd.skip,
	})
	return err
}
