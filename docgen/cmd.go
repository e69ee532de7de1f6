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
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/knative-extensions/kn-connectors/internal/logging"
	"github.com/knative-extensions/kn-connectors/kamelet"
)

type Command struct {
	name      string
	resources fs.FS
	docFile   string
	write     bool
	stdout    io.Writer
}

func NewCommand(name string, resources fs.FS, docFile string, write bool) *Command {
	return &Command{
		name:      name,
		resources: resources,
		docFile:   docFile,
		write:     write,
		stdout:    os.Stdout,
	}
}

func (cmd *Command) Execute(ctx context.Context) error {
	k, err := kamelet.Load(cmd.resources, cmd.name)
	if err != nil {
		return err
	}

	buf := new(bytes.Buffer)
	out := cmd.stdout
	if cmd.write {
		// Write to buffer and then flush to file
		out = buf
	}

	err = Generate(GenerateOptions{
		Name:    cmd.name,
		Kamelet: k,
		DocPath: cmd.docFile,
		Out:     out,
	})
	if err != nil {
		return fmt.Errorf("failed to generate doc: %w", err)
	}

	if cmd.write {
		err = os.WriteFile(cmd.docFile, buf.Bytes(), 0o644)
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", cmd.docFile, err)
		}
		logging.Logger(ctx).Info().Str("path", cmd.docFile).Msg("doc updated")
	}
	return nil
}
