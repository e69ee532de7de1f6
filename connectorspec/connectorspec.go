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

// Package connectorspec generates connector documentation and metadata from
// a Kamelet definition. For a connector it produces
//
//   - properties.adoc, an AsciiDoc table describing all properties,
//   - target/metadata/properties.json, the property definitions,
//   - target/metadata/dependencies.json, the dependencies of the connector,
//   - properties.yaml, a CRD schema fragment for the connector properties.
package connectorspec

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/knative-extensions/kn-connectors/internal/logging"
	"github.com/knative-extensions/kn-connectors/kamelet"
	"go.uber.org/multierr"
)

// Paths of the generated files, relative to the output directory.
const (
	PropertiesAdocPath   = "properties.adoc"
	PropertiesJSONPath   = "target/metadata/properties.json"
	DependenciesJSONPath = "target/metadata/dependencies.json"
	PropertiesYAMLPath   = "properties.yaml"
)

type Options struct {
	// Name of the connector, e.g. "aws-s3-source". It is used to locate the
	// Kamelet in Resources and to derive the environment variable and CRD
	// names.
	Name string
	// OutputDir is the directory the files are written to. Defaults to the
	// current working directory.
	OutputDir string
	// Resources is the filesystem containing kamelets/<name>.kamelet.yaml.
	// It is only used if Kamelet is nil.
	Resources fs.FS
	// Kamelet is the already loaded Kamelet definition.
	Kamelet *kamelet.Kamelet
	// Skip disables the generation.
	Skip bool
}

// File is a generated file.
type File struct {
	// Path is the location the file was written to.
	Path    string
	Content []byte
}

type Result struct {
	Skipped bool
	Files   []File
}

// pass renders a single generated file.
type pass struct {
	path   string
	render func(name string, k *kamelet.Kamelet) ([]byte, error)
}

var passes = []pass{
	{
		path: PropertiesAdocPath,
		render: func(name string, k *kamelet.Kamelet) ([]byte, error) {
			return RenderPropertiesAdoc(name, k.Spec.Definition)
		},
	},
	{
		path: PropertiesJSONPath,
		render: func(_ string, k *kamelet.Kamelet) ([]byte, error) {
			return RenderPropertiesJSON(k.Spec.Definition)
		},
	},
	{
		path: DependenciesJSONPath,
		render: func(_ string, k *kamelet.Kamelet) ([]byte, error) {
			return RenderDependenciesJSON(k.Spec.Dependencies)
		},
	},
	{
		path: PropertiesYAMLPath,
		render: func(name string, k *kamelet.Kamelet) ([]byte, error) {
			return RenderPropertiesYAML(name, k.Spec.Definition)
		},
	},
}

// Generate renders all files for the connector and writes them to the output
// directory, replacing existing files. Every file is generated even if
// another one fails; the returned error combines all failures. Running
// Generate twice with the same input produces identical files.
func Generate(ctx context.Context, opts Options) (Result, error) {
	logger := logging.Logger(ctx).With().Str("connector", opts.Name).Logger()

	if opts.Skip {
		logger.Info().Msg("skipping execution")
		return Result{Skipped: true}, nil
	}
	if opts.Name == "" {
		return Result{}, errors.New("connector name is required")
	}

	k := opts.Kamelet
	if k == nil {
		var err error
		k, err = load(opts.Resources, opts.Name)
		if err != nil {
			return Result{}, err
		}
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = "."
	}

	var (
		res  Result
		errs error
	)
	for _, p := range passes {
		target := filepath.Join(outputDir, filepath.FromSlash(p.path))
		content, err := p.render(opts.Name, k)
		if err != nil {
			errs = multierr.Append(errs, &kamelet.ParseError{Path: target, Err: err})
			continue
		}
		if err := writeFile(target, content); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		logger.Debug().Str("path", target).Int("bytes", len(content)).Msg("file generated")
		res.Files = append(res.Files, File{Path: target, Content: content})
	}
	if errs != nil {
		return res, fmt.Errorf("failed to generate connector spec for %q: %w", opts.Name, errs)
	}

	logger.Info().Int("files", len(res.Files)).Str("output", outputDir).Msg("connector spec generated")
	return res, nil
}

func load(resources fs.FS, name string) (*kamelet.Kamelet, error) {
	if resources == nil {
		return nil, errors.New("no resources to load the kamelet from")
	}
	k, err := kamelet.Load(resources, name)
	if err != nil {
		var perr *kamelet.ParseError
		if errors.As(err, &perr) {
			return nil, err
		}
		return nil, &IOError{Op: "read", Path: kamelet.Filename(name), Err: err}
	}
	return k, nil
}

// writeFile writes content to path, creating missing parent directories and
// truncating an existing file.
func writeFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &IOError{Op: "mkdir", Path: filepath.Dir(path), Err: err}
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// IOError is returned when the Kamelet can not be read or a generated file
// can not be written.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
