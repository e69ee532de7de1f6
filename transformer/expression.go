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

package transformer

import (
	"fmt"
	"os"
	"sync"

	jsonata "github.com/blues/jsonata-go"
)

// Expression is a JSONata expression that can be evaluated concurrently.
// A compiled jsonata.Expr keeps state while it is evaluated, so every
// evaluation borrows its own compiled copy from a pool.
type Expression struct {
	src  string
	pool sync.Pool
}

// CompileExpression compiles src and returns an Expression ready for
// concurrent use.
func CompileExpression(src string) (*Expression, error) {
	expr, err := jsonata.Compile(src)
	if err != nil {
		return nil, err
	}
	e := &Expression{src: src}
	e.pool.Put(expr)
	return e, nil
}

// LoadExpression reads and compiles the JSONata expression in the file.
func LoadExpression(path string) (*Expression, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSONata transform file: %w", err)
	}
	e, err := CompileExpression(string(src))
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSONata transform file in %s: %w", path, err)
	}
	return e, nil
}

// Eval evaluates the expression against input. It returns
// jsonata.ErrUndefined if the expression matches nothing.
func (e *Expression) Eval(input any) (any, error) {
	expr, ok := e.pool.Get().(*jsonata.Expr)
	if !ok {
		var err error
		expr, err = jsonata.Compile(e.src)
		if err != nil {
			return nil, err
		}
	}
	defer e.pool.Put(expr)
	return expr.Eval(input)
}
