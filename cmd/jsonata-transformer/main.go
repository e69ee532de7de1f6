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

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/knative-extensions/kn-connectors/internal/logging"
	"github.com/knative-extensions/kn-connectors/transformer"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := transformer.ConfigFromEnvironment()
	logger := logging.NewJSON(os.Stderr, cfg.LogLevel)
	if err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx)

	if err := transformer.Run(ctx, cfg); err != nil {
		logger.Error().Err(err).Msg("transformer stopped")
		return 1
	}
	logger.Info().Msg("closed out remaining connections")
	return 0
}
