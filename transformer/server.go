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
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/knative-extensions/kn-connectors/internal/logging"
	"github.com/knative-extensions/kn-connectors/sink"
	"gopkg.in/tomb.v2"
)

// Run starts the service described by cfg and blocks until ctx is cancelled
// or the server fails.
func Run(ctx context.Context, cfg Config) error {
	expr, err := LoadExpression(cfg.TransformFile)
	if err != nil {
		return err
	}

	var sender Sender
	if cfg.URL != "" {
		c, err := sink.NewClient(cfg.Options)
		if err != nil {
			return fmt.Errorf("failed to create sink client: %w", err)
		}
		sender = c
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", cfg.Port, err)
	}
	logging.Logger(ctx).Info().
		Int("port", cfg.Port).
		Bool("sink", sender != nil).
		Msg("JSONata server listening")

	return Serve(ctx, ln, NewHandler(expr, sender), cfg.ShutdownGrace)
}

// Serve serves handler on ln until ctx is cancelled, then shuts the server
// down gracefully, waiting at most grace for open requests.
func Serve(ctx context.Context, ln net.Listener, handler http.Handler, grace time.Duration) error {
	t, tctx := tomb.WithContext(ctx)
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			// carries the logger into request contexts, open requests
			// must survive the cancellation of ctx during shutdown
			return context.WithoutCancel(ctx)
		},
	}

	t.Go(func() error {
		err := srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	t.Go(func() error {
		<-t.Dying()
		logging.Logger(tctx).Info().Msg("shutting down gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		if errors.Is(err, context.DeadlineExceeded) {
			logging.Logger(tctx).Warn().Msg("could not close connections in time, forcefully shutting down")
			return srv.Close()
		}
		return err
	})

	err := t.Wait()
	if errors.Is(err, context.Canceled) {
		return nil // not an actual error
	}
	return err
}
