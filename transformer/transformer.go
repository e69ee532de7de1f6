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

// Package transformer implements an HTTP service that transforms incoming
// CloudEvents with a JSONata expression. The result is either returned to the
// caller or forwarded as a new CloudEvent to a Knative sink.
package transformer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	jsonata "github.com/blues/jsonata-go"
	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/cloudevents/sdk-go/v2/binding"
	cehttp "github.com/cloudevents/sdk-go/v2/protocol/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/knative-extensions/kn-connectors/internal/logging"
)

const (
	EventType    = "dev.knative.eventing.transformer"
	EventSource  = "dev.knative.eventing.jsonata-transformer"
	EventSubject = "jsonata-transformer"

	// HeaderReason carries the reason of a failed request.
	HeaderReason = "Reason"
)

var errBatch = errors.New("unsupported batch input")

//go:generate mockgen -destination=mock_sender_test.go -self_package=github.com/knative-extensions/kn-connectors/transformer -package=transformer -write_package_comment=false . Sender

// Sender delivers transformed events. It is implemented by *sink.Client.
// Send returns the HTTP status the sink answered with, or 0 if the sink
// could not be reached.
type Sender interface {
	Send(ctx context.Context, e cloudevents.Event) (int, error)
}

type handler struct {
	expr   *Expression
	sender Sender
}

// NewHandler returns the HTTP handler of the service. If sender is nil the
// transformation result is returned in the response body.
func NewHandler(expr *Expression, sender Sender) http.Handler {
	h := &handler{expr: expr, sender: sender}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/", h.transform)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "OK")
	})
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "READY")
	})
	return r
}

func (h *handler) transform(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.Logger(ctx)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		fail(w, http.StatusBadRequest, err)
		return
	}

	input, err := h.input(ctx, r.Header, body)
	if err != nil {
		logger.Debug().Err(err).Msg("rejecting input")
		w.Header().Set(HeaderReason, "Unsupported batch input")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	out, err := h.expr.Eval(input)
	if errors.Is(err, jsonata.ErrUndefined) {
		out, err = nil, nil
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed to evaluate JSONata expression")
		fail(w, http.StatusInternalServerError, err)
		return
	}
	result, err := json.Marshal(out)
	if err != nil {
		fail(w, http.StatusInternalServerError, err)
		return
	}

	if h.sender == nil {
		logger.Debug().RawJSON("result", result).Msg("transformed input")
		w.Header().Set("Content-Type", cloudevents.ApplicationJSON)
		w.WriteHeader(http.StatusOK)
		if out != nil {
			_, _ = w.Write(result)
		}
		return
	}

	e := cloudevents.NewEvent()
	e.SetID(uuid.NewString())
	e.SetType(EventType)
	e.SetSource(EventSource)
	e.SetSubject(EventSubject)
	if out != nil {
		if err := e.SetData(cloudevents.ApplicationJSON, result); err != nil {
			fail(w, http.StatusInternalServerError, err)
			return
		}
	}

	status, err := h.sender.Send(ctx, e)
	switch {
	case err == nil:
		if status == 0 {
			status = http.StatusNoContent
		}
		w.WriteHeader(status)
		return
	case status != 0:
		logger.Debug().Int("status", status).Msg("sink rejected event")
		w.WriteHeader(status)
		return
	}
	logger.Error().Err(err).Msg("failed to send event to sink")
	fail(w, http.StatusBadGateway, err)
}

// input returns the value the expression is evaluated against. A CloudEvent
// is converted to its structured JSON form, any other body is used as JSON
// or, failing that, as a string.
func (h *handler) input(ctx context.Context, header http.Header, body []byte) (any, error) {
	if isBatch(header.Get("Content-Type")) {
		return nil, errBatch
	}

	msg := cehttp.NewMessage(header, io.NopCloser(bytes.NewReader(body)))
	defer msg.Finish(nil)
	if msg.ReadEncoding() == binding.EncodingBatch {
		return nil, errBatch
	}

	if e, err := binding.ToEvent(ctx, msg); err == nil && e.Validate() == nil {
		raw, err := json.Marshal(e)
		if err == nil {
			var v any
			if err := json.Unmarshal(raw, &v); err == nil {
				return v, nil
			}
		}
	}
	logging.Logger(ctx).Debug().Msg("failed to deserialize CloudEvent, falling back to raw body")

	var v any
	if err := json.Unmarshal(body, &v); err == nil {
		return v, nil
	}
	return string(body), nil
}

func isBatch(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.EqualFold(mediaType, cloudevents.ApplicationCloudEventsBatchJSON)
}

func fail(w http.ResponseWriter, code int, err error) {
	w.Header().Set(HeaderReason, err.Error())
	w.WriteHeader(code)
}
