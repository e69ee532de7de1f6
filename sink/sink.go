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

// Package sink delivers CloudEvents to a Knative sink, optionally over TLS
// and authenticated with an OIDC token.
package sink

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	cehttp "github.com/cloudevents/sdk-go/v2/protocol/http"
	"github.com/jpillora/backoff"
	"github.com/knative-extensions/kn-connectors/internal/logging"
)

var ErrNoSink = errors.New("sink URL is not configured")

type Client struct {
	opts Options
	ce   cloudevents.Client
}

func NewClient(opts Options) (*Client, error) {
	if opts.URL == "" {
		return nil, ErrNoSink
	}

	tlsConfig, err := opts.TLSConfig()
	if err != nil {
		return nil, err
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = tlsConfig

	var rt http.RoundTripper = transport
	if opts.OIDCEnabled {
		if opts.OIDCTokenPath == "" {
			return nil, errors.New("OIDC is enabled but no token path is configured")
		}
		rt = &bearerTransport{next: transport, tokenPath: opts.OIDCTokenPath}
	}

	p, err := cehttp.New(
		cehttp.WithTarget(opts.URL),
		cehttp.WithClient(http.Client{Transport: rt}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http protocol: %w", err)
	}
	ce, err := cloudevents.NewClient(p, cloudevents.WithTimeNow())
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudevents client: %w", err)
	}

	return &Client{opts: opts, ce: ce}, nil
}

// Send delivers the event in binary content mode and returns the HTTP
// status of the sink's last answer, or 0 if the sink could not be reached.
// Failed deliveries are retried with an exponential backoff up to
// Options.Retries times.
func (c *Client) Send(ctx context.Context, e cloudevents.Event) (int, error) {
	ctx = cloudevents.WithEncodingBinary(ctx)
	b := &backoff.Backoff{
		Factor: 2,
		Min:    time.Millisecond * 100,
		Max:    time.Second * 5,
	}

	for attempt := 0; ; attempt++ {
		result := c.ce.Send(ctx, e)
		status, _ := StatusCode(result)
		if cloudevents.IsACK(result) {
			return status, nil
		}
		if attempt >= c.opts.Retries || !retryable(result) {
			return status, fmt.Errorf("failed to send event %s: %w", e.ID(), result)
		}

		wait := b.Duration()
		logging.Logger(ctx).Warn().
			Err(result).
			Int("attempt", attempt+1).
			Dur("backoff", wait).
			Msg("event delivery failed, retrying")
		select {
		case <-ctx.Done():
			return status, ctx.Err()
		case <-time.After(wait):
		}
	}
}

// StatusCode returns the HTTP status code the sink responded with, if err
// carries one.
func StatusCode(err error) (int, bool) {
	var res *cehttp.Result
	if cloudevents.ResultAs(err, &res) {
		return res.StatusCode, true
	}
	return 0, false
}

func retryable(result error) bool {
	code, ok := StatusCode(result)
	if !ok {
		// transport error
		return true
	}
	return code == http.StatusTooManyRequests || code >= 500
}

// bearerTransport reads the token on every request so rotated tokens are
// picked up.
type bearerTransport struct {
	next      http.RoundTripper
	tokenPath string
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := os.ReadFile(t.tokenPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read OIDC token: %w", err)
	}
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(string(token)))
	return t.next.RoundTrip(req)
}
