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

package sink

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
)

// Options configure the HTTP client used to deliver events to a Knative
// sink. The field tags follow the environment variables injected by Knative
// and the Camel Knative client properties.
type Options struct {
	// URL of the sink, injected by Knative as K_SINK.
	URL string `envconfig:"K_SINK"`
	// CACerts contains PEM encoded CA certificates of the sink, injected by
	// Knative as K_CA_CERTS. They are added to the system pool.
	CACerts string `envconfig:"K_CA_CERTS"`

	TLSEnabled     bool `envconfig:"CAMEL_KNATIVE_CLIENT_SSL_ENABLED"`
	VerifyHostname bool `envconfig:"CAMEL_KNATIVE_CLIENT_SSL_VERIFY_HOSTNAME" default:"true"`
	// KeyPath and KeyCertPath point to a PEM encoded client key and
	// certificate. KeyCertPath defaults to KeyPath.
	KeyPath     string `envconfig:"CAMEL_KNATIVE_CLIENT_SSL_KEY_PATH"`
	KeyCertPath string `envconfig:"CAMEL_KNATIVE_CLIENT_SSL_KEY_CERT_PATH"`
	// TrustCertPath points to PEM encoded certificates trusted by the
	// client. If empty and TLS is enabled, all certificates are trusted.
	TrustCertPath string `envconfig:"CAMEL_KNATIVE_CLIENT_SSL_TRUST_CERT_PATH"`

	OIDCEnabled   bool   `envconfig:"CAMEL_KNATIVE_CLIENT_OIDC_ENABLED"`
	OIDCTokenPath string `envconfig:"CAMEL_KNATIVE_CLIENT_OIDC_TOKEN_PATH"`

	// Retries is the number of times a failed delivery is retried.
	Retries int `envconfig:"CAMEL_KNATIVE_CLIENT_RETRIES" default:"0"`
}

// TLSConfig returns the client TLS configuration described by the options.
// It returns nil if neither TLS nor custom CA certificates are configured.
func (o Options) TLSConfig() (*tls.Config, error) {
	if !o.TLSEnabled && o.CACerts == "" {
		return nil, nil
	}

	cfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if o.CACerts != "" {
		pool, err := x509.SystemCertPool()
		if err != nil {
			pool = x509.NewCertPool()
		}
		if !pool.AppendCertsFromPEM([]byte(o.CACerts)) {
			return nil, errors.New("K_CA_CERTS does not contain any valid PEM certificate")
		}
		cfg.RootCAs = pool
	}
	if !o.TLSEnabled {
		return cfg, nil
	}

	if o.KeyPath != "" {
		certPath := o.KeyCertPath
		if certPath == "" {
			certPath = o.KeyPath
		}
		cert, err := tls.LoadX509KeyPair(certPath, o.KeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load client key pair: %w", err)
		}
		cfg.Certificates = []tls.Certificate{cert}
	}

	if o.TrustCertPath == "" {
		cfg.InsecureSkipVerify = true
		return cfg, nil
	}

	pem, err := os.ReadFile(o.TrustCertPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read trust certificates: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("%s does not contain any valid PEM certificate", o.TrustCertPath)
	}
	cfg.RootCAs = pool

	if !o.VerifyHostname {
		// Verify the chain ourselves, skipping only the hostname check.
		cfg.InsecureSkipVerify = true
		cfg.VerifyConnection = func(cs tls.ConnectionState) error {
			if len(cs.PeerCertificates) == 0 {
				return errors.New("sink presented no certificate")
			}
			opts := x509.VerifyOptions{
				Roots:         pool,
				Intermediates: x509.NewCertPool(),
			}
			for _, c := range cs.PeerCertificates[1:] {
				opts.Intermediates.AddCert(c)
			}
			_, err := cs.PeerCertificates[0].Verify(opts)
			return err
		}
	}
	return cfg, nil
}
