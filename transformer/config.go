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
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/knative-extensions/kn-connectors/sink"
)

// Config of the transformer service, read from environment variables.
type Config struct {
	Port          int           `envconfig:"PORT" default:"8080"`
	TransformFile string        `envconfig:"JSONATA_TRANSFORM_FILE_NAME" required:"true"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
	ShutdownGrace time.Duration `envconfig:"SHUTDOWN_GRACE" default:"5s"`

	// Transformed events are sent to the sink if Options.URL (K_SINK) is
	// set, otherwise they are returned in the response.
	sink.Options
}

// ConfigFromEnvironment returns the configuration derived from environment
// variables.
func ConfigFromEnvironment() (Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	return c, err
}
