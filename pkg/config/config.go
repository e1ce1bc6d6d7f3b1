// Copyright 2023 LiveKit, Inc.
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

package config

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/livekit/token-server/pkg/logger"
)

const (
	// placeholder credentials for local development against a room
	// service started with its own dev defaults
	devAPIKey    = "devkey"
	devAPISecret = "secret"
)

var ErrKeysMissing = errors.New("api_key and api_secret must be set")

type Config struct {
	Host           string `yaml:"host,omitempty"`
	Port           uint32 `yaml:"port,omitempty"`
	PrometheusPort uint32 `yaml:"prometheus_port,omitempty"`

	Gateway GatewayConfig `yaml:"gateway,omitempty"`
	Room    RoomConfig    `yaml:"room,omitempty"`
	TLS     TLSConfig     `yaml:"tls,omitempty"`
	Logging logger.Config `yaml:"logging,omitempty"`

	Development bool `yaml:"development,omitempty"`
}

type GatewayConfig struct {
	// API endpoint of the room service
	URL string `yaml:"url,omitempty"`
	// websocket URL handed back to clients, never dialed by this server
	WSURL     string `yaml:"ws_url,omitempty"`
	APIKey    string `yaml:"api_key,omitempty"`
	APISecret string `yaml:"api_secret,omitempty"`
}

type RoomConfig struct {
	DefaultName     string `yaml:"default_name,omitempty"`
	EmptyTimeout    uint32 `yaml:"empty_timeout,omitempty"`
	MaxParticipants uint32 `yaml:"max_participants,omitempty"`
}

type TLSConfig struct {
	Enabled  bool   `yaml:"enabled,omitempty"`
	CertFile string `yaml:"cert_file,omitempty"`
	KeyFile  string `yaml:"key_file,omitempty"`
}

func NewConfig(confString string, c *cli.Context) (*Config, error) {
	conf := &Config{
		Host: "localhost",
		Port: 8081,
		Gateway: GatewayConfig{
			URL:   "http://localhost:7880",
			WSURL: "ws://localhost:7880",
		},
		Room: RoomConfig{
			DefaultName:     "default-room",
			EmptyTimeout:    300,
			MaxParticipants: 50,
		},
		TLS: TLSConfig{
			CertFile: "./certs/server.crt",
			KeyFile:  "./certs/server.key",
		},
	}

	if confString != "" {
		decoder := yaml.NewDecoder(bytes.NewReader([]byte(confString)))
		decoder.KnownFields(true)
		if err := decoder.Decode(conf); err != nil {
			return nil, fmt.Errorf("could not parse config: %v", err)
		}
	}

	if c != nil {
		conf.updateFromCLI(c)
	}

	if conf.Gateway.APIKey == "" || conf.Gateway.APISecret == "" {
		if !conf.Development {
			return nil, ErrKeysMissing
		}
		conf.Gateway.APIKey = devAPIKey
		conf.Gateway.APISecret = devAPISecret
	}

	return conf, nil
}

func (conf *Config) updateFromCLI(c *cli.Context) {
	if c.IsSet("bind") {
		conf.Host = c.String("bind")
	}
	if c.IsSet("port") {
		conf.Port = uint32(c.Uint("port"))
	}
	if c.IsSet("gateway-url") {
		conf.Gateway.URL = c.String("gateway-url")
	}
	if c.IsSet("gateway-ws-url") {
		conf.Gateway.WSURL = c.String("gateway-ws-url")
	}
	if c.IsSet("api-key") {
		conf.Gateway.APIKey = c.String("api-key")
	}
	if c.IsSet("api-secret") {
		conf.Gateway.APISecret = c.String("api-secret")
	}
	if c.IsSet("enable-tls") {
		conf.TLS.Enabled = c.Bool("enable-tls")
	}
	if c.IsSet("tls-cert") {
		conf.TLS.CertFile = c.String("tls-cert")
	}
	if c.IsSet("tls-key") {
		conf.TLS.KeyFile = c.String("tls-key")
	}
	if c.Bool("dev") {
		conf.Development = true
		if conf.Logging.Level == "" {
			conf.Logging.Level = "debug"
		}
	}
}

// UsingDevKeys reports whether the server fell back to the placeholder
// development credentials.
func (conf *Config) UsingDevKeys() bool {
	return conf.Gateway.APIKey == devAPIKey && conf.Gateway.APISecret == devAPISecret
}
