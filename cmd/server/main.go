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

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/livekit/token-server/pkg/config"
	"github.com/livekit/token-server/pkg/gateway"
	"github.com/livekit/token-server/pkg/logger"
	"github.com/livekit/token-server/pkg/service"
	"github.com/livekit/token-server/version"
)

var baseFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "config",
		Usage: "path to config file",
	},
	&cli.StringFlag{
		Name:    "config-body",
		Usage:   "config in YAML, typically passed in as an environment var in a container",
		EnvVars: []string{"TOKEN_SERVER_CONFIG"},
	},
	&cli.StringFlag{
		Name:    "bind",
		Usage:   "host or IP address to listen on",
		EnvVars: []string{"SERVER_HOST"},
	},
	&cli.UintFlag{
		Name:    "port",
		Usage:   "port to listen on",
		EnvVars: []string{"SERVER_PORT"},
	},
	&cli.StringFlag{
		Name:    "gateway-url",
		Usage:   "API endpoint of the room service",
		EnvVars: []string{"LIVEKIT_URL"},
	},
	&cli.StringFlag{
		Name:    "gateway-ws-url",
		Usage:   "websocket URL handed to clients",
		EnvVars: []string{"LIVEKIT_WS_URL"},
	},
	&cli.StringFlag{
		Name:    "api-key",
		Usage:   "room service API key",
		EnvVars: []string{"LIVEKIT_API_KEY"},
	},
	&cli.StringFlag{
		Name:    "api-secret",
		Usage:   "room service API secret",
		EnvVars: []string{"LIVEKIT_API_SECRET"},
	},
	&cli.BoolFlag{
		Name:    "enable-tls",
		Usage:   "terminate TLS on the listen port",
		EnvVars: []string{"ENABLE_HTTPS"},
	},
	&cli.StringFlag{
		Name:    "tls-cert",
		Usage:   "path to TLS certificate",
		EnvVars: []string{"SSL_CERT_FILE"},
	},
	&cli.StringFlag{
		Name:    "tls-key",
		Usage:   "path to TLS key",
		EnvVars: []string{"SSL_KEY_FILE"},
	},
	&cli.BoolFlag{
		Name:  "dev",
		Usage: "sets log-level to debug and allows placeholder API keys",
	},
}

func main() {
	app := &cli.App{
		Name:        "token-server",
		Usage:       "Access token and room management service for LiveKit rooms",
		Description: "run without subcommands to start the server",
		Flags:       baseFlags,
		Action:      startServer,
		Version:     version.Version,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func getConfig(c *cli.Context) (*config.Config, error) {
	confString, err := getConfigString(c.String("config"), c.String("config-body"))
	if err != nil {
		return nil, err
	}

	return config.NewConfig(confString, c)
}

func getConfigString(configFile, inConfigBody string) (string, error) {
	if inConfigBody != "" || configFile == "" {
		return inConfigBody, nil
	}

	outConfigBody, err := os.ReadFile(configFile)
	if err != nil {
		return "", errors.Wrapf(err, "could not read config: %s", configFile)
	}
	return string(outConfigBody), nil
}

func startServer(c *cli.Context) error {
	conf, err := getConfig(c)
	if err != nil {
		return err
	}

	logger.InitFromConfig(conf.Logging)
	if conf.UsingDevKeys() {
		logger.Infow("no keys provided, using placeholder keys (insecure)")
	}

	gw := gateway.NewClient(conf.Gateway.URL, conf.Gateway.APIKey, conf.Gateway.APISecret)
	server := service.NewServer(conf,
		service.NewTokenService(conf, gw),
		service.NewRoomService(conf, gw),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Infow("exit requested, shutting down", "signal", sig)
		server.Stop()
	}()

	logger.Infow("server starting",
		"version", version.Version,
		"gateway", conf.Gateway.URL,
		"wsURL", conf.Gateway.WSURL,
	)
	return server.Start()
}
