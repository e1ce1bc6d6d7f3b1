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

package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/cors"
	"github.com/urfave/negroni/v3"
	"go.uber.org/atomic"

	"github.com/livekit/token-server/pkg/config"
	"github.com/livekit/token-server/pkg/logger"
	"github.com/livekit/token-server/pkg/telemetry/prometheus"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	running    atomic.Bool
	doneChan   chan struct{}
}

func NewServer(conf *config.Config, tokenService *TokenService, roomService *RoomService) *Server {
	handler := &apiHandler{
		tokenService: tokenService,
		roomService:  roomService,
	}
	mux := http.NewServeMux()
	handler.register(mux)

	n := negroni.New()
	n.Use(negroni.NewRecovery())
	n.UseHandler(mux)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return &Server{
		conf: conf,
		httpServer: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", conf.Host, conf.Port),
			Handler: c.Handler(n),
		},
		doneChan: make(chan struct{}),
	}
}

func (s *Server) IsRunning() bool {
	return s.running.Load()
}

// Start serves until Stop is called. TLS is terminated here when the
// config enables it.
func (s *Server) Start() error {
	if !s.running.CompareAndSwap(false, true) {
		return errors.New("already running")
	}

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}

	if s.conf.PrometheusPort > 0 {
		prometheus.Init()
		go func() {
			if err := prometheus.ListenAndServe(s.conf.PrometheusPort); err != nil {
				logger.Errorw("could not serve metrics", err)
			}
		}()
	}

	go func() {
		var serveErr error
		if s.conf.TLS.Enabled {
			logger.Infow("starting token server with TLS",
				"address", s.httpServer.Addr, "cert", s.conf.TLS.CertFile)
			serveErr = s.httpServer.ServeTLS(ln, s.conf.TLS.CertFile, s.conf.TLS.KeyFile)
		} else {
			logger.Infow("starting token server", "address", s.httpServer.Addr)
			serveErr = s.httpServer.Serve(ln)
		}
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Errorw("server stopped", serveErr)
		}
	}()

	<-s.doneChan

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Stop() {
	if s.running.CompareAndSwap(true, false) {
		close(s.doneChan)
	}
}
