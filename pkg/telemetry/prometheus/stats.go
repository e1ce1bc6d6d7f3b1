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

package prometheus

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const livekitNamespace = "livekit"

var (
	initialized bool

	promTokensIssued  *prometheus.CounterVec
	promRoomsEnded    prometheus.Counter
	promGatewayErrors *prometheus.CounterVec
)

func Init() {
	if initialized {
		return
	}
	initialized = true

	promTokensIssued = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: livekitNamespace,
		Subsystem: "token",
		Name:      "issued_total",
	}, []string{"host"})
	promRoomsEnded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: livekitNamespace,
		Subsystem: "room",
		Name:      "ended_total",
	})
	promGatewayErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: livekitNamespace,
		Subsystem: "gateway",
		Name:      "error_total",
	}, []string{"operation"})

	prometheus.MustRegister(promTokensIssued, promRoomsEnded, promGatewayErrors)
}

func TokenIssued(isHost bool) {
	if !initialized {
		return
	}
	promTokensIssued.WithLabelValues(strconv.FormatBool(isHost)).Inc()
}

func RoomEnded() {
	if !initialized {
		return
	}
	promRoomsEnded.Inc()
}

func GatewayError(operation string) {
	if !initialized {
		return
	}
	promGatewayErrors.WithLabelValues(operation).Inc()
}

// ListenAndServe exposes the metrics endpoint on its own port.
func ListenAndServe(port uint32) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
}
