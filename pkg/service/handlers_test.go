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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/livekit/token-server/pkg/gateway"
)

func newTestMux(t *testing.T, gw *fakeGateway) *http.ServeMux {
	conf := testConfig(t)
	h := &apiHandler{
		tokenService: NewTokenService(conf, gw),
		roomService:  NewRoomService(conf, gw),
	}
	mux := http.NewServeMux()
	h.register(mux)
	return mux
}

func TestTokenEndpoint(t *testing.T) {
	t.Run("first joiner of empty room", func(t *testing.T) {
		mux := newTestMux(t, &fakeGateway{})

		req := httptest.NewRequest(http.MethodPost, "/api/token",
			strings.NewReader(`{"roomName":"standup","participantName":"alice","isHost":false}`))
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		res := TokenResponse{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.True(t, res.IsHost)
		require.Equal(t, "standup", res.RoomName)
		require.NotEmpty(t, res.Token)
		require.Equal(t, "ws://media.example.com", res.URL)
	})

	t.Run("malformed body", func(t *testing.T) {
		mux := newTestMux(t, &fakeGateway{})

		req := httptest.NewRequest(http.MethodPost, "/api/token", strings.NewReader("{not json"))
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		body := map[string]string{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.NotEmpty(t, body["error"])
	})
}

func TestRoomEndpoints(t *testing.T) {
	t.Run("health", func(t *testing.T) {
		mux := newTestMux(t, &fakeGateway{})

		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		body := map[string]string{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Equal(t, "ok", body["status"])
		require.NotEmpty(t, body["time"])
	})

	t.Run("create room", func(t *testing.T) {
		mux := newTestMux(t, &fakeGateway{})

		req := httptest.NewRequest(http.MethodPost, "/api/rooms", strings.NewReader(`{"name":"standup"}`))
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		room := RoomInfo{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &room))
		require.Equal(t, "standup", room.Name)
	})

	t.Run("remove participant", func(t *testing.T) {
		gw := &fakeGateway{}
		mux := newTestMux(t, gw)

		req := httptest.NewRequest(http.MethodDelete, "/api/rooms/standup/participants/alice", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		body := map[string]string{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Equal(t, "alice", body["identity"])
		require.Equal(t, []string{"alice"}, gw.removedIdentities)
	})

	t.Run("list participants", func(t *testing.T) {
		gw := &fakeGateway{
			listParticipantsFn: func(ctx context.Context, roomName string) ([]*gateway.ParticipantInfo, error) {
				require.Equal(t, "standup", roomName)
				return []*gateway.ParticipantInfo{{Identity: "alice"}}, nil
			},
		}
		mux := newTestMux(t, gw)

		req := httptest.NewRequest(http.MethodGet, "/api/rooms/standup/participants", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		body := struct {
			Participants []*gateway.ParticipantInfo `json:"participants"`
		}{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Participants, 1)
		require.Equal(t, "alice", body.Participants[0].Identity)
	})

	t.Run("end room", func(t *testing.T) {
		gw := &fakeGateway{
			listParticipantsFn: func(ctx context.Context, roomName string) ([]*gateway.ParticipantInfo, error) {
				return []*gateway.ParticipantInfo{{Identity: "alice"}}, nil
			},
		}
		mux := newTestMux(t, gw)

		req := httptest.NewRequest(http.MethodPost, "/api/rooms/standup/end", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, []string{"alice"}, gw.removedIdentities)
		require.Equal(t, []string{"standup"}, gw.deletedRooms)
	})

	t.Run("gateway failure returns json error", func(t *testing.T) {
		gw := &fakeGateway{
			listRoomsFn: func(ctx context.Context) ([]*gateway.Room, error) {
				return nil, errors.New("gateway unreachable")
			},
		}
		mux := newTestMux(t, gw)

		req := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		require.Equal(t, http.StatusInternalServerError, w.Code)
		body := map[string]string{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Contains(t, body["error"], "could not list rooms")
	})
}
