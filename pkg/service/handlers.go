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
	"errors"
	"net/http"
	"time"

	"github.com/livekit/token-server/pkg/gateway"
	"github.com/livekit/token-server/pkg/logger"
)

type apiHandler struct {
	tokenService *TokenService
	roomService  *RoomService
}

func (h *apiHandler) register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/token", h.createToken)
	mux.HandleFunc("GET /api/rooms", h.listRooms)
	mux.HandleFunc("POST /api/rooms", h.createRoom)
	mux.HandleFunc("DELETE /api/rooms/{roomName}", h.deleteRoom)
	mux.HandleFunc("GET /api/rooms/{roomName}/participants", h.listParticipants)
	mux.HandleFunc("DELETE /api/rooms/{roomName}/participants/{identity}", h.removeParticipant)
	mux.HandleFunc("POST /api/rooms/{roomName}/end", h.endRoom)
	mux.HandleFunc("GET /api/health", h.health)
}

func (h *apiHandler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (h *apiHandler) createToken(w http.ResponseWriter, r *http.Request) {
	req := &TokenRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		handleError(w, r, http.StatusBadRequest, errors.New("invalid request format"))
		return
	}

	res, err := h.tokenService.CreateToken(r.Context(), req)
	if err != nil {
		handleError(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *apiHandler) listRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.roomService.ListRooms(r.Context())
	if err != nil {
		handleError(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

func (h *apiHandler) createRoom(w http.ResponseWriter, r *http.Request) {
	req := struct {
		Name string `json:"name"`
	}{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, r, http.StatusBadRequest, errors.New("invalid request format"))
		return
	}

	room, err := h.roomService.CreateRoom(r.Context(), req.Name)
	if err != nil {
		handleError(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, room)
}

func (h *apiHandler) deleteRoom(w http.ResponseWriter, r *http.Request) {
	if err := h.roomService.DeleteRoom(r.Context(), r.PathValue("roomName")); err != nil {
		handleError(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Room deleted"})
}

func (h *apiHandler) listParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := h.roomService.ListParticipants(r.Context(), r.PathValue("roomName"))
	if err != nil {
		handleError(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Participants []*gateway.ParticipantInfo `json:"participants"`
	}{Participants: participants})
}

func (h *apiHandler) removeParticipant(w http.ResponseWriter, r *http.Request) {
	identity := r.PathValue("identity")
	if err := h.roomService.RemoveParticipant(r.Context(), r.PathValue("roomName"), identity); err != nil {
		handleError(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":  "Participant removed",
		"identity": identity,
	})
}

func (h *apiHandler) endRoom(w http.ResponseWriter, r *http.Request) {
	if _, err := h.roomService.EndRoom(r.Context(), r.PathValue("roomName")); err != nil {
		handleError(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Meeting ended"})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func handleError(w http.ResponseWriter, r *http.Request, status int, err error, keysAndValues ...interface{}) {
	keysAndValues = append(keysAndValues, "status", status)
	if r != nil && r.URL != nil {
		keysAndValues = append(keysAndValues, "method", r.Method, "path", r.URL.Path)
	}
	if !errors.Is(err, context.Canceled) {
		logger.Warnw("error handling request", err, keysAndValues...)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
