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
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/livekit/token-server/pkg/auth"
	"github.com/livekit/token-server/pkg/config"
	"github.com/livekit/token-server/pkg/logger"
	"github.com/livekit/token-server/pkg/telemetry/prometheus"
)

// user tokens cover a full day of meetings; service tokens are minted
// separately with a much shorter window
const tokenValidity = 24 * time.Hour

type TokenRequest struct {
	RoomName        string `json:"roomName"`
	ParticipantName string `json:"participantName"`
	IsHost          bool   `json:"isHost"`
}

type TokenResponse struct {
	Token    string `json:"token"`
	URL      string `json:"url"`
	RoomName string `json:"roomName"`
	IsHost   bool   `json:"isHost"`
}

type participantMetadata struct {
	IsHost bool `json:"isHost"`
}

// TokenService issues join tokens and decides which joiner becomes the
// room's host.
type TokenService struct {
	conf    *config.Config
	gateway RoomGateway
}

func NewTokenService(conf *config.Config, gw RoomGateway) *TokenService {
	return &TokenService{
		conf:    conf,
		gateway: gw,
	}
}

// CreateToken normalizes the request, arbitrates host status, and
// returns a signed join token together with the websocket URL the
// client should connect to.
func (s *TokenService) CreateToken(ctx context.Context, req *TokenRequest) (*TokenResponse, error) {
	roomName, identity := s.normalize(req.RoomName, req.ParticipantName)

	isHost := req.IsHost
	if !isHost {
		isHost = s.isFirstJoiner(ctx, roomName)
		if isHost {
			logger.Infow("participant is host", "participant", identity, "room", roomName)
		}
	}

	grant := &auth.VideoGrant{
		RoomJoin: true,
		Room:     roomName,
	}
	grant.SetCanPublish(true)
	grant.SetCanSubscribe(true)

	md, err := json.Marshal(participantMetadata{IsHost: isHost})
	if err != nil {
		return nil, errors.Wrap(err, "could not encode participant metadata")
	}

	token, err := auth.AccessToken{
		APIKey:    s.conf.Gateway.APIKey,
		APISecret: s.conf.Gateway.APISecret,
		Identity:  identity,
		Metadata:  string(md),
		Grant:     grant,
		ValidFor:  tokenValidity,
	}.ToJWT()
	if err != nil {
		return nil, errors.Wrap(err, "could not generate token")
	}

	prometheus.TokenIssued(isHost)
	logger.Infow("token generated",
		"participant", identity, "room", roomName, "isHost", isHost)

	return &TokenResponse{
		Token:    token,
		URL:      s.conf.Gateway.WSURL,
		RoomName: roomName,
		IsHost:   isHost,
	}, nil
}

// normalize substitutes defaults for missing names, then trims both.
// Generated identities use a nanosecond timestamp suffix; uniqueness is
// best-effort and concurrent requests may collide. Defaulting happens
// before trimming, so a whitespace-only room name trims down to the
// empty string rather than picking up the default.
func (s *TokenService) normalize(roomName, participantName string) (string, string) {
	if roomName == "" {
		roomName = s.conf.Room.DefaultName
	}
	if participantName == "" {
		participantName = fmt.Sprintf("user-%d", time.Now().UnixNano())
	}
	return strings.TrimSpace(roomName), strings.TrimSpace(participantName)
}

// isFirstJoiner reports whether the room currently has no participants.
// A gateway failure counts as "empty": a room that does not exist yet is
// indistinguishable from an empty one here, and blocking the first
// joiner would be worse than handing out an extra host flag. Two
// concurrent joiners of an empty room can both observe zero participants
// and both become host; the gateway offers no atomic primitive to close
// that window, so host status must never be treated as a security
// boundary.
func (s *TokenService) isFirstJoiner(ctx context.Context, roomName string) bool {
	participants, err := s.gateway.ListParticipants(ctx, roomName)
	if err != nil {
		prometheus.GatewayError("list_participants")
		logger.Debugw("participant listing failed, treating room as empty",
			"room", roomName, "error", err)
		return true
	}
	return len(participants) == 0
}
