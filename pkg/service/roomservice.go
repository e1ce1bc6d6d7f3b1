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
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/livekit/token-server/pkg/config"
	"github.com/livekit/token-server/pkg/gateway"
	"github.com/livekit/token-server/pkg/logger"
	"github.com/livekit/token-server/pkg/telemetry/prometheus"
)

// RoomInfo is the client-facing room shape.
type RoomInfo struct {
	Name         string    `json:"name"`
	DisplayName  string    `json:"displayName"`
	Participants int       `json:"participants"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RoomService exposes room management operations backed by the remote
// room service. It holds no state of its own.
type RoomService struct {
	conf    *config.Config
	gateway RoomGateway
}

func NewRoomService(conf *config.Config, gw RoomGateway) *RoomService {
	return &RoomService{
		conf:    conf,
		gateway: gw,
	}
}

func (s *RoomService) ListRooms(ctx context.Context) ([]*RoomInfo, error) {
	rooms, err := s.gateway.ListRooms(ctx)
	if err != nil {
		prometheus.GatewayError("list_rooms")
		return nil, errors.Wrap(err, "could not list rooms")
	}

	infos := make([]*RoomInfo, 0, len(rooms))
	for _, room := range rooms {
		infos = append(infos, roomInfoFrom(room))
	}
	return infos, nil
}

// CreateRoom creates a room with the configured empty-timeout and
// participant limit. An empty name gets a timestamped placeholder.
func (s *RoomService) CreateRoom(ctx context.Context, name string) (*RoomInfo, error) {
	if name == "" {
		name = fmt.Sprintf("room-%d", time.Now().Unix())
	}

	room, err := s.gateway.CreateRoom(ctx, name, s.conf.Room.EmptyTimeout, s.conf.Room.MaxParticipants)
	if err != nil {
		prometheus.GatewayError("create_room")
		return nil, errors.Wrap(err, "could not create room")
	}

	logger.Infow("room created", "room", room.Name)
	return roomInfoFrom(room), nil
}

func (s *RoomService) DeleteRoom(ctx context.Context, name string) error {
	if err := s.gateway.DeleteRoom(ctx, name); err != nil {
		prometheus.GatewayError("delete_room")
		return errors.Wrap(err, "could not delete room")
	}
	logger.Infow("room deleted", "room", name)
	return nil
}

func (s *RoomService) ListParticipants(ctx context.Context, roomName string) ([]*gateway.ParticipantInfo, error) {
	participants, err := s.gateway.ListParticipants(ctx, roomName)
	if err != nil {
		prometheus.GatewayError("list_participants")
		return nil, errors.Wrap(err, "could not list participants")
	}
	return participants, nil
}

func (s *RoomService) RemoveParticipant(ctx context.Context, roomName, identity string) error {
	if err := s.gateway.RemoveParticipant(ctx, roomName, identity); err != nil {
		prometheus.GatewayError("remove_participant")
		return errors.Wrap(err, "could not remove participant")
	}
	logger.Infow("participant removed", "participant", identity, "room", roomName)
	return nil
}

func roomInfoFrom(room *gateway.Room) *RoomInfo {
	createdAt := time.Now()
	if room.CreationTime > 0 {
		createdAt = time.Unix(room.CreationTime, 0)
	}
	return &RoomInfo{
		Name:         room.Name,
		DisplayName:  room.Name,
		Participants: int(room.NumParticipants),
		CreatedAt:    createdAt,
	}
}
