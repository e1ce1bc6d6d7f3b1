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

	"github.com/livekit/token-server/pkg/gateway"
)

// RoomGateway is the capability surface of the room service of record.
// Implementations must be safe for concurrent use; every method is a
// single network attempt with no retries.
type RoomGateway interface {
	ListRooms(ctx context.Context) ([]*gateway.Room, error)
	CreateRoom(ctx context.Context, name string, emptyTimeout, maxParticipants uint32) (*gateway.Room, error)
	DeleteRoom(ctx context.Context, name string) error
	ListParticipants(ctx context.Context, roomName string) ([]*gateway.ParticipantInfo, error)
	RemoveParticipant(ctx context.Context, roomName, identity string) error
}
