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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/livekit/token-server/pkg/config"
	"github.com/livekit/token-server/pkg/gateway"
)

// fakeGateway records calls and delegates to per-method stubs. Methods
// without a stub succeed with zero values.
type fakeGateway struct {
	listRoomsFn         func(ctx context.Context) ([]*gateway.Room, error)
	createRoomFn        func(ctx context.Context, name string, emptyTimeout, maxParticipants uint32) (*gateway.Room, error)
	deleteRoomFn        func(ctx context.Context, name string) error
	listParticipantsFn  func(ctx context.Context, roomName string) ([]*gateway.ParticipantInfo, error)
	removeParticipantFn func(ctx context.Context, roomName, identity string) error

	listParticipantsCalls int
	removedIdentities     []string
	deletedRooms          []string
}

func (f *fakeGateway) ListRooms(ctx context.Context) ([]*gateway.Room, error) {
	if f.listRoomsFn != nil {
		return f.listRoomsFn(ctx)
	}
	return nil, nil
}

func (f *fakeGateway) CreateRoom(ctx context.Context, name string, emptyTimeout, maxParticipants uint32) (*gateway.Room, error) {
	if f.createRoomFn != nil {
		return f.createRoomFn(ctx, name, emptyTimeout, maxParticipants)
	}
	return &gateway.Room{Name: name, EmptyTimeout: emptyTimeout, MaxParticipants: maxParticipants}, nil
}

func (f *fakeGateway) DeleteRoom(ctx context.Context, name string) error {
	f.deletedRooms = append(f.deletedRooms, name)
	if f.deleteRoomFn != nil {
		return f.deleteRoomFn(ctx, name)
	}
	return nil
}

func (f *fakeGateway) ListParticipants(ctx context.Context, roomName string) ([]*gateway.ParticipantInfo, error) {
	f.listParticipantsCalls++
	if f.listParticipantsFn != nil {
		return f.listParticipantsFn(ctx, roomName)
	}
	return nil, nil
}

func (f *fakeGateway) RemoveParticipant(ctx context.Context, roomName, identity string) error {
	f.removedIdentities = append(f.removedIdentities, identity)
	if f.removeParticipantFn != nil {
		return f.removeParticipantFn(ctx, roomName, identity)
	}
	return nil
}

func testConfig(t *testing.T) *config.Config {
	conf, err := config.NewConfig(`
gateway:
  ws_url: ws://media.example.com
  api_key: APIabcdef
  api_secret: secret-with-enough-entropy-for-tests
`, nil)
	require.NoError(t, err)
	return conf
}
