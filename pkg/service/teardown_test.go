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

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/livekit/token-server/pkg/gateway"
)

func TestEndRoom(t *testing.T) {
	t.Run("evicts everyone then deletes", func(t *testing.T) {
		gw := &fakeGateway{
			listParticipantsFn: func(ctx context.Context, roomName string) ([]*gateway.ParticipantInfo, error) {
				return []*gateway.ParticipantInfo{{Identity: "alice"}, {Identity: "bob"}}, nil
			},
		}
		svc := NewRoomService(testConfig(t), gw)

		summary, err := svc.EndRoom(context.Background(), "standup")
		require.NoError(t, err)
		require.Equal(t, []string{"alice", "bob"}, gw.removedIdentities)
		require.Equal(t, []string{"standup"}, gw.deletedRooms)
		require.Equal(t, 2, summary.Requested)
		require.Equal(t, 2, summary.Evicted)
		require.Empty(t, summary.FailedIdentities)
		require.NoError(t, summary.DeleteErr)
	})

	t.Run("failed removal does not stop the loop", func(t *testing.T) {
		gw := &fakeGateway{
			listParticipantsFn: func(ctx context.Context, roomName string) ([]*gateway.ParticipantInfo, error) {
				return []*gateway.ParticipantInfo{{Identity: "alice"}, {Identity: "bob"}}, nil
			},
			removeParticipantFn: func(ctx context.Context, roomName, identity string) error {
				if identity == "alice" {
					return errors.New("participant is stuck")
				}
				return nil
			},
		}
		svc := NewRoomService(testConfig(t), gw)

		summary, err := svc.EndRoom(context.Background(), "standup")
		require.NoError(t, err, "partial failures still count as overall success")
		require.Equal(t, []string{"alice", "bob"}, gw.removedIdentities)
		require.Equal(t, []string{"standup"}, gw.deletedRooms)
		require.Equal(t, 1, summary.Evicted)
		require.Equal(t, []string{"alice"}, summary.FailedIdentities)
	})

	t.Run("failed deletion is recorded not raised", func(t *testing.T) {
		gw := &fakeGateway{
			listParticipantsFn: func(ctx context.Context, roomName string) ([]*gateway.ParticipantInfo, error) {
				return nil, nil
			},
			deleteRoomFn: func(ctx context.Context, name string) error {
				return errors.New("deletion refused")
			},
		}
		svc := NewRoomService(testConfig(t), gw)

		summary, err := svc.EndRoom(context.Background(), "standup")
		require.NoError(t, err)
		require.Error(t, summary.DeleteErr)
	})

	t.Run("listing failure aborts before any mutation", func(t *testing.T) {
		gw := &fakeGateway{
			listParticipantsFn: func(ctx context.Context, roomName string) ([]*gateway.ParticipantInfo, error) {
				return nil, errors.New("gateway unreachable")
			},
		}
		svc := NewRoomService(testConfig(t), gw)

		summary, err := svc.EndRoom(context.Background(), "standup")
		require.Error(t, err)
		require.Nil(t, summary)
		require.Empty(t, gw.removedIdentities)
		require.Empty(t, gw.deletedRooms)
	})
}
