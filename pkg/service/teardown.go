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

	"github.com/pkg/errors"

	"github.com/livekit/token-server/pkg/logger"
	"github.com/livekit/token-server/pkg/telemetry/prometheus"
)

// TeardownSummary records what an EndRoom run attempted. Callers that
// care about partial failures can inspect it; the overall operation
// still counts as a success once the initial listing went through.
type TeardownSummary struct {
	RoomName         string
	Requested        int
	Evicted          int
	FailedIdentities []string
	DeleteErr        error
}

// EndRoom evicts every participant and then deletes the room. The
// participant listing must succeed or nothing is attempted. Each
// removal is tried exactly once, in list order; a failed removal never
// stops the loop, and the deletion runs regardless of removal outcomes.
// Sub-failures are logged and collected in the summary instead of
// failing the call: the goal is "an eviction and deletion attempt was
// made for everyone", not transactionality.
func (s *RoomService) EndRoom(ctx context.Context, roomName string) (*TeardownSummary, error) {
	participants, err := s.gateway.ListParticipants(ctx, roomName)
	if err != nil {
		prometheus.GatewayError("list_participants")
		return nil, errors.Wrap(err, "could not end meeting")
	}

	summary := &TeardownSummary{
		RoomName:  roomName,
		Requested: len(participants),
	}

	for _, p := range participants {
		if err := s.gateway.RemoveParticipant(ctx, roomName, p.Identity); err != nil {
			prometheus.GatewayError("remove_participant")
			logger.Errorw("could not remove participant", err,
				"participant", p.Identity, "room", roomName)
			summary.FailedIdentities = append(summary.FailedIdentities, p.Identity)
			continue
		}
		summary.Evicted++
	}

	if err := s.gateway.DeleteRoom(ctx, roomName); err != nil {
		prometheus.GatewayError("delete_room")
		logger.Errorw("could not delete room", err, "room", roomName)
		summary.DeleteErr = err
	}

	prometheus.RoomEnded()
	logger.Infow("meeting ended",
		"room", roomName,
		"evicted", summary.Evicted,
		"failed", len(summary.FailedIdentities))
	return summary, nil
}
