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

package gateway

// Room is a room record as reported by the room service. int64 fields
// carry protojson string encoding on the wire.
type Room struct {
	Sid             string `json:"sid,omitempty"`
	Name            string `json:"name,omitempty"`
	EmptyTimeout    uint32 `json:"emptyTimeout,omitempty"`
	MaxParticipants uint32 `json:"maxParticipants,omitempty"`
	CreationTime    int64  `json:"creationTime,omitempty,string"`
	Metadata        string `json:"metadata,omitempty"`
	NumParticipants uint32 `json:"numParticipants,omitempty"`
	NumPublishers   uint32 `json:"numPublishers,omitempty"`
	ActiveRecording bool   `json:"activeRecording,omitempty"`
}

// ParticipantInfo is a participant record as reported by the room
// service.
type ParticipantInfo struct {
	Sid         string `json:"sid,omitempty"`
	Identity    string `json:"identity,omitempty"`
	State       string `json:"state,omitempty"`
	Name        string `json:"name,omitempty"`
	Metadata    string `json:"metadata,omitempty"`
	JoinedAt    int64  `json:"joinedAt,omitempty,string"`
	IsPublisher bool   `json:"isPublisher,omitempty"`
}

type listRoomsRequest struct {
	Names []string `json:"names,omitempty"`
}

type listRoomsResponse struct {
	Rooms []*Room `json:"rooms"`
}

type createRoomRequest struct {
	Name            string `json:"name"`
	EmptyTimeout    uint32 `json:"emptyTimeout,omitempty"`
	MaxParticipants uint32 `json:"maxParticipants,omitempty"`
}

type deleteRoomRequest struct {
	Room string `json:"room"`
}

type listParticipantsRequest struct {
	Room string `json:"room"`
}

type listParticipantsResponse struct {
	Participants []*ParticipantInfo `json:"participants"`
}

type roomParticipantIdentity struct {
	Room     string `json:"room"`
	Identity string `json:"identity"`
}
