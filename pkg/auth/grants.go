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

package auth

// VideoGrant is the set of room and session capabilities carried by an
// access token. The zero value grants nothing. A field left unset must
// not appear in the signed payload at all, which is why the session
// capabilities are pointers: the verifying service distinguishes
// "explicitly false" from "not specified".
type VideoGrant struct {
	// room permissions
	RoomCreate bool   `json:"roomCreate,omitempty"`
	RoomList   bool   `json:"roomList,omitempty"`
	RoomRecord bool   `json:"roomRecord,omitempty"`
	RoomAdmin  bool   `json:"roomAdmin,omitempty"`
	RoomJoin   bool   `json:"roomJoin,omitempty"`
	Room       string `json:"room,omitempty"`

	// participant permissions within the room
	CanPublish           *bool    `json:"canPublish,omitempty"`
	CanSubscribe         *bool    `json:"canSubscribe,omitempty"`
	CanPublishData       *bool    `json:"canPublishData,omitempty"`
	CanPublishSources    []string `json:"canPublishSources,omitempty"`
	CanUpdateOwnMetadata *bool    `json:"canUpdateOwnMetadata,omitempty"`

	// service permissions
	IngressAdmin bool `json:"ingressAdmin,omitempty"`
	Hidden       bool `json:"hidden,omitempty"`
	Recorder     bool `json:"recorder,omitempty"`
	Agent        bool `json:"agent,omitempty"`
}

// ClaimGrants is the application claim set embedded alongside the
// registered JWT claims.
type ClaimGrants struct {
	Identity string      `json:"-"`
	Name     string      `json:"name,omitempty"`
	Video    *VideoGrant `json:"video,omitempty"`
	Metadata string      `json:"metadata,omitempty"`
}

func (g *VideoGrant) SetCanPublish(val bool) {
	g.CanPublish = &val
}

func (g *VideoGrant) SetCanSubscribe(val bool) {
	g.CanSubscribe = &val
}

func (g *VideoGrant) SetCanPublishData(val bool) {
	g.CanPublishData = &val
}

func (g *VideoGrant) SetCanUpdateOwnMetadata(val bool) {
	g.CanUpdateOwnMetadata = &val
}

func (g *VideoGrant) GetCanPublish() bool {
	return g.CanPublish != nil && *g.CanPublish
}

func (g *VideoGrant) GetCanSubscribe() bool {
	return g.CanSubscribe != nil && *g.CanSubscribe
}
