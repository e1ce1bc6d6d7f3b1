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

// Package gateway talks to the room service of record over its
// Twirp/JSON protocol. Every call is authenticated with a freshly
// minted short-lived service token and attempted exactly once; retry
// policy belongs to callers that want one.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/twitchtv/twirp"

	"github.com/livekit/token-server/pkg/auth"
)

const svcPrefix = "/twirp/livekit.RoomService/"

type Client struct {
	baseURL   string
	apiKey    string
	apiSecret string
	client    *http.Client
}

func NewClient(url, apiKey, apiSecret string) *Client {
	return &Client{
		baseURL:   toHTTPURL(url),
		apiKey:    apiKey,
		apiSecret: apiSecret,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// toHTTPURL accepts a websocket URL and converts it into the API
// endpoint scheme.
func toHTTPURL(url string) string {
	if strings.HasPrefix(url, "ws") {
		return "http" + strings.TrimPrefix(url, "ws")
	}
	return strings.TrimSuffix(url, "/")
}

func (c *Client) ListRooms(ctx context.Context) ([]*Room, error) {
	res := &listRoomsResponse{}
	if err := c.call(ctx, "ListRooms", &listRoomsRequest{}, res); err != nil {
		return nil, err
	}
	return res.Rooms, nil
}

func (c *Client) CreateRoom(ctx context.Context, name string, emptyTimeout, maxParticipants uint32) (*Room, error) {
	room := &Room{}
	req := &createRoomRequest{
		Name:            name,
		EmptyTimeout:    emptyTimeout,
		MaxParticipants: maxParticipants,
	}
	if err := c.call(ctx, "CreateRoom", req, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (c *Client) DeleteRoom(ctx context.Context, name string) error {
	return c.call(ctx, "DeleteRoom", &deleteRoomRequest{Room: name}, &struct{}{})
}

func (c *Client) ListParticipants(ctx context.Context, roomName string) ([]*ParticipantInfo, error) {
	res := &listParticipantsResponse{}
	if err := c.call(ctx, "ListParticipants", &listParticipantsRequest{Room: roomName}, res); err != nil {
		return nil, err
	}
	return res.Participants, nil
}

func (c *Client) RemoveParticipant(ctx context.Context, roomName, identity string) error {
	req := &roomParticipantIdentity{Room: roomName, Identity: identity}
	return c.call(ctx, "RemoveParticipant", req, &struct{}{})
}

func (c *Client) call(ctx context.Context, method string, req, res interface{}) error {
	token, err := auth.ServiceToken(c.apiKey, c.apiSecret)
	if err != nil {
		return errors.Wrap(err, "could not create service token")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return errors.Wrap(err, "could not encode request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+svcPrefix+method, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "could not create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	httpRes, err := c.client.Do(httpReq)
	if err != nil {
		return errors.Wrapf(err, "room service request failed: %s", method)
	}
	defer httpRes.Body.Close()

	if httpRes.StatusCode != http.StatusOK {
		return parseTwirpError(httpRes)
	}
	if err = json.NewDecoder(httpRes.Body).Decode(res); err != nil {
		return errors.Wrapf(err, "could not decode response: %s", method)
	}
	return nil
}

// parseTwirpError maps the Twirp error envelope onto twirp.Error so
// callers can inspect the code. Anything unparseable degrades to an
// internal error carrying the HTTP status.
func parseTwirpError(res *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(res.Body, 4096))
	if err == nil {
		envelope := struct {
			Code string `json:"code"`
			Msg  string `json:"msg"`
		}{}
		if jsonErr := json.Unmarshal(body, &envelope); jsonErr == nil && envelope.Code != "" {
			return twirp.NewError(twirp.ErrorCode(envelope.Code), envelope.Msg)
		}
	}
	return twirp.InternalErrorf("room service returned status %d", res.StatusCode)
}
