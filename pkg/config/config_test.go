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

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		conf, err := NewConfig(`development: true`, nil)
		require.NoError(t, err)
		require.Equal(t, "localhost", conf.Host)
		require.EqualValues(t, 8081, conf.Port)
		require.Equal(t, "http://localhost:7880", conf.Gateway.URL)
		require.Equal(t, "ws://localhost:7880", conf.Gateway.WSURL)
		require.Equal(t, "default-room", conf.Room.DefaultName)
		require.EqualValues(t, 300, conf.Room.EmptyTimeout)
		require.EqualValues(t, 50, conf.Room.MaxParticipants)
		require.True(t, conf.UsingDevKeys())
	})

	t.Run("yaml overrides defaults", func(t *testing.T) {
		conf, err := NewConfig(`
port: 9000
gateway:
  url: https://rooms.example.com
  ws_url: wss://rooms.example.com
  api_key: key1
  api_secret: secret1
room:
  default_name: lobby
`, nil)
		require.NoError(t, err)
		require.EqualValues(t, 9000, conf.Port)
		require.Equal(t, "https://rooms.example.com", conf.Gateway.URL)
		require.Equal(t, "lobby", conf.Room.DefaultName)
		require.False(t, conf.UsingDevKeys())
	})

	t.Run("unknown keys rejected", func(t *testing.T) {
		_, err := NewConfig(`unknown_field: true`, nil)
		require.Error(t, err)
	})

	t.Run("missing keys outside development", func(t *testing.T) {
		_, err := NewConfig(``, nil)
		require.ErrorIs(t, err, ErrKeysMissing)
	})
}
