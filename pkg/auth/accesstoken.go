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

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const (
	defaultValidDuration = 6 * time.Hour

	// identity used on service-to-service tokens, never handed to end users
	serviceIdentity      = "admin-service"
	serviceValidDuration = 5 * time.Minute
)

var (
	ErrSecretMissing    = errors.New("api secret is required to sign a token")
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrUnexpectedSigner = errors.New("token signed with an unexpected algorithm")
)

// AccessToken describes a capability token to be signed. It is a plain
// value constructed in one step; ToJWT is the only way to turn it into
// a signed artifact, so a half-configured token can never escape.
type AccessToken struct {
	APIKey    string
	APISecret string
	Identity  string
	Name      string
	Metadata  string
	Grant     *VideoGrant
	ValidFor  time.Duration
}

// claims wires ClaimGrants into the registered claim set. IssuedAt is
// left nil on purpose: peer SDKs emit only nbf/exp/iss/sub and verifiers
// compare tokens byte-for-byte in tests, so an iat claim must not be
// added here.
type claims struct {
	jwt.RegisteredClaims
	Name     string      `json:"name,omitempty"`
	Video    *VideoGrant `json:"video,omitempty"`
	Metadata string      `json:"metadata,omitempty"`
}

// ToJWT signs the token with HMAC-SHA256 using APISecret as the raw key.
// The not-before claim equals the signing instant; expiry is not-before
// plus ValidFor (six hours when unset).
func (t AccessToken) ToJWT() (string, error) {
	if t.APISecret == "" {
		return "", ErrSecretMissing
	}

	validFor := defaultValidDuration
	if t.ValidFor > 0 {
		validFor = t.ValidFor
	}

	now := time.Now()
	cl := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.APIKey,
			Subject:   t.Identity,
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validFor)),
		},
		Name:     t.Name,
		Video:    t.Grant,
		Metadata: t.Metadata,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString([]byte(t.APISecret))
	if err != nil {
		return "", errors.Wrap(err, "could not sign access token")
	}
	return token, nil
}

// ServiceToken builds a short-lived token carrying full administrative
// grants, used to authenticate calls to the room service. It is never
// returned to end users.
func ServiceToken(apiKey, apiSecret string) (string, error) {
	grant := &VideoGrant{
		RoomCreate: true,
		RoomList:   true,
		RoomRecord: true,
		RoomAdmin:  true,
		RoomJoin:   true,
	}
	grant.SetCanPublish(true)
	grant.SetCanSubscribe(true)
	grant.SetCanPublishData(true)

	return AccessToken{
		APIKey:    apiKey,
		APISecret: apiSecret,
		Identity:  serviceIdentity,
		Grant:     grant,
		ValidFor:  serviceValidDuration,
	}.ToJWT()
}

// ParseToken verifies signature and validity window and returns the
// decoded grants.
func ParseToken(token, apiSecret string) (*ClaimGrants, error) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrUnexpectedSigner
		}
		return []byte(apiSecret), nil
	})
	if err != nil {
		return nil, errors.Wrap(ErrInvalidToken, err.Error())
	}

	cl, ok := parsed.Claims.(*claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return &ClaimGrants{
		Identity: cl.Subject,
		Name:     cl.Name,
		Video:    cl.Video,
		Metadata: cl.Metadata,
	}, nil
}
