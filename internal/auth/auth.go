// Copyright 2024 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package auth keeps the bearer token of one session and answers the
// cross-cutting 401 question: which login route to send the user to. Token
// verification stays with the backend; claims are only peeked at,
// unverified, for routing and expiry hints.
package auth

import (
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenStore holds the bearer token for one session. It satisfies the api
// package's Credentials interface; Clear is invoked on any 401.
type TokenStore struct {
	mu    sync.Mutex
	token string
}

func NewTokenStore(token string) *TokenStore {
	return &TokenStore{token: token}
}

func (s *TokenStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *TokenStore) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// Claims is the subset of token claims the storefront reads.
type Claims struct {
	Subject string
	Role    string
	Expiry  time.Time
}

// PeekClaims decodes the token without verifying its signature. The backend
// is the authority; this only informs client-side routing and lets dead
// sessions be dropped before a doomed request.
func PeekClaims(token string) (*Claims, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, false
	}
	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}
	c := &Claims{}
	if sub, err := mc.GetSubject(); err == nil {
		c.Subject = sub
	}
	if role, ok := mc["role"].(string); ok {
		c.Role = role
	}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		c.Expiry = exp.Time
	}
	return c, true
}

// Expired reports whether the token carries an expiry in the past.
func Expired(token string) bool {
	c, ok := PeekClaims(token)
	if !ok || c.Expiry.IsZero() {
		return false
	}
	return c.Expiry.Before(time.Now())
}

// LoginPath picks the login route after a 401, based on the path the user
// was on: admin pages go to the admin login, everything else to the
// storefront login.
func LoginPath(currentPath string) string {
	if strings.HasPrefix(currentPath, "/admin") {
		return "/admin/login"
	}
	return "/login"
}
