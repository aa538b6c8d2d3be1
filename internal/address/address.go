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

// Package address wraps the backend's saved-address endpoints. Addresses are
// authoritative on the backend; this client only normalizes the envelope and
// validates the minimum fields before a create.
package address

import (
	"context"
	"fmt"

	"github.com/devujjwal/teletrade-hub-frontend-sub000/internal/api"
)

// Address is a saved shipping/billing address. At most one address per user
// carries IsDefault; the backend enforces that when the flag is flipped.
type Address struct {
	ID         int    `json:"id"`
	UserID     int    `json:"user_id"`
	Label      string `json:"label,omitempty"`
	Street     string `json:"street"`
	Street2    string `json:"street2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"is_default"`
	CreatedAt  string `json:"created_at,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

// Input carries the writable address fields for create and update calls.
// State may stay empty for countries without a state tier.
type Input struct {
	Label      string `json:"label,omitempty"`
	Street     string `json:"street"`
	Street2    string `json:"street2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	IsDefault  *bool  `json:"is_default,omitempty"`
}

// ValidationError reports a missing required field, caught before any
// network call.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("address: %s is required", e.Field)
}

// Validate checks the fields a create cannot do without.
func (in *Input) Validate() error {
	switch {
	case in.Street == "":
		return &ValidationError{Field: "street"}
	case in.City == "":
		return &ValidationError{Field: "city"}
	case in.PostalCode == "":
		return &ValidationError{Field: "postal_code"}
	case in.Country == "":
		return &ValidationError{Field: "country"}
	}
	return nil
}

// Client calls the /auth/addresses endpoints.
type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// List fetches the authenticated user's addresses. A response without the
// expected data.addresses field decodes to an empty list, never an error.
func (c *Client) List(ctx context.Context) ([]Address, error) {
	env, err := c.api.Get(ctx, "/auth/addresses")
	if err != nil {
		return nil, err
	}
	var addrs []Address
	if _, err := env.Field("addresses", &addrs); err != nil {
		return nil, err
	}
	return addrs, nil
}

// Create saves a new address and returns it. The first address a user
// creates comes back with IsDefault set by the backend.
func (c *Client) Create(ctx context.Context, in Input) (*Address, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	env, err := c.api.Post(ctx, "/auth/addresses", in)
	if err != nil {
		return nil, err
	}
	var addr Address
	if err := env.MustField("address", &addr); err != nil {
		return nil, err
	}
	return &addr, nil
}

// Update applies a partial update to an address.
func (c *Client) Update(ctx context.Context, id int, in Input) (*Address, error) {
	env, err := c.api.Put(ctx, fmt.Sprintf("/auth/addresses/%d", id), in)
	if err != nil {
		return nil, err
	}
	var addr Address
	if err := env.MustField("address", &addr); err != nil {
		return nil, err
	}
	return &addr, nil
}

// SetDefault flips is_default on one address; the backend clears the flag on
// the previous default.
func (c *Client) SetDefault(ctx context.Context, id int) error {
	isDefault := true
	_, err := c.api.Put(ctx, fmt.Sprintf("/auth/addresses/%d", id), Input{IsDefault: &isDefault})
	return err
}

// Delete removes an address. Errors are surfaced to the caller; there is no
// client-side cascading.
func (c *Client) Delete(ctx context.Context, id int) error {
	_, err := c.api.Delete(ctx, fmt.Sprintf("/auth/addresses/%d", id))
	return err
}
