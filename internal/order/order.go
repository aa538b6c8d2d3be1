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

// Package order assembles and submits orders. Submission is a single
// attempt: on failure the cart is left untouched and the user resubmits.
package order

import (
	"context"
	"fmt"

	"github.com/devujjwal/teletrade-hub-frontend-sub000/internal/api"
)

// InlineAddress is an address submitted directly in the order payload rather
// than referenced by saved-address id.
type InlineAddress struct {
	Street     string `json:"street"`
	Street2    string `json:"street2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Item is one order line.
type Item struct {
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Payload is the full order-creation request. Exactly one of
// ShippingAddressID / ShippingAddress is set, and likewise for billing; when
// the customer keeps billing same as shipping, the billing side is a copy of
// the resolved shipping side.
type Payload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`

	ShippingAddressID *int           `json:"shipping_address_id,omitempty"`
	ShippingAddress   *InlineAddress `json:"shipping_address,omitempty"`
	BillingAddressID  *int           `json:"billing_address_id,omitempty"`
	BillingAddress    *InlineAddress `json:"billing_address,omitempty"`

	Items []Item `json:"items"`

	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`

	Notes string `json:"notes,omitempty"`
}

// Placed is what the storefront needs back from a successful submission: the
// order number keying the payment-instructions view.
type Placed struct {
	ID          int     `json:"id"`
	OrderNumber string  `json:"order_number"`
	Status      string  `json:"status"`
	Total       float64 `json:"total"`
}

// Client submits orders and reads them back.
type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// Place posts the payload to the orders endpoint. The response must carry
// the created order; without an order number the redirect target cannot be
// built, so a missing field surfaces as a decode error.
func (c *Client) Place(ctx context.Context, payload *Payload) (*Placed, error) {
	env, err := c.api.Post(ctx, "/orders", payload)
	if err != nil {
		return nil, err
	}
	var placed Placed
	if err := env.MustField("order", &placed); err != nil {
		return nil, err
	}
	if placed.OrderNumber == "" {
		return nil, &api.DecodeError{Field: "order.order_number"}
	}
	return &placed, nil
}

// Get fetches one order by id.
func (c *Client) Get(ctx context.Context, id int) (*Placed, error) {
	env, err := c.api.Get(ctx, fmt.Sprintf("/orders/%d", id))
	if err != nil {
		return nil, err
	}
	var placed Placed
	if err := env.MustField("order", &placed); err != nil {
		return nil, err
	}
	return &placed, nil
}
