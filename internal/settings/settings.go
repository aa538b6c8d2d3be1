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

// Package settings fetches the merchant's public settings: site contact
// details, the bank-transfer fields shown on the payment-instructions page,
// and the checkout parameters feeding the order summary.
package settings

import (
	"context"

	"github.com/devujjwal/teletrade-hub-frontend-sub000/internal/api"
)

// Public mirrors GET /settings/public.
type Public struct {
	SiteName           string `json:"site_name"`
	SiteEmail          string `json:"site_email"`
	ContactNumber      string `json:"contact_number"`
	WhatsappNumber     string `json:"whatsapp_number"`
	BankName           string `json:"bank_name"`
	AccountHolder      string `json:"account_holder"`
	IBAN               string `json:"iban"`
	BIC                string `json:"bic"`
	BankAdditionalInfo string `json:"bank_additional_info"`

	Currency              string  `json:"currency"`
	FreeShippingThreshold float64 `json:"free_shipping_threshold"`
	ShippingCost          float64 `json:"shipping_cost"`
	TaxRate               float64 `json:"tax_rate"`
}

// Client calls the public settings endpoint.
type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// Fetch returns the public settings. A response missing the settings field
// yields zero values rather than an error, so checkout can still render with
// neutral totals.
func (c *Client) Fetch(ctx context.Context) (*Public, error) {
	env, err := c.api.Get(ctx, "/settings/public")
	if err != nil {
		return nil, err
	}
	var pub Public
	if _, err := env.Field("settings", &pub); err != nil {
		return nil, err
	}
	return &pub, nil
}
