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

// Package catalog reads products, categories and brands from the backend.
// List endpoints tolerate missing collections and decode to empty slices.
package catalog

import (
	"context"
	"fmt"
	"net/url"

	"github.com/devujjwal/teletrade-hub-frontend-sub000/internal/api"
)

// Product is a catalog entry. StockQuantity is the snapshot the cart copies
// when a product is added.
type Product struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Slug          string  `json:"slug"`
	SKU           string  `json:"sku"`
	Description   string  `json:"description"`
	Image         string  `json:"image"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	CategoryID    int     `json:"category_id"`
	BrandID       int     `json:"brand_id"`
}

// Category is a catalog category.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Brand is a product brand.
type Brand struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ListParams filter the product listing. Zero values are omitted from the
// query string.
type ListParams struct {
	Search   string
	Category string
	Brand    string
	Page     int
}

func (p ListParams) query() string {
	q := url.Values{}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.Brand != "" {
		q.Set("brand", p.Brand)
	}
	if p.Page > 1 {
		q.Set("page", fmt.Sprint(p.Page))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// Client calls the catalog endpoints.
type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

// List fetches products matching the params; a response without the products
// field decodes to an empty list.
func (c *Client) List(ctx context.Context, params ListParams) ([]Product, error) {
	env, err := c.api.Get(ctx, "/products"+params.query())
	if err != nil {
		return nil, err
	}
	var products []Product
	if _, err := env.Field("products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetBySlug fetches one product. A missing product field is a decode error:
// product pages cannot render without it.
func (c *Client) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	env, err := c.api.Get(ctx, "/products/"+url.PathEscape(slug))
	if err != nil {
		return nil, err
	}
	var p Product
	if err := env.MustField("product", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Categories fetches all categories, defaulting to empty.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	env, err := c.api.Get(ctx, "/categories")
	if err != nil {
		return nil, err
	}
	var cats []Category
	if _, err := env.Field("categories", &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// Brands fetches all brands, defaulting to empty.
func (c *Client) Brands(ctx context.Context) ([]Brand, error) {
	env, err := c.api.Get(ctx, "/brands")
	if err != nil {
		return nil, err
	}
	var brands []Brand
	if _, err := env.Field("brands", &brands); err != nil {
		return nil, err
	}
	return brands, nil
}
