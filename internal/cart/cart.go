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

// Package cart holds the session-scoped shopping cart. Mutations are
// synchronous state transitions that cannot fail; every mutation is written
// through the Store so the cart survives across sessions.
package cart

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Item is one line of the cart: a product snapshot plus quantity.
// StockQuantity is the stock level observed when the item was added; it caps
// quantities client-side but is not authoritative.
type Item struct {
	ProductID     int     `json:"product_id"`
	ProductName   string  `json:"product_name"`
	ProductImage  string  `json:"product_image"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	SKU           string  `json:"sku"`
	Slug          string  `json:"slug"`
	StockQuantity int     `json:"stock_quantity"`
}

// Container owns the cart of one session.
type Container struct {
	mu        sync.Mutex
	sessionID string
	items     []Item
	store     Store
	log       logrus.FieldLogger
}

// NewContainer loads the persisted cart for sessionID. A missing or
// unreadable persisted cart starts empty.
func NewContainer(sessionID string, store Store, log logrus.FieldLogger) *Container {
	c := &Container{sessionID: sessionID, store: store, log: log}
	items, err := store.Load(sessionID)
	if err != nil {
		log.WithField("session", sessionID).WithField("error", err).
			Warn("could not load persisted cart, starting empty")
		return c
	}
	c.items = items
	return c
}

// AddItem appends the item, or merges quantities when a line with the same
// product id already exists.
func (c *Container) AddItem(item Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ProductID == item.ProductID {
			c.items[i].Quantity += item.Quantity
			c.persist()
			return
		}
	}
	c.items = append(c.items, item)
	c.persist()
}

// UpdateQuantity sets the quantity of a line. A quantity of zero or less
// removes the line; this is the only deletion path besides RemoveItem.
func (c *Container) UpdateQuantity(productID, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			c.items = append(c.items[:i], c.items[i+1:]...)
		} else {
			c.items[i].Quantity = quantity
		}
		c.persist()
		return
	}
}

// RemoveItem deletes a line outright.
func (c *Container) RemoveItem(productID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.persist()
			return
		}
	}
}

// Items returns a copy of the current lines.
func (c *Container) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Total returns Σ price × quantity. No rounding is applied here; formatting
// happens at the display boundary.
func (c *Container) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float64
	for _, it := range c.items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// ItemCount returns Σ quantity over all lines.
func (c *Container) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, it := range c.items {
		count += it.Quantity
	}
	return count
}

// Clear empties the cart. Called after a confirmed order placement.
func (c *Container) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.persist()
}

// persist writes the current lines through the store. Persistence failures
// are logged, not returned: cart mutations are infallible from the caller's
// point of view.
func (c *Container) persist() {
	if err := c.store.Save(c.sessionID, c.items); err != nil {
		c.log.WithField("session", c.sessionID).WithField("error", err).
			Warn("failed to persist cart")
	}
}
