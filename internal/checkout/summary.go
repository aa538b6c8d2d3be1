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

package checkout

import (
	"github.com/devujjwal/teletrade-hub-frontend-sub000/internal/cart"
	"github.com/devujjwal/teletrade-hub-frontend-sub000/internal/settings"
)

// Summary is the derived order totals shown at checkout. Recomputed from the
// cart and merchant settings on every request; never stored.
type Summary struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Summarize computes the order summary. Shipping is free once the subtotal
// reaches the merchant's threshold; tax applies to the subtotal only. No
// rounding here; two-decimal rounding belongs to the formatting boundary.
func Summarize(items []cart.Item, s *settings.Public) Summary {
	var subtotal float64
	for _, it := range items {
		subtotal += it.Price * float64(it.Quantity)
	}
	shipping := s.ShippingCost
	if subtotal >= s.FreeShippingThreshold {
		shipping = 0
	}
	tax := subtotal * s.TaxRate
	return Summary{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}
