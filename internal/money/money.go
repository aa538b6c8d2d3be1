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

// Package money formats prices for display. Amounts stay as raw float64
// throughout the computation layers; rounding to two decimals happens here
// and only here.
package money

import "fmt"

var symbols = map[string]string{
	"USD": "$",
	"CAD": "$",
	"JPY": "¥",
	"EUR": "€",
	"TRY": "₺",
	"GBP": "£",
	"AED": "د.إ",
	"SAR": "﷼",
}

// Symbol returns the display symbol for a currency code, defaulting to "$".
func Symbol(currencyCode string) string {
	if s, ok := symbols[currencyCode]; ok {
		return s
	}
	return "$"
}

// Format renders an amount with its currency symbol and two decimals.
func Format(amount float64, currencyCode string) string {
	return fmt.Sprintf("%s%.2f", Symbol(currencyCode), amount)
}
