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

// Package validator holds the form payloads validated before any network
// call leaves the storefront.
package validator

import (
	"fmt"
	"strings"

	validate "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var v = validate.New()

// AddToCartPayload guards POST /cart.
type AddToCartPayload struct {
	ProductSlug string `validate:"required"`
	Quantity    int    `validate:"required,gte=1"`
}

func (p *AddToCartPayload) Validate() error {
	return v.Struct(p)
}

// UpdateCartPayload guards POST /cart/update. Quantity 0 is allowed and
// removes the line.
type UpdateCartPayload struct {
	ProductID int `validate:"required"`
	Quantity  int `validate:"gte=0"`
}

func (p *UpdateCartPayload) Validate() error {
	return v.Struct(p)
}

// AddressPayload guards address create/update submissions. State stays
// optional: countries without a state tier submit it empty.
type AddressPayload struct {
	Label      string
	Street     string `validate:"required"`
	Street2    string
	City       string `validate:"required"`
	State      string
	PostalCode string `validate:"required"`
	Country    string `validate:"required"`
}

func (p *AddressPayload) Validate() error {
	return v.Struct(p)
}

// CheckoutPayload guards the order submission form.
type CheckoutPayload struct {
	FullName string `validate:"required"`
	Email    string `validate:"required,email"`
	Phone    string
	Notes    string
}

func (p *CheckoutPayload) Validate() error {
	return v.Struct(p)
}

// ValidationErrorResponse flattens validator errors into one user-facing
// error.
func ValidationErrorResponse(err error) error {
	var ve validate.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid email", fe.Field()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
