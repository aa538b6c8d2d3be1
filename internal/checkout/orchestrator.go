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

// Package checkout binds the cart, the customer identity and the address
// selection into a validated order payload, and derives the order summary
// shown alongside it.
package checkout

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/devujjwal/teletrade-hub-frontend-sub000/internal/address"
	"github.com/devujjwal/teletrade-hub-frontend-sub000/internal/cart"
	"github.com/devujjwal/teletrade-hub-frontend-sub000/internal/location"
	"github.com/devujjwal/teletrade-hub-frontend-sub000/internal/order"
)

// Mode is the address-selection state of a checkout session.
type Mode int

const (
	// ModeNoAddresses: the user has no saved addresses; checkout cannot
	// proceed until one is created.
	ModeNoAddresses Mode = iota
	// ModeHasAddresses: saved addresses exist and one is selected.
	ModeHasAddresses
	// ModeAddingNew: the inline new-address dialog is open.
	ModeAddingNew
)

func (m Mode) String() string {
	switch m {
	case ModeNoAddresses:
		return "no_addresses"
	case ModeHasAddresses:
		return "has_addresses"
	case ModeAddingNew:
		return "adding_new"
	}
	return "unknown"
}

// ErrNoShippingAddress is returned when a payload is built with neither a
// selected saved address nor inline shipping fields.
var ErrNoShippingAddress = errors.New("checkout: no shipping address selected or provided")

// ErrNoBillingAddress is the billing-side counterpart, reachable only when
// same-as-shipping is off.
var ErrNoBillingAddress = errors.New("checkout: no billing address selected or provided")

// ErrUnknownAddress is returned when a selection names an id that is not in
// the fetched list.
var ErrUnknownAddress = errors.New("checkout: unknown address id")

// FormData is the ephemeral customer input of one checkout submission.
// Inline addresses are only consulted when no saved address is selected for
// the corresponding side.
type FormData struct {
	FullName string
	Email    string
	Phone    string
	Notes    string

	ShippingInline *order.InlineAddress
	BillingInline  *order.InlineAddress
}

// Orchestrator drives one checkout session's address selection and payload
// assembly. It is not safe for concurrent use; one instance serves one
// request flow.
type Orchestrator struct {
	addresses *address.Client
	log       logrus.FieldLogger

	mode           Mode
	list           []address.Address
	shippingID     int
	billingID      int
	sameAsShipping bool
	selection      location.Selection
}

func NewOrchestrator(addrClient *address.Client, log logrus.FieldLogger) *Orchestrator {
	return &Orchestrator{
		addresses:      addrClient,
		log:            log,
		sameAsShipping: true,
	}
}

// Begin fetches the saved addresses and settles the initial mode: no
// addresses blocks checkout; otherwise the default (or first) address is
// auto-selected for shipping and mirrored to billing.
func (o *Orchestrator) Begin(ctx context.Context) error {
	list, err := o.addresses.List(ctx)
	if err != nil {
		return errors.Wrap(err, "fetching addresses")
	}
	o.setList(list)
	return nil
}

func (o *Orchestrator) setList(list []address.Address) {
	o.list = list
	if len(list) == 0 {
		o.mode = ModeNoAddresses
		o.shippingID = 0
		o.billingID = 0
		return
	}
	o.mode = ModeHasAddresses
	if o.shippingID != 0 && o.find(o.shippingID) != nil {
		return
	}
	selected := list[0].ID
	for _, a := range list {
		if a.IsDefault {
			selected = a.ID
			break
		}
	}
	o.shippingID = selected
}

func (o *Orchestrator) find(id int) *address.Address {
	for i := range o.list {
		if o.list[i].ID == id {
			return &o.list[i]
		}
	}
	return nil
}

// Mode returns the current address-selection state.
func (o *Orchestrator) Mode() Mode { return o.mode }

// Addresses returns the fetched saved addresses.
func (o *Orchestrator) Addresses() []address.Address { return o.list }

// ShippingAddressID returns the selected shipping address id, 0 when none.
func (o *Orchestrator) ShippingAddressID() int { return o.shippingID }

// SameAsShipping reports whether billing mirrors the shipping side.
func (o *Orchestrator) SameAsShipping() bool { return o.sameAsShipping }

// SelectShipping picks a saved address for shipping.
func (o *Orchestrator) SelectShipping(id int) error {
	if o.find(id) == nil {
		return ErrUnknownAddress
	}
	o.shippingID = id
	return nil
}

// ClearShippingSelection drops the saved-address selection so inline
// shipping fields take precedence in BuildPayload.
func (o *Orchestrator) ClearShippingSelection() {
	o.shippingID = 0
}

// SetSameAsShipping toggles the billing mirror. Turning it back on discards
// any separate billing selection.
func (o *Orchestrator) SetSameAsShipping(same bool) {
	o.sameAsShipping = same
	if same {
		o.billingID = 0
	}
}

// SelectBilling picks a saved address for billing and turns the mirror off.
func (o *Orchestrator) SelectBilling(id int) error {
	if o.find(id) == nil {
		return ErrUnknownAddress
	}
	o.sameAsShipping = false
	o.billingID = id
	return nil
}

// StartNewAddress opens the inline address dialog and hands back the
// cascading location selection backing its dropdowns.
func (o *Orchestrator) StartNewAddress() *location.Selection {
	o.mode = ModeAddingNew
	o.selection = location.Selection{}
	return &o.selection
}

// CancelNewAddress closes the dialog without saving.
func (o *Orchestrator) CancelNewAddress() {
	o.setList(o.list)
}

// SaveNewAddress creates the address, then refreshes the list before any
// selection state is recomputed; the refresh strictly follows the mutation.
// The created address becomes the shipping selection.
func (o *Orchestrator) SaveNewAddress(ctx context.Context, in address.Input) (*address.Address, error) {
	created, err := o.addresses.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	list, err := o.addresses.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "refreshing addresses after create")
	}
	o.setList(list)
	if o.find(created.ID) != nil {
		o.shippingID = created.ID
	}
	o.log.WithField("address_id", created.ID).Debug("address created and selected")
	return created, nil
}

// DeleteAddress removes a saved address and refreshes the list sequentially;
// a deleted shipping selection falls back to the default-or-first rule.
func (o *Orchestrator) DeleteAddress(ctx context.Context, id int) error {
	if err := o.addresses.Delete(ctx, id); err != nil {
		return err
	}
	list, err := o.addresses.List(ctx)
	if err != nil {
		return errors.Wrap(err, "refreshing addresses after delete")
	}
	if o.shippingID == id {
		o.shippingID = 0
	}
	if o.billingID == id {
		o.billingID = 0
		o.sameAsShipping = true
	}
	o.setList(list)
	return nil
}

// SetDefaultAddress flips the default flag and refreshes sequentially.
func (o *Orchestrator) SetDefaultAddress(ctx context.Context, id int) error {
	if err := o.addresses.SetDefault(ctx, id); err != nil {
		return err
	}
	list, err := o.addresses.List(ctx)
	if err != nil {
		return errors.Wrap(err, "refreshing addresses after update")
	}
	o.setList(list)
	return nil
}

// SplitName splits a full name on the first space. A single word is
// duplicated into both fields; the backend requires both and this mirrors
// what the storefront has always sent.
func SplitName(full string) (first, last string) {
	full = strings.TrimSpace(full)
	if i := strings.IndexByte(full, ' '); i >= 0 {
		return full[:i], strings.TrimSpace(full[i+1:])
	}
	return full, full
}

// BuildPayload assembles the order-creation request. Each side prefers a
// selected saved-address id over inline fields; billing copies the resolved
// shipping side while same-as-shipping is on.
func (o *Orchestrator) BuildPayload(form FormData, items []cart.Item, sum Summary) (*order.Payload, error) {
	first, last := SplitName(form.FullName)
	p := &order.Payload{
		FirstName: first,
		LastName:  last,
		Email:     form.Email,
		Phone:     form.Phone,
		Notes:     form.Notes,
		Subtotal:  sum.Subtotal,
		Shipping:  sum.Shipping,
		Tax:       sum.Tax,
		Total:     sum.Total,
	}

	switch {
	case o.shippingID != 0:
		id := o.shippingID
		p.ShippingAddressID = &id
	case form.ShippingInline != nil:
		inline := *form.ShippingInline
		p.ShippingAddress = &inline
	default:
		return nil, ErrNoShippingAddress
	}

	switch {
	case o.sameAsShipping:
		if p.ShippingAddressID != nil {
			id := *p.ShippingAddressID
			p.BillingAddressID = &id
		} else {
			inline := *p.ShippingAddress
			p.BillingAddress = &inline
		}
	case o.billingID != 0:
		id := o.billingID
		p.BillingAddressID = &id
	case form.BillingInline != nil:
		inline := *form.BillingInline
		p.BillingAddress = &inline
	default:
		return nil, ErrNoBillingAddress
	}

	p.Items = make([]order.Item, len(items))
	for i, it := range items {
		p.Items[i] = order.Item{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		}
	}
	return p, nil
}
