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
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devujjwal/teletrade-hub-frontend-sub000/internal/address"
	"github.com/devujjwal/teletrade-hub-frontend-sub000/internal/api"
	"github.com/devujjwal/teletrade-hub-frontend-sub000/internal/cart"
	"github.com/devujjwal/teletrade-hub-frontend-sub000/internal/order"
)

// fakeBackend serves /auth/addresses with the {success, data} envelope over
// an in-memory list.
type fakeBackend struct {
	list   []address.Address
	nextID int
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/addresses", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeEnvelope(w, map[string]interface{}{"addresses": f.list})
		case http.MethodPost:
			var in address.Input
			_ = json.NewDecoder(r.Body).Decode(&in)
			f.nextID++
			a := address.Address{
				ID:         f.nextID,
				Street:     in.Street,
				Street2:    in.Street2,
				City:       in.City,
				State:      in.State,
				PostalCode: in.PostalCode,
				Country:    in.Country,
				IsDefault:  len(f.list) == 0, // first address becomes default
			}
			f.list = append(f.list, a)
			writeEnvelope(w, map[string]interface{}{"address": a})
		}
	})
	mux.HandleFunc("/auth/addresses/", func(w http.ResponseWriter, r *http.Request) {
		id, _ := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/auth/addresses/"))
		switch r.Method {
		case http.MethodDelete:
			for i := range f.list {
				if f.list[i].ID == id {
					f.list = append(f.list[:i], f.list[i+1:]...)
					break
				}
			}
			writeEnvelope(w, map[string]interface{}{"deleted": id})
		case http.MethodPut:
			var in address.Input
			_ = json.NewDecoder(r.Body).Decode(&in)
			for i := range f.list {
				if in.IsDefault != nil {
					f.list[i].IsDefault = f.list[i].ID == id && *in.IsDefault
				}
			}
			for i := range f.list {
				if f.list[i].ID == id {
					writeEnvelope(w, map[string]interface{}{"address": f.list[i]})
					return
				}
			}
			http.Error(w, "not found", http.StatusNotFound)
		}
	})
	return mux
}

func writeEnvelope(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": data})
}

func newTestOrchestrator(t *testing.T, backend *fakeBackend) *Orchestrator {
	t.Helper()
	ts := httptest.NewServer(backend.handler())
	t.Cleanup(ts.Close)
	apiClient := api.NewClient(ts.URL, nil, logrus.New())
	return NewOrchestrator(address.NewClient(apiClient), logrus.New())
}

func TestBeginWithNoAddresses(t *testing.T) {
	o := newTestOrchestrator(t, &fakeBackend{})
	require.NoError(t, o.Begin(context.Background()))
	assert.Equal(t, ModeNoAddresses, o.Mode())
	assert.Zero(t, o.ShippingAddressID())
}

func TestBeginAutoSelectsDefaultAddress(t *testing.T) {
	backend := &fakeBackend{
		nextID: 2,
		list: []address.Address{
			{ID: 1, Street: "First St", City: "Dubai", Country: "AE", PostalCode: "0000"},
			{ID: 2, Street: "Default Ave", City: "Dubai", Country: "AE", PostalCode: "0000", IsDefault: true},
		},
	}
	o := newTestOrchestrator(t, backend)
	require.NoError(t, o.Begin(context.Background()))
	assert.Equal(t, ModeHasAddresses, o.Mode())
	assert.Equal(t, 2, o.ShippingAddressID(), "default address wins over first")
	assert.True(t, o.SameAsShipping())
}

func TestBeginFallsBackToFirstAddress(t *testing.T) {
	backend := &fakeBackend{
		nextID: 1,
		list: []address.Address{
			{ID: 1, Street: "Only St", City: "Doha", Country: "QA", PostalCode: "0000"},
		},
	}
	o := newTestOrchestrator(t, backend)
	require.NoError(t, o.Begin(context.Background()))
	assert.Equal(t, 1, o.ShippingAddressID())
}

func TestSaveNewAddressRefreshesAndSelects(t *testing.T) {
	o := newTestOrchestrator(t, &fakeBackend{})
	require.NoError(t, o.Begin(context.Background()))
	require.Equal(t, ModeNoAddresses, o.Mode())

	sel := o.StartNewAddress()
	require.Equal(t, ModeAddingNew, o.Mode())
	sel.SetCountry("AE")
	sel.SetCity("Dubai")

	created, err := o.SaveNewAddress(context.Background(), address.Input{
		Street:     "Sheikh Zayed Rd 1",
		City:       sel.City(),
		State:      sel.StateCode(),
		PostalCode: "00000",
		Country:    sel.CountryCode(),
	})
	require.NoError(t, err)
	assert.True(t, created.IsDefault, "first created address is the default")
	assert.Equal(t, ModeHasAddresses, o.Mode())
	assert.Equal(t, created.ID, o.ShippingAddressID())
	assert.Len(t, o.Addresses(), 1)
}

func TestSaveNewAddressRejectsMissingFields(t *testing.T) {
	o := newTestOrchestrator(t, &fakeBackend{})
	_, err := o.SaveNewAddress(context.Background(), address.Input{City: "Dubai"})
	var ve *address.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "street", ve.Field)
}

func TestDeleteSelectedAddressFallsBack(t *testing.T) {
	backend := &fakeBackend{
		nextID: 2,
		list: []address.Address{
			{ID: 1, Street: "First St", City: "Doha", Country: "QA", PostalCode: "0000", IsDefault: true},
			{ID: 2, Street: "Second St", City: "Doha", Country: "QA", PostalCode: "0000"},
		},
	}
	o := newTestOrchestrator(t, backend)
	require.NoError(t, o.Begin(context.Background()))
	require.Equal(t, 1, o.ShippingAddressID())

	require.NoError(t, o.DeleteAddress(context.Background(), 1))
	assert.Equal(t, 2, o.ShippingAddressID())

	require.NoError(t, o.DeleteAddress(context.Background(), 2))
	assert.Equal(t, ModeNoAddresses, o.Mode())
}

func TestSetDefaultAddressRefreshes(t *testing.T) {
	backend := &fakeBackend{
		nextID: 2,
		list: []address.Address{
			{ID: 1, Street: "First St", City: "Doha", Country: "QA", PostalCode: "0000", IsDefault: true},
			{ID: 2, Street: "Second St", City: "Doha", Country: "QA", PostalCode: "0000"},
		},
	}
	o := newTestOrchestrator(t, backend)
	require.NoError(t, o.Begin(context.Background()))

	require.NoError(t, o.SetDefaultAddress(context.Background(), 2))
	var defaults int
	for _, a := range o.Addresses() {
		if a.IsDefault {
			defaults++
			assert.Equal(t, 2, a.ID)
		}
	}
	assert.Equal(t, 1, defaults, "at most one default address")
}

func TestBuildPayloadSavedAddressSameAsShipping(t *testing.T) {
	backend := &fakeBackend{
		nextID: 1,
		list: []address.Address{
			{ID: 1, Street: "Only St", City: "Doha", Country: "QA", PostalCode: "0000", IsDefault: true},
		},
	}
	o := newTestOrchestrator(t, backend)
	require.NoError(t, o.Begin(context.Background()))

	items := []cart.Item{{ProductID: 5, Price: 100, Quantity: 2}}
	p, err := o.BuildPayload(FormData{FullName: "Ada Lovelace", Email: "ada@example.com"}, items, Summary{Subtotal: 200, Tax: 38, Total: 238})
	require.NoError(t, err)

	require.NotNil(t, p.ShippingAddressID)
	require.NotNil(t, p.BillingAddressID)
	assert.Equal(t, *p.ShippingAddressID, *p.BillingAddressID)
	assert.Nil(t, p.ShippingAddress)
	assert.Nil(t, p.BillingAddress)
	assert.Equal(t, "Ada", p.FirstName)
	assert.Equal(t, "Lovelace", p.LastName)
	require.Len(t, p.Items, 1)
	assert.Equal(t, order.Item{ProductID: 5, Quantity: 2, Price: 100}, p.Items[0])
}

func TestBuildPayloadInlineBillingMirrorsShippingExactly(t *testing.T) {
	o := newTestOrchestrator(t, &fakeBackend{})
	require.NoError(t, o.Begin(context.Background()))

	inline := &order.InlineAddress{
		Street:     "Hauptstraße 5",
		City:       "Munich",
		State:      "BY",
		PostalCode: "80331",
		Country:    "DE",
	}
	p, err := o.BuildPayload(FormData{FullName: "Madonna", Email: "m@example.com", ShippingInline: inline}, nil, Summary{})
	require.NoError(t, err)

	require.NotNil(t, p.ShippingAddress)
	require.NotNil(t, p.BillingAddress)

	shipping, err := json.Marshal(p.ShippingAddress)
	require.NoError(t, err)
	billing, err := json.Marshal(p.BillingAddress)
	require.NoError(t, err)
	assert.Equal(t, shipping, billing, "billing payload must equal shipping byte-for-byte")

	// single-word name is duplicated into both fields
	assert.Equal(t, "Madonna", p.FirstName)
	assert.Equal(t, "Madonna", p.LastName)
}

func TestBuildPayloadDistinctBillingAddress(t *testing.T) {
	backend := &fakeBackend{
		nextID: 2,
		list: []address.Address{
			{ID: 1, Street: "Ship St", City: "Doha", Country: "QA", PostalCode: "0000", IsDefault: true},
			{ID: 2, Street: "Bill St", City: "Doha", Country: "QA", PostalCode: "0000"},
		},
	}
	o := newTestOrchestrator(t, backend)
	require.NoError(t, o.Begin(context.Background()))
	require.NoError(t, o.SelectBilling(2))

	p, err := o.BuildPayload(FormData{FullName: "Ada Lovelace", Email: "ada@example.com"}, nil, Summary{})
	require.NoError(t, err)
	assert.Equal(t, 1, *p.ShippingAddressID)
	assert.Equal(t, 2, *p.BillingAddressID)
}

func TestBuildPayloadWithoutAnyAddress(t *testing.T) {
	o := newTestOrchestrator(t, &fakeBackend{})
	require.NoError(t, o.Begin(context.Background()))

	_, err := o.BuildPayload(FormData{FullName: "Ada Lovelace", Email: "a@example.com"}, nil, Summary{})
	assert.ErrorIs(t, err, ErrNoShippingAddress)
}

func TestBuildPayloadMissingBilling(t *testing.T) {
	o := newTestOrchestrator(t, &fakeBackend{})
	require.NoError(t, o.Begin(context.Background()))
	o.SetSameAsShipping(false)

	inline := &order.InlineAddress{Street: "Somewhere 1", City: "Doha", PostalCode: "0", Country: "QA"}
	_, err := o.BuildPayload(FormData{FullName: "Ada Lovelace", Email: "a@example.com", ShippingInline: inline}, nil, Summary{})
	assert.ErrorIs(t, err, ErrNoBillingAddress)
}

func TestSelectUnknownAddress(t *testing.T) {
	o := newTestOrchestrator(t, &fakeBackend{})
	require.NoError(t, o.Begin(context.Background()))
	assert.ErrorIs(t, o.SelectShipping(42), ErrUnknownAddress)
	assert.ErrorIs(t, o.SelectBilling(42), ErrUnknownAddress)
}

func TestModeString(t *testing.T) {
	for mode, want := range map[Mode]string{
		ModeNoAddresses:  "no_addresses",
		ModeHasAddresses: "has_addresses",
		ModeAddingNew:    "adding_new",
		Mode(99):         "unknown",
	} {
		if got := mode.String(); got != want {
			t.Errorf("Mode(%d).String() = %q, want %q", mode, got, want)
		}
	}
}
