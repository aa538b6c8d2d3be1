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

package frontend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devujjwal/teletrade-hub-frontend-sub000/internal/api"
	"github.com/devujjwal/teletrade-hub-frontend-sub000/internal/cart"
)

// fakeBackend is the remote store API: product catalog, settings, addresses
// and order creation, all speaking the {success, data} envelope.
type fakeBackend struct {
	addresses    []map[string]interface{}
	orderStatus  int
	unauthorized bool
	placedBody   []byte
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/products/phone-x", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"data":{"product":{
			"id":1,"name":"Phone X","slug":"phone-x","sku":"PX-1","image":"/img/px.jpg",
			"price":100,"stock_quantity":5}}}`)
	})
	mux.HandleFunc("/settings/public", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"success":true,"data":{"settings":{
			"currency":"EUR","free_shipping_threshold":150,"shipping_cost":10,"tax_rate":0.19,
			"bank_name":"Example Bank","iban":"DE89370400440532013000"}}}`)
	})
	mux.HandleFunc("/auth/addresses", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" || f.unauthorized {
			http.Error(w, "missing or rejected token", http.StatusUnauthorized)
			return
		}
		switch r.Method {
		case http.MethodGet:
			b, _ := json.Marshal(map[string]interface{}{
				"success": true,
				"data":    map[string]interface{}{"addresses": f.addresses},
			})
			w.Write(b)
		case http.MethodPost:
			var in map[string]interface{}
			_ = json.NewDecoder(r.Body).Decode(&in)
			in["id"] = len(f.addresses) + 1
			in["is_default"] = len(f.addresses) == 0
			f.addresses = append(f.addresses, in)
			b, _ := json.Marshal(map[string]interface{}{
				"success": true,
				"data":    map[string]interface{}{"address": in},
			})
			w.Write(b)
		}
	})
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		if f.orderStatus != 0 && f.orderStatus != http.StatusOK {
			http.Error(w, "backend down", f.orderStatus)
			return
		}
		f.placedBody, _ = io.ReadAll(r.Body)
		fmt.Fprint(w, `{"success":true,"data":{"order":{"id":1,"order_number":"TT-1001","status":"pending","total":129}}}`)
	})
	return mux
}

func newTestServer(t *testing.T, backend *fakeBackend) (*Server, cart.Store) {
	t.Helper()
	ts := httptest.NewServer(backend.handler())
	t.Cleanup(ts.Close)
	log := logrus.New()
	carts := cart.NewMemoryStore()
	return NewServer(log, api.NewClient(ts.URL, nil, log), carts, ""), carts
}

func doForm(t *testing.T, srv *Server, method, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.AddCookie(&http.Cookie{Name: cookieSessionID, Value: "sess-1"})
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)
	return rr
}

func loggedIn() []*http.Cookie {
	return []*http.Cookie{
		{Name: cookieToken, Value: "opaque-test-token"},
		{Name: cookieUsername, Value: "user1"},
	}
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestAddToCartAndView(t *testing.T) {
	srv, _ := newTestServer(t, &fakeBackend{})

	rr := doForm(t, srv, http.MethodPost, "/cart", url.Values{
		"product_slug": {"phone-x"},
		"quantity":     {"2"},
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, float64(2), decodeBody(t, rr)["item_count"])

	rr = doForm(t, srv, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	sum := body["summary"].(map[string]interface{})
	assert.Equal(t, float64(200), sum["subtotal"])
	assert.Equal(t, float64(0), sum["shipping"], "200 >= 150 ships free")
	assert.Equal(t, float64(238), sum["total"])
	assert.Equal(t, "€238.00", body["total_formatted"])
}

func TestAddToCartRejectsOverStock(t *testing.T) {
	srv, _ := newTestServer(t, &fakeBackend{})
	rr := doForm(t, srv, http.MethodPost, "/cart", url.Values{
		"product_slug": {"phone-x"},
		"quantity":     {"6"}, // stock is 5
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestUpdateCartQuantityZeroRemoves(t *testing.T) {
	srv, _ := newTestServer(t, &fakeBackend{})
	doForm(t, srv, http.MethodPost, "/cart", url.Values{"product_slug": {"phone-x"}, "quantity": {"2"}})

	rr := doForm(t, srv, http.MethodPost, "/cart/update", url.Values{"product_id": {"1"}, "quantity": {"0"}})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, float64(0), decodeBody(t, rr)["item_count"])
}

func TestCheckoutRequiresLogin(t *testing.T) {
	srv, _ := newTestServer(t, &fakeBackend{})
	rr := doForm(t, srv, http.MethodGet, "/checkout", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCheckoutBlockedWithoutAddresses(t *testing.T) {
	srv, _ := newTestServer(t, &fakeBackend{})
	rr := doForm(t, srv, http.MethodGet, "/checkout", nil, loggedIn()...)
	require.Equal(t, http.StatusConflict, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "no_addresses", body["mode"])
	assert.Equal(t, "/addresses", body["redirect"])
}

func TestFullCheckoutFlow(t *testing.T) {
	backend := &fakeBackend{}
	srv, carts := newTestServer(t, backend)

	// cart follows the logged-in username
	rr := doForm(t, srv, http.MethodPost, "/cart", url.Values{
		"product_slug": {"phone-x"}, "quantity": {"1"},
	}, loggedIn()...)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = doForm(t, srv, http.MethodPost, "/addresses", url.Values{
		"street": {"Main St 1"}, "city": {"Doha"}, "postal_code": {"00000"}, "country": {"QA"},
	}, loggedIn()...)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = doForm(t, srv, http.MethodGet, "/checkout", nil, loggedIn()...)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	body := decodeBody(t, rr)
	assert.Equal(t, "has_addresses", body["mode"])
	assert.Equal(t, float64(1), body["shipping_address_id"])
	sum := body["summary"].(map[string]interface{})
	assert.Equal(t, float64(100), sum["subtotal"])
	assert.Equal(t, float64(10), sum["shipping"], "100 < 150 pays shipping")
	assert.Equal(t, float64(129), sum["total"])

	rr = doForm(t, srv, http.MethodPost, "/checkout", url.Values{
		"full_name": {"Ada Lovelace"},
		"email":     {"ada@example.com"},
	}, loggedIn()...)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	body = decodeBody(t, rr)
	assert.Equal(t, "processing", body["status"])
	assert.Equal(t, "TT-1001", body["order_number"])
	assert.Equal(t, "/payment-instructions/TT-1001", body["redirect"])

	// cart cleared after the confirmed placement
	items, err := carts.Load("user1")
	require.NoError(t, err)
	assert.Empty(t, items)

	// billing mirrored the shipping id in the submitted payload
	assert.Contains(t, string(backend.placedBody), `"shipping_address_id":1`)
	assert.Contains(t, string(backend.placedBody), `"billing_address_id":1`)
	assert.Contains(t, string(backend.placedBody), `"first_name":"Ada"`)
	assert.Contains(t, string(backend.placedBody), `"last_name":"Lovelace"`)
}

func TestFailedOrderPreservesCart(t *testing.T) {
	backend := &fakeBackend{orderStatus: http.StatusServiceUnavailable}
	srv, carts := newTestServer(t, backend)

	doForm(t, srv, http.MethodPost, "/cart", url.Values{
		"product_slug": {"phone-x"}, "quantity": {"1"},
	}, loggedIn()...)
	doForm(t, srv, http.MethodPost, "/addresses", url.Values{
		"street": {"Main St 1"}, "city": {"Doha"}, "postal_code": {"00000"}, "country": {"QA"},
	}, loggedIn()...)

	rr := doForm(t, srv, http.MethodPost, "/checkout", url.Values{
		"full_name": {"Ada Lovelace"}, "email": {"ada@example.com"},
	}, loggedIn()...)
	require.Equal(t, http.StatusInternalServerError, rr.Code)

	items, err := carts.Load("user1")
	require.NoError(t, err)
	require.Len(t, items, 1, "a failed submission must not clear the cart")
}

func TestBackendUnauthorizedRedirectsToLogin(t *testing.T) {
	srv, _ := newTestServer(t, &fakeBackend{unauthorized: true})

	// token present client-side but rejected by the backend
	rr := doForm(t, srv, http.MethodGet, "/addresses", nil, loggedIn()...)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "/login", body["redirect"])

	cleared := false
	for _, c := range rr.Result().Cookies() {
		if c.Name == cookieToken && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "auth cookies must be cleared on 401")
}

func TestPaymentInstructions(t *testing.T) {
	srv, _ := newTestServer(t, &fakeBackend{})
	rr := doForm(t, srv, http.MethodGet, "/payment-instructions/TT-1001", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "TT-1001", body["order_number"])
	assert.Equal(t, "DE89370400440532013000", body["iban"])
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t, &fakeBackend{})
	rr := doForm(t, srv, http.MethodGet, "/_healthz", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}
