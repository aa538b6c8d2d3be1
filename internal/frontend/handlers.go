// Copyright 2018 Google LLC
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
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/devujjwal/teletrade-hub-frontend-sub000/internal/address"
	"github.com/devujjwal/teletrade-hub-frontend-sub000/internal/cart"
	"github.com/devujjwal/teletrade-hub-frontend-sub000/internal/catalog"
	"github.com/devujjwal/teletrade-hub-frontend-sub000/internal/checkout"
	"github.com/devujjwal/teletrade-hub-frontend-sub000/internal/location"
	"github.com/devujjwal/teletrade-hub-frontend-sub000/internal/money"
	"github.com/devujjwal/teletrade-hub-frontend-sub000/internal/order"
	"github.com/devujjwal/teletrade-hub-frontend-sub000/internal/settings"
	"github.com/devujjwal/teletrade-hub-frontend-sub000/internal/validator"
)

func (s *Server) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	log := logFrom(r)
	params := catalog.ListParams{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
		Brand:    r.URL.Query().Get("brand"),
	}
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		params.Page = page
	}
	products, err := catalog.NewClient(s.backendFor(r)).List(r.Context(), params)
	if err != nil {
		renderError(log, r, w, errors.Wrap(err, "could not retrieve products"), http.StatusInternalServerError)
		return
	}
	writeJSON(log, w, http.StatusOK, map[string]interface{}{"products": products})
}

func (s *Server) productHandler(w http.ResponseWriter, r *http.Request) {
	log := logFrom(r)
	slug := mux.Vars(r)["slug"]
	p, err := catalog.NewClient(s.backendFor(r)).GetBySlug(r.Context(), slug)
	if err != nil {
		renderError(log, r, w, errors.Wrap(err, "could not retrieve product"), http.StatusInternalServerError)
		return
	}
	writeJSON(log, w, http.StatusOK, map[string]interface{}{"product": p})
}

func (s *Server) categoriesHandler(w http.ResponseWriter, r *http.Request) {
	log := logFrom(r)
	cats, err := catalog.NewClient(s.backendFor(r)).Categories(r.Context())
	if err != nil {
		renderError(log, r, w, errors.Wrap(err, "could not retrieve categories"), http.StatusInternalServerError)
		return
	}
	writeJSON(log, w, http.StatusOK, map[string]interface{}{"categories": cats})
}

func (s *Server) brandsHandler(w http.ResponseWriter, r *http.Request) {
	log := logFrom(r)
	brands, err := catalog.NewClient(s.backendFor(r)).Brands(r.Context())
	if err != nil {
		renderError(log, r, w, errors.Wrap(err, "could not retrieve brands"), http.StatusInternalServerError)
		return
	}
	writeJSON(log, w, http.StatusOK, map[string]interface{}{"brands": brands})
}

func (s *Server) viewCartHandler(w http.ResponseWriter, r *http.Request) {
	log := logFrom(r)
	c := s.cartFor(r)

	pub, err := settings.NewClient(s.backendFor(r)).Fetch(r.Context())
	if err != nil {
		renderError(log, r, w, errors.Wrap(err, "could not retrieve settings"), http.StatusInternalServerError)
		return
	}
	items := c.Items()
	sum := checkout.Summarize(items, pub)
	writeJSON(log, w, http.StatusOK, map[string]interface{}{
		"items":           items,
		"item_count":      c.ItemCount(),
		"summary":         sum,
		"total_formatted": money.Format(sum.Total, pub.Currency),
	})
}

func (s *Server) addToCartHandler(w http.ResponseWriter, r *http.Request) {
	log := logFrom(r)
	quantity, _ := strconv.Atoi(r.FormValue("quantity"))
	payload := validator.AddToCartPayload{
		ProductSlug: r.FormValue("product_slug"),
		Quantity:    quantity,
	}
	if err := payload.Validate(); err != nil {
		renderError(log, r, w, validator.ValidationErrorResponse(err), http.StatusUnprocessableEntity)
		return
	}
	log.WithField("product", payload.ProductSlug).WithField("quantity", payload.Quantity).Debug("adding to cart")

	p, err := catalog.NewClient(s.backendFor(r)).GetBySlug(r.Context(), payload.ProductSlug)
	if err != nil {
		renderError(log, r, w, errors.Wrap(err, "could not retrieve product"), http.StatusInternalServerError)
		return
	}
	if payload.Quantity > p.StockQuantity {
		renderError(log, r, w, errors.Errorf("only %d of %q in stock", p.StockQuantity, p.Name), http.StatusUnprocessableEntity)
		return
	}

	c := s.cartFor(r)
	c.AddItem(cart.Item{
		ProductID:     p.ID,
		ProductName:   p.Name,
		ProductImage:  p.Image,
		Price:         p.Price,
		Quantity:      payload.Quantity,
		SKU:           p.SKU,
		Slug:          p.Slug,
		StockQuantity: p.StockQuantity,
	})
	writeJSON(log, w, http.StatusOK, map[string]interface{}{
		"item_count": c.ItemCount(),
	})
}

func (s *Server) updateCartItemHandler(w http.ResponseWriter, r *http.Request) {
	log := logFrom(r)
	productID, _ := strconv.Atoi(r.FormValue("product_id"))
	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	payload := validator.UpdateCartPayload{ProductID: productID, Quantity: quantity}
	if err != nil {
		renderError(log, r, w, errors.New("invalid quantity"), http.StatusBadRequest)
		return
	}
	if err := payload.Validate(); err != nil {
		renderError(log, r, w, validator.ValidationErrorResponse(err), http.StatusUnprocessableEntity)
		return
	}

	c := s.cartFor(r)
	for _, it := range c.Items() {
		if it.ProductID == payload.ProductID && payload.Quantity > it.StockQuantity {
			renderError(log, r, w, errors.Errorf("only %d of %q in stock", it.StockQuantity, it.ProductName), http.StatusUnprocessableEntity)
			return
		}
	}
	// quantity 0 removes the line
	c.UpdateQuantity(payload.ProductID, payload.Quantity)
	writeJSON(log, w, http.StatusOK, map[string]interface{}{
		"item_count": c.ItemCount(),
	})
}

func (s *Server) emptyCartHandler(w http.ResponseWriter, r *http.Request) {
	log := logFrom(r)
	log.Debug("emptying cart")
	c := s.cartFor(r)
	c.Clear()
	writeJSON(log, w, http.StatusOK, map[string]interface{}{"item_count": 0})
}

func (s *Server) locationsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(logFrom(r), w, http.StatusOK, map[string]interface{}{
		"countries": location.Countries(),
	})
}

func (s *Server) listAddressesHandler(w http.ResponseWriter, r *http.Request) {
	log := logFrom(r)
	addrs, err := address.NewClient(s.backendFor(r)).List(r.Context())
	if err != nil {
		renderError(log, r, w, errors.Wrap(err, "could not retrieve addresses"), http.StatusInternalServerError)
		return
	}
	writeJSON(log, w, http.StatusOK, map[string]interface{}{"addresses": addrs})
}

func addressInputFromForm(r *http.Request) (address.Input, error) {
	payload := validator.AddressPayload{
		Label:      r.FormValue("label"),
		Street:     r.FormValue("street"),
		Street2:    r.FormValue("street2"),
		City:       r.FormValue("city"),
		State:      r.FormValue("state"),
		PostalCode: r.FormValue("postal_code"),
		Country:    r.FormValue("country"),
	}
	if err := payload.Validate(); err != nil {
		return address.Input{}, validator.ValidationErrorResponse(err)
	}
	return address.Input{
		Label:      payload.Label,
		Street:     payload.Street,
		Street2:    payload.Street2,
		City:       payload.City,
		State:      payload.State,
		PostalCode: payload.PostalCode,
		Country:    payload.Country,
	}, nil
}

func (s *Server) createAddressHandler(w http.ResponseWriter, r *http.Request) {
	log := logFrom(r)
	in, err := addressInputFromForm(r)
	if err != nil {
		renderError(log, r, w, err, http.StatusUnprocessableEntity)
		return
	}
	created, err := address.NewClient(s.backendFor(r)).Create(r.Context(), in)
	if err != nil {
		renderError(log, r, w, errors.Wrap(err, "could not save address"), http.StatusInternalServerError)
		return
	}
	writeJSON(log, w, http.StatusCreated, map[string]interface{}{"address": created})
}

func (s *Server) updateAddressHandler(w http.ResponseWriter, r *http.Request) {
	log := logFrom(r)
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		renderError(log, r, w, errors.New("invalid address id"), http.StatusBadRequest)
		return
	}
	in, err := addressInputFromForm(r)
	if err != nil {
		renderError(log, r, w, err, http.StatusUnprocessableEntity)
		return
	}
	updated, err := address.NewClient(s.backendFor(r)).Update(r.Context(), id, in)
	if err != nil {
		renderError(log, r, w, errors.Wrap(err, "could not update address"), http.StatusInternalServerError)
		return
	}
	writeJSON(log, w, http.StatusOK, map[string]interface{}{"address": updated})
}

func (s *Server) setDefaultAddressHandler(w http.ResponseWriter, r *http.Request) {
	log := logFrom(r)
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		renderError(log, r, w, errors.New("invalid address id"), http.StatusBadRequest)
		return
	}
	if err := address.NewClient(s.backendFor(r)).SetDefault(r.Context(), id); err != nil {
		renderError(log, r, w, errors.Wrap(err, "could not set default address"), http.StatusInternalServerError)
		return
	}
	writeJSON(log, w, http.StatusOK, map[string]interface{}{"default": id})
}

func (s *Server) deleteAddressHandler(w http.ResponseWriter, r *http.Request) {
	log := logFrom(r)
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		renderError(log, r, w, errors.New("invalid address id"), http.StatusBadRequest)
		return
	}
	if err := address.NewClient(s.backendFor(r)).Delete(r.Context(), id); err != nil {
		renderError(log, r, w, errors.Wrap(err, "could not delete address"), http.StatusInternalServerError)
		return
	}
	writeJSON(log, w, http.StatusOK, map[string]interface{}{"deleted": id})
}

func (s *Server) checkoutViewHandler(w http.ResponseWriter, r *http.Request) {
	log := logFrom(r)
	if getAuthToken(r) == "" {
		renderError(log, r, w, errors.New("login required for checkout"), http.StatusUnauthorized)
		return
	}
	backend := s.backendFor(r)

	o := checkout.NewOrchestrator(address.NewClient(backend), log)
	if err := o.Begin(r.Context()); err != nil {
		renderError(log, r, w, err, http.StatusInternalServerError)
		return
	}
	if o.Mode() == checkout.ModeNoAddresses {
		// checkout cannot proceed without a saved address
		writeJSON(log, w, http.StatusConflict, map[string]interface{}{
			"mode":     o.Mode().String(),
			"redirect": s.baseURL + "/addresses",
		})
		return
	}

	pub, err := settings.NewClient(backend).Fetch(r.Context())
	if err != nil {
		renderError(log, r, w, errors.Wrap(err, "could not retrieve settings"), http.StatusInternalServerError)
		return
	}
	c := s.cartFor(r)
	items := c.Items()
	sum := checkout.Summarize(items, pub)

	writeJSON(log, w, http.StatusOK, map[string]interface{}{
		"mode":                o.Mode().String(),
		"addresses":           o.Addresses(),
		"shipping_address_id": o.ShippingAddressID(),
		"same_as_shipping":    o.SameAsShipping(),
		"items":               items,
		"summary":             sum,
		"total_formatted":     money.Format(sum.Total, pub.Currency),
	})
}

func inlineAddressFromForm(r *http.Request, prefix string) *order.InlineAddress {
	street := r.FormValue(prefix + "_street")
	if street == "" {
		return nil
	}
	return &order.InlineAddress{
		Street:     street,
		Street2:    r.FormValue(prefix + "_street2"),
		City:       r.FormValue(prefix + "_city"),
		State:      r.FormValue(prefix + "_state"),
		PostalCode: r.FormValue(prefix + "_postal_code"),
		Country:    r.FormValue(prefix + "_country"),
	}
}

func (s *Server) placeOrderHandler(w http.ResponseWriter, r *http.Request) {
	log := logFrom(r)
	log.Debug("placing order")

	if getAuthToken(r) == "" {
		renderError(log, r, w, errors.New("login required for checkout"), http.StatusUnauthorized)
		return
	}

	payload := validator.CheckoutPayload{
		FullName: r.FormValue("full_name"),
		Email:    r.FormValue("email"),
		Phone:    r.FormValue("phone"),
		Notes:    r.FormValue("notes"),
	}
	if err := payload.Validate(); err != nil {
		renderError(log, r, w, validator.ValidationErrorResponse(err), http.StatusUnprocessableEntity)
		return
	}

	c := s.cartFor(r)
	items := c.Items()
	if len(items) == 0 {
		renderError(log, r, w, errors.New("cart is empty"), http.StatusBadRequest)
		return
	}

	backend := s.backendFor(r)
	o := checkout.NewOrchestrator(address.NewClient(backend), log)
	if err := o.Begin(r.Context()); err != nil {
		renderError(log, r, w, err, http.StatusInternalServerError)
		return
	}

	form := checkout.FormData{
		FullName:       payload.FullName,
		Email:          payload.Email,
		Phone:          payload.Phone,
		Notes:          payload.Notes,
		ShippingInline: inlineAddressFromForm(r, "shipping"),
		BillingInline:  inlineAddressFromForm(r, "billing"),
	}

	if idStr := r.FormValue("shipping_address_id"); idStr != "" {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			renderError(log, r, w, errors.New("invalid shipping_address_id"), http.StatusBadRequest)
			return
		}
		if err := o.SelectShipping(id); err != nil {
			renderError(log, r, w, err, http.StatusUnprocessableEntity)
			return
		}
	} else if form.ShippingInline != nil {
		// inline shipping overrides the auto-selected saved address
		o.ClearShippingSelection()
	}

	if r.FormValue("different_billing") == "true" {
		o.SetSameAsShipping(false)
		if idStr := r.FormValue("billing_address_id"); idStr != "" {
			id, err := strconv.Atoi(idStr)
			if err != nil {
				renderError(log, r, w, errors.New("invalid billing_address_id"), http.StatusBadRequest)
				return
			}
			if err := o.SelectBilling(id); err != nil {
				renderError(log, r, w, err, http.StatusUnprocessableEntity)
				return
			}
		}
	}

	if o.Mode() == checkout.ModeNoAddresses && form.ShippingInline == nil {
		writeJSON(log, w, http.StatusConflict, map[string]interface{}{
			"mode":     o.Mode().String(),
			"redirect": s.baseURL + "/addresses",
		})
		return
	}

	pub, err := settings.NewClient(backend).Fetch(r.Context())
	if err != nil {
		renderError(log, r, w, errors.Wrap(err, "could not retrieve settings"), http.StatusInternalServerError)
		return
	}
	sum := checkout.Summarize(items, pub)

	orderPayload, err := o.BuildPayload(form, items, sum)
	if err != nil {
		renderError(log, r, w, err, http.StatusUnprocessableEntity)
		return
	}

	placed, err := order.NewClient(backend).Place(r.Context(), orderPayload)
	if err != nil {
		// cart is preserved; the user can resubmit
		renderError(log, r, w, errors.Wrap(err, "failed to complete the order"), http.StatusInternalServerError)
		return
	}
	c.Clear()
	log.WithField("order", placed.OrderNumber).Info("order placed")

	writeJSON(log, w, http.StatusOK, map[string]interface{}{
		"status":          "processing",
		"order_number":    placed.OrderNumber,
		"total_formatted": money.Format(placed.Total, pub.Currency),
		"redirect":        s.baseURL + "/payment-instructions/" + placed.OrderNumber,
	})
}

func (s *Server) paymentInstructionsHandler(w http.ResponseWriter, r *http.Request) {
	log := logFrom(r)
	orderNumber := mux.Vars(r)["orderNumber"]
	pub, err := settings.NewClient(s.backendFor(r)).Fetch(r.Context())
	if err != nil {
		renderError(log, r, w, errors.Wrap(err, "could not retrieve settings"), http.StatusInternalServerError)
		return
	}
	writeJSON(log, w, http.StatusOK, map[string]interface{}{
		"order_number":         orderNumber,
		"bank_name":            pub.BankName,
		"account_holder":       pub.AccountHolder,
		"iban":                 pub.IBAN,
		"bic":                  pub.BIC,
		"bank_additional_info": pub.BankAdditionalInfo,
		"site_email":           pub.SiteEmail,
		"contact_number":       pub.ContactNumber,
		"whatsapp_number":      pub.WhatsappNumber,
	})
}
