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

// Package frontend is the storefront's own HTTP surface: session handling,
// per-request logging, and the JSON handlers tying the catalog, cart,
// address and checkout flows together.
package frontend

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/devujjwal/teletrade-hub-frontend-sub000/internal/api"
	"github.com/devujjwal/teletrade-hub-frontend-sub000/internal/auth"
	"github.com/devujjwal/teletrade-hub-frontend-sub000/internal/cart"
)

const (
	cookieMaxAge = 60 * 60 * 48

	cookiePrefix    = "shop_"
	cookieSessionID = cookiePrefix + "session-id"
	cookieToken     = cookiePrefix + "token"
	cookieUsername  = cookiePrefix + "username"
)

// Server wires the backend clients to the storefront routes.
type Server struct {
	log     logrus.FieldLogger
	backend *api.Client
	carts   cart.Store
	baseURL string
}

// NewServer builds the storefront server. backend is the unauthenticated
// base client; each request rebinds it to the session's bearer token.
func NewServer(log logrus.FieldLogger, backend *api.Client, carts cart.Store, baseURL string) *Server {
	return &Server{log: log, backend: backend, carts: carts, baseURL: baseURL}
}

// Handler returns the full middleware-wrapped handler chain.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	base := s.baseURL

	r.HandleFunc(base+"/products", s.listProductsHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(base+"/products/{slug}", s.productHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(base+"/categories", s.categoriesHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(base+"/brands", s.brandsHandler).Methods(http.MethodGet, http.MethodHead)

	r.HandleFunc(base+"/cart", s.viewCartHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(base+"/cart", s.addToCartHandler).Methods(http.MethodPost)
	r.HandleFunc(base+"/cart/update", s.updateCartItemHandler).Methods(http.MethodPost)
	r.HandleFunc(base+"/cart/empty", s.emptyCartHandler).Methods(http.MethodPost)

	r.HandleFunc(base+"/locations", s.locationsHandler).Methods(http.MethodGet, http.MethodHead)

	r.HandleFunc(base+"/addresses", s.listAddressesHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(base+"/addresses", s.createAddressHandler).Methods(http.MethodPost)
	r.HandleFunc(base+"/addresses/{id}", s.updateAddressHandler).Methods(http.MethodPut)
	r.HandleFunc(base+"/addresses/{id}/default", s.setDefaultAddressHandler).Methods(http.MethodPost)
	r.HandleFunc(base+"/addresses/{id}", s.deleteAddressHandler).Methods(http.MethodDelete)

	r.HandleFunc(base+"/checkout", s.checkoutViewHandler).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(base+"/checkout", s.placeOrderHandler).Methods(http.MethodPost)
	r.HandleFunc(base+"/payment-instructions/{orderNumber}", s.paymentInstructionsHandler).Methods(http.MethodGet, http.MethodHead)

	r.HandleFunc(base+"/robots.txt", func(w http.ResponseWriter, _ *http.Request) { fmt.Fprint(w, "User-agent: *\nDisallow: /") })
	r.HandleFunc(base+"/_healthz", func(w http.ResponseWriter, _ *http.Request) { fmt.Fprint(w, "ok") })

	var handler http.Handler = r
	handler = &logHandler{log: s.log, next: handler}     // add logging
	handler = ensureSessionID(handler)                   // add session ID
	handler = otelhttp.NewHandler(handler, "storefront") // add OTel tracing
	return handler
}

// backendFor rebinds the base client to the request's bearer token, if any.
func (s *Server) backendFor(r *http.Request) *api.Client {
	token := getAuthToken(r)
	if token == "" {
		return s.backend
	}
	return s.backend.WithCredentials(auth.NewTokenStore(token))
}

// cartFor loads the session's cart container.
func (s *Server) cartFor(r *http.Request) *cart.Container {
	return cart.NewContainer(cartUserID(r), s.carts, logFrom(r))
}

func logFrom(r *http.Request) logrus.FieldLogger {
	if log, ok := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger); ok {
		return log
	}
	return logrus.StandardLogger()
}

func sessionID(r *http.Request) string {
	v := r.Context().Value(ctxKeySessionID{})
	if v != nil {
		return v.(string)
	}
	return ""
}

// cartUserID returns the username when logged in, otherwise the session ID,
// so cart state follows the login.
func cartUserID(r *http.Request) string {
	if u := getAuthUsername(r); u != "" {
		return u
	}
	return sessionID(r)
}

func getAuthToken(r *http.Request) string {
	c, err := r.Cookie(cookieToken)
	if err != nil {
		return ""
	}
	if auth.Expired(c.Value) {
		return ""
	}
	return c.Value
}

func getAuthUsername(r *http.Request) string {
	c, err := r.Cookie(cookieUsername)
	if err != nil {
		return ""
	}
	return c.Value
}

func clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: cookieToken, Value: "", MaxAge: -1, Path: "/"})
	http.SetCookie(w, &http.Cookie{Name: cookieUsername, Value: "", MaxAge: -1, Path: "/"})
}

func writeJSON(log logrus.FieldLogger, w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error(err)
	}
}

// renderError surfaces an error as JSON. A 401 from the backend is the
// global concern: credentials are cleared and the client is pointed at the
// right login route for the current path.
func renderError(log logrus.FieldLogger, r *http.Request, w http.ResponseWriter, err error, code int) {
	log.WithField("error", err).Error("request error")

	if api.IsUnauthorized(err) {
		clearAuthCookies(w)
		writeJSON(log, w, http.StatusUnauthorized, map[string]interface{}{
			"error":    "authentication required",
			"redirect": auth.LoginPath(r.URL.Path),
		})
		return
	}
	writeJSON(log, w, code, map[string]interface{}{
		"error":  err.Error(),
		"status": http.StatusText(code),
	})
}
