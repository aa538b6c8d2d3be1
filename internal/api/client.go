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

// Package api is the shared HTTP client for the remote store backend. Every
// endpoint speaks the {success, data} envelope; this package owns request
// construction, bearer-token attachment, the client-wide timeout, and the
// global 401 handling.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const requestTimeout = 10 * time.Second

// Credentials supplies the bearer token for outgoing requests. Clear is
// invoked on any 401 so stored credentials never outlive the session.
type Credentials interface {
	Token() string
	Clear()
}

// Client calls the remote store backend.
type Client struct {
	baseURL    string
	creds      Credentials
	httpClient *http.Client
	log        logrus.FieldLogger
}

// NewClient builds a backend client. baseURL is scheme+host, no trailing
// slash. creds may be nil for unauthenticated use.
func NewClient(baseURL string, creds Credentials, log logrus.FieldLogger) *Client {
	return &Client{
		baseURL: baseURL,
		creds:   creds,
		log:     log,
		httpClient: &http.Client{
			Timeout:   requestTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// WithCredentials returns a copy of the client bound to other credentials,
// sharing the underlying HTTP client. Used to bind the base client to one
// request's bearer token.
func (c *Client) WithCredentials(creds Credentials) *Client {
	clone := *c
	clone.creds = creds
	return &clone
}

// Get issues a GET and returns the decoded envelope.
func (c *Client) Get(ctx context.Context, path string) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post issues a POST with a JSON body and returns the decoded envelope.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Envelope, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// Put issues a PUT with a JSON body and returns the decoded envelope.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Envelope, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

// Delete issues a DELETE and returns the decoded envelope.
func (c *Client) Delete(ctx context.Context, path string) (*Envelope, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*Envelope, error) {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "encoding request body")
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.creds != nil {
		if token := c.creds.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if c.creds != nil {
			c.creds.Clear()
		}
		c.log.WithField("path", path).Warn("backend returned 401, credentials cleared")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(resp.Body)
		return nil, &StatusError{Code: resp.StatusCode, Body: string(b)}
	}

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &DecodeError{Field: "envelope", Err: err}
	}
	if !env.Success {
		return nil, &RejectedError{Message: env.Message}
	}
	return &env, nil
}
