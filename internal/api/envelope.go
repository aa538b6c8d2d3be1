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

package api

import (
	"bytes"
	"encoding/json"
)

// Envelope is the {success, data} wrapper every backend endpoint uses.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Field unmarshals one named field out of Data into out. A missing or null
// field returns found=false with out untouched, so callers can default to
// empty collections instead of failing on minor backend shape drift.
func (e *Envelope) Field(name string, out interface{}) (found bool, err error) {
	if len(e.Data) == 0 || bytes.Equal(e.Data, []byte("null")) {
		return false, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(e.Data, &fields); err != nil {
		return false, &DecodeError{Field: name, Err: err}
	}
	raw, ok := fields[name]
	if !ok || bytes.Equal(raw, []byte("null")) {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, &DecodeError{Field: name, Err: err}
	}
	return true, nil
}

// MustField is Field for responses where the caller cannot proceed without
// the value; a missing field is a DecodeError.
func (e *Envelope) MustField(name string, out interface{}) error {
	found, err := e.Field(name, out)
	if err != nil {
		return err
	}
	if !found {
		return &DecodeError{Field: name}
	}
	return nil
}

// Decode unmarshals the whole Data payload into out. Missing data is a
// DecodeError; use Field for tolerant extraction.
func (e *Envelope) Decode(out interface{}) error {
	if len(e.Data) == 0 || bytes.Equal(e.Data, []byte("null")) {
		return &DecodeError{Field: "data"}
	}
	if err := json.Unmarshal(e.Data, out); err != nil {
		return &DecodeError{Field: "data", Err: err}
	}
	return nil
}
