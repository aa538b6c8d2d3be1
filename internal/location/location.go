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

// Package location holds the static country/state/city table behind the
// address forms and the cascading selection logic on top of it.
package location

// State is one subdivision of a country with its selectable cities.
type State struct {
	Code   string   `json:"code"`
	Name   string   `json:"name"`
	Cities []string `json:"cities"`
}

// Country is one entry of the location table. Countries without a state tier
// list their cities directly.
type Country struct {
	Code   string   `json:"code"`
	Name   string   `json:"name"`
	States []State  `json:"states,omitempty"`
	Cities []string `json:"cities,omitempty"`
}

// HasStates reports whether the country uses a state tier.
func (c *Country) HasStates() bool {
	return len(c.States) > 0
}

// Countries returns the full location table.
func Countries() []Country {
	return countries
}

// FindCountry looks a country up by code.
func FindCountry(code string) (*Country, bool) {
	for i := range countries {
		if countries[i].Code == code {
			return &countries[i], true
		}
	}
	return nil, false
}

// FindState looks a state up within a country.
func (c *Country) FindState(code string) (*State, bool) {
	for i := range c.States {
		if c.States[i].Code == code {
			return &c.States[i], true
		}
	}
	return nil, false
}

// Selection is the cascading country → state → city choice driving an
// address form. Changing the country resets state and city; changing the
// state resets the city.
type Selection struct {
	country *Country
	state   *State
	city    string
}

// SetCountry selects a country by code, clearing any state and city choice.
// Unknown codes clear the whole selection.
func (s *Selection) SetCountry(code string) {
	s.state = nil
	s.city = ""
	c, ok := FindCountry(code)
	if !ok {
		s.country = nil
		return
	}
	s.country = c
}

// SetState selects a state within the current country, clearing the city.
// It is a no-op for countries without a state tier.
func (s *Selection) SetState(code string) {
	s.city = ""
	if s.country == nil || !s.country.HasStates() {
		s.state = nil
		return
	}
	st, ok := s.country.FindState(code)
	if !ok {
		s.state = nil
		return
	}
	s.state = st
}

// SetCity selects a city from the currently available list; anything else is
// ignored.
func (s *Selection) SetCity(city string) {
	for _, c := range s.Cities() {
		if c == city {
			s.city = city
			return
		}
	}
}

// CountryCode returns the selected country code, or "".
func (s *Selection) CountryCode() string {
	if s.country == nil {
		return ""
	}
	return s.country.Code
}

// StateCode returns the selected state code; "" for stateless countries or
// when nothing is selected.
func (s *Selection) StateCode() string {
	if s.state == nil {
		return ""
	}
	return s.state.Code
}

// City returns the selected city, or "".
func (s *Selection) City() string {
	return s.city
}

// States returns the state options for the current country; empty for
// stateless countries.
func (s *Selection) States() []State {
	if s.country == nil {
		return nil
	}
	return s.country.States
}

// Cities returns the city options for the current choice: the state's cities
// when a state is selected, the country's own city list when the country has
// no state tier, nil otherwise.
func (s *Selection) Cities() []string {
	if s.country == nil {
		return nil
	}
	if s.country.HasStates() {
		if s.state == nil {
			return nil
		}
		return s.state.Cities
	}
	return s.country.Cities
}
