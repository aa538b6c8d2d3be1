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

package location

// countries is the static shipping-location table. A country carries either
// States (each with its own cities) or a flat Cities list, never both.
var countries = []Country{
	{
		Code: "AE",
		Name: "United Arab Emirates",
		Cities: []string{
			"Abu Dhabi", "Dubai", "Sharjah", "Ajman",
			"Umm Al Quwain", "Ras Al Khaimah", "Fujairah", "Al Ain",
		},
	},
	{
		Code: "SA",
		Name: "Saudi Arabia",
		Cities: []string{
			"Riyadh", "Jeddah", "Mecca", "Medina", "Dammam", "Khobar", "Tabuk",
		},
	},
	{
		Code: "QA",
		Name: "Qatar",
		Cities: []string{"Doha", "Al Rayyan", "Al Wakrah", "Al Khor"},
	},
	{
		Code: "DE",
		Name: "Germany",
		States: []State{
			{Code: "BW", Name: "Baden-Württemberg", Cities: []string{"Stuttgart", "Karlsruhe", "Mannheim", "Freiburg"}},
			{Code: "BY", Name: "Bavaria", Cities: []string{"Munich", "Nuremberg", "Augsburg", "Regensburg"}},
			{Code: "BE", Name: "Berlin", Cities: []string{"Berlin"}},
			{Code: "HH", Name: "Hamburg", Cities: []string{"Hamburg"}},
			{Code: "HE", Name: "Hesse", Cities: []string{"Frankfurt", "Wiesbaden", "Kassel", "Darmstadt"}},
			{Code: "NW", Name: "North Rhine-Westphalia", Cities: []string{"Cologne", "Düsseldorf", "Dortmund", "Essen", "Bonn"}},
		},
	},
	{
		Code: "US",
		Name: "United States",
		States: []State{
			{Code: "CA", Name: "California", Cities: []string{"Los Angeles", "San Francisco", "San Diego", "Sacramento"}},
			{Code: "NY", Name: "New York", Cities: []string{"New York", "Buffalo", "Rochester", "Albany"}},
			{Code: "TX", Name: "Texas", Cities: []string{"Houston", "Dallas", "Austin", "San Antonio"}},
			{Code: "WA", Name: "Washington", Cities: []string{"Seattle", "Spokane", "Tacoma", "Olympia"}},
		},
	},
	{
		Code: "TR",
		Name: "Turkey",
		Cities: []string{
			"Istanbul", "Ankara", "Izmir", "Bursa", "Antalya", "Gaziantep",
		},
	},
	{
		Code: "GB",
		Name: "United Kingdom",
		States: []State{
			{Code: "ENG", Name: "England", Cities: []string{"London", "Manchester", "Birmingham", "Liverpool", "Leeds"}},
			{Code: "SCT", Name: "Scotland", Cities: []string{"Edinburgh", "Glasgow", "Aberdeen", "Dundee"}},
			{Code: "WLS", Name: "Wales", Cities: []string{"Cardiff", "Swansea", "Newport"}},
			{Code: "NIR", Name: "Northern Ireland", Cities: []string{"Belfast", "Derry"}},
		},
	},
}
