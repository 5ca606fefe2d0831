// Package geocoder resolves free-form addresses and postal codes to
// coordinates through an external geocoding API.
package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Location is a resolved geocoding result.
type Location struct {
	Lat              float64
	Lng              float64
	FormattedAddress string
	Street           string
	City             string
	State            string
	Zipcode          string
	Country          string
}

// Geocoder resolves a query (street address or postal code) to a location.
// Errors are propagated to the caller untouched; there are no retries.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (Location, error)
}

// MapQuest implements Geocoder against the MapQuest geocoding API.
type MapQuest struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

func NewMapQuest(apiKey, baseURL string) *MapQuest {
	return &MapQuest{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (g *MapQuest) Geocode(ctx context.Context, query string) (Location, error) {
	if query == "" {
		return Location{}, fmt.Errorf("empty geocode query")
	}
	u := fmt.Sprintf("%s?key=%s&location=%s&maxResults=1",
		g.BaseURL, url.QueryEscape(g.APIKey), url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Location{}, err
	}
	resp, err := g.Client.Do(req)
	if err != nil {
		return Location{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Location{}, fmt.Errorf("geocode request failed: %s", resp.Status)
	}

	var body struct {
		Results []struct {
			Locations []struct {
				LatLng struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"latLng"`
				Street     string `json:"street"`
				City       string `json:"adminArea5"`
				State      string `json:"adminArea3"`
				PostalCode string `json:"postalCode"`
				Country    string `json:"adminArea1"`
			} `json:"locations"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Location{}, err
	}
	if len(body.Results) == 0 || len(body.Results[0].Locations) == 0 {
		return Location{}, fmt.Errorf("no geocode result for %q", query)
	}
	loc := body.Results[0].Locations[0]
	return Location{
		Lat:              loc.LatLng.Lat,
		Lng:              loc.LatLng.Lng,
		FormattedAddress: query,
		Street:           loc.Street,
		City:             loc.City,
		State:            loc.State,
		Zipcode:          loc.PostalCode,
		Country:          loc.Country,
	}, nil
}
