package geocoder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMapQuestGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("location"); got != "90210" {
			t.Errorf("location query = %q, want 90210", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"locations":[{
			"latLng":{"lat":34.0901,"lng":-118.4065},
			"street":"","adminArea5":"Beverly Hills","adminArea3":"CA",
			"postalCode":"90210","adminArea1":"US"}]}]}`))
	}))
	defer srv.Close()

	g := NewMapQuest("test-key", srv.URL)
	loc, err := g.Geocode(context.Background(), "90210")
	if err != nil {
		t.Fatalf("Geocode() error = %v", err)
	}
	if loc.Lat != 34.0901 || loc.Lng != -118.4065 {
		t.Errorf("coords = (%v, %v)", loc.Lat, loc.Lng)
	}
	if loc.City != "Beverly Hills" || loc.State != "CA" {
		t.Errorf("address parts = %q, %q", loc.City, loc.State)
	}
}

func TestMapQuestGeocodeNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	g := NewMapQuest("test-key", srv.URL)
	if _, err := g.Geocode(context.Background(), "nowhere"); err == nil {
		t.Error("expected an error when the geocoder returns no results")
	}
}

func TestMapQuestGeocodeUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	g := NewMapQuest("bad-key", srv.URL)
	if _, err := g.Geocode(context.Background(), "90210"); err == nil {
		t.Error("expected the upstream failure to propagate")
	}
}
