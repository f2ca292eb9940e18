package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// fakeAmadeus is a stub API server: it issues tokens and records the last
// authenticated request.
type fakeAmadeus struct {
	*httptest.Server

	tokenCalls int
	lastPath   string
	lastQuery  map[string]string
	lastAuth   string
	lastBody   []byte
	status     int
}

func newFakeAmadeus(t *testing.T) *fakeAmadeus {
	t.Helper()
	f := &fakeAmadeus{status: http.StatusOK}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls++
		if r.Method != http.MethodPost {
			t.Errorf("token request method = %s", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("failed to parse token form: %v", err)
		}
		if r.PostForm.Get("grant_type") != "client_credentials" {
			t.Errorf("grant_type = %q", r.PostForm.Get("grant_type"))
		}
		fmt.Fprint(w, `{"access_token":"tok-123","expires_in":1799,"token_type":"Bearer"}`)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		f.lastPath = r.URL.Path
		f.lastAuth = r.Header.Get("Authorization")
		f.lastQuery = map[string]string{}
		for k := range r.URL.Query() {
			f.lastQuery[k] = r.URL.Query().Get(k)
		}
		body, _ := io.ReadAll(r.Body)
		f.lastBody = body
		w.WriteHeader(f.status)
		fmt.Fprint(w, `{"data":[]}`)
	})

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Server.Close)
	return f
}

func newTestClient(f *fakeAmadeus) *Client {
	return NewClient(f.URL, "id", "secret", 5*time.Second)
}

func TestTokenFetchedOnceAndReused(t *testing.T) {
	f := newFakeAmadeus(t)
	c := newTestClient(f)
	ctx := context.Background()

	if _, err := c.SearchLocations(ctx, "Paris", nil); err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	if _, err := c.HotelsByCity(ctx, "PAR"); err != nil {
		t.Fatalf("second request failed: %v", err)
	}

	if f.tokenCalls != 1 {
		t.Fatalf("expected 1 token request, got %d", f.tokenCalls)
	}
	if f.lastAuth != "Bearer tok-123" {
		t.Fatalf("unexpected auth header %q", f.lastAuth)
	}
}

func TestTokenRefetchedAfterExpiry(t *testing.T) {
	f := newFakeAmadeus(t)
	c := newTestClient(f)
	ctx := context.Background()

	if _, err := c.SearchLocations(ctx, "Paris", nil); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	// Force the cached token past its refresh point.
	c.mu.Lock()
	c.tokenExpiry = time.Now().Add(-time.Second)
	c.mu.Unlock()

	if _, err := c.SearchLocations(ctx, "Lyon", nil); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if f.tokenCalls != 2 {
		t.Fatalf("expected 2 token requests, got %d", f.tokenCalls)
	}
}

func TestSearchLocationsDefaultsSubType(t *testing.T) {
	f := newFakeAmadeus(t)
	c := newTestClient(f)

	if _, err := c.SearchLocations(context.Background(), "Paris", nil); err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if f.lastPath != "/v1/reference-data/locations" {
		t.Fatalf("unexpected path %q", f.lastPath)
	}
	if f.lastQuery["keyword"] != "Paris" || f.lastQuery["subType"] != "AIRPORT,CITY" {
		t.Fatalf("unexpected query %v", f.lastQuery)
	}
}

func TestFlightOffersQueryDefaults(t *testing.T) {
	f := newFakeAmadeus(t)
	c := newTestClient(f)

	_, err := c.FlightOffers(context.Background(), FlightOffersQuery{
		Origin:        "JFK",
		Destination:   "CDG",
		DepartureDate: "2025-06-01",
		Adults:        2,
	})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if f.lastPath != "/v2/shopping/flight-offers" {
		t.Fatalf("unexpected path %q", f.lastPath)
	}
	q := f.lastQuery
	if q["originLocationCode"] != "JFK" || q["destinationLocationCode"] != "CDG" {
		t.Fatalf("unexpected route params %v", q)
	}
	if q["adults"] != "2" {
		t.Fatalf("adults = %q", q["adults"])
	}
	if q["currencyCode"] != "USD" {
		t.Fatalf("currencyCode = %q, want default USD", q["currencyCode"])
	}
	if q["max"] != "250" {
		t.Fatalf("max = %q, want default 250", q["max"])
	}
	if _, set := q["returnDate"]; set {
		t.Fatalf("returnDate must be omitted when empty")
	}
	if _, set := q["nonStop"]; set {
		t.Fatalf("nonStop must be omitted when false")
	}
}

func TestHotelOffersJoinsIDsAndDefaultsAdults(t *testing.T) {
	f := newFakeAmadeus(t)
	c := newTestClient(f)

	_, err := c.HotelOffers(context.Background(), HotelOffersQuery{
		HotelIDs:     []string{"H1", "H2"},
		CheckInDate:  "2025-06-01",
		CheckOutDate: "2025-06-05",
	})
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if f.lastQuery["hotelIds"] != "H1,H2" {
		t.Fatalf("hotelIds = %q", f.lastQuery["hotelIds"])
	}
	if f.lastQuery["adults"] != "1" {
		t.Fatalf("adults = %q, want default 1", f.lastQuery["adults"])
	}
}

func TestPriceFlightOfferEnvelope(t *testing.T) {
	f := newFakeAmadeus(t)
	c := newTestClient(f)

	offer := map[string]interface{}{"id": "offer-1", "type": "flight-offer"}
	if _, err := c.PriceFlightOffer(context.Background(), offer, ""); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if f.lastPath != "/v1/shopping/flight-offers/pricing" {
		t.Fatalf("unexpected path %q", f.lastPath)
	}
	var payload struct {
		Data struct {
			Type         string                   `json:"type"`
			FlightOffers []map[string]interface{} `json:"flightOffers"`
		} `json:"data"`
	}
	if err := json.Unmarshal(f.lastBody, &payload); err != nil {
		t.Fatalf("failed to decode request body: %v", err)
	}
	if payload.Data.Type != "flight-offers-pricing" {
		t.Fatalf("data.type = %q", payload.Data.Type)
	}
	if len(payload.Data.FlightOffers) != 1 || payload.Data.FlightOffers[0]["id"] != "offer-1" {
		t.Fatalf("unexpected flightOffers %v", payload.Data.FlightOffers)
	}
}

func TestErrorStatusPropagated(t *testing.T) {
	f := newFakeAmadeus(t)
	f.status = http.StatusBadRequest
	c := newTestClient(f)

	_, err := c.HotelsByCity(context.Background(), "PAR")
	if err == nil {
		t.Fatal("expected error on 400 response")
	}
	if !strings.Contains(err.Error(), "Amadeus API error [400]") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTokenErrorPropagated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"invalid_client"}`)
	}))
	t.Cleanup(server.Close)

	c := NewClient(server.URL, "bad", "creds", 5*time.Second)
	_, err := c.HotelsByCity(context.Background(), "PAR")
	if err == nil {
		t.Fatal("expected token error")
	}
	if !strings.Contains(err.Error(), "Amadeus token error [401]") {
		t.Fatalf("unexpected error: %v", err)
	}
}
