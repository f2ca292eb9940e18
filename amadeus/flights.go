package amadeus

import (
	"context"
	"net/url"
	"strconv"
)

// FlightOffersQuery holds the parameters for a flight offers search.
type FlightOffersQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Adults        int
	Children      int
	Infants       int
	TravelClass   string
	NonStop       bool
	Currency      string
	Max           int
}

// FlightOffers searches for flight offers between two locations.
// GET /v2/shopping/flight-offers
func (c *Client) FlightOffers(ctx context.Context, q FlightOffersQuery) (Result, error) {
	params := url.Values{}
	params.Set("originLocationCode", q.Origin)
	params.Set("destinationLocationCode", q.Destination)
	params.Set("departureDate", q.DepartureDate)
	params.Set("adults", strconv.Itoa(q.Adults))
	if q.ReturnDate != "" {
		params.Set("returnDate", q.ReturnDate)
	}
	if q.Children > 0 {
		params.Set("children", strconv.Itoa(q.Children))
	}
	if q.Infants > 0 {
		params.Set("infants", strconv.Itoa(q.Infants))
	}
	if q.TravelClass != "" {
		params.Set("travelClass", q.TravelClass)
	}
	if q.NonStop {
		params.Set("nonStop", "true")
	}
	currency := q.Currency
	if currency == "" {
		currency = "USD"
	}
	params.Set("currencyCode", currency)
	max := q.Max
	if max <= 0 {
		max = 250
	}
	params.Set("max", strconv.Itoa(max))

	return c.get(ctx, "/v2/shopping/flight-offers", params)
}

// FlightInspiration returns inspirational destinations from an origin.
// GET /v1/shopping/flight-destinations
func (c *Client) FlightInspiration(ctx context.Context, origin string) (Result, error) {
	params := url.Values{}
	params.Set("origin", origin)
	return c.get(ctx, "/v1/shopping/flight-destinations", params)
}

// FlightCheapestDates finds the cheapest dates to fly a route.
// GET /v1/shopping/flight-dates
func (c *Client) FlightCheapestDates(ctx context.Context, origin, destination string) (Result, error) {
	params := url.Values{}
	params.Set("origin", origin)
	params.Set("destination", destination)
	return c.get(ctx, "/v1/shopping/flight-dates", params)
}

// PriceFlightOffer confirms pricing for a specific flight offer.
// POST /v1/shopping/flight-offers/pricing
func (c *Client) PriceFlightOffer(ctx context.Context, offer map[string]interface{}, include string) (Result, error) {
	path := "/v1/shopping/flight-offers/pricing"
	if include != "" {
		path += "?include=" + url.QueryEscape(include)
	}
	payload := map[string]interface{}{
		"data": map[string]interface{}{
			"type":         "flight-offers-pricing",
			"flightOffers": []interface{}{offer},
		},
	}
	return c.post(ctx, path, payload)
}

// TripPurpose predicts whether a round trip is business or leisure.
// GET /v1/travel/predictions/trip-purpose
func (c *Client) TripPurpose(ctx context.Context, origin, destination, departureDate, returnDate string) (Result, error) {
	params := url.Values{}
	params.Set("originLocationCode", origin)
	params.Set("destinationLocationCode", destination)
	params.Set("departureDate", departureDate)
	params.Set("returnDate", returnDate)
	return c.get(ctx, "/v1/travel/predictions/trip-purpose", params)
}
