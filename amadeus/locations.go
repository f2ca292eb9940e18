package amadeus

import (
	"context"
	"net/url"
	"strings"
)

// SearchLocations searches airports and cities by keyword.
// GET /v1/reference-data/locations
func (c *Client) SearchLocations(ctx context.Context, keyword string, subTypes []string) (Result, error) {
	params := url.Values{}
	params.Set("keyword", keyword)
	if len(subTypes) > 0 {
		params.Set("subType", strings.Join(subTypes, ","))
	} else {
		params.Set("subType", "AIRPORT,CITY")
	}
	return c.get(ctx, "/v1/reference-data/locations", params)
}

// AirportRoutes returns all direct destinations from a departure airport.
// GET /v1/airport/direct-destinations
func (c *Client) AirportRoutes(ctx context.Context, departureAirportCode string) (Result, error) {
	params := url.Values{}
	params.Set("departureAirportCode", departureAirportCode)
	return c.get(ctx, "/v1/airport/direct-destinations", params)
}

// AirlineRoutes returns all destinations served by an airline.
// GET /v1/airline/destinations
func (c *Client) AirlineRoutes(ctx context.Context, airlineCode string) (Result, error) {
	params := url.Values{}
	params.Set("airlineCode", airlineCode)
	return c.get(ctx, "/v1/airline/destinations", params)
}
