package amadeus

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// HotelsByCity lists hotels in a city.
// GET /v1/reference-data/locations/hotels/by-city
func (c *Client) HotelsByCity(ctx context.Context, cityCode string) (Result, error) {
	params := url.Values{}
	params.Set("cityCode", cityCode)
	return c.get(ctx, "/v1/reference-data/locations/hotels/by-city", params)
}

// HotelOffersQuery holds the parameters for a hotel offers search.
type HotelOffersQuery struct {
	HotelIDs     []string
	CheckInDate  string
	CheckOutDate string
	Adults       int
}

// HotelOffers searches offers for a set of hotels.
// GET /v3/shopping/hotel-offers
func (c *Client) HotelOffers(ctx context.Context, q HotelOffersQuery) (Result, error) {
	params := url.Values{}
	params.Set("hotelIds", strings.Join(q.HotelIDs, ","))
	params.Set("checkInDate", q.CheckInDate)
	params.Set("checkOutDate", q.CheckOutDate)
	adults := q.Adults
	if adults <= 0 {
		adults = 1
	}
	params.Set("adults", strconv.Itoa(adults))
	return c.get(ctx, "/v3/shopping/hotel-offers", params)
}

// HotelOffersByHotel returns offers for a single hotel.
// GET /v3/shopping/hotel-offers with one hotel id
func (c *Client) HotelOffersByHotel(ctx context.Context, hotelID string) (Result, error) {
	params := url.Values{}
	params.Set("hotelIds", hotelID)
	return c.get(ctx, "/v3/shopping/hotel-offers", params)
}

// HotelRatings returns ratings and sentiment analysis for up to three
// hotels per request (Amadeus limit).
// GET /v2/e-reputation/hotel-sentiments
func (c *Client) HotelRatings(ctx context.Context, hotelIDs []string) (Result, error) {
	params := url.Values{}
	params.Set("hotelIds", strings.Join(hotelIDs, ","))
	return c.get(ctx, "/v2/e-reputation/hotel-sentiments", params)
}
