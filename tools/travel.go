package tools

import (
	"context"
	"encoding/json"

	"github.com/tripwise/tripwise/amadeus"
	"github.com/tripwise/tripwise/llm"
)

// NewRegistry builds the travel tool registry over the Amadeus client.
// Registration is validated here so a misconfigured tool set is caught at
// startup rather than on the first dispatch.
func NewRegistry(provider *amadeus.Client) (*Registry, error) {
	r := newRegistry()

	regs := []struct {
		def llm.Tool
		run Handler
	}{
		{airportCitySearchDef, airportCitySearch(provider)},
		{flightOffersSearchDef, flightOffersSearch(provider)},
		{flightInspirationDef, flightInspiration(provider)},
		{flightCheapestDateDef, flightCheapestDate(provider)},
		{flightOffersPriceDef, flightOffersPrice(provider)},
		{airportDirectDestinationsDef, airportDirectDestinations(provider)},
		{airlineDestinationsDef, airlineDestinations(provider)},
		{hotelListDef, hotelList(provider)},
		{hotelSearchDef, hotelSearch(provider)},
		{hotelOffersByHotelDef, hotelOffersByHotel(provider)},
		{hotelRatingsDef, hotelRatings(provider)},
		{toursAndActivitiesDef, toursAndActivities(provider)},
		{toursAndActivitiesBySquareDef, toursAndActivitiesBySquare(provider)},
		{activityDetailsDef, activityDetails(provider)},
		{tripPurposeDef, tripPurpose(provider)},
	}

	for _, reg := range regs {
		if err := r.register(reg.def, reg.run); err != nil {
			return nil, err
		}
	}

	return r, nil
}

var airportCitySearchDef = fn("airport_city_search",
	"Search for airports and cities by keyword. Use this to find airport codes.",
	obj(map[string]interface{}{
		"keyword": str("Search keyword (city name, airport name, etc.)"),
		"subType": strEnum("Optional: Filter by type (AIRPORT, CITY)", "AIRPORT", "CITY"),
	}, "keyword"))

func airportCitySearch(p *amadeus.Client) Handler {
	return func(ctx context.Context, args json.RawMessage) (interface{}, error) {
		var params struct {
			Keyword string `json:"keyword"`
			SubType string `json:"subType"`
		}
		if err := decode(args, &params); err != nil {
			return nil, err
		}
		var subTypes []string
		if params.SubType != "" {
			subTypes = []string{params.SubType}
		}
		return p.SearchLocations(ctx, params.Keyword, subTypes)
	}
}

var flightOffersSearchDef = fn("flight_offers_search",
	"Search for flight offers between two locations.",
	obj(map[string]interface{}{
		"originLocationCode":      str("Origin airport IATA code (e.g., JFK)"),
		"destinationLocationCode": str("Destination airport IATA code (e.g., LAX)"),
		"departureDate":           str("Departure date in YYYY-MM-DD format"),
		"adults":                  integer("Number of adult travelers"),
		"returnDate":              str("Optional: Return date in YYYY-MM-DD format"),
		"children":                integer("Optional: Number of children"),
		"travelClass":             strEnum("Optional: Travel class", "ECONOMY", "PREMIUM_ECONOMY", "BUSINESS", "FIRST"),
	}, "originLocationCode", "destinationLocationCode", "departureDate", "adults"))

func flightOffersSearch(p *amadeus.Client) Handler {
	return func(ctx context.Context, args json.RawMessage) (interface{}, error) {
		var params struct {
			OriginLocationCode      string `json:"originLocationCode"`
			DestinationLocationCode string `json:"destinationLocationCode"`
			DepartureDate           string `json:"departureDate"`
			Adults                  int    `json:"adults"`
			ReturnDate              string `json:"returnDate"`
			Children                int    `json:"children"`
			Infants                 int    `json:"infants"`
			TravelClass             string `json:"travelClass"`
			NonStop                 bool   `json:"nonStop"`
			CurrencyCode            string `json:"currencyCode"`
			Max                     int    `json:"max"`
		}
		if err := decode(args, &params); err != nil {
			return nil, err
		}
		return p.FlightOffers(ctx, amadeus.FlightOffersQuery{
			Origin:        params.OriginLocationCode,
			Destination:   params.DestinationLocationCode,
			DepartureDate: params.DepartureDate,
			ReturnDate:    params.ReturnDate,
			Adults:        params.Adults,
			Children:      params.Children,
			Infants:       params.Infants,
			TravelClass:   params.TravelClass,
			NonStop:       params.NonStop,
			Currency:      params.CurrencyCode,
			Max:           params.Max,
		})
	}
}

var flightInspirationDef = fn("flight_inspiration_search",
	"Get inspirational flight destinations from an origin.",
	obj(map[string]interface{}{
		"origin": str("Origin airport IATA code"),
	}, "origin"))

func flightInspiration(p *amadeus.Client) Handler {
	return func(ctx context.Context, args json.RawMessage) (interface{}, error) {
		var params struct {
			Origin string `json:"origin"`
		}
		if err := decode(args, &params); err != nil {
			return nil, err
		}
		return p.FlightInspiration(ctx, params.Origin)
	}
}

var flightCheapestDateDef = fn("flight_cheapest_date_search",
	"Find the cheapest dates to fly between two locations.",
	obj(map[string]interface{}{
		"origin":      str("Origin airport IATA code"),
		"destination": str("Destination airport IATA code"),
	}, "origin", "destination"))

func flightCheapestDate(p *amadeus.Client) Handler {
	return func(ctx context.Context, args json.RawMessage) (interface{}, error) {
		var params struct {
			Origin      string `json:"origin"`
			Destination string `json:"destination"`
		}
		if err := decode(args, &params); err != nil {
			return nil, err
		}
		return p.FlightCheapestDates(ctx, params.Origin, params.Destination)
	}
}

var flightOffersPriceDef = fn("flight_offers_price",
	"Get confirmed pricing for a specific flight offer.",
	obj(map[string]interface{}{
		"flight_offer": objParam("Flight offer object from flight_offers_search"),
		"include":      str("Optional fields to include in response"),
	}, "flight_offer"))

func flightOffersPrice(p *amadeus.Client) Handler {
	return func(ctx context.Context, args json.RawMessage) (interface{}, error) {
		var params struct {
			FlightOffer map[string]interface{} `json:"flight_offer"`
			Include     string                 `json:"include"`
		}
		if err := decode(args, &params); err != nil {
			return nil, err
		}
		return p.PriceFlightOffer(ctx, params.FlightOffer, params.Include)
	}
}

var airportDirectDestinationsDef = fn("airport_direct_destinations",
	"Get all direct destinations from a departure airport.",
	obj(map[string]interface{}{
		"departureAirportCode": str("Departure airport IATA code"),
	}, "departureAirportCode"))

func airportDirectDestinations(p *amadeus.Client) Handler {
	return func(ctx context.Context, args json.RawMessage) (interface{}, error) {
		var params struct {
			DepartureAirportCode string `json:"departureAirportCode"`
		}
		if err := decode(args, &params); err != nil {
			return nil, err
		}
		return p.AirportRoutes(ctx, params.DepartureAirportCode)
	}
}

var airlineDestinationsDef = fn("airline_destinations",
	"Get all destinations served by an airline.",
	obj(map[string]interface{}{
		"airlineCode": str("Airline IATA code (e.g., AA)"),
	}, "airlineCode"))

func airlineDestinations(p *amadeus.Client) Handler {
	return func(ctx context.Context, args json.RawMessage) (interface{}, error) {
		var params struct {
			AirlineCode string `json:"airlineCode"`
		}
		if err := decode(args, &params); err != nil {
			return nil, err
		}
		return p.AirlineRoutes(ctx, params.AirlineCode)
	}
}

var hotelListDef = fn("hotel_list",
	"Get list of hotels in a city.",
	obj(map[string]interface{}{
		"cityCode": str("IATA city code (e.g., PAR for Paris)"),
	}, "cityCode"))

func hotelList(p *amadeus.Client) Handler {
	return func(ctx context.Context, args json.RawMessage) (interface{}, error) {
		var params struct {
			CityCode string `json:"cityCode"`
		}
		if err := decode(args, &params); err != nil {
			return nil, err
		}
		return p.HotelsByCity(ctx, params.CityCode)
	}
}

var hotelSearchDef = fn("hotel_search",
	"Search for hotel offers.",
	obj(map[string]interface{}{
		"hotelIds":     strArray("Array of hotel IDs"),
		"checkInDate":  str("Check-in date in YYYY-MM-DD format"),
		"checkOutDate": str("Check-out date in YYYY-MM-DD format"),
		"adults":       integer("Number of adults"),
	}, "hotelIds", "checkInDate", "checkOutDate", "adults"))

func hotelSearch(p *amadeus.Client) Handler {
	return func(ctx context.Context, args json.RawMessage) (interface{}, error) {
		var params struct {
			HotelIDs     []string `json:"hotelIds"`
			CheckInDate  string   `json:"checkInDate"`
			CheckOutDate string   `json:"checkOutDate"`
			Adults       int      `json:"adults"`
		}
		if err := decode(args, &params); err != nil {
			return nil, err
		}
		return p.HotelOffers(ctx, amadeus.HotelOffersQuery{
			HotelIDs:     params.HotelIDs,
			CheckInDate:  params.CheckInDate,
			CheckOutDate: params.CheckOutDate,
			Adults:       params.Adults,
		})
	}
}

var hotelOffersByHotelDef = fn("hotel_offers_by_hotel",
	"Get offers for a specific hotel.",
	obj(map[string]interface{}{
		"hotelId": str("Hotel ID"),
	}, "hotelId"))

func hotelOffersByHotel(p *amadeus.Client) Handler {
	return func(ctx context.Context, args json.RawMessage) (interface{}, error) {
		var params struct {
			HotelID string `json:"hotelId"`
		}
		if err := decode(args, &params); err != nil {
			return nil, err
		}
		return p.HotelOffersByHotel(ctx, params.HotelID)
	}
}

var hotelRatingsDef = fn("hotel_ratings",
	"Get hotel ratings and sentiment analysis.",
	obj(map[string]interface{}{
		"hotelIds": strArray("Array of hotel IDs (max 3)"),
	}, "hotelIds"))

func hotelRatings(p *amadeus.Client) Handler {
	return func(ctx context.Context, args json.RawMessage) (interface{}, error) {
		var params struct {
			HotelIDs []string `json:"hotelIds"`
		}
		if err := decode(args, &params); err != nil {
			return nil, err
		}
		return p.HotelRatings(ctx, params.HotelIDs)
	}
}

var toursAndActivitiesDef = fn("tours_and_activities",
	"Search for tours and activities by coordinates.",
	obj(map[string]interface{}{
		"latitude":  number("Latitude coordinate"),
		"longitude": number("Longitude coordinate"),
		"radius":    number("Search radius in km (default: 1)"),
	}, "latitude", "longitude"))

func toursAndActivities(p *amadeus.Client) Handler {
	return func(ctx context.Context, args json.RawMessage) (interface{}, error) {
		var params struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Radius    float64 `json:"radius"`
		}
		if err := decode(args, &params); err != nil {
			return nil, err
		}
		return p.Activities(ctx, params.Latitude, params.Longitude, int(params.Radius))
	}
}

var toursAndActivitiesBySquareDef = fn("tours_and_activities_by_square",
	"Search for tours and activities by bounding box.",
	obj(map[string]interface{}{
		"north": number("North boundary"),
		"west":  number("West boundary"),
		"south": number("South boundary"),
		"east":  number("East boundary"),
	}, "north", "west", "south", "east"))

func toursAndActivitiesBySquare(p *amadeus.Client) Handler {
	return func(ctx context.Context, args json.RawMessage) (interface{}, error) {
		var params struct {
			North float64 `json:"north"`
			West  float64 `json:"west"`
			South float64 `json:"south"`
			East  float64 `json:"east"`
		}
		if err := decode(args, &params); err != nil {
			return nil, err
		}
		return p.ActivitiesBySquare(ctx, params.North, params.West, params.South, params.East)
	}
}

var activityDetailsDef = fn("get_activity_details",
	"Get details of a specific activity.",
	obj(map[string]interface{}{
		"activityId": str("Activity ID"),
	}, "activityId"))

func activityDetails(p *amadeus.Client) Handler {
	return func(ctx context.Context, args json.RawMessage) (interface{}, error) {
		var params struct {
			ActivityID string `json:"activityId"`
		}
		if err := decode(args, &params); err != nil {
			return nil, err
		}
		return p.ActivityByID(ctx, params.ActivityID)
	}
}

var tripPurposeDef = fn("trip_purpose_prediction",
	"Predict the purpose of a trip (business or leisure).",
	obj(map[string]interface{}{
		"originLocationCode":      str("Origin airport IATA code"),
		"destinationLocationCode": str("Destination airport IATA code"),
		"departureDate":           str("Departure date in YYYY-MM-DD format"),
		"returnDate":              str("Return date in YYYY-MM-DD format"),
	}, "originLocationCode", "destinationLocationCode", "departureDate", "returnDate"))

func tripPurpose(p *amadeus.Client) Handler {
	return func(ctx context.Context, args json.RawMessage) (interface{}, error) {
		var params struct {
			OriginLocationCode      string `json:"originLocationCode"`
			DestinationLocationCode string `json:"destinationLocationCode"`
			DepartureDate           string `json:"departureDate"`
			ReturnDate              string `json:"returnDate"`
		}
		if err := decode(args, &params); err != nil {
			return nil, err
		}
		return p.TripPurpose(ctx, params.OriginLocationCode, params.DestinationLocationCode,
			params.DepartureDate, params.ReturnDate)
	}
}
