// Package domain defines the core domain models for the travel chatbot.
package domain

// Well-known workflow state keys. Unknown keys are permitted and passed
// through untouched.
const (
	KeyOriginAirport       = "origin_airport"
	KeyDestinationAirport  = "destination_airport"
	KeyDepartureDate       = "departure_date"
	KeyReturnDate          = "return_date"
	KeyAdults              = "adults"
	KeyChildren            = "children"
	KeyFlightSelection     = "flight_selection"
	KeyHotelSelection      = "hotel_selection"
	KeyActivitiesSelection = "activities_selection"
	KeyItinerary           = "itinerary"
	KeyProgressStage       = "progress_stage"
)

// StageInitial is the progress stage of a freshly created session.
const StageInitial = "initial"

// WorkflowState is the structured record of trip-planning facts for one
// session. Always JSON-serializable.
type WorkflowState map[string]interface{}

// DefaultWorkflowState returns the state of a new session: all known keys
// present but unset, progress stage "initial".
func DefaultWorkflowState() WorkflowState {
	return WorkflowState{
		KeyOriginAirport:       nil,
		KeyDestinationAirport:  nil,
		KeyDepartureDate:       nil,
		KeyReturnDate:          nil,
		KeyAdults:              nil,
		KeyChildren:            nil,
		KeyFlightSelection:     nil,
		KeyHotelSelection:      nil,
		KeyActivitiesSelection: []interface{}{},
		KeyItinerary:           nil,
		KeyProgressStage:       StageInitial,
	}
}

// Clone returns a shallow copy of the state.
func (s WorkflowState) Clone() WorkflowState {
	out := make(WorkflowState, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Merge overwrites the given keys, last write wins; other keys are kept.
func (s WorkflowState) Merge(updates map[string]interface{}) {
	for k, v := range updates {
		s[k] = v
	}
}

// Summary is the compact projection of a workflow state served by the
// summary endpoint.
type Summary struct {
	SessionID          string      `json:"session_id"`
	ProgressStage      interface{} `json:"progress_stage"`
	OriginAirport      interface{} `json:"origin_airport"`
	DestinationAirport interface{} `json:"destination_airport"`
	DepartureDate      interface{} `json:"departure_date"`
	ReturnDate         interface{} `json:"return_date"`
	Adults             interface{} `json:"adults"`
	Children           interface{} `json:"children"`
	FlightSelected     bool        `json:"flight_selected"`
	HotelSelected      bool        `json:"hotel_selected"`
	ActivitiesCount    int         `json:"activities_count"`
	ItineraryDefined   bool        `json:"itinerary_defined"`
}

// Summarize derives the compact projection for a session.
func (s WorkflowState) Summarize(sessionID string) Summary {
	activities := 0
	if list, ok := s[KeyActivitiesSelection].([]interface{}); ok {
		activities = len(list)
	}
	return Summary{
		SessionID:          sessionID,
		ProgressStage:      s[KeyProgressStage],
		OriginAirport:      s[KeyOriginAirport],
		DestinationAirport: s[KeyDestinationAirport],
		DepartureDate:      s[KeyDepartureDate],
		ReturnDate:         s[KeyReturnDate],
		Adults:             s[KeyAdults],
		Children:           s[KeyChildren],
		FlightSelected:     isSet(s[KeyFlightSelection]),
		HotelSelected:      isSet(s[KeyHotelSelection]),
		ActivitiesCount:    activities,
		ItineraryDefined:   isSet(s[KeyItinerary]),
	}
}

func isSet(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case map[string]interface{}:
		return len(val) > 0
	case []interface{}:
		return len(val) > 0
	default:
		return true
	}
}
