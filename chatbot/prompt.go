package chatbot

import (
	"fmt"

	"github.com/tripwise/tripwise/domain"
	"github.com/tripwise/tripwise/llm"
	"github.com/tripwise/tripwise/session"
)

const systemPromptTemplate = `You are a friendly travel-planning assistant with access to real-time flight, hotel and activity data through the Amadeus API.

Your goal is to help users plan their trips by:
1. Understanding their travel preferences (origin, destination, dates, number of travelers)
2. Searching for flights, hotels and activities using the available tools
3. Providing complete travel recommendations

Current conversation state:
- Origin airport: %s
- Destination airport: %s
- Departure date: %s
- Return date: %s
- Adults: %s
- Children: %s

When you need information such as flights or hotels, use the corresponding tools. Always be helpful and provide detailed, accurate information based on the API results.

Important: extract and remember trip details from the conversation to update the state.`

// buildMessages prepends the state-parameterized system message to the full
// session history. The caller holds the session lock.
func (s *Service) buildMessages(sess *session.Session) []llm.ChatMessage {
	system := llm.ChatMessage{
		Role: "system",
		Content: fmt.Sprintf(systemPromptTemplate,
			renderValue(sess.State[domain.KeyOriginAirport]),
			renderValue(sess.State[domain.KeyDestinationAirport]),
			renderValue(sess.State[domain.KeyDepartureDate]),
			renderValue(sess.State[domain.KeyReturnDate]),
			renderValue(sess.State[domain.KeyAdults]),
			renderValue(sess.State[domain.KeyChildren]),
		),
	}

	messages := make([]llm.ChatMessage, 0, len(sess.History)+1)
	messages = append(messages, system)
	messages = append(messages, sess.History...)
	return messages
}

func renderValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "unset"
	case string:
		if val == "" {
			return "unset"
		}
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}
