package dispatcher

import "encoding/json"

// Event types handled by the dispatcher.
const (
	EventTypeMessage = "message"
	EventTypeFollow  = "follow"
)

// Payload is the webhook request body. Events stay raw so one malformed event
// does not reject the batch.
type Payload struct {
	Destination string            `json:"destination,omitempty"`
	Events      []json.RawMessage `json:"events"`
}

// Event is one inbound webhook event.
type Event struct {
	Type            string           `json:"type"`
	ReplyToken      string           `json:"replyToken,omitempty"`
	WebhookEventID  string           `json:"webhookEventId,omitempty"`
	Timestamp       int64            `json:"timestamp,omitempty"`
	Source          Source           `json:"source"`
	Message         *Message         `json:"message,omitempty"`
	DeliveryContext *DeliveryContext `json:"deliveryContext,omitempty"`
}

// Source identifies who sent the event.
type Source struct {
	Type   string `json:"type,omitempty"`
	UserID string `json:"userId,omitempty"`
}

// Message is the message body of a message event. Text is empty for non-text messages.
type Message struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type,omitempty"`
	Text string `json:"text,omitempty"`
}

// DeliveryContext tells whether the platform is redelivering the event.
type DeliveryContext struct {
	IsRedelivery bool `json:"isRedelivery"`
}

// Text returns the message text, or "" when the event carries none.
func (e Event) Text() string {
	if e.Message == nil {
		return ""
	}
	return e.Message.Text
}

// Stats summarizes one handled batch.
type Stats struct {
	Events      int `json:"events"`
	Malformed   int `json:"malformed"`
	Redelivered int `json:"redelivered"`
	Replies     int `json:"replies"`
	SaveErrors  int `json:"saveErrors"`
}
