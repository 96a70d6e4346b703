package kafka

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TopicPrefix is the prefix shared by all storefront topics.
const TopicPrefix = "comicverse"

// Topic joins the prefix and parts with dots: Topic("cart", "badge") is
// "comicverse.cart.badge".
func Topic(parts ...string) string {
	return strings.Join(append([]string{TopicPrefix}, parts...), ".")
}

// Event is the JSON value of every storefront message. Key is also the Kafka
// message key, so events for one profile land on one partition in order.
type Event struct {
	ID            string          `json:"event_id"`
	Type          string          `json:"event_type"`
	Key           string          `json:"key"`
	Source        string          `json:"source"`
	SchemaVersion int             `json:"schema_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent stamps a payload with a fresh id and the current UTC time.
func NewEvent(eventType, key, source string, data any) (*Event, error) {
	if eventType == "" || key == "" {
		return nil, errors.New("event type and key are required")
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return &Event{
		ID:            uuid.NewString(),
		Type:          eventType,
		Key:           key,
		Source:        source,
		SchemaVersion: 1,
		OccurredAt:    time.Now().UTC(),
		Data:          payload,
	}, nil
}

// WithCorrelationID ties the event to the request that caused it.
func (e *Event) WithCorrelationID(id string) *Event {
	e.CorrelationID = id
	return e
}

func (e *Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// DecodeData unmarshals the payload into target.
func (e *Event) DecodeData(target any) error {
	if err := json.Unmarshal(e.Data, target); err != nil {
		return fmt.Errorf("decode %s payload: %w", e.Type, err)
	}
	return nil
}
