package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "DOCUMENT_INGESTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the common implementation embedded by concrete events.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewDocumentIngestedEvent is emitted after a document has been chunked,
// embedded and stored.
func NewDocumentIngestedEvent(source string, chunks int) Event {
	return BaseEvent{
		Type: "DOCUMENT_INGESTED",
		Data: map[string]interface{}{
			"source": source,
			"chunks": chunks,
		},
		OccurredAt: time.Now(),
	}
}

// NewTestCasesGeneratedEvent is emitted after a generation round completes.
func NewTestCasesGeneratedEvent(query string, count int, fallback bool) Event {
	return BaseEvent{
		Type: "TEST_CASES_GENERATED",
		Data: map[string]interface{}{
			"query":    query,
			"count":    count,
			"fallback": fallback,
		},
		OccurredAt: time.Now(),
	}
}

// NewScriptGeneratedEvent is emitted after an automation script has been
// generated and validated.
func NewScriptGeneratedEvent(testID string, valid bool) Event {
	return BaseEvent{
		Type: "SCRIPT_GENERATED",
		Data: map[string]interface{}{
			"test_id": testID,
			"valid":   valid,
		},
		OccurredAt: time.Now(),
	}
}
