// internal/models/event.go
package models

import "encoding/json"

// Event is a customer's planned event as read from the event store.
type Event struct {
	ID           string   `json:"id"`
	CustomerID   string   `json:"customerId,omitempty"`
	EventType    string   `json:"eventType"`
	Requirements []string `json:"requirements"`
	Location     string   `json:"location"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
}

// UnmarshalJSON decodes an event and normalizes a missing requirements list to empty.
func (e *Event) UnmarshalJSON(data []byte) error {
	type alias Event
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if a.Requirements == nil {
		a.Requirements = []string{}
	}
	*e = Event(a)
	return nil
}
