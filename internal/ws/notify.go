package ws

import (
	"encoding/json"
	"time"
)

const (
	EventApplicationReceived = "application_received"
	EventContactReceived     = "contact_received"
)

// Event is the payload pushed to the admin dashboard when a visitor
// submits something.
type Event struct {
	Type      string `json:"type"`
	ID        string `json:"id"`
	Title     string `json:"title"`
	Timestamp string `json:"timestamp"`
}

func NewEvent(typ, id, title string, at time.Time) Event {
	return Event{
		Type:      typ,
		ID:        id,
		Title:     title,
		Timestamp: at.UTC().Format(time.RFC3339),
	}
}

// Publish encodes evt and broadcasts it. A nil hub is a no-op.
func (h *Hub) Publish(evt Event) {
	if h == nil {
		return
	}
	b, err := json.Marshal(evt)
	if err != nil {
		h.logf("[Feed] encode event failed type=%s err=%v", evt.Type, err)
		return
	}
	h.Broadcast(b)
}
