package queue

import "time"

// Activity event types.
const (
	UserRegistered      = "user.registered"
	UserPasswordChanged = "user.password_changed"
	ItemCreated         = "item.created"
	ItemCompleted       = "item.completed"
	ItemDeleted         = "item.deleted"
)

// Event is the activity record published after a successful mutation.
type Event struct {
	Type       string    `json:"type"`
	UserID     int64     `json:"user_id"`
	ItemID     int64     `json:"item_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEvent stamps an event with the current time.
func NewEvent(typ string, userID, itemID int64) Event {
	return Event{Type: typ, UserID: userID, ItemID: itemID, OccurredAt: time.Now().UTC()}
}
