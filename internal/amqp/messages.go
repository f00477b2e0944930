package amqp

import (
	"encoding/json"
	"time"
)

// Operations carried by ExpenseEventMessage.
const (
	OpCreated = "created"
	OpUpdated = "updated"
	OpDeleted = "deleted"
)

// ExpenseEventMessage announces a change to an expense. It only carries the
// ID; consumers read current state through the API.
type ExpenseEventMessage struct {
	ID        int64     `json:"id"`
	Op        string    `json:"op"`
	Timestamp time.Time `json:"timestamp"`
}

// NewExpenseEventMessage creates a new event message stamped with the current time
func NewExpenseEventMessage(id int64, op string) *ExpenseEventMessage {
	return &ExpenseEventMessage{
		ID:        id,
		Op:        op,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ExpenseEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
