package history

import "time"

// Message is one transcript row.
type Message struct {
	ID         int64     `json:"id"`
	SessionID  string    `json:"session_id"`
	Seq        int       `json:"seq"`
	Role       string    `json:"role"`
	Name       string    `json:"name,omitempty"`
	ToolCallID string    `json:"tool_call_id,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}
