package chat

// DefaultHistorySize is the number of recent messages kept for replay to
// newly connected clients.
const DefaultHistorySize = 100

// History is a bounded, insertion-ordered log of recent messages. When the
// capacity is exceeded the oldest entries are evicted, keeping the last N
// appended. Like Registry it is unsynchronized and owned by the Hub.
type History struct {
	capacity int
	messages []Message
}

// NewHistory returns an empty history bounded at capacity. Non-positive
// capacities fall back to DefaultHistorySize.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &History{
		capacity: capacity,
		messages: make([]Message, 0, capacity),
	}
}

// Append adds a message to the end of the log, evicting from the front when
// the capacity is exceeded.
func (h *History) Append(msg Message) {
	h.messages = append(h.messages, msg)
	if len(h.messages) > h.capacity {
		h.messages = h.messages[len(h.messages)-h.capacity:]
	}
}

// RenameAuthor rewrites the username on every stored message authored by
// userID and reports how many were touched. All other fields are left
// untouched; this is the retroactive relabel applied when a user renames.
func (h *History) RenameAuthor(userID, newUsername string) int {
	renamed := 0
	for i := range h.messages {
		if h.messages[i].UserID == userID {
			h.messages[i].Username = newUsername
			renamed++
		}
	}
	return renamed
}

// Snapshot returns a copy of the log, oldest first, for replay to a newly
// connected client.
func (h *History) Snapshot() []Message {
	out := make([]Message, len(h.messages))
	copy(out, h.messages)
	return out
}

// Len reports the number of stored messages.
func (h *History) Len() int {
	return len(h.messages)
}
