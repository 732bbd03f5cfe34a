package dialog

import (
	"sync"

	"VoiceBot/internal/entity"
)

const DefaultHistorySize = 10

// History is a fixed capacity ring of turns. When full, appending drops the
// oldest turn.
type History struct {
	mu    sync.Mutex
	turns []entity.ConversationTurn
	start int
	size  int
}

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &History{turns: make([]entity.ConversationTurn, capacity)}
}

func (h *History) Append(turn entity.ConversationTurn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	capacity := len(h.turns)
	if h.size < capacity {
		h.turns[(h.start+h.size)%capacity] = turn
		h.size++
		return
	}

	h.turns[h.start] = turn
	h.start = (h.start + 1) % capacity
}

// Snapshot returns a copy, oldest turn first.
func (h *History) Snapshot() []entity.ConversationTurn {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]entity.ConversationTurn, h.size)
	for i := 0; i < h.size; i++ {
		out[i] = h.turns[(h.start+i)%len(h.turns)]
	}
	return out
}

func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	clear(h.turns)
	h.start = 0
	h.size = 0
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.size
}

func (h *History) Cap() int {
	return len(h.turns)
}
