package state

import (
	"sync"

	"github.com/tbourn/go-coach-backend/internal/domain"
	"github.com/tbourn/go-coach-backend/internal/utils"
)

// ConversationLog is the append-only transcript of the session.
type ConversationLog struct {
	mu   sync.RWMutex
	msgs []domain.Message
}

// NewConversationLog returns an empty transcript.
func NewConversationLog() *ConversationLog {
	return &ConversationLog{}
}

// Append adds msgs at the end of the transcript.
func (l *ConversationLog) Append(msgs ...domain.Message) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range msgs {
		l.msgs = append(l.msgs, m.Clone())
	}
}

// AppendPair appends a question and its reply under a single lock so readers
// never observe the question without its reply.
func (l *ConversationLog) AppendPair(user, assistant domain.Message) {
	l.Append(user, assistant)
}

// List returns a copy of the full transcript in chronological order.
func (l *ConversationLog) List() []domain.Message {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return cloneMessages(l.msgs)
}

// Page returns one 1-based page of the transcript, bounded by
// utils.PageBounds, plus the total transcript length. Pages past the end are
// empty.
func (l *ConversationLog) Page(page, pageSize int) ([]domain.Message, int) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	total := len(l.msgs)
	start, end := utils.PageBounds(page, pageSize, total)
	return cloneMessages(l.msgs[start:end]), total
}

// Last returns the most recent message.
func (l *ConversationLog) Last() (domain.Message, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if len(l.msgs) == 0 {
		return domain.Message{}, false
	}
	return l.msgs[len(l.msgs)-1].Clone(), true
}

// Len returns the number of messages.
func (l *ConversationLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.msgs)
}

// Load replaces the transcript with msgs.
func (l *ConversationLog) Load(msgs []domain.Message) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = cloneMessages(msgs)
}

// Reset empties the transcript.
func (l *ConversationLog) Reset() {
	l.Load(nil)
}

func cloneMessages(in []domain.Message) []domain.Message {
	out := make([]domain.Message, len(in))
	for i, m := range in {
		out[i] = m.Clone()
	}
	return out
}
