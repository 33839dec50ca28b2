package domain

import "time"

// Role identifies the author of a transcript message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single transcript entry. Assistant messages carry the
// filenames of the chunks that informed them (in ranking order, duplicates
// kept) and whether the coaching settings were applied. UsedPersonalization
// is nil on the fallback reply produced after a failed completion.
type Message struct {
	Role                Role      `json:"role"`
	Content             string    `json:"content"`
	Timestamp           time.Time `json:"timestamp"`
	SourceDocs          []string  `json:"source_docs,omitempty"`
	UsedPersonalization *bool     `json:"used_personalization,omitempty"`
}

// DisplaySources returns SourceDocs with duplicates removed, keeping the
// first occurrence of each filename. The stored slice is not modified.
func (m Message) DisplaySources() []string {
	if len(m.SourceDocs) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(m.SourceDocs))
	out := make([]string, 0, len(m.SourceDocs))
	for _, f := range m.SourceDocs {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// Clone returns a copy of m that shares no memory with it.
func (m Message) Clone() Message {
	out := m
	if m.SourceDocs != nil {
		out.SourceDocs = append([]string(nil), m.SourceDocs...)
	}
	if m.UsedPersonalization != nil {
		v := *m.UsedPersonalization
		out.UsedPersonalization = &v
	}
	return out
}
