package domain

import (
	"strings"
	"time"
)

// ChangeEvent is what the marketplace backend publishes on the change stream
// whenever vendor-visible data mutates. The gateway turns it into room pushes.
type ChangeEvent struct {
	Domain    string      `json:"domain"`
	Action    string      `json:"action"`
	ScopeID   string      `json:"scopeId"`
	Kind      string      `json:"kind,omitempty"`
	SubjectID string      `json:"subjectId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// IsBroadcast reports whether the event is a cross-entity notice that must be
// relayed verbatim instead of folded into a domain snapshot.
func (e *ChangeEvent) IsBroadcast() bool {
	return KnownBroadcastKind(strings.TrimSpace(e.Kind))
}

// Normalize trims identifiers and stamps the event when the producer left the
// timestamp empty.
func (e *ChangeEvent) Normalize(now time.Time) {
	e.Domain = strings.ToLower(strings.TrimSpace(e.Domain))
	e.Action = strings.ToLower(strings.TrimSpace(e.Action))
	e.ScopeID = strings.TrimSpace(e.ScopeID)
	e.Kind = strings.TrimSpace(e.Kind)
	e.SubjectID = strings.TrimSpace(e.SubjectID)
	if e.Timestamp.IsZero() {
		e.Timestamp = now.UTC()
	}
}
