package events

import "time"

// Topic is the single in-process channel the audit consumer subscribes to.
const Topic = "FAQ_AUDIT_EVENTS"

const (
	TypeFaqCreated      = "FAQ_CREATED"
	TypeFaqUpdated      = "FAQ_UPDATED"
	TypeImportCompleted = "FAQ_IMPORT_COMPLETED"
)

// AuditEvent is the payload published after every successful write to the
// FAQ store. It is consumed by the audit trail, never by request handlers.
type AuditEvent struct {
	Type       string                 `json:"type"`
	Actor      string                 `json:"actor"` // email of the session user
	OccurredAt time.Time              `json:"occurred_at"`
	Details    map[string]interface{} `json:"details"`
}

func FaqCreated(actor, businessID string) *AuditEvent {
	return &AuditEvent{
		Type:       TypeFaqCreated,
		Actor:      actor,
		OccurredAt: time.Now(),
		Details:    map[string]interface{}{"faq_id": businessID},
	}
}

func FaqUpdated(actor, businessID, pageID string) *AuditEvent {
	return &AuditEvent{
		Type:       TypeFaqUpdated,
		Actor:      actor,
		OccurredAt: time.Now(),
		Details:    map[string]interface{}{"faq_id": businessID, "page_id": pageID},
	}
}

func ImportCompleted(actor string, succeeded, total int) *AuditEvent {
	return &AuditEvent{
		Type:       TypeImportCompleted,
		Actor:      actor,
		OccurredAt: time.Now(),
		Details:    map[string]interface{}{"succeeded": succeeded, "total": total},
	}
}
