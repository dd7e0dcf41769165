package store

import "faq-management-be/internal/entity"

// Session is the ephemeral per-user state held in memory between requests.
// It is created at login, mutated by search/update actions and discarded at
// logout or expiry. Nothing in it is persisted.
type Session struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Authenticated bool   `json:"authenticated"`

	// CurrentFaq is the record loaded by update-search, including its Notion
	// page id. A successful update clears it, forcing a fresh search before
	// any further update.
	CurrentFaq *entity.Faq `json:"current_faq,omitempty"`
}
