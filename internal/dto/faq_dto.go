package dto

import "time"

type AddFaqRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
	Category string `json:"category"`
}

type AddFaqResponse struct {
	FaqID string `json:"faq_id"`
}

type NextIDResponse struct {
	NextID string `json:"next_id"`
}

type FaqResponse struct {
	FaqID       string    `json:"faq_id"`
	Question    string    `json:"question"`
	Answer      string    `json:"answer"`
	Category    string    `json:"category"`
	LastUpdated time.Time `json:"last_updated"`
}

type UpdateFaqRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
	Category string `json:"category"`
}

// ImportResult reports a best-effort batch pass: rows that failed are
// counted, not rolled back.
type ImportResult struct {
	Succeeded int `json:"succeeded"`
	Total     int `json:"total"`
}
