package entity

import "time"

type Category string

const (
	CategoryLogin   Category = "Login"
	CategoryPayment Category = "Payment"
	CategoryFeature Category = "Feature"
	CategoryTrouble Category = "Trouble"
	CategoryOther   Category = "Other"
)

// Categories lists every valid select option in display order.
var Categories = []Category{
	CategoryLogin,
	CategoryPayment,
	CategoryFeature,
	CategoryTrouble,
	CategoryOther,
}

// ParseCategory coerces free-form input into a known category. Unknown or
// empty values fall back to Other, matching the bulk-import default.
func ParseCategory(s string) Category {
	for _, c := range Categories {
		if string(c) == s {
			return c
		}
	}
	return CategoryOther
}

// Faq is one FAQ entry as stored in the Notion database.
//
// BusinessID is the human-facing identifier (normally a 4-digit zero-padded
// number assigned by the allocator, occasionally a free-form "FAQ_XXXXXXXX"
// ad-hoc id). PageID is the opaque Notion page id; it is empty until the
// record has been fetched from the store and is required for updates only.
type Faq struct {
	PageID      string    `json:"page_id,omitempty"`
	BusinessID  string    `json:"faq_id"`
	Question    string    `json:"question"`
	Answer      string    `json:"answer"`
	Category    Category  `json:"category"`
	LastUpdated time.Time `json:"last_updated"`
}
