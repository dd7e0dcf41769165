package dto

type SuggestRequest struct {
	UpdateContent string `json:"update_content" validate:"required"`
}

type SuggestResponse struct {
	NeedsUpdate       bool   `json:"needs_update"`
	Reason            string `json:"reason"`
	SuggestedQuestion string `json:"suggested_question"`
	SuggestedAnswer   string `json:"suggested_answer"`
	Category          string `json:"category"`
}
