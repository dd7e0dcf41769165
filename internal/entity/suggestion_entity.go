package entity

// SuggestionResult is the structured verdict of the generative-language call:
// whether the loaded FAQ needs revising for a given batch of release notes,
// and if so, the proposed replacement text.
type SuggestionResult struct {
	NeedsUpdate       bool   `json:"needs_update"`
	Reason            string `json:"reason"`
	SuggestedQuestion string `json:"suggested_question"`
	SuggestedAnswer   string `json:"suggested_answer"`
}

// NoChangeSuggestion is the safe default returned whenever the AI call or its
// response parsing fails. The suggested fields echo the current record so the
// caller can always proceed without branching on the error type.
func NoChangeSuggestion(current *Faq, reason string) *SuggestionResult {
	return &SuggestionResult{
		NeedsUpdate:       false,
		Reason:            reason,
		SuggestedQuestion: current.Question,
		SuggestedAnswer:   current.Answer,
	}
}
