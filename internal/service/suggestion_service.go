package service

import (
	"context"
	"encoding/json"
	"fmt"

	"faq-management-be/internal/constant"
	"faq-management-be/internal/dto"
	"faq-management-be/internal/entity"
	"faq-management-be/internal/pkg/logger"
	"faq-management-be/pkg/gemini"
	"faq-management-be/pkg/store"
)

type ISuggestionService interface {
	// Suggest never returns an AI failure to the caller: transport, status
	// and parse errors all degrade to the no-change default.
	Suggest(ctx context.Context, session *store.Session, req *dto.SuggestRequest) (*dto.SuggestResponse, error)
}

type suggestionService struct {
	client *gemini.Client
	log    logger.ILogger
}

func NewSuggestionService(client *gemini.Client, log logger.ILogger) ISuggestionService {
	return &suggestionService{
		client: client,
		log:    log,
	}
}

func (s *suggestionService) Suggest(ctx context.Context, session *store.Session, req *dto.SuggestRequest) (*dto.SuggestResponse, error) {
	current := session.CurrentFaq
	if current == nil {
		return nil, ErrNoLoadedFaq
	}

	result := s.generate(ctx, req.UpdateContent, current)

	return &dto.SuggestResponse{
		NeedsUpdate:       result.NeedsUpdate,
		Reason:            result.Reason,
		SuggestedQuestion: result.SuggestedQuestion,
		SuggestedAnswer:   result.SuggestedAnswer,
		Category:          string(current.Category),
	}, nil
}

func (s *suggestionService) generate(ctx context.Context, updateContent string, current *entity.Faq) *entity.SuggestionResult {
	prompt := fmt.Sprintf(constant.SuggestionPromptTemplate, updateContent, current.Question, current.Answer)

	raw, err := s.client.Generate(ctx, prompt, &gemini.GenerationConfig{
		Temperature:      0.3,
		MaxOutputTokens:  1000,
		ResponseMimeType: "application/json",
	})
	if err != nil {
		s.log.Error("suggestion", "gemini call failed", map[string]interface{}{"error": err.Error()})
		return entity.NoChangeSuggestion(current, constant.SuggestionErrorReason)
	}

	var result entity.SuggestionResult
	if err := json.Unmarshal(gemini.StripMarkdownFences(raw), &result); err != nil {
		s.log.Error("suggestion", "gemini response parse failed", map[string]interface{}{"error": err.Error(), "raw": raw})
		return entity.NoChangeSuggestion(current, constant.SuggestionErrorReason)
	}
	// A structurally valid JSON object that is missing the suggested fields
	// degrades the same way as a parse failure.
	if result.SuggestedQuestion == "" {
		result.SuggestedQuestion = current.Question
	}
	if result.SuggestedAnswer == "" {
		result.SuggestedAnswer = current.Answer
	}
	return &result
}
