package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"faq-management-be/internal/constant"
	"faq-management-be/internal/dto"
	"faq-management-be/internal/entity"
	"faq-management-be/pkg/gemini"
	"faq-management-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiResponse(text string) string {
	b, _ := json.Marshal(map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"parts": []map[string]string{{"text": text}},
				"role":  "model",
			}},
		},
	})
	return string(b)
}

func sessionWithFaq() *store.Session {
	return &store.Session{
		ID:            "sid-1",
		Email:         "user@dai.co.jp",
		Authenticated: true,
		CurrentFaq: &entity.Faq{
			PageID:     "page-abc",
			BusinessID: "0006",
			Question:   "How do I log in?",
			Answer:     "Use SSO.",
			Category:   entity.CategoryLogin,
		},
	}
}

func newSuggestionServiceFor(srvURL string) ISuggestionService {
	client := gemini.NewClient("test-key", "gemini-2.5-pro", srvURL)
	return NewSuggestionService(client, nopLogger{})
}

func TestSuggestParsesStructuredVerdict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models/gemini-2.5-pro:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req gemini.GenerateRequest
		json.NewDecoder(r.Body).Decode(&req)
		require.NotNil(t, req.GenerationConfig)
		assert.Equal(t, 0.3, req.GenerationConfig.Temperature)
		assert.Equal(t, 1000, req.GenerationConfig.MaxOutputTokens)
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMimeType)

		fmt.Fprint(w, geminiResponse(`{"needs_update": true, "reason": "SSO replaced by passkeys", "suggested_question": "How do I sign in?", "suggested_answer": "Use a passkey."}`))
	}))
	defer srv.Close()

	svc := newSuggestionServiceFor(srv.URL)
	res, err := svc.Suggest(context.Background(), sessionWithFaq(), &dto.SuggestRequest{UpdateContent: "We replaced SSO with passkeys."})

	require.NoError(t, err)
	assert.True(t, res.NeedsUpdate)
	assert.Equal(t, "SSO replaced by passkeys", res.Reason)
	assert.Equal(t, "How do I sign in?", res.SuggestedQuestion)
	assert.Equal(t, "Use a passkey.", res.SuggestedAnswer)
	assert.Equal(t, "Login", res.Category)
}

func TestSuggestTrimsMarkdownFences(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, geminiResponse("```json\n{\"needs_update\": false, \"reason\": \"still accurate\", \"suggested_question\": \"How do I log in?\", \"suggested_answer\": \"Use SSO.\"}\n```"))
	}))
	defer srv.Close()

	svc := newSuggestionServiceFor(srv.URL)
	res, err := svc.Suggest(context.Background(), sessionWithFaq(), &dto.SuggestRequest{UpdateContent: "minor release"})

	require.NoError(t, err)
	assert.False(t, res.NeedsUpdate)
	assert.Equal(t, "still accurate", res.Reason)
}

func TestSuggestParseFailureDegradesToNoChange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, geminiResponse("Sorry, I cannot answer in JSON today."))
	}))
	defer srv.Close()

	session := sessionWithFaq()
	svc := newSuggestionServiceFor(srv.URL)
	res, err := svc.Suggest(context.Background(), session, &dto.SuggestRequest{UpdateContent: "big release"})

	// The parse error never propagates; the result is an idempotent no-op.
	require.NoError(t, err)
	assert.False(t, res.NeedsUpdate)
	assert.Equal(t, constant.SuggestionErrorReason, res.Reason)
	assert.Equal(t, session.CurrentFaq.Question, res.SuggestedQuestion)
	assert.Equal(t, session.CurrentFaq.Answer, res.SuggestedAnswer)
}

func TestSuggestRemoteFailureDegradesToNoChange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": "quota exceeded"}`))
	}))
	defer srv.Close()

	session := sessionWithFaq()
	svc := newSuggestionServiceFor(srv.URL)
	res, err := svc.Suggest(context.Background(), session, &dto.SuggestRequest{UpdateContent: "big release"})

	require.NoError(t, err)
	assert.False(t, res.NeedsUpdate)
	assert.Equal(t, constant.SuggestionErrorReason, res.Reason)
	assert.Equal(t, session.CurrentFaq.Question, res.SuggestedQuestion)
	assert.Equal(t, session.CurrentFaq.Answer, res.SuggestedAnswer)
}

func TestSuggestWithoutLoadedFaq(t *testing.T) {
	svc := newSuggestionServiceFor("http://unused")
	session := &store.Session{ID: "sid-1", Authenticated: true}

	_, err := svc.Suggest(context.Background(), session, &dto.SuggestRequest{UpdateContent: "release"})
	assert.ErrorIs(t, err, ErrNoLoadedFaq)
}
