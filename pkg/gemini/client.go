package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type ChatParts struct {
	Text string `json:"text"`
}

type ChatContent struct {
	Parts []*ChatParts `json:"parts"`
	Role  string       `json:"role"`
}

// GenerationConfig steers the model toward deterministic, bounded,
// strict-JSON output.
type GenerationConfig struct {
	Temperature      float64 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type GenerateRequest struct {
	Contents         []*ChatContent    `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

type Candidate struct {
	Content *ChatContent `json:"content"`
}

type GenerateResponse struct {
	Candidates []*Candidate `json:"candidates"`
}

const RoleUser = "user"

type Client struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewClient(apiKey, model, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// Generate sends a single-turn prompt and returns the raw response text of
// the first candidate.
func (c *Client) Generate(ctx context.Context, prompt string, genCfg *GenerationConfig) (string, error) {
	payload := GenerateRequest{
		Contents: []*ChatContent{
			{
				Parts: []*ChatParts{{Text: prompt}},
				Role:  RoleUser,
			},
		},
		GenerationConfig: genCfg,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/v1/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", err
	}

	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var genRes GenerateResponse
	err = json.Unmarshal(resBody, &genRes)
	if err != nil {
		return "", err
	}

	if len(genRes.Candidates) == 0 || genRes.Candidates[0].Content == nil || len(genRes.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty candidates in gemini response: %s", string(resBody))
	}

	return genRes.Candidates[0].Content.Parts[0].Text, nil
}

// StripMarkdownFences removes a ```json ... ``` wrapper some models emit even
// in JSON response mode.
func StripMarkdownFences(raw string) []byte {
	b := []byte(raw)
	b = bytes.TrimSpace(b)
	b = bytes.TrimPrefix(b, []byte("```json"))
	b = bytes.TrimPrefix(b, []byte("```"))
	b = bytes.TrimSuffix(b, []byte("```"))
	b = bytes.TrimSpace(b)
	return b
}
