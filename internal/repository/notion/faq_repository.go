package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"faq-management-be/internal/config"
	"faq-management-be/internal/entity"
	"faq-management-be/internal/repository/contract"
)

// FaqRepository talks to the Notion HTTP API directly. Every method performs
// a single attempt; transport failures and non-2xx responses surface as
// errors to the service layer, which turns them into user-visible messages.
type FaqRepository struct {
	cfg    config.NotionConfig
	client *http.Client
}

func NewFaqRepository(cfg config.NotionConfig) contract.FaqRepository {
	return &FaqRepository{
		cfg:    cfg,
		client: &http.Client{},
	}
}

// --- Wire types (Notion property value objects) ---

type textContent struct {
	Content string `json:"content"`
}

type richTextItem struct {
	Text textContent `json:"text"`
}

type selectValue struct {
	Name string `json:"name"`
}

type dateValue struct {
	Start string `json:"start"`
}

type propertyValue struct {
	Title    []richTextItem `json:"title,omitempty"`
	RichText []richTextItem `json:"rich_text,omitempty"`
	Select   *selectValue   `json:"select,omitempty"`
	Date     *dateValue     `json:"date,omitempty"`
}

type createPageRequest struct {
	Parent     pageParent               `json:"parent"`
	Properties map[string]propertyValue `json:"properties"`
}

type pageParent struct {
	DatabaseID string `json:"database_id"`
}

type updatePageRequest struct {
	Properties map[string]propertyValue `json:"properties"`
}

type queryRequest struct {
	Filter      *queryFilter `json:"filter,omitempty"`
	StartCursor string       `json:"start_cursor,omitempty"`
}

type queryFilter struct {
	Property string          `json:"property"`
	Title    titleCompareEq  `json:"title"`
}

type titleCompareEq struct {
	Equals string `json:"equals"`
}

type queryResponse struct {
	Results    []pageResult `json:"results"`
	HasMore    bool         `json:"has_more"`
	NextCursor string       `json:"next_cursor"`
}

type pageResult struct {
	ID         string                   `json:"id"`
	Properties map[string]propertyValue `json:"properties"`
}

// --- Payload helpers ---

func richText(s string) []richTextItem {
	return []richTextItem{{Text: textContent{Content: s}}}
}

func plainText(items []richTextItem) string {
	if len(items) == 0 {
		return ""
	}
	return items[0].Text.Content
}

// buildProperties maps an FAQ onto the configured database schema. The
// last-updated date is always stamped with the call time.
func buildProperties(props config.NotionProps, faq *entity.Faq, now time.Time, includeID bool) map[string]propertyValue {
	out := map[string]propertyValue{
		props.Question:    {RichText: richText(faq.Question)},
		props.Answer:      {RichText: richText(faq.Answer)},
		props.Category:    {Select: &selectValue{Name: string(faq.Category)}},
		props.LastUpdated: {Date: &dateValue{Start: now.Format(time.RFC3339)}},
	}
	if includeID {
		out[props.ID] = propertyValue{Title: richText(faq.BusinessID)}
	}
	return out
}

// --- Operations ---

func (r *FaqRepository) Create(ctx context.Context, faq *entity.Faq) error {
	payload := createPageRequest{
		Parent:     pageParent{DatabaseID: r.cfg.DatabaseID},
		Properties: buildProperties(r.cfg.Props, faq, time.Now(), true),
	}
	_, err := r.do(ctx, http.MethodPost, "/v1/pages", payload)
	return err
}

func (r *FaqRepository) FindByBusinessID(ctx context.Context, businessID string) (*entity.Faq, error) {
	payload := queryRequest{
		Filter: &queryFilter{
			Property: r.cfg.Props.ID,
			Title:    titleCompareEq{Equals: businessID},
		},
	}
	body, err := r.do(ctx, http.MethodPost, "/v1/databases/"+r.cfg.DatabaseID+"/query", payload)
	if err != nil {
		return nil, err
	}

	var res queryResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, err
	}
	if len(res.Results) == 0 {
		return nil, nil
	}

	page := res.Results[0]
	faq := &entity.Faq{
		PageID:     page.ID,
		BusinessID: businessID,
		Question:   plainText(page.Properties[r.cfg.Props.Question].RichText),
		Answer:     plainText(page.Properties[r.cfg.Props.Answer].RichText),
	}
	if sel := page.Properties[r.cfg.Props.Category].Select; sel != nil {
		faq.Category = entity.ParseCategory(sel.Name)
	} else {
		faq.Category = entity.CategoryOther
	}
	if date := page.Properties[r.cfg.Props.LastUpdated].Date; date != nil {
		if t, err := time.Parse(time.RFC3339, date.Start); err == nil {
			faq.LastUpdated = t
		}
	}
	return faq, nil
}

func (r *FaqRepository) ListAllBusinessIDs(ctx context.Context) ([]string, error) {
	var allIDs []string
	cursor := ""
	for {
		payload := queryRequest{StartCursor: cursor}
		body, err := r.do(ctx, http.MethodPost, "/v1/databases/"+r.cfg.DatabaseID+"/query", payload)
		if err != nil {
			return nil, err
		}

		var res queryResponse
		if err := json.Unmarshal(body, &res); err != nil {
			return nil, err
		}

		for _, page := range res.Results {
			// The ID column may be a title or a rich_text property depending
			// on how the database was set up.
			idProp := page.Properties[r.cfg.Props.ID]
			id := plainText(idProp.Title)
			if id == "" {
				id = plainText(idProp.RichText)
			}
			if id != "" && isDigits(id) {
				allIDs = append(allIDs, id)
			}
		}

		if !res.HasMore {
			break
		}
		cursor = res.NextCursor
	}
	return allIDs, nil
}

func (r *FaqRepository) Update(ctx context.Context, pageID string, faq *entity.Faq) error {
	payload := updatePageRequest{
		Properties: buildProperties(r.cfg.Props, faq, time.Now(), false),
	}
	_, err := r.do(ctx, http.MethodPatch, "/v1/pages/"+pageID, payload)
	return err
}

// do issues one request with the Notion auth/version headers and returns the
// response body, converting any non-2xx status into an error.
func (r *FaqRepository) do(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, r.cfg.BaseURL+path, bytes.NewBuffer(payloadJson))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+r.cfg.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", r.cfg.APIVersion)

	res, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf(
			"notion API error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}
	return resBody, nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
