package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"faq-management-be/internal/dto"
	"faq-management-be/internal/entity"
	"faq-management-be/internal/pkg/logger"
	"faq-management-be/internal/repository/contract"
	"faq-management-be/internal/repository/memory"
	"faq-management-be/pkg/events"
	"faq-management-be/pkg/idgen"
	"faq-management-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

var ErrNoLoadedFaq = errors.New("no FAQ loaded: search for an FAQ id first")

type IFaqService interface {
	// NextID recomputes the allocator on every call; the result is a form
	// prefill, not a reservation.
	NextID(ctx context.Context) string
	Add(ctx context.Context, session *store.Session, req *dto.AddFaqRequest) (*dto.AddFaqResponse, error)
	// ImportCSV runs a best-effort sequential pass over the uploaded rows.
	// Each row re-invokes the allocator; a failing row does not abort the rest.
	ImportCSV(ctx context.Context, session *store.Session, file io.Reader) (*dto.ImportResult, error)
	// Search loads the matching record (with its page id) into the session.
	Search(ctx context.Context, session *store.Session, businessID string) (*dto.FaqResponse, error)
	// Update patches the currently loaded record and clears it from the
	// session, forcing a fresh search before any further update.
	Update(ctx context.Context, session *store.Session, req *dto.UpdateFaqRequest) error
}

type faqService struct {
	repo     contract.FaqRepository
	sessions *memory.SessionRepository
	pubSub   message.Publisher
	log      logger.ILogger
}

func NewFaqService(
	repo contract.FaqRepository,
	sessions *memory.SessionRepository,
	pubSub message.Publisher,
	log logger.ILogger,
) IFaqService {
	return &faqService{
		repo:     repo,
		sessions: sessions,
		pubSub:   pubSub,
		log:      log,
	}
}

func (s *faqService) NextID(ctx context.Context) string {
	return idgen.NextID(ctx, s.repo)
}

func (s *faqService) Add(ctx context.Context, session *store.Session, req *dto.AddFaqRequest) (*dto.AddFaqResponse, error) {
	faq := &entity.Faq{
		BusinessID:  idgen.NextID(ctx, s.repo),
		Question:    req.Question,
		Answer:      req.Answer,
		Category:    entity.ParseCategory(req.Category),
		LastUpdated: time.Now(),
	}

	if err := s.repo.Create(ctx, faq); err != nil {
		s.log.Error("faq", "create failed", map[string]interface{}{"faq_id": faq.BusinessID, "error": err.Error()})
		return nil, fmt.Errorf("failed to add FAQ: %v", err)
	}

	s.publish(events.FaqCreated(session.Email, faq.BusinessID))
	return &dto.AddFaqResponse{FaqID: faq.BusinessID}, nil
}

func (s *faqService) ImportCSV(ctx context.Context, session *store.Session, file io.Reader) (*dto.ImportResult, error) {
	rows, err := parseCSV(file)
	if err != nil {
		return nil, err
	}

	result := &dto.ImportResult{Total: len(rows)}
	for _, row := range rows {
		if row.Question == "" || row.Answer == "" {
			continue
		}

		// Ids are assigned at call time per row; the allocator race under
		// concurrent sessions is a documented limitation.
		faq := &entity.Faq{
			BusinessID:  idgen.NextID(ctx, s.repo),
			Question:    row.Question,
			Answer:      row.Answer,
			Category:    entity.ParseCategory(row.Category),
			LastUpdated: time.Now(),
		}
		if err := s.repo.Create(ctx, faq); err != nil {
			s.log.Warn("faq", "import row failed", map[string]interface{}{"faq_id": faq.BusinessID, "error": err.Error()})
			continue
		}
		result.Succeeded++
	}

	s.publish(events.ImportCompleted(session.Email, result.Succeeded, result.Total))
	return result, nil
}

func (s *faqService) Search(ctx context.Context, session *store.Session, businessID string) (*dto.FaqResponse, error) {
	faq, err := s.repo.FindByBusinessID(ctx, businessID)
	if err != nil {
		s.log.Error("faq", "search failed", map[string]interface{}{"faq_id": businessID, "error": err.Error()})
		return nil, fmt.Errorf("search failed: %v", err)
	}
	if faq == nil {
		return nil, nil
	}

	session.CurrentFaq = faq
	s.sessions.Save(session)

	return &dto.FaqResponse{
		FaqID:       faq.BusinessID,
		Question:    faq.Question,
		Answer:      faq.Answer,
		Category:    string(faq.Category),
		LastUpdated: faq.LastUpdated,
	}, nil
}

func (s *faqService) Update(ctx context.Context, session *store.Session, req *dto.UpdateFaqRequest) error {
	current := session.CurrentFaq
	if current == nil || current.PageID == "" {
		return ErrNoLoadedFaq
	}

	faq := &entity.Faq{
		BusinessID:  current.BusinessID,
		Question:    req.Question,
		Answer:      req.Answer,
		Category:    entity.ParseCategory(req.Category),
		LastUpdated: time.Now(),
	}
	if err := s.repo.Update(ctx, current.PageID, faq); err != nil {
		s.log.Error("faq", "update failed", map[string]interface{}{"faq_id": current.BusinessID, "error": err.Error()})
		return fmt.Errorf("failed to update FAQ: %v", err)
	}

	s.publish(events.FaqUpdated(session.Email, current.BusinessID, current.PageID))

	session.CurrentFaq = nil
	s.sessions.Save(session)
	return nil
}

func (s *faqService) publish(event *events.AuditEvent) {
	if s.pubSub == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := s.pubSub.Publish(events.Topic, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		s.log.Warn("faq", "audit publish failed", map[string]interface{}{"type": event.Type, "error": err.Error()})
	}
}

type csvRow struct {
	Question string
	Answer   string
	Category string
}

// parseCSV reads the bulk-upload format: a header row naming question,
// answer and optionally category (defaulting to Other when absent or empty).
func parseCSV(file io.Reader) ([]csvRow, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.New("failed to read CSV: file is empty or malformed")
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	qIdx, qOK := cols["question"]
	aIdx, aOK := cols["answer"]
	cIdx, cOK := cols["category"]
	if !qOK || !aOK {
		return nil, errors.New("CSV must have question and answer columns")
	}

	var rows []csvRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %v", err)
		}

		row := csvRow{}
		if qIdx < len(record) {
			row.Question = strings.TrimSpace(record[qIdx])
		}
		if aIdx < len(record) {
			row.Answer = strings.TrimSpace(record[aIdx])
		}
		if cOK && cIdx < len(record) {
			row.Category = strings.TrimSpace(record[cIdx])
		}
		rows = append(rows, row)
	}
	return rows, nil
}
