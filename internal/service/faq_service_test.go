package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"faq-management-be/internal/dto"
	"faq-management-be/internal/entity"
	"faq-management-be/internal/repository/memory"
	"faq-management-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFaqRepository records calls and serves canned ids/records.
type fakeFaqRepository struct {
	ids       []string
	listErr   error
	created   []*entity.Faq
	createErr map[int]error // fail the n-th create (0-based)
	found     *entity.Faq
	findErr   error
	updated   map[string]*entity.Faq
	updateErr error
}

func newFakeRepo(ids ...string) *fakeFaqRepository {
	return &fakeFaqRepository{
		ids:       ids,
		createErr: map[int]error{},
		updated:   map[string]*entity.Faq{},
	}
}

func (f *fakeFaqRepository) Create(ctx context.Context, faq *entity.Faq) error {
	n := len(f.created)
	f.created = append(f.created, faq)
	if err, ok := f.createErr[n]; ok {
		return err
	}
	// Newly created ids become visible to the next allocator scan.
	if isNumeric4(faq.BusinessID) {
		f.ids = append(f.ids, faq.BusinessID)
	}
	return nil
}

func (f *fakeFaqRepository) FindByBusinessID(ctx context.Context, businessID string) (*entity.Faq, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.found != nil && f.found.BusinessID == businessID {
		return f.found, nil
	}
	return nil, nil
}

func (f *fakeFaqRepository) ListAllBusinessIDs(ctx context.Context) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.ids, nil
}

func (f *fakeFaqRepository) Update(ctx context.Context, pageID string, faq *entity.Faq) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated[pageID] = faq
	return nil
}

func isNumeric4(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func testSession() *store.Session {
	return &store.Session{ID: "sid-1", Email: "user@dai.co.jp", Name: "Taro", Authenticated: true}
}

func newFaqServiceWith(repo *fakeFaqRepository) (IFaqService, *memory.SessionRepository) {
	sessions := memory.NewSessionRepository(time.Minute)
	return NewFaqService(repo, sessions, nil, nopLogger{}), sessions
}

func TestAddAssignsNextID(t *testing.T) {
	repo := newFakeRepo("0001", "0003", "0005")
	svc, _ := newFaqServiceWith(repo)

	res, err := svc.Add(context.Background(), testSession(), &dto.AddFaqRequest{
		Question: "How do I log in?",
		Answer:   "Use SSO.",
		Category: "Login",
	})

	require.NoError(t, err)
	assert.Equal(t, "0006", res.FaqID)
	require.Len(t, repo.created, 1)
	assert.Equal(t, entity.CategoryLogin, repo.created[0].Category)
}

func TestAddUnknownCategoryDefaultsToOther(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newFaqServiceWith(repo)

	_, err := svc.Add(context.Background(), testSession(), &dto.AddFaqRequest{
		Question: "Q", Answer: "A", Category: "Nonsense",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.CategoryOther, repo.created[0].Category)
}

func TestAddSurfacesCreateFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr[0] = errors.New("notion API error, got status 500")
	svc, _ := newFaqServiceWith(repo)

	res, err := svc.Add(context.Background(), testSession(), &dto.AddFaqRequest{Question: "Q", Answer: "A"})

	require.Error(t, err)
	assert.Nil(t, res)
	assert.Contains(t, err.Error(), "failed to add FAQ")
}

func TestImportCSVBestEffort(t *testing.T) {
	repo := newFakeRepo("0001")
	// Second created row fails; the pass continues.
	repo.createErr[1] = errors.New("notion API error, got status 502")
	svc, _ := newFaqServiceWith(repo)

	csvFile := strings.NewReader(
		"question,answer,category\n" +
			"Q1,A1,Login\n" +
			"Q2,A2,Payment\n" +
			"Q3,A3,\n")

	res, err := svc.ImportCSV(context.Background(), testSession(), csvFile)

	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.Succeeded)

	// Ids are re-allocated per row, so the surviving rows are sequential.
	require.Len(t, repo.created, 3)
	assert.Equal(t, "0002", repo.created[0].BusinessID)
	assert.Equal(t, entity.CategoryOther, repo.created[2].Category)
}

func TestImportCSVSkipsIncompleteRowsWithoutRemoteCalls(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newFaqServiceWith(repo)

	csvFile := strings.NewReader(
		"question,answer\n" +
			"Q1,A1\n" +
			",missing question\n")

	res, err := svc.ImportCSV(context.Background(), testSession(), csvFile)

	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.Succeeded)
	assert.Len(t, repo.created, 1)
}

func TestImportCSVRejectsMissingColumns(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newFaqServiceWith(repo)

	_, err := svc.ImportCSV(context.Background(), testSession(), strings.NewReader("title,body\nx,y\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "question and answer columns")
	assert.Empty(t, repo.created)
}

func TestSearchLoadsRecordIntoSession(t *testing.T) {
	repo := newFakeRepo()
	repo.found = &entity.Faq{
		PageID:     "page-abc",
		BusinessID: "0006",
		Question:   "How do I log in?",
		Answer:     "Use SSO.",
		Category:   entity.CategoryLogin,
	}
	svc, sessions := newFaqServiceWith(repo)

	session := testSession()
	sessions.Save(session)

	res, err := svc.Search(context.Background(), session, "0006")

	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, "0006", res.FaqID)

	saved, found := sessions.Get("sid-1")
	require.True(t, found)
	require.NotNil(t, saved.CurrentFaq)
	assert.Equal(t, "page-abc", saved.CurrentFaq.PageID)
}

func TestSearchMissDoesNotTouchSession(t *testing.T) {
	repo := newFakeRepo()
	svc, sessions := newFaqServiceWith(repo)

	session := testSession()
	sessions.Save(session)

	res, err := svc.Search(context.Background(), session, "9999")

	require.NoError(t, err)
	assert.Nil(t, res)

	saved, _ := sessions.Get("sid-1")
	assert.Nil(t, saved.CurrentFaq)
}

func TestUpdateRequiresLoadedRecord(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newFaqServiceWith(repo)

	err := svc.Update(context.Background(), testSession(), &dto.UpdateFaqRequest{Question: "Q", Answer: "A"})
	assert.ErrorIs(t, err, ErrNoLoadedFaq)
	assert.Empty(t, repo.updated)
}

func TestUpdateClearsLoadedRecord(t *testing.T) {
	repo := newFakeRepo()
	svc, sessions := newFaqServiceWith(repo)

	session := testSession()
	session.CurrentFaq = &entity.Faq{PageID: "page-abc", BusinessID: "0006", Question: "old", Answer: "old", Category: entity.CategoryLogin}
	sessions.Save(session)

	err := svc.Update(context.Background(), session, &dto.UpdateFaqRequest{
		Question: "New Q",
		Answer:   "New A",
		Category: "Trouble",
	})

	require.NoError(t, err)
	require.Contains(t, repo.updated, "page-abc")
	assert.Equal(t, entity.CategoryTrouble, repo.updated["page-abc"].Category)

	// A further update requires a fresh search first.
	saved, _ := sessions.Get("sid-1")
	assert.Nil(t, saved.CurrentFaq)

	err = svc.Update(context.Background(), session, &dto.UpdateFaqRequest{Question: "Q", Answer: "A"})
	assert.ErrorIs(t, err, ErrNoLoadedFaq)
}
