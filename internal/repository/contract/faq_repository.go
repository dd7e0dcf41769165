package contract

import (
	"context"

	"faq-management-be/internal/entity"
)

type FaqRepository interface {
	Create(ctx context.Context, faq *entity.Faq) error
	// FindByBusinessID returns the first record whose title property equals
	// the given business id, or nil when there is no match.
	FindByBusinessID(ctx context.Context, businessID string) (*entity.Faq, error)
	// ListAllBusinessIDs drains the whole database through cursor pagination
	// and returns every purely-numeric business id in page order.
	ListAllBusinessIDs(ctx context.Context) ([]string, error)
	// Update patches question/answer/category/last-updated on the page
	// addressed by its opaque Notion page id.
	Update(ctx context.Context, pageID string, faq *entity.Faq) error
}
