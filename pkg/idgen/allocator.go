package idgen

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// FirstID is the id handed out for an empty database, and the safe fallback
// whenever listing or parsing existing ids fails.
const FirstID = "0001"

// IDLister is the slice of the FAQ repository the allocator needs.
type IDLister interface {
	ListAllBusinessIDs(ctx context.Context) ([]string, error)
}

// NextID scans every existing business id and returns max+1 as a zero-padded
// 4-digit string. Only ids that are exactly 4 digits participate in the max.
//
// This is a deliberate single-writer, best-effort allocator: two sessions
// allocating before either writes back can race to the same id. The remote
// store does not enforce uniqueness either.
func NextID(ctx context.Context, lister IDLister) string {
	allIDs, err := lister.ListAllBusinessIDs(ctx)
	if err != nil || len(allIDs) == 0 {
		return FirstID
	}

	maxNum := -1
	for _, id := range allIDs {
		if len(id) != 4 {
			continue
		}
		n, err := strconv.Atoi(id)
		if err != nil {
			continue
		}
		if n > maxNum {
			maxNum = n
		}
	}
	if maxNum < 0 {
		// Nothing numeric of the right shape survived the filter.
		return FirstID
	}

	return fmt.Sprintf("%04d", maxNum+1)
}

// AdhocID generates a free-form id for entries that live outside the
// sequential numbering, e.g. "FAQ_3F2A91BC".
func AdhocID() string {
	return "FAQ_" + strings.ToUpper(uuid.New().String()[:8])
}
