package httpapi

import (
	"github.com/localfinds/discovery-engine/internal/domain"
	"github.com/localfinds/discovery-engine/internal/storage"
)

// SQLiteCandidatesRepo adapts the sqlite store to the listing contract.
type SQLiteCandidatesRepo struct {
	Store *storage.SQLiteStore
}

func (r *SQLiteCandidatesRepo) List(p ListParams) ([]domain.BusinessCandidate, int) {
	if r == nil || r.Store == nil {
		return nil, 0
	}

	items, total, err := r.Store.ListCandidates(p.Limit, p.Offset, p.Category, p.MinRating)
	if err != nil {
		// The listing contract has no error slot; an empty page is the
		// degraded answer.
		return nil, 0
	}
	return items, total
}
