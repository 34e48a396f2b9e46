package establishment

import (
	"context"

	"github.com/heartmarshall/safetylog-backend/internal/domain"
)

// List returns the caller's establishments, oldest first. The result is
// never nil.
func (s *Service) List(ctx context.Context, owner domain.OwnerID) ([]*domain.Establishment, error) {
	if owner.IsZero() {
		return nil, s.fail(ctx, opList, owner, domain.ErrUnauthorized)
	}

	s.breadcrumb(ctx, "list establishments")

	items, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, s.fail(ctx, opList, owner, err)
	}
	if items == nil {
		items = []*domain.Establishment{}
	}

	return items, nil
}
