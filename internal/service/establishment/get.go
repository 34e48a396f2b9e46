package establishment

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/safetylog-backend/internal/domain"
)

// Get returns one of the caller's establishments. An establishment owned by
// someone else is reported as domain.ErrNotFound, same as a missing one.
func (s *Service) Get(ctx context.Context, owner domain.OwnerID, id uuid.UUID) (*domain.Establishment, error) {
	if owner.IsZero() {
		return nil, s.fail(ctx, opGet, owner, domain.ErrUnauthorized)
	}

	s.breadcrumb(ctx, "get establishment")

	e, err := s.repo.GetByID(ctx, owner, id)
	if err != nil {
		return nil, s.fail(ctx, opGet, owner, err)
	}

	return e, nil
}
