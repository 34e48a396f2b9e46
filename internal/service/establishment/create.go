package establishment

import (
	"context"
	"errors"
	"log/slog"

	"github.com/heartmarshall/safetylog-backend/internal/domain"
)

var errNoRowReturned = errors.New("insert returned no row")

// Create validates input and stores a new establishment owned by the caller.
func (s *Service) Create(ctx context.Context, owner domain.OwnerID, input CreateInput) (*domain.Establishment, error) {
	if owner.IsZero() {
		return nil, s.fail(ctx, opCreate, owner, domain.ErrUnauthorized)
	}

	if err := input.Validate(); err != nil {
		return nil, s.fail(ctx, opCreate, owner, err)
	}

	s.breadcrumb(ctx, "create establishment")

	created, err := s.repo.Create(ctx, input.Normalize().establishment(owner))
	if err != nil {
		return nil, s.fail(ctx, opCreate, owner, err)
	}
	if created == nil {
		return nil, s.fail(ctx, opCreate, owner, errNoRowReturned)
	}

	s.log.InfoContext(ctx, "establishment created",
		slog.String("user_id", owner.String()),
		slog.String("establishment_id", created.ID.String()),
	)

	return created, nil
}
