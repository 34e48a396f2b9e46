package establishment

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/safetylog-backend/internal/domain"
)

// Delete removes one of the caller's establishments. Its subscriptions go
// with it through the storage-level cascade.
func (s *Service) Delete(ctx context.Context, owner domain.OwnerID, id uuid.UUID) error {
	if owner.IsZero() {
		return s.fail(ctx, opDelete, owner, domain.ErrUnauthorized)
	}

	e, err := s.checkOwnership(ctx, opDelete, owner, id)
	if err != nil {
		return s.fail(ctx, opDelete, owner, err)
	}

	s.breadcrumb(ctx, "delete establishment")

	n, err := s.repo.Delete(ctx, owner, id)
	if err != nil {
		return s.fail(ctx, opDelete, owner, err)
	}
	if n == 0 {
		s.log.WarnContext(ctx, "establishment delete affected no rows",
			slog.String("user_id", owner.String()),
			slog.String("establishment_id", id.String()),
		)
		return nil
	}

	s.log.InfoContext(ctx, "establishment deleted",
		slog.String("user_id", owner.String()),
		slog.String("establishment_id", id.String()),
		slog.String("name", e.Name),
	)

	return nil
}
