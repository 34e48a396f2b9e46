package establishment

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/safetylog-backend/internal/domain"
)

// Update applies the present patch fields to one of the caller's
// establishments and returns the updated row.
//
// The ownership check and the write are separate statements with no
// transaction. If the row is deleted in between, the write matches nothing
// and Update returns (nil, nil): the call succeeds without a row.
func (s *Service) Update(ctx context.Context, owner domain.OwnerID, id uuid.UUID, patch domain.EstablishmentPatch) (*domain.Establishment, error) {
	if owner.IsZero() {
		return nil, s.fail(ctx, opUpdate, owner, domain.ErrUnauthorized)
	}

	if _, err := s.checkOwnership(ctx, opUpdate, owner, id); err != nil {
		return nil, s.fail(ctx, opUpdate, owner, err)
	}

	if err := ValidatePatch(patch); err != nil {
		return nil, s.fail(ctx, opUpdate, owner, err)
	}

	s.breadcrumb(ctx, "update establishment")

	updated, err := s.repo.Update(ctx, owner, id, NormalizePatch(patch))
	if err != nil {
		return nil, s.fail(ctx, opUpdate, owner, err)
	}
	if updated == nil {
		s.log.WarnContext(ctx, "establishment update affected no rows",
			slog.String("user_id", owner.String()),
			slog.String("establishment_id", id.String()),
		)
		return nil, nil
	}

	s.log.InfoContext(ctx, "establishment updated",
		slog.String("user_id", owner.String()),
		slog.String("establishment_id", id.String()),
		slog.Int("fields", patch.Len()),
	)

	return updated, nil
}
