// Package establishment is the ownership-scoped store for establishments.
// Every operation takes the caller identity explicitly and only ever reads or
// writes rows owned by that caller.
package establishment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/safetylog-backend/internal/domain"
	"github.com/heartmarshall/safetylog-backend/internal/telemetry"
)

type establishmentRepo interface {
	ListByOwner(ctx context.Context, owner domain.OwnerID) ([]*domain.Establishment, error)
	GetByID(ctx context.Context, owner domain.OwnerID, id uuid.UUID) (*domain.Establishment, error)
	Create(ctx context.Context, e domain.Establishment) (*domain.Establishment, error)
	Update(ctx context.Context, owner domain.OwnerID, id uuid.UUID, patch domain.EstablishmentPatch) (*domain.Establishment, error)
	Delete(ctx context.Context, owner domain.OwnerID, id uuid.UUID) (int64, error)
}

type telemetrySink interface {
	Breadcrumb(ctx context.Context, b telemetry.Breadcrumb)
	CaptureException(ctx context.Context, err error, tags map[string]string)
}

const component = "establishment"

// Operation names used in breadcrumbs, exception tags and error messages.
const (
	opList   = "list"
	opGet    = "get"
	opCreate = "create"
	opUpdate = "update"
	opDelete = "delete"
)

// Service provides ownership-scoped establishment operations.
type Service struct {
	repo establishmentRepo
	sink telemetrySink
	log  *slog.Logger
}

// NewService creates a new Establishment service.
func NewService(
	log *slog.Logger,
	repo establishmentRepo,
	sink telemetrySink,
) *Service {
	return &Service{
		repo: repo,
		sink: sink,
		log:  log.With("service", "establishment"),
	}
}

// breadcrumb is emitted before every repository call.
func (s *Service) breadcrumb(ctx context.Context, message string) {
	s.sink.Breadcrumb(ctx, telemetry.Breadcrumb{
		Category: component,
		Message:  message,
		Level:    telemetry.LevelInfo,
	})
}

// fail reports err with full detail and returns what the caller may see.
// Anything outside the unauthorized, not-found and validation kinds is
// collapsed into domain.ErrInternal.
func (s *Service) fail(ctx context.Context, op string, owner domain.OwnerID, err error) error {
	s.sink.CaptureException(ctx, err, map[string]string{
		telemetry.TagComponent: component,
		telemetry.TagOperation: op,
		telemetry.TagUserID:    owner.String(),
	})

	if domain.ErrorKind(err) == domain.KindInternal {
		return fmt.Errorf("%s establishment: %w", op, domain.ErrInternal)
	}
	return fmt.Errorf("%s establishment: %w", op, err)
}

// checkOwnership loads the establishment exactly like Get does. op names the
// operation the check belongs to.
func (s *Service) checkOwnership(ctx context.Context, op string, owner domain.OwnerID, id uuid.UUID) (*domain.Establishment, error) {
	s.breadcrumb(ctx, op+" establishment: ownership check")

	e, err := s.repo.GetByID(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	return e, nil
}
