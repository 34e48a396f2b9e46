package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/safetylog-backend/internal/domain"
	"github.com/heartmarshall/safetylog-backend/internal/service/establishment"
	"github.com/heartmarshall/safetylog-backend/pkg/ctxutil"
)

// establishmentService defines the minimal interface needed by EstablishmentHandler.
type establishmentService interface {
	List(ctx context.Context, owner domain.OwnerID) ([]*domain.Establishment, error)
	Get(ctx context.Context, owner domain.OwnerID, id uuid.UUID) (*domain.Establishment, error)
	Create(ctx context.Context, owner domain.OwnerID, input establishment.CreateInput) (*domain.Establishment, error)
	Update(ctx context.Context, owner domain.OwnerID, id uuid.UUID, patch domain.EstablishmentPatch) (*domain.Establishment, error)
	Delete(ctx context.Context, owner domain.OwnerID, id uuid.UUID) error
}

// EstablishmentHandler serves the establishment REST endpoints.
type EstablishmentHandler struct {
	svc establishmentService
	log *slog.Logger
}

// NewEstablishmentHandler creates an EstablishmentHandler.
func NewEstablishmentHandler(svc establishmentService, logger *slog.Logger) *EstablishmentHandler {
	return &EstablishmentHandler{svc: svc, log: logger.With("handler", "establishment")}
}

// EstablishmentResponse is the wire form of an establishment.
type EstablishmentResponse struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"userId"`
	Name                string    `json:"name"`
	Address             string    `json:"address"`
	City                string    `json:"city"`
	State               string    `json:"state"`
	Zip                 string    `json:"zip"`
	NAICSCode           *string   `json:"naicsCode"`
	IndustryDescription *string   `json:"industryDescription"`
	AverageEmployees    int       `json:"averageEmployees"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// DeleteResponse acknowledges a delete.
type DeleteResponse struct {
	Success bool `json:"success"`
}

func toEstablishmentResponse(e *domain.Establishment) EstablishmentResponse {
	return EstablishmentResponse{
		ID:                  e.ID.String(),
		UserID:              e.UserID.String(),
		Name:                e.Name,
		Address:             e.Address,
		City:                e.City,
		State:               e.State,
		Zip:                 e.Zip,
		NAICSCode:           e.NAICSCode,
		IndustryDescription: e.IndustryDescription,
		AverageEmployees:    e.AverageEmployees,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
}

// Routes mounts the handler under the current router.
func (h *EstablishmentHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// List handles GET /api/v1/establishments.
func (h *EstablishmentHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context(), callerOwner(r))
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	resp := make([]EstablishmentResponse, 0, len(items))
	for _, e := range items {
		resp = append(resp, toEstablishmentResponse(e))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/v1/establishments/{id}.
func (h *EstablishmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner := callerOwner(r)
	id, ok := h.pathID(w, r, owner)
	if !ok {
		return
	}

	e, err := h.svc.Get(r.Context(), owner, id)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toEstablishmentResponse(e))
}

// Create handles POST /api/v1/establishments.
func (h *EstablishmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner := callerOwner(r)
	if owner.IsZero() {
		writeDomainError(w, r, h.log, domain.ErrUnauthorized)
		return
	}

	input, err := decodeCreate(w, r)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	e, err := h.svc.Create(r.Context(), owner, input)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEstablishmentResponse(e))
}

// Update handles PATCH /api/v1/establishments/{id}. A 204 means the row
// vanished between the ownership check and the write.
func (h *EstablishmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner := callerOwner(r)
	id, ok := h.pathID(w, r, owner)
	if !ok {
		return
	}

	if owner.IsZero() {
		writeDomainError(w, r, h.log, domain.ErrUnauthorized)
		return
	}

	patch, err := decodePatch(w, r)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}

	e, err := h.svc.Update(r.Context(), owner, id, patch)
	if err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	if e == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, toEstablishmentResponse(e))
}

// Delete handles DELETE /api/v1/establishments/{id}.
func (h *EstablishmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner := callerOwner(r)
	id, ok := h.pathID(w, r, owner)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), owner, id); err != nil {
		writeDomainError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, DeleteResponse{Success: true})
}

// pathID parses the {id} parameter. An id that is not a UUID cannot name
// any row, so it is reported as not found once the caller is known.
func (h *EstablishmentHandler) pathID(w http.ResponseWriter, r *http.Request, owner domain.OwnerID) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err == nil {
		return id, true
	}
	if owner.IsZero() {
		writeDomainError(w, r, h.log, domain.ErrUnauthorized)
	} else {
		writeDomainError(w, r, h.log, domain.ErrNotFound)
	}
	return uuid.Nil, false
}

func callerOwner(r *http.Request) domain.OwnerID {
	owner, _ := ctxutil.OwnerIDFromCtx(r.Context())
	return domain.OwnerID(owner)
}
