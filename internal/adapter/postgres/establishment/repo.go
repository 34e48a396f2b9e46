// Package establishment implements the Establishment repository using PostgreSQL.
// Every query filters by both id and owner, so a row belonging to another
// owner is reported exactly like a missing one.
package establishment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/safetylog-backend/internal/adapter/postgres"
	"github.com/heartmarshall/safetylog-backend/internal/domain"
)

const table = "establishments"

var columns = []string{
	"id", "user_id", "name", "address", "city", "state", "zip",
	"naics_code", "industry_description", "average_employees",
	"created_at", "updated_at",
}

// Repo provides establishment persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new establishment repository. db is usually a *pgxpool.Pool.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListByOwner returns the owner's establishments ordered by creation time,
// oldest first. Returns an empty slice when the owner has none.
func (r *Repo) ListByOwner(ctx context.Context, owner domain.OwnerID) ([]*domain.Establishment, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"user_id": owner.String()}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list establishments: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "establishments of", owner)
	}
	defer rows.Close()

	result := []*domain.Establishment{}
	for rows.Next() {
		e, err := scanEstablishment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan establishment: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "establishments of", owner)
	}

	return result, nil
}

// GetByID returns the establishment with the given id owned by owner.
// Returns domain.ErrNotFound if it does not exist or belongs to someone else.
func (r *Repo) GetByID(ctx context.Context, owner domain.OwnerID, id uuid.UUID) (*domain.Establishment, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"id": id, "user_id": owner.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get establishment: %w", err)
	}

	e, err := scanEstablishment(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "establishment", id)
	}

	return e, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new establishment owned by e.UserID. The id and both
// timestamps are generated by the database. Returns (nil, nil) if the
// insert produced no row.
func (r *Repo) Create(ctx context.Context, e domain.Establishment) (*domain.Establishment, error) {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns(
			"user_id", "name", "address", "city", "state", "zip",
			"naics_code", "industry_description", "average_employees",
		).
		Values(
			e.UserID.String(), e.Name, e.Address, e.City, e.State, e.Zip,
			e.NAICSCode, e.IndustryDescription, e.AverageEmployees,
		).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert establishment: %w", err)
	}

	created, err := scanEstablishment(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, postgres.MapError(err, "establishment for", e.UserID)
	}

	return created, nil
}

// Update applies the present patch fields to the owner's establishment and
// refreshes updated_at. Returns (nil, nil) when no row matched, which happens
// when the row was deleted after the caller last saw it.
func (r *Repo) Update(ctx context.Context, owner domain.OwnerID, id uuid.UUID, patch domain.EstablishmentPatch) (*domain.Establishment, error) {
	set := make(map[string]any, patch.Len()+1)
	for _, f := range patch.Fields() {
		v, _ := patch.Get(f)
		set[f.Column()] = v
	}
	set["updated_at"] = sq.Expr("now()")

	query, args, err := postgres.Builder().
		Update(table).
		SetMap(set).
		Where(sq.Eq{"id": id, "user_id": owner.String()}).
		Suffix(returning()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update establishment: %w", err)
	}

	updated, err := scanEstablishment(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, postgres.MapError(err, "establishment", id)
	}

	return updated, nil
}

// Delete removes the owner's establishment and returns the number of rows
// affected. Dependent subscriptions are removed by ON DELETE CASCADE.
func (r *Repo) Delete(ctx context.Context, owner domain.OwnerID, id uuid.UUID) (int64, error) {
	query, args, err := postgres.Builder().
		Delete(table).
		Where(sq.Eq{"id": id, "user_id": owner.String()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete establishment: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "establishment", id)
	}

	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func returning() string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func scanEstablishment(row pgx.Row) (*domain.Establishment, error) {
	var (
		e     domain.Establishment
		owner string
	)

	if err := row.Scan(
		&e.ID, &owner, &e.Name, &e.Address, &e.City, &e.State, &e.Zip,
		&e.NAICSCode, &e.IndustryDescription, &e.AverageEmployees,
		&e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	e.UserID = domain.OwnerID(owner)
	return &e, nil
}
