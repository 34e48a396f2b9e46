package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/safetylog-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// NewOwner returns a fresh owner identity so parallel tests never see each
// other's rows.
func NewOwner() domain.OwnerID {
	return domain.OwnerID("user_" + uuid.New().String())
}

// SeedEstablishment inserts an establishment owned by owner with valid
// default attributes and returns the stored row.
func SeedEstablishment(t *testing.T, pool *pgxpool.Pool, owner domain.OwnerID) domain.Establishment {
	t.Helper()
	ctx := context.Background()

	e := domain.Establishment{
		UserID:           owner,
		Name:             "Plant " + uniqueSuffix(),
		Address:          "100 Industrial Way",
		City:             "Fresno",
		State:            "CA",
		Zip:              "93721",
		AverageEmployees: 42,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO establishments (user_id, name, address, city, state, zip, average_employees)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		owner.String(), e.Name, e.Address, e.City, e.State, e.Zip, e.AverageEmployees,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedEstablishment insert: %v", err)
	}

	return e
}

// SeedSubscription inserts an active subscription for the establishment and year.
func SeedSubscription(t *testing.T, pool *pgxpool.Pool, establishmentID uuid.UUID, year int) domain.Subscription {
	t.Helper()
	ctx := context.Background()

	s := domain.Subscription{
		EstablishmentID:  establishmentID,
		Year:             year,
		PaymentReference: "pay_" + uniqueSuffix(),
		Status:           domain.SubscriptionStatusActive,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO subscriptions (establishment_id, year, payment_reference, status)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		s.EstablishmentID, s.Year, s.PaymentReference, string(s.Status),
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedSubscription insert: %v", err)
	}

	return s
}

// CountSubscriptions returns how many subscriptions reference the establishment.
func CountSubscriptions(t *testing.T, pool *pgxpool.Pool, establishmentID uuid.UUID) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM subscriptions WHERE establishment_id = $1`,
		establishmentID,
	).Scan(&n)
	if err != nil {
		t.Fatalf("testhelper: CountSubscriptions: %v", err)
	}

	return n
}
