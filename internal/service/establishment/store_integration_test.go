package establishment_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pgestablishment "github.com/heartmarshall/safetylog-backend/internal/adapter/postgres/establishment"
	"github.com/heartmarshall/safetylog-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/safetylog-backend/internal/domain"
	"github.com/heartmarshall/safetylog-backend/internal/service/establishment"
	"github.com/heartmarshall/safetylog-backend/internal/telemetry"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func newStore(t *testing.T) (*establishment.Service, *pgestablishment.Repo) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	repo := pgestablishment.New(pool)
	return establishment.NewService(slog.Default(), repo, telemetry.Nop{}), repo
}

func input(name string) establishment.CreateInput {
	return establishment.CreateInput{
		Name:             name,
		Address:          "12 Mill St",
		City:             "Sacramento",
		State:            "CA",
		Zip:              "95814",
		AverageEmployees: intPtr(12),
	}
}

func TestStore_ListIsolatesTenants(t *testing.T) {
	t.Parallel()
	svc, _ := newStore(t)
	ctx := context.Background()

	u, v := testhelper.NewOwner(), testhelper.NewOwner()
	a, err := svc.Create(ctx, u, input("A"))
	require.NoError(t, err)

	listU, err := svc.List(ctx, u)
	require.NoError(t, err)
	listV, err := svc.List(ctx, v)
	require.NoError(t, err)

	require.Len(t, listU, 1)
	assert.Equal(t, a.ID, listU[0].ID)
	assert.Empty(t, listV)
}

func TestStore_CreateNormalizationAndOptionalFields(t *testing.T) {
	t.Parallel()
	svc, _ := newStore(t)
	ctx := context.Background()
	owner := testhelper.NewOwner()

	lower := input("lower")
	lower.State = "ca"
	got, err := svc.Create(ctx, owner, lower)
	require.NoError(t, err)
	assert.Equal(t, "CA", got.State)
	assert.Nil(t, got.NAICSCode, "omitted NAICS is stored as NULL")

	for _, zip := range []string{"90001", "90001-1234"} {
		in := input("zip " + zip)
		in.Zip = zip
		_, err := svc.Create(ctx, owner, in)
		assert.NoError(t, err, zip)
	}
	short := input("short zip")
	short.Zip = "9000"
	_, err = svc.Create(ctx, owner, short)
	assert.ErrorIs(t, err, domain.ErrValidation)

	naics := input("naics")
	naics.NAICSCode = strPtr("123456")
	got, err = svc.Create(ctx, owner, naics)
	require.NoError(t, err)
	require.NotNil(t, got.NAICSCode)
	assert.Equal(t, "123456", *got.NAICSCode)

	naics.NAICSCode = strPtr("12345")
	_, err = svc.Create(ctx, owner, naics)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStore_PartialUpdate(t *testing.T) {
	t.Parallel()
	svc, _ := newStore(t)
	ctx := context.Background()
	owner := testhelper.NewOwner()

	created, err := svc.Create(ctx, owner, input("Partial"))
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	var patch domain.EstablishmentPatch
	patch.SetAverageEmployees(250)
	updated, err := svc.Update(ctx, owner, created.ID, patch)
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, 250, updated.AverageEmployees)
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.Address, updated.Address)
	assert.Equal(t, created.City, updated.City)
	assert.Equal(t, created.State, updated.State)
	assert.Equal(t, created.Zip, updated.Zip)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt), "updated_at must advance")
}

func TestStore_GetForeignEqualsMissing(t *testing.T) {
	t.Parallel()
	svc, _ := newStore(t)
	ctx := context.Background()

	owned, err := svc.Create(ctx, testhelper.NewOwner(), input("Owned"))
	require.NoError(t, err)

	intruder := testhelper.NewOwner()
	_, foreignErr := svc.Get(ctx, intruder, owned.ID)
	_, missingErr := svc.Get(ctx, intruder, uuid.New())

	assert.Equal(t, domain.KindNotFound, domain.ErrorKind(foreignErr))
	assert.Equal(t, domain.ErrorKind(missingErr), domain.ErrorKind(foreignErr))
}

func TestStore_DeleteCascades(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	svc := establishment.NewService(slog.Default(), pgestablishment.New(pool), telemetry.Nop{})
	ctx := context.Background()
	owner := testhelper.NewOwner()

	created, err := svc.Create(ctx, owner, input("Doomed"))
	require.NoError(t, err)
	testhelper.SeedSubscription(t, pool, created.ID, 2026)

	require.NoError(t, svc.Delete(ctx, owner, created.ID))

	_, err = svc.Get(ctx, owner, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, testhelper.CountSubscriptions(t, pool, created.ID))
}

// deleteBetweenRepo deletes the row right after the ownership check, which
// is the interleaving a concurrent delete request produces.
type deleteBetweenRepo struct {
	*pgestablishment.Repo
}

func (r deleteBetweenRepo) GetByID(ctx context.Context, owner domain.OwnerID, id uuid.UUID) (*domain.Establishment, error) {
	e, err := r.Repo.GetByID(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if _, err := r.Repo.Delete(ctx, owner, id); err != nil {
		return nil, err
	}
	return e, nil
}

func TestStore_UpdateRacingDelete(t *testing.T) {
	t.Parallel()
	_, repo := newStore(t)
	ctx := context.Background()
	owner := testhelper.NewOwner()

	plain := establishment.NewService(slog.Default(), repo, telemetry.Nop{})
	created, err := plain.Create(ctx, owner, input("Raced"))
	require.NoError(t, err)

	racing := establishment.NewService(slog.Default(), deleteBetweenRepo{repo}, telemetry.Nop{})

	var patch domain.EstablishmentPatch
	patch.SetCity("Fresno")
	got, err := racing.Update(ctx, owner, created.ID, patch)

	// Known gap: success without a row, even though nothing was updated.
	assert.NoError(t, err)
	assert.Nil(t, got)

	_, err = plain.Get(ctx, owner, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
