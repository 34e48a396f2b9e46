package establishment

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/safetylog-backend/internal/domain"
)

var _ establishmentRepo = &establishmentRepoMock{}

type establishmentRepoMock struct {
	ListByOwnerFunc func(ctx context.Context, owner domain.OwnerID) ([]*domain.Establishment, error)
	GetByIDFunc     func(ctx context.Context, owner domain.OwnerID, id uuid.UUID) (*domain.Establishment, error)
	CreateFunc      func(ctx context.Context, e domain.Establishment) (*domain.Establishment, error)
	UpdateFunc      func(ctx context.Context, owner domain.OwnerID, id uuid.UUID, patch domain.EstablishmentPatch) (*domain.Establishment, error)
	DeleteFunc      func(ctx context.Context, owner domain.OwnerID, id uuid.UUID) (int64, error)

	calls struct {
		ListByOwner []struct {
			Ctx   context.Context
			Owner domain.OwnerID
		}
		GetByID []struct {
			Ctx   context.Context
			Owner domain.OwnerID
			ID    uuid.UUID
		}
		Create []struct {
			Ctx context.Context
			E   domain.Establishment
		}
		Update []struct {
			Ctx   context.Context
			Owner domain.OwnerID
			ID    uuid.UUID
			Patch domain.EstablishmentPatch
		}
		Delete []struct {
			Ctx   context.Context
			Owner domain.OwnerID
			ID    uuid.UUID
		}
	}
	lockListByOwner sync.RWMutex
	lockGetByID     sync.RWMutex
	lockCreate      sync.RWMutex
	lockUpdate      sync.RWMutex
	lockDelete      sync.RWMutex
}

func (mock *establishmentRepoMock) ListByOwner(ctx context.Context, owner domain.OwnerID) ([]*domain.Establishment, error) {
	if mock.ListByOwnerFunc == nil {
		panic("establishmentRepoMock.ListByOwnerFunc: method is nil but establishmentRepo.ListByOwner was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Owner domain.OwnerID
	}{Ctx: ctx, Owner: owner}
	mock.lockListByOwner.Lock()
	mock.calls.ListByOwner = append(mock.calls.ListByOwner, callInfo)
	mock.lockListByOwner.Unlock()
	return mock.ListByOwnerFunc(ctx, owner)
}

func (mock *establishmentRepoMock) ListByOwnerCalls() []struct {
	Ctx   context.Context
	Owner domain.OwnerID
} {
	mock.lockListByOwner.RLock()
	calls := mock.calls.ListByOwner
	mock.lockListByOwner.RUnlock()
	return calls
}

func (mock *establishmentRepoMock) GetByID(ctx context.Context, owner domain.OwnerID, id uuid.UUID) (*domain.Establishment, error) {
	if mock.GetByIDFunc == nil {
		panic("establishmentRepoMock.GetByIDFunc: method is nil but establishmentRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Owner domain.OwnerID
		ID    uuid.UUID
	}{Ctx: ctx, Owner: owner, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, owner, id)
}

func (mock *establishmentRepoMock) GetByIDCalls() []struct {
	Ctx   context.Context
	Owner domain.OwnerID
	ID    uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *establishmentRepoMock) Create(ctx context.Context, e domain.Establishment) (*domain.Establishment, error) {
	if mock.CreateFunc == nil {
		panic("establishmentRepoMock.CreateFunc: method is nil but establishmentRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   domain.Establishment
	}{Ctx: ctx, E: e}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, e)
}

func (mock *establishmentRepoMock) CreateCalls() []struct {
	Ctx context.Context
	E   domain.Establishment
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *establishmentRepoMock) Update(ctx context.Context, owner domain.OwnerID, id uuid.UUID, patch domain.EstablishmentPatch) (*domain.Establishment, error) {
	if mock.UpdateFunc == nil {
		panic("establishmentRepoMock.UpdateFunc: method is nil but establishmentRepo.Update was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Owner domain.OwnerID
		ID    uuid.UUID
		Patch domain.EstablishmentPatch
	}{Ctx: ctx, Owner: owner, ID: id, Patch: patch}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, owner, id, patch)
}

func (mock *establishmentRepoMock) UpdateCalls() []struct {
	Ctx   context.Context
	Owner domain.OwnerID
	ID    uuid.UUID
	Patch domain.EstablishmentPatch
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *establishmentRepoMock) Delete(ctx context.Context, owner domain.OwnerID, id uuid.UUID) (int64, error) {
	if mock.DeleteFunc == nil {
		panic("establishmentRepoMock.DeleteFunc: method is nil but establishmentRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Owner domain.OwnerID
		ID    uuid.UUID
	}{Ctx: ctx, Owner: owner, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, owner, id)
}

func (mock *establishmentRepoMock) DeleteCalls() []struct {
	Ctx   context.Context
	Owner domain.OwnerID
	ID    uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
