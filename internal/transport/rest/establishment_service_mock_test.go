package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/safetylog-backend/internal/domain"
	"github.com/heartmarshall/safetylog-backend/internal/service/establishment"
)

var _ establishmentService = &establishmentServiceMock{}

type establishmentServiceMock struct {
	ListFunc   func(ctx context.Context, owner domain.OwnerID) ([]*domain.Establishment, error)
	GetFunc    func(ctx context.Context, owner domain.OwnerID, id uuid.UUID) (*domain.Establishment, error)
	CreateFunc func(ctx context.Context, owner domain.OwnerID, input establishment.CreateInput) (*domain.Establishment, error)
	UpdateFunc func(ctx context.Context, owner domain.OwnerID, id uuid.UUID, patch domain.EstablishmentPatch) (*domain.Establishment, error)
	DeleteFunc func(ctx context.Context, owner domain.OwnerID, id uuid.UUID) error

	calls struct {
		List []struct {
			Ctx   context.Context
			Owner domain.OwnerID
		}
		Get []struct {
			Ctx   context.Context
			Owner domain.OwnerID
			ID    uuid.UUID
		}
		Create []struct {
			Ctx   context.Context
			Owner domain.OwnerID
			Input establishment.CreateInput
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
	lockList   sync.RWMutex
	lockGet    sync.RWMutex
	lockCreate sync.RWMutex
	lockUpdate sync.RWMutex
	lockDelete sync.RWMutex
}

func (mock *establishmentServiceMock) List(ctx context.Context, owner domain.OwnerID) ([]*domain.Establishment, error) {
	if mock.ListFunc == nil {
		panic("establishmentServiceMock.ListFunc: method is nil but establishmentService.List was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Owner domain.OwnerID
	}{Ctx: ctx, Owner: owner}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, owner)
}

func (mock *establishmentServiceMock) ListCalls() []struct {
	Ctx   context.Context
	Owner domain.OwnerID
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *establishmentServiceMock) Get(ctx context.Context, owner domain.OwnerID, id uuid.UUID) (*domain.Establishment, error) {
	if mock.GetFunc == nil {
		panic("establishmentServiceMock.GetFunc: method is nil but establishmentService.Get was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Owner domain.OwnerID
		ID    uuid.UUID
	}{Ctx: ctx, Owner: owner, ID: id}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, owner, id)
}

func (mock *establishmentServiceMock) GetCalls() []struct {
	Ctx   context.Context
	Owner domain.OwnerID
	ID    uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *establishmentServiceMock) Create(ctx context.Context, owner domain.OwnerID, input establishment.CreateInput) (*domain.Establishment, error) {
	if mock.CreateFunc == nil {
		panic("establishmentServiceMock.CreateFunc: method is nil but establishmentService.Create was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Owner domain.OwnerID
		Input establishment.CreateInput
	}{Ctx: ctx, Owner: owner, Input: input}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, owner, input)
}

func (mock *establishmentServiceMock) CreateCalls() []struct {
	Ctx   context.Context
	Owner domain.OwnerID
	Input establishment.CreateInput
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *establishmentServiceMock) Update(ctx context.Context, owner domain.OwnerID, id uuid.UUID, patch domain.EstablishmentPatch) (*domain.Establishment, error) {
	if mock.UpdateFunc == nil {
		panic("establishmentServiceMock.UpdateFunc: method is nil but establishmentService.Update was just called")
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

func (mock *establishmentServiceMock) UpdateCalls() []struct {
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

func (mock *establishmentServiceMock) Delete(ctx context.Context, owner domain.OwnerID, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("establishmentServiceMock.DeleteFunc: method is nil but establishmentService.Delete was just called")
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

func (mock *establishmentServiceMock) DeleteCalls() []struct {
	Ctx   context.Context
	Owner domain.OwnerID
	ID    uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}
