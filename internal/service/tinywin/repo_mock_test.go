package tinywin

import (
	"context"
	"sync"

	"github.com/heartmarshall/tinywin-backend/internal/domain"
)

// tinyWinRepoMock is a function-field mock of tinyWinRepo that records calls.
type tinyWinRepoMock struct {
	ListFunc    func(ctx context.Context) ([]domain.TinyWin, error)
	GetByIDFunc func(ctx context.Context, id int64) (*domain.TinyWin, error)
	CreateFunc  func(ctx context.Context, fields domain.TinyWinFields) (*domain.TinyWin, error)
	UpdateFunc  func(ctx context.Context, id int64, fields domain.TinyWinFields) (*domain.TinyWin, error)
	DeleteFunc  func(ctx context.Context, id int64) (*domain.TinyWin, error)

	mu          sync.Mutex
	createCalls []domain.TinyWinFields
	updateCalls []updateCall
	deleteCalls []int64
}

type updateCall struct {
	ID     int64
	Fields domain.TinyWinFields
}

var _ tinyWinRepo = (*tinyWinRepoMock)(nil)

func (m *tinyWinRepoMock) List(ctx context.Context) ([]domain.TinyWin, error) {
	if m.ListFunc == nil {
		panic("tinyWinRepoMock.ListFunc: method is nil but List was just called")
	}
	return m.ListFunc(ctx)
}

func (m *tinyWinRepoMock) GetByID(ctx context.Context, id int64) (*domain.TinyWin, error) {
	if m.GetByIDFunc == nil {
		panic("tinyWinRepoMock.GetByIDFunc: method is nil but GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *tinyWinRepoMock) Create(ctx context.Context, fields domain.TinyWinFields) (*domain.TinyWin, error) {
	if m.CreateFunc == nil {
		panic("tinyWinRepoMock.CreateFunc: method is nil but Create was just called")
	}
	m.mu.Lock()
	m.createCalls = append(m.createCalls, fields)
	m.mu.Unlock()
	return m.CreateFunc(ctx, fields)
}

func (m *tinyWinRepoMock) Update(ctx context.Context, id int64, fields domain.TinyWinFields) (*domain.TinyWin, error) {
	if m.UpdateFunc == nil {
		panic("tinyWinRepoMock.UpdateFunc: method is nil but Update was just called")
	}
	m.mu.Lock()
	m.updateCalls = append(m.updateCalls, updateCall{ID: id, Fields: fields})
	m.mu.Unlock()
	return m.UpdateFunc(ctx, id, fields)
}

func (m *tinyWinRepoMock) Delete(ctx context.Context, id int64) (*domain.TinyWin, error) {
	if m.DeleteFunc == nil {
		panic("tinyWinRepoMock.DeleteFunc: method is nil but Delete was just called")
	}
	m.mu.Lock()
	m.deleteCalls = append(m.deleteCalls, id)
	m.mu.Unlock()
	return m.DeleteFunc(ctx, id)
}

func (m *tinyWinRepoMock) CreateCalls() []domain.TinyWinFields {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

func (m *tinyWinRepoMock) UpdateCalls() []updateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updateCalls
}

func (m *tinyWinRepoMock) DeleteCalls() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleteCalls
}
