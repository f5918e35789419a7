package tinywin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/heartmarshall/tinywin-backend/internal/domain"
)

var fixedNow = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

// newTestService creates a Service with the given mock, a default logger and a fixed clock.
func newTestService(t *testing.T, mock *tinyWinRepoMock) *Service {
	t.Helper()
	return &Service{
		repo: mock,
		log:  slog.Default(),
		now:  func() time.Time { return fixedNow },
	}
}

func ptr[T any](v T) *T { return &v }

// echoCreate returns a CreateFunc that stores fields as row id.
func echoCreate(id int64) func(context.Context, domain.TinyWinFields) (*domain.TinyWin, error) {
	return func(_ context.Context, f domain.TinyWinFields) (*domain.TinyWin, error) {
		return &domain.TinyWin{
			ID:          id,
			CreatedAt:   ptr(fixedNow),
			Title:       f.Title,
			Description: f.Description,
			Category:    f.Category,
			CompletedAt: ptr(f.CompletedAt),
		}, nil
	}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestCreate_NormalizesFields(t *testing.T) {
	t.Parallel()

	mock := &tinyWinRepoMock{CreateFunc: echoCreate(7)}
	svc := newTestService(t, mock)

	got, err := svc.Create(context.Background(), WinInput{
		Title:       ptr("  Finished report  "),
		Description: ptr("   "),
		Category:    ptr(" work "),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.ID != 7 {
		t.Errorf("id: got %d, want 7", got.ID)
	}
	if got.Title != "Finished report" {
		t.Errorf("title: got %q, want %q", got.Title, "Finished report")
	}
	if got.Description != nil {
		t.Errorf("description: got %q, want nil", *got.Description)
	}
	if got.Category == nil || *got.Category != "work" {
		t.Errorf("category: got %v, want %q", got.Category, "work")
	}
	if got.CompletedAt != "2025-05-01T12:00:00.000Z" {
		t.Errorf("completedAt: got %q, want now", got.CompletedAt)
	}

	calls := mock.CreateCalls()
	if len(calls) != 1 {
		t.Fatalf("Create calls: got %d, want 1", len(calls))
	}
	if !calls[0].CompletedAt.Equal(fixedNow) {
		t.Errorf("stored completedAt: got %v, want %v", calls[0].CompletedAt, fixedNow)
	}
}

func TestCreate_ExplicitCompletedAt(t *testing.T) {
	t.Parallel()

	mock := &tinyWinRepoMock{CreateFunc: echoCreate(1)}
	svc := newTestService(t, mock)

	got, err := svc.Create(context.Background(), WinInput{
		Title:       ptr("Ran 5k"),
		CompletedAt: ptr("2024-01-01T00:00:00Z"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CompletedAt != "2024-01-01T00:00:00.000Z" {
		t.Errorf("completedAt: got %q", got.CompletedAt)
	}
}

func TestCreate_ValidationShortCircuits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    WinInput
		wantCode string
	}{
		{"missing title", WinInput{}, domain.CodeTitleRequired},
		{"empty title", WinInput{Title: ptr("")}, domain.CodeTitleRequired},
		{"bad completedAt", WinInput{Title: ptr("ok"), CompletedAt: ptr("not-a-date")}, domain.CodeInvalidCompletedAt},
		{"title checked first", WinInput{CompletedAt: ptr("not-a-date")}, domain.CodeTitleRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := &tinyWinRepoMock{CreateFunc: echoCreate(1)}
			svc := newTestService(t, mock)

			_, err := svc.Create(context.Background(), tt.input)
			code, ok := domain.ValidationCode(err)
			if !ok {
				t.Fatalf("expected ValidationError, got %T: %v", err, err)
			}
			if code != tt.wantCode {
				t.Errorf("code: got %q, want %q", code, tt.wantCode)
			}
			if len(mock.CreateCalls()) != 0 {
				t.Error("repository must not be called when validation fails")
			}
		})
	}
}

func TestCreate_StorageError(t *testing.T) {
	t.Parallel()

	storageErr := fmt.Errorf("tiny_win: %w: connection refused", domain.ErrStorage)
	mock := &tinyWinRepoMock{
		CreateFunc: func(context.Context, domain.TinyWinFields) (*domain.TinyWin, error) {
			return nil, storageErr
		},
	}
	svc := newTestService(t, mock)

	_, err := svc.Create(context.Background(), WinInput{Title: ptr("x")})
	if !errors.Is(err, domain.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestUpdate_ReplacesAllFields(t *testing.T) {
	t.Parallel()

	created := fixedNow.Add(-48 * time.Hour)
	mock := &tinyWinRepoMock{
		UpdateFunc: func(_ context.Context, id int64, f domain.TinyWinFields) (*domain.TinyWin, error) {
			return &domain.TinyWin{
				ID:          id,
				CreatedAt:   &created,
				Title:       f.Title,
				Description: f.Description,
				Category:    f.Category,
				CompletedAt: ptr(f.CompletedAt),
			}, nil
		},
	}
	svc := newTestService(t, mock)

	got, err := svc.Update(context.Background(), 3, WinInput{
		Title:       ptr(" Shipped v2 "),
		Description: ptr("release notes"),
		CompletedAt: ptr("2025-04-30"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.ID != 3 || got.Title != "Shipped v2" {
		t.Errorf("unexpected record: %+v", got)
	}
	if got.CreatedAt != "2025-04-29T12:00:00.000Z" {
		t.Errorf("createdAt changed: %q", got.CreatedAt)
	}
	if got.CompletedAt != "2025-04-30T00:00:00.000Z" {
		t.Errorf("completedAt: got %q", got.CompletedAt)
	}

	calls := mock.UpdateCalls()
	if len(calls) != 1 || calls[0].ID != 3 {
		t.Fatalf("Update calls: %+v", calls)
	}
	if calls[0].Fields.Category != nil {
		t.Errorf("category should be cleared, got %q", *calls[0].Fields.Category)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	t.Parallel()

	mock := &tinyWinRepoMock{
		UpdateFunc: func(_ context.Context, id int64, _ domain.TinyWinFields) (*domain.TinyWin, error) {
			return nil, fmt.Errorf("tiny_win %d: %w", id, domain.ErrNotFound)
		},
	}
	svc := newTestService(t, mock)

	_, err := svc.Update(context.Background(), 999, WinInput{Title: ptr("x")})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdate_ValidationBeforeStorage(t *testing.T) {
	t.Parallel()

	mock := &tinyWinRepoMock{}
	svc := newTestService(t, mock)

	_, err := svc.Update(context.Background(), 1, WinInput{Title: ptr("  ")})
	if code, _ := domain.ValidationCode(err); code != domain.CodeTitleRequired {
		t.Fatalf("expected title-required, got %v", err)
	}
	if len(mock.UpdateCalls()) != 0 {
		t.Error("repository must not be called when validation fails")
	}
}

// ---------------------------------------------------------------------------
// Delete / List / Get
// ---------------------------------------------------------------------------

func TestDelete_Success(t *testing.T) {
	t.Parallel()

	mock := &tinyWinRepoMock{
		DeleteFunc: func(_ context.Context, id int64) (*domain.TinyWin, error) {
			return &domain.TinyWin{ID: id, Title: "gone"}, nil
		},
	}
	svc := newTestService(t, mock)

	got, err := svc.Delete(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 5 {
		t.Errorf("id: got %d, want 5", got.ID)
	}
	if calls := mock.DeleteCalls(); len(calls) != 1 || calls[0] != 5 {
		t.Errorf("Delete calls: %v", calls)
	}
}

func TestDelete_NotFound(t *testing.T) {
	t.Parallel()

	mock := &tinyWinRepoMock{
		DeleteFunc: func(context.Context, int64) (*domain.TinyWin, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := newTestService(t, mock)

	_, err := svc.Delete(context.Background(), 5)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestList_MapsInOrder(t *testing.T) {
	t.Parallel()

	t1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock := &tinyWinRepoMock{
		ListFunc: func(context.Context) ([]domain.TinyWin, error) {
			return []domain.TinyWin{
				{ID: 2, Title: "b", CompletedAt: &t1, CreatedAt: &t1},
				{ID: 1, Title: "a", CompletedAt: &t2, CreatedAt: &t2},
			}, nil
		},
	}
	svc := newTestService(t, mock)

	got, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 1 {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestList_EmptyIsNotNil(t *testing.T) {
	t.Parallel()

	mock := &tinyWinRepoMock{
		ListFunc: func(context.Context) ([]domain.TinyWin, error) { return nil, nil },
	}
	svc := newTestService(t, mock)

	got, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
}

func TestGet_NotFound(t *testing.T) {
	t.Parallel()

	mock := &tinyWinRepoMock{
		GetByIDFunc: func(context.Context, int64) (*domain.TinyWin, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := newTestService(t, mock)

	_, err := svc.Get(context.Background(), 1)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
