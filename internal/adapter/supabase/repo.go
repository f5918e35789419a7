package supabase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/heartmarshall/tinywin-backend/internal/domain"
)

const (
	tableName  = "tiny-win"
	entity     = "tiny_win"
	listOrder  = "completed_at.desc,created_at.desc"
	preferRepr = "return=representation"
)

// row is the PostgREST JSON shape of a tiny-win row.
type row struct {
	ID          int64      `json:"id"`
	CreatedAt   *time.Time `json:"created_at"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Category    *string    `json:"category"`
	CompletedAt *time.Time `json:"completed_at"`
}

// writeBody is sent on insert and update; id and created_at are left to the database.
type writeBody struct {
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	CompletedAt time.Time `json:"completed_at"`
}

func (r row) toDomain() domain.TinyWin {
	return domain.TinyWin{
		ID:          r.ID,
		CreatedAt:   r.CreatedAt,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		CompletedAt: r.CompletedAt,
	}
}

func toWriteBody(f domain.TinyWinFields) writeBody {
	return writeBody{
		Title:       f.Title,
		Description: f.Description,
		Category:    f.Category,
		CompletedAt: f.CompletedAt.UTC(),
	}
}

// Repo is the TinyWin repository backed by PostgREST.
type Repo struct {
	client *Client
}

// NewRepo creates a repository on top of c.
func NewRepo(c *Client) *Repo {
	return &Repo{client: c}
}

// Ping delegates to the client.
func (r *Repo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}

// List returns every row, most recently completed first.
func (r *Repo) List(ctx context.Context) ([]domain.TinyWin, error) {
	var rows []row
	resp, err := r.client.table(ctx).
		SetQueryParam("select", "*").
		SetQueryParam("order", listOrder).
		SetResult(&rows).
		Get(restPrefix + tableName)
	if err := checkResponse(resp, err, "list "+entity); err != nil {
		return nil, err
	}

	wins := make([]domain.TinyWin, len(rows))
	for i, rw := range rows {
		wins[i] = rw.toDomain()
	}
	return wins, nil
}

// GetByID returns row id or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.TinyWin, error) {
	var rows []row
	resp, err := r.client.table(ctx).
		SetQueryParam("select", "*").
		SetQueryParam("id", eq(id)).
		SetResult(&rows).
		Get(restPrefix + tableName)
	if err := checkResponse(resp, err, "get "+entity); err != nil {
		return nil, err
	}

	return single(rows, id)
}

// Create inserts a row and returns the stored representation.
func (r *Repo) Create(ctx context.Context, fields domain.TinyWinFields) (*domain.TinyWin, error) {
	var rows []row
	resp, err := r.client.table(ctx).
		SetHeader("Prefer", preferRepr).
		SetHeader("Content-Type", "application/json").
		SetBody(toWriteBody(fields)).
		SetResult(&rows).
		Post(restPrefix + tableName)
	if err := checkResponse(resp, err, "create "+entity); err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("supabase create %s: %w: empty representation", entity, domain.ErrStorage)
	}
	w := rows[0].toDomain()
	return &w, nil
}

// Update replaces every mutable field of row id.
func (r *Repo) Update(ctx context.Context, id int64, fields domain.TinyWinFields) (*domain.TinyWin, error) {
	var rows []row
	resp, err := r.client.table(ctx).
		SetHeader("Prefer", preferRepr).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("id", eq(id)).
		SetBody(toWriteBody(fields)).
		SetResult(&rows).
		Patch(restPrefix + tableName)
	if err := checkResponse(resp, err, "update "+entity); err != nil {
		return nil, err
	}

	return single(rows, id)
}

// Delete removes row id and returns it.
func (r *Repo) Delete(ctx context.Context, id int64) (*domain.TinyWin, error) {
	var rows []row
	resp, err := r.client.table(ctx).
		SetHeader("Prefer", preferRepr).
		SetQueryParam("id", eq(id)).
		SetResult(&rows).
		Delete(restPrefix + tableName)
	if err := checkResponse(resp, err, "delete "+entity); err != nil {
		return nil, err
	}

	return single(rows, id)
}

func eq(id int64) string {
	return "eq." + strconv.FormatInt(id, 10)
}

// single picks the only row of a filtered result; none means the id is unknown.
func single(rows []row, id int64) (*domain.TinyWin, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s %d: %w", entity, id, domain.ErrNotFound)
	}
	w := rows[0].toDomain()
	return &w, nil
}
