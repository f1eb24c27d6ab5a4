package accounts

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/models"
)

// InMemoryRepository is a map-backed Repository for tests and local runs.
// A single mutex makes the check-then-insert in Create atomic, so racing
// creations observe the same duplicate-key semantics as the Postgres
// implementation.
type InMemoryRepository struct {
	mu         sync.Mutex
	nextID     int64
	byID       map[int64]*models.Account
	byUsername map[string]int64
	byEmail    map[string]int64
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		nextID:     1,
		byID:       make(map[int64]*models.Account),
		byUsername: make(map[string]int64),
		byEmail:    make(map[string]int64),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUsername[account.Username]; ok {
		return nil, common.ErrDuplicateUsername
	}
	if _, ok := r.byEmail[account.Email]; ok {
		return nil, common.ErrDuplicateEmail
	}

	stored := *account
	stored.ID = r.nextID
	r.nextID++

	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.byID[stored.ID] = &stored
	r.byUsername[stored.Username] = stored.ID
	r.byEmail[stored.Email] = stored.ID

	out := stored
	return &out, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(id)
}

func (r *InMemoryRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.get(id)
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.get(id)
}

func (r *InMemoryRepository) GetByActivationToken(ctx context.Context, token string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if token == "" {
		return nil, common.ErrorNotFound
	}
	for _, a := range r.byID {
		if a.ActivationToken == token {
			out := *a
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *InMemoryRepository) Update(ctx context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[account.ID]
	if !ok {
		return common.ErrorNotFound
	}

	if id, ok := r.byUsername[account.Username]; ok && id != account.ID {
		return common.ErrDuplicateUsername
	}
	if id, ok := r.byEmail[account.Email]; ok && id != account.ID {
		return common.ErrDuplicateEmail
	}

	delete(r.byUsername, current.Username)
	delete(r.byEmail, current.Email)

	stored := *account
	stored.CreatedAt = current.CreatedAt
	stored.UpdatedAt = time.Now()

	r.byID[stored.ID] = &stored
	r.byUsername[stored.Username] = stored.ID
	r.byEmail[stored.Email] = stored.ID

	account.UpdatedAt = stored.UpdatedAt
	return nil
}

// get returns a copy so callers cannot mutate stored state without Update.
// Callers must hold r.mu.
func (r *InMemoryRepository) get(id int64) (*models.Account, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *a
	return &out, nil
}
