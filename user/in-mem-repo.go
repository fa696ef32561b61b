package user

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// InMemUserRepo is an in-memory UserRepo for tests and local runs.
type InMemUserRepo struct {
	mu   sync.Mutex
	rows map[string]*UserRow
}

func NewInMemUserRepo() *InMemUserRepo {
	return &InMemUserRepo{rows: make(map[string]*UserRow)}
}

func (r *InMemUserRepo) Get(ctx context.Context, uuid uuid.UUID) (*UserRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[uuid.String()]
	if !ok {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

func (r *InMemUserRepo) List(ctx context.Context) ([]*UserRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]*UserRow, 0, len(r.rows))
	for _, row := range r.rows {
		copied := *row
		users = append(users, &copied)
	}
	return users, nil
}

func (r *InMemUserRepo) Save(ctx context.Context, user *UserRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.Version++
	copied := *user
	r.rows[user.Uuid] = &copied
	return nil
}
