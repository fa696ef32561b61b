package subm

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// InMemSubmRepo is an in-memory SubmRepo for tests and local runs.
type InMemSubmRepo struct {
	mu   sync.Mutex
	rows map[string]*SubmRow
}

func NewInMemSubmRepo() *InMemSubmRepo {
	return &InMemSubmRepo{rows: make(map[string]*SubmRow)}
}

func (r *InMemSubmRepo) Get(ctx context.Context, uuid uuid.UUID) (*SubmRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[uuid.String()]
	if !ok {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

func (r *InMemSubmRepo) ListByEvent(ctx context.Context, eventUuid uuid.UUID) ([]*SubmRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	subms := make([]*SubmRow, 0)
	for _, row := range r.rows {
		if row.EventUuid != eventUuid.String() {
			continue
		}
		copied := *row
		subms = append(subms, &copied)
	}
	return subms, nil
}

func (r *InMemSubmRepo) Save(ctx context.Context, subm *SubmRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	subm.Version++
	copied := *subm
	r.rows[subm.Uuid] = &copied
	return nil
}

func (r *InMemSubmRepo) DeleteByTeam(ctx context.Context, teamUuid uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, row := range r.rows {
		if row.TeamUuid == teamUuid.String() {
			delete(r.rows, key)
		}
	}
	return nil
}
