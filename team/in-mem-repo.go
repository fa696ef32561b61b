package team

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// InMemTeamRepo is an in-memory TeamRepo for tests and local runs.
type InMemTeamRepo struct {
	mu   sync.Mutex
	rows map[string]*TeamRow
}

func NewInMemTeamRepo() *InMemTeamRepo {
	return &InMemTeamRepo{rows: make(map[string]*TeamRow)}
}

func (r *InMemTeamRepo) Get(ctx context.Context, uuid uuid.UUID) (*TeamRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[uuid.String()]
	if !ok {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

func (r *InMemTeamRepo) ListByEvent(ctx context.Context, eventUuid uuid.UUID) ([]*TeamRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	teams := make([]*TeamRow, 0)
	for _, row := range r.rows {
		if row.EventUuid != eventUuid.String() {
			continue
		}
		copied := *row
		teams = append(teams, &copied)
	}
	return teams, nil
}

func (r *InMemTeamRepo) Save(ctx context.Context, team *TeamRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	team.Version++
	copied := *team
	r.rows[team.Uuid] = &copied
	return nil
}

func (r *InMemTeamRepo) Delete(ctx context.Context, uuid uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, uuid.String())
	return nil
}
