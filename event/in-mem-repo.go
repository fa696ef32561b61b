package event

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// InMemEventRepo is an in-memory EventRepo for tests and local runs.
type InMemEventRepo struct {
	mu   sync.Mutex
	rows map[string]*EventRow
}

func NewInMemEventRepo() *InMemEventRepo {
	return &InMemEventRepo{rows: make(map[string]*EventRow)}
}

func (r *InMemEventRepo) Get(ctx context.Context, uuid uuid.UUID) (*EventRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[uuid.String()]
	if !ok {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

func (r *InMemEventRepo) List(ctx context.Context) ([]*EventRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	events := make([]*EventRow, 0, len(r.rows))
	for _, row := range r.rows {
		copied := *row
		events = append(events, &copied)
	}
	return events, nil
}

func (r *InMemEventRepo) Save(ctx context.Context, event *EventRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event.Version++
	copied := *event
	r.rows[event.Uuid] = &copied
	return nil
}
