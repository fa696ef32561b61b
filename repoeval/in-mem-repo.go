package repoeval

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemEvalRepo is an in-memory EvalRepo for tests and local runs.
type InMemEvalRepo struct {
	mu   sync.Mutex
	rows map[string]*EvalRow
}

func NewInMemEvalRepo() *InMemEvalRepo {
	return &InMemEvalRepo{rows: make(map[string]*EvalRow)}
}

func (r *InMemEvalRepo) Create(ctx context.Context, row *EvalRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	row.CreatedAt = now
	row.UpdatedAt = now
	copied := *row
	r.rows[row.EvalUuid] = &copied
	return nil
}

func (r *InMemEvalRepo) SetStatus(ctx context.Context, id uuid.UUID, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id.String()]
	if !ok {
		return fmt.Errorf("evaluation %s not found", id)
	}
	row.Status = string(status)
	row.UpdatedAt = time.Now()
	return nil
}

func (r *InMemEvalRepo) SetFailed(ctx context.Context, id uuid.UUID, errMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id.String()]
	if !ok {
		return fmt.Errorf("evaluation %s not found", id)
	}
	row.Status = string(StatusFailed)
	row.ErrorMsg = errMsg
	row.UpdatedAt = time.Now()
	return nil
}

func (r *InMemEvalRepo) SetCompleted(ctx context.Context, id uuid.UUID, res *Result, reportKey string, excerptsKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id.String()]
	if !ok {
		return fmt.Errorf("evaluation %s not found", id)
	}
	row.Status = string(StatusDone)
	row.Result = res
	row.ReportKey = reportKey
	row.ExcerptsKey = excerptsKey
	row.UpdatedAt = time.Now()
	return nil
}

func (r *InMemEvalRepo) Get(ctx context.Context, id uuid.UUID) (*EvalRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id.String()]
	if !ok {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

// InMemArtifactStore keeps artifacts in memory for tests.
type InMemArtifactStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewInMemArtifactStore() *InMemArtifactStore {
	return &InMemArtifactStore{blobs: make(map[string][]byte)}
}

func (s *InMemArtifactStore) SaveReport(ctx context.Context, evalID uuid.UUID, pdf []byte) (string, error) {
	key := fmt.Sprintf("evaluations/%s/report.pdf", evalID)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = pdf
	return key, nil
}

func (s *InMemArtifactStore) SaveExcerpts(ctx context.Context, evalID uuid.UUID, excerpts []Excerpt) (string, error) {
	key := fmt.Sprintf("evaluations/%s/excerpts.txt", evalID)
	var joined []byte
	for _, excerpt := range excerpts {
		joined = append(joined, excerpt.Text...)
		joined = append(joined, '\n', '\n')
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = joined
	return key, nil
}

func (s *InMemArtifactStore) GetReport(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	blob, ok := s.blobs[key]
	if !ok {
		return nil, fmt.Errorf("artifact %s not found", key)
	}
	return blob, nil
}
