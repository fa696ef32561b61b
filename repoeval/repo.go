package repoeval

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status tracks the evaluation pipeline state machine. FAILED is an
// absorbing state reachable from any step.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAcquiring Status = "acquiring"
	StatusScanning  Status = "scanning"
	StatusSampling  Status = "sampling"
	StatusRating    Status = "rating"
	StatusComposing Status = "composing"
	StatusNarrating Status = "narrating"
	StatusRendering Status = "rendering"
	StatusDone      Status = "done"
	StatusFailed    Status = "failed"
)

// EvalRow is the persisted evaluation record. The result is attached by a
// partial update once the async pipeline completes; the report PDF lives
// in the artifact store, referenced by key.
type EvalRow struct {
	EvalUuid    string    `dynamo:"eval_uuid,hash"`
	RepoUrl     string    `dynamo:"repo_url"`
	Desc        string    `dynamo:"desc"`
	Status      string    `dynamo:"status"`
	ErrorMsg    string    `dynamo:"error_msg,omitempty"`
	Result      *Result   `dynamo:"result,omitempty"`
	ReportKey   string    `dynamo:"report_key,omitempty"`
	ExcerptsKey string    `dynamo:"excerpts_key,omitempty"`
	CreatedAt   time.Time `dynamo:"created_at"`
	UpdatedAt   time.Time `dynamo:"updated_at"`
}

// EvalRepo persists evaluation records keyed by a generated id.
type EvalRepo interface {
	Create(ctx context.Context, row *EvalRow) error
	SetStatus(ctx context.Context, id uuid.UUID, status Status) error
	SetFailed(ctx context.Context, id uuid.UUID, errMsg string) error
	SetCompleted(ctx context.Context, id uuid.UUID, res *Result, reportKey string, excerptsKey string) error

	// Get returns nil when the evaluation does not exist.
	Get(ctx context.Context, id uuid.UUID) (*EvalRow, error)
}

// ArtifactStore holds the binary artifacts of an evaluation: the rendered
// report and the archived excerpts the rating was based on.
type ArtifactStore interface {
	SaveReport(ctx context.Context, evalID uuid.UUID, pdf []byte) (key string, err error)
	SaveExcerpts(ctx context.Context, evalID uuid.UUID, excerpts []Excerpt) (key string, err error)
	GetReport(ctx context.Context, key string) ([]byte, error)
}
