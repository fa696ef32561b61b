package subm

import (
	"time"

	"github.com/google/uuid"
)

// Submission lifecycle. Deck and viva submissions complete immediately;
// repository submissions stay processing until the evaluation pipeline
// finishes.
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusError      = "error"
)

type Subm struct {
	UUID      uuid.UUID
	EventUuid uuid.UUID
	TeamUuid  uuid.UUID
	RoundID   string // ppt | repo | viva

	FileUrl  string // slide deck object URL
	RepoUrl  string
	VideoUrl string

	// AiOverall is the AI-assigned overall score for a deck submission,
	// recorded from the external slide analysis.
	AiOverall *float64
	// VivaScore is the total score of the team's viva session.
	VivaScore *float64
	// Score is the organizer's manual override, set via score patch.
	Score *float64
	// FinalScore is the repository evaluation outcome, attached when the
	// pipeline completes.
	FinalScore *float64

	EvalUuid    string
	Status      string
	ErrorMsg    string
	SubmittedAt time.Time
}
