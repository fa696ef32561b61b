package subm

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wailsapp/mimetype"

	"github.com/hackside/backend/event"
	"github.com/hackside/backend/logger"
	"github.com/hackside/backend/repoeval"
	"github.com/hackside/backend/team"
)

// TeamFinder resolves the caller's team, implemented by team.TeamSrvc.
type TeamFinder interface {
	MyTeam(ctx context.Context, callerUuid string, eventUuid uuid.UUID) (*team.Team, error)
}

// EventGetter resolves events, implemented by event.EventSrvc.
type EventGetter interface {
	Get(ctx context.Context, eventUuid uuid.UUID) (*event.Event, error)
}

// Evaluator runs the repository evaluation pipeline, implemented by
// repoeval.Srvc.
type Evaluator interface {
	StartEvaluation(ctx context.Context, repoUrl string, desc string) (uuid.UUID, error)
	Evaluate(ctx context.Context, evalID uuid.UUID, repoUrl string, desc string) (*repoeval.Result, error)
	Fail(ctx context.Context, evalID uuid.UUID, reason string) error
}

// Uploader stores binary objects and returns their public URL.
// Satisfied by s3bucket.S3Bucket.
type Uploader interface {
	Upload(ctx context.Context, content []byte, key string, mediaType string) (string, error)
}

type SubmSrvc struct {
	repo   SubmRepo
	teams  TeamFinder
	events EventGetter
	evals  Evaluator
	decks  Uploader

	// evalWg tracks in-flight background evaluations so a graceful
	// shutdown (and tests) can wait for them.
	evalWg sync.WaitGroup
}

func NewSubmSrvc(repo SubmRepo, teams TeamFinder, events EventGetter, evals Evaluator, decks Uploader) *SubmSrvc {
	return &SubmSrvc{
		repo:   repo,
		teams:  teams,
		events: events,
		evals:  evals,
		decks:  decks,
	}
}

// WaitForEvals blocks until all background evaluations have finished.
func (s *SubmSrvc) WaitForEvals() {
	s.evalWg.Wait()
}

// CreateDeckSubm stores a slide deck for the caller's team. One deck
// submission per team per event.
func (s *SubmSrvc) CreateDeckSubm(ctx context.Context, callerUuid string, eventUuid uuid.UUID, filename string, content []byte) (*Subm, error) {
	callerTeam, err := s.requireTeam(ctx, callerUuid, eventUuid)
	if err != nil {
		return nil, err
	}
	if err := s.requireNoSubm(ctx, eventUuid, callerTeam.UUID, event.RoundPpt); err != nil {
		return nil, err
	}

	mediaType := "application/octet-stream"
	if mType := mimetype.Detect(content); mType != nil {
		mediaType = mType.String()
	}

	key := fmt.Sprintf("events/%s/teams/%s/deck/%s", eventUuid, callerTeam.UUID, filename)
	fileUrl, err := s.decks.Upload(ctx, content, key, mediaType)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}

	row := &SubmRow{
		Uuid:        uuid.New().String(),
		EventUuid:   eventUuid.String(),
		TeamUuid:    callerTeam.UUID.String(),
		RoundID:     event.RoundPpt,
		FileUrl:     fileUrl,
		Status:      StatusCompleted,
		SubmittedAt: time.Now(),
	}
	if err := s.repo.Save(ctx, row); err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}

	return rowToSubm(row)
}

// CreateRepoSubm records a repository submission and starts the async
// evaluation pipeline. The submission stays processing until the pipeline
// attaches its result.
func (s *SubmSrvc) CreateRepoSubm(ctx context.Context, callerUuid string, eventUuid uuid.UUID, repoUrl string, videoUrl string) (*Subm, error) {
	if repoUrl == "" {
		return nil, newErrRepoUrlEmpty()
	}
	callerTeam, err := s.requireTeam(ctx, callerUuid, eventUuid)
	if err != nil {
		return nil, err
	}
	if err := s.requireNoSubm(ctx, eventUuid, callerTeam.UUID, event.RoundRepo); err != nil {
		return nil, err
	}

	ev, err := s.events.Get(ctx, eventUuid)
	if err != nil {
		return nil, err
	}

	evalID, err := s.evals.StartEvaluation(ctx, repoUrl, ev.Description)
	if err != nil {
		return nil, err
	}

	row := &SubmRow{
		Uuid:        uuid.New().String(),
		EventUuid:   eventUuid.String(),
		TeamUuid:    callerTeam.UUID.String(),
		RoundID:     event.RoundRepo,
		RepoUrl:     repoUrl,
		VideoUrl:    videoUrl,
		EvalUuid:    evalID.String(),
		Status:      StatusProcessing,
		SubmittedAt: time.Now(),
	}
	if err := s.repo.Save(ctx, row); err != nil {
		// the pending eval row must not outlive its submission
		if failErr := s.evals.Fail(ctx, evalID, "submission could not be stored"); failErr != nil {
			logger.FromContext(ctx).Error("failed to mark orphaned evaluation as failed",
				"eval", evalID, "error", failErr)
		}
		return nil, newErrInternalSE().SetDebug(err)
	}

	submUuid := uuid.MustParse(row.Uuid)
	evalCtx := context.WithoutCancel(ctx)
	s.evalWg.Add(1)
	go func() {
		defer s.evalWg.Done()
		s.runEvaluation(evalCtx, submUuid, evalID, repoUrl, ev.Description)
	}()

	return rowToSubm(row)
}

// runEvaluation drives the pipeline for one repository submission and
// attaches the outcome to the submission row.
func (s *SubmSrvc) runEvaluation(ctx context.Context, submUuid uuid.UUID, evalID uuid.UUID, repoUrl string, desc string) {
	log := logger.FromContext(ctx)

	res, err := s.evals.Evaluate(ctx, evalID, repoUrl, desc)

	row, getErr := s.repo.Get(ctx, submUuid)
	if getErr != nil || row == nil {
		log.Error("failed to load submission after evaluation",
			"subm", submUuid, "error", getErr)
		return
	}

	if err != nil {
		row.Status = StatusError
		row.ErrorMsg = err.Error()
	} else {
		row.Status = StatusCompleted
		row.FinalScore = &res.FinalScore
	}
	if saveErr := s.repo.Save(ctx, row); saveErr != nil {
		log.Error("failed to persist evaluation outcome on submission",
			"subm", submUuid, "error", saveErr)
	}
}

// RecordAiOverall lets the event organizer attach the AI overall score to
// a deck submission. It is what the ppt round of the leaderboard reads.
func (s *SubmSrvc) RecordAiOverall(ctx context.Context, callerUuid string, eventUuid uuid.UUID, submUuid uuid.UUID, score float64) (*Subm, error) {
	ev, err := s.events.Get(ctx, eventUuid)
	if err != nil {
		return nil, err
	}
	if ev.OrganizerUuid.String() != callerUuid {
		return nil, newErrNotOrganizer()
	}

	row, err := s.getRow(ctx, submUuid)
	if err != nil {
		return nil, err
	}
	if row.EventUuid != eventUuid.String() {
		return nil, newErrSubmNotFound()
	}

	row.AiOverall = &score
	if err := s.repo.Save(ctx, row); err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	return rowToSubm(row)
}

// RecordVivaScore upserts the viva total score for a team.
func (s *SubmSrvc) RecordVivaScore(ctx context.Context, eventUuid uuid.UUID, teamUuid uuid.UUID, score float64) (*Subm, error) {
	row, err := s.findByTeamRound(ctx, eventUuid, teamUuid, event.RoundViva)
	if err != nil {
		return nil, err
	}
	if row == nil {
		row = &SubmRow{
			Uuid:        uuid.New().String(),
			EventUuid:   eventUuid.String(),
			TeamUuid:    teamUuid.String(),
			RoundID:     event.RoundViva,
			Status:      StatusCompleted,
			SubmittedAt: time.Now(),
		}
	}
	row.VivaScore = &score
	if err := s.repo.Save(ctx, row); err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	return rowToSubm(row)
}

// PatchScore lets the event organizer set a manual score for a team's
// round, creating the submission record when none exists.
func (s *SubmSrvc) PatchScore(ctx context.Context, callerUuid string, eventUuid uuid.UUID, roundID string, teamUuid uuid.UUID, score float64) (*Subm, error) {
	if roundID != event.RoundPpt && roundID != event.RoundRepo && roundID != event.RoundViva {
		return nil, newErrInvalidRound()
	}

	ev, err := s.events.Get(ctx, eventUuid)
	if err != nil {
		return nil, err
	}
	if ev.OrganizerUuid.String() != callerUuid {
		return nil, newErrNotOrganizer()
	}

	row, err := s.findByTeamRound(ctx, eventUuid, teamUuid, roundID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		row = &SubmRow{
			Uuid:        uuid.New().String(),
			EventUuid:   eventUuid.String(),
			TeamUuid:    teamUuid.String(),
			RoundID:     roundID,
			Status:      StatusCompleted,
			SubmittedAt: time.Now(),
		}
	}
	row.Score = &score
	if err := s.repo.Save(ctx, row); err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	return rowToSubm(row)
}

// Get returns one submission.
func (s *SubmSrvc) Get(ctx context.Context, submUuid uuid.UUID) (*Subm, error) {
	row, err := s.getRow(ctx, submUuid)
	if err != nil {
		return nil, err
	}
	return rowToSubm(row)
}

// ListByEventGrouped returns the event's submissions keyed by round.
func (s *SubmSrvc) ListByEventGrouped(ctx context.Context, eventUuid uuid.UUID) (map[string][]*Subm, error) {
	rows, err := s.repo.ListByEvent(ctx, eventUuid)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}

	grouped := map[string][]*Subm{
		event.RoundPpt:  {},
		event.RoundRepo: {},
		event.RoundViva: {},
	}
	for _, row := range rows {
		subm, err := rowToSubm(row)
		if err != nil {
			return nil, err
		}
		grouped[row.RoundID] = append(grouped[row.RoundID], subm)
	}
	return grouped, nil
}

// MySubmissions returns the caller's team submissions keyed by round, or
// an empty map when the caller has no team.
func (s *SubmSrvc) MySubmissions(ctx context.Context, callerUuid string, eventUuid uuid.UUID) (map[string]*Subm, error) {
	callerTeam, err := s.teams.MyTeam(ctx, callerUuid, eventUuid)
	if err != nil {
		return nil, err
	}
	indexed := make(map[string]*Subm)
	if callerTeam == nil {
		return indexed, nil
	}

	rows, err := s.repo.ListByEvent(ctx, eventUuid)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	for _, row := range rows {
		if row.TeamUuid != callerTeam.UUID.String() {
			continue
		}
		subm, err := rowToSubm(row)
		if err != nil {
			return nil, err
		}
		indexed[row.RoundID] = subm
	}
	return indexed, nil
}

// DeleteByTeam removes all submissions of a team. Used by the team
// deletion cascade.
func (s *SubmSrvc) DeleteByTeam(ctx context.Context, teamUuid uuid.UUID) error {
	if err := s.repo.DeleteByTeam(ctx, teamUuid); err != nil {
		return newErrInternalSE().SetDebug(err)
	}
	return nil
}

func (s *SubmSrvc) requireTeam(ctx context.Context, callerUuid string, eventUuid uuid.UUID) (*team.Team, error) {
	callerTeam, err := s.teams.MyTeam(ctx, callerUuid, eventUuid)
	if err != nil {
		return nil, err
	}
	if callerTeam == nil {
		return nil, newErrNotInTeam()
	}
	return callerTeam, nil
}

func (s *SubmSrvc) requireNoSubm(ctx context.Context, eventUuid uuid.UUID, teamUuid uuid.UUID, roundID string) error {
	existing, err := s.findByTeamRound(ctx, eventUuid, teamUuid, roundID)
	if err != nil {
		return err
	}
	if existing != nil {
		return newErrAlreadySubmitted()
	}
	return nil
}

func (s *SubmSrvc) findByTeamRound(ctx context.Context, eventUuid uuid.UUID, teamUuid uuid.UUID, roundID string) (*SubmRow, error) {
	rows, err := s.repo.ListByEvent(ctx, eventUuid)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	for _, row := range rows {
		if row.TeamUuid == teamUuid.String() && row.RoundID == roundID {
			return row, nil
		}
	}
	return nil, nil
}

func (s *SubmSrvc) getRow(ctx context.Context, submUuid uuid.UUID) (*SubmRow, error) {
	row, err := s.repo.Get(ctx, submUuid)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	if row == nil {
		return nil, newErrSubmNotFound()
	}
	return row, nil
}

func rowToSubm(row *SubmRow) (*Subm, error) {
	submUuid, err := uuid.Parse(row.Uuid)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	eventUuid, err := uuid.Parse(row.EventUuid)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	teamUuid, err := uuid.Parse(row.TeamUuid)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	return &Subm{
		UUID:        submUuid,
		EventUuid:   eventUuid,
		TeamUuid:    teamUuid,
		RoundID:     row.RoundID,
		FileUrl:     row.FileUrl,
		RepoUrl:     row.RepoUrl,
		VideoUrl:    row.VideoUrl,
		AiOverall:   row.AiOverall,
		VivaScore:   row.VivaScore,
		Score:       row.Score,
		FinalScore:  row.FinalScore,
		EvalUuid:    row.EvalUuid,
		Status:      row.Status,
		ErrorMsg:    row.ErrorMsg,
		SubmittedAt: row.SubmittedAt,
	}, nil
}
