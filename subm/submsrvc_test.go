package subm

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackside/backend/event"
	"github.com/hackside/backend/leaderboard"
	"github.com/hackside/backend/repoeval"
	"github.com/hackside/backend/srvcerror"
	"github.com/hackside/backend/team"
)

// fakeEvaluator completes instantly with a fixed score, or fails.
type fakeEvaluator struct {
	mu     sync.Mutex
	score  float64
	err    error
	runs   int
	evalID uuid.UUID
	failed map[uuid.UUID]string
}

func (e *fakeEvaluator) StartEvaluation(ctx context.Context, repoUrl string, desc string) (uuid.UUID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, err
	}
	e.mu.Lock()
	e.evalID = id
	e.mu.Unlock()
	return id, nil
}

func (e *fakeEvaluator) Evaluate(ctx context.Context, evalID uuid.UUID, repoUrl string, desc string) (*repoeval.Result, error) {
	e.mu.Lock()
	e.runs++
	e.mu.Unlock()
	if e.err != nil {
		return nil, e.err
	}
	return &repoeval.Result{FinalScore: e.score}, nil
}

func (e *fakeEvaluator) Fail(ctx context.Context, evalID uuid.UUID, reason string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.failed == nil {
		e.failed = make(map[uuid.UUID]string)
	}
	e.failed[evalID] = reason
	return nil
}

type fakeUploader struct {
	mu    sync.Mutex
	blobs map[string][]byte
	types map[string]string
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{
		blobs: make(map[string][]byte),
		types: make(map[string]string),
	}
}

func (u *fakeUploader) Upload(ctx context.Context, content []byte, key string, mediaType string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.blobs[key] = content
	u.types[key] = mediaType
	return "https://cdn.example.com/" + key, nil
}

type fixture struct {
	subms     *SubmSrvc
	teams     *team.TeamSrvc
	events    *event.EventSrvc
	evaluator *fakeEvaluator
	uploader  *fakeUploader

	eventUuid uuid.UUID
	organizer uuid.UUID
	leader    team.Member
	teamUuid  uuid.UUID
}

type nopUploader struct{}

func (nopUploader) Upload(ctx context.Context, content []byte, key string, mediaType string) (string, error) {
	return "https://cdn.example.com/" + key, nil
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	events := event.NewEventSrvc(event.NewInMemEventRepo(), nopUploader{})
	teams := team.NewTeamSrvc(team.NewInMemTeamRepo(), events)
	evaluator := &fakeEvaluator{score: 91.5}
	uploader := newFakeUploader()
	subms := NewSubmSrvc(NewInMemSubmRepo(), teams, events, evaluator, uploader)
	teams.SetSubmCleaner(subms)

	organizer := uuid.New()
	ev, err := events.Create(ctx, organizer, event.CreateEventParams{
		Name:        "Test Event",
		Description: "build something great",
		Date:        time.Now().AddDate(0, 1, 0),
		MaxTeams:    10,
		MinMembers:  1,
		MaxMembers:  4,
	})
	require.NoError(t, err)

	leader := team.Member{
		UserUuid: uuid.New().String(),
		Username: "alice",
		Email:    "alice@example.com",
	}
	createdTeam, err := teams.Create(ctx, leader, ev.UUID, "Rocket")
	require.NoError(t, err)

	return &fixture{
		subms:     subms,
		teams:     teams,
		events:    events,
		evaluator: evaluator,
		uploader:  uploader,
		eventUuid: ev.UUID,
		organizer: organizer,
		leader:    leader,
		teamUuid:  createdTeam.UUID,
	}
}

func assertErrCode(t *testing.T, err error, code string) {
	t.Helper()
	var srvcErr *srvcerror.Error
	require.True(t, errors.As(err, &srvcErr), "expected *srvcerror.Error, got %T", err)
	assert.Equal(t, code, srvcErr.ErrorCode())
}

func TestCreateDeckSubm(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// PNG header so mimetype detection has something to chew on
	content := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
	created, err := f.subms.CreateDeckSubm(ctx, f.leader.UserUuid, f.eventUuid, "pitch.png", content)
	require.NoError(t, err)
	assert.Equal(t, event.RoundPpt, created.RoundID)
	assert.Equal(t, StatusCompleted, created.Status)
	assert.NotEmpty(t, created.FileUrl)

	key := "events/" + f.eventUuid.String() + "/teams/" + f.teamUuid.String() + "/deck/pitch.png"
	assert.Equal(t, content, f.uploader.blobs[key])
	assert.Equal(t, "image/png", f.uploader.types[key])

	// one deck per team per event
	_, err = f.subms.CreateDeckSubm(ctx, f.leader.UserUuid, f.eventUuid, "again.png", content)
	assertErrCode(t, err, ErrCodeAlreadySubmitted)
}

func TestCreateDeckSubmRequiresTeam(t *testing.T) {
	f := newFixture(t)
	_, err := f.subms.CreateDeckSubm(context.Background(), uuid.New().String(),
		f.eventUuid, "pitch.pdf", []byte("%PDF-1.4"))
	assertErrCode(t, err, ErrCodeNotInTeam)
}

func TestCreateRepoSubmRunsEvaluation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.subms.CreateRepoSubm(ctx, f.leader.UserUuid, f.eventUuid,
		"https://example.com/demo.git", "https://example.com/video")
	require.NoError(t, err)
	assert.Equal(t, StatusProcessing, created.Status)
	assert.NotEmpty(t, created.EvalUuid)

	f.subms.WaitForEvals()

	updated, err := f.subms.Get(ctx, created.UUID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, updated.Status)
	require.NotNil(t, updated.FinalScore)
	assert.Equal(t, 91.5, *updated.FinalScore)
	assert.Equal(t, 1, f.evaluator.runs)
}

func TestCreateRepoSubmEvaluationFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.evaluator.err = errors.New("clone timed out")

	created, err := f.subms.CreateRepoSubm(ctx, f.leader.UserUuid, f.eventUuid,
		"https://example.com/demo.git", "")
	require.NoError(t, err)

	f.subms.WaitForEvals()

	updated, err := f.subms.Get(ctx, created.UUID)
	require.NoError(t, err)
	assert.Equal(t, StatusError, updated.Status)
	assert.Equal(t, "clone timed out", updated.ErrorMsg)
	assert.Nil(t, updated.FinalScore)
}

// failingSaveRepo rejects every write.
type failingSaveRepo struct {
	SubmRepo
}

func (r *failingSaveRepo) Save(ctx context.Context, row *SubmRow) error {
	return errors.New("table unavailable")
}

func TestCreateRepoSubmSaveFailureFailsEvaluation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	broken := NewSubmSrvc(&failingSaveRepo{SubmRepo: NewInMemSubmRepo()},
		f.teams, f.events, f.evaluator, f.uploader)

	_, err := broken.CreateRepoSubm(ctx, f.leader.UserUuid, f.eventUuid,
		"https://example.com/demo.git", "")
	require.Error(t, err)

	// the pending eval row must not be left orphaned
	f.evaluator.mu.Lock()
	defer f.evaluator.mu.Unlock()
	require.Contains(t, f.evaluator.failed, f.evaluator.evalID)
}

func TestCreateRepoSubmValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.subms.CreateRepoSubm(ctx, f.leader.UserUuid, f.eventUuid, "", "")
	assertErrCode(t, err, ErrCodeRepoUrlEmpty)

	_, err = f.subms.CreateRepoSubm(ctx, f.leader.UserUuid, f.eventUuid,
		"https://example.com/demo.git", "")
	require.NoError(t, err)
	f.subms.WaitForEvals()

	_, err = f.subms.CreateRepoSubm(ctx, f.leader.UserUuid, f.eventUuid,
		"https://example.com/other.git", "")
	assertErrCode(t, err, ErrCodeAlreadySubmitted)
}

func TestPatchScoreOrganizerOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.subms.PatchScore(ctx, f.leader.UserUuid, f.eventUuid,
		event.RoundViva, f.teamUuid, 42)
	assertErrCode(t, err, ErrCodeNotOrganizer)

	patched, err := f.subms.PatchScore(ctx, f.organizer.String(), f.eventUuid,
		event.RoundViva, f.teamUuid, 42)
	require.NoError(t, err)
	require.NotNil(t, patched.Score)
	assert.Equal(t, 42.0, *patched.Score)

	_, err = f.subms.PatchScore(ctx, f.organizer.String(), f.eventUuid,
		"karaoke", f.teamUuid, 42)
	assertErrCode(t, err, ErrCodeInvalidRound)
}

func TestRecordAiOverallOrganizerOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	deckSubm, err := f.subms.CreateDeckSubm(ctx, f.leader.UserUuid, f.eventUuid,
		"pitch.pdf", []byte("%PDF-1.4 deck"))
	require.NoError(t, err)

	_, err = f.subms.RecordAiOverall(ctx, f.leader.UserUuid, f.eventUuid, deckSubm.UUID, 66)
	assertErrCode(t, err, ErrCodeNotOrganizer)

	recorded, err := f.subms.RecordAiOverall(ctx, f.organizer.String(), f.eventUuid, deckSubm.UUID, 66)
	require.NoError(t, err)
	require.NotNil(t, recorded.AiOverall)
	assert.Equal(t, 66.0, *recorded.AiOverall)

	// submission must belong to the named event
	_, err = f.subms.RecordAiOverall(ctx, f.organizer.String(), f.eventUuid, uuid.New(), 66)
	assertErrCode(t, err, ErrCodeSubmNotFound)
}

func TestRecordVivaScoreUpserts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.subms.RecordVivaScore(ctx, f.eventUuid, f.teamUuid, 30)
	require.NoError(t, err)
	require.NotNil(t, first.VivaScore)
	assert.Equal(t, 30.0, *first.VivaScore)

	second, err := f.subms.RecordVivaScore(ctx, f.eventUuid, f.teamUuid, 35)
	require.NoError(t, err)
	assert.Equal(t, first.UUID, second.UUID, "should update the same record")
	assert.Equal(t, 35.0, *second.VivaScore)
}

func TestMySubmissionsIndexedByRound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.subms.CreateRepoSubm(ctx, f.leader.UserUuid, f.eventUuid,
		"https://example.com/demo.git", "")
	require.NoError(t, err)
	f.subms.WaitForEvals()
	_, err = f.subms.RecordVivaScore(ctx, f.eventUuid, f.teamUuid, 28)
	require.NoError(t, err)

	mine, err := f.subms.MySubmissions(ctx, f.leader.UserUuid, f.eventUuid)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Contains(t, mine, event.RoundRepo)
	assert.Contains(t, mine, event.RoundViva)

	// no team, empty result
	none, err := f.subms.MySubmissions(ctx, uuid.New().String(), f.eventUuid)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRoundScoresExtraction(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// completed repo submission scores its final score
	repoSubm, err := f.subms.CreateRepoSubm(ctx, f.leader.UserUuid, f.eventUuid,
		"https://example.com/demo.git", "")
	require.NoError(t, err)
	f.subms.WaitForEvals()

	// deck submission with a recorded AI overall
	deckSubm, err := f.subms.CreateDeckSubm(ctx, f.leader.UserUuid, f.eventUuid,
		"pitch.pdf", []byte("%PDF-1.4 deck"))
	require.NoError(t, err)
	_, err = f.subms.RecordAiOverall(ctx, f.organizer.String(), f.eventUuid, deckSubm.UUID, 77)
	require.NoError(t, err)

	_, err = f.subms.RecordVivaScore(ctx, f.eventUuid, f.teamUuid, 55)
	require.NoError(t, err)

	scores, err := f.subms.RoundScores(ctx, f.eventUuid)
	require.NoError(t, err)
	require.Len(t, scores, 3)

	byRound := map[string]leaderboard.RoundScore{}
	for _, rs := range scores {
		byRound[rs.RoundID] = rs
	}
	assert.Equal(t, 91.5, byRound[event.RoundRepo].Score)
	assert.Equal(t, 77.0, byRound[event.RoundPpt].Score)
	assert.Equal(t, 55.0, byRound[event.RoundViva].Score)
	assert.Equal(t, f.teamUuid.String(), byRound[event.RoundRepo].TeamID)
	_ = repoSubm
}

func TestRoundScoresSkipProcessingRepoSubmissions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.evaluator.err = errors.New("still broken")

	_, err := f.subms.CreateRepoSubm(ctx, f.leader.UserUuid, f.eventUuid,
		"https://example.com/demo.git", "")
	require.NoError(t, err)
	f.subms.WaitForEvals()

	scores, err := f.subms.RoundScores(ctx, f.eventUuid)
	require.NoError(t, err)
	assert.Empty(t, scores, "errored repo submissions never reach the leaderboard")
}

func TestDeleteTeamCascade(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.subms.CreateRepoSubm(ctx, f.leader.UserUuid, f.eventUuid,
		"https://example.com/demo.git", "")
	require.NoError(t, err)
	f.subms.WaitForEvals()

	require.NoError(t, f.teams.Delete(ctx, f.leader.UserUuid, f.teamUuid))

	grouped, err := f.subms.ListByEventGrouped(ctx, f.eventUuid)
	require.NoError(t, err)
	assert.Empty(t, grouped[event.RoundRepo])
}
