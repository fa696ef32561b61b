package repoeval

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hackside/backend/llm"
	"github.com/hackside/backend/logger"
)

// Srvc runs the repository evaluation pipeline and serves the persisted
// results. All dependencies are long-lived objects created at process
// startup and passed in, never recreated per request.
type Srvc struct {
	llm       llm.Client
	gate      *WorkerGate
	repo      EvalRepo
	artifacts ArtifactStore

	// clone and quality are swappable so tests can stub the acquisition
	// and analyzer steps.
	clone   func(ctx context.Context, url string) (*Snapshot, error)
	quality func(ctx context.Context, dir string) qualityScan
}

func NewSrvc(llmClient llm.Client, gate *WorkerGate, repo EvalRepo, artifacts ArtifactStore) *Srvc {
	return &Srvc{
		llm:       llmClient,
		gate:      gate,
		repo:      repo,
		artifacts: artifacts,
		clone:     cloneSnapshot,
		quality:   scanQuality,
	}
}

// StartEvaluation registers a pending evaluation row and returns its
// generated id. The caller decides whether to run Evaluate synchronously
// or on a background goroutine.
func (s *Srvc) StartEvaluation(ctx context.Context, repoUrl string, desc string) (uuid.UUID, error) {
	evalID, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, srvcErrInternal(err)
	}
	row := &EvalRow{
		EvalUuid: evalID.String(),
		RepoUrl:  repoUrl,
		Desc:     desc,
		Status:   string(StatusPending),
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return uuid.Nil, srvcErrInternal(err)
	}
	return evalID, nil
}

// Fail marks a registered evaluation as failed without running the
// pipeline. Used by callers that cannot proceed after StartEvaluation,
// so no row is left pending forever.
func (s *Srvc) Fail(ctx context.Context, evalID uuid.UUID, reason string) error {
	if err := s.repo.SetFailed(ctx, evalID, reason); err != nil {
		return srvcErrInternal(err)
	}
	return nil
}

// Evaluate runs the full pipeline for a previously registered evaluation:
// acquire, scan, sample, rate, compose, narrate, render. The snapshot is
// removed on every exit path. On failure the row transitions to FAILED
// with the error message before the error is returned; a partial result
// is never persisted as complete.
func (s *Srvc) Evaluate(ctx context.Context, evalID uuid.UUID, repoUrl string, desc string) (res *Result, err error) {
	ctx = logger.WithEvalID(ctx, evalID.String())
	log := logger.FromContext(ctx)

	defer func() {
		if err != nil {
			if failErr := s.repo.SetFailed(ctx, evalID, err.Error()); failErr != nil {
				log.Error("failed to mark evaluation as failed", "error", failErr)
			}
		}
	}()

	var snap *Snapshot
	defer func() {
		if snap != nil {
			if rmErr := snap.Remove(); rmErr != nil {
				log.Warn("failed to remove repository snapshot",
					"dir", snap.Dir, "error", rmErr)
			}
		}
	}()

	// The clone, tree walks and analyzer subprocesses block for seconds;
	// they run behind the shared worker gate so concurrent evaluations
	// cannot exhaust the process.
	var sig StructureSignals
	var scan qualityScan
	var excerpts []Excerpt
	err = s.gate.Do(ctx, func() error {
		s.setStatus(ctx, evalID, StatusAcquiring)
		started := time.Now()
		var cloneErr error
		snap, cloneErr = s.clone(ctx, repoUrl)
		if cloneErr != nil {
			return cloneErr
		}
		log.Info("repository acquired", "dir", snap.Dir, "took", time.Since(started))

		s.setStatus(ctx, evalID, StatusScanning)
		sig = scanStructure(snap.Dir)
		scan = s.quality(ctx, snap.Dir)

		s.setStatus(ctx, evalID, StatusSampling)
		excerpts = sampleExcerpts(snap.Dir)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.setStatus(ctx, evalID, StatusRating)
	ratings, err := rateExcerpts(ctx, s.llm, desc, excerpts)
	if err != nil {
		return nil, err
	}

	s.setStatus(ctx, evalID, StatusComposing)
	complexFuncs := parseComplexity(scan.Complexity.Raw)
	smells := detectSmells(complexFuncs, scan.LintScore, scan.Duplication, sig)
	risk := riskScore(scan.Duplication, scan.LintScore, len(smells), sig)
	final := finalScore(scan.Duplication, ratings.Logic, ratings.Relevance,
		ratings.Style, scan.LintScore, sig)

	res = &Result{
		FinalScore:   final,
		Rubric:       rubricFor(final),
		RiskScore:    risk,
		Structure:    sig,
		Duplication:  scan.Duplication,
		Logic:        ratings.Logic,
		Relevance:    ratings.Relevance,
		Style:        ratings.Style,
		LintScore:    scan.LintScore,
		LintRan:      scan.LintRan,
		DupRan:       scan.DupRan,
		Smells:       smells,
		Feedback:     ratings.Feedback,
		ExcerptCount: len(excerpts),
	}

	s.setStatus(ctx, evalID, StatusNarrating)
	mentor, err := mentorMarkdown(ctx, s.llm, desc, res)
	if err != nil {
		return nil, err
	}
	res.MentorMarkdown = mentor

	rewrite, err := rewriteSuggestions(ctx, s.llm, desc, excerpts, smells)
	if err != nil {
		return nil, err
	}
	res.RewriteMarkdown = rewrite

	s.setStatus(ctx, evalID, StatusRendering)
	pdf, err := renderReport(res)
	if err != nil {
		return nil, err
	}
	res.ReportPdf = pdf

	reportKey, err := s.artifacts.SaveReport(ctx, evalID, pdf)
	if err != nil {
		return nil, srvcErrInternal(err)
	}
	excerptsKey, err := s.artifacts.SaveExcerpts(ctx, evalID, excerpts)
	if err != nil {
		return nil, srvcErrInternal(err)
	}

	if err := s.repo.SetCompleted(ctx, evalID, res, reportKey, excerptsKey); err != nil {
		return nil, srvcErrInternal(err)
	}

	log.Info("evaluation completed",
		"final_score", res.FinalScore,
		"grade", res.Rubric.Grade,
		"risk_score", res.RiskScore,
		"excerpts", res.ExcerptCount)
	return res, nil
}

// Get returns the persisted evaluation row.
func (s *Srvc) Get(ctx context.Context, evalID uuid.UUID) (*EvalRow, error) {
	row, err := s.repo.Get(ctx, evalID)
	if err != nil {
		return nil, srvcErrInternal(err)
	}
	if row == nil {
		return nil, ErrEvaluationNotFound()
	}
	return row, nil
}

// GetReport returns the rendered report PDF for a completed evaluation.
func (s *Srvc) GetReport(ctx context.Context, evalID uuid.UUID) ([]byte, error) {
	row, err := s.Get(ctx, evalID)
	if err != nil {
		return nil, err
	}
	if row.Status != string(StatusDone) || row.ReportKey == "" {
		return nil, ErrReportNotReady()
	}
	pdf, err := s.artifacts.GetReport(ctx, row.ReportKey)
	if err != nil {
		return nil, srvcErrInternal(err)
	}
	return pdf, nil
}

// setStatus records a state transition. Best effort: a failed status
// write is logged but does not abort the pipeline.
func (s *Srvc) setStatus(ctx context.Context, evalID uuid.UUID, status Status) {
	if err := s.repo.SetStatus(ctx, evalID, status); err != nil {
		logger.FromContext(ctx).Warn("failed to update evaluation status",
			"status", status, "error", err)
	}
}
