package team

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hackside/backend/event"
	"github.com/hackside/backend/logger"
)

// SubmCleaner removes a team's submissions when the team is deleted.
// Implemented by the submission service.
type SubmCleaner interface {
	DeleteByTeam(ctx context.Context, teamUuid uuid.UUID) error
}

// EventGetter resolves events, implemented by event.EventSrvc.
type EventGetter interface {
	Get(ctx context.Context, eventUuid uuid.UUID) (*event.Event, error)
}

type TeamSrvc struct {
	repo   TeamRepo
	events EventGetter
	subms  SubmCleaner
}

func NewTeamSrvc(repo TeamRepo, events EventGetter) *TeamSrvc {
	return &TeamSrvc{
		repo:   repo,
		events: events,
	}
}

// SetSubmCleaner wires the submission cascade after both services exist.
func (s *TeamSrvc) SetSubmCleaner(subms SubmCleaner) {
	s.subms = subms
}

// Create registers a new team with the caller as leader and sole member.
// A user may belong to at most one team per event; the event caps the
// total number of teams.
func (s *TeamSrvc) Create(ctx context.Context, caller Member, eventUuid uuid.UUID, name string) (*Team, error) {
	if name == "" {
		return nil, newErrTeamNameEmpty()
	}

	ev, err := s.events.Get(ctx, eventUuid)
	if err != nil {
		return nil, err
	}

	teams, err := s.repo.ListByEvent(ctx, eventUuid)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	if len(teams) >= ev.MaxTeams {
		return nil, newErrTeamLimitReached()
	}
	for _, t := range teams {
		if hasMember(t, caller.UserUuid) {
			return nil, newErrAlreadyInTeam()
		}
	}

	row := &TeamRow{
		Uuid:       uuid.New().String(),
		EventUuid:  eventUuid.String(),
		Name:       name,
		LeaderUuid: caller.UserUuid,
		Members:    []Member{caller},
		MinSize:    ev.MinMembers,
		MaxSize:    ev.MaxMembers,
		IsActive:   ev.MinMembers <= 1,
		CreatedAt:  time.Now(),
	}
	if err := s.repo.Save(ctx, row); err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}

	return rowToTeam(row)
}

// SendJoinRequest records a pending request to join the team. A user may
// hold at most one pending request per event and must not already be in a
// team.
func (s *TeamSrvc) SendJoinRequest(ctx context.Context, caller Member, eventUuid uuid.UUID, teamUuid uuid.UUID) (*Team, error) {
	row, err := s.getRow(ctx, teamUuid)
	if err != nil {
		return nil, err
	}
	if row.EventUuid != eventUuid.String() {
		return nil, newErrTeamNotInEvent()
	}

	teams, err := s.repo.ListByEvent(ctx, eventUuid)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	for _, t := range teams {
		if hasMember(t, caller.UserUuid) {
			return nil, newErrAlreadyInTeam()
		}
		for _, req := range t.Requests {
			if req.UserUuid == caller.UserUuid && req.Status == RequestStatusPending {
				return nil, newErrRequestAlreadySent()
			}
		}
	}

	row.Requests = append(row.Requests, JoinRequest{
		RequestUuid: uuid.New().String(),
		UserUuid:    caller.UserUuid,
		Username:    caller.Username,
		Email:       caller.Email,
		Status:      RequestStatusPending,
		CreatedAt:   time.Now(),
	})
	if err := s.repo.Save(ctx, row); err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}

	return rowToTeam(row)
}

// AcceptRequest promotes a pending join request into membership. Leader
// only; refuses when the team is already at its maximum size.
func (s *TeamSrvc) AcceptRequest(ctx context.Context, callerUuid string, teamUuid uuid.UUID, requestUuid string) (*Team, error) {
	row, err := s.getRow(ctx, teamUuid)
	if err != nil {
		return nil, err
	}
	if row.LeaderUuid != callerUuid {
		return nil, newErrNotTeamLeader()
	}
	if len(row.Members) >= row.MaxSize {
		return nil, newErrTeamFull()
	}

	idx := -1
	for i, req := range row.Requests {
		if req.RequestUuid == requestUuid && req.Status == RequestStatusPending {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, newErrRequestNotPending()
	}

	req := row.Requests[idx]
	row.Members = append(row.Members, Member{
		UserUuid: req.UserUuid,
		Username: req.Username,
		Email:    req.Email,
	})
	row.Requests = append(row.Requests[:idx], row.Requests[idx+1:]...)
	if len(row.Members) >= row.MinSize {
		row.IsActive = true
	}

	if err := s.repo.Save(ctx, row); err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}

	return rowToTeam(row)
}

// RejectRequest drops a pending join request. Leader only.
func (s *TeamSrvc) RejectRequest(ctx context.Context, callerUuid string, teamUuid uuid.UUID, requestUuid string) (*Team, error) {
	row, err := s.getRow(ctx, teamUuid)
	if err != nil {
		return nil, err
	}
	if row.LeaderUuid != callerUuid {
		return nil, newErrNotTeamLeader()
	}

	kept := row.Requests[:0]
	for _, req := range row.Requests {
		if req.RequestUuid != requestUuid {
			kept = append(kept, req)
		}
	}
	row.Requests = kept

	if err := s.repo.Save(ctx, row); err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}

	return rowToTeam(row)
}

// RemoveMember removes a member. Allowed for the leader or for the member
// removing themselves.
func (s *TeamSrvc) RemoveMember(ctx context.Context, callerUuid string, teamUuid uuid.UUID, memberUuid string) (*Team, error) {
	row, err := s.getRow(ctx, teamUuid)
	if err != nil {
		return nil, err
	}
	if callerUuid != row.LeaderUuid && callerUuid != memberUuid {
		return nil, newErrNotAllowed()
	}

	kept := row.Members[:0]
	for _, m := range row.Members {
		if m.UserUuid != memberUuid {
			kept = append(kept, m)
		}
	}
	row.Members = kept
	if len(row.Members) < row.MinSize {
		row.IsActive = false
	}

	if err := s.repo.Save(ctx, row); err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}

	return rowToTeam(row)
}

// Delete removes the team and cascades to its submissions. Leader only.
func (s *TeamSrvc) Delete(ctx context.Context, callerUuid string, teamUuid uuid.UUID) error {
	row, err := s.getRow(ctx, teamUuid)
	if err != nil {
		return err
	}
	if row.LeaderUuid != callerUuid {
		return newErrNotTeamLeader()
	}

	if err := s.repo.Delete(ctx, teamUuid); err != nil {
		return newErrInternalSE().SetDebug(err)
	}
	if s.subms != nil {
		if err := s.subms.DeleteByTeam(ctx, teamUuid); err != nil {
			logger.FromContext(ctx).Error("failed to cascade team deletion to submissions",
				"team", teamUuid, "error", err)
		}
	}
	return nil
}

// ListOpen returns teams that can still take members, counting pending
// requests against capacity.
func (s *TeamSrvc) ListOpen(ctx context.Context, eventUuid uuid.UUID) ([]*Team, error) {
	rows, err := s.repo.ListByEvent(ctx, eventUuid)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}

	open := make([]*Team, 0)
	for _, row := range rows {
		pending := 0
		for _, req := range row.Requests {
			if req.Status == RequestStatusPending {
				pending++
			}
		}
		if len(row.Members)+pending >= row.MaxSize {
			continue
		}
		t, err := rowToTeam(row)
		if err != nil {
			return nil, err
		}
		open = append(open, t)
	}
	return open, nil
}

// ListByEvent returns all teams of an event.
func (s *TeamSrvc) ListByEvent(ctx context.Context, eventUuid uuid.UUID) ([]*Team, error) {
	rows, err := s.repo.ListByEvent(ctx, eventUuid)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	teams := make([]*Team, 0, len(rows))
	for _, row := range rows {
		t, err := rowToTeam(row)
		if err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, nil
}

// MyTeam returns the caller's team for the event, or nil when they have
// none.
func (s *TeamSrvc) MyTeam(ctx context.Context, callerUuid string, eventUuid uuid.UUID) (*Team, error) {
	rows, err := s.repo.ListByEvent(ctx, eventUuid)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	for _, row := range rows {
		if hasMember(row, callerUuid) {
			return rowToTeam(row)
		}
	}
	return nil, nil
}

// Get returns the team by id.
func (s *TeamSrvc) Get(ctx context.Context, teamUuid uuid.UUID) (*Team, error) {
	row, err := s.getRow(ctx, teamUuid)
	if err != nil {
		return nil, err
	}
	return rowToTeam(row)
}

func (s *TeamSrvc) getRow(ctx context.Context, teamUuid uuid.UUID) (*TeamRow, error) {
	row, err := s.repo.Get(ctx, teamUuid)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	if row == nil {
		return nil, newErrTeamNotFound()
	}
	return row, nil
}

func hasMember(row *TeamRow, userUuid string) bool {
	for _, m := range row.Members {
		if m.UserUuid == userUuid {
			return true
		}
	}
	return false
}

func rowToTeam(row *TeamRow) (*Team, error) {
	teamUuid, err := uuid.Parse(row.Uuid)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	eventUuid, err := uuid.Parse(row.EventUuid)
	if err != nil {
		return nil, newErrInternalSE().SetDebug(err)
	}
	return &Team{
		UUID:       teamUuid,
		EventUuid:  eventUuid,
		Name:       row.Name,
		LeaderUuid: row.LeaderUuid,
		Members:    row.Members,
		Requests:   row.Requests,
		MinSize:    row.MinSize,
		MaxSize:    row.MaxSize,
		IsActive:   row.IsActive,
		CreatedAt:  row.CreatedAt,
	}, nil
}
