package team

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackside/backend/event"
	"github.com/hackside/backend/srvcerror"
)

func timeIn(days int) time.Time {
	return time.Now().AddDate(0, 0, days)
}

type recordingSubmCleaner struct {
	deleted []uuid.UUID
}

func (c *recordingSubmCleaner) DeleteByTeam(ctx context.Context, teamUuid uuid.UUID) error {
	c.deleted = append(c.deleted, teamUuid)
	return nil
}

func newTestEvent(t *testing.T, events *event.EventSrvc, maxTeams, minMembers, maxMembers int) uuid.UUID {
	t.Helper()
	created, err := events.Create(context.Background(), uuid.New(), event.CreateEventParams{
		Name:       "Test Event",
		Date:       timeIn(30),
		MaxTeams:   maxTeams,
		MinMembers: minMembers,
		MaxMembers: maxMembers,
	})
	require.NoError(t, err)
	return created.UUID
}

func newTestTeamSrvc(t *testing.T) (*TeamSrvc, *event.EventSrvc) {
	t.Helper()
	events := event.NewEventSrvc(event.NewInMemEventRepo(), nopUploader{})
	return NewTeamSrvc(NewInMemTeamRepo(), events), events
}

type nopUploader struct{}

func (nopUploader) Upload(ctx context.Context, content []byte, key string, mediaType string) (string, error) {
	return "https://cdn.example.com/" + key, nil
}

func member(name string) Member {
	return Member{
		UserUuid: uuid.New().String(),
		Username: name,
		Email:    name + "@example.com",
	}
}

func assertErrCode(t *testing.T, err error, code string) {
	t.Helper()
	var srvcErr *srvcerror.Error
	require.True(t, errors.As(err, &srvcErr), "expected *srvcerror.Error, got %T", err)
	assert.Equal(t, code, srvcErr.ErrorCode())
}

func TestCreateTeam(t *testing.T) {
	srvc, events := newTestTeamSrvc(t)
	eventUuid := newTestEvent(t, events, 10, 1, 4)
	leader := member("alice")

	created, err := srvc.Create(context.Background(), leader, eventUuid, "Rocket")
	require.NoError(t, err)
	assert.Equal(t, "Rocket", created.Name)
	assert.Equal(t, leader.UserUuid, created.LeaderUuid)
	require.Len(t, created.Members, 1)
	assert.True(t, created.IsActive, "min size 1 should activate immediately")
}

func TestCreateTeamRejectsSecondTeamForSameUser(t *testing.T) {
	srvc, events := newTestTeamSrvc(t)
	eventUuid := newTestEvent(t, events, 10, 1, 4)
	leader := member("alice")

	_, err := srvc.Create(context.Background(), leader, eventUuid, "Rocket")
	require.NoError(t, err)

	_, err = srvc.Create(context.Background(), leader, eventUuid, "Second")
	assertErrCode(t, err, ErrCodeAlreadyInTeam)
}

func TestCreateTeamEnforcesEventCap(t *testing.T) {
	srvc, events := newTestTeamSrvc(t)
	eventUuid := newTestEvent(t, events, 2, 1, 4)

	_, err := srvc.Create(context.Background(), member("a"), eventUuid, "One")
	require.NoError(t, err)
	_, err = srvc.Create(context.Background(), member("b"), eventUuid, "Two")
	require.NoError(t, err)

	_, err = srvc.Create(context.Background(), member("c"), eventUuid, "Three")
	assertErrCode(t, err, ErrCodeTeamLimitReached)
}

func TestJoinRequestFlow(t *testing.T) {
	ctx := context.Background()
	srvc, events := newTestTeamSrvc(t)
	eventUuid := newTestEvent(t, events, 10, 2, 3)
	leader := member("alice")
	joiner := member("bob")

	created, err := srvc.Create(ctx, leader, eventUuid, "Rocket")
	require.NoError(t, err)
	assert.False(t, created.IsActive, "below min size")

	withReq, err := srvc.SendJoinRequest(ctx, joiner, eventUuid, created.UUID)
	require.NoError(t, err)
	require.Len(t, withReq.Requests, 1)

	// duplicate pending request is refused
	_, err = srvc.SendJoinRequest(ctx, joiner, eventUuid, created.UUID)
	assertErrCode(t, err, ErrCodeRequestAlreadySent)

	// only the leader may accept
	_, err = srvc.AcceptRequest(ctx, joiner.UserUuid, created.UUID, withReq.Requests[0].RequestUuid)
	assertErrCode(t, err, ErrCodeNotTeamLeader)

	accepted, err := srvc.AcceptRequest(ctx, leader.UserUuid, created.UUID, withReq.Requests[0].RequestUuid)
	require.NoError(t, err)
	require.Len(t, accepted.Members, 2)
	assert.Empty(t, accepted.Requests)
	assert.True(t, accepted.IsActive, "reached min size")
}

func TestAcceptRequestRefusesFullTeam(t *testing.T) {
	ctx := context.Background()
	srvc, events := newTestTeamSrvc(t)
	eventUuid := newTestEvent(t, events, 10, 1, 2)
	leader := member("alice")

	created, err := srvc.Create(ctx, leader, eventUuid, "Rocket")
	require.NoError(t, err)

	first, err := srvc.SendJoinRequest(ctx, member("bob"), eventUuid, created.UUID)
	require.NoError(t, err)
	_, err = srvc.AcceptRequest(ctx, leader.UserUuid, created.UUID, first.Requests[0].RequestUuid)
	require.NoError(t, err)

	second, err := srvc.SendJoinRequest(ctx, member("carol"), eventUuid, created.UUID)
	require.NoError(t, err)
	_, err = srvc.AcceptRequest(ctx, leader.UserUuid, created.UUID, second.Requests[0].RequestUuid)
	assertErrCode(t, err, ErrCodeTeamFull)
}

func TestRejectRequest(t *testing.T) {
	ctx := context.Background()
	srvc, events := newTestTeamSrvc(t)
	eventUuid := newTestEvent(t, events, 10, 1, 4)
	leader := member("alice")

	created, err := srvc.Create(ctx, leader, eventUuid, "Rocket")
	require.NoError(t, err)

	withReq, err := srvc.SendJoinRequest(ctx, member("bob"), eventUuid, created.UUID)
	require.NoError(t, err)

	rejected, err := srvc.RejectRequest(ctx, leader.UserUuid, created.UUID, withReq.Requests[0].RequestUuid)
	require.NoError(t, err)
	assert.Empty(t, rejected.Requests)
	require.Len(t, rejected.Members, 1)
}

func TestRemoveMemberPermissions(t *testing.T) {
	ctx := context.Background()
	srvc, events := newTestTeamSrvc(t)
	eventUuid := newTestEvent(t, events, 10, 1, 4)
	leader := member("alice")
	joiner := member("bob")

	created, err := srvc.Create(ctx, leader, eventUuid, "Rocket")
	require.NoError(t, err)
	withReq, err := srvc.SendJoinRequest(ctx, joiner, eventUuid, created.UUID)
	require.NoError(t, err)
	_, err = srvc.AcceptRequest(ctx, leader.UserUuid, created.UUID, withReq.Requests[0].RequestUuid)
	require.NoError(t, err)

	// a stranger may not remove members
	_, err = srvc.RemoveMember(ctx, uuid.New().String(), created.UUID, joiner.UserUuid)
	assertErrCode(t, err, ErrCodeNotAllowed)

	// the member may remove themselves
	updated, err := srvc.RemoveMember(ctx, joiner.UserUuid, created.UUID, joiner.UserUuid)
	require.NoError(t, err)
	require.Len(t, updated.Members, 1)
}

func TestDeleteTeamCascadesToSubmissions(t *testing.T) {
	ctx := context.Background()
	srvc, events := newTestTeamSrvc(t)
	cleaner := &recordingSubmCleaner{}
	srvc.SetSubmCleaner(cleaner)
	eventUuid := newTestEvent(t, events, 10, 1, 4)
	leader := member("alice")

	created, err := srvc.Create(ctx, leader, eventUuid, "Rocket")
	require.NoError(t, err)

	// only the leader may delete
	err = srvc.Delete(ctx, uuid.New().String(), created.UUID)
	assertErrCode(t, err, ErrCodeNotTeamLeader)

	require.NoError(t, srvc.Delete(ctx, leader.UserUuid, created.UUID))
	require.Equal(t, []uuid.UUID{created.UUID}, cleaner.deleted)

	_, err = srvc.Get(ctx, created.UUID)
	assertErrCode(t, err, ErrCodeTeamNotFound)
}

func TestListOpenCountsPendingRequests(t *testing.T) {
	ctx := context.Background()
	srvc, events := newTestTeamSrvc(t)
	eventUuid := newTestEvent(t, events, 10, 1, 2)

	created, err := srvc.Create(ctx, member("alice"), eventUuid, "Rocket")
	require.NoError(t, err)

	open, err := srvc.ListOpen(ctx, eventUuid)
	require.NoError(t, err)
	require.Len(t, open, 1)

	_, err = srvc.SendJoinRequest(ctx, member("bob"), eventUuid, created.UUID)
	require.NoError(t, err)

	// 1 member + 1 pending request fills a max-size-2 team
	open, err = srvc.ListOpen(ctx, eventUuid)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestMyTeam(t *testing.T) {
	ctx := context.Background()
	srvc, events := newTestTeamSrvc(t)
	eventUuid := newTestEvent(t, events, 10, 1, 4)
	leader := member("alice")

	_, err := srvc.Create(ctx, leader, eventUuid, "Rocket")
	require.NoError(t, err)

	mine, err := srvc.MyTeam(ctx, leader.UserUuid, eventUuid)
	require.NoError(t, err)
	require.NotNil(t, mine)
	assert.Equal(t, "Rocket", mine.Name)

	none, err := srvc.MyTeam(ctx, uuid.New().String(), eventUuid)
	require.NoError(t, err)
	assert.Nil(t, none)
}
