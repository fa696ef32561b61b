package http

import (
	"time"

	"github.com/hackside/backend/event"
	"github.com/hackside/backend/repoeval"
	"github.com/hackside/backend/subm"
	"github.com/hackside/backend/team"
	"github.com/hackside/backend/user"
)

type User struct {
	UUID     string `json:"uuid"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func mapUser(u *user.User) User {
	return User{
		UUID:     u.UUID.String(),
		Username: u.Username,
		Email:    u.Email,
	}
}

type Event struct {
	UUID        string        `json:"uuid"`
	Organizer   string        `json:"organizer_uuid"`
	Name        string        `json:"name"`
	Summary     string        `json:"summary"`
	Description string        `json:"description"`
	Date        time.Time     `json:"date"`
	RegDeadline time.Time     `json:"registration_deadline"`
	Prize       string        `json:"prize"`
	MaxTeams    int           `json:"max_teams"`
	MinMembers  int           `json:"min_members"`
	MaxMembers  int           `json:"max_members"`
	Rounds      []event.Round `json:"rounds"`
	BannerUrl   string        `json:"banner_url,omitempty"`
	LogoUrl     string        `json:"logo_url,omitempty"`
}

func mapEvent(e *event.Event) Event {
	return Event{
		UUID:        e.UUID.String(),
		Organizer:   e.OrganizerUuid.String(),
		Name:        e.Name,
		Summary:     e.Summary,
		Description: e.Description,
		Date:        e.Date,
		RegDeadline: e.RegDeadline,
		Prize:       e.Prize,
		MaxTeams:    e.MaxTeams,
		MinMembers:  e.MinMembers,
		MaxMembers:  e.MaxMembers,
		Rounds:      e.Rounds,
		BannerUrl:   e.BannerUrl,
		LogoUrl:     e.LogoUrl,
	}
}

func mapEvents(events []*event.Event) []Event {
	mapped := make([]Event, 0, len(events))
	for _, e := range events {
		mapped = append(mapped, mapEvent(e))
	}
	return mapped
}

type Team struct {
	UUID       string             `json:"uuid"`
	EventUuid  string             `json:"event_uuid"`
	Name       string             `json:"name"`
	LeaderUuid string             `json:"leader_uuid"`
	Members    []team.Member      `json:"members"`
	Requests   []team.JoinRequest `json:"requests"`
	MinSize    int                `json:"min_size"`
	MaxSize    int                `json:"max_size"`
	IsActive   bool               `json:"is_active"`
}

func mapTeam(t *team.Team) Team {
	return Team{
		UUID:       t.UUID.String(),
		EventUuid:  t.EventUuid.String(),
		Name:       t.Name,
		LeaderUuid: t.LeaderUuid,
		Members:    t.Members,
		Requests:   t.Requests,
		MinSize:    t.MinSize,
		MaxSize:    t.MaxSize,
		IsActive:   t.IsActive,
	}
}

func mapTeams(teams []*team.Team) []Team {
	mapped := make([]Team, 0, len(teams))
	for _, t := range teams {
		mapped = append(mapped, mapTeam(t))
	}
	return mapped
}

type Subm struct {
	UUID        string    `json:"uuid"`
	EventUuid   string    `json:"event_uuid"`
	TeamUuid    string    `json:"team_uuid"`
	RoundID     string    `json:"round_id"`
	FileUrl     string    `json:"file_url,omitempty"`
	RepoUrl     string    `json:"repo_url,omitempty"`
	VideoUrl    string    `json:"video_url,omitempty"`
	AiOverall   *float64  `json:"ai_overall,omitempty"`
	VivaScore   *float64  `json:"viva_score,omitempty"`
	Score       *float64  `json:"score,omitempty"`
	FinalScore  *float64  `json:"final_score,omitempty"`
	EvalUuid    string    `json:"eval_uuid,omitempty"`
	Status      string    `json:"status"`
	ErrorMsg    string    `json:"error_msg,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func mapSubm(s *subm.Subm) Subm {
	return Subm{
		UUID:        s.UUID.String(),
		EventUuid:   s.EventUuid.String(),
		TeamUuid:    s.TeamUuid.String(),
		RoundID:     s.RoundID,
		FileUrl:     s.FileUrl,
		RepoUrl:     s.RepoUrl,
		VideoUrl:    s.VideoUrl,
		AiOverall:   s.AiOverall,
		VivaScore:   s.VivaScore,
		Score:       s.Score,
		FinalScore:  s.FinalScore,
		EvalUuid:    s.EvalUuid,
		Status:      s.Status,
		ErrorMsg:    s.ErrorMsg,
		SubmittedAt: s.SubmittedAt,
	}
}

func mapSubms(subms []*subm.Subm) []Subm {
	mapped := make([]Subm, 0, len(subms))
	for _, s := range subms {
		mapped = append(mapped, mapSubm(s))
	}
	return mapped
}

type Evaluation struct {
	UUID      string           `json:"uuid"`
	RepoUrl   string           `json:"repo_url"`
	Status    string           `json:"status"`
	ErrorMsg  string           `json:"error_msg,omitempty"`
	Result    *repoeval.Result `json:"result,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func mapEvaluation(row *repoeval.EvalRow) Evaluation {
	return Evaluation{
		UUID:      row.EvalUuid,
		RepoUrl:   row.RepoUrl,
		Status:    row.Status,
		ErrorMsg:  row.ErrorMsg,
		Result:    row.Result,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
