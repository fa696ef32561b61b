package team

import (
	"time"

	"github.com/google/uuid"
)

// Member is an embedded snapshot of a user at the time they joined.
type Member struct {
	UserUuid string `json:"user_uuid" dynamo:"user_uuid"`
	Username string `json:"username" dynamo:"username"`
	Email    string `json:"email" dynamo:"email"`
}

const (
	RequestStatusPending = "pending"
)

// JoinRequest is a pending ask to join a team, resolved by the leader.
type JoinRequest struct {
	RequestUuid string    `json:"request_uuid" dynamo:"request_uuid"`
	UserUuid    string    `json:"user_uuid" dynamo:"user_uuid"`
	Username    string    `json:"username" dynamo:"username"`
	Email       string    `json:"email" dynamo:"email"`
	Status      string    `json:"status" dynamo:"status"`
	CreatedAt   time.Time `json:"created_at" dynamo:"created_at"`
}

type Team struct {
	UUID       uuid.UUID
	EventUuid  uuid.UUID
	Name       string
	LeaderUuid string
	Members    []Member
	Requests   []JoinRequest
	MinSize    int
	MaxSize    int

	// IsActive marks a team that has reached the event's minimum size and
	// may submit.
	IsActive  bool
	CreatedAt time.Time
}
