package event

import (
	"time"

	"github.com/google/uuid"
)

// Round identifiers for the three judged rounds of an event.
const (
	RoundPpt  = "ppt"
	RoundRepo = "repo"
	RoundViva = "viva"
)

type Round struct {
	ID   string `json:"id" dynamo:"id"`
	Name string `json:"name" dynamo:"name"`
}

type Event struct {
	UUID          uuid.UUID
	OrganizerUuid uuid.UUID
	Name          string
	Summary       string
	Description   string
	Date          time.Time
	RegDeadline   time.Time
	Prize         string
	MaxTeams      int
	MinMembers    int
	MaxMembers    int
	Rounds        []Round
	BannerUrl     string
	LogoUrl       string
	CreatedAt     time.Time
}
