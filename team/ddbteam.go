package team

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"github.com/guregu/dynamo/v2"
)

// TeamRow represents the persisted team record. Members and join requests
// are embedded, mirroring how the rest of the system reads teams: always
// as a whole.
type TeamRow struct {
	Uuid       string        `dynamo:"uuid,hash"` // Primary key
	EventUuid  string        `dynamo:"event_uuid"`
	Name       string        `dynamo:"name"`
	LeaderUuid string        `dynamo:"leader_uuid"`
	Members    []Member      `dynamo:"members"`
	Requests   []JoinRequest `dynamo:"requests,omitempty"`
	MinSize    int           `dynamo:"min_size"`
	MaxSize    int           `dynamo:"max_size"`
	IsActive   bool          `dynamo:"is_active"`
	Version    int           `dynamo:"version"` // For optimistic locking
	CreatedAt  time.Time     `dynamo:"created_at"`
}

// TeamRepo persists team records.
type TeamRepo interface {
	// Get returns nil when the team does not exist.
	Get(ctx context.Context, uuid uuid.UUID) (*TeamRow, error)
	ListByEvent(ctx context.Context, eventUuid uuid.UUID) ([]*TeamRow, error)
	Save(ctx context.Context, team *TeamRow) error
	Delete(ctx context.Context, uuid uuid.UUID) error
}

// DynamoDbTeamTable represents the DynamoDB table.
type DynamoDbTeamTable struct {
	ddbClient  *dynamodb.Client
	tableName  string
	teamsTable *dynamo.Table
}

func NewDynamoDbTeamTable(ddbClient *dynamodb.Client, tableName string) *DynamoDbTeamTable {
	ddb := &DynamoDbTeamTable{
		ddbClient: ddbClient,
		tableName: tableName,
	}
	db := dynamo.NewFromIface(ddb.ddbClient)
	table := db.Table(ddb.tableName)
	ddb.teamsTable = &table

	return ddb
}

func (ddb *DynamoDbTeamTable) Get(ctx context.Context, uuid uuid.UUID) (*TeamRow, error) {
	team := new(TeamRow)

	err := ddb.teamsTable.Get("uuid", uuid.String()).One(ctx, team)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return nil, nil // Team not found
		}
		return nil, err
	}

	return team, nil
}

func (ddb *DynamoDbTeamTable) ListByEvent(ctx context.Context, eventUuid uuid.UUID) ([]*TeamRow, error) {
	var teams []*TeamRow
	err := ddb.teamsTable.Scan().
		Filter("event_uuid = ?", eventUuid.String()).
		All(ctx, &teams)
	if err != nil {
		return nil, err
	}

	return teams, nil
}

// Save saves a team to the DynamoDB table with optimistic locking.
func (ddb *DynamoDbTeamTable) Save(ctx context.Context, team *TeamRow) error {
	team.Version++

	put := ddb.teamsTable.Put(team).If("attribute_not_exists(version) OR version = ?", team.Version-1)
	return put.Run(ctx)
}

func (ddb *DynamoDbTeamTable) Delete(ctx context.Context, uuid uuid.UUID) error {
	return ddb.teamsTable.Delete("uuid", uuid.String()).Run(ctx)
}
