package event

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"github.com/guregu/dynamo/v2"
)

// EventRow represents the persisted event record.
type EventRow struct {
	Uuid          string    `dynamo:"uuid,hash"` // Primary key
	OrganizerUuid string    `dynamo:"organizer_uuid"`
	Name          string    `dynamo:"name"`
	Summary       string    `dynamo:"summary"`
	Description   string    `dynamo:"description"`
	Date          time.Time `dynamo:"date"`
	RegDeadline   time.Time `dynamo:"reg_deadline"`
	Prize         string    `dynamo:"prize"`
	MaxTeams      int       `dynamo:"max_teams"`
	MinMembers    int       `dynamo:"min_members"`
	MaxMembers    int       `dynamo:"max_members"`
	Rounds        []Round   `dynamo:"rounds"`
	BannerUrl     string    `dynamo:"banner_url,omitempty"`
	LogoUrl       string    `dynamo:"logo_url,omitempty"`
	Version       int       `dynamo:"version"` // For optimistic locking
	CreatedAt     time.Time `dynamo:"created_at"`
}

// EventRepo persists event records.
type EventRepo interface {
	// Get returns nil when the event does not exist.
	Get(ctx context.Context, uuid uuid.UUID) (*EventRow, error)
	List(ctx context.Context) ([]*EventRow, error)
	Save(ctx context.Context, event *EventRow) error
}

// DynamoDbEventTable represents the DynamoDB table.
type DynamoDbEventTable struct {
	ddbClient   *dynamodb.Client
	tableName   string
	eventsTable *dynamo.Table
}

func NewDynamoDbEventTable(ddbClient *dynamodb.Client, tableName string) *DynamoDbEventTable {
	ddb := &DynamoDbEventTable{
		ddbClient: ddbClient,
		tableName: tableName,
	}
	db := dynamo.NewFromIface(ddb.ddbClient)
	table := db.Table(ddb.tableName)
	ddb.eventsTable = &table

	return ddb
}

func (ddb *DynamoDbEventTable) Get(ctx context.Context, uuid uuid.UUID) (*EventRow, error) {
	event := new(EventRow)

	err := ddb.eventsTable.Get("uuid", uuid.String()).One(ctx, event)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return nil, nil // Event not found
		}
		return nil, err
	}

	return event, nil
}

func (ddb *DynamoDbEventTable) List(ctx context.Context) ([]*EventRow, error) {
	var events []*EventRow
	err := ddb.eventsTable.Scan().All(ctx, &events)
	if err != nil {
		return nil, err
	}

	return events, nil
}

// Save saves an event to the DynamoDB table with optimistic locking.
func (ddb *DynamoDbEventTable) Save(ctx context.Context, event *EventRow) error {
	event.Version++

	put := ddb.eventsTable.Put(event).If("attribute_not_exists(version) OR version = ?", event.Version-1)
	return put.Run(ctx)
}
