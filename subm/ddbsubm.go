package subm

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"github.com/guregu/dynamo/v2"
)

// SubmRow represents the persisted submission record.
type SubmRow struct {
	Uuid      string `dynamo:"uuid,hash"` // Primary key
	EventUuid string `dynamo:"event_uuid"`
	TeamUuid  string `dynamo:"team_uuid"`
	RoundID   string `dynamo:"round_id"`

	FileUrl  string `dynamo:"file_url,omitempty"`
	RepoUrl  string `dynamo:"repo_url,omitempty"`
	VideoUrl string `dynamo:"video_url,omitempty"`

	AiOverall  *float64 `dynamo:"ai_overall,omitempty"`
	VivaScore  *float64 `dynamo:"viva_score,omitempty"`
	Score      *float64 `dynamo:"score,omitempty"`
	FinalScore *float64 `dynamo:"final_score,omitempty"`

	EvalUuid    string    `dynamo:"eval_uuid,omitempty"`
	Status      string    `dynamo:"status"`
	ErrorMsg    string    `dynamo:"error_msg,omitempty"`
	Version     int       `dynamo:"version"` // For optimistic locking
	SubmittedAt time.Time `dynamo:"submitted_at"`
}

// SubmRepo persists submission records.
type SubmRepo interface {
	// Get returns nil when the submission does not exist.
	Get(ctx context.Context, uuid uuid.UUID) (*SubmRow, error)
	ListByEvent(ctx context.Context, eventUuid uuid.UUID) ([]*SubmRow, error)
	Save(ctx context.Context, subm *SubmRow) error
	DeleteByTeam(ctx context.Context, teamUuid uuid.UUID) error
}

// DynamoDbSubmTable represents the DynamoDB table.
type DynamoDbSubmTable struct {
	ddbClient  *dynamodb.Client
	tableName  string
	submsTable *dynamo.Table
}

func NewDynamoDbSubmTable(ddbClient *dynamodb.Client, tableName string) *DynamoDbSubmTable {
	ddb := &DynamoDbSubmTable{
		ddbClient: ddbClient,
		tableName: tableName,
	}
	db := dynamo.NewFromIface(ddb.ddbClient)
	table := db.Table(ddb.tableName)
	ddb.submsTable = &table

	return ddb
}

func (ddb *DynamoDbSubmTable) Get(ctx context.Context, uuid uuid.UUID) (*SubmRow, error) {
	subm := new(SubmRow)

	err := ddb.submsTable.Get("uuid", uuid.String()).One(ctx, subm)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return nil, nil // Submission not found
		}
		return nil, err
	}

	return subm, nil
}

func (ddb *DynamoDbSubmTable) ListByEvent(ctx context.Context, eventUuid uuid.UUID) ([]*SubmRow, error) {
	var subms []*SubmRow
	err := ddb.submsTable.Scan().
		Filter("event_uuid = ?", eventUuid.String()).
		All(ctx, &subms)
	if err != nil {
		return nil, err
	}

	return subms, nil
}

// Save saves a submission to the DynamoDB table with optimistic locking.
func (ddb *DynamoDbSubmTable) Save(ctx context.Context, subm *SubmRow) error {
	subm.Version++

	put := ddb.submsTable.Put(subm).If("attribute_not_exists(version) OR version = ?", subm.Version-1)
	return put.Run(ctx)
}

func (ddb *DynamoDbSubmTable) DeleteByTeam(ctx context.Context, teamUuid uuid.UUID) error {
	var subms []*SubmRow
	err := ddb.submsTable.Scan().
		Filter("team_uuid = ?", teamUuid.String()).
		All(ctx, &subms)
	if err != nil {
		return err
	}

	for _, subm := range subms {
		if err := ddb.submsTable.Delete("uuid", subm.Uuid).Run(ctx); err != nil {
			return err
		}
	}
	return nil
}
