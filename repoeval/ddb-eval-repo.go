package repoeval

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"github.com/guregu/dynamo/v2"
)

// DdbEvalRepo stores evaluation rows in a DynamoDB table.
type DdbEvalRepo struct {
	ddbClient  *dynamodb.Client
	tableName  string
	evalsTable *dynamo.Table
}

func NewDdbEvalRepo(ddbClient *dynamodb.Client, tableName string) *DdbEvalRepo {
	ddb := &DdbEvalRepo{
		ddbClient: ddbClient,
		tableName: tableName,
	}
	db := dynamo.NewFromIface(ddb.ddbClient)
	table := db.Table(ddb.tableName)
	ddb.evalsTable = &table

	return ddb
}

func (ddb *DdbEvalRepo) Create(ctx context.Context, row *EvalRow) error {
	now := time.Now()
	row.CreatedAt = now
	row.UpdatedAt = now
	return ddb.evalsTable.Put(row).Run(ctx)
}

func (ddb *DdbEvalRepo) SetStatus(ctx context.Context, id uuid.UUID, status Status) error {
	return ddb.evalsTable.Update("eval_uuid", id.String()).
		Set("status", string(status)).
		Set("updated_at", time.Now()).
		Run(ctx)
}

func (ddb *DdbEvalRepo) SetFailed(ctx context.Context, id uuid.UUID, errMsg string) error {
	return ddb.evalsTable.Update("eval_uuid", id.String()).
		Set("status", string(StatusFailed)).
		Set("error_msg", errMsg).
		Set("updated_at", time.Now()).
		Run(ctx)
}

func (ddb *DdbEvalRepo) SetCompleted(ctx context.Context, id uuid.UUID, res *Result, reportKey string, excerptsKey string) error {
	return ddb.evalsTable.Update("eval_uuid", id.String()).
		Set("status", string(StatusDone)).
		Set("result", res).
		Set("report_key", reportKey).
		Set("excerpts_key", excerptsKey).
		Set("updated_at", time.Now()).
		Run(ctx)
}

func (ddb *DdbEvalRepo) Get(ctx context.Context, id uuid.UUID) (*EvalRow, error) {
	row := new(EvalRow)
	err := ddb.evalsTable.Get("eval_uuid", id.String()).One(ctx, row)
	if err != nil {
		if errors.Is(err, dynamo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return row, nil
}
