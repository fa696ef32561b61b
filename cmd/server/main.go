package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"

	"github.com/hackside/backend/conf"
	"github.com/hackside/backend/event"
	"github.com/hackside/backend/http"
	"github.com/hackside/backend/llm"
	"github.com/hackside/backend/repoeval"
	"github.com/hackside/backend/s3bucket"
	"github.com/hackside/backend/subm"
	"github.com/hackside/backend/team"
	"github.com/hackside/backend/user"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file loaded", "error", err)
	}

	confPath := os.Getenv("CONFIG_PATH")
	if confPath == "" {
		confPath = "config.toml"
	}
	cfg, err := conf.Read(confPath)
	if err != nil {
		slog.Error("failed to read configuration", "error", err)
		os.Exit(1)
	}

	jwtKey := os.Getenv("JWT_KEY")
	if jwtKey == "" {
		slog.Error("JWT_KEY is not set")
		os.Exit(1)
	}

	openaiKey := os.Getenv("OPENAI_API_KEY")
	if openaiKey == "" {
		slog.Error("OPENAI_API_KEY is not set")
		os.Exit(1)
	}

	ctx := context.Background()
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.AwsRegion))
	if err != nil {
		slog.Error("failed to load aws configuration", "error", err)
		os.Exit(1)
	}
	ddbClient := dynamodb.NewFromConfig(awsCfg)

	bucket, err := s3bucket.NewS3Bucket(cfg.AwsRegion, cfg.ArtifactBucket)
	if err != nil {
		slog.Error("failed to set up s3 bucket", "error", err)
		os.Exit(1)
	}

	llmClient := llm.NewOpenAIClient(openaiKey, cfg.LlmModel)

	evalSrvc := repoeval.NewSrvc(
		llmClient,
		repoeval.NewWorkerGate(cfg.WorkerCount),
		repoeval.NewDdbEvalRepo(ddbClient, cfg.EvalsTable),
		repoeval.NewS3ArtifactStore(bucket),
	)

	userSrvc := user.NewUserSrvc(
		user.NewDynamoDbUsersTable(ddbClient, cfg.UsersTable), []byte(jwtKey))
	eventSrvc := event.NewEventSrvc(
		event.NewDynamoDbEventTable(ddbClient, cfg.EventsTable), bucket)
	teamSrvc := team.NewTeamSrvc(
		team.NewDynamoDbTeamTable(ddbClient, cfg.TeamsTable), eventSrvc)
	submSrvc := subm.NewSubmSrvc(
		subm.NewDynamoDbSubmTable(ddbClient, cfg.SubmsTable),
		teamSrvc, eventSrvc, evalSrvc, bucket)
	teamSrvc.SetSubmCleaner(submSrvc)

	httpServer := http.NewHttpServer(userSrvc, eventSrvc, teamSrvc, submSrvc,
		evalSrvc, []byte(jwtKey), cfg.AllowedOrigins)

	log.Printf("Starting server on %s", cfg.Address)
	err = httpServer.Start(cfg.Address)
	log.Printf("Server stopped with error: %v", err)
}
