package conf

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Conf holds the non-secret server configuration. Secrets (JWT key, OpenAI
// API key, AWS credentials) always come from the environment.
type Conf struct {
	Address        string   `toml:"address"`
	AllowedOrigins []string `toml:"allowed_origins"`

	AwsRegion string `toml:"aws_region"`

	UsersTable  string `toml:"users_table"`
	EventsTable string `toml:"events_table"`
	TeamsTable  string `toml:"teams_table"`
	SubmsTable  string `toml:"subms_table"`
	EvalsTable  string `toml:"evals_table"`

	ArtifactBucket string `toml:"artifact_bucket"`

	LlmModel string `toml:"llm_model"`

	// WorkerCount bounds concurrent clone / filesystem / analyzer work
	// across all in-flight evaluations.
	WorkerCount int64 `toml:"worker_count"`
}

func Default() *Conf {
	return &Conf{
		Address:        ":8080",
		AllowedOrigins: []string{"http://localhost:3000"},
		AwsRegion:      "eu-central-1",
		UsersTable:     "hackside_users",
		EventsTable:    "hackside_events",
		TeamsTable:     "hackside_teams",
		SubmsTable:     "hackside_submissions",
		EvalsTable:     "hackside_evaluations",
		ArtifactBucket: "hackside-artifacts",
		LlmModel:       "gpt-4o-mini",
		WorkerCount:    6,
	}
}

// Read loads configuration from a TOML file on top of defaults. A missing
// file is not an error; the defaults are returned as-is.
func Read(path string) (*Conf, error) {
	conf := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return conf, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, conf); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if conf.WorkerCount <= 0 {
		conf.WorkerCount = Default().WorkerCount
	}

	return conf, nil
}
