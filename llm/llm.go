// Package llm wraps the completion service used for code rating and
// narrative generation behind a small client interface so that services
// can be exercised with fakes in tests.
package llm

import "context"

type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

type Message struct {
	Role    Role
	Content string
}

type Request struct {
	Messages []Message

	// JSONObject asks the model to emit a single strict JSON object.
	JSONObject bool

	// Model overrides the client's default model when non-empty.
	Model string
}

// Client issues one completion per call. Implementations must return an
// error for transport failures and for empty completions; a parseable
// empty string is never a valid response for our prompts.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}
