package repoeval

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/hackside/backend/llm"
	"github.com/hackside/backend/srvcerror"
	"github.com/stretchr/testify/require"
)

func requireErrCode(t *testing.T, err error, code string) {
	t.Helper()
	var srvcErr *srvcerror.Error
	require.True(t, errors.As(err, &srvcErr), "expected *srvcerror.Error, got %T", err)
	require.Equal(t, code, srvcErr.ErrorCode())
}

// fakeLlm answers rating requests (JSONObject) with ratingJson and
// narrative requests with markdown. Setting err makes every call fail.
type fakeLlm struct {
	mu         sync.Mutex
	ratingJson string
	markdown   string
	err        error
	requests   []llm.Request
}

func (f *fakeLlm) Complete(ctx context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.err != nil {
		return "", f.err
	}
	if req.JSONObject {
		return f.ratingJson, nil
	}
	return f.markdown, nil
}

func newFakeLlm() *fakeLlm {
	return &fakeLlm{
		ratingJson: `{"logic":80,"relevance":85,"style":75,"feedback":"solid"}`,
		markdown:   "# Review\n\nLooks fine.",
	}
}
