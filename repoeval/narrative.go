package repoeval

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hackside/backend/llm"
)

const mentorSystemPrompt = `You are a senior software architect.
Return STRICT MARKDOWN in this structure:

# <Project Title> - Code Review Analysis

## Code Logic
### Problems
- ...

### How to Fix
- ...

---

## Code Quality
### Problems
- ...

### How to Fix
- ...

---

## Structure
### Problems
- ...

### How to Fix
- ...

---

## Duplication
### Problems
- ...

### How to Fix
- ...

---

## Risk & Next Steps
- Overall risk level
- Concrete next actions

---

## Conclusion
<final summary>
`

const rewriteSystemPrompt = `You are a senior engineer. Suggest BETTER code, not theory.
Output STRICT MARKDOWN:

## AI-Powered Rewrite Suggestions

### Area 1
**Problem:** ...

**Better Approach (pseudo / snippet):**
` + "```language\n// improved code idea\n```" + `

### Area 2
**Problem:** ...
**Better Approach:** ...

Only give 2-4 focused rewrite suggestions based on smells + code.
`

// mentorMarkdown produces the fixed-section mentor review from the
// composed evaluation. Failure is fatal to the evaluation.
func mentorMarkdown(ctx context.Context, client llm.Client, desc string, res *Result) (string, error) {
	resultJson, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", ErrNarrative().SetDebug(err)
	}

	content, err := client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: mentorSystemPrompt},
			{Role: llm.RoleUser, Content: fmt.Sprintf(
				"Project: %s\nEvaluation JSON:\n%s", desc, resultJson)},
		},
	})
	if err != nil {
		return "", ErrNarrative().SetDebug(err)
	}
	return content, nil
}

// rewriteSuggestions produces 2-4 targeted rewrite suggestions from the
// smell findings and up to 3 raw excerpts.
func rewriteSuggestions(ctx context.Context, client llm.Client, desc string, excerpts []Excerpt, smells []SmellFinding) (string, error) {
	focus := excerpts
	if len(focus) > 3 {
		focus = focus[:3]
	}
	texts := make([]string, len(focus))
	for i, excerpt := range focus {
		texts[i] = excerpt.Text
	}

	smellsJson, err := json.MarshalIndent(smells, "", "  ")
	if err != nil {
		return "", ErrNarrative().SetDebug(err)
	}

	content, err := client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: rewriteSystemPrompt},
			{Role: llm.RoleUser, Content: fmt.Sprintf(
				"Project: %s\n\nCode Smells JSON:\n%s\n\nCODE SNIPPETS:\n%s",
				desc, smellsJson, strings.Join(texts, "\n\n"))},
		},
	})
	if err != nil {
		return "", ErrNarrative().SetDebug(err)
	}
	return content, nil
}
