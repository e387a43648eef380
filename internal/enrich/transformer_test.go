package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridline-labs/gridline/internal/model"
	"github.com/gridline-labs/gridline/pkg/anthropic"
)

// mockClient scripts CreateMessage responses for transformer tests.
type mockClient struct {
	resp    *anthropic.MessageResponse
	err     error
	lastReq anthropic.MessageRequest
	calls   int
}

func (m *mockClient) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func textResponse(text string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: text}},
		Usage:   anthropic.TokenUsage{InputTokens: 100, OutputTokens: 50},
	}
}

func recordsJSON(t *testing.T, findings ...model.Finding) string {
	t.Helper()
	records := make(map[string]enrichmentRecord, len(findings))
	for _, f := range findings {
		records[f.ID] = enrichmentRecord{
			Severity: "medium",
			Claim: claimParts{
				Subject:   f.SourceRef,
				Assertion: "clears its threshold",
			},
			Implications: model.DefaultImplications(f.Domain),
		}
	}
	raw, err := json.Marshal(records)
	require.NoError(t, err)
	return string(raw)
}

func TestEnrichEmptyBatch(t *testing.T) {
	t.Parallel()

	client := &mockClient{}
	tr := New(client, Config{Model: "test-model"})

	result, err := tr.Enrich(context.Background(), nil, DefaultGuidance())
	require.NoError(t, err)
	assert.Empty(t, result.Alerts)
	assert.False(t, result.Fallback)
	assert.Zero(t, client.calls)
}

func TestEnrichSuccess(t *testing.T) {
	t.Parallel()

	f := mismatchFinding()
	client := &mockClient{resp: textResponse(recordsJSON(t, f))}
	tr := New(client, Config{Model: "test-model"})

	result, err := tr.Enrich(context.Background(), []model.Finding{f}, DefaultGuidance())
	require.NoError(t, err)
	assert.False(t, result.Fallback)
	require.Len(t, result.Alerts, 1)
	assert.Equal(t, f.ID, result.Alerts[0].ID)
	assert.Equal(t, "test-model", result.Model)
	assert.Equal(t, 1, client.calls)
	assert.NotEmpty(t, result.Prompt)

	// The prompt carried the finding and the request carried the prompt.
	assert.Contains(t, result.Prompt, f.ID)
	require.Len(t, client.lastReq.Messages, 1)
	assert.Equal(t, result.Prompt, client.lastReq.Messages[0].Content)
	require.NotEmpty(t, client.lastReq.System)
}

func TestEnrichClientErrorFallsBack(t *testing.T) {
	t.Parallel()

	f := mismatchFinding()
	client := &mockClient{err: errors.New("api unavailable")}
	tr := New(client, Config{Model: "test-model"})

	result, err := tr.Enrich(context.Background(), []model.Finding{f}, DefaultGuidance())
	require.NoError(t, err)
	assert.True(t, result.Fallback)
	assert.Equal(t, model.FallbackModel, result.Model)
	require.Len(t, result.Alerts, 1)
	assert.True(t, result.Alerts[0].Fallback)
}

func TestEnrichNilClientFallsBack(t *testing.T) {
	t.Parallel()

	f := mismatchFinding()
	tr := New(nil, Config{})

	result, err := tr.Enrich(context.Background(), []model.Finding{f}, DefaultGuidance())
	require.NoError(t, err)
	assert.True(t, result.Fallback)
	require.Len(t, result.Alerts, 1)
}

func TestEnrichUnparseableResponseDropsAll(t *testing.T) {
	t.Parallel()

	f := mismatchFinding()
	client := &mockClient{resp: textResponse("I cannot produce JSON today.")}
	tr := New(client, Config{Model: "test-model"})

	result, err := tr.Enrich(context.Background(), []model.Finding{f}, DefaultGuidance())
	require.NoError(t, err)

	// Unusable output is a validation failure, not a transport failure:
	// findings are dropped with warnings instead of falling back.
	assert.False(t, result.Fallback)
	assert.Empty(t, result.Alerts)
	assert.Len(t, result.Warnings, 1)
}

func TestEnrichPartialRecords(t *testing.T) {
	t.Parallel()

	a := mismatchFinding()
	b := mismatchFinding()
	b.ID = "hb:back:volume_advantage:20251109"
	b.Domain = model.DomainHB

	// The collaborator answered for only one of two findings.
	client := &mockClient{resp: textResponse(recordsJSON(t, a))}
	tr := New(client, Config{Model: "test-model"})

	result, err := tr.Enrich(context.Background(), []model.Finding{a, b}, DefaultGuidance())
	require.NoError(t, err)
	assert.False(t, result.Fallback)
	require.Len(t, result.Alerts, 1)
	assert.Equal(t, a.ID, result.Alerts[0].ID)
	assert.Len(t, result.Warnings, 1)
}

func TestEnrichCancelledContextFallsBack(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := mismatchFinding()
	client := &mockClient{resp: textResponse(recordsJSON(t, f))}
	tr := New(client, Config{Model: "test-model", RequestsPerMinute: 10})

	result, err := tr.Enrich(ctx, []model.Finding{f}, DefaultGuidance())
	require.NoError(t, err)
	assert.True(t, result.Fallback)
}

func TestBuildPromptBounded(t *testing.T) {
	t.Parallel()

	var findings []model.Finding
	for i := 0; i < maxPromptFindings+10; i++ {
		f := mismatchFinding()
		f.ID = fmt.Sprintf("qb:player-%d:efficiency_advantage:20251109", i)
		findings = append(findings, f)
	}

	prompt, err := BuildPrompt(findings, DefaultGuidance())
	require.NoError(t, err)
	assert.Contains(t, prompt, "qb:player-0:")
	assert.Contains(t, prompt, fmt.Sprintf("qb:player-%d:", maxPromptFindings-1))
	assert.NotContains(t, prompt, fmt.Sprintf("qb:player-%d:", maxPromptFindings))
}

func TestBuildPromptGuidanceOnlyForPresentDomains(t *testing.T) {
	t.Parallel()

	f := mismatchFinding()
	prompt, err := BuildPrompt([]model.Finding{f}, DefaultGuidance())
	require.NoError(t, err)

	assert.Contains(t, prompt, "- qb: ")
	assert.NotContains(t, prompt, "- weather: ")
	assert.Contains(t, prompt, "passing_yards_over")
}

func TestBuildPromptClipsLongFields(t *testing.T) {
	t.Parallel()

	f := mismatchFinding()
	long := make([]byte, maxContextFieldChars*3)
	for i := range long {
		long[i] = 'x'
	}
	f.ComparisonContext = string(long)

	prompt, err := BuildPrompt([]model.Finding{f}, DefaultGuidance())
	require.NoError(t, err)
	assert.NotContains(t, prompt, string(long))
}
