package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appendEvents(t *testing.T, repo EventRepo) {
	t.Helper()
	ctx := context.Background()
	events := []LLMRequestEventData{
		{RunID: "run-a", Provider: "openai", Model: "gpt-4o-mini", Purpose: "question-gen", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true},
		{RunID: "run-a", Provider: "openai", Model: "gpt-4o-mini", Purpose: "question-gen", InputTokens: 120, OutputTokens: 70, LatencyMs: 400, Success: false, ErrorMessage: "invalid LLM response"},
		{RunID: "run-b", Provider: "ollama", Model: "llama3.1", Purpose: "other", InputTokens: 10, OutputTokens: 5, LatencyMs: 30, Success: true},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}
}

func TestEventRepo_AppendAndGet(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	ctx := context.Background()

	before := time.Now().Add(-time.Second)
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		RunID:        "run-1",
		Provider:     "ollama",
		Model:        "llama3.1",
		Purpose:      "question-gen",
		InputTokens:  12,
		OutputTokens: 34,
		LatencyMs:    56,
		Success:      true,
		RequestBody:  "[user]\nhello",
		ResponseBody: `{"questions":[]}`,
	}))

	e, err := repo.GetLLMEvent(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, int64(1), e.ID)
	assert.Equal(t, "run-1", e.RunID)
	assert.Equal(t, "llama3.1", e.Model)
	assert.True(t, e.Success)
	assert.Equal(t, "[user]\nhello", e.RequestBody)
	assert.Equal(t, `{"questions":[]}`, e.ResponseBody)
	assert.True(t, e.Timestamp.After(before))

	missing, err := repo.GetLLMEvent(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestEventRepo_Query(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	appendEvents(t, repo)
	ctx := context.Background()

	tests := []struct {
		opts    QueryOpts
		wantIDs []int64
	}{
		{QueryOpts{}, []int64{3, 2, 1}},
		{QueryOpts{Limit: 2}, []int64{3, 2}},
		{QueryOpts{After: 1}, []int64{3, 2}},
		{QueryOpts{Before: 3}, []int64{2, 1}},
		{QueryOpts{Purpose: "question-gen"}, []int64{2, 1}},
		{QueryOpts{RunID: "run-b"}, []int64{3}},
		{QueryOpts{From: time.Now().Add(-time.Hour), To: time.Now().Add(time.Hour)}, []int64{3, 2, 1}},
		{QueryOpts{From: time.Now().Add(time.Hour)}, nil},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			events, err := repo.QueryLLMEvents(ctx, tt.opts)
			require.NoError(t, err)
			var ids []int64
			for _, e := range events {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestEventRepo_Usage(t *testing.T) {
	repo := openTestStore(t).EventRepo()
	appendEvents(t, repo)
	ctx := context.Background()

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	assert.Equal(t, []LLMUsageStats{
		{Purpose: "other", Calls: 1, InputTokens: 10, OutputTokens: 5, AvgLatencyMs: 30},
		{Purpose: "question-gen", Calls: 2, InputTokens: 220, OutputTokens: 120, AvgLatencyMs: 300},
	}, byPurpose)

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	assert.Equal(t, []LLMModelUsage{
		{Model: "gpt-4o-mini", Calls: 2, InputTokens: 220, OutputTokens: 120},
		{Model: "llama3.1", Calls: 1, InputTokens: 10, OutputTokens: 5},
	}, byModel)
}
