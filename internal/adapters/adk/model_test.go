package adk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

func TestFinalResponse_AggregatesStreamedText(t *testing.T) {
	m := NewGeminiModel(nil, "gemini-2.5-flash")

	last := &model.LLMResponse{
		Content:      genai.NewContentFromText(" Paris.", genai.RoleModel),
		FinishReason: genai.FinishReasonStop,
	}

	final := m.finalResponse(last, "Consider Paris.")

	require.NotNil(t, final.Content)
	require.Len(t, final.Content.Parts, 1)
	assert.Equal(t, "Consider Paris.", final.Content.Parts[0].Text)
	assert.False(t, final.Partial)
	assert.Equal(t, genai.FinishReasonStop, final.FinishReason)
}

func TestFinalResponse_KeepsLastContentWithoutText(t *testing.T) {
	m := NewGeminiModel(nil, "gemini-2.5-flash")

	content := &genai.Content{
		Role: string(genai.RoleModel),
		Parts: []*genai.Part{
			{FunctionCall: &genai.FunctionCall{Name: "search_accessible_venues"}},
		},
	}
	last := &model.LLMResponse{Content: content, FinishReason: genai.FinishReasonStop}

	final := m.finalResponse(last, "")

	require.NotNil(t, final.Content)
	require.Len(t, final.Content.Parts, 1)
	assert.Equal(t, "search_accessible_venues", final.Content.Parts[0].FunctionCall.Name)
	assert.False(t, final.Partial)
}

func TestFinalResponse_EmptyStream(t *testing.T) {
	m := NewGeminiModel(nil, "gemini-2.5-flash")

	final := m.finalResponse(nil, "")

	assert.False(t, final.Partial)
	assert.Equal(t, genai.FinishReasonOther, final.FinishReason)
	assert.NotEmpty(t, final.ErrorMessage)
}

func TestToADKResponse_NoCandidates(t *testing.T) {
	m := NewGeminiModel(nil, "gemini-2.5-flash")

	resp := m.toADKResponse(&genai.GenerateContentResponse{})

	assert.Equal(t, genai.FinishReasonOther, resp.FinishReason)
	assert.NotEmpty(t, resp.ErrorMessage)
}

func TestToADKResponse_MapsFirstCandidate(t *testing.T) {
	m := NewGeminiModel(nil, "gemini-2.5-flash")

	resp := m.toADKResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content:      genai.NewContentFromText("hello", genai.RoleModel),
				FinishReason: genai.FinishReasonStop,
			},
		},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{TotalTokenCount: 12},
	})

	require.NotNil(t, resp.Content)
	assert.Equal(t, "hello", resp.Content.Parts[0].Text)
	assert.Equal(t, genai.FinishReasonStop, resp.FinishReason)
	assert.EqualValues(t, 12, resp.UsageMetadata.TotalTokenCount)
}
