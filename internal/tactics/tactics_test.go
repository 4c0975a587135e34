package tactics

import (
	"context"
	"errors"
	"testing"

	"github.com/ehudso7/StatTact/internal/config"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"
)

type mockLLM struct {
	resp     openai.ChatCompletionResponse
	err      error
	requests []openai.ChatCompletionRequest
}

func (m *mockLLM) CreateChatCompletion(ctx context.Context, r openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	m.requests = append(m.requests, r)
	if m.err != nil {
		return openai.ChatCompletionResponse{}, m.err
	}
	return m.resp, nil
}

func textResponse(s string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: s}}}}
}

var testCfg = config.LLMConfig{
	Model:        "gpt-4o",
	MaxTokens:    1000,
	Temperature:  0.7,
	SystemPrompt: "You are an expert football tactics analyst.",
}

func TestBuildPrompt_NoOpponent(t *testing.T) {
	p := BuildPrompt("Arsenal", "")
	require.Contains(t, p, "Create a detailed tactical analysis for Arsenal.")
	require.NotContains(t, p, "against")
	for _, section := range []string{"Formation Recommendation", "Strategic Approach", "Key Tactical Considerations", "Player Roles and Responsibilities", "Set-Piece Strategy", "In-Game Adaptability"} {
		require.Contains(t, p, section)
	}
}

func TestBuildPrompt_WithOpponent(t *testing.T) {
	p := BuildPrompt("Arsenal", "Chelsea")
	require.Contains(t, p, "for Arsenal against Chelsea.")
}

func TestBuildPrompt_BlankOpponentIsIgnored(t *testing.T) {
	require.NotContains(t, BuildPrompt("Arsenal", "   "), "against")
}

func TestGenerate_ReturnsModelText(t *testing.T) {
	m := &mockLLM{resp: textResponse("**Formation Recommendation** 4-3-3")}
	svc := New(m, testCfg)

	out, err := svc.Generate(context.Background(), Request{Team: "Arsenal"})
	require.NoError(t, err)
	require.Equal(t, "**Formation Recommendation** 4-3-3", out)

	require.Len(t, m.requests, 1)
	req := m.requests[0]
	require.Equal(t, "gpt-4o", req.Model)
	require.Equal(t, 1000, req.MaxTokens)
	require.InDelta(t, 0.7, req.Temperature, 0.0001)
	require.Len(t, req.Messages, 2)
	require.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
	require.Equal(t, testCfg.SystemPrompt, req.Messages[0].Content)
	require.Equal(t, openai.ChatMessageRoleUser, req.Messages[1].Role)
	require.Contains(t, req.Messages[1].Content, "Arsenal")
	require.NotContains(t, req.Messages[1].Content, "against")
}

func TestGenerate_Opponent(t *testing.T) {
	m := &mockLLM{resp: textResponse("ok")}
	_, err := New(m, testCfg).Generate(context.Background(), Request{Team: "Arsenal", Opponent: "Chelsea"})
	require.NoError(t, err)
	require.Contains(t, m.requests[0].Messages[1].Content, "against Chelsea")
}

func TestGenerate_EmptyTeamStillCallsLLM(t *testing.T) {
	m := &mockLLM{resp: textResponse("generic plan")}
	out, err := New(m, testCfg).Generate(context.Background(), Request{Team: ""})
	require.NoError(t, err)
	require.Equal(t, "generic plan", out)
	require.Len(t, m.requests, 1)
}

func TestGenerate_LLMError(t *testing.T) {
	boom := errors.New("upstream exploded")
	_, err := New(&mockLLM{err: boom}, testCfg).Generate(context.Background(), Request{Team: "Arsenal"})
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "upstream exploded")
}

func TestGenerate_NoChoices(t *testing.T) {
	_, err := New(&mockLLM{}, testCfg).Generate(context.Background(), Request{Team: "Arsenal"})
	require.ErrorIs(t, err, ErrNoChoices)
}
