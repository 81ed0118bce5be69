package state

import (
	"context"
	"errors"
	"log"
	"testing"

	"focusforge-be/pkg/llm"
	"focusforge-be/pkg/ritual"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return f.response, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func TestClassifyParsesPlainJSON(t *testing.T) {
	provider := &fakeLLM{response: `{"state": "Anxiety and Overwhelm", "confidence": 0.92}`}
	c := NewClassifier(provider, log.Default())

	result, err := c.Classify(context.Background(), "my thoughts are racing")
	require.NoError(t, err)

	assert.Equal(t, "Anxiety and Overwhelm", result.State)
	assert.InDelta(t, 0.92, result.Confidence, 0.001)
}

func TestClassifyParsesFencedJSON(t *testing.T) {
	provider := &fakeLLM{response: "Here you go:\n```json\n{\"state\": \"Burnout\", \"confidence\": 0.8}\n```"}
	c := NewClassifier(provider, log.Default())

	result, err := c.Classify(context.Background(), "so tired")
	require.NoError(t, err)

	assert.Equal(t, "Burnout", result.State)
}

func TestClassifyTransportErrorPropagates(t *testing.T) {
	provider := &fakeLLM{err: errors.New("connection refused")}
	c := NewClassifier(provider, log.Default())

	_, err := c.Classify(context.Background(), "anything")
	assert.Error(t, err)
}

func TestClassifyMalformedPayloadFallsBack(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"no json at all", "I cannot answer that"},
		{"broken json", `{"state": "Sadness", "confidence":`},
		{"missing state", `{"confidence": 0.9}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeLLM{response: tt.response}
			c := NewClassifier(provider, log.Default())

			result, err := c.Classify(context.Background(), "input")
			require.NoError(t, err)

			assert.Equal(t, ritual.FallbackState, result.State)
			assert.InDelta(t, 0.5, result.Confidence, 0.001)
		})
	}
}

func TestClassifyClampsConfidence(t *testing.T) {
	provider := &fakeLLM{response: `{"state": "Sadness", "confidence": 1.7}`}
	c := NewClassifier(provider, log.Default())

	result, err := c.Classify(context.Background(), "feeling down")
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.Confidence)

	provider.response = `{"state": "Sadness", "confidence": -0.3}`
	result, err = c.Classify(context.Background(), "feeling down")
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestClassifyIncludesInputInPrompt(t *testing.T) {
	provider := &fakeLLM{response: `{"state": "Sadness", "confidence": 0.7}`}
	c := NewClassifier(provider, log.Default())

	_, err := c.Classify(context.Background(), "a very specific complaint")
	require.NoError(t, err)

	require.Len(t, provider.prompts, 1)
	assert.Contains(t, provider.prompts[0], "a very specific complaint")
}
