package state

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"focusforge-be/internal/constant"
	"focusforge-be/pkg/llm"
	"focusforge-be/pkg/ritual"
)

// Result is the classifier's verdict on the user's emotional state.
type Result struct {
	State      string  `json:"state"`
	Confidence float64 `json:"confidence"`
}

// Classifier resolves free text to one of the predefined mental states via a
// pure LLM call. Transport failures propagate to the caller; a malformed
// model payload degrades to the fallback state instead, since an unreadable
// answer and "unclear input" are indistinguishable downstream.
type Classifier struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewClassifier(llmProvider llm.LLMProvider, logger *log.Logger) *Classifier {
	return &Classifier{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

func (c *Classifier) Classify(ctx context.Context, text string) (*Result, error) {
	prompt := fmt.Sprintf(constant.StateAnalysisPromptV1, text)

	// Temperature 0.1 for near-deterministic classification
	response, err := c.llmProvider.Generate(ctx, prompt,
		llm.WithTemperature(0.1),
	)
	if err != nil {
		return nil, fmt.Errorf("state analysis call failed: %w", err)
	}

	result, err := c.parseResult(response)
	if err != nil {
		c.logger.Printf("[WARN] State parsing failed, using fallback: %v", err)
		return c.fallbackResult(), nil
	}

	c.logger.Printf("[STATE] Detected: %s (confidence: %.2f)", result.State, result.Confidence)
	return result, nil
}

func (c *Classifier) parseResult(response string) (*Result, error) {
	jsonContent := extractJSON(response)
	if jsonContent == "" {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var result Result
	if err := json.Unmarshal([]byte(jsonContent), &result); err != nil {
		return nil, fmt.Errorf("JSON unmarshal failed: %w", err)
	}

	if result.State == "" {
		return nil, fmt.Errorf("missing state in response")
	}

	// Clamp confidence into [0,1]
	if result.Confidence < 0 {
		result.Confidence = 0
	}
	if result.Confidence > 1 {
		result.Confidence = 1
	}

	return &result, nil
}

func (c *Classifier) fallbackResult() *Result {
	return &Result{
		State:      ritual.FallbackState,
		Confidence: 0.5,
	}
}

func extractJSON(response string) string {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}

	return response[startIdx : endIdx+1]
}
