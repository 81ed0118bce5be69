package step

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"focusforge-be/internal/constant"
	"focusforge-be/pkg/llm"
)

// GeneratedStep is one exercise produced by the model.
type GeneratedStep struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	StepType string `json:"step_type"`
}

// Generator produces ritual step content one call at a time. Calls are made
// sequentially by the architect so each prompt can carry the titles of the
// steps already generated, steering the model away from near-duplicates.
type Generator struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewGenerator(llmProvider llm.LLMProvider, logger *log.Logger) *Generator {
	return &Generator{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

func (g *Generator) GenerateStep(ctx context.Context, stepType, userState string, position int, previousTitles []string) (*GeneratedStep, error) {
	avoid := ""
	if len(previousTitles) > 0 {
		avoid = fmt.Sprintf(constant.StepGenerationAvoidTitlesV1, strings.Join(previousTitles, "; "))
	}

	prompt := fmt.Sprintf(constant.StepGenerationPromptV1,
		userState, stepType, position, avoid, stepType)

	response, err := g.llmProvider.Generate(ctx, prompt,
		llm.WithTemperature(0.3),
	)
	if err != nil {
		return nil, fmt.Errorf("step generation call failed: %w", err)
	}

	generated, err := g.parseStep(response)
	if err != nil {
		return nil, err
	}

	// The sampled type is authoritative; a drifting model must not change the
	// distribution the weight table asked for.
	if generated.StepType != stepType {
		g.logger.Printf("[WARN] Model returned step_type %q, forcing %q", generated.StepType, stepType)
		generated.StepType = stepType
	}

	return generated, nil
}

func (g *Generator) parseStep(response string) (*GeneratedStep, error) {
	jsonContent := extractJSON(response)
	if jsonContent == "" {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var generated GeneratedStep
	if err := json.Unmarshal([]byte(jsonContent), &generated); err != nil {
		return nil, fmt.Errorf("JSON unmarshal failed: %w", err)
	}

	if generated.Title == "" || generated.Content == "" {
		return nil, fmt.Errorf("incomplete step payload")
	}

	return &generated, nil
}

func extractJSON(response string) string {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}

	return response[startIdx : endIdx+1]
}
