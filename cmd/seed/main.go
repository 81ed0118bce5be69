package main

import (
	"encoding/json"
	"os"
	"strings"

	"focusforge-be/internal/config"
	"focusforge-be/internal/model"
	"focusforge-be/pkg/database"
	"focusforge-be/pkg/embedding"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// Seeds a handful of well-rated session memories so similarity search has
// something to return on a fresh database. Embeddings are computed inline
// since there is no running consumer here.

type seedSession struct {
	userInput string
	userState string
	steps     []string
	rating    int
}

var seedSessions = []seedSession{
	{
		userInput: "My mind is racing before tomorrow's presentation and I can't slow down",
		userState: "Anxiety and Overwhelm",
		steps:     []string{"breathing", "grounding", "breathing", "affirmation", "visualization"},
		rating:    5,
	},
	{
		userInput: "I keep putting off my thesis and feel paralyzed every time I open the document",
		userState: "Procrastination Loop",
		steps:     []string{"journaling", "visualization", "movement", "breathing"},
		rating:    4,
	},
	{
		userInput: "Completely drained after back to back meetings all week",
		userState: "Burnout",
		steps:     []string{"breathing", "gratitude", "visualization", "affirmation", "grounding"},
		rating:    5,
	},
	{
		userInput: "Too many browser tabs open in my head, I cannot pick what to start with",
		userState: "Decision Fatigue",
		steps:     []string{"grounding", "rest", "breathing", "journaling"},
		rating:    4,
	},
}

func main() {
	color.Cyan("🌱 Seeding session memories\n")

	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	var provider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		provider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	} else {
		provider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	}

	for _, s := range seedSessions {
		document := s.userInput + " " + s.userState + " " + strings.Join(s.steps, " ")

		res, err := provider.Generate(document, "RETRIEVAL_DOCUMENT")
		if err != nil {
			color.Red("Failed to embed %q: %v", s.userState, err)
			os.Exit(1)
		}
		vec := pgvector.NewVector(res.Embedding.Values)

		stepsJson, _ := json.Marshal(s.steps)
		record := &model.SessionMemory{
			SessionId:   uuid.New(),
			UserInput:   s.userInput,
			UserState:   s.userState,
			RitualSteps: stepsJson,
			Rating:      s.rating,
			Embedding:   &vec,
		}

		if err := db.Create(record).Error; err != nil {
			color.Red("Failed to insert session for %q: %v", s.userState, err)
			os.Exit(1)
		}

		color.Green("✔ %s (rating %d, %d steps)", s.userState, s.rating, len(s.steps))
	}

	color.Cyan("\nDone: %d sessions seeded", len(seedSessions))
}
