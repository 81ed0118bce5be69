package bootstrap

import (
	"log"
	"time"

	"focusforge-be/internal/config"
	"focusforge-be/internal/constant"
	"focusforge-be/internal/controller"
	"focusforge-be/internal/pkg/logger"
	"focusforge-be/internal/repository/memory"
	"focusforge-be/internal/repository/unitofwork"
	"focusforge-be/internal/service"
	"focusforge-be/pkg/ai/state"
	"focusforge-be/pkg/ai/step"
	"focusforge-be/pkg/embedding"
	"focusforge-be/pkg/llm/factory"
	"focusforge-be/pkg/ritual"

	pktNats "focusforge-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	RitualController controller.IRitualController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	// Initialize Embedding Provider based on Config
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Ritual Building Blocks
	weights := ritual.DefaultWeightTable()
	if cfg.Ritual.StepWeightsPath != "" {
		loaded, err := ritual.Load(cfg.Ritual.StepWeightsPath)
		if err != nil {
			log.Fatalf("[FATAL] Failed to load step weights from %s: %v", cfg.Ritual.StepWeightsPath, err)
		}
		weights = loaded
		log.Printf("[INFO] Loaded step weight overrides from %s", cfg.Ritual.StepWeightsPath)
	}

	seed := cfg.Ritual.SamplerSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sampler := ritual.NewSampler(seed)

	classifier := state.NewClassifier(llmProvider, log.Default())
	generator := step.NewGenerator(llmProvider, log.Default())

	// Initialize In-Memory Session Registry
	sessionRegistry := memory.NewSessionRegistry(cfg.Ritual.SessionTTL, constant.SessionRegistryPurgeEvery)

	// 5. Infrastructure
	// NATS (optional: domain events are best-effort)
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// 6. Services
	publisherService := service.NewPublisherService(cfg.Keys.EmbedSessionTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedSessionTopic,
		uowFactory,
		embeddingProvider,
	)

	architectService := service.NewRitualArchitectService(
		classifier,
		generator,
		uowFactory,
		embeddingProvider,
		weights,
		sampler,
		sysLogger,
	)
	guideService := service.NewRitualGuideService(sessionRegistry, uowFactory, natsPub, sysLogger)
	workflowService := service.NewWorkflowService(
		architectService,
		guideService,
		uowFactory,
		publisherService,
		natsPub,
		sysLogger,
	)

	// 7. Controllers
	ritualController := controller.NewRitualController(workflowService, guideService)

	return &Container{
		RitualController: ritualController,
		ConsumerService:  consumerService,
	}
}
