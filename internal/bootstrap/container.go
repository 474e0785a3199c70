package bootstrap

import (
	"context"
	"log"
	"time"

	"qa-agent-be/internal/config"
	"qa-agent-be/internal/controller"
	"qa-agent-be/internal/pkg/logger"
	"qa-agent-be/internal/repository/memory"
	"qa-agent-be/internal/repository/unitofwork"
	"qa-agent-be/internal/service"
	"qa-agent-be/pkg/embedding"
	"qa-agent-be/pkg/llm/factory"

	pktNats "qa-agent-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const embeddingCacheTTL = 24 * time.Hour

type Container struct {
	// Controllers
	DocumentController controller.IDocumentController
	TestCaseController controller.ITestCaseController
	ScriptController   controller.IScriptController

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

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis (embedding cache)
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Embedding cache disabled", err)
		rdb = nil
	}

	// 3. Services
	// Initialize Embedding Provider based on Config
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "openai" {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Ai.OpenAIAPIKey, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
	} else {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.EmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	}
	embeddingProvider = embedding.NewCachedProvider(embeddingProvider, rdb, cfg.Ai.EmbeddingModel, embeddingCacheTTL)

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(factory.Config{
		Provider:     cfg.Ai.LLMProvider,
		OpenAIAPIKey: cfg.Ai.OpenAIAPIKey,
		GroqAPIKey:   cfg.Ai.GroqAPIKey,
		ModelName:    llmModelName(cfg),
		BaseURL:      cfg.Ai.OllamaBaseURL,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, llmModelName(cfg))

	// Initialize In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository()

	publisherService := service.NewPublisherService(cfg.App.IngestedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.IngestedTopic,
		natsPub,
		sysLogger,
	)

	knowledgeService := service.NewKnowledgeService(
		uowFactory,
		publisherService,
		embeddingProvider, // Injected
		natsPub,
		cfg.Rag.ChunkSize,
		cfg.Rag.ChunkOverlap,
	)
	documentService := service.NewDocumentService(
		knowledgeService,
		cfg.Upload.Dir,
		int64(cfg.Upload.MaxFileSize),
	)
	testCaseService := service.NewTestCaseService(
		knowledgeService,
		llmProvider, // Injected
		sessionRepo, // Injected
		natsPub,
		cfg.Rag.TopK,
	)
	scriptService := service.NewScriptService(
		knowledgeService,
		llmProvider,
		sessionRepo,
		natsPub,
	)

	// 4. Controllers
	// Note: We return the container with public fields for the server to register
	return &Container{
		ConsumerService:    consumerService,
		DocumentController: controller.NewDocumentController(documentService, cfg.Upload.Dir),
		TestCaseController: controller.NewTestCaseController(testCaseService),
		ScriptController:   controller.NewScriptController(scriptService),
	}
}

// llmModelName picks the model matching the active provider.
func llmModelName(cfg *config.Config) string {
	switch cfg.Ai.LLMProvider {
	case "openai":
		return cfg.Ai.OpenAIModel
	case "ollama":
		return cfg.Ai.OllamaModel
	default:
		return cfg.Ai.GroqModel
	}
}
