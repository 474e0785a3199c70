package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
	Rag      RAGConfig
	Upload   UploadConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	IngestedTopic      string // Internal topic for document ingested events
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	LLMProvider       string // "openai", "groq" or "ollama"
	OpenAIAPIKey      string
	GroqAPIKey        string
	OpenAIModel       string
	GroqModel         string
	OllamaModel       string
	OllamaBaseURL     string
	EmbeddingProvider string // "openai" or "ollama"
	EmbeddingModel    string
}

type RAGConfig struct {
	ChunkSize    int
	ChunkOverlap int
	TopK         int
	MaxTokens    int
	Temperature  float64
}

type UploadConfig struct {
	Dir         string
	MaxFileSize int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:8000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			IngestedTopic:      getEnv("DOCUMENT_INGESTED_TOPIC_NAME", "DOCUMENT_INGESTED"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			LLMProvider:       getEnv("LLM_PROVIDER", "groq"),
			OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
			GroqAPIKey:        getEnv("GROQ_API_KEY", ""),
			OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
			GroqModel:         getEnv("GROQ_MODEL", "mixtral-8x7b-32768"),
			OllamaModel:       getEnv("OLLAMA_MODEL", "llama2"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			EmbeddingModel:    getEnv("EMBEDDING_MODEL", "nomic-embed-text"),
		},
		Rag: RAGConfig{
			ChunkSize:    getEnvAsInt("CHUNK_SIZE", 1000),
			ChunkOverlap: getEnvAsInt("CHUNK_OVERLAP", 200),
			TopK:         getEnvAsInt("TOP_K_RESULTS", 5),
			MaxTokens:    getEnvAsInt("MAX_TOKENS", 2000),
			Temperature:  getEnvAsFloat("TEMPERATURE", 0.7),
		},
		Upload: UploadConfig{
			Dir:         getEnv("UPLOAD_DIR", "./uploaded_docs"),
			MaxFileSize: getEnvAsInt("MAX_FILE_SIZE", 10*1024*1024),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
