package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	IngestTopic        string
	EnableTracing      bool
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	Voyage     string
	OpenAI     string
	OpenRouter string
}

type AIConfig struct {
	BaseCollection  string
	OllamaBaseURL   string
	LLMProvider     string // "openrouter" or "ollama"
	LLMModel        string
	OpenRouterSite  string
	OpenRouterTitle string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			IngestTopic:        getEnv("INGEST_KNOWLEDGE_TOPIC_NAME", "INGEST_KNOWLEDGE_ITEM"),
			EnableTracing:      getEnv("ENABLE_TRACING", "false") == "true",
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			Voyage:     getEnv("VOYAGE_API_KEY", ""),
			OpenAI:     getEnv("OPENAI_API_KEY", ""),
			OpenRouter: getEnv("OPENROUTER_API_KEY", ""),
		},
		Ai: AIConfig{
			BaseCollection:  getEnv("BASE_COLLECTION", "support-kb"),
			OllamaBaseURL:   getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			LLMProvider:     getEnv("LLM_PROVIDER", "openrouter"),
			LLMModel:        getEnv("LLM_MODEL", "deepseek/deepseek-chat-v3.1:free"),
			OpenRouterSite:  getEnv("OPENROUTER_SITE_URL", ""),
			OpenRouterTitle: getEnv("OPENROUTER_SITE_NAME", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
