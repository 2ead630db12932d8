package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LLM providers understood by LLM_PROVIDER.
const (
	ProviderGemini = "gemini"
	ProviderGroq   = "groq"
)

// Config holds the configuration for the application.
type Config struct {
	// Obsidian vault
	VaultPath  string
	RecipeTag  string
	PlanFolder string

	// Ghost blog (optional recipe source and plan publishing)
	GhostURL        string
	GhostContentKey string
	GhostAdminKey   string
	GhostRecipeTag  string

	// LLM used by the recipe clipper (optional)
	LLMProvider  string
	GeminiAPIKey string
	GeminiModel  string
	GroqAPIKey   string

	// Telegram notifications (optional)
	TelegramBotToken string
	TelegramChatID   int64

	LogLevel string
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	vaultPath := os.Getenv("VAULT_PATH")
	if vaultPath == "" {
		return nil, fmt.Errorf("VAULT_PATH environment variable not set")
	}

	cfg := &Config{
		VaultPath:        vaultPath,
		RecipeTag:        getEnv("RECIPE_TAG", "LunchSalad"),
		PlanFolder:       os.Getenv("PLAN_FOLDER"),
		GhostURL:         strings.TrimRight(os.Getenv("GHOST_API_URL"), "/"),
		GhostContentKey:  os.Getenv("GHOST_CONTENT_API_KEY"),
		GhostAdminKey:    os.Getenv("GHOST_ADMIN_API_KEY"),
		GhostRecipeTag:   getEnv("GHOST_RECIPE_TAG", "lunch-salad"),
		LLMProvider:      strings.ToLower(os.Getenv("LLM_PROVIDER")),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		GroqAPIKey:       os.Getenv("GROQ_API_KEY"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}

	if cfg.GhostAdminKey == "" {
		// Fallback to content key if only one is provided
		cfg.GhostAdminKey = cfg.GhostContentKey
	}

	if cfg.GhostURL != "" && cfg.GhostContentKey == "" {
		return nil, fmt.Errorf("GHOST_CONTENT_API_KEY environment variable not set")
	}

	switch cfg.LLMProvider {
	case "":
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
	case ProviderGroq:
		if cfg.GroqAPIKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY environment variable not set")
		}
	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER %q", cfg.LLMProvider)
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID %q: %w", chatID, err)
		}
		cfg.TelegramChatID = id
	}

	return cfg, nil
}

// GhostEnabled reports whether recipes can be fetched from Ghost.
func (c *Config) GhostEnabled() bool {
	return c.GhostURL != "" && c.GhostContentKey != ""
}

// GhostAdminEnabled reports whether plans can be published to Ghost. Admin
// keys have the form id:secret.
func (c *Config) GhostAdminEnabled() bool {
	return c.GhostURL != "" && strings.Contains(c.GhostAdminKey, ":")
}

// LLMEnabled reports whether a provider for the recipe clipper is configured.
func (c *Config) LLMEnabled() bool {
	return c.LLMProvider != ""
}

// TelegramEnabled reports whether plans can be sent to Telegram.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
