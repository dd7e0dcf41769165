package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App    AppConfig
	Auth   AuthConfig
	Notion NotionConfig
	Gemini GeminiConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	AuditLogFilePath   string
	CorsAllowedOrigins string
}

type AuthConfig struct {
	AllowedDomain      string // email suffix, e.g. "@dai.co.jp"
	JWTSecret          string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	SessionTTLMinutes  int
}

type NotionConfig struct {
	Token      string
	DatabaseID string
	BaseURL    string
	APIVersion string
	Props      NotionProps
}

// NotionProps maps FAQ fields onto the Notion database schema. The database
// uses a title property for the business id, rich_text for question/answer,
// a select for category and a date for the last-updated stamp.
type NotionProps struct {
	ID          string
	Question    string
	Answer      string
	Category    string
	LastUpdated string
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			AuditLogFilePath:   getEnv("AUDIT_LOG_FILE_PATH", "audit.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Auth: AuthConfig{
			AllowedDomain:      getEnv("ALLOWED_EMAIL_DOMAIN", "@dai.co.jp"),
			JWTSecret:          getEnv("JWT_SECRET", ""),
			GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
			SessionTTLMinutes:  getEnvAsInt("SESSION_TTL_MINUTES", 60),
		},
		Notion: NotionConfig{
			Token:      getEnv("NOTION_TOKEN", ""),
			DatabaseID: getEnv("NOTION_DATABASE_ID", ""),
			BaseURL:    getEnv("NOTION_BASE_URL", "https://api.notion.com"),
			APIVersion: getEnv("NOTION_API_VERSION", "2022-06-28"),
			Props: NotionProps{
				ID:          getEnv("NOTION_PROP_ID", "ID"),
				Question:    getEnv("NOTION_PROP_QUESTION", "Question"),
				Answer:      getEnv("NOTION_PROP_ANSWER", "Answer"),
				Category:    getEnv("NOTION_PROP_CATEGORY", "Category"),
				LastUpdated: getEnv("NOTION_PROP_LAST_UPDATED", "Last Updated"),
			},
		},
		Gemini: GeminiConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.5-pro"),
			BaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		},
	}
}

// Validate fails closed: the server refuses to start when any credential
// required for store or AI calls is missing, instead of attempting remote
// calls with empty credentials later.
func (c *Config) Validate() error {
	var missing []string
	if c.Notion.Token == "" {
		missing = append(missing, "NOTION_TOKEN")
	}
	if c.Notion.DatabaseID == "" {
		missing = append(missing, "NOTION_DATABASE_ID")
	}
	if c.Gemini.APIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if c.Auth.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if !strings.HasPrefix(c.Auth.AllowedDomain, "@") {
		return fmt.Errorf("ALLOWED_EMAIL_DOMAIN must start with '@', got %q", c.Auth.AllowedDomain)
	}
	return nil
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
