package main

import (
	"fmt"
	"os"

	"faq-management-be/internal/config"

	"github.com/fatih/color"
)

// Operator tool: prints which credentials the server would start with and
// exits non-zero when the fail-closed validation would block startup.
func main() {
	cfg := config.Load()

	fmt.Println("FAQ management backend: environment check")
	fmt.Println()

	printVar("NOTION_TOKEN", cfg.Notion.Token != "")
	printVar("NOTION_DATABASE_ID", cfg.Notion.DatabaseID != "")
	printVar("GEMINI_API_KEY", cfg.Gemini.APIKey != "")
	printVar("JWT_SECRET", cfg.Auth.JWTSecret != "")
	printVar("GOOGLE_CLIENT_ID (optional)", cfg.Auth.GoogleClientID != "")

	fmt.Println()
	fmt.Printf("Allowed email domain: %s\n", cfg.Auth.AllowedDomain)
	fmt.Printf("Notion base URL:      %s\n", cfg.Notion.BaseURL)
	fmt.Printf("Gemini model:         %s\n", cfg.Gemini.Model)
	fmt.Println()

	if err := cfg.Validate(); err != nil {
		color.Red("FAIL: %v", err)
		os.Exit(1)
	}
	color.Green("OK: configuration is complete, server would start")
}

func printVar(name string, set bool) {
	if set {
		color.Green("  [set]     %s", name)
	} else {
		color.Red("  [missing] %s", name)
	}
}
