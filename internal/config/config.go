package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Taiga   TaigaConfig
	Discord DiscordConfig
	Board   BoardConfig
	Output  OutputConfig
}

type TaigaConfig struct {
	BaseURL     string
	Username    string
	Password    string
	ProjectSlug string
}

type DiscordConfig struct {
	WebhookURL string
	Mention    string // e.g. "@everyone", sent as plain content
	Reminder   string // overrides the built-in daily reminder line
}

type BoardConfig struct {
	MaxVisible       int
	NormalizeStatus  bool
	IncludeEmpty     bool
	IncludeKanban    bool
	TerminalStatuses []string
	DoneStatuses     []string
}

type OutputConfig struct {
	Directory string
	Format    []string // xlsx, csv
}

func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Taiga: TaigaConfig{
			BaseURL:     getEnvOrDefault("TAIGA_URL", "https://api.taiga.io/api/v1"),
			Username:    os.Getenv("TAIGA_USERNAME"),
			Password:    os.Getenv("TAIGA_PASSWORD"),
			ProjectSlug: os.Getenv("PROJECT_SLUG"),
		},
		Discord: DiscordConfig{
			WebhookURL: os.Getenv("DISCORD_WEBHOOK"),
			Mention:    os.Getenv("DISCORD_MENTION"),
			Reminder:   os.Getenv("DISCORD_REMINDER"),
		},
		Board: BoardConfig{
			MaxVisible:       3,
			NormalizeStatus:  true,
			IncludeEmpty:     true,
			IncludeKanban:    os.Getenv("BOARD_INCLUDE_KANBAN") == "true",
			TerminalStatuses: []string{"Done", "Archived"},
			DoneStatuses:     []string{"Done"},
		},
		Output: OutputConfig{
			Directory: getEnvOrDefault("OUTPUT_DIR", "reports"),
			Format:    strings.Split(getEnvOrDefault("OUTPUT_FORMAT", "xlsx"), ","),
		},
	}

	if raw := os.Getenv("BOARD_MAX_VISIBLE"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid BOARD_MAX_VISIBLE %q", raw)
		}
		cfg.Board.MaxVisible = n
	}

	if raw := os.Getenv("BOARD_TERMINAL_STATUSES"); raw != "" {
		cfg.Board.TerminalStatuses = splitList(raw)
	}
	if raw := os.Getenv("BOARD_DONE_STATUSES"); raw != "" {
		cfg.Board.DoneStatuses = splitList(raw)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Taiga.Username == "" || c.Taiga.Password == "" {
		return fmt.Errorf("TAIGA_USERNAME and TAIGA_PASSWORD are required")
	}
	if c.Taiga.ProjectSlug == "" {
		return fmt.Errorf("PROJECT_SLUG is required")
	}
	if c.Discord.WebhookURL == "" {
		return fmt.Errorf("DISCORD_WEBHOOK is required")
	}
	return nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
