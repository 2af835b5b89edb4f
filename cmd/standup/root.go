package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"standup/internal/config"
	"standup/internal/report"
	"standup/internal/standup"
)

var (
	projectSlug string
	webhookURL  string
	mention     string
	maxVisible  int
	kanbanBoard bool
	columnsSpec string
	attachImage string
	outputDir   string
)

var rootCmd = &cobra.Command{
	Use:   "standup",
	Short: "Post a Taiga standup summary to a Discord webhook",
	Long:  `Standup fetches the current sprint and backlog from Taiga, aggregates them into board, metrics and workload sections, and posts the result to a Discord webhook.`,
	RunE:  postStandup,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the aggregated snapshot to spreadsheet files",
	Long:  `Fetches the same data as a standup run and writes it to xlsx/csv/json files instead of posting to Discord.`,
	RunE:  exportSnapshot,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify Taiga credentials and project access",
	RunE:  checkAccess,
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	godotenv.Load()

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(checkCmd)

	rootCmd.PersistentFlags().StringVarP(&projectSlug, "project", "p", "", "Taiga project slug (defaults to PROJECT_SLUG)")
	rootCmd.Flags().StringVar(&webhookURL, "webhook", "", "Discord webhook URL (defaults to DISCORD_WEBHOOK)")
	rootCmd.Flags().StringVar(&mention, "mention", "", "Plain-text mention sent with the message, e.g. @everyone")
	rootCmd.Flags().IntVar(&maxVisible, "max-visible", 0, "Items rendered per board column before the +N more line")
	rootCmd.Flags().BoolVar(&kanbanBoard, "kanban", false, "Include the full story board in the metrics embed")
	rootCmd.PersistentFlags().StringVar(&columnsSpec, "columns", "", "Story board columns as Status=glyph pairs, comma-separated")
	rootCmd.Flags().StringVar(&attachImage, "attach", "", "Image file posted after the embeds (rendered board card)")

	exportCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (defaults to OUTPUT_DIR or reports)")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, err
	}

	if projectSlug != "" {
		cfg.Taiga.ProjectSlug = projectSlug
	}
	if webhookURL != "" {
		cfg.Discord.WebhookURL = webhookURL
	}
	if mention != "" {
		cfg.Discord.Mention = mention
	}
	if maxVisible > 0 {
		cfg.Board.MaxVisible = maxVisible
	}
	if kanbanBoard {
		cfg.Board.IncludeKanban = true
	}
	if outputDir != "" {
		cfg.Output.Directory = outputDir
	}

	return cfg, nil
}

func postStandup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	app := standup.New(cfg)
	app.KanbanColumns = parseColumns(columnsSpec)

	bar := newSpinner("Posting standup")
	defer finishBar(bar)

	ctx := context.Background()
	if err := app.Run(ctx); err != nil {
		return err
	}

	if attachImage != "" {
		data, err := os.ReadFile(attachImage)
		if err != nil {
			return fmt.Errorf("failed to read attachment: %w", err)
		}
		if err := app.Discord.ExecuteFile(ctx, cfg.Discord.Mention, filepath.Base(attachImage), data); err != nil {
			return err
		}
	}

	fmt.Println("\nStandup sent")
	return nil
}

func exportSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	app := standup.New(cfg)
	app.KanbanColumns = parseColumns(columnsSpec)

	bar := newSpinner("Fetching project data")
	r, err := app.Collect(context.Background())
	finishBar(bar)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.Output.Directory, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	snap := app.Snapshot(r)

	for _, format := range cfg.Output.Format {
		switch format {
		case "xlsx":
			exporter := report.NewExcelExporter(cfg.Output.Directory)
			if err := exporter.Export(snap); err != nil {
				return fmt.Errorf("excel export failed: %w", err)
			}
		case "csv":
			exporter := report.NewCSVExporter(cfg.Output.Directory)
			if err := exporter.Export(snap); err != nil {
				return fmt.Errorf("csv export failed: %w", err)
			}
		case "json":
			exporter := report.NewExporter(cfg.Output.Directory)
			filename := fmt.Sprintf("standup_%s.json", time.Now().Format("20060102_150405"))
			if err := exporter.ExportJSON(snap, filename); err != nil {
				return fmt.Errorf("json export failed: %w", err)
			}
		default:
			fmt.Printf("Unknown output format %q, skipping\n", format)
		}
	}

	fmt.Printf("\nSnapshot written to %s/\n", cfg.Output.Directory)
	return nil
}

func checkAccess(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Taiga.Username == "" || cfg.Taiga.Password == "" || cfg.Taiga.ProjectSlug == "" {
		return fmt.Errorf("TAIGA_USERNAME, TAIGA_PASSWORD and PROJECT_SLUG are required")
	}

	app := standup.New(cfg)
	ctx := context.Background()

	bar := newSpinner("Checking access")
	defer finishBar(bar)

	if err := app.Taiga.Authenticate(ctx, cfg.Taiga.Username, cfg.Taiga.Password); err != nil {
		return err
	}

	project, err := app.Taiga.ProjectBySlug(ctx, cfg.Taiga.ProjectSlug)
	if err != nil {
		return err
	}

	fmt.Printf("\nOK: %s (id %d)\n", project.Name, project.ID)
	return nil
}

func newSpinner(description string) *progressbar.ProgressBar {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(15),
		progressbar.OptionThrottle(100*time.Millisecond),
	)
	_ = bar.RenderBlank()
	return bar
}

func finishBar(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Finish()
	}
}
