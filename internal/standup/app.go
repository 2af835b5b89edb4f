package standup

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"standup/internal/board"
	"standup/internal/config"
	"standup/internal/discord"
	"standup/internal/report"
	"standup/internal/taiga"
)

// Application wires the one-shot pipeline: fetch, classify, group, compute
// metrics, render, assemble, dispatch. Each run is a stateless snapshot;
// nothing persists between invocations.
type Application struct {
	Config     *config.Config
	Logger     *slog.Logger
	Taiga      *taiga.Client
	Discord    *discord.Client
	Summarizer *Summarizer

	// KanbanColumns overrides the default story board definition.
	KanbanColumns []board.Column

	// Now is swappable for deterministic output in tests.
	Now func() time.Time
}

func New(cfg *config.Config) *Application {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	app := &Application{
		Config:  cfg,
		Logger:  logger,
		Taiga:   taiga.NewClient(cfg.Taiga.BaseURL),
		Discord: discord.NewClient(cfg.Discord.WebhookURL),
		Now:     time.Now,
	}

	if url := os.Getenv("OLLAMA_URL"); url != "" {
		app.Summarizer = NewSummarizer(url, os.Getenv("OLLAMA_MODEL"))
		logger.Info("summarizer enabled", "url", url)
	}

	return app
}

// Run executes the full pipeline and posts the standup. On failure it
// attempts one best-effort error notification on the same webhook before
// returning the original error.
func (app *Application) Run(ctx context.Context) error {
	if err := app.run(ctx); err != nil {
		app.Logger.Error("standup run failed", "error", err)
		app.Discord.NotifyError(ctx, err)
		return err
	}
	return nil
}

func (app *Application) run(ctx context.Context) error {
	r, err := app.Collect(ctx)
	if err != nil {
		return err
	}

	if app.Summarizer != nil {
		metrics := board.ComputeMetrics(r.StoriesByStatus, r.DoneStatuses)
		r.Summary = app.Summarizer.Narrative(ctx, r.Sprint, metrics)
	}

	sprintEmbed := SprintEmbed(r)
	metricsEmbed := MetricsEmbed(r)
	embeds := discord.SplitFields(sprintEmbed, sprintEmbed.Fields)
	embeds = append(embeds, discord.SplitFields(metricsEmbed, metricsEmbed.Fields)...)

	app.Logger.Info("dispatching standup", "embeds", len(embeds))
	if err := app.Discord.Execute(ctx, discord.Message{
		Content: app.Config.Discord.Mention,
		Embeds:  embeds,
	}); err != nil {
		return fmt.Errorf("failed to dispatch standup: %w", err)
	}

	app.Logger.Info("standup sent",
		"stories", board.CountNonNil(r.Stories),
		"tasks", board.CountNonNil(r.Tasks),
	)
	return nil
}

// Collect fetches everything for one run and aggregates it into a Report.
func (app *Application) Collect(ctx context.Context) (*Report, error) {
	cfg := app.Config

	app.Logger.Info("authenticating", "url", cfg.Taiga.BaseURL)
	if err := app.Taiga.Authenticate(ctx, cfg.Taiga.Username, cfg.Taiga.Password); err != nil {
		return nil, fmt.Errorf("taiga authentication failed: %w", err)
	}

	project, err := app.Taiga.ProjectBySlug(ctx, cfg.Taiga.ProjectSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project %q: %w", cfg.Taiga.ProjectSlug, err)
	}
	app.Logger.Info("project fetched", "name", project.Name, "id", project.ID)

	milestones, err := app.Taiga.Milestones(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sprints: %w", err)
	}

	now := app.Now()
	sprint := board.CurrentSprint(taiga.Sprints(milestones), now)
	if sprint != nil {
		app.Logger.Info("current sprint", "name", sprint.Name)
	} else {
		app.Logger.Info("no sprint selected, sprint sections will be omitted")
	}

	var sprintTasks []*board.Item
	if sprint != nil {
		raw, err := app.Taiga.Tasks(ctx, project.ID, sprint.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch sprint tasks: %w", err)
		}
		sprintTasks = taiga.TaskItems(raw)
	}

	rawStories, err := app.Taiga.UserStories(ctx, project.ID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stories: %w", err)
	}
	stories := taiga.StoryItems(rawStories)

	rawTasks, err := app.Taiga.Tasks(ctx, project.ID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %w", err)
	}
	tasks := taiga.TaskItems(rawTasks)

	kanbanColumns := app.KanbanColumns
	if kanbanColumns == nil {
		kanbanColumns = board.DefaultKanbanColumns
	}
	classifier := board.NewClassifier(cfg.Board.NormalizeStatus, kanbanColumns)

	r := &Report{
		Project:         project,
		Sprint:          sprint,
		SprintTasks:     sprintTasks,
		Stories:         stories,
		Tasks:           tasks,
		SprintByStatus:  board.GroupByStatus(sprintTasks, classifier),
		StoriesByStatus: board.GroupByStatus(stories, classifier),
		ByAssignee:      board.GroupByAssignee(stories, classifier, cfg.Board.TerminalStatuses),
		TasksByStory:    board.GroupByParent(tasks),
		Classifier:      classifier,
		SprintColumns:   board.DefaultSprintColumns,
		KanbanColumns:   kanbanColumns,
		Now:             now,
		Reminder:        cfg.Discord.Reminder,
		KanbanBoard:     cfg.Board.IncludeKanban,
		DoneStatuses:    cfg.Board.DoneStatuses,
		RenderOpts: board.RenderOptions{
			MaxVisible:   cfg.Board.MaxVisible,
			IncludeEmpty: cfg.Board.IncludeEmpty,
		},
	}

	app.Logger.Info("aggregation complete",
		"stories", board.CountNonNil(stories),
		"tasks", board.CountNonNil(tasks),
		"sprint_tasks", board.CountNonNil(sprintTasks),
		"statuses", len(r.StoriesByStatus),
	)
	return r, nil
}

// Snapshot reshapes a collected report for the offline exporters.
func (app *Application) Snapshot(r *Report) *report.Snapshot {
	sprintName := ""
	if r.Sprint != nil {
		sprintName = r.Sprint.Name
	}
	return &report.Snapshot{
		ProjectName:     r.Project.Name,
		SprintName:      sprintName,
		GeneratedAt:     r.Now,
		Stories:         r.Stories,
		Tasks:           r.Tasks,
		StoriesByStatus: r.StoriesByStatus,
		TasksByStatus:   board.GroupByStatus(r.Tasks, r.Classifier),
		StoryMetrics:    board.ComputeMetrics(r.StoriesByStatus, r.DoneStatuses),
		TaskMetrics:     board.ComputeMetrics(board.GroupByStatus(r.Tasks, r.Classifier), r.DoneStatuses),
	}
}
