package standup

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"standup/internal/board"
	"standup/internal/discord"
	"standup/internal/taiga"
)

// DefaultReminder is the fixed call-to-action line included in the daily
// standup description.
const DefaultReminder = "Hey team, this is your daily reminder to head to the most recent " +
	"sprint post and check in with the team. Please comment what you will get done today, " +
	"or if you are too busy, just let the team know you are not available today. Thank you!"

const sectionRule = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

// Report bundles everything the embed builders need for one run.
type Report struct {
	Project     *taiga.Project
	Sprint      *board.Sprint
	SprintTasks []*board.Item
	Stories     []*board.Item
	Tasks       []*board.Item

	SprintByStatus  map[string][]*board.Item
	StoriesByStatus map[string][]*board.Item
	ByAssignee      map[string][]*board.Item
	TasksByStory    map[int][]*board.Item

	Classifier    *board.Classifier
	SprintColumns []board.Column
	KanbanColumns []board.Column
	Now           time.Time

	Reminder     string
	Summary      string // optional model-written narrative
	KanbanBoard  bool   // render the full story board in the metrics embed
	RenderOpts   board.RenderOptions
	DoneStatuses []string
}

// SprintEmbed builds the first embed: date line, reminder, sprint
// completion summary and the sprint task board.
func SprintEmbed(r *Report) discord.Embed {
	description := fmt.Sprintf("**%s** • [Open Project](%s)\n\n", r.Now.Format("Monday, January 02, 2006"), r.Project.BoardURL())

	reminder := r.Reminder
	if reminder == "" {
		reminder = DefaultReminder
	}
	description += reminder + "\n\n"

	if r.Summary != "" {
		description += r.Summary + "\n\n"
	}

	sprintTotal := board.CountNonNil(r.SprintTasks)
	if r.Sprint != nil {
		done := len(r.SprintByStatus["Done"])
		description += fmt.Sprintf("🏃 **%s**: %d/%d tasks complete (%d%%)\n\n",
			r.Sprint.Name, done, sprintTotal, board.Percentage(done, sprintTotal))
	}
	description += sectionRule

	var fields []discord.EmbedField
	if r.Sprint != nil && sprintTotal > 0 {
		fields = append(fields, discord.EmbedField{
			Name:   fmt.Sprintf("🏃 %s (Sprint Tasks)", r.Sprint.Name),
			Value:  fmt.Sprintf("Active sprint with **%d** tasks", sprintTotal),
			Inline: false,
		})

		opts := r.RenderOpts
		opts.ShowParentRef = true
		boardFields := board.RenderBoard(r.SprintColumns, r.SprintByStatus, nil, opts)
		fields = append(fields, discord.FromBoard(boardFields)...)
	}

	return discord.Embed{
		Title:       fmt.Sprintf("🌅 Daily Standup • %s", r.Project.Name),
		Description: description,
		Color:       discord.ColorStandup,
		Fields:      fields,
		Thumbnail:   &discord.Thumbnail{URL: "https://tree.taiga.io/images/logo-color.png"},
		Footer: &discord.Footer{
			Text:    "🏃 Sprint Tasks Board",
			IconURL: "https://tree.taiga.io/images/logo-color.png",
		},
		Timestamp: r.Now.Format(time.RFC3339),
	}
}

// MetricsEmbed builds the second embed: blockers, team workload and the
// velocity metrics. The caller still runs it through SplitFields since a
// large team can push the workload section past the field cap.
func MetricsEmbed(r *Report) discord.Embed {
	metrics := board.ComputeMetrics(r.StoriesByStatus, r.DoneStatuses)

	description := fmt.Sprintf("📋 **Kanban**: %d/%d stories complete (%d%%) %s\n",
		metrics.Done, metrics.Total, metrics.Completion, metrics.Health.Emoji())
	if metrics.Blocked > 0 {
		description += fmt.Sprintf("🚫 **%d** blocked items\n", metrics.Blocked)
	}
	description += "\n" + sectionRule

	var fields []discord.EmbedField

	if r.KanbanBoard {
		fields = append(fields, discord.EmbedField{
			Name:   "📋 Kanban Board (All Work)",
			Value:  fmt.Sprintf("Overall project status with **%d** stories", metrics.Total),
			Inline: false,
		})
		boardFields := board.RenderBoard(r.KanbanColumns, r.StoriesByStatus, r.TasksByStory, r.RenderOpts)
		fields = append(fields, discord.FromBoard(boardFields)...)
		fields = append(fields, discord.SpacerField())
	}

	if callout := blockedCallout(r.StoriesByStatus[board.StatusBlocked]); callout != nil {
		fields = append(fields, *callout)
	}

	fields = append(fields, workloadFields(r.ByAssignee, r.Classifier, r.KanbanColumns)...)

	fields = append(fields, discord.SpacerField())
	fields = append(fields, metricFields(r, metrics)...)

	return discord.Embed{
		Title:       "📊 Team Metrics & Workload",
		Description: description,
		Color:       discord.ColorMetrics,
		Fields:      fields,
		Footer:      &discord.Footer{Text: "👥 Team Workload | 📊 Velocity Metrics"},
		Timestamp:   r.Now.Format(time.RFC3339),
	}
}

// blockedCallout lists the first MaxBlockedCallout blocked items, titles
// capped at the callout limit. Nil when nothing is blocked.
func blockedCallout(blocked []*board.Item) *discord.EmbedField {
	if len(blocked) == 0 {
		return nil
	}

	var lines []string
	for _, it := range blocked {
		if it == nil {
			continue
		}
		if len(lines) == discord.MaxBlockedCallout {
			break
		}
		lines = append(lines, fmt.Sprintf("🚨 **#%d** %s • @%s",
			it.Ref, board.TruncateTitle(it.Subject, board.TitleLimitCallout), board.AssigneeHandle(it)))
	}
	if len(lines) == 0 {
		return nil
	}

	return &discord.EmbedField{
		Name:   "⚠️ BLOCKED - Needs Immediate Attention",
		Value:  strings.Join(lines, "\n"),
		Inline: false,
	}
}

// workloadFields renders one inline field per assignee with their load
// tier and a per-column status breakdown, plus an unassigned warning. Row
// breaks after every third member come from WrapRows.
func workloadFields(byUser map[string][]*board.Item, c *board.Classifier, columns []board.Column) []discord.EmbedField {
	users := make([]string, 0, len(byUser))
	for user := range byUser {
		if user != board.UnassignedBucket {
			users = append(users, user)
		}
	}
	sort.Strings(users)

	var fields []discord.EmbedField
	for _, user := range users {
		items := byUser[user]
		workload := board.WorkloadFor(len(items))

		counts := make(map[string]int)
		for _, it := range items {
			status := c.Status(it)
			for _, col := range columns {
				if status == col.Status {
					counts[col.Emoji]++
					break
				}
			}
		}

		var breakdown []string
		for _, col := range columns {
			if n := counts[col.Emoji]; n > 0 {
				breakdown = append(breakdown, fmt.Sprintf("%s%d", col.Emoji, n))
			}
		}

		fields = append(fields, discord.EmbedField{
			Name:   fmt.Sprintf("%s @%s", workload.Emoji(), user),
			Value:  fmt.Sprintf("**%d** active\n%s", len(items), strings.Join(breakdown, " ")),
			Inline: true,
		})
	}

	fields = discord.WrapRows(fields)

	if unassigned := byUser[board.UnassignedBucket]; len(unassigned) > 0 {
		fields = append(fields, discord.EmbedField{
			Name:   "⚠️ Unassigned",
			Value:  fmt.Sprintf("**%d** stories", len(unassigned)),
			Inline: true,
		})
	}

	return fields
}

func metricFields(r *Report, storyMetrics board.Metrics) []discord.EmbedField {
	var fields []discord.EmbedField

	sprintTotal := board.CountNonNil(r.SprintTasks)
	sprintDone := board.CountClosed(r.SprintTasks)
	if r.Sprint != nil && sprintTotal > 0 {
		pct := board.Percentage(sprintDone, sprintTotal)
		fields = append(fields, discord.EmbedField{
			Name:   "🏃 Sprint Progress",
			Value:  fmt.Sprintf("%s\n**%d/%d** tasks\n(%d%%)", progressBar(pct), sprintDone, sprintTotal, pct),
			Inline: true,
		})
	}

	taskTotal := board.CountNonNil(r.Tasks)
	taskDone := board.CountClosed(r.Tasks)
	taskPct := board.Percentage(taskDone, taskTotal)

	fields = append(fields,
		discord.EmbedField{
			Name:   "📈 Story Progress",
			Value:  fmt.Sprintf("%s\n**%d/%d** stories\n(%d%%)", progressBar(storyMetrics.Completion), storyMetrics.Done, storyMetrics.Total, storyMetrics.Completion),
			Inline: true,
		},
		discord.EmbedField{
			Name:   "✓ Task Completion",
			Value:  fmt.Sprintf("%s\n**%d/%d** tasks\n(%d%%)", progressBar(taskPct), taskDone, taskTotal, taskPct),
			Inline: true,
		},
	)

	return fields
}

func progressBar(percentage int) string {
	const length = 10
	filled := percentage / 10
	if filled > length {
		filled = length
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}
