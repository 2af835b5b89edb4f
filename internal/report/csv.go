package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"standup/internal/board"
)

type CSVExporter struct {
	OutputDir string
}

func NewCSVExporter(outputDir string) *CSVExporter {
	return &CSVExporter{OutputDir: outputDir}
}

// Export writes the item list and the dashboard as two CSV files.
func (e *CSVExporter) Export(snap *Snapshot) error {
	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := snap.GeneratedAt.Format("2006-01-02_15-04-05")

	if err := e.exportItemList(snap, timestamp); err != nil {
		return fmt.Errorf("failed to export item list: %w", err)
	}
	if err := e.exportDashboard(snap, timestamp); err != nil {
		return fmt.Errorf("failed to export dashboard: %w", err)
	}

	return nil
}

func (e *CSVExporter) exportItemList(snap *Snapshot, timestamp string) error {
	filename := filepath.Join(e.OutputDir, fmt.Sprintf("standup_%s_items.csv", timestamp))
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"#",
		"Kind",
		"Ref",
		"Subject",
		"Status",
		"Assignee",
		"Closed",
		"Story Ref",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	n := 0
	write := func(kind string, byStatus map[string][]*board.Item) error {
		for _, status := range StatusNames(byStatus, board.DefaultKanbanColumns) {
			for _, it := range byStatus[status] {
				n++
				storyRef := ""
				if it.ParentRef != 0 {
					storyRef = fmt.Sprintf("#%d", it.ParentRef)
				}
				row := []string{
					fmt.Sprintf("%d", n),
					kind,
					fmt.Sprintf("#%d", it.Ref),
					it.Subject,
					displayStatus(status),
					board.AssigneeHandle(it),
					yesNo(it.Closed),
					storyRef,
				}
				if err := writer.Write(row); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := write("Story", snap.StoriesByStatus); err != nil {
		return err
	}
	return write("Task", snap.TasksByStatus)
}

func (e *CSVExporter) exportDashboard(snap *Snapshot, timestamp string) error {
	filename := filepath.Join(e.OutputDir, fmt.Sprintf("standup_%s_dashboard.csv", timestamp))
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	meta := [][]string{
		{"Project", snap.ProjectName},
		{"Sprint", snap.SprintName},
		{"Generated", snap.GeneratedAt.Format("2006-01-02 15:04")},
		{},
		{"Status", "Stories", "Tasks"},
	}
	for _, row := range meta {
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	for _, status := range mergedStatuses(snap) {
		row := []string{
			displayStatus(status),
			fmt.Sprintf("%d", len(snap.StoriesByStatus[status])),
			fmt.Sprintf("%d", len(snap.TasksByStatus[status])),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	summary := [][]string{
		{"Total", fmt.Sprintf("%d", snap.StoryMetrics.Total), fmt.Sprintf("%d", snap.TaskMetrics.Total)},
		{},
		{"Story completion", fmt.Sprintf("%d%%", snap.StoryMetrics.Completion)},
		{"Task completion", fmt.Sprintf("%d%%", snap.TaskMetrics.Completion)},
		{"Blocked", fmt.Sprintf("%d", snap.StoryMetrics.Blocked)},
		{"Health", string(snap.StoryMetrics.Health)},
	}
	for _, row := range summary {
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	return nil
}

var statusTitler = cases.Title(language.English)

// displayStatus title-cases a status for spreadsheet output, leaving
// already-canonical spellings alone.
func displayStatus(status string) string {
	if status == strings.ToLower(status) {
		return statusTitler.String(status)
	}
	return status
}
