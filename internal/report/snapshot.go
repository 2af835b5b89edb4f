package report

import (
	"sort"
	"time"

	"standup/internal/board"
)

// Snapshot is the aggregated state of one run, reshaped for the offline
// exporters. It is built once and never mutated.
type Snapshot struct {
	ProjectName string
	SprintName  string
	GeneratedAt time.Time

	Stories []*board.Item
	Tasks   []*board.Item

	StoriesByStatus map[string][]*board.Item
	TasksByStatus   map[string][]*board.Item

	StoryMetrics board.Metrics
	TaskMetrics  board.Metrics
}

// StatusNames returns the statuses present in a grouping: defined board
// columns first in definition order, then anything else alphabetically.
func StatusNames(byStatus map[string][]*board.Item, columns []board.Column) []string {
	seen := make(map[string]bool)
	var names []string

	for _, col := range columns {
		if _, ok := byStatus[col.Status]; ok {
			names = append(names, col.Status)
			seen[col.Status] = true
		}
	}

	var rest []string
	for status := range byStatus {
		if !seen[status] {
			rest = append(rest, status)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}
