package board

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBoard(t *testing.T) {
	c := NewClassifier(true, DefaultKanbanColumns)
	columns := []Column{
		{Status: "In Progress", Emoji: "🔄"},
		{Status: "Done", Emoji: "✅"},
	}

	t.Run("caps visible items and summarizes the rest", func(t *testing.T) {
		var items []*Item
		for i := 1; i <= 5; i++ {
			it := item(i, "Done", "ana")
			it.Subject = fmt.Sprintf("Task number %d", i)
			items = append(items, it)
		}
		byStatus := GroupByStatus(items, c)

		fields := RenderBoard(columns, byStatus, nil, RenderOptions{IncludeEmpty: true})

		require.Len(t, fields, 2)
		done := fields[1]
		assert.Equal(t, "✅ Done (5)", done.Name, "header counts all items, not just visible ones")
		assert.Equal(t, 3, strings.Count(done.Value, "**#"), "only the cap is rendered individually")
		assert.Contains(t, done.Value, "*+2 more*")
	})

	t.Run("empty column renders placeholder when included", func(t *testing.T) {
		fields := RenderBoard(columns, map[string][]*Item{}, nil, RenderOptions{IncludeEmpty: true})
		require.Len(t, fields, 2)
		assert.Equal(t, "🔄 In Progress (0)", fields[0].Name)
		assert.Equal(t, "*—*", fields[0].Value)
	})

	t.Run("empty column omitted when not included", func(t *testing.T) {
		byStatus := GroupByStatus([]*Item{item(1, "Done", "ana")}, c)
		fields := RenderBoard(columns, byStatus, nil, RenderOptions{})
		require.Len(t, fields, 1)
		assert.Equal(t, "✅ Done (1)", fields[0].Name)
	})

	t.Run("larger cap shows all items without overflow line", func(t *testing.T) {
		var items []*Item
		for i := 1; i <= 5; i++ {
			items = append(items, item(i, "Done", "ana"))
		}
		byStatus := GroupByStatus(items, c)

		fields := RenderBoard(columns, byStatus, nil, RenderOptions{MaxVisible: VisibleFull})

		require.Len(t, fields, 1)
		assert.Equal(t, 5, strings.Count(fields[0].Value, "**#"))
		assert.NotContains(t, fields[0].Value, "more*")
	})
}

func TestItemLine(t *testing.T) {
	t.Run("ellipsis appended even without truncation", func(t *testing.T) {
		it := item(42, "Done", "ana")
		it.Subject = "Short"
		line := ItemLine(it, nil, RenderOptions{})
		assert.Equal(t, "**#42** @ana\nShort...", line)
	})

	t.Run("long titles truncated at the cell cap", func(t *testing.T) {
		it := item(7, "Done", "ben")
		it.Subject = strings.Repeat("x", 40)
		line := ItemLine(it, nil, RenderOptions{})
		assert.Contains(t, line, strings.Repeat("x", TitleLimitCell)+"...")
		assert.NotContains(t, line, strings.Repeat("x", TitleLimitCell+1))
	})

	t.Run("missing assignee renders sentinel", func(t *testing.T) {
		it := item(9, "Done", "")
		line := ItemLine(it, nil, RenderOptions{})
		assert.Contains(t, line, "@?")
	})

	t.Run("child progress badge from closed flags", func(t *testing.T) {
		story := item(1, "In Progress", "ana")
		children := map[int][]*Item{
			1: {{ID: 10, Closed: true}, {ID: 11}, {ID: 12, Closed: true}},
		}
		line := ItemLine(story, children, RenderOptions{})
		assert.Contains(t, line, "`2/3`")
	})

	t.Run("parent story ref shown for tasks when enabled", func(t *testing.T) {
		task := item(2, "Done", "ben")
		task.ParentRef = 55
		line := ItemLine(task, nil, RenderOptions{ShowParentRef: true})
		assert.Contains(t, line, "(US#55)")
	})
}

func TestTruncateTitle(t *testing.T) {
	assert.Equal(t, "No title", TruncateTitle("", TitleLimitCell))
	assert.Equal(t, "abc", TruncateTitle("abc", 5))
	assert.Equal(t, "abcde", TruncateTitle("abcdefgh", 5))
}
