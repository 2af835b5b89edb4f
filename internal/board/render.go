package board

import (
	"fmt"
	"strings"
)

// Visible-item caps used by the different report configurations.
const (
	VisibleCompact  = 3 // default board columns
	VisibleRelaxed  = 4
	VisibleExtended = 5 // blocked-items callout
	VisibleFull     = 10
)

// Title truncation caps.
const (
	TitleLimitCell    = 25 // board column cells
	TitleLimitCallout = 50 // blocked-items callout lines
)

// RenderOptions selects between the board layout variants.
type RenderOptions struct {
	// MaxVisible caps individually rendered lines per column; the rest
	// collapse into a single "+N more" line. Zero means VisibleCompact.
	MaxVisible int
	// TitleLimit caps item titles. Zero means TitleLimitCell.
	TitleLimit int
	// IncludeEmpty renders defined columns with no items as a placeholder
	// block instead of omitting them.
	IncludeEmpty bool
	// ShowParentRef appends the owning story ref to task lines.
	ShowParentRef bool
}

func (o RenderOptions) maxVisible() int {
	if o.MaxVisible <= 0 {
		return VisibleCompact
	}
	return o.MaxVisible
}

func (o RenderOptions) titleLimit() int {
	if o.TitleLimit <= 0 {
		return TitleLimitCell
	}
	return o.TitleLimit
}

// RenderBoard produces one inline field per defined column, in definition
// order. children may be nil; when present, items owning children get a
// completed/total badge.
func RenderBoard(columns []Column, byStatus map[string][]*Item, children map[int][]*Item, opts RenderOptions) []Field {
	fields := make([]Field, 0, len(columns))

	for _, col := range columns {
		items := byStatus[col.Status]
		if len(items) == 0 && !opts.IncludeEmpty {
			continue
		}

		fields = append(fields, Field{
			Name:   fmt.Sprintf("%s %s (%d)", col.Emoji, col.Status, len(items)),
			Value:  renderColumn(items, children, opts),
			Inline: true,
		})
	}

	return fields
}

func renderColumn(items []*Item, children map[int][]*Item, opts RenderOptions) string {
	var lines []string

	max := opts.maxVisible()
	for i, it := range items {
		if i >= max {
			break
		}
		if it == nil {
			continue
		}
		lines = append(lines, ItemLine(it, children, opts))
	}

	if len(items) > max {
		lines = append(lines, fmt.Sprintf("\n*+%d more*", len(items)-max))
	}
	if len(lines) == 0 {
		lines = append(lines, "*—*")
	}

	return strings.Join(lines, "\n\n")
}

// ItemLine renders one board cell line: ref, assignee handle, optional
// child-progress badge or parent story ref, and the truncated title. The
// trailing ellipsis is appended whether or not truncation happened; the
// upstream boards have always looked like this and readers expect it.
func ItemLine(it *Item, children map[int][]*Item, opts RenderOptions) string {
	suffix := ""
	if kids := children[it.ID]; len(kids) > 0 {
		suffix = fmt.Sprintf(" `%d/%d`", CountClosed(kids), len(kids))
	} else if opts.ShowParentRef && it.ParentRef != 0 {
		suffix = fmt.Sprintf(" (US#%d)", it.ParentRef)
	}

	return fmt.Sprintf("**#%d** @%s%s\n%s...", it.Ref, AssigneeHandle(it), suffix, TruncateTitle(it.Subject, opts.titleLimit()))
}

// AssigneeHandle returns the assignee username or the "?" sentinel.
func AssigneeHandle(it *Item) string {
	if it == nil || it.Assignee == nil || it.Assignee.Username == "" {
		return AssigneeUnknown
	}
	return it.Assignee.Username
}

// TruncateTitle caps a title at limit characters. Untitled items show a
// fixed placeholder.
func TruncateTitle(subject string, limit int) string {
	if subject == "" {
		return "No title"
	}
	runes := []rune(subject)
	if len(runes) > limit {
		return string(runes[:limit])
	}
	return subject
}
