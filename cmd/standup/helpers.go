package main

import (
	"strings"

	"standup/internal/board"
)

// parseColumns turns a "Status=glyph,Status=glyph" flag value into board
// column definitions, preserving order. Entries without a glyph get a
// neutral marker; blank entries are dropped.
func parseColumns(input string) []board.Column {
	if input == "" {
		return nil
	}

	var columns []board.Column
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		status, emoji := part, "▪️"
		if i := strings.Index(part, "="); i >= 0 {
			status = strings.TrimSpace(part[:i])
			if glyph := strings.TrimSpace(part[i+1:]); glyph != "" {
				emoji = glyph
			}
		}
		if status == "" {
			continue
		}

		columns = append(columns, board.Column{Status: status, Emoji: emoji})
	}
	return columns
}
