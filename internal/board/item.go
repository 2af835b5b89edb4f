package board

// Item is a single work item (user story or task) as fetched from the
// project tracker. Optional nesting from the API survives as nil pointers;
// a nil *Item corresponds to a JSON null list entry and is skipped by the
// grouping engine.
type Item struct {
	ID        int
	Ref       int
	Subject   string
	Status    *StatusInfo
	Assignee  *UserInfo
	ParentID  int // owning story id, 0 for stories and orphan tasks
	ParentRef int // owning story ref, for display only
	Closed    bool
}

type StatusInfo struct {
	Name  string
	Color string
}

type UserInfo struct {
	Username string
	FullName string
}

// Column defines one rendered board column: the canonical status it shows
// and the glyph used in its header. Definition order is rendering order.
type Column struct {
	Status string
	Emoji  string
}

// Field is a rendered display block: a named value that is either inline
// (packs three per row) or full-width.
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// Sentinel values substituted for missing data.
const (
	StatusUnknown    = "Unknown"
	AssigneeUnknown  = "?"
	UnassignedBucket = "unassigned"
)

// StatusBlocked is the reserved status counted for health reporting.
const StatusBlocked = "Blocked"

// DefaultTerminalStatuses are excluded from active-work groupings.
var DefaultTerminalStatuses = []string{"Done", "Archived"}

// DefaultKanbanColumns mirrors the story workflow board.
var DefaultKanbanColumns = []Column{
	{Status: "Not Started", Emoji: "⏸️"},
	{Status: "In Progress", Emoji: "🔄"},
	{Status: "Ready for Test", Emoji: "🧪"},
	{Status: "Ready for Review", Emoji: "👀"},
	{Status: "Done", Emoji: "✅"},
}

// DefaultSprintColumns is the reduced task board used for sprint sections.
var DefaultSprintColumns = []Column{
	{Status: "Not Started", Emoji: "⏸️"},
	{Status: "In Progress", Emoji: "🔄"},
	{Status: "Done", Emoji: "✅"},
}
