package board

import "strings"

// Classifier resolves the canonical status name of an item. Missing or
// malformed status data degrades to StatusUnknown, never an error.
type Classifier struct {
	normalize bool
	canonical map[string]string
}

// NewClassifier builds a classifier. When normalize is true, case variants
// of the given canonical spellings (plus the reserved Blocked/terminal
// statuses) fold to one spelling; anything else passes through verbatim.
func NewClassifier(normalize bool, columns []Column) *Classifier {
	c := &Classifier{
		normalize: normalize,
		canonical: make(map[string]string),
	}

	for _, col := range columns {
		c.canonical[strings.ToLower(col.Status)] = col.Status
	}
	c.canonical[strings.ToLower(StatusBlocked)] = StatusBlocked
	for _, s := range DefaultTerminalStatuses {
		c.canonical[strings.ToLower(s)] = s
	}

	return c
}

// Status returns the canonical status name for an item.
func (c *Classifier) Status(it *Item) string {
	if it == nil || it.Status == nil {
		return StatusUnknown
	}

	name := it.Status.Name
	if name == "" {
		return StatusUnknown
	}

	if c.normalize {
		if canonical, ok := c.canonical[strings.ToLower(name)]; ok {
			return canonical
		}
	}

	return name
}
