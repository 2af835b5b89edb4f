package board

// Grouping holds the per-run partitions of the fetched items. Slices keep
// source fetch order; nil input entries never make it into a group.
type Grouping struct {
	ByStatus   map[string][]*Item
	ByAssignee map[string][]*Item
	ByParent   map[int][]*Item
}

// GroupByStatus partitions items by canonical status, skipping nil entries.
func GroupByStatus(items []*Item, c *Classifier) map[string][]*Item {
	byStatus := make(map[string][]*Item)
	for _, it := range items {
		if it == nil {
			continue
		}
		status := c.Status(it)
		byStatus[status] = append(byStatus[status], it)
	}
	return byStatus
}

// GroupByAssignee partitions active items (status not in terminal) by
// assignee username. Items without an assignee land in UnassignedBucket.
func GroupByAssignee(items []*Item, c *Classifier, terminal []string) map[string][]*Item {
	skip := make(map[string]bool, len(terminal))
	for _, s := range terminal {
		skip[s] = true
	}

	byUser := make(map[string][]*Item)
	for _, it := range items {
		if it == nil {
			continue
		}
		if skip[c.Status(it)] {
			continue
		}

		user := UnassignedBucket
		if it.Assignee != nil && it.Assignee.Username != "" {
			user = it.Assignee.Username
		}
		byUser[user] = append(byUser[user], it)
	}
	return byUser
}

// GroupByParent indexes child items by their parent id. Items without a
// parent reference are excluded. The index does not check that the parent
// actually exists in the fetched set.
func GroupByParent(items []*Item) map[int][]*Item {
	byParent := make(map[int][]*Item)
	for _, it := range items {
		if it == nil || it.ParentID == 0 {
			continue
		}
		byParent[it.ParentID] = append(byParent[it.ParentID], it)
	}
	return byParent
}

// Group runs all three partitions over the same input.
func Group(items []*Item, c *Classifier, terminal []string) Grouping {
	return Grouping{
		ByStatus:   GroupByStatus(items, c),
		ByAssignee: GroupByAssignee(items, c, terminal),
		ByParent:   GroupByParent(items),
	}
}
