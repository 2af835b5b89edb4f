package board

import "time"

// Sprint is a milestone snapshot. Start/Finish are nil when the tracker
// has no estimated dates for it.
type Sprint struct {
	ID     int
	Name   string
	Start  *time.Time
	Finish *time.Time
}

// CurrentSprint picks the sprint whose date range contains now. When none
// matches, the most recently started sprint wins; an empty list yields nil
// and sprint-scoped report sections are skipped.
func CurrentSprint(sprints []Sprint, now time.Time) *Sprint {
	day := now.Truncate(24 * time.Hour)

	for i := range sprints {
		s := &sprints[i]
		if s.Start == nil || s.Finish == nil {
			continue
		}
		start := s.Start.Truncate(24 * time.Hour)
		finish := s.Finish.Truncate(24 * time.Hour)
		if !day.Before(start) && !day.After(finish) {
			return s
		}
	}

	var latest *Sprint
	for i := range sprints {
		s := &sprints[i]
		if latest == nil {
			latest = s
			continue
		}
		if startOf(s).After(startOf(latest)) {
			latest = s
		}
	}
	return latest
}

func startOf(s *Sprint) time.Time {
	if s.Start == nil {
		return time.Time{}
	}
	return *s.Start
}
