package taiga

import (
	"time"

	"standup/internal/board"
)

// Conversion from raw API records to the board model, mirroring how the
// fetch layer hands aggregate-ready values to the report layer. Nil list
// entries are preserved so the grouping engine owns the skip.

func StoryItems(stories []*UserStory) []*board.Item {
	items := make([]*board.Item, len(stories))
	for i, s := range stories {
		if s == nil {
			continue
		}
		items[i] = &board.Item{
			ID:       s.ID,
			Ref:      s.Ref,
			Subject:  s.Subject,
			Status:   statusInfo(s.StatusExtraInfo),
			Assignee: userInfo(s.AssignedToExtraInfo),
			Closed:   s.IsClosed,
		}
	}
	return items
}

func TaskItems(tasks []*Task) []*board.Item {
	items := make([]*board.Item, len(tasks))
	for i, t := range tasks {
		if t == nil {
			continue
		}
		item := &board.Item{
			ID:       t.ID,
			Ref:      t.Ref,
			Subject:  t.Subject,
			Status:   statusInfo(t.StatusExtraInfo),
			Assignee: userInfo(t.AssignedToExtraInfo),
			Closed:   t.IsClosed,
		}
		if t.UserStory != nil {
			item.ParentID = *t.UserStory
		}
		if t.UserStoryExtraInfo != nil {
			item.ParentRef = t.UserStoryExtraInfo.Ref
		}
		items[i] = item
	}
	return items
}

func statusInfo(s *StatusInfo) *board.StatusInfo {
	if s == nil {
		return nil
	}
	return &board.StatusInfo{Name: s.Name, Color: s.Color}
}

func userInfo(u *UserInfo) *board.UserInfo {
	if u == nil {
		return nil
	}
	return &board.UserInfo{Username: u.Username, FullName: u.FullName}
}

// Sprints converts milestones into board sprints, parsing whichever date
// layout the API used for the estimates.
func Sprints(milestones []Milestone) []board.Sprint {
	sprints := make([]board.Sprint, 0, len(milestones))
	for _, m := range milestones {
		sprints = append(sprints, board.Sprint{
			ID:     m.ID,
			Name:   m.Name,
			Start:  parseDate(m.EstimatedStart),
			Finish: parseDate(m.EstimatedFinish),
		})
	}
	return sprints
}

func parseDate(raw *string) *time.Time {
	if raw == nil || *raw == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, *raw); err == nil {
			return &t
		}
	}
	return nil
}
