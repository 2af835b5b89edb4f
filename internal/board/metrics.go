package board

import "math"

// Health is the coarse indicator derived from the blocked-item count.
type Health string

const (
	HealthHealthy   Health = "healthy"
	HealthWatch     Health = "watch"
	HealthAttention Health = "attention"
)

// Emoji returns the traffic-light glyph used in message output.
func (h Health) Emoji() string {
	switch h {
	case HealthHealthy:
		return "🟢"
	case HealthWatch:
		return "🟡"
	default:
		return "🔴"
	}
}

// Workload is the per-assignee load bucket.
type Workload string

const (
	WorkloadLight    Workload = "light"
	WorkloadModerate Workload = "moderate"
	WorkloadHeavy    Workload = "heavy"
)

func (w Workload) Emoji() string {
	switch w {
	case WorkloadLight:
		return "🟢"
	case WorkloadModerate:
		return "🟡"
	default:
		return "🔴"
	}
}

// Health tier thresholds are fixed design constants, not configuration.
const (
	healthWatchMax   = 2
	workloadLightMax = 2
	workloadModMax   = 4
)

// Metrics is the derived snapshot for one grouping.
type Metrics struct {
	Total      int
	Done       int
	Completion int // rounded percentage, 0 when Total is 0
	Blocked    int
	Health     Health
}

// ComputeMetrics derives counts and tiers from a status grouping. done
// names the statuses counted as complete; nil defaults to "Done" alone.
func ComputeMetrics(byStatus map[string][]*Item, done []string) Metrics {
	if done == nil {
		done = []string{"Done"}
	}
	doneSet := make(map[string]bool, len(done))
	for _, s := range done {
		doneSet[s] = true
	}

	var m Metrics
	for status, items := range byStatus {
		m.Total += len(items)
		if doneSet[status] {
			m.Done += len(items)
		}
	}
	m.Blocked = len(byStatus[StatusBlocked])
	m.Completion = Percentage(m.Done, m.Total)
	m.Health = HealthFor(m.Blocked)
	return m
}

// Percentage returns round(done/total*100), and 0 when total is 0.
func Percentage(done, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

// HealthFor maps a blocked count to its health tier.
func HealthFor(blocked int) Health {
	switch {
	case blocked == 0:
		return HealthHealthy
	case blocked <= healthWatchMax:
		return HealthWatch
	default:
		return HealthAttention
	}
}

// WorkloadFor maps an active-item count to its workload tier.
func WorkloadFor(active int) Workload {
	switch {
	case active <= workloadLightMax:
		return WorkloadLight
	case active <= workloadModMax:
		return WorkloadModerate
	default:
		return WorkloadHeavy
	}
}

// CountClosed counts items with the closed flag set, skipping nil entries.
func CountClosed(items []*Item) int {
	n := 0
	for _, it := range items {
		if it != nil && it.Closed {
			n++
		}
	}
	return n
}

// CountNonNil counts real entries in a fetch result that may carry nulls.
func CountNonNil(items []*Item) int {
	n := 0
	for _, it := range items {
		if it != nil {
			n++
		}
	}
	return n
}
