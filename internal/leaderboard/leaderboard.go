package leaderboard

// TopLimit caps the number of entries a board ever shows.
const TopLimit = 50

// View selects the board's time window or population scope.
type View string

const (
	ViewAllTime  View = "all_time"
	ViewWeek     View = "week"
	ViewMonth    View = "month"
	ViewSquadron View = "squadron"
)

// ParseView normalizes raw input, anything unrecognized means all-time.
func ParseView(raw string) View {
	switch View(raw) {
	case ViewWeek:
		return ViewWeek
	case ViewMonth:
		return ViewMonth
	case ViewSquadron:
		return ViewSquadron
	default:
		return ViewAllTime
	}
}

// Metric selects the scoring basis for ranking.
type Metric string

const (
	MetricWorkouts Metric = "workouts"
	MetricDistance Metric = "distance"
	MetricDuration Metric = "duration"
)

// ParseMetric normalizes raw input, anything unrecognized means workouts.
func ParseMetric(raw string) Metric {
	switch Metric(raw) {
	case MetricDistance:
		return MetricDistance
	case MetricDuration:
		return MetricDuration
	default:
		return MetricWorkouts
	}
}

func (m Metric) Label() string {
	switch m {
	case MetricDistance:
		return "Total Distance (mi)"
	case MetricDuration:
		return "Total Duration (min)"
	default:
		return "Total Workouts"
	}
}

// Entry is one ranked row, computed fresh on every request.
type Entry struct {
	UserID   int     `json:"userId"`
	Username string  `json:"username"`
	Rank     *string `json:"rank,omitempty"`
	Squadron *string `json:"squadron,omitempty"`
	Score    float64 `json:"score"`
}

// Standing is the requester's own place on the board. Position is
// 1-based and computed over the full ranking, not just the visible top.
type Standing struct {
	Position int     `json:"position"`
	Score    float64 `json:"score"`
}

type Board struct {
	Entries     []Entry   `json:"entries"`
	MetricLabel string    `json:"metricLabel"`
	Requester   *Standing `json:"requester"`
}
