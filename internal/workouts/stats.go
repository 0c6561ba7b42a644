package workouts

import (
	"context"
	"sort"
	"time"

	"github.com/squadfit/squadfit/internal/telemetry/tracing"
)

// Dashboard carries the chart payloads for the personal dashboard:
// a 7-day activity bar chart and a per-exercise-type breakdown.
type Dashboard struct {
	WeekLabels []string `json:"weekLabels"`
	WeekValues []int    `json:"weekValues"`
	TypeLabels []string `json:"typeLabels"`
	TypeValues []int    `json:"typeValues"`
	Total      int      `json:"total"`
}

type dashboardRepo interface {
	ListForUser(ctx context.Context, userID int) ([]Workout, error)
}

type Stats struct {
	repo dashboardRepo
	// injectable clock for deterministic tests
	NowFunc func() time.Time
}

func NewStats(repo dashboardRepo) *Stats {
	return &Stats{
		repo:    repo,
		NowFunc: time.Now,
	}
}

// Dashboard aggregates the user's workouts into the chart series. The
// week series always spans the 7 days ending today, zero-filled.
func (s *Stats) Dashboard(ctx context.Context, userID int) (_ *Dashboard, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "stats.workouts.dashboard")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	workouts, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// formatting with DateLayout drops the clock, keeping the local calendar day
	today := s.NowFunc()

	dayCounts := make(map[string]int)
	typeCounts := make(map[string]int)
	for _, workout := range workouts {
		dayCounts[workout.Date]++
		typeCounts[workout.ExerciseType]++
	}

	dashboard := &Dashboard{
		WeekLabels: make([]string, 0, 7),
		WeekValues: make([]int, 0, 7),
		Total:      len(workouts),
	}
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i).Format(DateLayout)
		dashboard.WeekLabels = append(dashboard.WeekLabels, day)
		dashboard.WeekValues = append(dashboard.WeekValues, dayCounts[day])
	}

	typeLabels := make([]string, 0, len(typeCounts))
	for exerciseType := range typeCounts {
		typeLabels = append(typeLabels, exerciseType)
	}
	sort.Strings(typeLabels)

	dashboard.TypeLabels = make([]string, 0, len(typeLabels))
	dashboard.TypeValues = make([]int, 0, len(typeLabels))
	for _, exerciseType := range typeLabels {
		dashboard.TypeLabels = append(dashboard.TypeLabels, exerciseType)
		dashboard.TypeValues = append(dashboard.TypeValues, typeCounts[exerciseType])
	}

	return dashboard, nil
}
