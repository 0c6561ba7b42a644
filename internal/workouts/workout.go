package workouts

// DateLayout is the calendar-date format workouts are stored with.
const DateLayout = "2006-01-02"

// Workout is a single logged activity. Only the exercise type and the
// date are mandatory, all numeric measurements are independently optional.
type Workout struct {
	ID           int      `json:"id"`
	UserID       int      `json:"userId"`
	ExerciseType string   `json:"exerciseType"`
	Duration     *int     `json:"duration,omitempty"` // minutes
	Distance     *float64 `json:"distance,omitempty"` // miles
	Reps         *int     `json:"reps,omitempty"`
	Weight       *float64 `json:"weight,omitempty"`
	Date         string   `json:"date"` // YYYY-MM-DD
}
