package leaderboard

import "fmt"

// Query holds the resolved board filters. The SQL is assembled from
// fixed fragments selected per metric, user input only ever travels
// through positional parameters.
type Query struct {
	Metric Metric
	// DateFrom is the inclusive YYYY-MM-DD lower bound, nil for no
	// time window.
	DateFrom *string
	// Squadron restricts the candidate users, nil for everyone.
	Squadron *string
}

func (q Query) scoreExpression() string {
	switch q.Metric {
	case MetricDistance:
		return "COALESCE(SUM(w.distance), 0)::double precision"
	case MetricDuration:
		return "COALESCE(SUM(w.duration), 0)::double precision"
	default:
		return "COUNT(w.id)::double precision"
	}
}

// rankingCTE builds the shared scoring and ranking CTEs. Users with no
// matching workouts survive the left join with score 0 and are dropped
// by the score > 0 guard before ranking.
func (q Query) rankingCTE() (cte string, args []interface{}) {
	joinCondition := "w.user_id = u.id"
	if q.DateFrom != nil {
		args = append(args, *q.DateFrom)
		joinCondition += fmt.Sprintf(" AND w.date >= $%d", len(args))
	}

	squadronFilter := ""
	if q.Squadron != nil {
		args = append(args, *q.Squadron)
		squadronFilter = fmt.Sprintf("WHERE u.squadron = $%d", len(args))
	}

	cte = fmt.Sprintf(`
		WITH user_scores AS (
			SELECT
				u.id AS user_id,
				u.username,
				u.rank,
				u.squadron,
				%s AS score
			FROM users u
			LEFT JOIN workouts w ON %s
			%s
			GROUP BY u.id
		),
		ranked_users AS (
			SELECT
				user_id, username, rank, squadron, score,
				ROW_NUMBER() OVER (ORDER BY score DESC) AS position
			FROM user_scores
			WHERE score > 0
		)`,
		q.scoreExpression(), joinCondition, squadronFilter,
	)
	return cte, args
}

// buildTop returns the query for the visible board, capped to limit.
func (q Query) buildTop(limit int) (string, []interface{}) {
	cte, args := q.rankingCTE()
	args = append(args, limit)
	sql := cte + fmt.Sprintf(`
		SELECT user_id, username, rank, squadron, score
		FROM ranked_users
		ORDER BY position
		LIMIT $%d`,
		len(args),
	)
	return sql, args
}

// buildStanding returns the query for one user's true position over the
// full ranking, uncapped.
func (q Query) buildStanding(userID int) (string, []interface{}) {
	cte, args := q.rankingCTE()
	args = append(args, userID)
	sql := cte + fmt.Sprintf(`
		SELECT position, score
		FROM ranked_users
		WHERE user_id = $%d`,
		len(args),
	)
	return sql, args
}
