package sqlite

import (
	"context"

	"github.com/opencampus/tally/internal/loyalty/domain"
)

type checkInsRepo struct {
	db DBTX
}

func (r *checkInsRepo) CreateCheckIn(ctx context.Context, c domain.CheckIn) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO checkins (id, user_id, points_earned, created_at)
		 VALUES (?, ?, ?, ?)`,
		c.ID, c.UserID, c.PointsEarned, c.CreatedAt,
	)
	return err
}

func (r *checkInsRepo) ListUserCheckIns(ctx context.Context, userID string, limit int) ([]domain.CheckIn, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, points_earned, created_at
		 FROM checkins WHERE user_id = ?
		 ORDER BY created_at DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CheckIn
	for rows.Next() {
		var c domain.CheckIn
		if err := rows.Scan(&c.ID, &c.UserID, &c.PointsEarned, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
