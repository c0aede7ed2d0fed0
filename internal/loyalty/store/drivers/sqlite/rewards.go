package sqlite

import (
	"context"

	"github.com/opencampus/tally/internal/loyalty/domain"
)

type rewardsRepo struct {
	db DBTX
}

const rewardColumns = `id, name, description, points_cost, stock, created_at, updated_at`

func (r *rewardsRepo) GetRewardByID(ctx context.Context, id string) (domain.Reward, error) {
	var rw domain.Reward
	err := r.db.QueryRowContext(ctx,
		`SELECT `+rewardColumns+` FROM rewards WHERE id = ?`, id,
	).Scan(&rw.ID, &rw.Name, &rw.Description, &rw.PointsCost, &rw.Stock, &rw.CreatedAt, &rw.UpdatedAt)
	if err != nil {
		return domain.Reward{}, mapNotFound(err)
	}
	return rw, nil
}

func (r *rewardsRepo) ListRewards(ctx context.Context) ([]domain.Reward, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+rewardColumns+` FROM rewards ORDER BY points_cost ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Reward
	for rows.Next() {
		var rw domain.Reward
		if err := rows.Scan(&rw.ID, &rw.Name, &rw.Description, &rw.PointsCost, &rw.Stock, &rw.CreatedAt, &rw.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rw)
	}
	return out, rows.Err()
}

func (r *rewardsRepo) CreateReward(ctx context.Context, rw domain.Reward) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO rewards (id, name, description, points_cost, stock, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rw.ID, rw.Name, rw.Description, rw.PointsCost, rw.Stock, rw.CreatedAt, rw.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *rewardsRepo) DecrementStock(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE rewards
		 SET stock = stock - 1, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND stock > 0`,
		id,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *rewardsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rewards`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}
