package sqlite

import (
	"context"

	"github.com/opencampus/tally/internal/loyalty/domain"
)

type transactionsRepo struct {
	db DBTX
}

func (r *transactionsRepo) CreateTransaction(ctx context.Context, t domain.PointsTransaction) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO points_transactions (id, user_id, points, kind, description, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Points, t.Kind, t.Description, t.CreatedAt,
	)
	return err
}

func (r *transactionsRepo) ListUserTransactions(ctx context.Context, userID string, limit int) ([]domain.PointsTransaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, points, kind, description, created_at
		 FROM points_transactions WHERE user_id = ?
		 ORDER BY created_at DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PointsTransaction
	for rows.Next() {
		var t domain.PointsTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Points, &t.Kind, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *transactionsRepo) SumUserPoints(ctx context.Context, userID string) (int64, error) {
	var sum int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(points), 0) FROM points_transactions WHERE user_id = ?`,
		userID,
	).Scan(&sum)
	return sum, err
}
