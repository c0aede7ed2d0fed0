package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/opencampus/tally/internal/loyalty/domain"
)

type usersRepo struct {
	db DBTX
}

const userColumns = `id, username, email, password_hash, points, last_checkin, created_at, updated_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, email, password_hash, points, last_checkin, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.Points,
		mapOptionalTime(u.LastCheckin), u.CreatedAt, u.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *usersRepo) AddPoints(ctx context.Context, userID string, delta int64, checkinAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET points = points + ?, last_checkin = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		delta, checkinAt, userID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}

func (r *usersRepo) SpendPoints(ctx context.Context, userID string, cost int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users
		 SET points = points - ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND points >= ?`,
		cost, userID, cost,
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
