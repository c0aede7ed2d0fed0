package store

import (
	"context"
	"errors"
	"time"

	"github.com/opencampus/tally/internal/loyalty/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	CheckIns() CheckIns
	Transactions() Transactions
	Rewards() Rewards

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise committed. This is the
	// recommended way to run the multi-record writes (check-in, redemption).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id provided by the app via ULID).
	// Returns ErrAlreadyExists when the username or email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// AddPoints credits earned points and stamps last_checkin. Used only
	// inside the check-in transaction.
	AddPoints(ctx context.Context, userID string, delta int64, checkinAt time.Time) error

	// SpendPoints conditionally debits the balance. Reports false without
	// mutating when the balance is below cost.
	SpendPoints(ctx context.Context, userID string, cost int64) (bool, error)
}

type CheckIns interface {
	// CreateCheckIn appends an immutable check-in record.
	CreateCheckIn(ctx context.Context, c domain.CheckIn) error

	// ListUserCheckIns returns a user's check-ins, newest first.
	ListUserCheckIns(ctx context.Context, userID string, limit int) ([]domain.CheckIn, error)
}

type Transactions interface {
	// CreateTransaction appends an immutable ledger entry.
	CreateTransaction(ctx context.Context, t domain.PointsTransaction) error

	// ListUserTransactions returns a user's ledger entries, newest first.
	ListUserTransactions(ctx context.Context, userID string, limit int) ([]domain.PointsTransaction, error)

	// SumUserPoints totals the signed deltas for a user. Must equal the
	// user's balance at all times.
	SumUserPoints(ctx context.Context, userID string) (int64, error)
}

type Rewards interface {
	// GetRewardByID fetches a reward for redemption.
	GetRewardByID(ctx context.Context, id string) (domain.Reward, error)

	// ListRewards returns the catalog ordered by cost.
	ListRewards(ctx context.Context) ([]domain.Reward, error)

	// CreateReward inserts a catalog entry (id is ULID).
	CreateReward(ctx context.Context, r domain.Reward) error

	// DecrementStock conditionally takes one unit. Reports false without
	// mutating when the reward is out of stock.
	DecrementStock(ctx context.Context, id string) (bool, error)

	// IsEmpty returns true when the catalog has no entries (seeding check).
	IsEmpty(ctx context.Context) (bool, error)
}
