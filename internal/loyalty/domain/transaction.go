package domain

import "time"

// Transaction kinds. The ledger is append-only; the sum of a user's
// transaction points must equal their current balance.
const (
	TransactionEarn  = "earn"
	TransactionSpend = "spend"
)

// PointsTransaction is an immutable ledger entry. Earn entries carry a
// positive delta, spend entries a negative one.
type PointsTransaction struct {
	ID          string
	UserID      string
	Points      int64 // signed delta
	Kind        string
	Description string
	CreatedAt   time.Time
}
