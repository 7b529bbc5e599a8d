package domain

import "time"

// PointTransaction is an immutable point-transfer ledger entry. Both sides of the
// transfer are recorded: FromPointChange is negative, ToPointChange is positive and
// of equal magnitude. Rows are written by the transfer flow and never updated or
// deleted here.
type PointTransaction struct {
	ID              string    `json:"id"`
	FromWallet      string    `json:"from_wallet"`
	ToWallet        string    `json:"to_wallet"`
	FromPointChange int64     `json:"from_point_change"` // negative
	ToPointChange   int64     `json:"to_point_change"`   // positive, equal magnitude
	Reason          string    `json:"reason"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
}

// IsBalanced reports whether the two sides of the transfer cancel out.
func (t *PointTransaction) IsBalanced() bool {
	return t.FromPointChange == -t.ToPointChange
}
