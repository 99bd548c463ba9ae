package port

import (
	"context"

	"github.com/maverick2062/Gym-Management/internal/core/domain"
)

// LoginAuditRepository appends and reads per-role login history. Entries are
// never mutated; deletion happens only through the cascade on the parent
// identity row.
type LoginAuditRepository interface {
	Record(ctx context.Context, entry domain.LoginAuditEntry) error

	// HistoryForIdentity returns entries in insertion order, most recent
	// last. The cap keeps the newest limit rows.
	HistoryForIdentity(ctx context.Context, role domain.Role, identityID int64, limit int) ([]domain.LoginAuditEntry, error)
}
