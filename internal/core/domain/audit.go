package domain

import "time"

// LoginOutcome tags the result of an authentication attempt. The values
// mirror what operators expect to see in the login history views.
type LoginOutcome string

const (
	LoginOutcomeSuccess         LoginOutcome = "Login Successful"
	LoginOutcomeInvalidPassword LoginOutcome = "Invalid Password"
	LoginOutcomeInvalidUsername LoginOutcome = "Invalid Username"
)

// LoginAuditEntry records one authentication attempt. IdentityID is nil when
// the presented identifier did not resolve to a stored identity. Entries are
// append-only and removed only by cascade when the parent identity is deleted.
type LoginAuditEntry struct {
	ID             string
	Role           Role
	Identifier     string
	IdentityID     *int64
	IdentityStatus string
	Outcome        LoginOutcome
	CreatedAt      time.Time
}
