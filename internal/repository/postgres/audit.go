package postgres

import (
	"context"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"

	"github.com/maverick2062/Gym-Management/internal/core/domain"
)

// auditRelation maps a role onto its login-history table and the FK column
// pointing at the parent identity. The FK carries ON DELETE CASCADE, so
// deleting an identity erases its history.
type auditRelation struct {
	table    string
	fkColumn string
}

var auditRelations = map[domain.Role]auditRelation{
	domain.RoleAdmin:    {table: "admin_login_audit", fkColumn: "admin_id"},
	domain.RoleEmployee: {table: "employee_login_audit", fkColumn: "employee_id"},
	domain.RoleMember:   {table: "member_login_audit", fkColumn: "member_id"},
}

// LoginAuditRepository implements port.LoginAuditRepository over the three
// per-role history tables.
type LoginAuditRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewLoginAuditRepository constructs a repository backed by any executor
// that satisfies pgExecutor.
func NewLoginAuditRepository(exec pgExecutor) *LoginAuditRepository {
	return &LoginAuditRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Record appends one attempt. The timestamp is defaulted by the database at
// write time; entries are never updated afterwards.
func (r *LoginAuditRepository) Record(ctx context.Context, entry domain.LoginAuditEntry) error {
	rel, ok := auditRelations[entry.Role]
	if !ok {
		return fmt.Errorf("unknown role %q", entry.Role)
	}

	stmt, args, err := r.builder.
		Insert(rel.table).
		Columns("id", "identifier", rel.fkColumn, "identity_status", "login_status").
		Values(entry.ID, entry.Identifier, entry.IdentityID, entry.IdentityStatus, entry.Outcome).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert %s sql: %w", rel.table, err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert %s: %w", rel.table, err)
	}

	return nil
}

// HistoryForIdentity returns entries in insertion order, most recent last.
// The cap keeps the newest limit rows, so old entries age out of view first.
func (r *LoginAuditRepository) HistoryForIdentity(ctx context.Context, role domain.Role, identityID int64, limit int) ([]domain.LoginAuditEntry, error) {
	rel, ok := auditRelations[role]
	if !ok {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	if limit <= 0 {
		limit = 100
	}

	stmt, args, err := r.builder.
		Select("id", "identifier", rel.fkColumn, "identity_status", "login_status", "created_at").
		From(rel.table).
		Where(squirrel.Eq{rel.fkColumn: identityID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s sql: %w", rel.table, err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", rel.table, err)
	}
	defer rows.Close()

	var entries []domain.LoginAuditEntry
	for rows.Next() {
		entry := domain.LoginAuditEntry{Role: role}
		if err := rows.Scan(
			&entry.ID,
			&entry.Identifier,
			&entry.IdentityID,
			&entry.IdentityStatus,
			&entry.Outcome,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", rel.table, err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Rows come back newest first; flip to most-recent-last for callers.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	return entries, nil
}
