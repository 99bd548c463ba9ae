package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/maverick2062/Gym-Management/internal/core/domain"
	"github.com/maverick2062/Gym-Management/internal/repository"
)

// roleRelation maps a role variant onto its backing relation. All table and
// column identifiers are fixed here; nothing caller-supplied ever reaches
// query text as an identifier.
type roleRelation struct {
	table            string
	identifierColumn string
}

var roleRelations = map[domain.Role]roleRelation{
	domain.RoleAdmin:    {table: "admins", identifierColumn: "username"},
	domain.RoleEmployee: {table: "employees", identifierColumn: "email"},
	domain.RoleMember:   {table: "members", identifierColumn: "email"},
}

// IdentityRepository implements port.IdentityRepository for all three role
// variants through a single descriptor-driven implementation.
type IdentityRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewIdentityRepository constructs a repository backed by any executor that
// satisfies pgExecutor.
func NewIdentityRepository(exec pgExecutor) *IdentityRepository {
	return &IdentityRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// IdentifierExists reports whether the login identifier is taken. Any store
// failure reports true so registration fails closed instead of colliding.
func (r *IdentityRepository) IdentifierExists(ctx context.Context, role domain.Role, identifier string) bool {
	rel, ok := roleRelations[role]
	if !ok {
		return true
	}

	stmt, args, err := r.builder.
		Select("1").
		From(rel.table).
		Where(squirrel.Eq{rel.identifierColumn: identifier}).
		Limit(1).
		ToSql()
	if err != nil {
		return true
	}

	var one int
	err = r.exec.QueryRow(ctx, stmt, args...).Scan(&one)
	if err == nil {
		return true
	}
	return !errors.Is(err, pgx.ErrNoRows)
}

// Create inserts a new identity row and returns it with the generated id and
// timestamps filled in. The password hash must already be applied by the
// caller; plaintext secrets never reach this layer.
func (r *IdentityRepository) Create(ctx context.Context, identity domain.Identity) (domain.Identity, error) {
	rel, ok := roleRelations[identity.Role]
	if !ok {
		return domain.Identity{}, fmt.Errorf("unknown role %q", identity.Role)
	}

	query := r.builder.Insert(rel.table)

	switch identity.Role {
	case domain.RoleAdmin:
		query = query.
			Columns("name", "username", "password_hash").
			Values(identity.Name, identity.Identifier, identity.PasswordHash)
	case domain.RoleEmployee:
		query = query.
			Columns("name", "email", "password_hash", "role", "salary").
			Values(identity.Name, identity.Identifier, identity.PasswordHash, identity.EmployeeRole, identity.Salary)
	case domain.RoleMember:
		query = query.
			Columns("name", "email", "password_hash", "phone_number", "membership_plan", "join_date", "status").
			Values(identity.Name, identity.Identifier, identity.PasswordHash,
				identity.Phone, identity.MembershipPlan, identity.JoinDate, identity.Status)
	}

	stmt, args, err := query.Suffix("RETURNING id, created_at, updated_at").ToSql()
	if err != nil {
		return domain.Identity{}, fmt.Errorf("build insert %s sql: %w", rel.table, err)
	}

	row := r.exec.QueryRow(ctx, stmt, args...)
	if err := row.Scan(&identity.ID, &identity.CreatedAt, &identity.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return domain.Identity{}, repository.ErrDuplicateIdentifier
		}
		return domain.Identity{}, fmt.Errorf("insert %s: %w", rel.table, err)
	}

	return identity, nil
}

// GetByID retrieves one identity by its numeric id.
func (r *IdentityRepository) GetByID(ctx context.Context, role domain.Role, id int64) (*domain.Identity, error) {
	return r.getOne(ctx, role, squirrel.Eq{"id": id})
}

// GetByIdentifier retrieves one identity by its login identifier.
func (r *IdentityRepository) GetByIdentifier(ctx context.Context, role domain.Role, identifier string) (*domain.Identity, error) {
	rel, ok := roleRelations[role]
	if !ok {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	return r.getOne(ctx, role, squirrel.Eq{rel.identifierColumn: identifier})
}

func (r *IdentityRepository) getOne(ctx context.Context, role domain.Role, where squirrel.Eq) (*domain.Identity, error) {
	rel, ok := roleRelations[role]
	if !ok {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	stmt, args, err := r.builder.
		Select(selectColumns(role)...).
		From(rel.table).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s sql: %w", rel.table, err)
	}

	identity, err := scanIdentity(role, r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan %s: %w", rel.table, err)
	}

	return identity, nil
}

// List returns all identities of the role ordered by display name.
func (r *IdentityRepository) List(ctx context.Context, role domain.Role) ([]domain.Identity, error) {
	rel, ok := roleRelations[role]
	if !ok {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	stmt, args, err := r.builder.
		Select(selectColumns(role)...).
		From(rel.table).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list %s sql: %w", rel.table, err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", rel.table, err)
	}
	defer rows.Close()

	var identities []domain.Identity
	for rows.Next() {
		identity, err := scanIdentity(role, rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s row: %w", rel.table, err)
		}
		identities = append(identities, *identity)
	}

	return identities, rows.Err()
}

// Update applies changes after filtering them through the role's allow-list.
// Keys outside the list fail the whole update with ErrInvalidColumn.
func (r *IdentityRepository) Update(ctx context.Context, role domain.Role, id int64, changes map[string]any) error {
	rel, ok := roleRelations[role]
	if !ok {
		return fmt.Errorf("unknown role %q", role)
	}
	if len(changes) == 0 {
		return repository.ErrInvalidColumn
	}

	query := r.builder.Update(rel.table)
	for key, value := range changes {
		column, ok := mutableColumn(role, key)
		if !ok {
			return fmt.Errorf("%w: %s", repository.ErrInvalidColumn, key)
		}
		query = query.Set(column, value)
	}
	query = query.
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id})

	stmt, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build update %s sql: %w", rel.table, err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return repository.ErrDuplicateIdentifier
		}
		return fmt.Errorf("update %s: %w", rel.table, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes the identity row; audit entries follow via the FK cascade.
func (r *IdentityRepository) Delete(ctx context.Context, role domain.Role, id int64) (bool, error) {
	rel, ok := roleRelations[role]
	if !ok {
		return false, fmt.Errorf("unknown role %q", role)
	}

	stmt, args, err := r.builder.Delete(rel.table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return false, fmt.Errorf("build delete %s sql: %w", rel.table, err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", rel.table, err)
	}

	return tag.RowsAffected() > 0, nil
}

// mutableColumn resolves an update key to a fixed column identifier.
// password_hash is always assignable so the usecase layer can apply an
// explicit rehash; everything else comes from the role's allow-list.
func mutableColumn(role domain.Role, key string) (string, bool) {
	if key == "password_hash" {
		return key, true
	}
	for _, attr := range role.MutableAttributes() {
		if attr == key {
			return attr, true
		}
	}
	return "", false
}

func selectColumns(role domain.Role) []string {
	switch role {
	case domain.RoleAdmin:
		return []string{"id", "name", "username", "password_hash", "created_at", "updated_at"}
	case domain.RoleEmployee:
		return []string{"id", "name", "email", "password_hash", "role", "salary", "created_at", "updated_at"}
	case domain.RoleMember:
		return []string{"id", "name", "email", "password_hash", "phone_number", "membership_plan", "join_date", "status", "created_at", "updated_at"}
	default:
		return nil
	}
}

func scanIdentity(role domain.Role, row pgx.Row) (*domain.Identity, error) {
	identity := domain.Identity{Role: role}

	switch role {
	case domain.RoleAdmin:
		if err := row.Scan(
			&identity.ID,
			&identity.Name,
			&identity.Identifier,
			&identity.PasswordHash,
			&identity.CreatedAt,
			&identity.UpdatedAt,
		); err != nil {
			return nil, err
		}
	case domain.RoleEmployee:
		if err := row.Scan(
			&identity.ID,
			&identity.Name,
			&identity.Identifier,
			&identity.PasswordHash,
			&identity.EmployeeRole,
			&identity.Salary,
			&identity.CreatedAt,
			&identity.UpdatedAt,
		); err != nil {
			return nil, err
		}
	case domain.RoleMember:
		if err := row.Scan(
			&identity.ID,
			&identity.Name,
			&identity.Identifier,
			&identity.PasswordHash,
			&identity.Phone,
			&identity.MembershipPlan,
			&identity.JoinDate,
			&identity.Status,
			&identity.CreatedAt,
			&identity.UpdatedAt,
		); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}

	return &identity, nil
}
