package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/maverick2062/Gym-Management/internal/core/domain"
	"github.com/maverick2062/Gym-Management/internal/core/port"
	"github.com/maverick2062/Gym-Management/internal/infra/security"
)

// IdentityService exposes profile management for every identity variant.
type IdentityService struct {
	identities        port.IdentityRepository
	audit             port.LoginAuditRepository
	passwordValidator *security.PasswordValidator
	historyLimit      int
}

// NewIdentityService constructs an IdentityService instance.
func NewIdentityService(identities port.IdentityRepository, audit port.LoginAuditRepository, validator *security.PasswordValidator, historyLimit int) *IdentityService {
	if validator == nil {
		validator = security.DefaultPasswordValidator()
	}
	if historyLimit <= 0 {
		historyLimit = 100
	}
	return &IdentityService{
		identities:        identities,
		audit:             audit,
		passwordValidator: validator,
		historyLimit:      historyLimit,
	}
}

// List returns all identities of the role, credentials stripped.
func (s *IdentityService) List(ctx context.Context, role domain.Role) ([]domain.Identity, error) {
	identities, err := s.identities.List(ctx, role)
	if err != nil {
		return nil, err
	}
	for i := range identities {
		identities[i].PasswordHash = ""
	}
	return identities, nil
}

// Get returns one identity by id, credentials stripped.
func (s *IdentityService) Get(ctx context.Context, role domain.Role, id int64) (*domain.Identity, error) {
	identity, err := s.identities.GetByID(ctx, role, id)
	if err != nil {
		return nil, err
	}
	identity.PasswordHash = ""
	return identity, nil
}

// Update applies a partial update. Keys are validated against the role's
// allow-list before any query is built; a "password" key triggers an
// explicit rehash and is the only way a stored credential changes.
func (s *IdentityService) Update(ctx context.Context, role domain.Role, id int64, changes map[string]any) (*domain.Identity, error) {
	if len(changes) == 0 {
		return nil, fmt.Errorf("%w: no update fields provided", ErrValidation)
	}

	columns := make(map[string]any, len(changes))
	for key, value := range changes {
		column, coerced, err := s.coerceChange(role, key, value)
		if err != nil {
			return nil, err
		}
		columns[column] = coerced
	}

	if err := s.identities.Update(ctx, role, id, columns); err != nil {
		return nil, err
	}

	return s.Get(ctx, role, id)
}

// Delete removes the identity; its audit history goes with it via cascade.
func (s *IdentityService) Delete(ctx context.Context, role domain.Role, id int64) (bool, error) {
	return s.identities.Delete(ctx, role, id)
}

// LoginHistory returns the identity's audit trail, oldest first. The
// identity must exist; a deleted identity has no history left to show.
func (s *IdentityService) LoginHistory(ctx context.Context, role domain.Role, id int64) ([]domain.LoginAuditEntry, error) {
	if _, err := s.identities.GetByID(ctx, role, id); err != nil {
		return nil, err
	}
	return s.audit.HistoryForIdentity(ctx, role, id, s.historyLimit)
}

// coerceChange validates one update key/value pair and resolves it to a
// column assignment.
func (s *IdentityService) coerceChange(role domain.Role, key string, value any) (string, any, error) {
	if key == "password" {
		password, ok := value.(string)
		if !ok {
			return "", nil, fmt.Errorf("%w: password must be a string", ErrValidation)
		}
		if err := s.passwordValidator.Validate(password); err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		hash, err := security.HashPassword(password)
		if err != nil {
			return "", nil, fmt.Errorf("hash password: %w", err)
		}
		return "password_hash", hash, nil
	}

	allowed := false
	for _, attr := range role.MutableAttributes() {
		if attr == key {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", nil, fmt.Errorf("%w: field %q is not updatable", ErrValidation, key)
	}

	switch key {
	case "email":
		email, ok := value.(string)
		if !ok || !emailRegex.MatchString(strings.TrimSpace(email)) {
			return "", nil, fmt.Errorf("%w: invalid email format", ErrValidation)
		}
		return key, strings.TrimSpace(email), nil
	case "status":
		raw, ok := value.(string)
		if !ok {
			return "", nil, fmt.Errorf("%w: status must be a string", ErrValidation)
		}
		status, err := domain.ParseMemberStatus(raw)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return key, status, nil
	case "role":
		raw, ok := value.(string)
		if !ok {
			return "", nil, fmt.Errorf("%w: role must be a string", ErrValidation)
		}
		roleTag, err := domain.ParseEmployeeRole(raw)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		return key, roleTag, nil
	case "salary":
		salary, err := coerceInt64(value)
		if err != nil || salary < 0 {
			return "", nil, fmt.Errorf("%w: salary must be a non-negative whole number", ErrValidation)
		}
		return key, salary, nil
	default:
		text, ok := value.(string)
		if !ok || strings.TrimSpace(text) == "" {
			return "", nil, fmt.Errorf("%w: field %q must be a non-empty string", ErrValidation, key)
		}
		return key, strings.TrimSpace(text), nil
	}
}

// coerceInt64 accepts the numeric shapes JSON decoding can produce. JSON
// numbers arrive as float64; only exact integral values convert, anything
// fractional is refused rather than truncated.
func coerceInt64(value any) (int64, error) {
	switch v := value.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("not an integer: %v", v)
		}
		return int64(v), nil
	default:
		return 0, fmt.Errorf("not a number: %T", value)
	}
}
