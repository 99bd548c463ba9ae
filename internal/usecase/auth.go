package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/maverick2062/Gym-Management/internal/core/domain"
	"github.com/maverick2062/Gym-Management/internal/core/port"
	"github.com/maverick2062/Gym-Management/internal/infra/logger"
	"github.com/maverick2062/Gym-Management/internal/infra/security"
	"github.com/maverick2062/Gym-Management/internal/repository"
)

var (
	// ErrInvalidCredentials indicates the provided identifier or password are
	// incorrect. The two cases stay distinguishable in the audit trail but
	// are collapsed to this single error at the boundary.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrValidation indicates missing or malformed input; it never reaches
	// the store.
	ErrValidation = errors.New("invalid input")
)

// LoginResult carries the outcome of a successful authentication.
type LoginResult struct {
	Identity  domain.Identity
	Token     string
	ExpiresAt time.Time
}

// AuthService coordinates authentication: identity lookup, credential
// verification, audit recording, and token issuance.
type AuthService struct {
	identities port.IdentityRepository
	audit      port.LoginAuditRepository
	tokens     *security.TokenIssuer
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(identities port.IdentityRepository, audit port.LoginAuditRepository, tokens *security.TokenIssuer) *AuthService {
	return &AuthService{identities: identities, audit: audit, tokens: tokens}
}

// Login authenticates the presented credentials and mints a session token.
// Every attempt, failed or not, appends exactly one audit entry before the
// outcome is returned.
func (s *AuthService) Login(ctx context.Context, role domain.Role, identifier, password string) (*LoginResult, error) {
	identity, err := s.Authenticate(ctx, role, identifier, password)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.Issue(*identity)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResult{Identity: *identity, Token: token, ExpiresAt: expiresAt}, nil
}

// Authenticate verifies credentials against the stored identity and records
// the attempt. The audit write happens after the credential comparison and
// before the outcome reaches the caller.
func (s *AuthService) Authenticate(ctx context.Context, role domain.Role, identifier, password string) (*domain.Identity, error) {
	if identifier == "" {
		return nil, fmt.Errorf("%w: identifier is required", ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}

	identity, err := s.identities.GetByIdentifier(ctx, role, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.recordAttempt(ctx, role, identifier, nil, "active", domain.LoginOutcomeInvalidUsername)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup identity: %w", err)
	}

	ok, err := security.VerifyPassword(password, identity.PasswordHash)
	if err != nil {
		// A malformed stored digest is treated as a failed match rather
		// than an internal error, so corruption cannot bypass or crash
		// authentication.
		logger.WithContext(ctx).Warn("stored credential digest rejected",
			zap.String("role", string(role)),
			zap.String("identifier", logger.MaskEmail(identifier)),
			zap.Error(err),
		)
		ok = false
	}

	if !ok {
		s.recordAttempt(ctx, role, identifier, &identity.ID, identity.ActivityStatus(), domain.LoginOutcomeInvalidPassword)
		return nil, ErrInvalidCredentials
	}

	s.recordAttempt(ctx, role, identifier, &identity.ID, identity.ActivityStatus(), domain.LoginOutcomeSuccess)

	sanitized := *identity
	sanitized.PasswordHash = ""
	return &sanitized, nil
}

// ValidateToken checks a presented session token and returns its claims.
func (s *AuthService) ValidateToken(token string) (*security.SessionClaims, error) {
	return s.tokens.Validate(token)
}

// recordAttempt appends one audit entry. The write is best-effort relative
// to the authentication outcome: a failed write is logged, never surfaced.
func (s *AuthService) recordAttempt(ctx context.Context, role domain.Role, identifier string, identityID *int64, status string, outcome domain.LoginOutcome) {
	entry := domain.LoginAuditEntry{
		ID:             uuid.NewString(),
		Role:           role,
		Identifier:     identifier,
		IdentityID:     identityID,
		IdentityStatus: status,
		Outcome:        outcome,
	}

	if err := s.audit.Record(ctx, entry); err != nil {
		logger.WithContext(ctx).Warn("failed to record login attempt",
			zap.String("role", string(role)),
			zap.String("identifier", logger.MaskEmail(identifier)),
			zap.String("outcome", string(outcome)),
			zap.Error(err),
		)
	}
}
