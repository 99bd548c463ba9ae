package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/maverick2062/Gym-Management/internal/core/domain"
	"github.com/maverick2062/Gym-Management/internal/infra/security"
	"github.com/maverick2062/Gym-Management/internal/repository"
)

type stubIdentityRepo struct {
	byIdentifier map[string]domain.Identity
	byID         map[int64]domain.Identity
	exists       bool
	listResult   []domain.Identity
	listErr      error
	created      []domain.Identity
	createErr    error
	updates      []map[string]any
	updateErr    error
	deleted      []int64
	deleteOK     bool
	deleteErr    error
	nextID       int64
}

func (r *stubIdentityRepo) IdentifierExists(context.Context, domain.Role, string) bool {
	return r.exists
}

func (r *stubIdentityRepo) Create(_ context.Context, identity domain.Identity) (domain.Identity, error) {
	if r.createErr != nil {
		return domain.Identity{}, r.createErr
	}
	r.nextID++
	identity.ID = r.nextID
	identity.CreatedAt = time.Now().UTC()
	identity.UpdatedAt = identity.CreatedAt
	r.created = append(r.created, identity)
	return identity, nil
}

func (r *stubIdentityRepo) GetByID(_ context.Context, _ domain.Role, id int64) (*domain.Identity, error) {
	if identity, ok := r.byID[id]; ok {
		copied := identity
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (r *stubIdentityRepo) GetByIdentifier(_ context.Context, _ domain.Role, identifier string) (*domain.Identity, error) {
	if identity, ok := r.byIdentifier[identifier]; ok {
		copied := identity
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (r *stubIdentityRepo) List(context.Context, domain.Role) ([]domain.Identity, error) {
	return r.listResult, r.listErr
}

func (r *stubIdentityRepo) Update(_ context.Context, _ domain.Role, _ int64, changes map[string]any) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updates = append(r.updates, changes)
	return nil
}

func (r *stubIdentityRepo) Delete(_ context.Context, _ domain.Role, id int64) (bool, error) {
	if r.deleteErr != nil {
		return false, r.deleteErr
	}
	r.deleted = append(r.deleted, id)
	return r.deleteOK, nil
}

type stubAuditRepo struct {
	entries   []domain.LoginAuditEntry
	recordErr error
	history   []domain.LoginAuditEntry
}

func (r *stubAuditRepo) Record(_ context.Context, entry domain.LoginAuditEntry) error {
	if r.recordErr != nil {
		return r.recordErr
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *stubAuditRepo) HistoryForIdentity(_ context.Context, _ domain.Role, _ int64, limit int) ([]domain.LoginAuditEntry, error) {
	if limit < len(r.history) {
		return r.history[:limit], nil
	}
	return r.history, nil
}

func testTokenIssuer(t *testing.T) *security.TokenIssuer {
	t.Helper()
	issuer, err := security.NewTokenIssuer("unit-test-secret", "gym-api", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer returned error: %v", err)
	}
	return issuer
}

func memberIdentity(t *testing.T, password string) domain.Identity {
	t.Helper()
	hash, err := security.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	status := domain.MemberStatusActive
	return domain.Identity{
		ID:           11,
		Role:         domain.RoleMember,
		Name:         "Jordan Reyes",
		Identifier:   "jordan@example.com",
		PasswordHash: hash,
		Status:       &status,
	}
}

func TestLoginSuccess(t *testing.T) {
	identity := memberIdentity(t, "sufficiently str0ng pass")
	identities := &stubIdentityRepo{byIdentifier: map[string]domain.Identity{identity.Identifier: identity}}
	audit := &stubAuditRepo{}
	svc := NewAuthService(identities, audit, testTokenIssuer(t))

	result, err := svc.Login(context.Background(), domain.RoleMember, identity.Identifier, "sufficiently str0ng pass")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if result.Token == "" {
		t.Fatal("expected a session token")
	}
	if result.Identity.PasswordHash != "" {
		t.Fatal("identity in login result still carries the password hash")
	}
	if result.ExpiresAt.Before(time.Now()) {
		t.Fatal("token already expired")
	}

	if len(audit.entries) != 1 {
		t.Fatalf("expected exactly one audit entry, got %d", len(audit.entries))
	}
	entry := audit.entries[0]
	if entry.Outcome != domain.LoginOutcomeSuccess {
		t.Fatalf("unexpected outcome: %q", entry.Outcome)
	}
	if entry.IdentityID == nil || *entry.IdentityID != identity.ID {
		t.Fatalf("audit entry not linked to identity: %+v", entry.IdentityID)
	}
	if entry.IdentityStatus != "active" {
		t.Fatalf("unexpected identity status snapshot: %q", entry.IdentityStatus)
	}
	if entry.ID == "" {
		t.Fatal("audit entry has no id")
	}
}

func TestLoginUnknownIdentifier(t *testing.T) {
	identities := &stubIdentityRepo{byIdentifier: map[string]domain.Identity{}}
	audit := &stubAuditRepo{}
	svc := NewAuthService(identities, audit, testTokenIssuer(t))

	_, err := svc.Login(context.Background(), domain.RoleMember, "ghost@example.com", "whatever password")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if len(audit.entries) != 1 {
		t.Fatalf("expected exactly one audit entry, got %d", len(audit.entries))
	}
	entry := audit.entries[0]
	if entry.Outcome != domain.LoginOutcomeInvalidUsername {
		t.Fatalf("unexpected outcome: %q", entry.Outcome)
	}
	if entry.IdentityID != nil {
		t.Fatalf("unknown identifier must not reference an identity, got %d", *entry.IdentityID)
	}
	if entry.Identifier != "ghost@example.com" {
		t.Fatalf("unexpected identifier snapshot: %q", entry.Identifier)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	identity := memberIdentity(t, "the real password 9")
	identities := &stubIdentityRepo{byIdentifier: map[string]domain.Identity{identity.Identifier: identity}}
	audit := &stubAuditRepo{}
	svc := NewAuthService(identities, audit, testTokenIssuer(t))

	_, err := svc.Login(context.Background(), domain.RoleMember, identity.Identifier, "not the password")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if len(audit.entries) != 1 {
		t.Fatalf("expected exactly one audit entry, got %d", len(audit.entries))
	}
	entry := audit.entries[0]
	if entry.Outcome != domain.LoginOutcomeInvalidPassword {
		t.Fatalf("unexpected outcome: %q", entry.Outcome)
	}
	if entry.IdentityID == nil || *entry.IdentityID != identity.ID {
		t.Fatalf("failed attempt should still reference the identity: %+v", entry.IdentityID)
	}
}

func TestLoginMalformedStoredHash(t *testing.T) {
	identity := memberIdentity(t, "irrelevant password 1")
	identity.PasswordHash = "not-an-encoded-digest"
	identities := &stubIdentityRepo{byIdentifier: map[string]domain.Identity{identity.Identifier: identity}}
	audit := &stubAuditRepo{}
	svc := NewAuthService(identities, audit, testTokenIssuer(t))

	_, err := svc.Login(context.Background(), domain.RoleMember, identity.Identifier, "irrelevant password 1")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for corrupt digest, got %v", err)
	}

	if len(audit.entries) != 1 || audit.entries[0].Outcome != domain.LoginOutcomeInvalidPassword {
		t.Fatalf("expected one invalid-password entry, got %+v", audit.entries)
	}
}

func TestLoginEmptyInputs(t *testing.T) {
	identities := &stubIdentityRepo{}
	audit := &stubAuditRepo{}
	svc := NewAuthService(identities, audit, testTokenIssuer(t))

	if _, err := svc.Login(context.Background(), domain.RoleMember, "", "password"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty identifier, got %v", err)
	}
	if _, err := svc.Login(context.Background(), domain.RoleMember, "jordan@example.com", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty password, got %v", err)
	}

	if len(audit.entries) != 0 {
		t.Fatalf("validation failures must not reach the audit log, got %d entries", len(audit.entries))
	}
}

func TestLoginDeactivatedMemberSnapshot(t *testing.T) {
	identity := memberIdentity(t, "still a valid password")
	frozen := domain.MemberStatusFrozen
	identity.Status = &frozen
	identities := &stubIdentityRepo{byIdentifier: map[string]domain.Identity{identity.Identifier: identity}}
	audit := &stubAuditRepo{}
	svc := NewAuthService(identities, audit, testTokenIssuer(t))

	if _, err := svc.Login(context.Background(), domain.RoleMember, identity.Identifier, "still a valid password"); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if len(audit.entries) != 1 || audit.entries[0].IdentityStatus != "deactivated" {
		t.Fatalf("expected deactivated snapshot, got %+v", audit.entries)
	}
}

func TestLoginSurvivesAuditFailure(t *testing.T) {
	identity := memberIdentity(t, "audit is best effort")
	identities := &stubIdentityRepo{byIdentifier: map[string]domain.Identity{identity.Identifier: identity}}
	audit := &stubAuditRepo{recordErr: errors.New("audit store down")}
	svc := NewAuthService(identities, audit, testTokenIssuer(t))

	result, err := svc.Login(context.Background(), domain.RoleMember, identity.Identifier, "audit is best effort")
	if err != nil {
		t.Fatalf("Login returned error despite best-effort audit: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a session token")
	}
}

func TestValidateTokenRoundTrip(t *testing.T) {
	identity := memberIdentity(t, "token round trip pass")
	identities := &stubIdentityRepo{byIdentifier: map[string]domain.Identity{identity.Identifier: identity}}
	audit := &stubAuditRepo{}
	svc := NewAuthService(identities, audit, testTokenIssuer(t))

	result, err := svc.Login(context.Background(), domain.RoleMember, identity.Identifier, "token round trip pass")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	claims, err := svc.ValidateToken(result.Token)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}
	id, err := claims.IdentityID()
	if err != nil {
		t.Fatalf("IdentityID returned error: %v", err)
	}
	if id != identity.ID {
		t.Fatalf("unexpected identity id in claims: %d", id)
	}
	if claims.Role != string(domain.RoleMember) {
		t.Fatalf("unexpected role claim: %q", claims.Role)
	}
}
