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

func TestRegisterMemberSuccess(t *testing.T) {
	identities := &stubIdentityRepo{}
	svc := NewRegistrationService(identities, nil)

	created, err := svc.RegisterMember(context.Background(), RegisterMemberInput{
		Name:           "Jordan Reyes",
		Email:          "jordan@example.com",
		Password:       "sufficiently str0ng pass",
		Phone:          "555-0100",
		MembershipPlan: "monthly",
	})
	if err != nil {
		t.Fatalf("RegisterMember returned error: %v", err)
	}

	if created.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if created.PasswordHash != "" {
		t.Fatal("returned identity still carries the password hash")
	}
	if created.Status == nil || *created.Status != domain.MemberStatusActive {
		t.Fatalf("expected active status, got %+v", created.Status)
	}
	if created.JoinDate == nil || created.JoinDate.After(time.Now().Add(time.Minute)) {
		t.Fatalf("expected defaulted join date, got %+v", created.JoinDate)
	}

	if len(identities.created) != 1 {
		t.Fatalf("expected one stored identity, got %d", len(identities.created))
	}
	stored := identities.created[0]
	if stored.PasswordHash == "" || stored.PasswordHash == "sufficiently str0ng pass" {
		t.Fatal("stored credential must be a hash, not the plaintext")
	}
	ok, err := security.VerifyPassword("sufficiently str0ng pass", stored.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("stored hash does not verify: ok=%v err=%v", ok, err)
	}
}

func TestRegisterMemberDuplicate(t *testing.T) {
	identities := &stubIdentityRepo{exists: true}
	svc := NewRegistrationService(identities, nil)

	_, err := svc.RegisterMember(context.Background(), RegisterMemberInput{
		Name:     "Jordan Reyes",
		Email:    "jordan@example.com",
		Password: "sufficiently str0ng pass",
	})
	if !errors.Is(err, repository.ErrDuplicateIdentifier) {
		t.Fatalf("expected ErrDuplicateIdentifier, got %v", err)
	}
	if len(identities.created) != 0 {
		t.Fatal("duplicate registration must not reach the store")
	}
}

func TestRegisterMemberWeakPassword(t *testing.T) {
	identities := &stubIdentityRepo{}
	svc := NewRegistrationService(identities, nil)

	for _, password := range []string{"short", "password"} {
		_, err := svc.RegisterMember(context.Background(), RegisterMemberInput{
			Name:     "Jordan Reyes",
			Email:    "jordan@example.com",
			Password: password,
		})
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation for %q, got %v", password, err)
		}
	}
	if len(identities.created) != 0 {
		t.Fatal("weak passwords must not reach the store")
	}
}

func TestRegisterMemberInvalidEmail(t *testing.T) {
	svc := NewRegistrationService(&stubIdentityRepo{}, nil)

	_, err := svc.RegisterMember(context.Background(), RegisterMemberInput{
		Name:     "Jordan Reyes",
		Email:    "not-an-email",
		Password: "sufficiently str0ng pass",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestRegisterEmployeeValidation(t *testing.T) {
	svc := NewRegistrationService(&stubIdentityRepo{}, nil)

	_, err := svc.RegisterEmployee(context.Background(), RegisterEmployeeInput{
		Name:     "Sam Okafor",
		Email:    "sam@example.com",
		Password: "sufficiently str0ng pass",
		Role:     "Janitor",
		Salary:   1000,
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown job role, got %v", err)
	}

	_, err = svc.RegisterEmployee(context.Background(), RegisterEmployeeInput{
		Name:     "Sam Okafor",
		Email:    "sam@example.com",
		Password: "sufficiently str0ng pass",
		Role:     "Trainer",
		Salary:   -1,
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for negative salary, got %v", err)
	}
}

func TestRegisterEmployeeSuccess(t *testing.T) {
	identities := &stubIdentityRepo{}
	svc := NewRegistrationService(identities, nil)

	created, err := svc.RegisterEmployee(context.Background(), RegisterEmployeeInput{
		Name:     "Sam Okafor",
		Email:    "sam@example.com",
		Password: "sufficiently str0ng pass",
		Role:     "IT",
		Salary:   52000,
	})
	if err != nil {
		t.Fatalf("RegisterEmployee returned error: %v", err)
	}

	if created.EmployeeRole == nil || *created.EmployeeRole != domain.EmployeeRoleIT {
		t.Fatalf("expected IT job role, got %+v", created.EmployeeRole)
	}
	if created.Salary == nil || *created.Salary != 52000 {
		t.Fatalf("expected salary 52000, got %+v", created.Salary)
	}
}

func TestRegisterAdminSuccess(t *testing.T) {
	identities := &stubIdentityRepo{}
	svc := NewRegistrationService(identities, nil)

	created, err := svc.RegisterAdmin(context.Background(), RegisterAdminInput{
		Name:     "Priya Nair",
		Username: "priya.admin",
		Password: "sufficiently str0ng pass",
	})
	if err != nil {
		t.Fatalf("RegisterAdmin returned error: %v", err)
	}

	if created.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %q", created.Role)
	}
	if created.Identifier != "priya.admin" {
		t.Fatalf("unexpected identifier: %q", created.Identifier)
	}
}

func TestRegisterAdminMissingFields(t *testing.T) {
	svc := NewRegistrationService(&stubIdentityRepo{}, nil)

	if _, err := svc.RegisterAdmin(context.Background(), RegisterAdminInput{Username: "x", Password: "sufficiently str0ng pass"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for missing name, got %v", err)
	}
	if _, err := svc.RegisterAdmin(context.Background(), RegisterAdminInput{Name: "x", Password: "sufficiently str0ng pass"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for missing username, got %v", err)
	}
}
