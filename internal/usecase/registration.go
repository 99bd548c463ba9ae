package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/maverick2062/Gym-Management/internal/core/domain"
	"github.com/maverick2062/Gym-Management/internal/core/port"
	"github.com/maverick2062/Gym-Management/internal/infra/security"
	"github.com/maverick2062/Gym-Management/internal/repository"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RegistrationService handles onboarding for every identity variant. The
// secret is hashed before it reaches the store; the raw value is never
// persisted.
type RegistrationService struct {
	identities        port.IdentityRepository
	passwordValidator *security.PasswordValidator
}

// NewRegistrationService constructs a registration service.
func NewRegistrationService(identities port.IdentityRepository, validator *security.PasswordValidator) *RegistrationService {
	if validator == nil {
		validator = security.DefaultPasswordValidator()
	}
	return &RegistrationService{identities: identities, passwordValidator: validator}
}

// RegisterAdminInput carries the fields for a new administrator.
type RegisterAdminInput struct {
	Name     string
	Username string
	Password string
}

// RegisterEmployeeInput carries the fields for a new employee.
type RegisterEmployeeInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Salary   int64
}

// RegisterMemberInput carries the fields for a new gym member.
type RegisterMemberInput struct {
	Name           string
	Email          string
	Password       string
	Phone          string
	MembershipPlan string
	JoinDate       time.Time
}

// RegisterAdmin creates an administrator account.
func (s *RegistrationService) RegisterAdmin(ctx context.Context, input RegisterAdminInput) (domain.Identity, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Username = strings.TrimSpace(input.Username)

	if input.Name == "" {
		return domain.Identity{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if input.Username == "" {
		return domain.Identity{}, fmt.Errorf("%w: username is required", ErrValidation)
	}

	identity := domain.Identity{
		Role:       domain.RoleAdmin,
		Name:       input.Name,
		Identifier: input.Username,
	}

	return s.create(ctx, identity, input.Password)
}

// RegisterEmployee creates an employee account with its job tag and salary.
func (s *RegistrationService) RegisterEmployee(ctx context.Context, input RegisterEmployeeInput) (domain.Identity, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)

	if input.Name == "" {
		return domain.Identity{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !emailRegex.MatchString(input.Email) {
		return domain.Identity{}, fmt.Errorf("%w: invalid email format", ErrValidation)
	}

	roleTag, err := domain.ParseEmployeeRole(input.Role)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if input.Salary < 0 {
		return domain.Identity{}, fmt.Errorf("%w: salary must not be negative", ErrValidation)
	}

	identity := domain.Identity{
		Role:         domain.RoleEmployee,
		Name:         input.Name,
		Identifier:   input.Email,
		EmployeeRole: &roleTag,
		Salary:       &input.Salary,
	}

	return s.create(ctx, identity, input.Password)
}

// RegisterMember creates a member account. Join date defaults to today and
// status starts active.
func (s *RegistrationService) RegisterMember(ctx context.Context, input RegisterMemberInput) (domain.Identity, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)

	if input.Name == "" {
		return domain.Identity{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if !emailRegex.MatchString(input.Email) {
		return domain.Identity{}, fmt.Errorf("%w: invalid email format", ErrValidation)
	}

	joinDate := input.JoinDate
	if joinDate.IsZero() {
		joinDate = time.Now().UTC()
	}
	status := domain.MemberStatusActive

	identity := domain.Identity{
		Role:       domain.RoleMember,
		Name:       input.Name,
		Identifier: input.Email,
		JoinDate:   &joinDate,
		Status:     &status,
	}
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		identity.Phone = &phone
	}
	if plan := strings.TrimSpace(input.MembershipPlan); plan != "" {
		identity.MembershipPlan = &plan
	}

	return s.create(ctx, identity, input.Password)
}

// create runs the shared tail of every registration: password policy check,
// duplicate pre-check, hashing, insert. The pre-check is a fast path only;
// the unique constraint in the store is the real guarantee and surfaces the
// same error under concurrent registration.
func (s *RegistrationService) create(ctx context.Context, identity domain.Identity, password string) (domain.Identity, error) {
	if err := s.passwordValidator.Validate(password); err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if s.identities.IdentifierExists(ctx, identity.Role, identity.Identifier) {
		return domain.Identity{}, repository.ErrDuplicateIdentifier
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("hash password: %w", err)
	}
	identity.PasswordHash = hash

	created, err := s.identities.Create(ctx, identity)
	if err != nil {
		return domain.Identity{}, err
	}

	created.PasswordHash = ""
	return created, nil
}
