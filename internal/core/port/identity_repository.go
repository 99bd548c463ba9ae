package port

import (
	"context"

	"github.com/maverick2062/Gym-Management/internal/core/domain"
)

// IdentityRepository exposes persistence behavior for all three identity
// variants. The role argument selects the backing table through a fixed
// descriptor; callers never supply table or column names.
type IdentityRepository interface {
	// IdentifierExists reports whether the login identifier is already taken
	// within the role's namespace. It fails closed: a store error reports
	// true so registration is refused rather than allowed to collide.
	IdentifierExists(ctx context.Context, role domain.Role, identifier string) bool

	Create(ctx context.Context, identity domain.Identity) (domain.Identity, error)
	GetByID(ctx context.Context, role domain.Role, id int64) (*domain.Identity, error)
	GetByIdentifier(ctx context.Context, role domain.Role, identifier string) (*domain.Identity, error)
	List(ctx context.Context, role domain.Role) ([]domain.Identity, error)

	// Update applies the supplied changes after filtering them through the
	// role's allow-list. Keys map to fixed column identifiers, never to
	// caller-controlled query text.
	Update(ctx context.Context, role domain.Role, id int64, changes map[string]any) error

	Delete(ctx context.Context, role domain.Role, id int64) (bool, error)
}
