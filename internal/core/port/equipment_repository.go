package port

import (
	"context"

	"github.com/maverick2062/Gym-Management/internal/core/domain"
)

// EquipmentRepository exposes persistence behavior for inventory items.
type EquipmentRepository interface {
	Create(ctx context.Context, item domain.Equipment) (domain.Equipment, error)
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
	List(ctx context.Context) ([]domain.Equipment, error)
	Update(ctx context.Context, id int64, changes map[string]any) error
	Delete(ctx context.Context, id int64) (bool, error)
}
