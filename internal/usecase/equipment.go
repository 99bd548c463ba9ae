package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/maverick2062/Gym-Management/internal/core/domain"
	"github.com/maverick2062/Gym-Management/internal/core/port"
)

// EquipmentService exposes inventory management.
type EquipmentService struct {
	equipment port.EquipmentRepository
}

// NewEquipmentService constructs an EquipmentService instance.
func NewEquipmentService(equipment port.EquipmentRepository) *EquipmentService {
	return &EquipmentService{equipment: equipment}
}

// CreateEquipmentInput carries the fields for a new inventory item.
type CreateEquipmentInput struct {
	Name      string
	Quantity  int
	UnitPrice int64
	Category  string
}

// Create validates and stores a new inventory item.
func (s *EquipmentService) Create(ctx context.Context, input CreateEquipmentInput) (domain.Equipment, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Category = strings.TrimSpace(input.Category)

	if input.Name == "" {
		return domain.Equipment{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if input.Quantity < 0 {
		return domain.Equipment{}, fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}
	if input.UnitPrice < 0 {
		return domain.Equipment{}, fmt.Errorf("%w: unit price must not be negative", ErrValidation)
	}

	return s.equipment.Create(ctx, domain.Equipment{
		Name:      input.Name,
		Quantity:  input.Quantity,
		UnitPrice: input.UnitPrice,
		Category:  input.Category,
	})
}

// List returns the full inventory.
func (s *EquipmentService) List(ctx context.Context) ([]domain.Equipment, error) {
	return s.equipment.List(ctx)
}

// Get returns one inventory item by id.
func (s *EquipmentService) Get(ctx context.Context, id int64) (*domain.Equipment, error) {
	return s.equipment.GetByID(ctx, id)
}

// Update applies a partial update restricted to the equipment allow-list.
func (s *EquipmentService) Update(ctx context.Context, id int64, changes map[string]any) (*domain.Equipment, error) {
	if len(changes) == 0 {
		return nil, fmt.Errorf("%w: no update fields provided", ErrValidation)
	}

	columns := make(map[string]any, len(changes))
	for key, value := range changes {
		column, coerced, err := coerceEquipmentChange(key, value)
		if err != nil {
			return nil, err
		}
		columns[column] = coerced
	}

	if err := s.equipment.Update(ctx, id, columns); err != nil {
		return nil, err
	}

	return s.equipment.GetByID(ctx, id)
}

// Delete removes one inventory item.
func (s *EquipmentService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.equipment.Delete(ctx, id)
}

func coerceEquipmentChange(key string, value any) (string, any, error) {
	allowed := false
	for _, attr := range domain.EquipmentMutableAttributes {
		if attr == key {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", nil, fmt.Errorf("%w: field %q is not updatable", ErrValidation, key)
	}

	switch key {
	case "quantity", "unit_price":
		n, err := coerceInt64(value)
		if err != nil || n < 0 {
			return "", nil, fmt.Errorf("%w: %s must be a non-negative whole number", ErrValidation, key)
		}
		return key, n, nil
	default:
		text, ok := value.(string)
		if !ok || strings.TrimSpace(text) == "" {
			return "", nil, fmt.Errorf("%w: field %q must be a non-empty string", ErrValidation, key)
		}
		return key, strings.TrimSpace(text), nil
	}
}
