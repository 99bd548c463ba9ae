package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/maverick2062/Gym-Management/internal/core/domain"
	"github.com/maverick2062/Gym-Management/internal/repository"
)

const equipmentTable = "equipment"

var equipmentColumns = []string{"id", "name", "quantity", "unit_price", "category", "created_at", "updated_at"}

// EquipmentRepository implements port.EquipmentRepository using PostgreSQL.
type EquipmentRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewEquipmentRepository constructs a repository backed by any executor that
// satisfies pgExecutor.
func NewEquipmentRepository(exec pgExecutor) *EquipmentRepository {
	return &EquipmentRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new inventory item and returns it with the generated id.
func (r *EquipmentRepository) Create(ctx context.Context, item domain.Equipment) (domain.Equipment, error) {
	stmt, args, err := r.builder.
		Insert(equipmentTable).
		Columns("name", "quantity", "unit_price", "category").
		Values(item.Name, item.Quantity, item.UnitPrice, item.Category).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return domain.Equipment{}, fmt.Errorf("build insert equipment sql: %w", err)
	}

	row := r.exec.QueryRow(ctx, stmt, args...)
	if err := row.Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return domain.Equipment{}, fmt.Errorf("insert equipment: %w", err)
	}

	return item, nil
}

// GetByID retrieves one inventory item.
func (r *EquipmentRepository) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	stmt, args, err := r.builder.
		Select(equipmentColumns...).
		From(equipmentTable).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select equipment sql: %w", err)
	}

	var item domain.Equipment
	row := r.exec.QueryRow(ctx, stmt, args...)
	if err := row.Scan(&item.ID, &item.Name, &item.Quantity, &item.UnitPrice, &item.Category, &item.CreatedAt, &item.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan equipment: %w", err)
	}

	return &item, nil
}

// List returns all inventory items ordered by name.
func (r *EquipmentRepository) List(ctx context.Context) ([]domain.Equipment, error) {
	stmt, args, err := r.builder.
		Select(equipmentColumns...).
		From(equipmentTable).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list equipment sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	defer rows.Close()

	var items []domain.Equipment
	for rows.Next() {
		var item domain.Equipment
		if err := rows.Scan(&item.ID, &item.Name, &item.Quantity, &item.UnitPrice, &item.Category, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan equipment row: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// Update applies changes filtered through the equipment allow-list.
func (r *EquipmentRepository) Update(ctx context.Context, id int64, changes map[string]any) error {
	if len(changes) == 0 {
		return repository.ErrInvalidColumn
	}

	query := r.builder.Update(equipmentTable)
	for key, value := range changes {
		if !equipmentColumnAllowed(key) {
			return fmt.Errorf("%w: %s", repository.ErrInvalidColumn, key)
		}
		query = query.Set(key, value)
	}
	query = query.
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id})

	stmt, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build update equipment sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update equipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete removes one inventory item.
func (r *EquipmentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	stmt, args, err := r.builder.Delete(equipmentTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return false, fmt.Errorf("build delete equipment sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return false, fmt.Errorf("delete equipment: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func equipmentColumnAllowed(key string) bool {
	for _, attr := range domain.EquipmentMutableAttributes {
		if attr == key {
			return true
		}
	}
	return false
}
