package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/maverick2062/Gym-Management/internal/core/domain"
	"github.com/maverick2062/Gym-Management/internal/repository"
)

func TestEquipmentRepositoryCreate(t *testing.T) {
	mock := newMockPool(t)
	repo := NewEquipmentRepository(mock)

	now := time.Now().UTC()
	mock.ExpectQuery(`INSERT INTO equipment \(name,quantity,unit_price,category\) VALUES \(\$1,\$2,\$3,\$4\) RETURNING id, created_at, updated_at`).
		WithArgs("Treadmill", 3, int64(250000), "cardio").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(1), now, now))

	created, err := repo.Create(context.Background(), domain.Equipment{
		Name:      "Treadmill",
		Quantity:  3,
		UnitPrice: 250000,
		Category:  "cardio",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("unexpected id: %d", created.ID)
	}

	expectationsMet(t, mock)
}

func TestEquipmentRepositoryGetByIDNotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewEquipmentRepository(mock)

	mock.ExpectQuery(`SELECT .* FROM equipment`).
		WithArgs(int64(404)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 404)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	expectationsMet(t, mock)
}

func TestEquipmentRepositoryList(t *testing.T) {
	mock := newMockPool(t)
	repo := NewEquipmentRepository(mock)

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT id, name, quantity, unit_price, category, created_at, updated_at FROM equipment ORDER BY name ASC`).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "quantity", "unit_price", "category", "created_at", "updated_at",
		}).
			AddRow(int64(2), "Bench", 4, int64(9900), "strength", now, now).
			AddRow(int64(1), "Treadmill", 3, int64(250000), "cardio", now, now))

	items, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(items) != 2 || items[0].Name != "Bench" {
		t.Fatalf("unexpected listing: %+v", items)
	}

	expectationsMet(t, mock)
}

func TestEquipmentRepositoryUpdateAllowList(t *testing.T) {
	mock := newMockPool(t)
	repo := NewEquipmentRepository(mock)

	err := repo.Update(context.Background(), 1, map[string]any{"created_at": time.Now()})
	if !errors.Is(err, repository.ErrInvalidColumn) {
		t.Fatalf("expected ErrInvalidColumn, got %v", err)
	}

	mock.ExpectExec(`UPDATE equipment SET quantity = \$1, updated_at = \$2 WHERE id = \$3`).
		WithArgs(int64(7), pgxmock.AnyArg(), int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	if err := repo.Update(context.Background(), 1, map[string]any{"quantity": int64(7)}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	expectationsMet(t, mock)
}

func TestEquipmentRepositoryDelete(t *testing.T) {
	mock := newMockPool(t)
	repo := NewEquipmentRepository(mock)

	mock.ExpectExec(`DELETE FROM equipment WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	deleted, err := repo.Delete(context.Background(), 1)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if !deleted {
		t.Fatal("expected delete to report true")
	}

	expectationsMet(t, mock)
}
