package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/spotbook/appointment-service/internal/domain"
	"github.com/spotbook/appointment-service/pkg/dbmetrics"
	"github.com/spotbook/appointment-service/pkg/psqlbuilder"
)

// Repository репозиторий для работы с каталогом услуг
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую услугу
func (r *Repository) Create(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("services").
		Columns(
			"id",
			"name",
			"description",
			"base_price",
			"price_per_km",
			"duration_minutes",
			"image",
		).
		Values(
			svc.ID,
			svc.Name,
			svc.Description,
			svc.BasePrice,
			svc.PricePerKm,
			svc.DurationMinutes,
			svc.Image,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	svc.CreatedAt = createdAt.Time
	svc.UpdatedAt = updatedAt.Time

	return svc, nil
}

// GetByID получает услугу по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectServices().
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	svc, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %v", ErrScanRow, err)
	}

	return svc, nil
}

// List получает все услуги каталога
func (r *Repository) List(ctx context.Context) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectServices().
		OrderBy("created_at ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		services = append(services, svc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// Update применяет частичный патч к услуге и обновляет updated_at
// nil поля патча не затрагиваются
func (r *Repository) Update(ctx context.Context, id string, patch domain.ServicePatch) (*domain.Service, error) {
	if patch.IsEmpty() {
		return nil, ErrEmptyPatch
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("services").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if patch.Name != nil {
		updateBuilder = updateBuilder.Set("name", *patch.Name)
	}
	if patch.Description != nil {
		updateBuilder = updateBuilder.Set("description", *patch.Description)
	}
	if patch.BasePrice != nil {
		updateBuilder = updateBuilder.Set("base_price", *patch.BasePrice)
	}
	if patch.PricePerKm != nil {
		updateBuilder = updateBuilder.Set("price_per_km", *patch.PricePerKm)
	}
	if patch.DurationMinutes != nil {
		updateBuilder = updateBuilder.Set("duration_minutes", *patch.DurationMinutes)
	}
	if patch.Image != nil {
		updateBuilder = updateBuilder.Set("image", *patch.Image)
	}

	query, args, err := updateBuilder.
		Suffix("RETURNING id, name, description, base_price, price_per_km, duration_minutes, image, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	svc, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - scan service: %v", ErrScanRow, err)
	}

	return svc, nil
}

// Delete удаляет услугу по ID
// Исторические записи на эту услугу не затрагиваются: их lookup деградирует
// до метки "Unknown Service" на уровне сервиса
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

func selectServices() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"name",
		"description",
		"base_price",
		"price_per_km",
		"duration_minutes",
		"image",
		"created_at",
		"updated_at",
	).From("services")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanService(row rowScanner) (*domain.Service, error) {
	var svc domain.Service
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&svc.ID,
		&svc.Name,
		&svc.Description,
		&svc.BasePrice,
		&svc.PricePerKm,
		&svc.DurationMinutes,
		&svc.Image,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	svc.CreatedAt = createdAt.Time
	svc.UpdatedAt = updatedAt.Time

	return &svc, nil
}
