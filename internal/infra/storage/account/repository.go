package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/spotbook/appointment-service/internal/domain"
	"github.com/spotbook/appointment-service/pkg/dbmetrics"
	"github.com/spotbook/appointment-service/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки PostgreSQL для нарушения уникальности
const pgUniqueViolation = "23505"

// Repository репозиторий для работы с аккаунтами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория аккаунтов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый аккаунт
// Email уникален: при конфликте возвращает ErrEmailTaken
func (r *Repository) Create(ctx context.Context, acc *domain.Account) (*domain.Account, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("accounts").
		Columns(
			"id",
			"name",
			"email",
			"role",
			"is_approved",
			"has_paid",
		).
		Values(
			acc.ID,
			acc.Name,
			acc.Email,
			acc.Role,
			acc.IsApproved,
			acc.HasPaid,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	acc.CreatedAt = createdAt.Time
	acc.UpdatedAt = updatedAt.Time

	return acc, nil
}

// GetByID получает аккаунт по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

// GetByEmail получает аккаунт по email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.getBy(ctx, squirrel.Eq{"email": email})
}

// List получает все аккаунты (сначала новые)
func (r *Repository) List(ctx context.Context) ([]*domain.Account, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectAccounts().
		OrderBy("created_at DESC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		accounts = append(accounts, acc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return accounts, nil
}

// SetApproved выставляет флаг одобрения аккаунта и обновляет updated_at
func (r *Repository) SetApproved(ctx context.Context, id string, approved bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("accounts").
		Set("is_approved", approved).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetApproved - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetApproved - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetApproved - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

// MarkPaid выставляет has_paid=true
// Идемпотентна: повторный вызов для уже оплаченного аккаунта это no-op
// (updated_at при повторе не трогаем)
func (r *Repository) MarkPaid(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("accounts").
		Set("has_paid", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "has_paid": false}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkPaid - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkPaid - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkPaid - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Либо аккаунта нет, либо он уже оплачен
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}

	return nil
}

func (r *Repository) getBy(ctx context.Context, cond squirrel.Eq) (*domain.Account, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectAccounts().
		Where(cond).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getBy - build select query: %v", ErrBuildQuery, err)
	}

	acc, err := scanAccount(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getBy - scan account: %v", ErrScanRow, err)
	}

	return acc, nil
}

func selectAccounts() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"name",
		"email",
		"role",
		"is_approved",
		"has_paid",
		"created_at",
		"updated_at",
	).From("accounts")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var acc domain.Account
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&acc.ID,
		&acc.Name,
		&acc.Email,
		&acc.Role,
		&acc.IsApproved,
		&acc.HasPaid,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	acc.CreatedAt = createdAt.Time
	acc.UpdatedAt = updatedAt.Time

	return &acc, nil
}
