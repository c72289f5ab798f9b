package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"

	"spacebook/infras/otel"
	"spacebook/infras/postgres"
	"spacebook/shared/constant"
	"spacebook/shared/dto"
	"spacebook/shared/logger"

	"github.com/jmoiron/sqlx"
)

// ErrRequiredFilter guards statements that would otherwise touch every row.
var ErrRequiredFilter = errors.New("required filter")

// handle is satisfied by both *sqlx.DB and *sqlx.Tx.
type handle interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

// Repository is a generic table gateway over T, scanned with sqlx. Reads go
// to the replica, writes to the primary, and the *Tx variants to sqltx.
type Repository[T any] struct {
	db     *postgres.Connection
	otel   otel.Otel
	entity string
	schema schema
}

func NewRepository[T any](entityName, tableName, primaryColumn string, db *postgres.Connection, otl otel.Otel) Repository[T] {
	return Repository[T]{
		db:     db,
		otel:   otl,
		entity: entityName,
		schema: newSchema[T](tableName, primaryColumn),
	}
}

// run opens a repository span tagged with query, executes fn, and wraps any
// error with action and the entity name.
func (repo *Repository[T]) run(ctx context.Context, action, query string, fn func(context.Context) error) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName,
		fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entity, action))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = fn(ctx); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to %s (%s): %w", action, repo.entity, err)
	}

	return nil
}

func (repo *Repository[T]) exec(ctx context.Context, h handle, action, query string, arg any) error {
	return repo.run(ctx, action, query, func(ctx context.Context) error {
		_, err := h.NamedExecContext(ctx, query, arg)

		return err //nolint:wrapcheck
	})
}

// get scans a single row into dest. sql.ErrNoRows comes back unwrapped.
func get(ctx context.Context, h handle, query string, dest any, args map[string]any) error {
	stmt, err := h.PrepareNamedContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	return stmt.GetContext(ctx, dest, args) //nolint:wrapcheck
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	return repo.exec(ctx, repo.db.Write, "insert", repo.schema.insertQuery(), model)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	return repo.exec(ctx, sqltx, "insert", repo.schema.insertQuery(), model)
}

// InsertBulk writes models in one multi-row statement. An empty slice is a
// no-op.
func (repo *Repository[T]) InsertBulk(ctx context.Context, models []T) error {
	if len(models) == 0 {
		return nil
	}

	return repo.exec(ctx, repo.db.Write, "bulk insert", repo.schema.insertQuery(), models)
}

func (repo *Repository[T]) exist(ctx context.Context, h handle, filter dto.FilterGroup) (bool, error) {
	whereClause, args := where(filter)
	if whereClause == constant.Empty {
		return false, ErrRequiredFilter
	}

	var found bool

	query := repo.schema.existsQuery(whereClause)
	err := repo.run(ctx, "check exist", query, func(ctx context.Context) error {
		return get(ctx, h, query, &found, args)
	})

	return found, err
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	return repo.exist(ctx, repo.db.Read, filter)
}

// ExistTx runs inside sqltx so it observes rows locked or written by it.
func (repo *Repository[T]) ExistTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) (bool, error) {
	return repo.exist(ctx, sqltx, filter)
}

func (repo *Repository[T]) get(ctx context.Context, h handle, tail string, filter dto.FilterGroup, columns ...string) (T, error) {
	var model T

	whereClause, args := where(filter)
	query := repo.schema.selectQuery(whereClause, tail, columns...)

	err := repo.run(ctx, "get data", query, func(ctx context.Context) error {
		if err := get(ctx, h, query, &model, args); !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		return nil
	})

	return model, err
}

// Get returns the zero value of T when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, repo.db.Read, constant.Empty, filter, columns...)
}

// GetForUpdateTx row-locks the match until sqltx ends.
func (repo *Repository[T]) GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup, columns ...string) (T, error) {
	return repo.get(ctx, sqltx, "FOR UPDATE", filter, columns...)
}

// GetAll lists matches ordered and paged by params.
func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	var models []T

	whereClause, args := where(filter)
	query := repo.schema.selectQuery(whereClause, page(params, args), columns...)

	err := repo.run(ctx, "get all data", query, func(ctx context.Context) error {
		stmt, err := repo.db.Read.PrepareNamedContext(ctx, query)
		if err != nil {
			return fmt.Errorf("prepare: %w", err)
		}
		defer stmt.Close()

		return stmt.SelectContext(ctx, &models, args) //nolint:wrapcheck
	})

	return models, err
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	var count int

	whereClause, args := where(filter)
	query := repo.schema.countQuery(whereClause)

	err := repo.run(ctx, "count data", query, func(ctx context.Context) error {
		return get(ctx, repo.db.Read, query, &count, args)
	})

	return count, err
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	whereClause, args := where(filter)
	if whereClause == constant.Empty {
		return ErrRequiredFilter
	}

	return repo.exec(ctx, repo.db.Write, "delete data", repo.schema.deleteQuery(whereClause), args)
}

// Update sets fields on every row matching filter. Field keys share the
// bind namespace with the filter's arguments.
func (repo *Repository[T]) Update(ctx context.Context, fields map[string]any, filter dto.FilterGroup) error {
	_, err := repo.UpdateCount(ctx, fields, filter)

	return err
}

// UpdateCount is Update that also reports how many rows matched, for callers
// whose filter doubles as an optimistic guard.
func (repo *Repository[T]) UpdateCount(ctx context.Context, fields map[string]any, filter dto.FilterGroup) (int64, error) {
	whereClause, args := where(filter)
	if whereClause == constant.Empty {
		return 0, ErrRequiredFilter
	}

	maps.Copy(args, fields)

	var affected int64

	query := repo.schema.updateQuery(fields, whereClause)
	err := repo.run(ctx, "update data", query, func(ctx context.Context) error {
		result, err := repo.db.Write.NamedExecContext(ctx, query, args)
		if err != nil {
			return err //nolint:wrapcheck
		}

		affected, err = result.RowsAffected()

		return err //nolint:wrapcheck
	})

	return affected, err
}
