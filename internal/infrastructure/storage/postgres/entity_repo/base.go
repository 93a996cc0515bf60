// Package entity_repo provides PostgreSQL repositories for archivable
// entity types. Embed BaseEntityRepo in specific repositories.
package entity_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stratum/internal/core/apperror"
	"stratum/internal/core/entity"
	"stratum/internal/core/id"
	"stratum/internal/infrastructure/storage/postgres"
)

// Record is the entity contract repositories depend on.
type Record interface {
	entity.Archivable
}

// BaseEntityRepo provides common persistence operations for one entity type.
type BaseEntityRepo[T Record] struct {
	txm        *postgres.TxManager
	entityName string
	tableName  string
	selectCols []string
	newFn      func() T
}

// NewBaseEntityRepo creates a base repository.
func NewBaseEntityRepo[T Record](
	txm *postgres.TxManager,
	entityName string,
	tableName string,
	newFn func() T,
) *BaseEntityRepo[T] {
	return &BaseEntityRepo[T]{
		txm:        txm,
		entityName: entityName,
		tableName:  tableName,
		selectCols: postgres.ExtractDBColumns[T](),
		newFn:      newFn,
	}
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *BaseEntityRepo[T]) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a new entity using its "db" tags and marks it persisted.
// Detached snapshot instances are rejected.
func (r *BaseEntityRepo[T]) Create(ctx context.Context, e T) error {
	if e.IsDetached() {
		return apperror.NewValidation("cannot persist a detached snapshot").
			WithDetail("entity", r.entityName)
	}

	data := postgres.StructToMap(e)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in entity %s", r.entityName)
	}

	q := r.Builder().
		Insert(r.tableName).
		SetMap(data)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.TranslateError(err, r.entityName, e.GetID())
	}

	e.MarkPersisted()
	return nil
}

// Update modifies an existing entity with optimistic locking. The expected
// version is the in-memory one; zero rows affected means another writer got
// there first.
func (r *BaseEntityRepo[T]) Update(ctx context.Context, e T) error {
	if e.IsDetached() {
		return apperror.NewValidation("cannot persist a detached snapshot").
			WithDetail("entity", r.entityName)
	}

	data := postgres.StructToMap(e)
	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("entity %s has no version column", r.entityName)
	}

	// id never changes; version is managed here (optimistic locking).
	delete(data, "id")
	delete(data, "version")

	q := r.Builder().
		Update(r.tableName).
		SetMap(data).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": e.GetID()}).
		Where(squirrel.Eq{"version": version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.TranslateError(err, r.entityName, e.GetID())
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(r.entityName, e.GetID())
	}

	e.Touch()
	return nil
}

// Delete removes the entity's row. Referential-integrity violations are
// translated to CANNOT_DELETE_OBJECT.
func (r *BaseEntityRepo[T]) Delete(ctx context.Context, e T) error {
	if e.IsDetached() {
		return apperror.NewValidation("cannot delete a detached snapshot").
			WithDetail("entity", r.entityName)
	}

	q := r.Builder().
		Delete(r.tableName).
		Where(squirrel.Eq{"id": e.GetID()})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.TranslateError(err, r.entityName, e.GetID())
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.entityName, e.GetID())
	}
	return nil
}

func (r *BaseEntityRepo[T]) baseSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(r.selectCols...).
		From(r.tableName)
}

// GetByID retrieves entity by ID.
func (r *BaseEntityRepo[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	e := r.newFn()

	q := r.baseSelect().
		Where(squirrel.Eq{"id": entityID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return e, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), e, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return e, apperror.NewNotFound(r.entityName, entityID.String())
		}
		return e, fmt.Errorf("get %s by id: %w", r.entityName, err)
	}

	return e, nil
}

// Reload re-scans the entity's row into the given instance and discards its
// memoized in-memory state, which the fresh field values just invalidated.
func (r *BaseEntityRepo[T]) Reload(ctx context.Context, e T) error {
	q := r.baseSelect().
		Where(squirrel.Eq{"id": e.GetID()}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), e, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return apperror.NewNotFound(r.entityName, e.GetID().String())
		}
		return fmt.Errorf("reload %s: %w", r.entityName, err)
	}

	e.AfterReload()
	return nil
}

// ListOptions filters List results.
type ListOptions struct {
	// IncludeArchived includes archived rows.
	IncludeArchived bool

	Limit  int
	Offset int
}

// List retrieves entities ordered by id (UUIDv7: creation order).
func (r *BaseEntityRepo[T]) List(ctx context.Context, opts ListOptions) ([]T, error) {
	q := r.baseSelect().OrderBy("id")

	if !opts.IncludeArchived {
		q = q.Where(squirrel.Eq{"archived": false})
	}
	if opts.Limit > 0 {
		q = q.Limit(uint64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Offset(uint64(opts.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []T
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.entityName, err)
	}
	return items, nil
}
