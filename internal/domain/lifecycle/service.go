// Package lifecycle implements the archive state machine for entity
// instances: save/delete guards, change detection against the last persisted
// state, and cascade orchestration inside a single transaction.
package lifecycle

import (
	"context"
	"fmt"

	"stratum/internal/archive"
	"stratum/internal/core/apperror"
	"stratum/internal/core/entity"
	"stratum/internal/core/id"
	"stratum/internal/core/tx"
	"stratum/pkg/logger"
)

// Entity is what the lifecycle service requires of an instance.
type Entity interface {
	entity.Archivable
	entity.Validatable
}

// Repository persists single rows of one entity type.
type Repository[T Entity] interface {
	Create(ctx context.Context, e T) error
	Update(ctx context.Context, e T) error
	Delete(ctx context.Context, e T) error
	GetByID(ctx context.Context, entityID id.ID) (T, error)
	Reload(ctx context.Context, e T) error
}

// Auditor records archive lifecycle actions. Implementations run inside the
// operation's transaction.
type Auditor interface {
	Record(ctx context.Context, action string, entityName string, entityID id.ID, payload any) error
}

// Audit actions.
const (
	ActionCreate    = "create"
	ActionUpdate    = "update"
	ActionDelete    = "delete"
	ActionArchive   = "archive"
	ActionUnarchive = "unarchive"
)

// SaveOptions controls save guard behavior.
type SaveOptions struct {
	// Force permits field changes on an archived instance.
	Force bool
}

// DeleteOptions controls delete guard behavior.
type DeleteOptions struct {
	// Force permits deleting an unarchived instance.
	Force bool
}

// Service drives the archive lifecycle for one entity type.
type Service[T Entity] struct {
	repo     Repository[T]
	txm      tx.Manager
	registry *archive.Registry
	executor *archive.Executor
	audit    Auditor
	def      archive.EntityDef
}

// Config configures a lifecycle service.
type Config[T Entity] struct {
	Repo     Repository[T]
	TxM      tx.Manager
	Registry *archive.Registry
	Executor *archive.Executor
	Audit    Auditor // optional
	// EntityName must match a registered descriptor.
	EntityName string
}

// NewService creates a lifecycle service for the named entity type.
func NewService[T Entity](cfg Config[T]) *Service[T] {
	return &Service[T]{
		repo:     cfg.Repo,
		txm:      cfg.TxM,
		registry: cfg.Registry,
		executor: cfg.Executor,
		audit:    cfg.Audit,
		def:      cfg.Registry.MustGet(cfg.EntityName),
	}
}

// Definition returns the descriptor the service operates under.
func (s *Service[T]) Definition() archive.EntityDef {
	return s.def
}

// GetByID loads an instance.
func (s *Service[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	return s.repo.GetByID(ctx, entityID)
}

// Save validates and persists the instance, running archive-transition logic
// first when the archived flag changed relative to the last persisted state.
//
// The instance's own row update and any cascade it triggers share one
// transaction: either all row changes commit or all roll back. In-memory
// state is left as the caller set it on error; only persisted state reverts.
func (s *Service[T]) Save(ctx context.Context, e T, opts SaveOptions) error {
	if e.IsDetached() {
		return apperror.NewValidation("snapshot instances are read-only").
			WithDetail("entity", s.def.Name)
	}
	if err := e.Validate(ctx); err != nil {
		return err
	}

	err := s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		// Never-persisted instances skip all archive-transition logic.
		if e.IsNew() {
			if err := s.repo.Create(ctx, e); err != nil {
				return fmt.Errorf("create %s: %w", s.def.Name, err)
			}
			return s.record(ctx, ActionCreate, e)
		}

		original, err := e.Tracker().Original(e)
		if err != nil {
			return err
		}
		prior, ok := original.(entity.Archivable)
		if !ok {
			return apperror.NewInternal(fmt.Errorf("snapshot of %s is not archivable", s.def.Name))
		}

		action := ActionUpdate
		wasArchived, isArchived := prior.IsArchived(), e.IsArchived()
		switch {
		case isArchived && !wasArchived:
			if !s.def.AllowArchive {
				return apperror.NewCannotArchive(s.def.Name)
			}
			if err := s.cascade(ctx, e, true); err != nil {
				return err
			}
			action = ActionArchive

		case !isArchived && wasArchived:
			// A dependent cannot unarchive itself while an ancestor
			// still holds it archived.
			if len(e.GetArchivePoints()) > 0 {
				return apperror.NewArchivedParent(s.def.Name)
			}
			if err := s.cascade(ctx, e, false); err != nil {
				return err
			}
			action = ActionUnarchive

		case isArchived:
			if s.def.RequireUnarchivedToModify && !opts.Force {
				return apperror.NewModifyArchived(s.def.Name)
			}
		}

		if t, ok := any(e).(interface{ TouchUpdated() }); ok {
			t.TouchUpdated()
		}
		if err := s.repo.Update(ctx, e); err != nil {
			return fmt.Errorf("update %s: %w", s.def.Name, err)
		}
		return s.record(ctx, action, e)
	})
	if err != nil {
		return err
	}

	// Next mutation snapshots fresh state under the new version.
	e.Tracker().BumpVersion()
	return nil
}

// Delete removes the instance's row. Unless forced (or the type opts out),
// the instance must already be archived. Referential-integrity rejections
// from storage surface as CANNOT_DELETE_OBJECT.
func (s *Service[T]) Delete(ctx context.Context, e T, opts DeleteOptions) error {
	if e.IsDetached() {
		return apperror.NewValidation("snapshot instances are read-only").
			WithDetail("entity", s.def.Name)
	}
	if s.def.RequireArchivedToDelete && !opts.Force && !e.IsArchived() {
		return apperror.NewDeleteUnarchived(s.def.Name)
	}

	return s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, e); err != nil {
			return err
		}
		return s.record(ctx, ActionDelete, e)
	})
}

// Archive flips the instance to archived and saves.
func (s *Service[T]) Archive(ctx context.Context, e T) error {
	e.SetArchived(e, true)
	return s.Save(ctx, e, SaveOptions{})
}

// Unarchive flips the instance to unarchived and saves. Fails while
// provenance tags from archived ancestors remain.
func (s *Service[T]) Unarchive(ctx context.Context, e T) error {
	e.SetArchived(e, false)
	return s.Save(ctx, e, SaveOptions{})
}

// Reload refreshes the instance from storage and discards memoized state.
func (s *Service[T]) Reload(ctx context.Context, e T) error {
	return s.repo.Reload(ctx, e)
}

// cascade builds the relationship tree for this type and propagates the
// state change to every dependent level. The tree is built fresh per
// invocation and discarded afterwards.
func (s *Service[T]) cascade(ctx context.Context, e T, archived bool) error {
	graph, err := archive.Expand(s.registry, s.def.Name)
	if err != nil {
		return err
	}

	logger.Debug(ctx, "archive cascade",
		"entity", s.def.Name,
		"id", e.GetID(),
		"archived", archived,
		"levels", graph.Count(),
	)

	return s.executor.Update(ctx, graph, e.GetID(), archived)
}

func (s *Service[T]) record(ctx context.Context, action string, e T) error {
	if s.audit == nil {
		return nil
	}
	payload := map[string]any{
		"archived":       e.IsArchived(),
		"archive_points": e.GetArchivePoints(),
	}
	return s.audit.Record(ctx, action, s.def.Name, e.GetID(), payload)
}
