// Package lifecycle implements the soft-delete / restore / hard-delete
// state machine shared by all soft-deletable kinds.
//
// States: Active -> SoftDeleted -> Restored (back to Active) or Purged
// (row physically removed, terminal). Purging clears every dependent
// collection in the kind's declared cascade order inside one transaction
// before the target row goes.
package lifecycle

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ammar0144/shopcore/pkg/db"
	"github.com/ammar0144/shopcore/pkg/model"
	"github.com/ammar0144/shopcore/pkg/repository"
	"github.com/ammar0144/shopcore/pkg/uow"
)

// Service drives the lifecycle for one entity kind. Each operation runs in
// its own unit of work; the service itself holds no per-request state and
// is safe to share.
type Service[T model.Entity] struct {
	units    func() *uow.UnitOfWork
	repo     func(*uow.UnitOfWork) *repository.Repository[T]
	cascades []model.CascadeRule
	log      *zap.Logger
	now      func() time.Time
}

// New wires a lifecycle service. units creates a fresh unit of work per
// operation; repo selects the kind's repository from it; cascades is the
// ordered dependent list consulted by Purge.
func New[T model.Entity](
	units func() *uow.UnitOfWork,
	repo func(*uow.UnitOfWork) *repository.Repository[T],
	cascades []model.CascadeRule,
	logger *zap.Logger,
) *Service[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service[T]{
		units:    units,
		repo:     repo,
		cascades: cascades,
		log:      logger,
		now:      time.Now,
	}
}

// SoftDelete flags the row as deleted without removing it. Soft-deleting a
// row that is already soft-deleted succeeds and refreshes the actor and
// timestamp.
func (s *Service[T]) SoftDelete(ctx context.Context, id int, actor string) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be greater than 0", repository.ErrValidation)
	}

	u := s.units()
	defer u.Close()

	repo := s.repo(u)
	entity, err := repo.GetByID(ctx, id, true)
	if err != nil {
		return err
	}
	if entity == nil {
		return fmt.Errorf("%w: %s id %d", repository.ErrNotFound, repo.Table(), id)
	}

	soft, ok := any(entity).(model.SoftDeletable)
	if !ok {
		return fmt.Errorf("%w: %s does not support soft delete", repository.ErrInvalidState, repo.Table())
	}
	soft.MarkDeleted(actor, s.now())

	repo.Upsert(entity)
	if err := u.SaveChanges(ctx); err != nil {
		return err
	}
	s.log.Info("soft deleted", zap.String("kind", repo.Table()), zap.Int("id", id), zap.String("actor", actor))
	return nil
}

// Restore returns a soft-deleted row to the active state and clears its
// deletion metadata. Restoring an active row is an invalid transition.
func (s *Service[T]) Restore(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be greater than 0", repository.ErrValidation)
	}

	u := s.units()
	defer u.Close()

	repo := s.repo(u)
	entity, err := repo.GetByID(ctx, id, true)
	if err != nil {
		return err
	}
	if entity == nil {
		return fmt.Errorf("%w: %s id %d", repository.ErrNotFound, repo.Table(), id)
	}

	soft, ok := any(entity).(model.SoftDeletable)
	if !ok {
		return fmt.Errorf("%w: %s does not support soft delete", repository.ErrInvalidState, repo.Table())
	}
	if !soft.IsDeleted() {
		return fmt.Errorf("%w: %s id %d is not flagged as deleted", repository.ErrInvalidState, repo.Table(), id)
	}
	soft.ClearDeleted()

	repo.Upsert(entity)
	if err := u.SaveChanges(ctx); err != nil {
		return err
	}
	s.log.Info("restored", zap.String("kind", repo.Table()), zap.Int("id", id))
	return nil
}

// Purge physically removes the row and, first, every dependent row
// referencing it, in the declared cascade order, all inside one
// transaction. If any dependent deletion fails the transaction rolls back
// and the target row survives. The kind's cache namespace (and each
// touched dependent's) is invalidated after commit.
func (s *Service[T]) Purge(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be greater than 0", repository.ErrValidation)
	}

	u := s.units()
	defer u.Close()

	repo := s.repo(u)
	entity, err := repo.GetByID(ctx, id, true)
	if err != nil {
		return err
	}
	if entity == nil {
		return fmt.Errorf("%w: %s id %d", repository.ErrNotFound, repo.Table(), id)
	}

	if err := u.Begin(ctx); err != nil {
		return err
	}

	for _, rule := range s.cascades {
		rule := rule
		u.Enqueue(rule.Table, func(tx *gorm.DB) error {
			if err := tx.Where(rule.ForeignKey+" = ?", id).Delete(rule.Prototype()).Error; err != nil {
				return fmt.Errorf("%w: cascade delete from %s: %v", repository.ErrConflict, rule.Table, err)
			}
			return nil
		})
	}
	repo.Delete(entity)

	if err := u.SaveChanges(ctx); err != nil {
		if rbErr := u.Rollback(); rbErr != nil {
			s.log.Warn("rollback after failed purge", zap.Error(rbErr))
		}
		return err
	}
	if err := u.Commit(ctx); err != nil {
		return err
	}

	s.log.Info("purged", zap.String("kind", repo.Table()), zap.Int("id", id),
		zap.Int("cascades", len(s.cascades)))
	return nil
}

// ListDeleted returns every row currently in the soft-deleted state. No
// matches is an empty successful result, not an error.
func (s *Service[T]) ListDeleted(ctx context.Context) ([]T, error) {
	u := s.units()
	defer u.Close()

	return s.repo(u).Find(ctx, db.Where("delete_flag", db.Equal, true))
}
