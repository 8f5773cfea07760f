package repository

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ammar0144/shopcore/pkg/cache"
	"github.com/ammar0144/shopcore/pkg/db"
	"github.com/ammar0144/shopcore/pkg/model"
)

// Session is the unit of work a repository is bound to. It hands out the
// current database handle (the open transaction when one was begun),
// collects queued mutations, and exposes the shared cache.
type Session interface {
	DB() *gorm.DB
	Enqueue(table string, op Mutation)
	Cache() *cache.Store
}

// Mutation is a deferred write executed inside the session's flush
// transaction, in program order.
type Mutation func(tx *gorm.DB) error

// Repository provides CRUD and predicate-filtered queries for one entity
// kind. Reads run immediately; writes are queued on the owning session and
// commit together when it saves. Not safe for concurrent use — confine to
// one logical operation, like the session that owns it.
type Repository[T model.Entity] struct {
	session Session
	log     *zap.Logger
	table   string
	spec    model.ListSpec
	soft    bool
}

// New binds a repository for T to a session. spec declares the kind's list
// behavior (sort allow-list, default order, keyword column).
func New[T model.Entity](s Session, spec model.ListSpec, logger *zap.Logger) *Repository[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	var zero T
	_, soft := any(&zero).(model.SoftDeletable)
	return &Repository[T]{
		session: s,
		log:     logger,
		table:   zero.TableName(),
		spec:    spec,
		soft:    soft,
	}
}

// Table returns the kind's table name, which doubles as its cache
// namespace.
func (r *Repository[T]) Table() string {
	return r.table
}

// Find returns all rows matching the predicate. A nil predicate matches
// everything. include names relationship sets to eagerly load, avoiding
// N+1 fetches on detail views. Returns an empty slice, never nil.
func (r *Repository[T]) Find(ctx context.Context, pred *db.Predicate, include ...string) ([]T, error) {
	q := r.session.DB().WithContext(ctx)
	for _, assoc := range include {
		q = q.Preload(assoc)
	}
	if clause, args := pred.Build(); clause != "" {
		q = q.Where(clause, args...)
	}
	entities := make([]T, 0)
	if err := q.Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return entities, nil
}

// GetByID returns the row with the given identity, or nil when absent.
// Soft-deleted rows are filtered out unless withDeleted is set; the caller
// decides whether a nil result is an error.
func (r *Repository[T]) GetByID(ctx context.Context, id int, withDeleted bool) (*T, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be greater than 0", ErrValidation)
	}

	cacheKey := cache.Key(r.table, "get_by_id", fmt.Sprintf("%d:%t", id, withDeleted))
	if cs := r.session.Cache(); cs != nil {
		var entity T
		if cs.Get(ctx, cacheKey, &entity) {
			return &entity, nil
		}
	}

	q := r.session.DB().WithContext(ctx)
	if r.soft && !withDeleted {
		q = q.Where("delete_flag = ?", false)
	}
	var entity T
	if err := q.First(&entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if cs := r.session.Cache(); cs != nil {
		cs.Set(ctx, cacheKey, entity, 0)
	}
	return &entity, nil
}

// Count returns the number of rows matching the predicate.
func (r *Repository[T]) Count(ctx context.Context, pred *db.Predicate) (int64, error) {
	var entity T
	q := r.session.DB().WithContext(ctx).Model(&entity)
	if clause, args := pred.Build(); clause != "" {
		q = q.Where(clause, args...)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("database error: %w", err)
	}
	return count, nil
}

// FindPage runs the shared list contract: keyword filter, allow-listed
// sort, offset/limit pagination. Soft-deleted rows are always excluded
// from lists. Results are served cache-first; the session invalidates the
// kind's namespace after any mutating commit.
func (r *Repository[T]) FindPage(ctx context.Context, q PagedQuery, pred *db.Predicate) (*Page[T], error) {
	q = q.normalize()
	order := r.spec.OrderBy(q.Sort)

	where, args := r.listPredicate(q, pred).Build()

	cacheKey := cache.QueryKey(r.table, "find_page", struct {
		Where string
		Args  []any
		Order string
		Page  int
		Size  int
		All   bool
	}{where, args, order, q.Page, q.PageSize, q.SelectAll})

	if cs := r.session.Cache(); cs != nil {
		var page Page[T]
		if cs.Get(ctx, cacheKey, &page) {
			return &page, nil
		}
	}

	var entity T
	countQuery := r.session.DB().WithContext(ctx).Model(&entity)
	if where != "" {
		countQuery = countQuery.Where(where, args...)
	}
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	listQuery := r.session.DB().WithContext(ctx).Model(&entity).Order(order)
	if where != "" {
		listQuery = listQuery.Where(where, args...)
	}
	if !q.SelectAll {
		listQuery = listQuery.Offset((q.Page - 1) * q.PageSize).Limit(q.PageSize)
	}
	items := make([]T, 0)
	if err := listQuery.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	page := &Page[T]{
		Items:      items,
		TotalCount: total,
		TotalPages: TotalPages(total, q.PageSize),
		PageNumber: q.Page,
		PageSize:   q.PageSize,
	}
	if cs := r.session.Cache(); cs != nil {
		cs.Set(ctx, cacheKey, page, 0)
	}
	return page, nil
}

func (r *Repository[T]) listPredicate(q PagedQuery, pred *db.Predicate) *db.Predicate {
	var full *db.Predicate
	if r.soft {
		full = db.Where("delete_flag", db.Equal, false)
	}
	if q.Keyword != "" {
		kw := db.Where(r.spec.KeywordCol, db.Contains, q.Keyword)
		if full == nil {
			full = kw
		} else {
			full = full.AndGroup(kw)
		}
	}
	if pred != nil {
		if full == nil {
			full = db.Group(pred)
		} else {
			full = full.AndGroup(pred)
		}
	}
	return full
}

// Upsert queues an insert (zero identity) or a full-row update (nonzero
// identity) for the session's next save. An update whose target row has
// disappeared by flush time fails the whole save with ErrNotFound.
func (r *Repository[T]) Upsert(entity *T) {
	r.session.Enqueue(r.table, func(tx *gorm.DB) error {
		id := (*entity).GetID()
		if id == 0 {
			if err := tx.Create(entity).Error; err != nil {
				return fmt.Errorf("%w: insert into %s: %v", ErrConflict, r.table, err)
			}
			return nil
		}

		var existing T
		if err := tx.First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s id %d", ErrNotFound, r.table, id)
			}
			return fmt.Errorf("database error: %w", err)
		}
		if err := tx.Save(entity).Error; err != nil {
			return fmt.Errorf("%w: update %s id %d: %v", ErrConflict, r.table, id, err)
		}
		return nil
	})
}

// Delete queues physical removal of one row. Dependents must be cascaded
// first; that ordering is the lifecycle component's job.
func (r *Repository[T]) Delete(entity *T) {
	r.session.Enqueue(r.table, func(tx *gorm.DB) error {
		if err := tx.Delete(entity).Error; err != nil {
			return fmt.Errorf("%w: delete from %s: %v", ErrConflict, r.table, err)
		}
		return nil
	})
}

// DeleteMany queues physical removal of a batch of rows.
func (r *Repository[T]) DeleteMany(entities []T) {
	if len(entities) == 0 {
		return
	}
	r.session.Enqueue(r.table, func(tx *gorm.DB) error {
		if err := tx.Delete(&entities).Error; err != nil {
			return fmt.Errorf("%w: bulk delete from %s: %v", ErrConflict, r.table, err)
		}
		return nil
	})
}
