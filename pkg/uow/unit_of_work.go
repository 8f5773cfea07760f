// Package uow implements the unit of work owning one coherent set of
// repositories over a single connection/transaction scope.
package uow

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ammar0144/shopcore/pkg/cache"
	"github.com/ammar0144/shopcore/pkg/db"
	"github.com/ammar0144/shopcore/pkg/model"
	"github.com/ammar0144/shopcore/pkg/repository"
)

type pendingOp struct {
	table string
	run   repository.Mutation
}

// UnitOfWork owns one repository per entity kind, all bound to the same
// database scope. Mutations queued through the repositories are flushed by
// SaveChanges: inside the explicit transaction when Begin was called,
// otherwise in an implicit transaction of their own.
//
// Not safe for concurrent use; confine to a single logical operation. The
// cache is the only shared collaborator.
type UnitOfWork struct {
	base    *gorm.DB
	tx      *gorm.DB
	cache   *cache.Store
	log     *zap.Logger
	pending []pendingOp
	dirty   map[string]struct{}
	closed  bool

	products         *repository.Repository[model.Product]
	categories       *repository.Repository[model.Category]
	coupons          *repository.Repository[model.Coupon]
	couponConditions *repository.Repository[model.CouponCondition]
	orders           *repository.Repository[model.Order]
	orderLines       *repository.Repository[model.OrderLine]
	productDetails   *repository.Repository[model.ProductDetail]
	productImages    *repository.Repository[model.ProductImage]
	productComments  *repository.Repository[model.ProductComment]
	cartLines        *repository.Repository[model.CartLine]
	wishlistEntries  *repository.Repository[model.WishlistEntry]
}

// New builds a unit of work on the manager's connection pool. cs may be
// nil to run without caching; logger may be nil.
func New(manager *db.Manager, cs *cache.Store, logger *zap.Logger) *UnitOfWork {
	if logger == nil {
		logger = zap.NewNop()
	}
	u := &UnitOfWork{
		base:  manager.DB(),
		cache: cs,
		log:   logger,
		dirty: make(map[string]struct{}),
	}
	u.products = repository.New[model.Product](u, model.ProductList, logger)
	u.categories = repository.New[model.Category](u, model.CategoryList, logger)
	u.coupons = repository.New[model.Coupon](u, model.CouponList, logger)
	u.couponConditions = repository.New[model.CouponCondition](u, model.CouponConditionList, logger)
	u.orders = repository.New[model.Order](u, model.OrderList, logger)
	u.orderLines = repository.New[model.OrderLine](u, model.OrderLineList, logger)
	u.productDetails = repository.New[model.ProductDetail](u, model.ProductDetailList, logger)
	u.productImages = repository.New[model.ProductImage](u, model.ProductImageList, logger)
	u.productComments = repository.New[model.ProductComment](u, model.ProductCommentList, logger)
	u.cartLines = repository.New[model.CartLine](u, model.CartLineList, logger)
	u.wishlistEntries = repository.New[model.WishlistEntry](u, model.WishlistEntryList, logger)
	return u
}

// Repository accessors. The same instance is returned for the life of the
// unit of work.

func (u *UnitOfWork) Products() *repository.Repository[model.Product]                 { return u.products }
func (u *UnitOfWork) Categories() *repository.Repository[model.Category]              { return u.categories }
func (u *UnitOfWork) Coupons() *repository.Repository[model.Coupon]                   { return u.coupons }
func (u *UnitOfWork) CouponConditions() *repository.Repository[model.CouponCondition] { return u.couponConditions }
func (u *UnitOfWork) Orders() *repository.Repository[model.Order]                     { return u.orders }
func (u *UnitOfWork) OrderLines() *repository.Repository[model.OrderLine]             { return u.orderLines }
func (u *UnitOfWork) ProductDetails() *repository.Repository[model.ProductDetail]     { return u.productDetails }
func (u *UnitOfWork) ProductImages() *repository.Repository[model.ProductImage]       { return u.productImages }
func (u *UnitOfWork) ProductComments() *repository.Repository[model.ProductComment]   { return u.productComments }
func (u *UnitOfWork) CartLines() *repository.Repository[model.CartLine]               { return u.cartLines }
func (u *UnitOfWork) WishlistEntries() *repository.Repository[model.WishlistEntry]    { return u.wishlistEntries }

// DB returns the current database handle: the open transaction when one
// was begun, the shared pool otherwise.
func (u *UnitOfWork) DB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.base
}

// Cache returns the shared cache store (may be nil).
func (u *UnitOfWork) Cache() *cache.Store {
	return u.cache
}

// Enqueue adds a deferred mutation. It runs when SaveChanges flushes, in
// the order it was queued.
func (u *UnitOfWork) Enqueue(table string, op repository.Mutation) {
	u.pending = append(u.pending, pendingOp{table: table, run: op})
}

// Begin opens an explicit transaction spanning subsequent SaveChanges
// calls until Commit or Rollback.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.closed {
		return fmt.Errorf("unit of work is closed")
	}
	if u.tx != nil {
		return fmt.Errorf("transaction already begun")
	}
	tx := u.base.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	u.tx = tx
	return nil
}

// Commit makes the explicit transaction's writes visible, then invalidates
// the cache namespaces of every kind mutated inside it.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	if err := u.tx.Commit().Error; err != nil {
		u.tx = nil
		return fmt.Errorf("commit failed: %w", err)
	}
	u.tx = nil
	u.invalidateDirty(ctx)
	return nil
}

// Rollback discards the explicit transaction along with any queued,
// unflushed mutations. Calling it without an open transaction is a no-op.
func (u *UnitOfWork) Rollback() error {
	u.pending = nil
	u.dirty = make(map[string]struct{})
	if u.tx == nil {
		return nil
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	if err != nil {
		return fmt.Errorf("rollback failed: %w", err)
	}
	return nil
}

// SaveChanges flushes the queued mutations in program order. With an
// explicit transaction open they run inside it and become durable at
// Commit; otherwise they run in an implicit transaction that commits
// before SaveChanges returns.
//
// Persistence failures surface to the caller. A caller that began an
// explicit transaction is responsible for rolling it back — SaveChanges
// never does so on its behalf.
func (u *UnitOfWork) SaveChanges(ctx context.Context) error {
	if u.closed {
		return fmt.Errorf("unit of work is closed")
	}
	if len(u.pending) == 0 {
		return nil
	}
	ops := u.pending
	u.pending = nil

	run := func(tx *gorm.DB) error {
		for _, op := range ops {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("cancelled mid-save: %w", err)
			}
			if err := op.run(tx.WithContext(ctx)); err != nil {
				return err
			}
		}
		return nil
	}

	if u.tx != nil {
		if err := run(u.tx); err != nil {
			return err
		}
		for _, op := range ops {
			u.dirty[op.table] = struct{}{}
		}
		return nil
	}

	if err := u.base.WithContext(ctx).Transaction(run); err != nil {
		return err
	}
	for _, op := range ops {
		u.dirty[op.table] = struct{}{}
	}
	u.invalidateDirty(ctx)
	return nil
}

func (u *UnitOfWork) invalidateDirty(ctx context.Context) {
	if u.cache == nil {
		u.dirty = make(map[string]struct{})
		return
	}
	for table := range u.dirty {
		u.cache.InvalidateKind(ctx, table)
	}
	u.dirty = make(map[string]struct{})
}

// Close releases the unit of work. An open explicit transaction is rolled
// back. Closing twice is a no-op.
func (u *UnitOfWork) Close() {
	if u.closed {
		return
	}
	u.closed = true
	u.pending = nil
	if u.tx != nil {
		if err := u.tx.Rollback().Error; err != nil {
			u.log.Warn("rollback on close failed", zap.Error(err))
		}
		u.tx = nil
	}
}
