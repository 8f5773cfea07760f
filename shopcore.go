// Package shopcore is the data-access core of the shop backend: a unit of
// work / repository layer over GORM with a two-tier cache (Redis with an
// in-process fallback) and a soft-delete/restore/purge lifecycle with
// declared cascade cleanup.
package shopcore

import (
	"go.uber.org/zap"

	"github.com/ammar0144/shopcore/pkg/cache"
	"github.com/ammar0144/shopcore/pkg/db"
	"github.com/ammar0144/shopcore/pkg/lifecycle"
	"github.com/ammar0144/shopcore/pkg/model"
	"github.com/ammar0144/shopcore/pkg/repository"
	"github.com/ammar0144/shopcore/pkg/uow"
)

// Config represents database configuration
type Config = db.Config

// CacheConfig represents cache configuration
type CacheConfig = cache.Config

// NewManager creates a new database manager
func NewManager(config *Config) (*db.Manager, error) {
	return db.NewManager(config)
}

// NewCacheStore creates the process-wide cache store, probing the
// distributed backend once and falling back to the in-process store for
// the process lifetime if it is unreachable.
func NewCacheStore(config *CacheConfig, logger *zap.Logger) (*cache.Store, error) {
	return cache.New(config, logger)
}

// NewUnitOfWork creates a unit of work for one logical operation.
func NewUnitOfWork(manager *db.Manager, cs *cache.Store, logger *zap.Logger) *uow.UnitOfWork {
	return uow.New(manager, cs, logger)
}

// Deps bundles the process-wide collaborators the lifecycle services
// share.
type Deps struct {
	Manager *db.Manager
	Cache   *cache.Store
	Logger  *zap.Logger
}

func (d Deps) units() func() *uow.UnitOfWork {
	return func() *uow.UnitOfWork { return uow.New(d.Manager, d.Cache, d.Logger) }
}

// NewProductLifecycle wires the product lifecycle with its cascade rules.
func NewProductLifecycle(d Deps) *lifecycle.Service[model.Product] {
	return lifecycle.New(
		d.units(),
		func(u *uow.UnitOfWork) *repository.Repository[model.Product] { return u.Products() },
		model.ProductCascades,
		d.Logger,
	)
}

// NewCategoryLifecycle wires the category lifecycle.
func NewCategoryLifecycle(d Deps) *lifecycle.Service[model.Category] {
	return lifecycle.New(
		d.units(),
		func(u *uow.UnitOfWork) *repository.Repository[model.Category] { return u.Categories() },
		model.CategoryCascades,
		d.Logger,
	)
}

// NewCouponLifecycle wires the coupon lifecycle with its condition
// cascade.
func NewCouponLifecycle(d Deps) *lifecycle.Service[model.Coupon] {
	return lifecycle.New(
		d.units(),
		func(u *uow.UnitOfWork) *repository.Repository[model.Coupon] { return u.Coupons() },
		model.CouponCascades,
		d.Logger,
	)
}

// NewOrderLifecycle wires the order lifecycle with its line cascade.
func NewOrderLifecycle(d Deps) *lifecycle.Service[model.Order] {
	return lifecycle.New(
		d.units(),
		func(u *uow.UnitOfWork) *repository.Repository[model.Order] { return u.Orders() },
		model.OrderCascades,
		d.Logger,
	)
}
