package lifecycle_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammar0144/shopcore/pkg/db"
	"github.com/ammar0144/shopcore/pkg/lifecycle"
	"github.com/ammar0144/shopcore/pkg/model"
	"github.com/ammar0144/shopcore/pkg/repository"
	"github.com/ammar0144/shopcore/pkg/testsupport"
	"github.com/ammar0144/shopcore/pkg/uow"
)

func productService(manager *db.Manager) *lifecycle.Service[model.Product] {
	return lifecycle.New(
		func() *uow.UnitOfWork { return uow.New(manager, nil, nil) },
		func(u *uow.UnitOfWork) *repository.Repository[model.Product] { return u.Products() },
		model.ProductCascades,
		nil,
	)
}

func couponService(manager *db.Manager) *lifecycle.Service[model.Coupon] {
	return lifecycle.New(
		func() *uow.UnitOfWork { return uow.New(manager, nil, nil) },
		func(u *uow.UnitOfWork) *repository.Repository[model.Coupon] { return u.Coupons() },
		model.CouponCascades,
		nil,
	)
}

func getProduct(t *testing.T, manager *db.Manager, id int, withDeleted bool) *model.Product {
	t.Helper()
	u := uow.New(manager, nil, nil)
	defer u.Close()
	got, err := u.Products().GetByID(context.Background(), id, withDeleted)
	require.NoError(t, err)
	return got
}

func TestSoftDeleteAndRestore(t *testing.T) {
	manager := testsupport.OpenDB(t)
	seeded := testsupport.SeedCatalog(t, manager, nil)
	svc := productService(manager)
	ctx := context.Background()
	id := seeded["Pizza Margherita"].ID

	require.NoError(t, svc.SoftDelete(ctx, id, "admin"))

	// Hidden from active reads, still present with the deleted flag.
	assert.Nil(t, getProduct(t, manager, id, false))
	flagged := getProduct(t, manager, id, true)
	require.NotNil(t, flagged)
	assert.True(t, flagged.IsDeleted())
	require.NotNil(t, flagged.DeletedBy)
	assert.Equal(t, "admin", *flagged.DeletedBy)
	require.NotNil(t, flagged.DeletedAt)

	require.NoError(t, svc.Restore(ctx, id))

	restored := getProduct(t, manager, id, false)
	require.NotNil(t, restored)
	assert.False(t, restored.IsDeleted())
	assert.Nil(t, restored.DeletedBy)
	assert.Nil(t, restored.DeletedAt)
}

func TestSoftDeleteIdempotentRefresh(t *testing.T) {
	manager := testsupport.OpenDB(t)
	seeded := testsupport.SeedCatalog(t, manager, nil)
	svc := productService(manager)
	ctx := context.Background()
	id := seeded["Cheeseburger"].ID

	require.NoError(t, svc.SoftDelete(ctx, id, "first"))
	require.NoError(t, svc.SoftDelete(ctx, id, "second"))

	flagged := getProduct(t, manager, id, true)
	require.NotNil(t, flagged)
	require.NotNil(t, flagged.DeletedBy)
	assert.Equal(t, "second", *flagged.DeletedBy)
}

func TestSoftDeleteMissingRow(t *testing.T) {
	manager := testsupport.OpenDB(t)
	svc := productService(manager)

	err := svc.SoftDelete(context.Background(), 99999, "admin")
	assert.True(t, repository.IsNotFound(err))

	err = svc.SoftDelete(context.Background(), 0, "admin")
	assert.True(t, repository.IsValidation(err))
}

func TestRestoreActiveRowIsInvalid(t *testing.T) {
	manager := testsupport.OpenDB(t)
	seeded := testsupport.SeedCatalog(t, manager, nil)
	svc := productService(manager)

	err := svc.Restore(context.Background(), seeded["Pizza Margherita"].ID)
	assert.True(t, repository.IsInvalidState(err))
}

func TestPurgeCascades(t *testing.T) {
	manager := testsupport.OpenDB(t)
	seeded := testsupport.SeedCatalog(t, manager, nil)
	svc := productService(manager)
	ctx := context.Background()
	id := seeded["Pizza Margherita"].ID
	testsupport.AttachDependents(t, manager, id, 3, 2, 1)

	require.NoError(t, svc.Purge(ctx, id))

	assert.Nil(t, getProduct(t, manager, id, true), "purged row must be gone entirely")

	u := uow.New(manager, nil, nil)
	defer u.Close()
	byProduct := db.Where("product_id", db.Equal, id)
	for _, count := range []func() (int64, error){
		func() (int64, error) { return u.ProductComments().Count(ctx, byProduct) },
		func() (int64, error) { return u.ProductImages().Count(ctx, byProduct) },
		func() (int64, error) { return u.ProductDetails().Count(ctx, byProduct) },
		func() (int64, error) { return u.CartLines().Count(ctx, byProduct) },
		func() (int64, error) { return u.WishlistEntries().Count(ctx, byProduct) },
		func() (int64, error) { return u.OrderLines().Count(ctx, byProduct) },
	} {
		n, err := count()
		require.NoError(t, err)
		assert.Zero(t, n)
	}

	// Unrelated products survive the purge.
	assert.NotNil(t, getProduct(t, manager, seeded["Cheeseburger"].ID, false))
}

func TestPurgeMissingRow(t *testing.T) {
	manager := testsupport.OpenDB(t)
	svc := productService(manager)

	err := svc.Purge(context.Background(), 99999)
	assert.True(t, repository.IsNotFound(err))
}

func TestPurgeSoftDeletedRow(t *testing.T) {
	// Purge is the second step of the usual flow: soft delete, then purge.
	manager := testsupport.OpenDB(t)
	seeded := testsupport.SeedCatalog(t, manager, nil)
	svc := productService(manager)
	ctx := context.Background()
	id := seeded["Sushi Rolls"].ID

	require.NoError(t, svc.SoftDelete(ctx, id, "admin"))
	require.NoError(t, svc.Purge(ctx, id))
	assert.Nil(t, getProduct(t, manager, id, true))
}

func TestPurgeCouponRemovesConditions(t *testing.T) {
	manager := testsupport.OpenDB(t)
	svc := couponService(manager)
	ctx := context.Background()

	u := uow.New(manager, nil, nil)
	coupon := &model.Coupon{Code: "SAVE20", Value: 20, Percent: true, IsActive: true}
	u.Coupons().Upsert(coupon)
	require.NoError(t, u.SaveChanges(ctx))
	u.CouponConditions().Upsert(&model.CouponCondition{CouponID: coupon.ID, Attribute: "total", Operator: ">=", Value: 100})
	require.NoError(t, u.SaveChanges(ctx))
	u.Close()

	require.NoError(t, svc.Purge(ctx, coupon.ID))

	check := uow.New(manager, nil, nil)
	defer check.Close()
	n, err := check.CouponConditions().Count(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	got, err := check.Coupons().GetByID(ctx, coupon.ID, true)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListDeleted(t *testing.T) {
	manager := testsupport.OpenDB(t)
	seeded := testsupport.SeedCatalog(t, manager, nil)
	svc := productService(manager)
	ctx := context.Background()

	// Nothing deleted yet: an empty successful result, not an error.
	deleted, err := svc.ListDeleted(ctx)
	require.NoError(t, err)
	assert.Empty(t, deleted)

	require.NoError(t, svc.SoftDelete(ctx, seeded["Pizza Margherita"].ID, "admin"))

	deleted, err = svc.ListDeleted(ctx)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, "Pizza Margherita", deleted[0].Name)
}
