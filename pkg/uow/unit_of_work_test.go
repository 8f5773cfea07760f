package uow_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammar0144/shopcore/pkg/model"
	"github.com/ammar0144/shopcore/pkg/repository"
	"github.com/ammar0144/shopcore/pkg/testsupport"
	"github.com/ammar0144/shopcore/pkg/uow"
)

func TestSaveChangesNothingPending(t *testing.T) {
	manager := testsupport.OpenDB(t)
	u := uow.New(manager, nil, nil)
	defer u.Close()

	assert.NoError(t, u.SaveChanges(context.Background()))
}

func TestSaveChangesAtomicity(t *testing.T) {
	manager := testsupport.OpenDB(t)
	ctx := context.Background()

	u := uow.New(manager, nil, nil)
	defer u.Close()

	// A valid insert queued before a doomed update: neither may persist.
	u.Categories().Upsert(&model.Category{Name: "Sides", Slug: "sides"})
	u.Categories().Upsert(&model.Category{ID: 31337, Name: "Ghost"})
	err := u.SaveChanges(ctx)
	require.True(t, repository.IsNotFound(err))

	n, err := u.Categories().Count(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n, "failed save must roll back every queued mutation")
}

func TestSaveChangesRunsInQueueOrder(t *testing.T) {
	manager := testsupport.OpenDB(t)
	ctx := context.Background()

	u := uow.New(manager, nil, nil)
	defer u.Close()

	// The update targets the row created earlier in the same flush, so it
	// only succeeds if mutations run in program order.
	cat := &model.Category{Name: "Starters", Slug: "starters"}
	u.Categories().Upsert(cat)
	require.NoError(t, u.SaveChanges(ctx))

	cat.Name = "Appetizers"
	u.Categories().Upsert(cat)
	u.Categories().Upsert(&model.Category{Name: "Mains", Slug: "mains"})
	require.NoError(t, u.SaveChanges(ctx))

	got, err := u.Categories().GetByID(ctx, cat.ID, false)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Appetizers", got.Name)
}

func TestExplicitTransactionCommit(t *testing.T) {
	manager := testsupport.OpenDB(t)
	ctx := context.Background()

	u := uow.New(manager, nil, nil)
	defer u.Close()

	require.NoError(t, u.Begin(ctx))
	u.Categories().Upsert(&model.Category{Name: "Desserts", Slug: "desserts"})
	require.NoError(t, u.SaveChanges(ctx))
	require.NoError(t, u.Commit(ctx))

	n, err := u.Categories().Count(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestExplicitTransactionRollback(t *testing.T) {
	manager := testsupport.OpenDB(t)
	ctx := context.Background()

	u := uow.New(manager, nil, nil)
	defer u.Close()

	require.NoError(t, u.Begin(ctx))
	u.Categories().Upsert(&model.Category{Name: "Desserts", Slug: "desserts"})
	require.NoError(t, u.SaveChanges(ctx))
	require.NoError(t, u.Rollback())

	n, err := u.Categories().Count(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRollbackWithoutTransactionIsNoop(t *testing.T) {
	manager := testsupport.OpenDB(t)
	u := uow.New(manager, nil, nil)
	defer u.Close()

	assert.NoError(t, u.Rollback())
}

func TestBeginTwiceFails(t *testing.T) {
	manager := testsupport.OpenDB(t)
	ctx := context.Background()

	u := uow.New(manager, nil, nil)
	defer u.Close()

	require.NoError(t, u.Begin(ctx))
	assert.Error(t, u.Begin(ctx))
	require.NoError(t, u.Rollback())
}

func TestCloseRollsBackAndIsIdempotent(t *testing.T) {
	manager := testsupport.OpenDB(t)
	ctx := context.Background()

	u := uow.New(manager, nil, nil)
	require.NoError(t, u.Begin(ctx))
	u.Categories().Upsert(&model.Category{Name: "Doomed", Slug: "doomed"})
	require.NoError(t, u.SaveChanges(ctx))

	u.Close()
	u.Close()

	check := uow.New(manager, nil, nil)
	defer check.Close()
	n, err := check.Categories().Count(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n, "close must discard the uncommitted transaction")

	assert.Error(t, u.SaveChanges(ctx))
	assert.Error(t, u.Begin(ctx))
}

func TestRepositoryAccessorsAreStable(t *testing.T) {
	manager := testsupport.OpenDB(t)
	u := uow.New(manager, nil, nil)
	defer u.Close()

	assert.Same(t, u.Products(), u.Products())
	assert.Same(t, u.Orders(), u.Orders())
	assert.Equal(t, "products", u.Products().Table())
	assert.Equal(t, "order_lines", u.OrderLines().Table())
	assert.Equal(t, "wishlist_entries", u.WishlistEntries().Table())
}

func TestSaveChangesHonorsCancellation(t *testing.T) {
	manager := testsupport.OpenDB(t)

	u := uow.New(manager, nil, nil)
	defer u.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	u.Categories().Upsert(&model.Category{Name: "Never", Slug: "never"})
	err := u.SaveChanges(ctx)
	require.Error(t, err)

	n, err := u.Categories().Count(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
