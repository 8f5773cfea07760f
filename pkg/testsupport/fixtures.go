// Package testsupport provides shared fixtures for store-backed tests: an
// in-memory SQLite database migrated with every kind, and the demo catalog
// rows used by scenario tests.
package testsupport

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"

	"github.com/ammar0144/shopcore/pkg/cache"
	"github.com/ammar0144/shopcore/pkg/db"
	"github.com/ammar0144/shopcore/pkg/model"
	"github.com/ammar0144/shopcore/pkg/uow"
)

var dbSeq atomic.Int64

// OpenDB opens a fresh in-memory database and migrates the full schema.
// Each call gets its own database so tests stay isolated; the shared-cache
// DSN keeps it alive across pooled connections.
func OpenDB(t *testing.T) *db.Manager {
	t.Helper()

	dsn := fmt.Sprintf("file:shopcore_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	cfg := &db.Config{
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Hour,
		QueryTimeout:    5 * time.Second,
		LogLevel:        "silent",
	}
	manager, err := db.Open(sqlite.Open(dsn), cfg)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = manager.Close() })

	if err := manager.DB().AutoMigrate(model.AllModels()...); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return manager
}

// SeedCatalog inserts the demo category and products and returns the
// persisted products keyed by name.
func SeedCatalog(t *testing.T, manager *db.Manager, cs *cache.Store) map[string]model.Product {
	t.Helper()
	ctx := context.Background()

	u := uow.New(manager, cs, nil)
	defer u.Close()

	pizza := &model.Category{Name: "Pizza", Slug: model.Slugify("Pizza"), Description: "Delicious pizza with various toppings.", IsActive: true}
	burger := &model.Category{Name: "Burger", Slug: model.Slugify("Burger"), Description: "Juicy burgers with fresh ingredients.", IsActive: true}
	u.Categories().Upsert(pizza)
	u.Categories().Upsert(burger)
	if err := u.SaveChanges(ctx); err != nil {
		t.Fatalf("seed categories: %v", err)
	}

	products := []*model.Product{
		{
			CategoryID: pizza.ID, Name: "Pizza Margherita", Slug: model.Slugify("Pizza Margherita"),
			Price: 150, Discount: 20, IsActive: true,
			Description: "Classic pizza with fresh tomatoes, mozzarella, and basil.",
		},
		{
			CategoryID: burger.ID, Name: "Cheeseburger", Slug: model.Slugify("Cheeseburger"),
			Price: 100, Discount: 10, IsActive: true,
			Description: "Juicy cheeseburger with fresh lettuce and tomato.",
		},
		{
			CategoryID: pizza.ID, Name: "Sushi Rolls", Slug: model.Slugify("Sushi Rolls"),
			Price: 200, IsActive: true,
			Description: "Fresh sushi rolls with tuna, salmon, and avocado.",
		},
	}
	for _, p := range products {
		u.Products().Upsert(p)
	}
	if err := u.SaveChanges(ctx); err != nil {
		t.Fatalf("seed products: %v", err)
	}

	out := make(map[string]model.Product, len(products))
	for _, p := range products {
		out[p.Name] = *p
	}
	return out
}

// AttachDependents inserts comment/image/detail rows referencing the given
// product, for cascade tests.
func AttachDependents(t *testing.T, manager *db.Manager, productID, comments, images, details int) {
	t.Helper()
	ctx := context.Background()

	u := uow.New(manager, nil, nil)
	defer u.Close()

	for i := 0; i < comments; i++ {
		u.ProductComments().Upsert(&model.ProductComment{ProductID: productID, UserID: i + 1, Content: fmt.Sprintf("comment %d", i+1), Rating: 4})
	}
	for i := 0; i < images; i++ {
		u.ProductImages().Upsert(&model.ProductImage{ProductID: productID, Path: fmt.Sprintf("/img/%d.jpg", i+1)})
	}
	for i := 0; i < details; i++ {
		u.ProductDetails().Upsert(&model.ProductDetail{ProductID: productID, Name: fmt.Sprintf("attr-%d", i+1), Value: "v"})
	}
	if err := u.SaveChanges(ctx); err != nil {
		t.Fatalf("seed dependents: %v", err)
	}
}
