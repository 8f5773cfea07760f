package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Pizza Margherita", "pizza-margherita"},
		{"  Sushi  Rolls  ", "sushi-rolls"},
		{"Déjà Vu Café", "dj-vu-caf"},
		{"UPPER_case-mixed", "upper-case-mixed"},
		{"--already-slugged--", "already-slugged"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "input %q", tc.in)
	}
}

func TestListSpecOrderBy(t *testing.T) {
	assert.Equal(t, "name ASC", ProductList.OrderBy("Name-ASC"))
	assert.Equal(t, "price DESC", ProductList.OrderBy("Price-DESC"))

	// Unknown and empty keys fall back to the default instead of failing.
	assert.Equal(t, "product_id DESC", ProductList.OrderBy("Bogus-ASC"))
	assert.Equal(t, "product_id DESC", ProductList.OrderBy(""))
	assert.Equal(t, "coupon_id DESC", CouponList.OrderBy("name ASC; DROP TABLE coupons"))
}

func TestAuditDeleteLifecycle(t *testing.T) {
	var a Audit
	require.False(t, a.IsDeleted())
	require.Nil(t, a.DeletedAt)

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a.MarkDeleted("admin", at)
	assert.True(t, a.IsDeleted())
	require.NotNil(t, a.DeletedBy)
	assert.Equal(t, "admin", *a.DeletedBy)
	require.NotNil(t, a.DeletedAt)
	assert.Equal(t, at, *a.DeletedAt)

	// Marking again refreshes the metadata rather than erroring.
	later := at.Add(time.Hour)
	a.MarkDeleted("other", later)
	assert.Equal(t, "other", *a.DeletedBy)
	assert.Equal(t, later, *a.DeletedAt)

	a.ClearDeleted()
	assert.False(t, a.IsDeleted())
	assert.Nil(t, a.DeletedBy)
	assert.Nil(t, a.DeletedAt)
}

func TestCouponDiscount(t *testing.T) {
	percent := Coupon{Value: 20, Percent: true}
	assert.InDelta(t, 30.0, percent.Discount(150), 1e-9)

	absolute := Coupon{Value: 50}
	assert.InDelta(t, 50.0, absolute.Discount(150), 1e-9)

	// An absolute discount never exceeds the total.
	assert.InDelta(t, 30.0, absolute.Discount(30), 1e-9)
}

func TestProductCascadesCoverDependents(t *testing.T) {
	tables := make([]string, 0, len(ProductCascades))
	for _, rule := range ProductCascades {
		assert.Equal(t, "product_id", rule.ForeignKey)
		proto := rule.Prototype()
		assert.Equal(t, rule.Table, proto.TableName())
		tables = append(tables, rule.Table)
	}
	assert.Equal(t, []string{
		"product_comments", "product_images", "product_details",
		"cart_lines", "wishlist_entries", "order_lines",
	}, tables)
}

func TestSoftDeletableKinds(t *testing.T) {
	// Kinds embedding Audit take part in the lifecycle; dependents do not.
	var (
		_ SoftDeletable = &Product{}
		_ SoftDeletable = &Category{}
		_ SoftDeletable = &Coupon{}
		_ SoftDeletable = &Order{}
	)
	_, soft := any(&ProductComment{}).(SoftDeletable)
	assert.False(t, soft)
	_, soft = any(&OrderLine{}).(SoftDeletable)
	assert.False(t, soft)
}
