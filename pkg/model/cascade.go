package model

// CascadeRule names one dependent collection that must be cleared before its
// parent row can be hard-deleted. Prototype returns a fresh instance of the
// dependent kind for the store layer to address the right table.
type CascadeRule struct {
	Table      string
	ForeignKey string
	Prototype  func() Entity
}

// ProductCascades lists the collections referencing a product, leaf-most
// first: comment/image/detail rows carry no further references, while cart,
// wishlist and order-line rows may themselves be referenced by other records.
var ProductCascades = []CascadeRule{
	{Table: "product_comments", ForeignKey: "product_id", Prototype: func() Entity { return &ProductComment{} }},
	{Table: "product_images", ForeignKey: "product_id", Prototype: func() Entity { return &ProductImage{} }},
	{Table: "product_details", ForeignKey: "product_id", Prototype: func() Entity { return &ProductDetail{} }},
	{Table: "cart_lines", ForeignKey: "product_id", Prototype: func() Entity { return &CartLine{} }},
	{Table: "wishlist_entries", ForeignKey: "product_id", Prototype: func() Entity { return &WishlistEntry{} }},
	{Table: "order_lines", ForeignKey: "product_id", Prototype: func() Entity { return &OrderLine{} }},
}

// CategoryCascades clears product references to a category. Products are
// soft-deletable in their own right, so only the foreign key rows that would
// dangle are in scope here; purging a whole category of live products is a
// caller decision, not something the lifecycle does implicitly.
var CategoryCascades = []CascadeRule{}

// CouponCascades removes the conditions attached to a coupon.
var CouponCascades = []CascadeRule{
	{Table: "coupon_conditions", ForeignKey: "coupon_id", Prototype: func() Entity { return &CouponCondition{} }},
}

// OrderCascades removes the lines of an order.
var OrderCascades = []CascadeRule{
	{Table: "order_lines", ForeignKey: "order_id", Prototype: func() Entity { return &OrderLine{} }},
}

// AllModels returns prototypes for every kind, in a dependency-safe
// migration order.
func AllModels() []any {
	return []any{
		&Category{}, &Product{}, &ProductDetail{}, &ProductImage{},
		&ProductComment{}, &CartLine{}, &WishlistEntry{},
		&Coupon{}, &CouponCondition{}, &Order{}, &OrderLine{},
	}
}
