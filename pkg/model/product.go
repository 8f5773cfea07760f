package model

import "time"

// Product is the central catalog kind. Dependent rows reference it by
// ProductID and must be removed before the product itself is purged.
type Product struct {
	ID          int     `gorm:"column:product_id;primaryKey;autoIncrement" json:"productId"`
	CategoryID  int     `gorm:"column:category_id;index" json:"categoryId"`
	Name        string  `gorm:"column:name;size:255" json:"name"`
	Slug        string  `gorm:"column:slug;size:255" json:"slug"`
	Price       float64 `gorm:"column:price" json:"price"`
	Discount    float64 `gorm:"column:discount" json:"discount"`
	Description string  `gorm:"column:description" json:"description"`
	Image       string  `gorm:"column:image;size:500" json:"image"`
	IsActive    bool    `gorm:"column:is_active" json:"isActive"`
	Audit

	Details  []ProductDetail  `gorm:"foreignKey:ProductID" json:"details,omitempty"`
	Comments []ProductComment `gorm:"foreignKey:ProductID" json:"comments,omitempty"`
	Images   []ProductImage   `gorm:"foreignKey:ProductID" json:"images,omitempty"`
}

func (Product) TableName() string { return "products" }
func (p Product) GetID() int      { return p.ID }

// ProductDetail holds one named attribute of a product (size, origin, ...).
type ProductDetail struct {
	ID        int       `gorm:"column:product_detail_id;primaryKey;autoIncrement" json:"productDetailId"`
	ProductID int       `gorm:"column:product_id;index" json:"productId"`
	Name      string    `gorm:"column:name;size:255" json:"name"`
	Value     string    `gorm:"column:value;size:500" json:"value"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (ProductDetail) TableName() string { return "product_details" }
func (d ProductDetail) GetID() int      { return d.ID }

// ProductImage is an additional gallery image for a product.
type ProductImage struct {
	ID        int       `gorm:"column:product_image_id;primaryKey;autoIncrement" json:"productImageId"`
	ProductID int       `gorm:"column:product_id;index" json:"productId"`
	Path      string    `gorm:"column:path;size:500" json:"path"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (ProductImage) TableName() string { return "product_images" }
func (i ProductImage) GetID() int      { return i.ID }

// ProductComment is a user comment attached to a product.
type ProductComment struct {
	ID        int       `gorm:"column:product_comment_id;primaryKey;autoIncrement" json:"productCommentId"`
	ProductID int       `gorm:"column:product_id;index" json:"productId"`
	UserID    int       `gorm:"column:user_id;index" json:"userId"`
	Content   string    `gorm:"column:content" json:"content"`
	Rating    int       `gorm:"column:rating" json:"rating"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (ProductComment) TableName() string { return "product_comments" }
func (c ProductComment) GetID() int      { return c.ID }

// CartLine is one product entry in a user's cart.
type CartLine struct {
	ID        int       `gorm:"column:cart_line_id;primaryKey;autoIncrement" json:"cartLineId"`
	ProductID int       `gorm:"column:product_id;index" json:"productId"`
	UserID    int       `gorm:"column:user_id;index" json:"userId"`
	Quantity  int       `gorm:"column:quantity" json:"quantity"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (CartLine) TableName() string { return "cart_lines" }
func (c CartLine) GetID() int      { return c.ID }

// WishlistEntry marks a product a user wants to keep an eye on.
type WishlistEntry struct {
	ID        int       `gorm:"column:wishlist_entry_id;primaryKey;autoIncrement" json:"wishlistEntryId"`
	ProductID int       `gorm:"column:product_id;index" json:"productId"`
	UserID    int       `gorm:"column:user_id;index" json:"userId"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (WishlistEntry) TableName() string { return "wishlist_entries" }
func (w WishlistEntry) GetID() int      { return w.ID }
