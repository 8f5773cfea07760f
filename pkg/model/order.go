package model

import "time"

// Order is a placed order; its lines reference products.
type Order struct {
	ID     int     `gorm:"column:order_id;primaryKey;autoIncrement" json:"orderId"`
	UserID int     `gorm:"column:user_id;index" json:"userId"`
	Total  float64 `gorm:"column:total" json:"total"`
	Status string  `gorm:"column:status;size:50" json:"status"`
	Audit

	Lines []OrderLine `gorm:"foreignKey:OrderID" json:"lines,omitempty"`
}

func (Order) TableName() string { return "orders" }
func (o Order) GetID() int      { return o.ID }

// OrderLine is one product position within an order. It references both the
// order and the product, so it shows up in both cascade rule sets.
type OrderLine struct {
	ID        int       `gorm:"column:order_line_id;primaryKey;autoIncrement" json:"orderLineId"`
	OrderID   int       `gorm:"column:order_id;index" json:"orderId"`
	ProductID int       `gorm:"column:product_id;index" json:"productId"`
	Quantity  int       `gorm:"column:quantity" json:"quantity"`
	UnitPrice float64   `gorm:"column:unit_price" json:"unitPrice"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

func (OrderLine) TableName() string { return "order_lines" }
func (l OrderLine) GetID() int      { return l.ID }
