package model

// Category groups products. Products reference it by CategoryID; the
// category cascade removes those references before purging.
type Category struct {
	ID          int    `gorm:"column:category_id;primaryKey;autoIncrement" json:"categoryId"`
	Name        string `gorm:"column:name;size:255" json:"name"`
	Slug        string `gorm:"column:slug;size:255" json:"slug"`
	Description string `gorm:"column:description" json:"description"`
	IsActive    bool   `gorm:"column:is_active" json:"isActive"`
	Audit
}

func (Category) TableName() string { return "categories" }
func (c Category) GetID() int      { return c.ID }

// Coupon is a discount voucher. Value is an absolute amount unless Percent
// is set, in which case it is a percentage of the order total.
type Coupon struct {
	ID          int     `gorm:"column:coupon_id;primaryKey;autoIncrement" json:"couponId"`
	Code        string  `gorm:"column:code;size:100;uniqueIndex" json:"code"`
	Value       float64 `gorm:"column:value" json:"value"`
	Percent     bool    `gorm:"column:percent" json:"percent"`
	Description string  `gorm:"column:description" json:"description"`
	IsActive    bool    `gorm:"column:is_active" json:"isActive"`
	Audit

	Conditions []CouponCondition `gorm:"foreignKey:CouponID" json:"conditions,omitempty"`
}

func (Coupon) TableName() string { return "coupons" }
func (c Coupon) GetID() int      { return c.ID }

// Discount returns the coupon's value applied to an order total.
func (c Coupon) Discount(total float64) float64 {
	if c.Percent {
		return total * c.Value / 100
	}
	if c.Value > total {
		return total
	}
	return c.Value
}

// CouponCondition restricts when a coupon applies, e.g. a minimum total.
type CouponCondition struct {
	ID        int     `gorm:"column:coupon_condition_id;primaryKey;autoIncrement" json:"couponConditionId"`
	CouponID  int     `gorm:"column:coupon_id;index" json:"couponId"`
	Attribute string  `gorm:"column:attribute;size:100" json:"attribute"`
	Operator  string  `gorm:"column:operator;size:20" json:"operator"`
	Value     float64 `gorm:"column:value" json:"value"`
}

func (CouponCondition) TableName() string { return "coupon_conditions" }
func (c CouponCondition) GetID() int      { return c.ID }
