package model

// ListSpec declares how a kind is listed: which request sort keys are
// allowed and what they map to, the fallback order for anything else, and
// the column free-text keyword filtering applies to.
//
// Sort keys reaching the store layer come only from these maps, never from
// free-form request strings.
type ListSpec struct {
	SortColumns map[string]string
	DefaultSort string
	KeywordCol  string
}

// OrderBy resolves a request sort key. Unknown keys fall back to the
// default order instead of failing, so list endpoints tolerate stale or
// misspelled sort parameters.
func (s ListSpec) OrderBy(sort string) string {
	if clause, ok := s.SortColumns[sort]; ok {
		return clause
	}
	return s.DefaultSort
}

var ProductList = ListSpec{
	SortColumns: map[string]string{
		"Id-ASC":     "product_id ASC",
		"Id-DESC":    "product_id DESC",
		"Name-ASC":   "name ASC",
		"Name-DESC":  "name DESC",
		"Price-ASC":  "price ASC",
		"Price-DESC": "price DESC",
	},
	DefaultSort: "product_id DESC",
	KeywordCol:  "name",
}

var CategoryList = ListSpec{
	SortColumns: map[string]string{
		"Id-ASC":    "category_id ASC",
		"Id-DESC":   "category_id DESC",
		"Name-ASC":  "name ASC",
		"Name-DESC": "name DESC",
	},
	DefaultSort: "category_id DESC",
	KeywordCol:  "name",
}

var CouponList = ListSpec{
	SortColumns: map[string]string{
		"Id-ASC":    "coupon_id ASC",
		"Id-DESC":   "coupon_id DESC",
		"Code-ASC":  "code ASC",
		"Code-DESC": "code DESC",
	},
	DefaultSort: "coupon_id DESC",
	KeywordCol:  "code",
}

var OrderList = ListSpec{
	SortColumns: map[string]string{
		"Id-ASC":     "order_id ASC",
		"Id-DESC":    "order_id DESC",
		"Total-ASC":  "total ASC",
		"Total-DESC": "total DESC",
	},
	DefaultSort: "order_id DESC",
	KeywordCol:  "status",
}

// Dependent collections are listed by insertion order only; they are
// queried by foreign key, not browsed.
var (
	ProductDetailList   = ListSpec{DefaultSort: "product_detail_id ASC"}
	ProductImageList    = ListSpec{DefaultSort: "product_image_id ASC"}
	ProductCommentList  = ListSpec{DefaultSort: "product_comment_id ASC"}
	CartLineList        = ListSpec{DefaultSort: "cart_line_id ASC"}
	WishlistEntryList   = ListSpec{DefaultSort: "wishlist_entry_id ASC"}
	OrderLineList       = ListSpec{DefaultSort: "order_line_id ASC"}
	CouponConditionList = ListSpec{DefaultSort: "coupon_condition_id ASC"}
)
