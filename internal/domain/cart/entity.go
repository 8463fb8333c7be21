package cart

import (
	"time"
)

// CartItem 购物车条目实体
// 记录要购买的图书与数量,数量在创建时已按库存截断
type CartItem struct {
	ID        uint
	BookID    uint
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCartItem 创建购物车条目（工厂方法）
func NewCartItem(bookID uint, quantity int) *CartItem {
	now := time.Now()
	return &CartItem{
		BookID:    bookID,
		Quantity:  quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Cart 购物车实体（聚合根）
// DDD设计说明：
// 1. Cart是购物车聚合的根实体,通过CartItem持有待购图书
// 2. 当前模型每个购物车只含一个条目,结算后整个购物车被删除
// 3. Item可能为nil（条目被单独删除后的空购物车）,结算时需要判空
type Cart struct {
	ID        uint
	UserID    uint
	Item      *CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCart 创建购物车（工厂方法）
func NewCart(userID uint, item *CartItem) *Cart {
	now := time.Now()
	return &Cart{
		UserID:    userID,
		Item:      item,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsEmpty 购物车是否为空（无条目）
func (c *Cart) IsEmpty() bool {
	return c.Item == nil
}
