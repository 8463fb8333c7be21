package dto

// CreateCartRequest HTTP创建购物车请求
// 数量不设上限校验:超过库存的部分会被自动截断
type CreateCartRequest struct {
	BookID   uint `json:"book_id" binding:"required" example:"1"`
	Quantity int  `json:"quantity" example:"3"`
}

// CreateCartResponse HTTP创建购物车响应
type CreateCartResponse struct {
	CartID   uint `json:"cart_id" example:"1"`
	BookID   uint `json:"book_id" example:"1"`
	Quantity int  `json:"quantity" example:"3"` // 实际入车数量（可能被库存截断）
}

// CartItemView 购物车条目视图
type CartItemView struct {
	BookID    uint   `json:"book_id" example:"1"`
	BookTitle string `json:"book_title" example:"Go语言实战"`
	Price     int64  `json:"price" example:"5900"`
	PriceYuan string `json:"price_yuan" example:"59.00"`
	Quantity  int    `json:"quantity" example:"3"`
	Subtotal  int64  `json:"subtotal" example:"17700"`
}

// ViewCartResponse HTTP查看购物车响应
type ViewCartResponse struct {
	CartID uint          `json:"cart_id" example:"1"`
	Item   *CartItemView `json:"item"` // 空购物车时为null
}
