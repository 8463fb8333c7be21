package dto

// CheckoutRequest HTTP结算请求
type CheckoutRequest struct {
	CartID uint `json:"cart_id" binding:"required" example:"1"`
}

// CheckoutResponse HTTP结算响应
type CheckoutResponse struct {
	OrderID   uint   `json:"order_id" example:"1"`
	OrderNo   string `json:"order_no" example:"ORD1699248000123456"`
	BookID    uint   `json:"book_id" example:"1"`
	Quantity  int    `json:"quantity" example:"3"`
	Total     int64  `json:"total" example:"17700"`
	TotalYuan string `json:"total_yuan" example:"177.00"`
	CreatedAt string `json:"created_at" example:"2024-01-15 10:30:00"`
}

// OrderListItem HTTP订单列表项
type OrderListItem struct {
	OrderID   uint   `json:"order_id" example:"1"`
	OrderNo   string `json:"order_no" example:"ORD1699248000123456"`
	BookID    uint   `json:"book_id" example:"1"`
	Quantity  int    `json:"quantity" example:"3"`
	Price     int64  `json:"price" example:"5900"`
	Total     int64  `json:"total" example:"17700"`
	TotalYuan string `json:"total_yuan" example:"177.00"`
	CreatedAt string `json:"created_at" example:"2024-01-15 10:30:00"`
}

// ListOrdersRequest HTTP订单列表请求
type ListOrdersRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100" example:"10"`
}

// ListOrdersResponse HTTP订单列表响应
type ListOrdersResponse struct {
	List  []OrderListItem `json:"list"`
	Total int64           `json:"total" example:"2"`
}
