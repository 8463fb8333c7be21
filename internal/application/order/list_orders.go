package order

import (
	"context"

	"github.com/nguyenthequang0802/bookshop/internal/domain/order"
)

// ListOrdersUseCase 订单列表用例
type ListOrdersUseCase struct {
	orderRepo order.Repository
}

// NewListOrdersUseCase 创建订单列表用例
func NewListOrdersUseCase(orderRepo order.Repository) *ListOrdersUseCase {
	return &ListOrdersUseCase{orderRepo: orderRepo}
}

// ListOrdersRequest 订单列表请求DTO
type ListOrdersRequest struct {
	UserID   uint
	Page     int
	PageSize int
}

// OrderItem 订单列表项DTO
type OrderItem struct {
	OrderID   uint   `json:"order_id"`
	OrderNo   string `json:"order_no"`
	BookID    uint   `json:"book_id"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
	Total     int64  `json:"total"`
	TotalYuan string `json:"total_yuan"`
	CreatedAt string `json:"created_at"`
}

// ListOrdersResponse 订单列表响应DTO
type ListOrdersResponse struct {
	Orders []OrderItem `json:"orders"`
	Total  int64       `json:"total"`
}

// Execute 查询用户的订单列表（按创建时间倒序,分页）
func (uc *ListOrdersUseCase) Execute(ctx context.Context, req ListOrdersRequest) (*ListOrdersResponse, error) {
	// 分页参数兜底
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 10
	}

	orders, total, err := uc.orderRepo.ListByUserID(ctx, req.UserID, req.Page, req.PageSize)
	if err != nil {
		return nil, err
	}

	items := make([]OrderItem, len(orders))
	for i, o := range orders {
		items[i] = OrderItem{
			OrderID:   o.ID,
			OrderNo:   o.OrderNo,
			BookID:    o.BookID,
			Quantity:  o.Quantity,
			Price:     o.Price,
			Total:     o.Total(),
			TotalYuan: formatPrice(o.Total()),
			CreatedAt: o.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}

	return &ListOrdersResponse{Orders: items, Total: total}, nil
}
