package cart

import (
	"context"

	"github.com/nguyenthequang0802/bookshop/internal/domain/cart"
	"github.com/nguyenthequang0802/bookshop/pkg/metrics"
)

// CreateCartUseCase 创建购物车用例
type CreateCartUseCase struct {
	cartService cart.Service
}

// NewCreateCartUseCase 创建购物车用例
func NewCreateCartUseCase(cartService cart.Service) *CreateCartUseCase {
	return &CreateCartUseCase{cartService: cartService}
}

// CreateCartRequest 创建购物车请求DTO
type CreateCartRequest struct {
	UserID   uint // 从JWT中提取
	BookID   uint
	Quantity int
}

// CreateCartResponse 创建购物车响应DTO
type CreateCartResponse struct {
	CartID   uint `json:"cart_id"`
	BookID   uint `json:"book_id"`
	Quantity int  `json:"quantity"` // 实际入车数量（可能被库存截断）
}

// Execute 执行创建购物车
// 请求数量超过库存时按库存截断,响应返回实际入车数量
func (uc *CreateCartUseCase) Execute(ctx context.Context, req CreateCartRequest) (*CreateCartResponse, error) {
	c, err := uc.cartService.CreateCart(ctx, req.UserID, req.BookID, req.Quantity)
	if err != nil {
		return nil, err
	}

	metrics.CartsCreatedTotal.Inc()

	return &CreateCartResponse{
		CartID:   c.ID,
		BookID:   c.Item.BookID,
		Quantity: c.Item.Quantity,
	}, nil
}
