package cart

import (
	"context"

	"github.com/nguyenthequang0802/bookshop/internal/domain/book"
	"github.com/nguyenthequang0802/bookshop/internal/domain/cart"
)

// ViewCartUseCase 查看购物车用例
// 组装购物车条目与图书信息,供前端展示
type ViewCartUseCase struct {
	cartService cart.Service
	bookRepo    book.Repository
}

// NewViewCartUseCase 创建查看购物车用例
func NewViewCartUseCase(cartService cart.Service, bookRepo book.Repository) *ViewCartUseCase {
	return &ViewCartUseCase{
		cartService: cartService,
		bookRepo:    bookRepo,
	}
}

// CartItemView 购物车条目视图
type CartItemView struct {
	BookID    uint   `json:"book_id"`
	BookTitle string `json:"book_title"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
}

// ViewCartResponse 查看购物车响应DTO
type ViewCartResponse struct {
	CartID uint          `json:"cart_id"`
	UserID uint          `json:"user_id"`
	Item   *CartItemView `json:"item"` // 空购物车时为null
}

// Execute 查看用户的购物车
// 用户没有购物车时返回ErrCartNotFound
func (uc *ViewCartUseCase) Execute(ctx context.Context, userID uint) (*ViewCartResponse, error) {
	c, err := uc.cartService.ViewCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &ViewCartResponse{
		CartID: c.ID,
		UserID: c.UserID,
	}

	if c.Item == nil {
		return resp, nil
	}

	view := &CartItemView{
		BookID:   c.Item.BookID,
		Quantity: c.Item.Quantity,
	}

	// 图书信息补全失败不影响购物车展示
	if b, err := uc.bookRepo.FindByID(ctx, c.Item.BookID); err == nil {
		view.BookTitle = b.Title
		view.Price = b.Price
		view.Subtotal = b.Price * int64(c.Item.Quantity)
	}

	resp.Item = view
	return resp, nil
}
