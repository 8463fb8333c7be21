package book

import (
	"context"

	"github.com/nguyenthequang0802/bookshop/internal/domain/book"
)

// GetBookUseCase 查询图书用例
type GetBookUseCase struct {
	bookService book.Service
}

// NewGetBookUseCase 创建查询图书用例
func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{bookService: bookService}
}

// Execute 根据ID查询图书
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*BookResponse, error) {
	b, err := uc.bookService.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBookResponse(b), nil
}
