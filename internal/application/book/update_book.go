package book

import (
	"context"

	"github.com/nguyenthequang0802/bookshop/internal/domain/book"
)

// UpdateBookUseCase 更新图书信息用例
type UpdateBookUseCase struct {
	bookService book.Service
}

// NewUpdateBookUseCase 创建更新图书用例
func NewUpdateBookUseCase(bookService book.Service) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService}
}

// UpdateBookRequest 更新图书请求DTO
// 空字段表示不修改
type UpdateBookRequest struct {
	ID          uint
	Title       string
	Author      string
	Publisher   string
	Description string
}

// Execute 执行更新图书信息
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (*BookResponse, error) {
	b, err := uc.bookService.UpdateBookInfo(ctx, req.ID, req.Title, req.Author, req.Publisher, req.Description)
	if err != nil {
		return nil, err
	}
	return toBookResponse(b), nil
}
