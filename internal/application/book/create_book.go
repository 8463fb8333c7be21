package book

import (
	"context"

	"github.com/nguyenthequang0802/bookshop/internal/domain/book"
)

// CreateBookUseCase 创建图书用例
type CreateBookUseCase struct {
	bookService book.Service
}

// NewCreateBookUseCase 创建图书用例
func NewCreateBookUseCase(bookService book.Service) *CreateBookUseCase {
	return &CreateBookUseCase{bookService: bookService}
}

// CreateBookRequest 创建图书请求DTO
type CreateBookRequest struct {
	Title       string
	Author      string
	Publisher   string
	ISBN        string
	Price       int64 // 单位:分
	Stock       int
	Description string
}

// BookResponse 图书响应DTO（创建/查询/更新共用）
type BookResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Publisher   string `json:"publisher"`
	ISBN        string `json:"isbn"`
	Price       int64  `json:"price"`
	Stock       int    `json:"stock"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

// Execute 执行创建图书
// 校验规则在领域服务中：书名、作者非空,价格为正,按此顺序报第一个错误
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*BookResponse, error) {
	b, err := uc.bookService.CreateBook(ctx, req.Title, req.Author, req.Publisher, req.ISBN, req.Price, req.Stock, req.Description)
	if err != nil {
		return nil, err
	}

	return toBookResponse(b), nil
}

// toBookResponse 领域实体 → 应用层DTO
func toBookResponse(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Publisher:   b.Publisher,
		ISBN:        b.ISBN,
		Price:       b.Price,
		Stock:       b.Stock,
		Description: b.Description,
		CreatedAt:   b.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
