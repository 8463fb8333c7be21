package book

import (
	"context"

	"github.com/nguyenthequang0802/bookshop/internal/domain/book"
)

// SearchBooksUseCase 图书搜索用例
type SearchBooksUseCase struct {
	bookService book.Service
}

// NewSearchBooksUseCase 创建图书搜索用例
func NewSearchBooksUseCase(bookService book.Service) *SearchBooksUseCase {
	return &SearchBooksUseCase{bookService: bookService}
}

// SearchBooksResponse 搜索响应DTO
type SearchBooksResponse struct {
	Books []*BookResponse `json:"books"`
	Count int             `json:"count"`
}

// Execute 执行关键词搜索
// 空白关键词在领域服务中被拒绝;无命中时返回空列表而非错误
func (uc *SearchBooksUseCase) Execute(ctx context.Context, keyword string) (*SearchBooksResponse, error) {
	books, err := uc.bookService.SearchBooks(ctx, keyword)
	if err != nil {
		return nil, err
	}

	items := make([]*BookResponse, len(books))
	for i, b := range books {
		items[i] = toBookResponse(b)
	}

	return &SearchBooksResponse{Books: items, Count: len(items)}, nil
}
