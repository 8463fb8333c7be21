package book

import (
	"context"
	"errors"

	"github.com/nguyenthequang0802/bookshop/internal/domain/book"
	"github.com/nguyenthequang0802/bookshop/pkg/metrics"
)

// AdjustStockUseCase 库存调整用例
// 用于进货（正数）和盘亏（负数）,不经过订单流程
type AdjustStockUseCase struct {
	bookService book.Service
}

// NewAdjustStockUseCase 创建库存调整用例
func NewAdjustStockUseCase(bookService book.Service) *AdjustStockUseCase {
	return &AdjustStockUseCase{bookService: bookService}
}

// AdjustStockRequest 库存调整请求DTO
type AdjustStockRequest struct {
	BookID uint
	Delta  int // 正数进货,负数盘亏
}

// Execute 执行库存调整
// 调整后库存不能为负:被拒绝的调整不产生任何变更
func (uc *AdjustStockUseCase) Execute(ctx context.Context, req AdjustStockRequest) error {
	err := uc.bookService.AdjustStock(ctx, req.BookID, req.Delta)
	if err != nil {
		if errors.Is(err, book.ErrInsufficientStock) {
			metrics.StockRejectionsTotal.WithLabelValues("adjust").Inc()
		}
		return err
	}
	return nil
}
