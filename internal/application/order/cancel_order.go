package order

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/nguyenthequang0802/bookshop/internal/domain/book"
	"github.com/nguyenthequang0802/bookshop/internal/domain/order"
	"github.com/nguyenthequang0802/bookshop/pkg/metrics"
	"github.com/nguyenthequang0802/bookshop/pkg/tracing"
)

// CancelOrderUseCase 取消订单用例
// 设计说明：
// 1. 回补库存与删除订单在同一事务中,保证"取消=完全抵消结算"
// 2. 以删除的RowsAffected判定订单存在性：
//    并发重复取消时只有第一个请求成功,库存只回补一次
type CancelOrderUseCase struct {
	orderRepo order.Repository
	bookRepo  book.Repository
	txManager TxManager
	events    EventPublisher
}

// NewCancelOrderUseCase 创建取消订单用例
func NewCancelOrderUseCase(
	orderRepo order.Repository,
	bookRepo book.Repository,
	txManager TxManager,
	events EventPublisher,
) *CancelOrderUseCase {
	return &CancelOrderUseCase{
		orderRepo: orderRepo,
		bookRepo:  bookRepo,
		txManager: txManager,
		events:    events,
	}
}

// CancelOrderRequest 取消订单请求DTO
type CancelOrderRequest struct {
	OrderID uint
}

// Execute 执行取消订单
// 流程（全部在一个事务中）：
//  1. 查找订单,不存在（含已取消）返回ErrOrderNotFound
//  2. 回补库存（+Quantity）
//  3. 删除订单记录
func (uc *CancelOrderUseCase) Execute(ctx context.Context, req CancelOrderRequest) error {
	ctx, span := tracing.StartSpan(ctx, "application/order", "CancelOrder")
	defer span.End()
	span.SetAttributes(attribute.Int("order.id", int(req.OrderID)))

	var cancelled *order.Order
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 查找订单
		o, err := uc.orderRepo.FindByID(txCtx, req.OrderID)
		if err != nil {
			return err // ErrOrderNotFound
		}

		// 2. 回补库存
		if err := uc.bookRepo.UpdateStock(txCtx, o.BookID, o.Quantity); err != nil {
			return err
		}

		// 3. 删除订单（RowsAffected==0说明已被并发取消,回滚回补）
		if err := uc.orderRepo.Delete(txCtx, o.ID); err != nil {
			return err
		}

		cancelled = o
		return nil
	})
	if err != nil {
		return err
	}

	metrics.OrdersCancelledTotal.Inc()

	event := OrderCancelledEvent{
		OrderID:     cancelled.ID,
		OrderNo:     cancelled.OrderNo,
		UserID:      cancelled.UserID,
		BookID:      cancelled.BookID,
		Quantity:    cancelled.Quantity,
		CancelledAt: time.Now(),
	}
	if err := uc.events.PublishOrderCancelled(ctx, event); err != nil {
		log.Printf("发布订单取消事件失败 order_no=%s: %v", cancelled.OrderNo, err)
	}

	return nil
}
