package order

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/nguyenthequang0802/bookshop/internal/domain/book"
	"github.com/nguyenthequang0802/bookshop/internal/domain/cart"
	"github.com/nguyenthequang0802/bookshop/internal/domain/order"
	"github.com/nguyenthequang0802/bookshop/pkg/metrics"
	"github.com/nguyenthequang0802/bookshop/pkg/tracing"
)

// TxManager 事务管理端口
// 由infrastructure/persistence/mysql.TxManager实现,测试时注入直通实现
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// CheckoutUseCase 结算用例
// 设计说明：这是整个项目最核心的用例
// 将购物车一次性转换为订单：锁定购物车和库存、扣减库存、创建订单、删除购物车,
// 全部在同一事务中完成,任一步失败则整体回滚
type CheckoutUseCase struct {
	cartRepo  cart.Repository
	itemRepo  cart.ItemRepository
	bookRepo  book.Repository
	orderRepo order.Repository
	txManager TxManager
	events    EventPublisher
}

// NewCheckoutUseCase 创建结算用例
func NewCheckoutUseCase(
	cartRepo cart.Repository,
	itemRepo cart.ItemRepository,
	bookRepo book.Repository,
	orderRepo order.Repository,
	txManager TxManager,
	events EventPublisher,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		cartRepo:  cartRepo,
		itemRepo:  itemRepo,
		bookRepo:  bookRepo,
		orderRepo: orderRepo,
		txManager: txManager,
		events:    events,
	}
}

// CheckoutRequest 结算请求DTO
type CheckoutRequest struct {
	CartID uint // 要结算的购物车ID
}

// CheckoutResponse 结算响应DTO
type CheckoutResponse struct {
	OrderID   uint   `json:"order_id"`
	OrderNo   string `json:"order_no"`
	BookID    uint   `json:"book_id"`
	Quantity  int    `json:"quantity"`
	Total     int64  `json:"total"`
	TotalYuan string `json:"total_yuan"`
	CreatedAt string `json:"created_at"`
}

// Execute 执行结算
// 核心流程（全部在一个事务中）：
//  1. 锁定购物车（FOR UPDATE,防止同一购物车被并发结算）
//  2. 空购物车直接拒绝
//  3. 锁定图书行并检查库存,数量恰好等于库存时允许结算（清空库存）
//  4. 原子扣减库存
//  5. 以当前价格快照创建订单
//  6. 删除购物车及条目
//
// 入车时的数量截断只是快照,这里以结算时刻的最新库存为准：
// 入车后库存被其他订单消耗的,结算会因库存不足而失败
func (uc *CheckoutUseCase) Execute(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "application/order", "Checkout")
	defer span.End()
	span.SetAttributes(attribute.Int("cart.id", int(req.CartID)))

	start := time.Now()

	var result *order.Order
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 锁定购物车
		c, err := uc.cartRepo.LockByID(txCtx, req.CartID)
		if err != nil {
			return err // ErrCartNotFound
		}

		// 2. 空购物车无法结算
		if c.IsEmpty() {
			return cart.ErrCartEmpty
		}

		// 3. 锁定图书行,检查库存
		b, err := uc.bookRepo.LockByID(txCtx, c.Item.BookID)
		if err != nil {
			return err
		}
		if !b.CanFulfill(c.Item.Quantity) {
			metrics.StockRejectionsTotal.WithLabelValues("checkout").Inc()
			return book.ErrInsufficientStock
		}

		// 4. 原子扣减库存
		if err := uc.bookRepo.UpdateStock(txCtx, b.ID, -c.Item.Quantity); err != nil {
			return err
		}

		// 5. 创建订单（价格使用数据库当前价格,防止改价攻击）
		newOrder := order.NewOrder(order.GenerateOrderNo(), c.UserID, b.ID, c.Item.Quantity, b.Price)
		if err := uc.orderRepo.Create(txCtx, newOrder); err != nil {
			return err
		}

		// 6. 删除购物车及条目（购物车是一次性的,结算后即消失）
		if err := uc.itemRepo.Delete(txCtx, c.Item.ID); err != nil {
			return err
		}
		if err := uc.cartRepo.Delete(txCtx, c.ID); err != nil {
			return err
		}

		result = newOrder
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersCheckedOutTotal.Inc()
	metrics.CheckoutDuration.Observe(time.Since(start).Seconds())
	span.SetAttributes(attribute.String("order.no", result.OrderNo))

	// 事务提交后发布事件,失败只记录日志,不影响结算结果
	event := OrderCreatedEvent{
		OrderID:   result.ID,
		OrderNo:   result.OrderNo,
		UserID:    result.UserID,
		BookID:    result.BookID,
		Quantity:  result.Quantity,
		Total:     result.Total(),
		CreatedAt: result.CreatedAt,
	}
	if err := uc.events.PublishOrderCreated(ctx, event); err != nil {
		log.Printf("发布订单创建事件失败 order_no=%s: %v", result.OrderNo, err)
	}

	return &CheckoutResponse{
		OrderID:   result.ID,
		OrderNo:   result.OrderNo,
		BookID:    result.BookID,
		Quantity:  result.Quantity,
		Total:     result.Total(),
		TotalYuan: formatPrice(result.Total()),
		CreatedAt: result.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// formatPrice 格式化价格(分→元)
func formatPrice(priceFen int64) string {
	yuan := float64(priceFen) / 100.0
	return fmt.Sprintf("%.2f", yuan)
}
