package order

import (
	"context"
	"time"
)

// 订单事件路由键
const (
	RoutingKeyOrderCreated   = "order.created"
	RoutingKeyOrderCancelled = "order.cancelled"
)

// OrderCreatedEvent 订单创建事件
// 结算成功后发布,下游（通知、报表等）订阅消费
type OrderCreatedEvent struct {
	OrderID   uint      `json:"order_id"`
	OrderNo   string    `json:"order_no"`
	UserID    uint      `json:"user_id"`
	BookID    uint      `json:"book_id"`
	Quantity  int       `json:"quantity"`
	Total     int64     `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderCancelledEvent 订单取消事件
type OrderCancelledEvent struct {
	OrderID     uint      `json:"order_id"`
	OrderNo     string    `json:"order_no"`
	UserID      uint      `json:"user_id"`
	BookID      uint      `json:"book_id"`
	Quantity    int       `json:"quantity"`
	CancelledAt time.Time `json:"cancelled_at"`
}

// EventPublisher 订单事件发布端口
// 设计说明：
// 1. 接口定义在application层,RabbitMQ实现在infrastructure/messaging层
// 2. 事件发布是尽力而为：失败只记录日志,不影响订单事务结果
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, event OrderCreatedEvent) error
	PublishOrderCancelled(ctx context.Context, event OrderCancelledEvent) error
}

// NopEventPublisher 空实现,RabbitMQ未启用时使用
type NopEventPublisher struct{}

func (NopEventPublisher) PublishOrderCreated(context.Context, OrderCreatedEvent) error   { return nil }
func (NopEventPublisher) PublishOrderCancelled(context.Context, OrderCancelledEvent) error { return nil }
