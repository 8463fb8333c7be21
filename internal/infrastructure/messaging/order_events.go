package messaging

import (
	"context"
	"log"
	"time"

	appOrder "github.com/nguyenthequang0802/bookshop/internal/application/order"
	"github.com/nguyenthequang0802/bookshop/pkg/circuitbreaker"
	"github.com/nguyenthequang0802/bookshop/pkg/metrics"
	"github.com/nguyenthequang0802/bookshop/pkg/mq"
)

// OrderEventPublisher 订单事件发布器（RabbitMQ实现）
// 设计说明：
// 1. 实现application/order.EventPublisher端口
// 2. 发布经过熔断器保护：Broker故障时快速失败,不拖慢订单主流程
// 3. 连续3次失败后熔断,30秒后进入半开试探
type OrderEventPublisher struct {
	publisher *mq.Publisher
	breaker   *circuitbreaker.CircuitBreaker
}

// NewOrderEventPublisher 创建订单事件发布器
func NewOrderEventPublisher(publisher *mq.Publisher) *OrderEventPublisher {
	cb := circuitbreaker.NewCircuitBreaker("order-events", circuitbreaker.Config{
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts circuitbreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	// 熔断器状态变化上报到Prometheus
	cb.SetStateChangeCallback(func(name string, from, to circuitbreaker.State) {
		log.Printf("熔断器[%s]状态变化: %s -> %s", name, from, to)
		metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
	})

	return &OrderEventPublisher{
		publisher: publisher,
		breaker:   cb,
	}
}

// PublishOrderCreated 发布订单创建事件
func (p *OrderEventPublisher) PublishOrderCreated(ctx context.Context, event appOrder.OrderCreatedEvent) error {
	return p.publish(ctx, appOrder.RoutingKeyOrderCreated, event)
}

// PublishOrderCancelled 发布订单取消事件
func (p *OrderEventPublisher) PublishOrderCancelled(ctx context.Context, event appOrder.OrderCancelledEvent) error {
	return p.publish(ctx, appOrder.RoutingKeyOrderCancelled, event)
}

func (p *OrderEventPublisher) publish(ctx context.Context, routingKey string, event interface{}) error {
	err := p.breaker.Execute(func() error {
		return p.publisher.Publish(ctx, routingKey, event)
	})

	if err != nil {
		metrics.CircuitBreakerRequests.WithLabelValues("order-events", "failure").Inc()
		return err
	}

	metrics.CircuitBreakerRequests.WithLabelValues("order-events", "success").Inc()
	metrics.MessagesPublishedTotal.WithLabelValues(p.publisher.Exchange(), routingKey).Inc()
	return nil
}
