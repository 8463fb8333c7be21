package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	apporder "github.com/nguyenthequang0802/bookshop/internal/application/order"
	"github.com/nguyenthequang0802/bookshop/internal/infrastructure/config"
	"github.com/nguyenthequang0802/bookshop/pkg/metrics"
	"github.com/nguyenthequang0802/bookshop/pkg/mq"
)

// 订单事件消费者进程
// 订阅order.created/order.cancelled事件,用于下游处理（当前为日志记录）
// 每个路由键一个独立Queue,事件互不阻塞
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	if !cfg.RabbitMQ.Enabled {
		log.Fatal("RabbitMQ未启用,请设置rabbitmq.enabled=true")
	}

	metrics.InitMetrics()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Println("收到退出信号,停止消费")
		cancel()
	}()

	errCh := make(chan error, 2)

	go consumeCreated(ctx, cfg, errCh)
	go consumeCancelled(ctx, cfg, errCh)

	if err := <-errCh; err != nil && err != context.Canceled {
		log.Fatalf("消费者退出: %v", err)
	}
}

func consumeCreated(ctx context.Context, cfg *config.Config, errCh chan<- error) {
	const queue = "bookshop.order-created"

	consumer, err := mq.NewConsumer(
		cfg.RabbitMQ.URL,
		cfg.RabbitMQ.Exchange,
		"topic",
		queue,
		[]string{apporder.RoutingKeyOrderCreated},
	)
	if err != nil {
		errCh <- err
		return
	}
	defer consumer.Close()

	errCh <- consumer.Consume(ctx, func(body []byte) error {
		var event apporder.OrderCreatedEvent
		if err := json.Unmarshal(body, &event); err != nil {
			// 格式错误的消息重新入队也无法处理,记录后ACK丢弃
			log.Printf("订单创建事件解析失败,丢弃: %v", err)
			metrics.MessagesConsumedTotal.WithLabelValues(queue, "failure").Inc()
			return nil
		}

		log.Printf("订单已创建: 订单号=%s 用户=%d 图书=%d 数量=%d 金额=%d分",
			event.OrderNo, event.UserID, event.BookID, event.Quantity, event.Total)
		metrics.MessagesConsumedTotal.WithLabelValues(queue, "success").Inc()
		return nil
	})
}

func consumeCancelled(ctx context.Context, cfg *config.Config, errCh chan<- error) {
	const queue = "bookshop.order-cancelled"

	consumer, err := mq.NewConsumer(
		cfg.RabbitMQ.URL,
		cfg.RabbitMQ.Exchange,
		"topic",
		queue,
		[]string{apporder.RoutingKeyOrderCancelled},
	)
	if err != nil {
		errCh <- err
		return
	}
	defer consumer.Close()

	errCh <- consumer.Consume(ctx, func(body []byte) error {
		var event apporder.OrderCancelledEvent
		if err := json.Unmarshal(body, &event); err != nil {
			log.Printf("订单取消事件解析失败,丢弃: %v", err)
			metrics.MessagesConsumedTotal.WithLabelValues(queue, "failure").Inc()
			return nil
		}

		log.Printf("订单已取消: 订单号=%s 用户=%d 图书=%d 恢复库存=%d",
			event.OrderNo, event.UserID, event.BookID, event.Quantity)
		metrics.MessagesConsumedTotal.WithLabelValues(queue, "success").Inc()
		return nil
	})
}
