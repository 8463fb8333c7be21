//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 设计说明：
// 1. Wire是Google开发的编译期依赖注入工具
// 2. 与运行时反射注入不同,Wire在编译期生成代码：零运行时开销、类型安全
// 3. 运行 `wire gen ./cmd/api` 生成wire_gen.go后,main.go可改为调用InitializeApp()
//
// 核心概念：
// - Provider: 提供依赖的构造函数（如NewUserRepository）
// - Injector: 声明最终要构造的目标类型（*gin.Engine）
// - wire.Bind: 将接口绑定到具体实现

package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

	appbook "github.com/nguyenthequang0802/bookshop/internal/application/book"
	appcart "github.com/nguyenthequang0802/bookshop/internal/application/cart"
	apporder "github.com/nguyenthequang0802/bookshop/internal/application/order"
	appuser "github.com/nguyenthequang0802/bookshop/internal/application/user"
	"github.com/nguyenthequang0802/bookshop/internal/domain/book"
	"github.com/nguyenthequang0802/bookshop/internal/domain/cart"
	"github.com/nguyenthequang0802/bookshop/internal/domain/user"
	"github.com/nguyenthequang0802/bookshop/internal/infrastructure/config"
	"github.com/nguyenthequang0802/bookshop/internal/infrastructure/messaging"
	"github.com/nguyenthequang0802/bookshop/internal/infrastructure/persistence/mysql"
	"github.com/nguyenthequang0802/bookshop/internal/infrastructure/persistence/redis"
	"github.com/nguyenthequang0802/bookshop/internal/interface/http/handler"
	"github.com/nguyenthequang0802/bookshop/internal/interface/http/middleware"
	"github.com/nguyenthequang0802/bookshop/pkg/jwt"
	"github.com/nguyenthequang0802/bookshop/pkg/mq"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewBookRepository,
	mysql.NewCartRepository,
	mysql.NewCartItemRepository,
	mysql.NewOrderRepository,
	mysql.NewTxManager,
	wire.Bind(new(apporder.TxManager), new(*mysql.TxManager)),
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	user.NewService,
	book.NewService,
	cart.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewSearchBooksUseCase,
	appbook.NewAdjustStockUseCase,
	appcart.NewCreateCartUseCase,
	appcart.NewViewCartUseCase,
	apporder.NewCheckoutUseCase,
	apporder.NewCancelOrderUseCase,
	apporder.NewListOrdersUseCase,
	provideEventPublisher,
)

// middlewareSet 中间件依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideSessionStore,
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewCartHandler,
	handler.NewOrderHandler,
)

// provideJWTManager 从配置创建JWT管理器
// config.Config包含多个字段,Wire无法自动提取,需要手动Provider
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideSessionStore 从Redis客户端创建Session存储
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// provideEventPublisher 创建订单事件发布器
// RabbitMQ未启用或连接失败时退化为空实现,不阻塞启动
func provideEventPublisher(cfg *config.Config) apporder.EventPublisher {
	if !cfg.RabbitMQ.Enabled {
		return apporder.NopEventPublisher{}
	}
	publisher, err := mq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, "topic")
	if err != nil {
		log.Printf("连接RabbitMQ失败,订单事件将被丢弃: %v", err)
		return apporder.NopEventPublisher{}
	}
	return messaging.NewOrderEventPublisher(publisher)
}

// provideGinEngine 创建并配置Gin引擎
func provideGinEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.Metrics())
	registerRoutes(r, userHandler, bookHandler, cartHandler, orderHandler, authMiddleware)
	return r
}

// InitializeApp 初始化整个应用（Wire Injector）
// Wire会在wire_gen.go中生成实际的初始化代码,此处返回值只是占位符
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)
	return nil, nil
}
