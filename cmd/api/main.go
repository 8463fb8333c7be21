package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

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
	"github.com/nguyenthequang0802/bookshop/pkg/metrics"
	"github.com/nguyenthequang0802/bookshop/pkg/mq"
	"github.com/nguyenthequang0802/bookshop/pkg/response"
	"github.com/nguyenthequang0802/bookshop/pkg/tracing"
)

// main 主程序入口
// 说明：手动依赖注入（wire.go提供Wire版本,运行wire gen后可切换）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())

	// 2. 初始化Prometheus指标
	metrics.InitMetrics()

	// 3. 初始化链路追踪（可选）
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer("bookshop-api", cfg.Tracing.CollectorURL)
		if err != nil {
			log.Fatalf("初始化链路追踪失败: %v", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Printf("关闭链路追踪失败: %v", err)
			}
		}()
	}

	// 4. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 5. 初始化Redis连接
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// 6. 初始化RabbitMQ事件发布（可选,Broker不可用不阻塞启动）
	var eventPublisher apporder.EventPublisher = apporder.NopEventPublisher{}
	if cfg.RabbitMQ.Enabled {
		publisher, err := mq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, "topic")
		if err != nil {
			log.Printf("连接RabbitMQ失败,订单事件将被丢弃: %v", err)
		} else {
			defer publisher.Close()
			eventPublisher = messaging.NewOrderEventPublisher(publisher)
			fmt.Println("✓ RabbitMQ连接成功")
		}
	}

	// 7. 依赖注入（手动组装）
	// 依赖链：Repository ← Service ← UseCase ← Handler

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	cartRepo := mysql.NewCartRepository(db)
	cartItemRepo := mysql.NewCartItemRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 领域层
	userService := user.NewService(userRepo)
	bookService := book.NewService(bookRepo)
	cartService := cart.NewService(cartRepo, cartItemRepo, userRepo, bookRepo)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore)
	createBookUseCase := appbook.NewCreateBookUseCase(bookService)
	getBookUseCase := appbook.NewGetBookUseCase(bookService)
	updateBookUseCase := appbook.NewUpdateBookUseCase(bookService)
	deleteBookUseCase := appbook.NewDeleteBookUseCase(bookService)
	searchBooksUseCase := appbook.NewSearchBooksUseCase(bookService)
	adjustStockUseCase := appbook.NewAdjustStockUseCase(bookService)
	createCartUseCase := appcart.NewCreateCartUseCase(cartService)
	viewCartUseCase := appcart.NewViewCartUseCase(cartService, bookRepo)
	checkoutUseCase := apporder.NewCheckoutUseCase(cartRepo, cartItemRepo, bookRepo, orderRepo, txManager, eventPublisher)
	cancelOrderUseCase := apporder.NewCancelOrderUseCase(orderRepo, bookRepo, txManager, eventPublisher)
	listOrdersUseCase := apporder.NewListOrdersUseCase(orderRepo)

	// 接口层
	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, logoutUseCase)
	bookHandler := handler.NewBookHandler(createBookUseCase, getBookUseCase, updateBookUseCase, deleteBookUseCase, searchBooksUseCase, adjustStockUseCase)
	cartHandler := handler.NewCartHandler(createCartUseCase, viewCartUseCase)
	orderHandler := handler.NewOrderHandler(checkoutUseCase, cancelOrderUseCase, listOrdersUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 8. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())

	// 9. 注册路由
	registerRoutes(r, userHandler, bookHandler, cartHandler, orderHandler, authMiddleware)

	// 10. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   指标采集: http://localhost%s/metrics\n", addr)
	fmt.Printf("   API文档:  http://localhost%s/swagger/index.html\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// registerRoutes 注册路由
func registerRoutes(
	r *gin.Engine,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档（访问/swagger/index.html）
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API路由组
	v1 := r.Group("/api/v1")
	{
		// 用户模块
		users := v1.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.POST("/logout", authMiddleware.RequireAuth(), userHandler.Logout)
		}

		// 图书模块
		books := v1.Group("/books")
		{
			// 公开接口
			books.GET("/search", bookHandler.SearchBooks)
			books.GET("/:id", bookHandler.GetBook)

			// 管理接口（需要登录）
			books.POST("", authMiddleware.RequireAuth(), bookHandler.CreateBook)
			books.PUT("/:id", authMiddleware.RequireAuth(), bookHandler.UpdateBook)
			books.DELETE("/:id", authMiddleware.RequireAuth(), bookHandler.DeleteBook)
			books.PATCH("/:id/stock", authMiddleware.RequireAuth(), bookHandler.AdjustStock)
		}

		// 购物车模块（需要登录）
		carts := v1.Group("/carts")
		carts.Use(authMiddleware.RequireAuth())
		{
			carts.POST("", cartHandler.CreateCart)
			carts.GET("/me", cartHandler.ViewCart)
		}

		// 订单模块（需要登录）
		orders := v1.Group("/orders")
		orders.Use(authMiddleware.RequireAuth())
		{
			orders.POST("/checkout", orderHandler.Checkout)
			orders.GET("", orderHandler.ListOrders)
			orders.DELETE("/:id", orderHandler.CancelOrder)
		}
	}
}
