package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nguyenthequang0802/bookshop/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志,生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 自动迁移表结构（开发环境）
	// 生产环境应使用版本化的迁移脚本（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// AutoMigrate只会创建表、添加字段,不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&BookModel{},
		&CartModel{},
		&CartItemModel{},
		&OrderModel{},
	)
}

// UserModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型,包含GORM tag
// 2. domain/user/entity.go是领域实体,不依赖GORM
// 3. Repository负责两者之间的转换
type UserModel struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string    `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Name      string    `gorm:"size:50;not null;comment:用户名"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

func (UserModel) TableName() string {
	return "users"
}

// BookModel GORM图书模型
// 设计说明：
// 1. 价格使用int64存储"分"为单位（避免浮点数精度问题）
// 2. Title/Author/Publisher加搜索索引,支持关键词模糊查询
type BookModel struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"index:idx_search;size:200;not null;comment:书名"`
	Author      string    `gorm:"index:idx_search;size:100;not null;comment:作者"`
	Publisher   string    `gorm:"size:100;comment:出版社"`
	ISBN        string    `gorm:"size:20;comment:ISBN号"`
	Price       int64     `gorm:"not null;comment:价格(分)"`
	Stock       int       `gorm:"default:0;comment:库存数量"`
	Description string    `gorm:"type:text;comment:图书描述"`
	CreatedAt   time.Time `gorm:"index;comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

func (BookModel) TableName() string {
	return "books"
}

// CartModel GORM购物车模型
// 设计说明：购物车只引用条目ID,条目单独存表,查询时组装
type CartModel struct {
	ID         uint      `gorm:"primaryKey"`
	UserID     uint      `gorm:"index;not null;comment:用户ID"`
	CartItemID uint      `gorm:"index;not null;comment:条目ID"`
	CreatedAt  time.Time `gorm:"comment:创建时间"`
	UpdatedAt  time.Time `gorm:"comment:更新时间"`
}

func (CartModel) TableName() string {
	return "carts"
}

// CartItemModel GORM购物车条目模型
type CartItemModel struct {
	ID        uint      `gorm:"primaryKey"`
	BookID    uint      `gorm:"index;not null;comment:图书ID"`
	Quantity  int       `gorm:"not null;comment:购买数量"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

func (CartItemModel) TableName() string {
	return "cart_items"
}

// OrderModel GORM订单模型
// 设计说明：
// 1. OrderNo有唯一索引（业务主键）
// 2. 没有状态字段：订单存在即有效,取消即物理删除
// 3. Price记录下单时的单价快照(分)
type OrderModel struct {
	ID        uint      `gorm:"primaryKey"`
	OrderNo   string    `gorm:"uniqueIndex;size:32;not null;comment:订单号"`
	UserID    uint      `gorm:"index;not null;comment:买家用户ID"`
	BookID    uint      `gorm:"index;not null;comment:图书ID"`
	Quantity  int       `gorm:"not null;comment:购买数量"`
	Price     int64     `gorm:"not null;comment:下单时单价(分)"`
	CreatedAt time.Time `gorm:"index;comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

func (OrderModel) TableName() string {
	return "orders"
}
