package cart

import (
	"context"
)

// Repository 购物车仓储接口
// 设计说明：接口定义在domain层,GORM实现在infrastructure层（依赖倒置）
type Repository interface {
	// Create 创建购物车
	Create(ctx context.Context, cart *Cart) error

	// FindByID 根据ID查找购物车（含条目）
	// 不存在时返回ErrCartNotFound
	FindByID(ctx context.Context, id uint) (*Cart, error)

	// FindByUserID 查找指定用户的购物车（含条目）
	// 不存在时返回ErrCartNotFound
	FindByUserID(ctx context.Context, userID uint) (*Cart, error)

	// Update 更新购物车
	Update(ctx context.Context, cart *Cart) error

	// Delete 删除购物车
	// 记录不存在时返回ErrCartNotFound（RowsAffected==0判定,防止并发重复结算）
	Delete(ctx context.Context, id uint) error

	// LockByID 加行锁查找购物车（SELECT FOR UPDATE）
	// 必须在事务中调用,用于结算时防止同一购物车被并发消费
	LockByID(ctx context.Context, id uint) (*Cart, error)
}

// ItemRepository 购物车条目仓储接口
type ItemRepository interface {
	// Create 创建条目
	Create(ctx context.Context, item *CartItem) error

	// FindByID 根据ID查找条目
	FindByID(ctx context.Context, id uint) (*CartItem, error)

	// Update 更新条目
	Update(ctx context.Context, item *CartItem) error

	// Delete 删除条目
	Delete(ctx context.Context, id uint) error
}
