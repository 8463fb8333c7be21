package order

import (
	"context"
)

// Repository 订单仓储接口
// 设计说明：接口定义在domain层,GORM实现在infrastructure层（依赖倒置）
type Repository interface {
	// Create 创建订单
	Create(ctx context.Context, order *Order) error

	// FindByID 根据ID查找订单
	// 不存在时返回ErrOrderNotFound
	FindByID(ctx context.Context, id uint) (*Order, error)

	// FindByOrderNo 根据订单号查找订单
	FindByOrderNo(ctx context.Context, orderNo string) (*Order, error)

	// ListByUserID 分页查询用户的订单列表（按创建时间倒序）
	// 返回订单列表和总数
	ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*Order, int64, error)

	// Delete 删除订单
	// 记录不存在时返回ErrOrderNotFound（RowsAffected==0判定,防止并发重复取消）
	Delete(ctx context.Context, id uint) error
}
