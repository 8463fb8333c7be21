package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
// 3. 按ID查找未命中时返回ErrBookNotFound,不返回nil+nil
type Repository interface {
	// Create 创建图书(ID由存储层分配并回填)
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Update 更新图书信息
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书
	// 不存在时返回errors.ErrBookNotFound
	Delete(ctx context.Context, id uint) error

	// SearchByKeyword 关键词搜索(匹配标题、作者、出版社)
	SearchByKeyword(ctx context.Context, keyword string) ([]*Book, error)

	// LockByID 悲观锁查询图书(SELECT FOR UPDATE)
	// 用于结算时锁定库存行,防止并发超卖;必须在事务内调用
	LockByID(ctx context.Context, id uint) (*Book, error)

	// UpdateStock 更新库存(原子条件更新)
	// delta为正数表示增加,负数表示减少
	// 扣减导致负库存时不做任何修改并返回ErrInsufficientStock
	UpdateStock(ctx context.Context, id uint, delta int) error
}
