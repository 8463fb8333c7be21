package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nguyenthequang0802/bookshop/internal/domain/cart"
	apperrors "github.com/nguyenthequang0802/bookshop/pkg/errors"
)

// cartRepository 购物车仓储实现（MySQL）
// 设计说明：
// 1. 购物车与条目分表存储,查询时组装为聚合
// 2. 条目不存在时Item为nil（空购物车）,不视为错误
// 3. Delete以RowsAffected==0判定记录缺失,防止并发重复结算
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

// Create 创建购物车
func (r *cartRepository) Create(ctx context.Context, c *cart.Cart) error {
	model := &CartModel{
		UserID: c.UserID,
	}
	if c.Item != nil {
		model.CartItemID = c.Item.ID
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建购物车失败")
	}

	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找购物车（含条目）
func (r *cartRepository) FindByID(ctx context.Context, id uint) (*cart.Cart, error) {
	var model CartModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrCartNotFound
		}
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}

	return r.assemble(ctx, &model)
}

// FindByUserID 查找指定用户的购物车（含条目）
func (r *cartRepository) FindByUserID(ctx context.Context, userID uint) (*cart.Cart, error) {
	var model CartModel
	err := getDB(ctx, r.db).Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrCartNotFound
		}
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}

	return r.assemble(ctx, &model)
}

// Update 更新购物车
func (r *cartRepository) Update(ctx context.Context, c *cart.Cart) error {
	model := &CartModel{
		ID:     c.ID,
		UserID: c.UserID,
	}
	if c.Item != nil {
		model.CartItemID = c.Item.ID
	}

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新购物车失败")
	}

	c.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除购物车
func (r *cartRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&CartModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除购物车失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrCartNotFound
	}
	return nil
}

// LockByID 悲观锁查询购物车（SELECT FOR UPDATE）
// 必须在事务中调用,结算时防止同一购物车被并发消费
func (r *cartRepository) LockByID(ctx context.Context, id uint) (*cart.Cart, error) {
	var model CartModel
	err := getDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrCartNotFound
		}
		return nil, apperrors.Wrap(err, "锁定购物车失败")
	}

	return r.assemble(ctx, &model)
}

// assemble 组装购物车聚合：加载条目
// 条目缺失不报错,返回Item为nil的空购物车
func (r *cartRepository) assemble(ctx context.Context, model *CartModel) (*cart.Cart, error) {
	c := &cart.Cart{
		ID:        model.ID,
		UserID:    model.UserID,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	if model.CartItemID == 0 {
		return c, nil
	}

	var itemModel CartItemModel
	err := getDB(ctx, r.db).First(&itemModel, model.CartItemID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c, nil // 条目已被删除,空购物车
		}
		return nil, apperrors.Wrap(err, "查询购物车条目失败")
	}

	c.Item = toCartItemEntity(&itemModel)
	return c, nil
}

// cartItemRepository 购物车条目仓储实现（MySQL）
type cartItemRepository struct {
	db *gorm.DB
}

// NewCartItemRepository 创建购物车条目仓储
func NewCartItemRepository(db *gorm.DB) cart.ItemRepository {
	return &cartItemRepository{db: db}
}

// Create 创建条目
func (r *cartItemRepository) Create(ctx context.Context, item *cart.CartItem) error {
	model := &CartItemModel{
		BookID:   item.BookID,
		Quantity: item.Quantity,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建购物车条目失败")
	}

	item.ID = model.ID
	item.CreatedAt = model.CreatedAt
	item.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找条目
func (r *cartItemRepository) FindByID(ctx context.Context, id uint) (*cart.CartItem, error) {
	var model CartItemModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrCartNotFound
		}
		return nil, apperrors.Wrap(err, "查询购物车条目失败")
	}

	return toCartItemEntity(&model), nil
}

// Update 更新条目
func (r *cartItemRepository) Update(ctx context.Context, item *cart.CartItem) error {
	model := &CartItemModel{
		ID:       item.ID,
		BookID:   item.BookID,
		Quantity: item.Quantity,
	}

	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新购物车条目失败")
	}

	item.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除条目
func (r *cartItemRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&CartItemModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除购物车条目失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrCartNotFound
	}
	return nil
}

// toCartItemEntity GORM模型 → 领域实体
func toCartItemEntity(model *CartItemModel) *cart.CartItem {
	return &cart.CartItem{
		ID:        model.ID,
		BookID:    model.BookID,
		Quantity:  model.Quantity,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
