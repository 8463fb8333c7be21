package cart

import (
	"context"

	"github.com/nguyenthequang0802/bookshop/internal/domain/book"
	"github.com/nguyenthequang0802/bookshop/internal/domain/user"
)

// Service 购物车领域服务
// 设计说明：
// 1. 创建购物车需要校验用户和图书的存在性,属于跨聚合逻辑,放在领域服务
// 2. 创建购物车不扣减库存,库存在结算时才扣减
type Service interface {
	// CreateCart 为用户创建购物车
	// 请求数量超过当前库存时,按库存截断后入车（不报错）
	CreateCart(ctx context.Context, userID, bookID uint, quantity int) (*Cart, error)

	// ViewCart 查看用户的购物车
	// 用户没有购物车时返回ErrCartNotFound
	ViewCart(ctx context.Context, userID uint) (*Cart, error)
}

type service struct {
	cartRepo Repository
	itemRepo ItemRepository
	userRepo user.Repository
	bookRepo book.Repository
}

// NewService 创建购物车服务
func NewService(cartRepo Repository, itemRepo ItemRepository, userRepo user.Repository, bookRepo book.Repository) Service {
	return &service{
		cartRepo: cartRepo,
		itemRepo: itemRepo,
		userRepo: userRepo,
		bookRepo: bookRepo,
	}
}

// CreateCart 创建购物车
// 业务规则：
// 1. 用户必须存在
// 2. 图书必须存在
// 3. 入车数量 = min(请求数量, 当前库存),不校验下限
// 4. 此时不扣减库存,截断只是入车时的快照,结算时以最新库存为准
func (s *service) CreateCart(ctx context.Context, userID, bookID uint, quantity int) (*Cart, error) {
	// 1. 校验用户存在
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	// 2. 校验图书存在
	b, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	// 3. 数量按库存截断
	finalQuantity := b.ClampQuantity(quantity)

	// 4. 创建条目与购物车
	item := NewCartItem(bookID, finalQuantity)
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	c := NewCart(userID, item)
	if err := s.cartRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// ViewCart 查看购物车
func (s *service) ViewCart(ctx context.Context, userID uint) (*Cart, error) {
	return s.cartRepo.FindByUserID(ctx, userID)
}
