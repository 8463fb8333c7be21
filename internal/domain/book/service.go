package book

import (
	"context"
	"strings"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 封装目录维护与库存调整的业务规则校验
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// CreateBook 创建图书(上架)
	// 业务规则:书名非空、作者非空、价格>0,按此顺序校验,第一个不满足的规则生效
	CreateBook(ctx context.Context, title, author, publisher, isbn string, price int64, stock int, description string) (*Book, error)

	// GetBookByID 根据ID获取图书详情
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// UpdateBookInfo 更新图书信息
	// 业务规则:图书必须存在
	UpdateBookInfo(ctx context.Context, id uint, title, author, publisher, description string) (*Book, error)

	// DeleteBook 删除图书
	// 业务规则:图书必须存在
	DeleteBook(ctx context.Context, id uint) error

	// SearchBooks 关键词搜索
	// 业务规则:关键词不能为空白
	SearchBooks(ctx context.Context, keyword string) ([]*Book, error)

	// AdjustStock 调整库存(有界增减)
	// 业务规则:
	// - 图书必须存在
	// - 调整后库存不能为负,否则整个调整被拒绝,库存保持不变
	// 成功时恰好产生一次持久化更新;被拒绝时不产生任何写入
	AdjustStock(ctx context.Context, id uint, delta int) error
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateBook 创建图书
func (s *service) CreateBook(ctx context.Context, title, author, publisher, isbn string, price int64, stock int, description string) (*Book, error) {
	// 1. 字段校验(顺序固定:书名→作者→价格)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if author == "" {
		return nil, ErrEmptyAuthor
	}
	if price <= 0 {
		return nil, ErrInvalidPrice
	}

	// 2. 创建图书实体
	b := NewBook(title, author, publisher, isbn, price, stock, description)

	// 3. 持久化(ID由存储层分配)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateBookInfo 更新图书信息
func (s *service) UpdateBookInfo(ctx context.Context, id uint, title, author, publisher, description string) (*Book, error) {
	// 1. 查询图书(不存在则ErrBookNotFound)
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 更新信息
	b.UpdateInfo(title, author, publisher, description)

	// 3. 持久化
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, id uint) error {
	// 先确认存在,保证删除缺失ID时报ErrBookNotFound
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

// SearchBooks 关键词搜索
func (s *service) SearchBooks(ctx context.Context, keyword string) ([]*Book, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, ErrBlankKeyword
	}
	return s.repo.SearchByKeyword(ctx, keyword)
}

// AdjustStock 调整库存
// 设计说明:不采用"读取-判断-写回"(并发下会超卖),
// 直接依赖仓储的原子条件更新,由数据库保证库存不为负
func (s *service) AdjustStock(ctx context.Context, id uint, delta int) error {
	return s.repo.UpdateStock(ctx, id, delta)
}
