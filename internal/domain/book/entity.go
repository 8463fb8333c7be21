package book

import (
	"time"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. Book是图书聚合的根实体,包含图书的核心属性
// 2. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 3. Stock是库存数量,不变量:任何操作完成后Stock >= 0
type Book struct {
	ID          uint
	Title       string // 书名
	Author      string // 作者
	Publisher   string // 出版社
	ISBN        string // ISBN号(国际标准书号)
	Price       int64  // 价格(单位:分,1元=100分)
	Stock       int    // 库存数量
	Description string // 图书描述
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewBook 创建新图书(工厂方法)
// 字段校验由领域服务负责,ID由存储层分配
func NewBook(title, author, publisher, isbn string, price int64, stock int, description string) *Book {
	now := time.Now()
	return &Book{
		Title:       title,
		Author:      author,
		Publisher:   publisher,
		ISBN:        isbn,
		Price:       price,
		Stock:       stock,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// UpdateInfo 更新图书基本信息(空字段保持不变)
func (b *Book) UpdateInfo(title, author, publisher, description string) {
	if title != "" {
		b.Title = title
	}
	if author != "" {
		b.Author = author
	}
	if publisher != "" {
		b.Publisher = publisher
	}
	if description != "" {
		b.Description = description
	}
	b.UpdatedAt = time.Now()
}

// CanFulfill 判断当前库存能否满足quantity的扣减
// 相等时允许(库存刚好用完)
func (b *Book) CanFulfill(quantity int) bool {
	return b.Stock >= quantity
}

// ClampQuantity 将请求数量收敛到当前库存上限
// 设计说明:加购时不拒绝超量请求,只封顶;不做下限校验,透传调用方的值
func (b *Book) ClampQuantity(requested int) int {
	if requested > b.Stock {
		return b.Stock
	}
	return requested
}
