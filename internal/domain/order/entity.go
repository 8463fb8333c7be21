package order

import (
	"time"
)

// Order 订单实体（聚合根）
// DDD设计说明：
// 1. 订单在结算时创建,记录购买的图书、数量和成交价快照
// 2. 订单没有状态字段：存在即有效,取消订单直接删除记录并回补库存
// 3. Price记录下单时的单价（分）,商家改价不影响历史订单金额
type Order struct {
	ID        uint
	OrderNo   string // 订单号(业务主键,全局唯一)
	UserID    uint
	BookID    uint
	Quantity  int
	Price     int64 // 下单时的单价(分),价格快照
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewOrder 创建新订单（工厂方法）
// 订单号由外部传入（GenerateOrderNo或雪花算法等）
func NewOrder(orderNo string, userID, bookID uint, quantity int, price int64) *Order {
	now := time.Now()
	return &Order{
		OrderNo:   orderNo,
		UserID:    userID,
		BookID:    bookID,
		Quantity:  quantity,
		Price:     price,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Total 订单总金额(分)
func (o *Order) Total() int64 {
	return o.Price * int64(o.Quantity)
}
