package order

import (
	apperrors "github.com/nguyenthequang0802/bookshop/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	// 取消不存在（或已被取消）的订单时返回,防止重复取消导致库存重复回补
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")
)
