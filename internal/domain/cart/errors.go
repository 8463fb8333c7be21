package cart

import (
	apperrors "github.com/nguyenthequang0802/bookshop/pkg/errors"
)

// 购物车领域错误定义
var (
	// ErrCartNotFound 购物车不存在
	ErrCartNotFound = apperrors.New(apperrors.ErrCodeCartNotFound, "购物车不存在")

	// ErrCartEmpty 购物车为空,无法结算
	ErrCartEmpty = apperrors.New(apperrors.ErrCodeCartEmpty, "购物车为空")
)
