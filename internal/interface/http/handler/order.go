package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/nguyenthequang0802/bookshop/internal/application/order"
	"github.com/nguyenthequang0802/bookshop/internal/interface/http/dto"
	"github.com/nguyenthequang0802/bookshop/internal/interface/http/middleware"
	"github.com/nguyenthequang0802/bookshop/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	checkoutUseCase    *apporder.CheckoutUseCase
	cancelOrderUseCase *apporder.CancelOrderUseCase
	listOrdersUseCase  *apporder.ListOrdersUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	checkoutUseCase *apporder.CheckoutUseCase,
	cancelOrderUseCase *apporder.CancelOrderUseCase,
	listOrdersUseCase *apporder.ListOrdersUseCase,
) *OrderHandler {
	return &OrderHandler{
		checkoutUseCase:    checkoutUseCase,
		cancelOrderUseCase: cancelOrderUseCase,
		listOrdersUseCase:  listOrdersUseCase,
	}
}

// Checkout 结算购物车
// @Summary      结算购物车
// @Description  将购物车转换为订单（需要登录）。锁库存、扣减、建单、删购物车在同一事务中,
// @Description  任一步失败整体回滚：库存不足时购物车保留,库存不变
// @Tags         订单模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CheckoutRequest true "结算信息"
// @Success      200 {object} response.Response{data=dto.CheckoutResponse} "结算成功"
// @Failure      40001 {object} response.Response "库存不足"
// @Failure      40002 {object} response.Response "购物车为空"
// @Failure      404 {object} response.Response "购物车不存在"
// @Router       /orders/checkout [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.checkoutUseCase.Execute(c.Request.Context(), apporder.CheckoutRequest{
		CartID: req.CartID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.CheckoutResponse{
		OrderID:   result.OrderID,
		OrderNo:   result.OrderNo,
		BookID:    result.BookID,
		Quantity:  result.Quantity,
		Total:     result.Total,
		TotalYuan: result.TotalYuan,
		CreatedAt: result.CreatedAt,
	})
}

// CancelOrder 取消订单
// @Summary      取消订单
// @Description  取消订单并回补库存（需要登录）。订单不存在或已被取消返回404,防止重复回补
// @Tags         订单模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response "取消成功"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /orders/{id} [delete]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	err := h.cancelOrderUseCase.Execute(c.Request.Context(), apporder.CancelOrderRequest{
		OrderID: id,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// ListOrders 订单列表
// @Summary      订单列表
// @Description  查询当前用户的订单列表,按创建时间倒序分页
// @Tags         订单模块
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页数量" default(10)
// @Success      200 {object} response.Response{data=dto.ListOrdersResponse} "查询成功"
// @Failure      401 {object} response.Response "未登录"
// @Router       /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var req dto.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.listOrdersUseCase.Execute(c.Request.Context(), apporder.ListOrdersRequest{
		UserID:   userID,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.OrderListItem, len(result.Orders))
	for i, o := range result.Orders {
		list[i] = dto.OrderListItem{
			OrderID:   o.OrderID,
			OrderNo:   o.OrderNo,
			BookID:    o.BookID,
			Quantity:  o.Quantity,
			Price:     o.Price,
			Total:     o.Total,
			TotalYuan: o.TotalYuan,
			CreatedAt: o.CreatedAt,
		}
	}

	response.Success(c, &dto.ListOrdersResponse{List: list, Total: result.Total})
}
