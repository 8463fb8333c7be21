package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/nguyenthequang0802/bookshop/internal/application/cart"
	"github.com/nguyenthequang0802/bookshop/internal/interface/http/dto"
	"github.com/nguyenthequang0802/bookshop/internal/interface/http/middleware"
	"github.com/nguyenthequang0802/bookshop/pkg/response"
)

// CartHandler 购物车HTTP处理器
type CartHandler struct {
	createCartUseCase *appcart.CreateCartUseCase
	viewCartUseCase   *appcart.ViewCartUseCase
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(
	createCartUseCase *appcart.CreateCartUseCase,
	viewCartUseCase *appcart.ViewCartUseCase,
) *CartHandler {
	return &CartHandler{
		createCartUseCase: createCartUseCase,
		viewCartUseCase:   viewCartUseCase,
	}
}

// CreateCart 创建购物车
// @Summary      创建购物车
// @Description  将图书加入新购物车（需要登录）。请求数量超过库存时按库存截断,此时不扣减库存
// @Tags         购物车模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateCartRequest true "购物车信息"
// @Success      200 {object} response.Response{data=dto.CreateCartResponse} "创建成功"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /carts [post]
func (h *CartHandler) CreateCart(c *gin.Context) {
	var req dto.CreateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	userID := middleware.MustGetUserID(c)

	result, err := h.createCartUseCase.Execute(c.Request.Context(), appcart.CreateCartRequest{
		UserID:   userID,
		BookID:   req.BookID,
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.CreateCartResponse{
		CartID:   result.CartID,
		BookID:   result.BookID,
		Quantity: result.Quantity,
	})
}

// ViewCart 查看购物车
// @Summary      查看购物车
// @Description  查看当前用户的购物车（需要登录）
// @Tags         购物车模块
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.ViewCartResponse} "查询成功"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "购物车不存在"
// @Router       /carts/me [get]
func (h *CartHandler) ViewCart(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	result, err := h.viewCartUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := &dto.ViewCartResponse{CartID: result.CartID}
	if result.Item != nil {
		resp.Item = &dto.CartItemView{
			BookID:    result.Item.BookID,
			BookTitle: result.Item.BookTitle,
			Price:     result.Item.Price,
			PriceYuan: dto.FormatPriceYuan(result.Item.Price),
			Quantity:  result.Item.Quantity,
			Subtotal:  result.Item.Subtotal,
		}
	}

	response.Success(c, resp)
}
