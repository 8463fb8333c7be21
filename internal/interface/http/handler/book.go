package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/nguyenthequang0802/bookshop/internal/application/book"
	"github.com/nguyenthequang0802/bookshop/internal/interface/http/dto"
	"github.com/nguyenthequang0802/bookshop/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	createBookUseCase  *appbook.CreateBookUseCase
	getBookUseCase     *appbook.GetBookUseCase
	updateBookUseCase  *appbook.UpdateBookUseCase
	deleteBookUseCase  *appbook.DeleteBookUseCase
	searchBooksUseCase *appbook.SearchBooksUseCase
	adjustStockUseCase *appbook.AdjustStockUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	createBookUseCase *appbook.CreateBookUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	updateBookUseCase *appbook.UpdateBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
	searchBooksUseCase *appbook.SearchBooksUseCase,
	adjustStockUseCase *appbook.AdjustStockUseCase,
) *BookHandler {
	return &BookHandler{
		createBookUseCase:  createBookUseCase,
		getBookUseCase:     getBookUseCase,
		updateBookUseCase:  updateBookUseCase,
		deleteBookUseCase:  deleteBookUseCase,
		searchBooksUseCase: searchBooksUseCase,
		adjustStockUseCase: adjustStockUseCase,
	}
}

// CreateBook 创建图书
// @Summary      创建图书
// @Description  录入新图书。书名、作者非空且价格为正,按此顺序返回第一个校验错误
// @Tags         图书模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=dto.BookResponse} "创建成功"
// @Failure      400 {object} response.Response "参数错误"
// @Router       /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.createBookUseCase.Execute(c.Request.Context(), appbook.CreateBookRequest{
		Title:       req.Title,
		Author:      req.Author,
		Publisher:   req.Publisher,
		ISBN:        req.ISBN,
		Price:       req.Price,
		Stock:       req.Stock,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookDTO(result))
}

// GetBook 查询图书详情
// @Summary      查询图书详情
// @Tags         图书模块
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse} "查询成功"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.getBookUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookDTO(result))
}

// UpdateBook 更新图书信息
// @Summary      更新图书信息
// @Description  更新书目信息,空字段保持不变。库存不在此接口修改,使用库存调整接口
// @Tags         图书模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "更新信息"
// @Success      200 {object} response.Response{data=dto.BookResponse} "更新成功"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.updateBookUseCase.Execute(c.Request.Context(), appbook.UpdateBookRequest{
		ID:          id,
		Title:       req.Title,
		Author:      req.Author,
		Publisher:   req.Publisher,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookDTO(result))
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Tags         图书模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response "删除成功"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.deleteBookUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// SearchBooks 搜索图书
// @Summary      搜索图书
// @Description  按关键词在书名/作者/出版社中模糊搜索。空白关键词返回参数错误,无命中返回空列表
// @Tags         图书模块
// @Produce      json
// @Param        keyword query string true "搜索关键词"
// @Success      200 {object} response.Response{data=dto.SearchBooksResponse} "搜索成功"
// @Failure      400 {object} response.Response "关键词为空"
// @Router       /books/search [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	var req dto.SearchBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.searchBooksUseCase.Execute(c.Request.Context(), req.Keyword)
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.BookResponse, len(result.Books))
	for i, b := range result.Books {
		list[i] = *toBookDTO(b)
	}
	response.Success(c, &dto.SearchBooksResponse{List: list, Count: result.Count})
}

// AdjustStock 调整库存
// @Summary      调整库存
// @Description  进货(正数)或盘亏(负数)。调整后库存不能为负,被拒绝的调整不产生任何变更
// @Tags         图书模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.AdjustStockRequest true "调整量"
// @Success      200 {object} response.Response "调整成功"
// @Failure      40001 {object} response.Response "库存不足"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id}/stock [patch]
func (h *BookHandler) AdjustStock(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	err := h.adjustStockUseCase.Execute(c.Request.Context(), appbook.AdjustStockRequest{
		BookID: id,
		Delta:  req.Delta,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// parseIDParam 解析路径中的:id参数
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.ErrorWithCode(c, 40900, "无效的ID")
		return 0, false
	}
	return uint(id), true
}

// toBookDTO 应用层DTO → HTTP DTO
func toBookDTO(b *appbook.BookResponse) *dto.BookResponse {
	return &dto.BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Publisher:   b.Publisher,
		ISBN:        b.ISBN,
		Price:       b.Price,
		PriceYuan:   dto.FormatPriceYuan(b.Price),
		Stock:       b.Stock,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
	}
}
