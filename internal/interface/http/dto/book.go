package dto

import "fmt"

// CreateBookRequest HTTP创建图书请求
// 书名/作者非空、价格为正的业务校验在领域服务中完成,
// 这里只做格式层面的约束（长度、范围）
type CreateBookRequest struct {
	Title       string `json:"title" binding:"max=200" example:"Go语言实战"`
	Author      string `json:"author" binding:"max=100" example:"威廉·肯尼迪"`
	Publisher   string `json:"publisher" binding:"max=100" example:"人民邮电出版社"`
	ISBN        string `json:"isbn" binding:"max=20" example:"9787115428028"`
	Price       int64  `json:"price" example:"5900"` // 价格(分),59.00元
	Stock       int    `json:"stock" binding:"min=0" example:"100"`
	Description string `json:"description" binding:"max=5000" example:"这是一本关于Go语言的实战书籍"`
}

// UpdateBookRequest HTTP更新图书请求
// 空字段表示不修改
type UpdateBookRequest struct {
	Title       string `json:"title" binding:"max=200" example:"Go语言实战(第2版)"`
	Author      string `json:"author" binding:"max=100"`
	Publisher   string `json:"publisher" binding:"max=100"`
	Description string `json:"description" binding:"max=5000"`
}

// AdjustStockRequest HTTP库存调整请求
type AdjustStockRequest struct {
	Delta int `json:"delta" binding:"required" example:"-3"` // 正数进货,负数盘亏
}

// BookResponse HTTP图书响应
type BookResponse struct {
	ID          uint   `json:"id" example:"1"`
	Title       string `json:"title" example:"Go语言实战"`
	Author      string `json:"author" example:"威廉·肯尼迪"`
	Publisher   string `json:"publisher" example:"人民邮电出版社"`
	ISBN        string `json:"isbn" example:"9787115428028"`
	Price       int64  `json:"price" example:"5900"`       // 价格(分)
	PriceYuan   string `json:"price_yuan" example:"59.00"` // 价格(元),方便前端显示
	Stock       int    `json:"stock" example:"100"`
	Description string `json:"description" example:"这是一本关于Go语言的实战书籍"`
	CreatedAt   string `json:"created_at" example:"2024-01-15 10:30:00"`
}

// SearchBooksRequest HTTP图书搜索请求
type SearchBooksRequest struct {
	Keyword string `form:"keyword" binding:"max=100" example:"Go"`
}

// SearchBooksResponse HTTP图书搜索响应
type SearchBooksResponse struct {
	List  []BookResponse `json:"list"`
	Count int            `json:"count" example:"3"`
}

// FormatPriceYuan 格式化价格(分→元)
// 例如:5900分 → "59.00"
func FormatPriceYuan(priceFen int64) string {
	yuan := float64(priceFen) / 100.0
	return fmt.Sprintf("%.2f", yuan)
}
