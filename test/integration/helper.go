package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试辅助工具
// 这些测试针对运行中的服务发起真实HTTP请求,
// 服务未启动时自动跳过（见RequireServer）

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// ServerAddr 健康检查地址
	ServerAddr = "localhost:8080"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// RequireServer 检查服务是否可达,不可达时跳过测试
func RequireServer(t *testing.T) {
	t.Helper()
	conn, err := net.DialTimeout("tcp", ServerAddr, time.Second)
	if err != nil {
		t.Skipf("服务未启动(%s),跳过集成测试", ServerAddr)
	}
	conn.Close()
}

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// RegisterData 注册响应数据
type RegisterData struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// LoginData 登录响应数据
type LoginData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// BookData 图书响应数据
type BookData struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Publisher string `json:"publisher"`
	Price     int64  `json:"price"`
	Stock     int    `json:"stock"`
}

// CartData 购物车响应数据
type CartData struct {
	CartID   uint `json:"cart_id"`
	BookID   uint `json:"book_id"`
	Quantity int  `json:"quantity"`
}

// CheckoutData 结算响应数据
type CheckoutData struct {
	OrderID   uint   `json:"order_id"`
	OrderNo   string `json:"order_no"`
	Quantity  int    `json:"quantity"`
	Total     int64  `json:"total"`
	TotalYuan string `json:"total_yuan"`
}

// doRequest 发送HTTP请求并解析统一响应
func doRequest(t *testing.T, method, url string, data interface{}, token string) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")

	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(respBody, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(respBody))

	return &result
}

// PostJSON 发送POST请求
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doRequest(t, http.MethodPost, url, data, token)
}

// GetJSON 发送GET请求
func GetJSON(t *testing.T, url string, token string) *Response {
	return doRequest(t, http.MethodGet, url, nil, token)
}

// PutJSON 发送PUT请求
func PutJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doRequest(t, http.MethodPut, url, data, token)
}

// PatchJSON 发送PATCH请求
func PatchJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doRequest(t, http.MethodPatch, url, data, token)
}

// DeleteJSON 发送DELETE请求
func DeleteJSON(t *testing.T, url string, token string) *Response {
	return doRequest(t, http.MethodDelete, url, nil, token)
}

// GenerateTestEmail 生成唯一的测试邮箱
// 使用纳秒时间戳避免重复运行时邮箱冲突
func GenerateTestEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, time.Now().UnixNano())
}

// RegisterTestUser 注册测试用户并返回Token
// 封装注册+登录的完整流程,让测试更关注业务逻辑
func RegisterTestUser(t *testing.T, name string) (email string, token string) {
	t.Helper()

	email = GenerateTestEmail(name)
	registerResp := PostJSON(t, BaseURL+"/users/register", map[string]string{
		"email":    email,
		"password": "Test1234",
		"name":     name,
	}, "")
	require.Equal(t, 0, registerResp.Code, "注册失败: %s", registerResp.Message)

	loginResp := PostJSON(t, BaseURL+"/users/login", map[string]string{
		"email":    email,
		"password": "Test1234",
	}, "")
	require.Equal(t, 0, loginResp.Code, "登录失败: %s", loginResp.Message)

	var loginData LoginData
	err := json.Unmarshal(loginResp.Data, &loginData)
	require.NoError(t, err, "解析登录响应失败")

	return email, loginData.AccessToken
}

// CreateTestBook 创建测试图书并返回图书ID
func CreateTestBook(t *testing.T, token, title string, stock int) uint {
	t.Helper()

	resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
		"title":       title,
		"author":      "测试作者",
		"publisher":   "测试出版社",
		"price":       8900, // 89.00元
		"stock":       stock,
		"description": "集成测试用图书",
	}, token)
	require.Equal(t, 0, resp.Code, "创建图书失败: %s", resp.Message)

	var bookData BookData
	err := json.Unmarshal(resp.Data, &bookData)
	require.NoError(t, err, "解析图书响应失败")

	return bookData.ID
}

// CreateTestCart 创建测试购物车并返回购物车数据
func CreateTestCart(t *testing.T, token string, bookID uint, quantity int) CartData {
	t.Helper()

	resp := PostJSON(t, BaseURL+"/carts", map[string]interface{}{
		"book_id":  bookID,
		"quantity": quantity,
	}, token)
	require.Equal(t, 0, resp.Code, "创建购物车失败: %s", resp.Message)

	var cartData CartData
	err := json.Unmarshal(resp.Data, &cartData)
	require.NoError(t, err, "解析购物车响应失败")

	return cartData
}

// GetBookStock 查询图书当前库存
func GetBookStock(t *testing.T, bookID uint) int {
	t.Helper()

	resp := GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, bookID), "")
	require.Equal(t, 0, resp.Code, "查询图书失败: %s", resp.Message)

	var bookData BookData
	err := json.Unmarshal(resp.Data, &bookData)
	require.NoError(t, err, "解析图书响应失败")

	return bookData.Stock
}
