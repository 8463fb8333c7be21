package integration

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 购物车模块集成测试：创建（含库存截断）、查看

func TestCartCreate(t *testing.T) {
	RequireServer(t)

	_, token := RegisterTestUser(t, "cart_user")

	t.Run("正常创建", func(t *testing.T) {
		bookID := CreateTestBook(t, token, "购物车测试图书", 10)

		cart := CreateTestCart(t, token, bookID, 3)
		assert.NotZero(t, cart.CartID)
		assert.Equal(t, 3, cart.Quantity)

		// 创建购物车不扣减库存
		assert.Equal(t, 10, GetBookStock(t, bookID))
	})

	t.Run("数量超过库存被截断", func(t *testing.T) {
		bookID := CreateTestBook(t, token, "截断测试图书", 5)

		cart := CreateTestCart(t, token, bookID, 10)
		assert.Equal(t, 5, cart.Quantity, "库存5、请求10,入车数量应截断为5")
	})

	t.Run("图书不存在", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/carts", map[string]interface{}{
			"book_id":  999999,
			"quantity": 1,
		}, token)
		assert.Equal(t, 40402, resp.Code)
	})

	t.Run("未登录不能创建", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/carts", map[string]interface{}{
			"book_id":  1,
			"quantity": 1,
		}, "")
		assert.Equal(t, 40100, resp.Code)
	})
}

func TestCartView(t *testing.T) {
	RequireServer(t)

	t.Run("查看已有购物车", func(t *testing.T) {
		_, token := RegisterTestUser(t, "viewer")
		bookID := CreateTestBook(t, token, "查看测试图书", 8)
		created := CreateTestCart(t, token, bookID, 2)

		resp := GetJSON(t, BaseURL+"/carts/me", token)
		require.Equal(t, 0, resp.Code, "查看购物车失败: %s", resp.Message)

		var data struct {
			CartID uint `json:"cart_id"`
			Item   *struct {
				BookID   uint  `json:"book_id"`
				Quantity int   `json:"quantity"`
				Subtotal int64 `json:"subtotal"`
			} `json:"item"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, created.CartID, data.CartID)
		require.NotNil(t, data.Item)
		assert.Equal(t, bookID, data.Item.BookID)
		assert.Equal(t, 2, data.Item.Quantity)
		assert.Equal(t, int64(8900*2), data.Item.Subtotal)
	})

	t.Run("没有购物车返回404", func(t *testing.T) {
		_, token := RegisterTestUser(t, "empty_viewer")

		resp := GetJSON(t, BaseURL+"/carts/me", token)
		assert.Equal(t, 40404, resp.Code)
	})
}
