package integration

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 订单模块集成测试：结算、取消、列表
// 结算与取消均在单事务内完成,库存变化通过查询图书接口验证

func checkout(t *testing.T, token string, cartID uint) *Response {
	t.Helper()
	return PostJSON(t, BaseURL+"/orders/checkout", map[string]interface{}{
		"cart_id": cartID,
	}, token)
}

func TestCheckout(t *testing.T) {
	RequireServer(t)

	t.Run("正常结算", func(t *testing.T) {
		_, token := RegisterTestUser(t, "buyer")
		bookID := CreateTestBook(t, token, "结算测试图书", 10)
		cart := CreateTestCart(t, token, bookID, 3)

		resp := checkout(t, token, cart.CartID)
		require.Equal(t, 0, resp.Code, "结算失败: %s", resp.Message)

		var data CheckoutData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.NotZero(t, data.OrderID)
		assert.NotEmpty(t, data.OrderNo)
		assert.Equal(t, 3, data.Quantity)
		assert.Equal(t, int64(8900*3), data.Total)
		assert.Equal(t, "267.00", data.TotalYuan)

		// 结算时才扣减库存
		assert.Equal(t, 7, GetBookStock(t, bookID))

		// 购物车已清空
		viewResp := GetJSON(t, BaseURL+"/carts/me", token)
		assert.Equal(t, 40404, viewResp.Code)
	})

	t.Run("数量等于库存允许结算", func(t *testing.T) {
		_, token := RegisterTestUser(t, "buyer_all")
		bookID := CreateTestBook(t, token, "清仓测试图书", 5)
		cart := CreateTestCart(t, token, bookID, 5)

		resp := checkout(t, token, cart.CartID)
		require.Equal(t, 0, resp.Code)
		assert.Equal(t, 0, GetBookStock(t, bookID))
	})

	t.Run("库存不足结算失败", func(t *testing.T) {
		_, token := RegisterTestUser(t, "buyer_short")
		bookID := CreateTestBook(t, token, "缺货测试图书", 5)
		cart := CreateTestCart(t, token, bookID, 5)

		// 入车后库存被其他途径扣减
		adjResp := PatchJSON(t, fmt.Sprintf("%s/books/%d/stock", BaseURL, bookID), map[string]interface{}{
			"delta": -3,
		}, token)
		require.Equal(t, 0, adjResp.Code)

		resp := checkout(t, token, cart.CartID)
		assert.Equal(t, 40001, resp.Code)

		// 结算失败不影响库存与购物车
		assert.Equal(t, 2, GetBookStock(t, bookID))
		viewResp := GetJSON(t, BaseURL+"/carts/me", token)
		assert.Equal(t, 0, viewResp.Code)
	})

	t.Run("重复结算同一购物车", func(t *testing.T) {
		_, token := RegisterTestUser(t, "buyer_twice")
		bookID := CreateTestBook(t, token, "重复结算测试图书", 10)
		cart := CreateTestCart(t, token, bookID, 2)

		first := checkout(t, token, cart.CartID)
		require.Equal(t, 0, first.Code)

		second := checkout(t, token, cart.CartID)
		assert.Equal(t, 40404, second.Code)

		// 库存只扣减一次
		assert.Equal(t, 8, GetBookStock(t, bookID))
	})

	t.Run("购物车不存在", func(t *testing.T) {
		_, token := RegisterTestUser(t, "buyer_nocart")
		resp := checkout(t, token, 999999)
		assert.Equal(t, 40404, resp.Code)
	})
}

func TestCancelOrder(t *testing.T) {
	RequireServer(t)

	t.Run("取消订单恢复库存", func(t *testing.T) {
		_, token := RegisterTestUser(t, "canceller")
		bookID := CreateTestBook(t, token, "取消测试图书", 10)
		cart := CreateTestCart(t, token, bookID, 4)

		resp := checkout(t, token, cart.CartID)
		require.Equal(t, 0, resp.Code)
		var data CheckoutData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		require.Equal(t, 6, GetBookStock(t, bookID))

		cancelResp := DeleteJSON(t, fmt.Sprintf("%s/orders/%d", BaseURL, data.OrderID), token)
		assert.Equal(t, 0, cancelResp.Code)
		assert.Equal(t, 10, GetBookStock(t, bookID))

		// 重复取消:订单已不存在,库存不会二次恢复
		again := DeleteJSON(t, fmt.Sprintf("%s/orders/%d", BaseURL, data.OrderID), token)
		assert.Equal(t, 40403, again.Code)
		assert.Equal(t, 10, GetBookStock(t, bookID))
	})

	t.Run("订单不存在", func(t *testing.T) {
		_, token := RegisterTestUser(t, "canceller_none")
		resp := DeleteJSON(t, BaseURL+"/orders/999999", token)
		assert.Equal(t, 40403, resp.Code)
	})
}

func TestListOrders(t *testing.T) {
	RequireServer(t)

	_, token := RegisterTestUser(t, "lister")
	bookID := CreateTestBook(t, token, "列表测试图书", 20)

	for i := 0; i < 2; i++ {
		cart := CreateTestCart(t, token, bookID, 1)
		resp := checkout(t, token, cart.CartID)
		require.Equal(t, 0, resp.Code)
	}

	t.Run("查询本人订单", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/orders?page=1&page_size=10", token)
		require.Equal(t, 0, resp.Code)

		var data struct {
			List []struct {
				OrderNo  string `json:"order_no"`
				BookID   uint   `json:"book_id"`
				Quantity int    `json:"quantity"`
				Price    int64  `json:"price"`
			} `json:"list"`
			Total int64 `json:"total"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, int64(2), data.Total)
		require.Len(t, data.List, 2)
		for _, item := range data.List {
			assert.Equal(t, bookID, item.BookID)
			assert.Equal(t, int64(8900), item.Price)
		}
	})

	t.Run("其他用户看不到订单", func(t *testing.T) {
		_, otherToken := RegisterTestUser(t, "lister_other")
		resp := GetJSON(t, BaseURL+"/orders", otherToken)
		require.Equal(t, 0, resp.Code)

		var data struct {
			Total int64 `json:"total"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, int64(0), data.Total)
	})
}
