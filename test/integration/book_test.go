package integration

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 图书模块集成测试：增删改查、搜索、库存调整

func TestBookCRUD(t *testing.T) {
	RequireServer(t)

	_, token := RegisterTestUser(t, "book_admin")

	t.Run("创建并查询", func(t *testing.T) {
		bookID := CreateTestBook(t, token, "集成测试图书", 10)

		resp := GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, bookID), "")
		require.Equal(t, 0, resp.Code)

		var data BookData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, "集成测试图书", data.Title)
		assert.Equal(t, 10, data.Stock)
	})

	t.Run("书名为空被拒绝", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
			"title":  "",
			"author": "作者",
			"price":  100,
		}, token)
		assert.Equal(t, 40900, resp.Code, "空书名应该返回参数错误")
	})

	t.Run("更新图书信息", func(t *testing.T) {
		bookID := CreateTestBook(t, token, "旧书名", 5)

		resp := PutJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, bookID), map[string]string{
			"title": "新书名",
		}, token)
		require.Equal(t, 0, resp.Code, "更新失败: %s", resp.Message)

		var data BookData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, "新书名", data.Title)
		assert.Equal(t, "测试作者", data.Author, "未提供的字段保持不变")
	})

	t.Run("删除图书", func(t *testing.T) {
		bookID := CreateTestBook(t, token, "待删除", 1)

		resp := DeleteJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, bookID), token)
		require.Equal(t, 0, resp.Code)

		// 删除后查询返回404
		resp = GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, bookID), "")
		assert.Equal(t, 40402, resp.Code)

		// 重复删除返回404
		resp = DeleteJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, bookID), token)
		assert.Equal(t, 40402, resp.Code)
	})
}

func TestBookSearch(t *testing.T) {
	RequireServer(t)

	_, token := RegisterTestUser(t, "searcher")
	CreateTestBook(t, token, "Go并发编程实战手册", 3)

	t.Run("命中关键词", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books/search?keyword=并发编程实战", "")
		require.Equal(t, 0, resp.Code)

		var data struct {
			List  []BookData `json:"list"`
			Count int        `json:"count"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.GreaterOrEqual(t, data.Count, 1)
	})

	t.Run("空白关键词被拒绝", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books/search?keyword=%20%20", "")
		assert.Equal(t, 40900, resp.Code, "空白关键词应该返回参数错误")
	})
}

func TestBookAdjustStock(t *testing.T) {
	RequireServer(t)

	_, token := RegisterTestUser(t, "stock_admin")
	bookID := CreateTestBook(t, token, "库存调整测试", 5)

	t.Run("进货", func(t *testing.T) {
		resp := PatchJSON(t, fmt.Sprintf("%s/books/%d/stock", BaseURL, bookID), map[string]int{
			"delta": 10,
		}, token)
		require.Equal(t, 0, resp.Code)
		assert.Equal(t, 15, GetBookStock(t, bookID))
	})

	t.Run("超量盘亏被拒绝且库存不变", func(t *testing.T) {
		before := GetBookStock(t, bookID)

		resp := PatchJSON(t, fmt.Sprintf("%s/books/%d/stock", BaseURL, bookID), map[string]int{
			"delta": -100,
		}, token)
		assert.Equal(t, 40001, resp.Code, "超量盘亏应该返回库存不足")
		assert.Equal(t, before, GetBookStock(t, bookID), "被拒绝的调整不应改变库存")
	})
}
