package order

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyenthequang0802/bookshop/internal/domain/book"
	"github.com/nguyenthequang0802/bookshop/internal/domain/cart"
	"github.com/nguyenthequang0802/bookshop/internal/domain/order"
	"github.com/nguyenthequang0802/bookshop/pkg/metrics"
)

func TestMain(m *testing.M) {
	metrics.InitMetrics()
	os.Exit(m.Run())
}

// =========================================
// 测试替身
// =========================================

// fakeTxManager 直通事务管理器
// 单元测试不验证回滚,回滚语义由集成测试覆盖
type fakeTxManager struct{}

func (fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// recordingPublisher 记录发布的事件
type recordingPublisher struct {
	created   []OrderCreatedEvent
	cancelled []OrderCancelledEvent
}

func (p *recordingPublisher) PublishOrderCreated(_ context.Context, e OrderCreatedEvent) error {
	p.created = append(p.created, e)
	return nil
}

func (p *recordingPublisher) PublishOrderCancelled(_ context.Context, e OrderCancelledEvent) error {
	p.cancelled = append(p.cancelled, e)
	return nil
}

type fakeCartRepo struct {
	carts  map[uint]*cart.Cart
	nextID uint
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[uint]*cart.Cart), nextID: 1}
}

func (r *fakeCartRepo) Create(_ context.Context, c *cart.Cart) error {
	c.ID = r.nextID
	r.nextID++
	r.carts[c.ID] = c
	return nil
}

func (r *fakeCartRepo) FindByID(_ context.Context, id uint) (*cart.Cart, error) {
	c, ok := r.carts[id]
	if !ok {
		return nil, cart.ErrCartNotFound
	}
	return c, nil
}

func (r *fakeCartRepo) FindByUserID(_ context.Context, userID uint) (*cart.Cart, error) {
	for _, c := range r.carts {
		if c.UserID == userID {
			return c, nil
		}
	}
	return nil, cart.ErrCartNotFound
}

func (r *fakeCartRepo) Update(_ context.Context, c *cart.Cart) error {
	if _, ok := r.carts[c.ID]; !ok {
		return cart.ErrCartNotFound
	}
	r.carts[c.ID] = c
	return nil
}

func (r *fakeCartRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.carts[id]; !ok {
		return cart.ErrCartNotFound
	}
	delete(r.carts, id)
	return nil
}

func (r *fakeCartRepo) LockByID(ctx context.Context, id uint) (*cart.Cart, error) {
	return r.FindByID(ctx, id)
}

type fakeItemRepo struct {
	items  map[uint]*cart.CartItem
	nextID uint
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[uint]*cart.CartItem), nextID: 1}
}

func (r *fakeItemRepo) Create(_ context.Context, item *cart.CartItem) error {
	item.ID = r.nextID
	r.nextID++
	r.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) FindByID(_ context.Context, id uint) (*cart.CartItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, cart.ErrCartNotFound
	}
	return item, nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *cart.CartItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.items[id]; !ok {
		return cart.ErrCartNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeBookRepo struct {
	books map[uint]*book.Book
}

func (r *fakeBookRepo) Create(_ context.Context, _ *book.Book) error { return nil }
func (r *fakeBookRepo) FindByID(_ context.Context, id uint) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}
func (r *fakeBookRepo) Update(_ context.Context, _ *book.Book) error { return nil }
func (r *fakeBookRepo) Delete(_ context.Context, _ uint) error       { return nil }
func (r *fakeBookRepo) SearchByKeyword(_ context.Context, _ string) ([]*book.Book, error) {
	return nil, nil
}
func (r *fakeBookRepo) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	return r.FindByID(ctx, id)
}
func (r *fakeBookRepo) UpdateStock(_ context.Context, id uint, delta int) error {
	b, ok := r.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	if b.Stock+delta < 0 {
		return book.ErrInsufficientStock
	}
	b.Stock += delta
	return nil
}

type fakeOrderRepo struct {
	orders map[uint]*order.Order
	nextID uint
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uint]*order.Order), nextID: 1}
}

func (r *fakeOrderRepo) Create(_ context.Context, o *order.Order) error {
	o.ID = r.nextID
	r.nextID++
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uint) (*order.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return o, nil
}

func (r *fakeOrderRepo) FindByOrderNo(_ context.Context, orderNo string) (*order.Order, error) {
	for _, o := range r.orders {
		if o.OrderNo == orderNo {
			return o, nil
		}
	}
	return nil, order.ErrOrderNotFound
}

func (r *fakeOrderRepo) ListByUserID(_ context.Context, userID uint, _, _ int) ([]*order.Order, int64, error) {
	var out []*order.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.orders[id]; !ok {
		return order.ErrOrderNotFound
	}
	delete(r.orders, id)
	return nil
}

// =========================================
// 测试环境
// =========================================

type testEnv struct {
	cartRepo  *fakeCartRepo
	itemRepo  *fakeItemRepo
	bookRepo  *fakeBookRepo
	orderRepo *fakeOrderRepo
	events    *recordingPublisher
	checkout  *CheckoutUseCase
	cancel    *CancelOrderUseCase
	list      *ListOrdersUseCase
}

func newTestEnv(stock int) *testEnv {
	env := &testEnv{
		cartRepo:  newFakeCartRepo(),
		itemRepo:  newFakeItemRepo(),
		bookRepo:  &fakeBookRepo{books: map[uint]*book.Book{10: {ID: 10, Title: "Go语言实战", Price: 5900, Stock: stock}}},
		orderRepo: newFakeOrderRepo(),
		events:    &recordingPublisher{},
	}
	tx := fakeTxManager{}
	env.checkout = NewCheckoutUseCase(env.cartRepo, env.itemRepo, env.bookRepo, env.orderRepo, tx, env.events)
	env.cancel = NewCancelOrderUseCase(env.orderRepo, env.bookRepo, tx, env.events)
	env.list = NewListOrdersUseCase(env.orderRepo)
	return env
}

// seedCart 创建用户1、图书10的购物车
func (env *testEnv) seedCart(t *testing.T, quantity int) *cart.Cart {
	t.Helper()
	ctx := context.Background()
	item := cart.NewCartItem(10, quantity)
	require.NoError(t, env.itemRepo.Create(ctx, item))
	c := cart.NewCart(1, item)
	require.NoError(t, env.cartRepo.Create(ctx, c))
	return c
}

// =========================================
// 结算测试
// =========================================

func TestCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("正常结算", func(t *testing.T) {
		env := newTestEnv(5)
		c := env.seedCart(t, 3)

		resp, err := env.checkout.Execute(ctx, CheckoutRequest{CartID: c.ID})
		require.NoError(t, err)

		assert.NotZero(t, resp.OrderID)
		assert.Equal(t, 3, resp.Quantity)
		assert.Equal(t, int64(5900*3), resp.Total)
		assert.Equal(t, "177.00", resp.TotalYuan)

		// 库存已扣减
		assert.Equal(t, 2, env.bookRepo.books[10].Stock)
		// 购物车已删除
		_, err = env.cartRepo.FindByID(ctx, c.ID)
		assert.ErrorIs(t, err, cart.ErrCartNotFound)
		// 事件已发布
		require.Len(t, env.events.created, 1)
		assert.Equal(t, resp.OrderNo, env.events.created[0].OrderNo)
	})

	t.Run("数量恰好等于库存允许结算", func(t *testing.T) {
		env := newTestEnv(5)
		c := env.seedCart(t, 5)

		_, err := env.checkout.Execute(ctx, CheckoutRequest{CartID: c.ID})
		require.NoError(t, err)
		assert.Equal(t, 0, env.bookRepo.books[10].Stock)
	})

	t.Run("库存不足结算失败且购物车保留", func(t *testing.T) {
		env := newTestEnv(5)
		c := env.seedCart(t, 5)
		// 结算前库存被其他订单消耗
		env.bookRepo.books[10].Stock = 2

		_, err := env.checkout.Execute(ctx, CheckoutRequest{CartID: c.ID})
		assert.ErrorIs(t, err, book.ErrInsufficientStock)

		// 库存未变,购物车仍在,无订单创建
		assert.Equal(t, 2, env.bookRepo.books[10].Stock)
		_, err = env.cartRepo.FindByID(ctx, c.ID)
		assert.NoError(t, err)
		assert.Empty(t, env.orderRepo.orders)
		assert.Empty(t, env.events.created)
	})

	t.Run("空购物车无法结算", func(t *testing.T) {
		env := newTestEnv(5)
		c := cart.NewCart(1, nil)
		require.NoError(t, env.cartRepo.Create(ctx, c))

		_, err := env.checkout.Execute(ctx, CheckoutRequest{CartID: c.ID})
		assert.ErrorIs(t, err, cart.ErrCartEmpty)
	})

	t.Run("购物车不存在", func(t *testing.T) {
		env := newTestEnv(5)
		_, err := env.checkout.Execute(ctx, CheckoutRequest{CartID: 999})
		assert.ErrorIs(t, err, cart.ErrCartNotFound)
	})

	t.Run("重复结算同一购物车", func(t *testing.T) {
		env := newTestEnv(5)
		c := env.seedCart(t, 2)

		_, err := env.checkout.Execute(ctx, CheckoutRequest{CartID: c.ID})
		require.NoError(t, err)

		// 购物车已删除,第二次结算失败,库存只扣一次
		_, err = env.checkout.Execute(ctx, CheckoutRequest{CartID: c.ID})
		assert.ErrorIs(t, err, cart.ErrCartNotFound)
		assert.Equal(t, 3, env.bookRepo.books[10].Stock)
	})
}

// =========================================
// 取消订单测试
// =========================================

func TestCancelOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("取消回补库存并删除订单", func(t *testing.T) {
		env := newTestEnv(5)
		c := env.seedCart(t, 3)
		resp, err := env.checkout.Execute(ctx, CheckoutRequest{CartID: c.ID})
		require.NoError(t, err)
		require.Equal(t, 2, env.bookRepo.books[10].Stock)

		err = env.cancel.Execute(ctx, CancelOrderRequest{OrderID: resp.OrderID})
		require.NoError(t, err)

		// 结算+取消 = 库存完全恢复
		assert.Equal(t, 5, env.bookRepo.books[10].Stock)
		_, err = env.orderRepo.FindByID(ctx, resp.OrderID)
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
		// 取消事件已发布
		require.Len(t, env.events.cancelled, 1)
		assert.Equal(t, resp.OrderNo, env.events.cancelled[0].OrderNo)
	})

	t.Run("重复取消返回订单不存在", func(t *testing.T) {
		env := newTestEnv(5)
		c := env.seedCart(t, 3)
		resp, err := env.checkout.Execute(ctx, CheckoutRequest{CartID: c.ID})
		require.NoError(t, err)

		require.NoError(t, env.cancel.Execute(ctx, CancelOrderRequest{OrderID: resp.OrderID}))

		// 第二次取消失败,库存不会重复回补
		err = env.cancel.Execute(ctx, CancelOrderRequest{OrderID: resp.OrderID})
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
		assert.Equal(t, 5, env.bookRepo.books[10].Stock)
	})

	t.Run("取消不存在的订单", func(t *testing.T) {
		env := newTestEnv(5)
		err := env.cancel.Execute(ctx, CancelOrderRequest{OrderID: 999})
		assert.ErrorIs(t, err, order.ErrOrderNotFound)
	})
}

// =========================================
// 订单列表测试
// =========================================

func TestListOrders(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(10)

	// 两次结算产生两个订单
	c1 := env.seedCart(t, 2)
	_, err := env.checkout.Execute(ctx, CheckoutRequest{CartID: c1.ID})
	require.NoError(t, err)
	c2 := env.seedCart(t, 3)
	_, err = env.checkout.Execute(ctx, CheckoutRequest{CartID: c2.ID})
	require.NoError(t, err)

	resp, err := env.list.Execute(ctx, ListOrdersRequest{UserID: 1, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Total)
	assert.Len(t, resp.Orders, 2)

	// 其他用户没有订单
	resp, err = env.list.Execute(ctx, ListOrdersRequest{UserID: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.Total)
	assert.Empty(t, resp.Orders)
}
