package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/nguyenthequang0802/bookshop/pkg/errors"
)

// fakeRepo 内存用户仓储,模拟UNIQUE索引的重复邮箱行为
type fakeRepo struct {
	users  map[uint]*User
	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[uint]*User), nextID: 1}
}

func (r *fakeRepo) Create(_ context.Context, u *User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return apperrors.ErrEmailDuplicate
		}
	}
	u.ID = r.nextID
	r.nextID++
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id uint) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeRepo) Update(_ context.Context, u *User) error {
	if _, ok := r.users[u.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("注册成功", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		u, err := svc.Register(ctx, "alice@example.com", "password123", "Alice")
		require.NoError(t, err)

		assert.NotZero(t, u.ID)
		assert.Equal(t, "alice@example.com", u.Email)
		assert.NotEqual(t, "password123", u.Password, "密码必须加密存储")
		assert.NoError(t, svc.ValidatePassword(u.Password, "password123"))
	})

	t.Run("邮箱格式错误", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		_, err := svc.Register(ctx, "not-an-email", "password123", "Alice")
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidParams))
	})

	t.Run("密码强度不足", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		for _, pwd := range []string{"short1", "allletters", "12345678"} {
			_, err := svc.Register(ctx, "alice@example.com", pwd, "Alice")
			assert.ErrorIs(t, err, apperrors.ErrWeakPassword, "密码: %s", pwd)
		}
	})

	t.Run("邮箱重复注册冲突", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		_, err := svc.Register(ctx, "alice@example.com", "password123", "Alice")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "alice@example.com", "password456", "Alice2")
		assert.ErrorIs(t, err, apperrors.ErrEmailDuplicate)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo())
	_, err := svc.Register(ctx, "bob@example.com", "password123", "Bob")
	require.NoError(t, err)

	t.Run("登录成功", func(t *testing.T) {
		u, err := svc.Login(ctx, "bob@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "bob@example.com", u.Email)
	})

	t.Run("用户不存在", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "password123")
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})

	// 密码错误与用户不存在是两种可区分的错误
	t.Run("密码错误", func(t *testing.T) {
		_, err := svc.Login(ctx, "bob@example.com", "wrongpass1")
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
		assert.NotErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}
