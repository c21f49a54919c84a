package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"basket-service/internal/basket/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "db", "basket.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func entry(name, store, price string) model.Entry {
	return model.Entry{Name: name, Store: store, Price: decimal.RequireFromString(price)}
}

func TestInsertProductsIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	added, err := s.InsertProducts(ctx, []model.Entry{
		entry("Молоко 0,95л", "Пятерочка", "95.50"),
		entry("Молоко 0,95л", "Дикси", "99"),
		entry("Молоко 0,95л", "Пятерочка", "95.5"), // та же цена в другой записи
	})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	added, err = s.InsertProducts(ctx, []model.Entry{
		entry("Молоко 0,95л", "Дикси", "99"),
		entry("Молоко 0,95л", "Дикси", "97"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	all, err := s.AllProducts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Пятерочка", all[0].Store)
	assert.True(t, all[0].Price.Equal(decimal.RequireFromString("95.5")))
	assert.True(t, all[2].Price.Equal(decimal.NewFromInt(97)))
}

func TestClearProducts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.InsertProducts(ctx, []model.Entry{entry("Хлеб", "A", "40"), entry("Сыр", "B", "300")})
	require.NoError(t, err)

	n, err := s.ClearProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := s.AllProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAdmins(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	ok, err := s.IsAdmin(ctx, "42")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.AddAdmin(ctx, "42"))
	require.NoError(t, s.AddAdmin(ctx, "42"))
	require.NoError(t, s.AddAdmin(ctx, "7"))
	assert.Error(t, s.AddAdmin(ctx, ""))

	ok, err = s.IsAdmin(ctx, "42")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.IsAdmin(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)

	ids, err := s.Admins(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"42", "7"}, ids)
}
