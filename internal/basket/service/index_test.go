package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"basket-service/internal/basket/model"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func e(name, store, price string) model.Entry {
	return model.Entry{Name: name, Store: store, Price: dec(price)}
}

func TestBuildIndexGroupsByKey(t *testing.T) {
	idx := BuildIndex([]model.Entry{
		e("Молоко 1л", "Дикси", "99"),
		e("Молоко 0,95л", "Пятерочка", "95"),
		e("молоко", "Магнит", "90"),
		e("Молоко 0,95л", "Дикси", "97"),
		e("Кефир 1%", "Дикси", "80"),
	})

	assert.Equal(t, 4, idx.Len())
	assert.Equal(t, []string{"кефир", "молоко"}, idx.Keys())

	g, ok := idx.Group("молоко")
	require.True(t, ok)
	assert.Equal(t, []string{"Молоко 0,95л", "Молоко 1л", "молоко"}, g.Variants)

	key, ok := idx.KeyOf("Молоко 1л")
	require.True(t, ok)
	assert.Equal(t, "молоко", key)

	assert.Equal(t, []string{"Дикси", "Пятерочка"}, idx.Prices().Stores("Молоко 0,95л"))
	_, ok = idx.Group("сыр")
	assert.False(t, ok)
}

func TestIndexPriceIsMinimum(t *testing.T) {
	idx := BuildIndex([]model.Entry{
		e("Хлеб", "A", "50"),
		e("Хлеб", "A", "44"),
		e("Хлеб", "A", "47"),
	})
	p, ok := idx.Prices().Price("Хлеб", "A")
	require.True(t, ok)
	assert.True(t, p.Equal(dec("44")))

	t.Run("higher price does not change the minimum", func(t *testing.T) {
		next := idx.With([]model.Entry{e("Хлеб", "A", "60")})
		p, _ := next.Prices().Price("Хлеб", "A")
		assert.True(t, p.Equal(dec("44")))
	})

	t.Run("lower price always does", func(t *testing.T) {
		next := idx.With([]model.Entry{e("Хлеб", "A", "43.99")})
		p, _ := next.Prices().Price("Хлеб", "A")
		assert.True(t, p.Equal(dec("43.99")))

		// старый снимок не тронут
		old, _ := idx.Prices().Price("Хлеб", "A")
		assert.True(t, old.Equal(dec("44")))
	})
}

func TestIndexWithIsCopyOnWrite(t *testing.T) {
	idx := BuildIndex([]model.Entry{e("Молоко 1л", "A", "90")})
	next := idx.With([]model.Entry{e("Молоко 0,5л", "B", "50"), e("Сыр", "B", "300")})

	g, _ := idx.Group("молоко")
	assert.Equal(t, []string{"Молоко 1л"}, g.Variants)
	assert.Equal(t, 1, idx.Len())
	assert.False(t, idx.HasProduct("Сыр"))

	g, _ = next.Group("молоко")
	assert.Equal(t, []string{"Молоко 0,5л", "Молоко 1л"}, g.Variants)
	assert.Equal(t, 3, next.Len())
	assert.True(t, next.HasProduct("Сыр"))
}

func TestBuildIndexIsDeterministic(t *testing.T) {
	entries := []model.Entry{
		e("Сыр 200г", "B", "150"),
		e("Хлеб", "A", "40"),
		e("Сыр 300г", "A", "210"),
		e("Хлеб", "B", "42"),
	}
	a := BuildIndex(entries)
	b := BuildIndex(entries)
	assert.Equal(t, a.Groups(), b.Groups())
	assert.Equal(t, a.Prices(), b.Prices())

	// повторная загрузка того же набора ничего не меняет
	c := a.With(entries)
	assert.Equal(t, a.Groups(), c.Groups())
	assert.Equal(t, a.Prices(), c.Prices())
}

func TestBuildIndexSkipsInvalidEntries(t *testing.T) {
	idx := BuildIndex([]model.Entry{
		{Name: "", Store: "A", Price: dec("1")},
		{Name: "Хлеб", Store: "", Price: dec("1")},
		{Name: "Сыр", Store: "A", Price: dec("0")},
		{Name: "Соль", Store: "A", Price: dec("-5")},
	})
	assert.Equal(t, 0, idx.Len())
	assert.Empty(t, idx.Keys())
	assert.Empty(t, idx.Prices())
}

func TestSuggestions(t *testing.T) {
	idx := BuildIndex([]model.Entry{
		e("Хлеб", "A", "40"),
		e("Молоко 1л", "A", "90"),
		e("Молоко 0,5л", "A", "50"),
		e("Молоко 2л", "A", "150"),
		e("Кефир 1%", "A", "80"),
	})
	s := idx.Suggestions(2)
	require.Len(t, s, 2)
	assert.Equal(t, "кефир", s[0].Key)
	assert.Equal(t, "молоко", s[1].Key)
	assert.Equal(t, []string{"Молоко 0,5л", "Молоко 1л"}, s[1].Examples)

	assert.Len(t, idx.Suggestions(0), 3)
	assert.Len(t, idx.Suggestions(100), 3)
}
