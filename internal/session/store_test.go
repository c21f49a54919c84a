package session

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"basket-service/internal/basket/model"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestStoreAddAccumulates(t *testing.T) {
	s := NewStore()
	s.Add("u1", "Хлеб", dec("1"))
	s.Add("u1", "Молоко 0,95л", dec("2"))
	got := s.Add("u1", "Хлеб", dec("1.5"))
	assert.True(t, got.Equal(dec("2.5")))

	lines := s.Lines("u1")
	require.Len(t, lines, 2)
	assert.Equal(t, "Хлеб", lines[0].Name)
	assert.True(t, lines[0].Quantity.Equal(dec("2.5")))
	assert.Equal(t, "Молоко 0,95л", lines[1].Name)

	assert.Empty(t, s.Lines("u2"))
}

func TestStoreRemoveAndClear(t *testing.T) {
	s := NewStore()
	s.Add("u1", "A", dec("1"))
	s.Add("u1", "B", dec("1"))
	s.Add("u1", "C", dec("1"))

	assert.True(t, s.Remove("u1", "B"))
	assert.False(t, s.Remove("u1", "B"))
	assert.False(t, s.Remove("nobody", "A"))

	lines := s.Lines("u1")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"A", "C"}, []string{lines[0].Name, lines[1].Name})

	s.Clear("u1")
	assert.Empty(t, s.Lines("u1"))
	assert.Equal(t, 1, s.Len())
}

func TestStoreEnd(t *testing.T) {
	s := NewStore()
	s.Add("u1", "A", dec("2"))
	s.Add("u1", "B", dec("0.5"))
	assert.True(t, s.End("u1").Equal(dec("2.5")))
	assert.Equal(t, 0, s.Len())
	assert.True(t, s.End("u1").IsZero())
}

func TestStorePending(t *testing.T) {
	s := NewStore()
	_, ok := s.Pending("u1")
	assert.False(t, ok)

	s.SetPending("u1", model.Resolution{Kind: model.AmbiguousGroups, Candidates: []string{"кефир", "молоко"}})
	p, ok := s.Pending("u1")
	require.True(t, ok)
	assert.Equal(t, model.AmbiguousGroups, p.Kind)

	s.ClearPending("u1")
	_, ok = s.Pending("u1")
	assert.False(t, ok)
}

func TestStoreSweep(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewStore()
	s.now = func() time.Time { return now }

	s.Add("old", "A", dec("1"))
	now = now.Add(2 * time.Hour)
	s.Add("fresh", "A", dec("1"))

	assert.Equal(t, 1, s.Sweep(time.Hour))
	assert.Empty(t, s.Lines("old"))
	assert.Len(t, s.Lines("fresh"), 1)
}

func TestStoreConcurrentAdds(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add("u1", "Хлеб", dec("1"))
			_ = s.Lines("u1")
		}()
	}
	wg.Wait()
	lines := s.Lines("u1")
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Quantity.Equal(dec("100")))
}
