// Package session хранит корзины покупателей между запросами.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"basket-service/internal/basket/model"
)

type session struct {
	lines    map[string]decimal.Decimal
	order    []string // порядок добавления
	pending  *model.Resolution
	lastSeen time.Time
}

// Store: корзины по идентификатору пользователя. Наружу отдаются только копии.
type Store struct {
	mu  sync.RWMutex
	m   map[string]*session
	now func() time.Time
}

func NewStore() *Store {
	return &Store{m: make(map[string]*session), now: time.Now}
}

// get под write-локом: создаёт сессию при первом обращении.
func (s *Store) get(user string) *session {
	ss, ok := s.m[user]
	if !ok {
		ss = &session{lines: make(map[string]decimal.Decimal)}
		s.m[user] = ss
	}
	ss.lastSeen = s.now()
	return ss
}

// Add добавляет товар; повторное добавление того же наименования увеличивает количество.
// Возвращает итоговое количество в корзине.
func (s *Store) Add(user, product string, qty decimal.Decimal) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	ss := s.get(user)
	cur, ok := ss.lines[product]
	if !ok {
		ss.order = append(ss.order, product)
	}
	ss.lines[product] = cur.Add(qty)
	return ss.lines[product]
}

// Remove убирает позицию целиком. false, если такой позиции не было.
func (s *Store) Remove(user, product string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ss, ok := s.m[user]
	if !ok {
		return false
	}
	if _, ok := ss.lines[product]; !ok {
		return false
	}
	delete(ss.lines, product)
	for i, p := range ss.order {
		if p == product {
			ss.order = append(ss.order[:i:i], ss.order[i+1:]...)
			break
		}
	}
	ss.lastSeen = s.now()
	return true
}

// Lines: копия корзины в порядке добавления.
func (s *Store) Lines(user string) []model.CartLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ss, ok := s.m[user]
	if !ok {
		return nil
	}
	out := make([]model.CartLine, 0, len(ss.order))
	for _, p := range ss.order {
		out = append(out, model.CartLine{Name: p, Quantity: ss.lines[p]})
	}
	return out
}

// Clear опустошает корзину, сессия остаётся.
func (s *Store) Clear(user string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ss := s.get(user)
	ss.lines = make(map[string]decimal.Decimal)
	ss.order = nil
	ss.pending = nil
}

// End завершает сессию и возвращает, сколько единиц товара было в корзине.
func (s *Store) End(user string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	if ss, ok := s.m[user]; ok {
		for _, q := range ss.lines {
			total = total.Add(q)
		}
		delete(s.m, user)
	}
	return total
}

// SetPending запоминает последний ответ резолвера, чтобы потом проверить выбор.
func (s *Store) SetPending(user string, r model.Resolution) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rr := r
	s.get(user).pending = &rr
}

func (s *Store) Pending(user string) (model.Resolution, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ss, ok := s.m[user]
	if !ok || ss.pending == nil {
		return model.Resolution{}, false
	}
	return *ss.pending, true
}

func (s *Store) ClearPending(user string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ss, ok := s.m[user]; ok {
		ss.pending = nil
	}
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

// Sweep удаляет сессии, не трогавшиеся дольше idle. Возвращает число удалённых.
func (s *Store) Sweep(idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-idle)
	n := 0
	for u, ss := range s.m {
		if ss.lastSeen.Before(cutoff) {
			delete(s.m, u)
			n++
		}
	}
	return n
}

// RunSweeper чистит протухшие сессии раз в every, пока жив ctx.
func (s *Store) RunSweeper(ctx context.Context, every, idle time.Duration, onSweep func(n int)) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.Sweep(idle); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}
