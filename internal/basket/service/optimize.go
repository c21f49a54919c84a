package service

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"basket-service/internal/basket/model"
)

// как часто проверяем ctx во время перебора
const ctxCheckEvery = 1024

var hundred = decimal.NewFromInt(100)

// Optimizer раскладывает корзину по магазинам: каждая позиция покупается ровно в одном
// магазине, всего магазинов не больше cap, суммарная стоимость минимальна.
//
// Перебираются все подмножества магазинов-кандидатов размером 1..cap; внутри
// подмножества каждая позиция независимо уходит в самый дешёвый магазин. Решение точное.
type Optimizer struct {
	maxSubsets int
	logger     zerolog.Logger
}

// maxSubsets <= 0 снимает ограничение перебора.
func NewOptimizer(maxSubsets int, logger zerolog.Logger) *Optimizer {
	return &Optimizer{
		maxSubsets: maxSubsets,
		logger:     logger.With().Str("component", "optimizer").Logger(),
	}
}

// cartMatrix: корзина, разложенная по магазинам-кандидатам.
type cartMatrix struct {
	// позиции отсортированы по имени, магазины-кандидаты по алфавиту
	lines  []model.CartLine
	stores []string

	// [позиция][магазин]; cost = цена * количество
	cost   [][]decimal.Decimal
	prices [][]decimal.Decimal
	has    [][]bool
}

// prepareCart проверяет корзину и строит матрицу стоимостей.
// Повторяющиеся позиции складываются.
func prepareCart(lines []model.CartLine, prices PriceTable) (*cartMatrix, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	merged := make(map[string]decimal.Decimal, len(lines))
	for _, l := range lines {
		if !l.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: %s", ErrInvalidQuantity, l.Name)
		}
		merged[l.Name] = merged[l.Name].Add(l.Quantity)
	}

	var unknown []string
	storeSet := make(map[string]struct{})
	m := &cartMatrix{lines: make([]model.CartLine, 0, len(merged))}
	for name, qty := range merged {
		if len(prices[name]) == 0 {
			unknown = append(unknown, name)
			continue
		}
		m.lines = append(m.lines, model.CartLine{Name: name, Quantity: qty})
		for s := range prices[name] {
			storeSet[s] = struct{}{}
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, &UnknownProductsError{Names: unknown}
	}
	sort.Slice(m.lines, func(i, j int) bool { return m.lines[i].Name < m.lines[j].Name })

	for s := range storeSet {
		m.stores = append(m.stores, s)
	}
	sort.Strings(m.stores)

	m.cost = make([][]decimal.Decimal, len(m.lines))
	m.has = make([][]bool, len(m.lines))
	m.prices = make([][]decimal.Decimal, len(m.lines))
	for i, l := range m.lines {
		m.cost[i] = make([]decimal.Decimal, len(m.stores))
		m.has[i] = make([]bool, len(m.stores))
		m.prices[i] = make([]decimal.Decimal, len(m.stores))
		for j, s := range m.stores {
			if p, ok := prices.Price(l.Name, s); ok {
				m.prices[i][j] = p
				m.cost[i][j] = p.Mul(l.Quantity)
				m.has[i][j] = true
			}
		}
	}
	return m, nil
}

// choice: лучшая раскладка для одного подмножества магазинов.
type choice struct {
	total  decimal.Decimal
	assign []int // позиция → индекс магазина
	used   []int // задействованные магазины, по возрастанию
}

// evaluate раскладывает корзину внутри подмножества subset (индексы по возрастанию).
// При равной цене выигрывает магазин, идущий раньше по алфавиту.
func (m *cartMatrix) evaluate(subset []int) (choice, bool) {
	c := choice{total: decimal.Zero, assign: make([]int, len(m.lines))}
	usedSet := make(map[int]struct{}, len(subset))
	for i := range m.lines {
		best := -1
		for _, s := range subset {
			if !m.has[i][s] {
				continue
			}
			if best < 0 || m.cost[i][s].LessThan(m.cost[i][best]) {
				best = s
			}
		}
		if best < 0 {
			return choice{}, false
		}
		c.assign[i] = best
		c.total = c.total.Add(m.cost[i][best])
		usedSet[best] = struct{}{}
	}
	for s := range usedSet {
		c.used = append(c.used, s)
	}
	sort.Ints(c.used)
	return c, true
}

// better: дешевле; при равенстве меньше магазинов; затем меньший по алфавиту набор.
// Индексы магазинов идут в алфавитном порядке, поэтому сравниваем их напрямую.
func better(a, b choice) bool {
	if cmp := a.total.Cmp(b.total); cmp != 0 {
		return cmp < 0
	}
	if len(a.used) != len(b.used) {
		return len(a.used) < len(b.used)
	}
	return slices.Compare(a.used, b.used) < 0
}

// Optimize считает оптимальную раскладку корзины не более чем по maxStores магазинам.
func (o *Optimizer) Optimize(ctx context.Context, lines []model.CartLine, prices PriceTable, maxStores int) (*model.Plan, error) {
	start := time.Now()
	if maxStores <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStoreCap, maxStores)
	}
	m, err := prepareCart(lines, prices)
	if err != nil {
		return nil, err
	}

	// в оптимальном плане магазинов не больше, чем позиций
	n := len(m.stores)
	k := min(maxStores, n, len(m.lines))
	exhaustive := o.maxSubsets <= 0 || subsetCount(n, k, o.maxSubsets) <= o.maxSubsets
	if !exhaustive && k < min(n, len(m.lines)) {
		return nil, fmt.Errorf("%w: %d candidate stores, cap %d exceeds %d subsets",
			ErrTooManyStores, n, maxStores, o.maxSubsets)
	}
	// лимит не связывает, а перебор слишком велик: ответом будет поштучный минимум,
	// одиночные магазины перебираем только ради базовой линии
	top := k
	if !exhaustive {
		top = 1
	}

	var (
		best, single      choice
		haveBest, haveOne bool
		evaluated         int
	)
	for size := 1; size <= top; size++ {
		err := combinations(n, size, func(subset []int) error {
			evaluated++
			if evaluated%ctxCheckEvery == 0 && ctx.Err() != nil {
				return ctx.Err()
			}
			c, ok := m.evaluate(subset)
			if !ok {
				return nil
			}
			if size == 1 && (!haveOne || better(c, single)) {
				single, haveOne = c, true
			}
			if !haveBest || better(c, best) {
				best, haveBest = c, true
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	if !exhaustive {
		evaluated++
		if c, ok := m.evaluate(m.allStores()); ok && (!haveBest || better(c, best)) {
			best, haveBest = c, true
		}
	}

	o.logger.Debug().
		Int("lines", len(m.lines)).
		Int("candidates", n).
		Int("cap", maxStores).
		Int("subsets", evaluated).
		Bool("exhaustive", exhaustive).
		Dur("elapsed", time.Since(start)).
		Msg("optimize")

	if !haveBest {
		return nil, &InfeasibleError{MaxStores: maxStores, Candidates: n}
	}

	plan := m.plan(best)
	plan.MaxStores = maxStores
	plan.SubsetsEvaluated = evaluated
	if haveOne {
		base := single.total
		plan.Baseline = &model.StoreTotal{Store: m.stores[single.used[0]], Total: base}
		saved := base.Sub(best.total)
		pct := saved.Div(base).Mul(hundred).Round(1)
		plan.Savings = &saved
		plan.SavingsPercent = &pct
	}
	return plan, nil
}

func (m *cartMatrix) allStores() []int {
	all := make([]int, len(m.stores))
	for i := range all {
		all[i] = i
	}
	return all
}

func (m *cartMatrix) plan(c choice) *model.Plan {
	p := &model.Plan{
		Assignment:   make(map[string]string, len(m.lines)),
		Total:        c.total,
		PerStoreCost: make(map[string]decimal.Decimal, len(c.used)),
		UsedStores:   make([]string, 0, len(c.used)),
	}
	bills := make(map[int]*model.StoreBill, len(c.used))
	for _, s := range c.used {
		name := m.stores[s]
		p.UsedStores = append(p.UsedStores, name)
		bills[s] = &model.StoreBill{Store: name, Cost: decimal.Zero}
	}
	// позиции уже отсортированы по имени, строки в чеках тоже
	for i, l := range m.lines {
		s := c.assign[i]
		p.Assignment[l.Name] = m.stores[s]
		b := bills[s]
		b.Lines = append(b.Lines, model.LineCost{
			Name:     l.Name,
			Quantity: l.Quantity,
			Price:    m.prices[i][s],
			Total:    m.cost[i][s],
		})
		b.Cost = b.Cost.Add(m.cost[i][s])
	}
	for _, s := range c.used {
		p.Bills = append(p.Bills, *bills[s])
		p.PerStoreCost[m.stores[s]] = bills[s].Cost
	}
	return p
}

// combinations вызывает fn для каждого k-сочетания из n в лексикографическом порядке.
// Срез subset переиспользуется между вызовами.
func combinations(n, k int, fn func(subset []int) error) error {
	if k <= 0 || k > n {
		return nil
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		if err := fn(idx); err != nil {
			return err
		}
		// ищем самый правый индекс, который ещё можно сдвинуть
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return nil
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// subsetCount = sum C(n, j), j = 1..k. Как только сумма превысила limit,
// возвращает limit+1, чтобы не переполниться на больших n.
func subsetCount(n, k, limit int) int {
	total := 0
	c := 1 // C(n, 0)
	for j := 1; j <= k; j++ {
		c = c * (n - j + 1) / j
		total += c
		if total > limit {
			return limit + 1
		}
	}
	return total
}
