package service

import (
	"slices"
	"sort"

	"github.com/shopspring/decimal"

	"basket-service/internal/basket/model"
)

// PriceTable: товар → магазин → минимальная известная цена.
type PriceTable map[string]map[string]decimal.Decimal

// Price: цена товара в магазине, если он там продаётся.
func (pt PriceTable) Price(name, store string) (decimal.Decimal, bool) {
	p, ok := pt[name][store]
	return p, ok
}

// Stores: магазины, где продаётся товар, по алфавиту.
func (pt PriceTable) Stores(name string) []string {
	out := make([]string, 0, len(pt[name]))
	for s := range pt[name] {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// lower записывает цену, только если она ниже уже известной (или пары ещё не было).
func (pt PriceTable) lower(e model.Entry) bool {
	byStore, ok := pt[e.Name]
	if !ok {
		byStore = make(map[string]decimal.Decimal)
		pt[e.Name] = byStore
	}
	if cur, ok := byStore[e.Store]; ok && cur.LessThanOrEqual(e.Price) {
		return false
	}
	byStore[e.Store] = e.Price
	return true
}

// Index: неизменяемый снимок каталога: группы по нормализованному ключу и таблица цен.
// После построения не меняется, поэтому читается из любого числа горутин без блокировок.
type Index struct {
	groups map[string][]string // ключ → варианты написания (отсортированы)
	byName map[string]string   // сырое имя → ключ
	keys   []string            // отсортированные ключи
	prices PriceTable
}

func BuildIndex(entries []model.Entry) *Index {
	var empty *Index
	return empty.With(entries)
}

// With возвращает новый снимок: текущий плюс entries. Исходный не трогается.
// Строки без имени/магазина или с ценой <= 0 пропускаются.
func (idx *Index) With(entries []model.Entry) *Index {
	next := &Index{
		groups: make(map[string][]string),
		byName: make(map[string]string),
		prices: make(PriceTable),
	}
	if idx != nil {
		for k, v := range idx.groups {
			next.groups[k] = v // срезы общие; ниже клонируем перед изменением
		}
		for n, k := range idx.byName {
			next.byName[n] = k
		}
		for n, m := range idx.prices {
			cp := make(map[string]decimal.Decimal, len(m))
			for s, p := range m {
				cp[s] = p
			}
			next.prices[n] = cp
		}
	}

	touched := make(map[string]struct{})
	for _, e := range entries {
		if e.Name == "" || e.Store == "" || !e.Price.IsPositive() {
			continue
		}
		next.prices.lower(e)
		if _, ok := next.byName[e.Name]; ok {
			continue
		}
		key := Normalize(e.Name)
		next.byName[e.Name] = key
		if _, ok := touched[key]; !ok {
			next.groups[key] = slices.Clone(next.groups[key])
			touched[key] = struct{}{}
		}
		next.groups[key] = append(next.groups[key], e.Name)
	}
	for key := range touched {
		sort.Strings(next.groups[key])
	}

	next.keys = make([]string, 0, len(next.groups))
	for k := range next.groups {
		next.keys = append(next.keys, k)
	}
	sort.Strings(next.keys)
	return next
}

// Len: число различных сырых наименований.
func (idx *Index) Len() int { return len(idx.byName) }

func (idx *Index) Keys() []string { return slices.Clone(idx.keys) }

func (idx *Index) Group(key string) (model.Group, bool) {
	v, ok := idx.groups[key]
	if !ok {
		return model.Group{}, false
	}
	return model.Group{Key: key, Variants: slices.Clone(v)}, true
}

func (idx *Index) Groups() []model.Group {
	out := make([]model.Group, 0, len(idx.keys))
	for _, k := range idx.keys {
		out = append(out, model.Group{Key: k, Variants: slices.Clone(idx.groups[k])})
	}
	return out
}

// KeyOf: ключ группы, в которую попало сырое имя.
func (idx *Index) KeyOf(name string) (string, bool) {
	k, ok := idx.byName[name]
	return k, ok
}

func (idx *Index) HasProduct(name string) bool {
	_, ok := idx.byName[name]
	return ok
}

func (idx *Index) Prices() PriceTable { return idx.prices }

// Suggestions: первые limit ключей по алфавиту с парой примеров написания.
func (idx *Index) Suggestions(limit int) []model.Suggestion {
	if limit <= 0 || limit > len(idx.keys) {
		limit = len(idx.keys)
	}
	out := make([]model.Suggestion, 0, limit)
	for _, k := range idx.keys[:limit] {
		v := idx.groups[k]
		out = append(out, model.Suggestion{Key: k, Examples: slices.Clone(v[:min(2, len(v))])})
	}
	return out
}
