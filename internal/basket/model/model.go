package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Entry: строка прайса: сырое наименование, магазин, цена (> 0).
type Entry struct {
	Name  string          `json:"name"`
	Store string          `json:"store"`
	Price decimal.Decimal `json:"price"`
}

// Group: товарное семейство: все написания, дающие один нормализованный ключ.
type Group struct {
	Key      string   `json:"key"`
	Variants []string `json:"variants"` // отсортированы
}

// CartLine: позиция корзины (одна на каждое сырое наименование).
type CartLine struct {
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
}

// Suggestion: категория для подсказки, когда запрос ничего не нашёл.
type Suggestion struct {
	Key      string   `json:"key"`
	Examples []string `json:"examples"`
}

type ResolutionKind string

const (
	NoMatch           ResolutionKind = "no_match"
	SingleVariant     ResolutionKind = "single_variant"
	AmbiguousGroups   ResolutionKind = "ambiguous_groups"
	AmbiguousVariants ResolutionKind = "ambiguous_variants"
)

// Resolution: ответ резолвера на свободный текст пользователя.
type Resolution struct {
	Kind        ResolutionKind `json:"kind"`
	Query       string         `json:"query"`
	Key         string         `json:"key,omitempty"`         // SingleVariant, AmbiguousVariants
	Product     string         `json:"product,omitempty"`     // SingleVariant
	Candidates  []string       `json:"candidates,omitempty"`  // AmbiguousGroups: все ключи-кандидаты
	Variants    []string       `json:"variants,omitempty"`    // AmbiguousVariants
	Suggestions []Suggestion   `json:"suggestions,omitempty"` // NoMatch
}

type LineCost struct {
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Total    decimal.Decimal `json:"total"`
}

// StoreBill: что и почём покупаем в одном магазине.
type StoreBill struct {
	Store string          `json:"store"`
	Cost  decimal.Decimal `json:"cost"`
	Lines []LineCost      `json:"lines"`
}

type StoreTotal struct {
	Store string          `json:"store"`
	Total decimal.Decimal `json:"total"`
}

// Plan: результат оптимизации. Не сохраняется, считается на каждый запрос.
type Plan struct {
	MaxStores        int                        `json:"maxStores"`
	Assignment       map[string]string          `json:"assignment"` // товар → магазин
	Total            decimal.Decimal            `json:"total"`
	PerStoreCost     map[string]decimal.Decimal `json:"perStoreCost"`
	UsedStores       []string                   `json:"usedStores"`
	Bills            []StoreBill                `json:"bills"`
	Baseline         *StoreTotal                `json:"baseline,omitempty"` // лучший один магазин
	Savings          *decimal.Decimal           `json:"savings,omitempty"`
	SavingsPercent   *decimal.Decimal           `json:"savingsPercent,omitempty"`
	SubsetsEvaluated int                        `json:"subsetsEvaluated"`
}

// StoreQuote: корзина целиком в одном магазине (то, что он вообще продаёт).
type StoreQuote struct {
	Store    string          `json:"store"`
	Total    decimal.Decimal `json:"total"`
	Missing  []string        `json:"missing,omitempty"`
	Complete bool            `json:"complete"`
}

type Quote struct {
	Stores   []StoreQuote `json:"stores"`
	Cheapest *StoreTotal  `json:"cheapest,omitempty"` // среди магазинов, где есть всё
}

type RowError struct {
	Row    int    `json:"row"` // 1-based
	Reason string `json:"reason"`
}

// IngestReport: итог загрузки прайса.
type IngestReport struct {
	Rows       int        `json:"rows"`
	Added      int        `json:"added"`
	Duplicates int        `json:"duplicates"`
	Errors     int        `json:"errors"`
	RowErrors  []RowError `json:"rowErrors,omitempty"`
}

func (e RowError) Error() string { return fmt.Sprintf("row %d: %s", e.Row, e.Reason) }
