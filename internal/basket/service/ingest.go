package service

import (
	"fmt"
	"strings"

	"basket-service/internal/basket/model"
	"basket-service/internal/utils"
)

// ParseRows превращает строки прайса (наименование, магазин, цена; без шапки) в записи.
// Битые строки не валят всю загрузку: они возвращаются списком с номером и причиной.
// Ошибка возвращается, только если в таблице нет ни одной строки хотя бы из трёх колонок.
func ParseRows(rows [][]string) ([]model.Entry, []model.RowError, error) {
	wide := false
	for _, r := range rows {
		if len(r) >= 3 {
			wide = true
			break
		}
	}
	if !wide {
		return nil, nil, ErrBadSheet
	}

	entries := make([]model.Entry, 0, len(rows))
	var bad []model.RowError
	for i, r := range rows {
		// пустые строки листа пропускаем, номер строки при этом сохраняется
		if len(r) == 0 {
			continue
		}
		e, reason := parseRow(r)
		if reason != "" {
			bad = append(bad, model.RowError{Row: i + 1, Reason: reason})
			continue
		}
		entries = append(entries, e)
	}
	return entries, bad, nil
}

func parseRow(r []string) (model.Entry, string) {
	if len(r) < 3 {
		return model.Entry{}, fmt.Sprintf("expected 3 columns, got %d", len(r))
	}
	name := collapseSpaces(strings.TrimSpace(r[0]))
	store := collapseSpaces(strings.TrimSpace(r[1]))
	if name == "" {
		return model.Entry{}, "empty product name"
	}
	if store == "" {
		return model.Entry{}, "empty store name"
	}
	price, ok := utils.ParseDecimalRU(r[2])
	if !ok {
		return model.Entry{}, fmt.Sprintf("price %q is not a number", r[2])
	}
	if !price.IsPositive() {
		return model.Entry{}, fmt.Sprintf("price %s is not positive", price)
	}
	return model.Entry{Name: name, Store: store, Price: price}, ""
}
