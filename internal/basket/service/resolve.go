package service

import (
	"fmt"
	"slices"
	"strings"

	"basket-service/internal/basket/model"
)

// Resolve сопоставляет свободный текст пользователя с группами каталога.
//
// Группа считается кандидатом, если её ключ содержит нормализованный запрос, содержится в нём
// или делит с ним хотя бы одно слово. Список кандидатов возвращается полностью,
// обрезку под экран делает вызывающий. suggest: сколько подсказок дать при NoMatch.
func Resolve(idx *Index, query string, suggest int) model.Resolution {
	q := Normalize(query)
	res := model.Resolution{Query: query}

	var cands []string
	if q != "" {
		qt := make(map[string]struct{})
		for _, t := range tokens(q) {
			qt[t] = struct{}{}
		}
		for _, key := range idx.keys {
			if overlaps(key, q, qt) {
				cands = append(cands, key)
			}
		}
	}

	switch len(cands) {
	case 0:
		res.Kind = model.NoMatch
		res.Suggestions = idx.Suggestions(suggest)
		return res
	case 1:
		return resolveGroup(idx, cands[0], query)
	default:
		res.Kind = model.AmbiguousGroups
		res.Candidates = cands
		return res
	}
}

func overlaps(key, q string, qt map[string]struct{}) bool {
	if key == "" {
		return false
	}
	if strings.Contains(key, q) || strings.Contains(q, key) {
		return true
	}
	for _, t := range tokens(key) {
		if _, ok := qt[t]; ok {
			return true
		}
	}
	return false
}

func resolveGroup(idx *Index, key, query string) model.Resolution {
	variants := idx.groups[key]
	if len(variants) == 1 {
		return model.Resolution{Kind: model.SingleVariant, Query: query, Key: key, Product: variants[0]}
	}
	return model.Resolution{Kind: model.AmbiguousVariants, Query: query, Key: key, Variants: slices.Clone(variants)}
}

// Select применяет выбор пользователя к предыдущему ответу резолвера.
// Выбор принимается только из предложенного списка (для групп ключ или строка,
// которая нормализуется в ключ; для вариантов точное наименование).
func Select(idx *Index, pending model.Resolution, choice string) (model.Resolution, error) {
	choice = strings.TrimSpace(choice)
	switch pending.Kind {
	case model.AmbiguousGroups:
		key, ok := pickCandidate(pending.Candidates, choice)
		if !ok {
			return model.Resolution{}, fmt.Errorf("%w: %q", ErrInvalidSelection, choice)
		}
		if _, ok := idx.groups[key]; !ok {
			// каталог успели перезагрузить
			return model.Resolution{}, fmt.Errorf("%w: group %q is gone", ErrInvalidSelection, key)
		}
		return resolveGroup(idx, key, pending.Query), nil

	case model.AmbiguousVariants:
		if !slices.Contains(pending.Variants, choice) || !idx.HasProduct(choice) {
			return model.Resolution{}, fmt.Errorf("%w: %q", ErrInvalidSelection, choice)
		}
		return model.Resolution{Kind: model.SingleVariant, Query: pending.Query, Key: pending.Key, Product: choice}, nil

	default:
		return model.Resolution{}, ErrNoPendingSelection
	}
}

func pickCandidate(cands []string, choice string) (string, bool) {
	if slices.Contains(cands, choice) {
		return choice, true
	}
	n := Normalize(choice)
	if n != "" && slices.Contains(cands, n) {
		return n, true
	}
	return "", false
}
