package service

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Число с необязательной десятичной частью через точку или запятую: 5, 0.5, 0,95
const num = `\d+[.,]?\d*`

// Шумовые "число + единица", вырезаются целиком. Порядок не важен: шаблоны не пересекаются.
var noise = []*regexp.Regexp{
	// жирность
	regexp.MustCompile(num + `\s*%`),
	// объём
	regexp.MustCompile(`(?i)` + num + `\s*[лl]`),
	// масса: граммы, килограммы
	regexp.MustCompile(`(?i)` + num + `\s*[гg]`),
	regexp.MustCompile(`(?i)` + num + `\s*кг`),
	// штуки, пачки
	regexp.MustCompile(`(?i)\d+\s*(?:шт|пак|pcs|pack)`),
}

var trailingJunk = regexp.MustCompile(`[,\s]+$`)

// Normalize: ключ сравнения для сырого наименования: без жирности/объёма/веса/штук,
// в нижнем регистре, с одиночными пробелами.
//
// Чистка повторяется до неподвижной точки, поэтому Normalize(Normalize(x)) == Normalize(x).
// Если от наименования ничего не осталось ("500г"), ключом служит само имя в нижнем регистре.
func Normalize(raw string) string {
	base := collapseSpaces(strings.ToLower(norm.NFC.String(raw)))
	if base == "" {
		return ""
	}
	out := base
	for {
		next := stripNoise(out)
		if next == out {
			break
		}
		out = next
	}
	if out == "" {
		return base
	}
	return out
}

func stripNoise(s string) string {
	for _, rx := range noise {
		s = rx.ReplaceAllString(s, "")
	}
	s = trailingJunk.ReplaceAllString(s, "")
	return collapseSpaces(s)
}

// Схлопывание пробелов
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// слова ключа
func tokens(s string) []string {
	return strings.Fields(s)
}
