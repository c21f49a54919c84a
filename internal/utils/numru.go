package utils

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// допускаем только валютную приписку в конце: "89,90 ₽", "120 руб.", "75р"
var rxCurrency = regexp.MustCompile(`(?i)\s*(?:₽|руб\.?|р\.?|rub)$`)

var rxNumber = regexp.MustCompile(`^-?\d+(?:\.\d+)?$`)

var spaceRepl = strings.NewReplacer("\u00A0", "", "\u202F", "", "\u2009", "", " ", "", "\t", "", ",", ".")

// cleanNumber приводит "1 234,50", "197 ,00", "2 345,6" (NBSP/NNBSP) к виду "1234.50".
// Буквы, экспонента и лишние разделители делают строку не числом: "3 по 100", "1e3", "1.2.3" -> "".
func cleanNumber(s string) string {
	s = strings.TrimSpace(s)
	s = rxCurrency.ReplaceAllString(s, "")
	s = spaceRepl.Replace(s)
	if !rxNumber.MatchString(s) {
		return ""
	}
	return s
}

// ParseFloatRU парсит "1 234,50", "197 ,00", "2 345,6" (NBSP/NNBSP) и т.п.
func ParseFloatRU(s string) (float64, bool) {
	s = cleanNumber(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

// ParseDecimalRU делает то же без потери точности.
func ParseDecimalRU(s string) (decimal.Decimal, bool) {
	s = cleanNumber(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
