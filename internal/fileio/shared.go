package fileio

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

var ErrUnsupported = errors.New("unsupported file")

// ReadAnyRows — выберет парсер по расширению и вернёт строки таблицы как есть (без шапки).
// Строка i результата — строка i+1 исходной таблицы: пустые строки внутри остаются
// (nil), чтобы номера в отчёте об ошибках совпадали с таблицей. Хвостовые пустые отрезаются.
func ReadAnyRows(r io.Reader, filename string) ([][]string, error) {
	var (
		rows [][]string
		err  error
	)
	switch Ext(filename) {
	case ".xlsx":
		rows, err = readXLSX(r)
	case ".xls":
		rows, err = readXLS(r)
	case ".csv":
		rows, err = readCSV(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, filename)
	}
	if err != nil {
		return nil, err
	}
	return compactRows(rows), nil
}

// Ext — расширение в нижнем регистре.
func Ext(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// Supported сообщает, умеем ли читать такой файл.
func Supported(filename string) bool {
	switch Ext(filename) {
	case ".xlsx", ".xls", ".csv":
		return true
	}
	return false
}

// compactRows — trim ячеек, хвостовые пустые ячейки долой; пустая строка становится nil.
func compactRows(rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))
	lastRow := -1
	for _, rec := range rows {
		cells := make([]string, len(rec))
		last := -1
		for i, v := range rec {
			cells[i] = normalizeCell(v)
			if cells[i] != "" {
				last = i
			}
		}
		if last < 0 {
			out = append(out, nil)
			continue
		}
		out = append(out, cells[:last+1])
		lastRow = len(out) - 1
	}
	return out[:lastRow+1]
}

// normalizeCell — NBSP/NNBSP → пробел, trim.
func normalizeCell(s string) string {
	s = strings.NewReplacer("\u00A0", " ", "\u202F", " ").Replace(s)
	return strings.TrimSpace(s)
}
