package fileio

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	excelize "github.com/xuri/excelize/v2"
)

func TestReadAnyRowsXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"Хлеб пшеничный нарезка", "Пятерочка", 44},
		{"Хлеб пшеничный нарезка", "Дикси", 56},
		{},
		{"Молоко 0,95л", "Пятерочка", "95,50"},
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &r))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	got, err := ReadAnyRows(&buf, "prices.XLSX")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Хлеб пшеничный нарезка", "Пятерочка", "44"},
		{"Хлеб пшеничный нарезка", "Дикси", "56"},
		nil,
		{"Молоко 0,95л", "Пятерочка", "95,50"},
	}, got)
}

func TestReadAnyRowsCSV(t *testing.T) {
	t.Run("semicolon separated", func(t *testing.T) {
		in := "Кефир 1%;Магнит;79,90\n;;\n Сыр  ; Дикси ;300\n"
		got, err := ReadAnyRows(strings.NewReader(in), "prices.csv")
		require.NoError(t, err)
		assert.Equal(t, [][]string{
			{"Кефир 1%", "Магнит", "79,90"},
			nil,
			{"Сыр", "Дикси", "300"},
		}, got)
	})

	t.Run("row numbers survive blank lines", func(t *testing.T) {
		in := "Хлеб;A;10\n\n;;\nСыр;A\n\n\n"
		got, err := ReadAnyRows(strings.NewReader(in), "prices.csv")
		require.NoError(t, err)
		assert.Equal(t, [][]string{
			{"Хлеб", "A", "10"},
			nil,
			nil,
			{"Сыр", "A"},
		}, got)
	})

	t.Run("comma separated", func(t *testing.T) {
		in := "Bread,StoreA,10\nMilk,StoreB,9\n"
		got, err := ReadAnyRows(strings.NewReader(in), "prices.csv")
		require.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, []string{"Milk", "StoreB", "9"}, got[1])
	})
}

func TestReadAnyRowsUnsupported(t *testing.T) {
	_, err := ReadAnyRows(strings.NewReader("x"), "prices.ods")
	assert.True(t, errors.Is(err, ErrUnsupported))
	assert.False(t, Supported("prices.ods"))
	assert.True(t, Supported("PRICES.XLS"))
}
