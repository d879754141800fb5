package coupang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type exportRow struct {
	name         string
	grossAmount  interface{}
	quantity     interface{}
	cancelAmount interface{}
	cancelQty    interface{}
}

func buildExport(t *testing.T, rows []exportRow) []byte {
	t.Helper()

	file := excelize.NewFile()
	sheet := file.GetSheetName(0)

	require.NoError(t, file.SetCellValue(sheet, "C1", "상품명"))
	require.NoError(t, file.SetCellValue(sheet, "O1", "판매금액"))
	require.NoError(t, file.SetCellValue(sheet, "P1", "판매수량"))
	require.NoError(t, file.SetCellValue(sheet, "Q1", "취소금액"))
	require.NoError(t, file.SetCellValue(sheet, "R1", "취소수량"))

	for i, row := range rows {
		line := i + 2
		require.NoError(t, file.SetCellValue(sheet, cellRef("C", line), row.name))
		require.NoError(t, file.SetCellValue(sheet, cellRef("O", line), row.grossAmount))
		require.NoError(t, file.SetCellValue(sheet, cellRef("P", line), row.quantity))
		require.NoError(t, file.SetCellValue(sheet, cellRef("Q", line), row.cancelAmount))
		require.NoError(t, file.SetCellValue(sheet, cellRef("R", line), row.cancelQty))
	}

	buffer, err := file.WriteToBuffer()
	require.NoError(t, err)

	return buffer.Bytes()
}

func cellRef(col string, row int) string {
	cell, _ := excelize.JoinCellName(col, row)
	return cell
}

func TestParseWorkbook(t *testing.T) {
	data := buildExport(t, []exportRow{
		{name: "부담제로 곤약젤리 30포", grossAmount: 150000, quantity: 5, cancelAmount: -30000, cancelQty: -1},
		{name: "부담제로 스틱", grossAmount: 50000, quantity: 2, cancelAmount: 0, cancelQty: 0},
		{name: "뉴턴젤리 키즈", grossAmount: 80000, quantity: 4, cancelAmount: 0, cancelQty: 0},
		{name: "빠디 스틱 10개입", grossAmount: 40000, quantity: 2, cancelAmount: 0, cancelQty: 0},
		{name: "정체불명 상품", grossAmount: 99999, quantity: 3, cancelAmount: 0, cancelQty: 0},
	})

	totals, err := ParseWorkbook(data)

	assert.NoError(t, err)

	// Líquido soma o cancelamento, que chega negativo
	burdenzero := totals.ByBrand[taxonomyBurdenzero]
	assert.Equal(t, 170000, burdenzero.Sales)
	assert.Equal(t, 6, burdenzero.Orders)

	jelly := totals.ByBrand[taxonomyJelly]
	assert.Equal(t, 80000, jelly.Sales)
	assert.Equal(t, 4, jelly.Orders)

	ppadi := totals.ByBrand[taxonomyPpadi]
	assert.Equal(t, 40000, ppadi.Sales)
	assert.Equal(t, 2, ppadi.Orders)

	assert.Equal(t, 1, totals.UnclassifiedCount)
	assert.Equal(t, 99999, totals.UnclassifiedSales)
}

func TestParseWorkbookSkipsHeaderRow(t *testing.T) {
	data := buildExport(t, []exportRow{
		{name: "부담제로 곤약젤리", grossAmount: 10000, quantity: 1, cancelAmount: 0, cancelQty: 0},
	})

	totals, err := ParseWorkbook(data)

	assert.NoError(t, err)
	// O cabeçalho tem nome na coluna C mas não pode virar produto
	assert.Equal(t, 0, totals.UnclassifiedCount)
	assert.Len(t, totals.ByBrand, 1)
}

func TestParseWorkbookIgnoresRowsWithoutProductName(t *testing.T) {
	data := buildExport(t, []exportRow{
		{name: "", grossAmount: 10000, quantity: 1, cancelAmount: 0, cancelQty: 0},
		{name: "부담제로 곤약젤리", grossAmount: 20000, quantity: 2, cancelAmount: 0, cancelQty: 0},
	})

	totals, err := ParseWorkbook(data)

	assert.NoError(t, err)
	assert.Equal(t, 20000, totals.ByBrand[taxonomyBurdenzero].Sales)
	assert.Equal(t, 0, totals.UnclassifiedCount)
}

func TestParseWorkbookWithFormattedCells(t *testing.T) {
	// Valores com separador de milhar, como o export chega formatado
	data := buildExport(t, []exportRow{
		{name: "부담제로 곤약젤리", grossAmount: "1,234,000", quantity: "56", cancelAmount: "-34,000", cancelQty: "-2"},
	})

	totals, err := ParseWorkbook(data)

	assert.NoError(t, err)
	assert.Equal(t, 1200000, totals.ByBrand[taxonomyBurdenzero].Sales)
	assert.Equal(t, 54, totals.ByBrand[taxonomyBurdenzero].Orders)
}

func TestParseWorkbookRejectsGarbage(t *testing.T) {
	_, err := ParseWorkbook([]byte("não é um xlsx"))

	assert.Error(t, err)
}
