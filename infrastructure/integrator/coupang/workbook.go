package coupang

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"github.com/vfg2006/brand-kpi-collector/pkg/collecterrors"
)

// Colunas fixas do export de vendas da Coupang (0-based):
// C nome do produto, O valor bruto, P quantidade,
// Q valor cancelado (negativo), R quantidade cancelada (negativa).
const (
	colProductName  = 2
	colGrossAmount  = 14
	colQuantity     = 15
	colCancelAmount = 16
	colCancelQty    = 17
)

var signedNumberRe = regexp.MustCompile(`-?\d+`)

// ProductTotals acumula vendas e quantidades líquidas de um grupo de produtos.
type ProductTotals struct {
	Sales  int
	Orders int
}

// BrandTotals é o resultado da classificação do export por marca,
// com os produtos sem marca tabulados à parte.
type BrandTotals struct {
	ByBrand           map[string]ProductTotals
	UnclassifiedCount int
	UnclassifiedSales int
}

// ParseWorkbook lê o export XLSX e consolida vendas líquidas por marca.
// O líquido soma o cancelamento, que já chega com sinal negativo.
func ParseWorkbook(data []byte) (*BrandTotals, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, collecterrors.Wrap(err, collecterrors.ErrExtraction, "export XLSX ilegível")
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, collecterrors.New(collecterrors.ErrExtraction, "export XLSX sem abas")
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, collecterrors.Wrap(err, collecterrors.ErrExtraction, "falha ao ler as linhas do export")
	}

	totals := &BrandTotals{ByBrand: make(map[string]ProductTotals)}

	for i, row := range rows {
		if i == 0 && isHeaderRow(row) {
			continue
		}

		name := cellAt(row, colProductName)
		if strings.TrimSpace(name) == "" {
			continue
		}

		netSales := normalizeInt(cellAt(row, colGrossAmount)) + normalizeInt(cellAt(row, colCancelAmount))
		netOrders := normalizeInt(cellAt(row, colQuantity)) + normalizeInt(cellAt(row, colCancelQty))

		brand := ClassifyProduct(name)
		if brand == "" {
			totals.UnclassifiedCount++
			totals.UnclassifiedSales += netSales
			continue
		}

		entry := totals.ByBrand[brand]
		entry.Sales += netSales
		entry.Orders += netOrders
		totals.ByBrand[brand] = entry
	}

	return totals, nil
}

func isHeaderRow(row []string) bool {
	gross := cellAt(row, colGrossAmount)

	_, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(gross), ",", ""))

	return err != nil
}

func cellAt(row []string, index int) string {
	if index >= len(row) {
		return ""
	}

	return row[index]
}

// normalizeInt extrai o primeiro inteiro (com sinal) de uma célula,
// ignorando separadores de milhar e texto ao redor.
func normalizeInt(cell string) int {
	cleaned := strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	match := signedNumberRe.FindString(cleaned)
	if match == "" {
		return 0
	}

	value, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}

	return value
}
