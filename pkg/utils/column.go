package utils

import (
	"fmt"
	"strings"
)

// ColumnToIndex converte uma coluna A1 ("A", "AD") para índice 1-based.
func ColumnToIndex(col string) int {
	index := 0

	for _, r := range strings.ToUpper(strings.TrimSpace(col)) {
		if r < 'A' || r > 'Z' {
			continue
		}

		index = index*26 + int(r-'A'+1)
	}

	return index
}

// IndexToColumn converte um índice 1-based para a coluna A1 correspondente.
func IndexToColumn(index int) string {
	if index < 1 {
		return ""
	}

	var col string

	for index > 0 {
		index--
		col = string(rune('A'+index%26)) + col
		index /= 26
	}

	return col
}

// SlotRange monta o intervalo A1 de uma linha a partir da coluna inicial
// e da quantidade de valores, ex.: ("P", 3, 7) => "P3:V3".
func SlotRange(startCol string, row, width int) string {
	endCol := IndexToColumn(ColumnToIndex(startCol) + width - 1)

	return fmt.Sprintf("%s%d:%s%d", startCol, row, endCol, row)
}
