package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumnToIndex(t *testing.T) {
	testCases := []struct {
		name     string
		column   string
		expected int
	}{
		{name: "Primeira coluna", column: "A", expected: 1},
		{name: "Última coluna simples", column: "Z", expected: 26},
		{name: "Coluna dupla", column: "AA", expected: 27},
		{name: "Coluna AD", column: "AD", expected: 30},
		{name: "Coluna AR", column: "AR", expected: 44},
		{name: "Minúscula com espaços", column: " p ", expected: 16},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ColumnToIndex(tc.column))
		})
	}
}

func TestIndexToColumn(t *testing.T) {
	testCases := []struct {
		name     string
		index    int
		expected string
	}{
		{name: "Primeiro índice", index: 1, expected: "A"},
		{name: "Virada para coluna dupla", index: 27, expected: "AA"},
		{name: "Índice 30", index: 30, expected: "AD"},
		{name: "Índice inválido", index: 0, expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IndexToColumn(tc.index))
		})
	}
}

func TestIndexToColumnRoundTrip(t *testing.T) {
	for index := 1; index <= 100; index++ {
		assert.Equal(t, index, ColumnToIndex(IndexToColumn(index)))
	}
}

func TestSlotRange(t *testing.T) {
	testCases := []struct {
		name     string
		startCol string
		row      int
		width    int
		expected string
	}{
		{name: "Slot das 14h", startCol: "P", row: 3, width: 7, expected: "P3:V3"},
		{name: "Slot das 10h", startCol: "B", row: 10, width: 7, expected: "B10:H10"},
		{name: "Slot das 18h cruza AA", startCol: "AD", row: 2, width: 7, expected: "AD2:AJ2"},
		{name: "Largura um", startCol: "C", row: 5, width: 1, expected: "C5:C5"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SlotRange(tc.startCol, tc.row, tc.width))
		})
	}
}
