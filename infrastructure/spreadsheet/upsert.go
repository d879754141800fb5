package spreadsheet

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/brand-kpi-collector/pkg/collecterrors"
	"github.com/vfg2006/brand-kpi-collector/pkg/utils"
)

// Writer grava os valores de um slot na linha do dia, criando a linha
// quando a data ainda não existe na coluna A.
type Writer struct {
	api ValuesAPI
}

func NewWriter(api ValuesAPI) *Writer {
	return &Writer{api: api}
}

// UpsertSlot grava os valores a partir da coluna inicial do slot na
// linha da data. A escrita cobre exatamente len(values) colunas; o
// restante da linha não é tocado, preservando os outros slots.
func (w *Writer) UpsertSlot(sheetName, date, startCol string, values []interface{}) (int, string, error) {
	row, err := w.findOrCreateRow(sheetName, date)
	if err != nil {
		return 0, "", err
	}

	rangeA1 := utils.SlotRange(startCol, row, len(values))

	if err := w.api.Update(sheetName, rangeA1, [][]interface{}{values}); err != nil {
		return 0, "", err
	}

	logrus.WithFields(logrus.Fields{
		"sheet": sheetName,
		"date":  date,
		"range": rangeA1,
	}).Info("planilha: slot gravado")

	return row, rangeA1, nil
}

// findOrCreateRow procura a data na coluna A; se não existir, anexa a
// linha e resolve o índice de novo, de forma idempotente.
func (w *Writer) findOrCreateRow(sheetName, date string) (int, error) {
	if row, found, err := w.findRow(sheetName, date); err != nil || found {
		return row, err
	}

	if err := w.api.Append(sheetName, "A:A", [][]interface{}{{date}}); err != nil {
		return 0, err
	}

	row, found, err := w.findRow(sheetName, date)
	if err != nil {
		return 0, err
	}

	if !found {
		return 0, collecterrors.Newf(collecterrors.ErrSheetUpsert,
			"linha da data %s não apareceu após o append", date)
	}

	return row, nil
}

func (w *Writer) findRow(sheetName, date string) (int, bool, error) {
	column, err := w.api.Get(sheetName, "A:A")
	if err != nil {
		return 0, false, err
	}

	for i, row := range column {
		if len(row) == 0 {
			continue
		}

		if strings.TrimSpace(fmt.Sprint(row[0])) == date {
			return i + 1, true, nil
		}
	}

	return 0, false, nil
}
