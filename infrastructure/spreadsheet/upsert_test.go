package spreadsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/brand-kpi-collector/pkg/collecterrors"
)

// fakeValues simula a coluna A de uma aba e registra as escritas feitas.
type fakeValues struct {
	columnA []string
	updates map[string][][]interface{}

	getErr    error
	updateErr error
	appendErr error
}

func newFakeValues(dates ...string) *fakeValues {
	return &fakeValues{
		columnA: dates,
		updates: make(map[string][][]interface{}),
	}
}

func (f *fakeValues) Get(sheetName, a1Range string) ([][]interface{}, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}

	column := make([][]interface{}, 0, len(f.columnA))
	for _, date := range f.columnA {
		if date == "" {
			column = append(column, []interface{}{})
			continue
		}

		column = append(column, []interface{}{date})
	}

	return column, nil
}

func (f *fakeValues) Update(sheetName, a1Range string, values [][]interface{}) error {
	if f.updateErr != nil {
		return f.updateErr
	}

	f.updates[a1Range] = values
	return nil
}

func (f *fakeValues) Append(sheetName, a1Range string, values [][]interface{}) error {
	if f.appendErr != nil {
		return f.appendErr
	}

	for _, row := range values {
		f.columnA = append(f.columnA, row[0].(string))
	}

	return nil
}

func slotValues() []interface{} {
	return []interface{}{100000.0, 300000, 10, 200000, 8, 150000, 6}
}

func TestUpsertSlotExistingRow(t *testing.T) {
	api := newFakeValues("날짜", "2025-07-14", "2025-07-15")
	writer := NewWriter(api)

	row, rangeA1, err := writer.UpsertSlot("부담제로_지금", "2025-07-15", "P", slotValues())

	assert.NoError(t, err)
	assert.Equal(t, 3, row)
	assert.Equal(t, "P3:V3", rangeA1)
	assert.Equal(t, [][]interface{}{slotValues()}, api.updates["P3:V3"])
}

func TestUpsertSlotAppendsMissingDate(t *testing.T) {
	api := newFakeValues("날짜", "2025-07-14")
	writer := NewWriter(api)

	row, rangeA1, err := writer.UpsertSlot("부담제로_지금", "2025-07-15", "B", slotValues())

	assert.NoError(t, err)
	assert.Equal(t, 3, row)
	assert.Equal(t, "B3:H3", rangeA1)
	assert.Equal(t, []string{"날짜", "2025-07-14", "2025-07-15"}, api.columnA)
}

func TestUpsertSlotIsIdempotent(t *testing.T) {
	api := newFakeValues("날짜", "2025-07-15")
	writer := NewWriter(api)

	first := []interface{}{1000.0, 1, 1, 1, 1, 1, 1}
	second := []interface{}{2000.0, 2, 2, 2, 2, 2, 2}

	_, _, err := writer.UpsertSlot("부담제로_지금", "2025-07-15", "P", first)
	assert.NoError(t, err)

	_, _, err = writer.UpsertSlot("부담제로_지금", "2025-07-15", "P", second)
	assert.NoError(t, err)

	// A segunda gravação sobrescreve a primeira no mesmo range, sem nova linha
	assert.Equal(t, [][]interface{}{second}, api.updates["P3:V3"])
	assert.Len(t, api.columnA, 2)
}

func TestUpsertSlotRangesDoNotOverlap(t *testing.T) {
	api := newFakeValues("날짜", "2025-07-15")
	writer := NewWriter(api)

	_, rangeA, err := writer.UpsertSlot("부담제로_지금", "2025-07-15", "B", slotValues())
	assert.NoError(t, err)

	_, rangeB, err := writer.UpsertSlot("부담제로_지금", "2025-07-15", "I", slotValues())
	assert.NoError(t, err)

	assert.Equal(t, "B2:H2", rangeA)
	assert.Equal(t, "I2:O2", rangeB)
	assert.Len(t, api.updates, 2)
}

func TestUpsertSlotSkipsEmptyCells(t *testing.T) {
	api := newFakeValues("날짜", "", "2025-07-15")
	writer := NewWriter(api)

	row, _, err := writer.UpsertSlot("부담제로_지금", "2025-07-15", "P", slotValues())

	assert.NoError(t, err)
	assert.Equal(t, 3, row)
}

func TestUpsertSlotPropagatesReadFailure(t *testing.T) {
	api := newFakeValues("날짜")
	api.getErr = collecterrors.New(collecterrors.ErrSheetUpsert, "quota excedida")

	writer := NewWriter(api)

	_, _, err := writer.UpsertSlot("부담제로_지금", "2025-07-15", "P", slotValues())

	assert.Error(t, err)
	assert.Equal(t, collecterrors.ErrSheetUpsert, collecterrors.KindOf(err))
}

func TestUpsertSlotFailsWhenRowNeverAppears(t *testing.T) {
	api := newFakeValues("날짜")

	// Append silencioso que não insere nada simula a linha que nunca aparece
	writer := NewWriter(&appendNoopValues{fakeValues: api})

	_, _, err := writer.UpsertSlot("부담제로_지금", "2025-07-15", "P", slotValues())

	assert.Error(t, err)
	assert.Equal(t, collecterrors.ErrSheetUpsert, collecterrors.KindOf(err))
	assert.Contains(t, err.Error(), "não apareceu após o append")
}

type appendNoopValues struct {
	*fakeValues
}

func (a *appendNoopValues) Append(sheetName, a1Range string, values [][]interface{}) error {
	return nil
}
