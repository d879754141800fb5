package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRowValuesOrder(t *testing.T) {
	date := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)

	agg := NewAggregateResult("abc123", date)
	agg.Put(NormalizedMetric{Source: SourceMeta, Brand: BrandBurdenzero, Date: date, Spend: 100000, Orders: 5})
	agg.Put(NormalizedMetric{Source: SourceCafe24, Brand: BrandBurdenzero, Date: date, Sales: 300000, Orders: 10})
	agg.Put(NormalizedMetric{Source: SourceCoupang, Brand: BrandBurdenzero, Date: date, Sales: 200000, Orders: 8})
	agg.Put(NormalizedMetric{Source: SourceSmartstore, Brand: BrandBurdenzero, Date: date, Sales: 150000, Orders: 6})

	values := agg.RowValues(BrandBurdenzero)

	assert.Len(t, values, SlotFieldCount)
	assert.Equal(t, []interface{}{100000.0, 300000, 10, 200000, 8, 150000, 6}, values)
}

func TestRowValuesMissingSourcesDefaultToZero(t *testing.T) {
	date := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)

	agg := NewAggregateResult("abc123", date)
	agg.Put(NormalizedMetric{Source: SourceCafe24, Brand: BrandBurdenzero, Date: date, Sales: 300000, Orders: 10})

	values := agg.RowValues(BrandBurdenzero)

	assert.Equal(t, []interface{}{0.0, 300000, 10, 0, 0, 0, 0}, values)
}

func TestMetricDefaultsToZeroForAbsentSource(t *testing.T) {
	date := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)

	agg := NewAggregateResult("abc123", date)

	m := agg.Metric(BrandBrainology, SourceCoupang)

	assert.Equal(t, SourceCoupang, m.Source)
	assert.Equal(t, BrandBrainology, m.Brand)
	assert.Equal(t, 0, m.Sales)
	assert.Equal(t, 0, m.Orders)
	assert.Equal(t, 0.0, m.Spend)
}

func TestDegradedSources(t *testing.T) {
	date := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)

	agg := NewAggregateResult("abc123", date)
	agg.PerSourceStatus[SourceMeta] = SourceStatus{OK: true}
	agg.PerSourceStatus[SourceCafe24] = SourceStatus{Degraded: true, Error: "timeout"}
	agg.PerSourceStatus[SourceCoupang] = SourceStatus{Degraded: true, Error: "export vazio"}

	degraded := agg.DegradedSources()

	assert.Equal(t, []Source{SourceCafe24, SourceCoupang}, degraded)
}

func TestBrandReporting(t *testing.T) {
	assert.True(t, BrandBurdenzero.Reporting())
	assert.True(t, BrandBrainology.Reporting())
	assert.False(t, Brand("ppadi").Reporting())
	assert.False(t, Brand("").Reporting())
}

func TestSourcePaidMedia(t *testing.T) {
	assert.True(t, SourceMeta.PaidMedia())
	assert.False(t, SourceCafe24.PaidMedia())
	assert.False(t, SourceCoupang.PaidMedia())
	assert.False(t, SourceSmartstore.PaidMedia())
}
