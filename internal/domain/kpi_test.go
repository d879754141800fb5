package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func referenceDate() time.Time {
	return time.Date(2025, 7, 15, 14, 0, 0, 0, time.UTC)
}

func TestCalculateBrandKPI(t *testing.T) {
	date := referenceDate()

	agg := NewAggregateResult("abc123", date)
	agg.Put(NormalizedMetric{Source: SourceMeta, Brand: BrandBurdenzero, Date: date, Spend: 100000, Orders: 5})
	agg.Put(NormalizedMetric{Source: SourceCafe24, Brand: BrandBurdenzero, Date: date, Sales: 300000, Orders: 10})
	agg.Put(NormalizedMetric{Source: SourceCoupang, Brand: BrandBurdenzero, Date: date, Sales: 200000, Orders: 8})
	agg.Put(NormalizedMetric{Source: SourceSmartstore, Brand: BrandBurdenzero, Date: date, Sales: 150000, Orders: 6})

	kpi := CalculateBrandKPI(BrandBurdenzero, agg)

	assert.Equal(t, 650000, kpi.Revenue)
	assert.Equal(t, 24, kpi.Purchases)
	assert.Equal(t, 100000.0, kpi.Spend)
	assert.Equal(t, 6.5, kpi.ROAS)
	assert.Equal(t, 4166.67, kpi.CPA)
}

func TestCalculateBrandKPIZeroDivisors(t *testing.T) {
	date := referenceDate()

	testCases := []struct {
		name     string
		metrics  []NormalizedMetric
		validate func(t *testing.T, kpi *BrandKPI)
	}{
		{
			name: "Sem investimento o ROAS é zero",
			metrics: []NormalizedMetric{
				{Source: SourceCafe24, Brand: BrandBurdenzero, Date: date, Sales: 300000, Orders: 10},
			},
			validate: func(t *testing.T, kpi *BrandKPI) {
				assert.Equal(t, 0.0, kpi.ROAS)
				assert.Equal(t, 0.0, kpi.CPA)
				assert.Equal(t, 300000, kpi.Revenue)
			},
		},
		{
			name: "Sem compras o CPA é zero",
			metrics: []NormalizedMetric{
				{Source: SourceMeta, Brand: BrandBurdenzero, Date: date, Spend: 50000},
			},
			validate: func(t *testing.T, kpi *BrandKPI) {
				assert.Equal(t, 0.0, kpi.CPA)
				assert.Equal(t, 0.0, kpi.ROAS)
				assert.Equal(t, 50000.0, kpi.Spend)
			},
		},
		{
			name:    "Agregado vazio produz indicadores zerados",
			metrics: nil,
			validate: func(t *testing.T, kpi *BrandKPI) {
				assert.Equal(t, 0.0, kpi.ROAS)
				assert.Equal(t, 0.0, kpi.CPA)
				assert.Equal(t, 0, kpi.Revenue)
				assert.Equal(t, 0, kpi.Purchases)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			agg := NewAggregateResult("abc123", date)
			for _, m := range tc.metrics {
				agg.Put(m)
			}

			tc.validate(t, CalculateBrandKPI(BrandBurdenzero, agg))
		})
	}
}

func TestCalculateBrandKPIIgnoresOtherBrands(t *testing.T) {
	date := referenceDate()

	agg := NewAggregateResult("abc123", date)
	agg.Put(NormalizedMetric{Source: SourceCafe24, Brand: BrandBurdenzero, Date: date, Sales: 300000, Orders: 10})
	agg.Put(NormalizedMetric{Source: SourceCafe24, Brand: BrandBrainology, Date: date, Sales: 900000, Orders: 30})

	kpi := CalculateBrandKPI(BrandBurdenzero, agg)

	assert.Equal(t, 300000, kpi.Revenue)
	assert.Equal(t, 10, kpi.Purchases)
}

func TestCalculateBrandKPIMetaCountsAsSpendOnly(t *testing.T) {
	date := referenceDate()

	// Compras do Meta ficam em Orders, mas mídia paga não entra na receita
	agg := NewAggregateResult("abc123", date)
	agg.Put(NormalizedMetric{Source: SourceMeta, Brand: BrandBurdenzero, Date: date, Spend: 80000, Orders: 4})

	kpi := CalculateBrandKPI(BrandBurdenzero, agg)

	assert.Equal(t, 0, kpi.Revenue)
	assert.Equal(t, 0, kpi.Purchases)
	assert.Equal(t, 80000.0, kpi.Spend)
}
