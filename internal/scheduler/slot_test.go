package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/brand-kpi-collector/pkg/utils"
)

func kstTime(hour, minute int) time.Time {
	return time.Date(2025, 7, 15, hour, minute, 0, 0, utils.KST)
}

func TestPick(t *testing.T) {
	picker := NewSlotPicker(DefaultToleranceMinutes)

	testCases := []struct {
		name     string
		now      time.Time
		expected string
		found    bool
	}{
		{name: "Horário exato do slot", now: kstTime(14, 0), expected: "14:00", found: true},
		{name: "Atraso dentro da tolerância", now: kstTime(14, 40), expected: "14:00", found: true},
		{name: "Adiantado dentro da tolerância", now: kstTime(13, 15), expected: "14:00", found: true},
		{name: "Borda exata da tolerância", now: kstTime(15, 10), expected: "14:00", found: true},
		{name: "Ponto médio empata para o primeiro da lista", now: kstTime(11, 0), expected: "10:00", found: true},
		{name: "Madrugada fora de qualquer janela", now: kstTime(3, 0), found: false},
		{name: "Antes da primeira janela", now: kstTime(8, 40), found: false},
		{name: "Primeiro slot do dia", now: kstTime(9, 55), expected: "10:00", found: true},
		{name: "Último slot do dia", now: kstTime(23, 5), expected: "22:00", found: true},
		{name: "Depois da última janela", now: kstTime(23, 30), found: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			slot, ok := picker.Pick(tc.now)

			assert.Equal(t, tc.found, ok)
			if tc.found {
				assert.Equal(t, tc.expected, slot.Label)
			}
		})
	}
}

func TestPickConvertsToKST(t *testing.T) {
	picker := NewSlotPicker(DefaultToleranceMinutes)

	// 05:00 UTC = 14:00 KST
	slot, ok := picker.Pick(time.Date(2025, 7, 15, 5, 0, 0, 0, time.UTC))

	assert.True(t, ok)
	assert.Equal(t, "14:00", slot.Label)
}

func TestPickIsDeterministicAcrossTheDay(t *testing.T) {
	picker := NewSlotPicker(DefaultToleranceMinutes)

	// Varre o dia inteiro: cada minuto resolve no máximo um slot, sempre o mesmo
	for minute := 0; minute < 24*60; minute++ {
		now := kstTime(0, 0).Add(time.Duration(minute) * time.Minute)

		first, okFirst := picker.Pick(now)
		second, okSecond := picker.Pick(now)

		assert.Equal(t, okFirst, okSecond)
		assert.Equal(t, first.Label, second.Label)
	}
}

func TestNewSlotPickerDefaultsTolerance(t *testing.T) {
	picker := NewSlotPicker(0)

	assert.Equal(t, time.Duration(DefaultToleranceMinutes)*time.Minute, picker.tolerance)
}

func TestPickWithNarrowTolerance(t *testing.T) {
	picker := NewSlotPicker(10)

	_, ok := picker.Pick(kstTime(14, 25))
	assert.False(t, ok)

	slot, ok := picker.Pick(kstTime(14, 5))
	assert.True(t, ok)
	assert.Equal(t, "14:00", slot.Label)
}
