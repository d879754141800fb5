package scheduler

import (
	"time"

	"github.com/vfg2006/brand-kpi-collector/internal/domain"
	"github.com/vfg2006/brand-kpi-collector/pkg/utils"
)

// DefaultToleranceMinutes é a tolerância padrão entre o horário atual
// e o centro do slot. Com 70 minutos, janelas vizinhas (espaçadas de
// 120) se encostam no ponto médio; o desempate é o primeiro da lista.
const DefaultToleranceMinutes = 70

// SlotPicker decide qual slot do dia o horário corrente atende, se
// algum. A escolha é puramente aritmética e determinística.
type SlotPicker struct {
	slots     []domain.Slot
	tolerance time.Duration
}

func NewSlotPicker(toleranceMinutes int) *SlotPicker {
	if toleranceMinutes <= 0 {
		toleranceMinutes = DefaultToleranceMinutes
	}

	return &SlotPicker{
		slots:     domain.CollectSlots,
		tolerance: time.Duration(toleranceMinutes) * time.Minute,
	}
}

// Pick devolve o primeiro slot cuja distância ao horário (KST) cabe na
// tolerância. Fora de qualquer janela, retorna false e o run é pulado.
func (p *SlotPicker) Pick(now time.Time) (domain.Slot, bool) {
	local := now.In(utils.KST)

	for _, slot := range p.slots {
		center := time.Date(local.Year(), local.Month(), local.Day(),
			slot.Hour, slot.Minute, 0, 0, utils.KST)

		diff := local.Sub(center)
		if diff < 0 {
			diff = -diff
		}

		if diff <= p.tolerance {
			return slot, true
		}
	}

	return domain.Slot{}, false
}
