package retry

import (
	"context"
	"time"

	"github.com/vfg2006/brand-kpi-collector/pkg/collecterrors"
)

// Poller repete uma verificação até a condição ser satisfeita ou o
// prazo estourar. O estouro de prazo produz um erro transitório
// distinguível de uma falha da própria verificação.
type Poller struct {
	Timeout  time.Duration
	Interval time.Duration

	now   func() time.Time
	sleep func(time.Duration)
}

func NewPoller(timeout, interval time.Duration) *Poller {
	return &Poller{
		Timeout:  timeout,
		Interval: interval,
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// WithClock troca as funções de tempo. Usado nos testes.
func (p *Poller) WithClock(now func() time.Time, sleep func(time.Duration)) *Poller {
	p.now = now
	p.sleep = sleep
	return p
}

// Wait chama fn até que retorne done=true. Um erro de fn aborta a
// espera imediatamente; fn deve retornar (false, nil) enquanto a
// condição ainda não estiver pronta.
func (p *Poller) Wait(ctx context.Context, condition string, fn func() (bool, error)) error {
	deadline := p.now().Add(p.Timeout)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		done, err := fn()
		if err != nil {
			return err
		}

		if done {
			return nil
		}

		if p.now().After(deadline) {
			return collecterrors.Newf(collecterrors.ErrTransientFetch,
				"tempo esgotado aguardando %s", condition)
		}

		p.sleep(p.Interval)
	}
}
