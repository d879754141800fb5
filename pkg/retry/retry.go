package retry

import (
	"context"
	"time"

	"github.com/vfg2006/brand-kpi-collector/pkg/collecterrors"
	"github.com/vfg2006/brand-kpi-collector/pkg/log"
)

// Classifier decide se um erro é transitório e admite nova tentativa.
type Classifier func(error) bool

// Executor repete uma operação com intervalo fixo enquanto o erro for
// classificado como transitório. Erros fatais retornam imediatamente.
type Executor struct {
	MaxRetries  int
	Delay       time.Duration
	IsTransient Classifier

	sleep func(time.Duration)
}

func New(maxRetries int, delay time.Duration, classifier Classifier) *Executor {
	if classifier == nil {
		classifier = collecterrors.IsTransient
	}

	return &Executor{
		MaxRetries:  maxRetries,
		Delay:       delay,
		IsTransient: classifier,
		sleep:       time.Sleep,
	}
}

// WithSleep troca a função de espera. Usado nos testes.
func (e *Executor) WithSleep(sleep func(time.Duration)) *Executor {
	e.sleep = sleep
	return e
}

// Do executa a operação até MaxRetries+1 vezes. Retorna o último erro
// quando as tentativas se esgotam.
func (e *Executor) Do(ctx context.Context, operation string, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= e.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if !e.IsTransient(lastErr) {
			return lastErr
		}

		if attempt < e.MaxRetries {
			log.ForContext(ctx).WithError(lastErr).WithFields(log.Fields{
				"operation": operation,
				"attempt":   attempt + 1,
			}).Warn("Falha transitória, tentando novamente")

			e.sleep(e.Delay)
		}
	}

	return lastErr
}

// DoWithReset executa a operação e, em caso de falha, executa o reset
// (ex.: renavegação completa da página) e tenta exatamente mais uma vez.
func DoWithReset(ctx context.Context, operation string, fn func() error, reset func() error) error {
	err := fn()
	if err == nil {
		return nil
	}

	log.ForContext(ctx).WithError(err).WithField("operation", operation).
		Warn("Primeira tentativa falhou, reiniciando a navegação")

	if resetErr := reset(); resetErr != nil {
		return resetErr
	}

	return fn()
}
