package collecterrors

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestCollectErrorMessage(t *testing.T) {
	err := Newf(ErrTransientFetch, "falha ao carregar a página %s", "dashboard").
		WithSource("cafe24")

	assert.Equal(t, "[FETCH_001][cafe24] falha ao carregar a página dashboard", err.Error())
}

func TestCollectErrorWrapsCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(cause, ErrTransientFetch, "falha de rede")

	assert.Equal(t, cause, errors.Unwrap(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestKindOf(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Erro de coleta retorna o código",
			err:      New(ErrInvalidToken, "token revogado"),
			expected: ErrInvalidToken,
		},
		{
			name:     "Erro de coleta embrulhado por outro erro",
			err:      errors.Wrap(New(ErrExtraction, "sem valor"), "contexto"),
			expected: ErrExtraction,
		},
		{
			name:     "Erro comum retorna vazio",
			err:      fmt.Errorf("qualquer coisa"),
			expected: "",
		},
		{
			name:     "Nil retorna vazio",
			err:      nil,
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, KindOf(tc.err))
		})
	}
}

func TestHintOf(t *testing.T) {
	err := New(ErrMissingScope, "escopo ausente").
		WithHint("marque ads_read ao gerar o token")

	assert.Equal(t, "marque ads_read ao gerar o token", HintOf(err))
	assert.Equal(t, "", HintOf(fmt.Errorf("sem dica")))
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(New(ErrTransientFetch, "timeout")))
	assert.False(t, IsTransient(New(ErrInvalidToken, "token revogado")))
	assert.False(t, IsTransient(fmt.Errorf("erro comum")))
}

func TestIsFatal(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "Configuração ausente é fatal", err: New(ErrMissingConfig, ""), expected: true},
		{name: "Token inválido é fatal", err: New(ErrInvalidToken, ""), expected: true},
		{name: "Escopo ausente é fatal", err: New(ErrMissingScope, ""), expected: true},
		{name: "Conta não atribuída é fatal", err: New(ErrAssetNotAssigned, ""), expected: true},
		{name: "Extração esgotada é fatal", err: New(ErrExtraction, ""), expected: true},
		{name: "Agregado sem fontes é fatal", err: New(ErrAggregateFatal, ""), expected: true},
		{name: "Escrita na planilha é fatal", err: New(ErrSheetUpsert, ""), expected: true},
		{name: "Falha transitória não é fatal", err: New(ErrTransientFetch, ""), expected: false},
		{name: "Erro comum não é fatal", err: fmt.Errorf("qualquer coisa"), expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsFatal(tc.err))
		})
	}
}
