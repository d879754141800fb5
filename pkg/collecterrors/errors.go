package collecterrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Códigos de erro da coleta
const (
	// Configuração
	ErrMissingConfig = "CFG_001" // Variável de ambiente obrigatória ausente

	// Autenticação e permissões (pré-validação)
	ErrInvalidToken     = "AUTH_001" // Token inválido ou expirado
	ErrMissingScope     = "PERM_001" // Escopo obrigatório ausente no token
	ErrAssetNotAssigned = "PERM_002" // Ativo não atribuído ao usuário de sistema

	// Coleta
	ErrTransientFetch = "FETCH_001" // Falha transitória de rede ou de página
	ErrExtraction     = "EXT_001"   // Extração falhou após esgotar as estratégias

	// Consolidação e escrita
	ErrAggregateFatal = "AGG_001"   // Todas as fontes falharam no mesmo run
	ErrSheetUpsert    = "SHEET_001" // Falha ao gravar o slot na planilha
)

// fatalCodes marca os códigos que abortam a fonte (ou o run) sem retry.
var fatalCodes = map[string]bool{
	ErrMissingConfig:    true,
	ErrInvalidToken:     true,
	ErrMissingScope:     true,
	ErrAssetNotAssigned: true,
	ErrExtraction:       true,
	ErrAggregateFatal:   true,
	ErrSheetUpsert:      true,
}

// CollectError é um erro de coleta com código, fonte de origem e dica de
// remediação para o operador.
type CollectError struct {
	Code    string
	Source  string
	Message string
	Hint    string
	Err     error
}

func (e *CollectError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)

	if e.Source != "" {
		msg = fmt.Sprintf("[%s][%s] %s", e.Code, e.Source, e.Message)
	}

	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

func (e *CollectError) Unwrap() error {
	return e.Err
}

func New(code, message string) *CollectError {
	return &CollectError{Code: code, Message: message}
}

func Newf(code, format string, args ...interface{}) *CollectError {
	return &CollectError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(err error, code, message string) *CollectError {
	return &CollectError{Code: code, Message: message, Err: err}
}

// WithHint anexa a instrução de remediação mostrada nos logs de erro.
func (e *CollectError) WithHint(hint string) *CollectError {
	e.Hint = hint
	return e
}

// WithSource marca a fonte de dados que originou o erro.
func (e *CollectError) WithSource(source string) *CollectError {
	e.Source = source
	return e
}

// KindOf retorna o código do erro, ou vazio quando não é um CollectError.
func KindOf(err error) string {
	var ce *CollectError
	if errors.As(err, &ce) {
		return ce.Code
	}

	return ""
}

// HintOf retorna a dica de remediação do erro, quando houver.
func HintOf(err error) string {
	var ce *CollectError
	if errors.As(err, &ce) {
		return ce.Hint
	}

	return ""
}

// IsTransient indica se o erro admite retry dentro do mesmo run.
func IsTransient(err error) bool {
	return KindOf(err) == ErrTransientFetch
}

// IsFatal indica se o erro deve abortar a fonte imediatamente.
func IsFatal(err error) bool {
	code := KindOf(err)
	if code == "" {
		return false
	}

	return fatalCodes[code]
}
