package domain

import (
	"errors"
	"fmt"
)

// Tipos de fallo del motor de despacho (sin dependencias externas).
// Se comparan con errors.Is sobre cualquier error devuelto por los casos de uso.
var (
	ErrInvalidInput   = errors.New("entrada inválida")
	ErrNotFound       = errors.New("recurso no encontrado")
	ErrConflict       = errors.New("conflicto con el estado actual")
	ErrStoreExecution = errors.New("error de ejecución en la base de datos")
	ErrInternal       = errors.New("error interno")
)

// Error es un fallo tipado: Kind es uno de los sentinelas de arriba, Message el texto
// para el cliente y Err la causa original (opcional).
type Error struct {
	Kind    error
	Message string
	Err     error
}

// NewError construye un fallo del tipo indicado.
func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap construye un fallo del tipo indicado conservando la causa.
func Wrap(kind error, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap expone tanto el tipo como la causa para errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// KindOf devuelve el sentinela asociado a err; ErrInternal si no es un fallo tipado.
func KindOf(err error) error {
	var de *Error
	if errors.As(err, &de) && de.Kind != nil {
		return de.Kind
	}
	for _, k := range []error{ErrInvalidInput, ErrNotFound, ErrConflict, ErrStoreExecution} {
		if errors.Is(err, k) {
			return k
		}
	}
	return ErrInternal
}

// MessageOf devuelve el mensaje apto para el cliente.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}

// KindName nombre corto del tipo, usado en logs, métricas y respuestas HTTP.
func KindName(kind error) string {
	switch kind {
	case nil:
		return "OK"
	case ErrInvalidInput:
		return "INVALID_INPUT"
	case ErrNotFound:
		return "NOT_FOUND"
	case ErrConflict:
		return "CONFLICT"
	case ErrStoreExecution:
		return "STORE_EXECUTION"
	default:
		return "INTERNAL"
	}
}
