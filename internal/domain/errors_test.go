package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Almacen-api/internal/domain"
)

func TestError_IsKindYCausa(t *testing.T) {
	cause := errors.New("duplicate key")
	err := fmt.Errorf("despacho: %w", domain.Wrap(domain.ErrConflict, "Order already completed", cause))

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.ErrConflict, domain.KindOf(err))
	assert.Equal(t, "Order already completed", domain.MessageOf(err))
	assert.Equal(t, "despacho: Order already completed: duplicate key", err.Error())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, domain.ErrInvalidInput, domain.KindOf(domain.NewError(domain.ErrInvalidInput, "x")))
	assert.Equal(t, domain.ErrNotFound, domain.KindOf(fmt.Errorf("get: %w", domain.ErrNotFound)), "sentinela sin envolver en Error")
	assert.Equal(t, domain.ErrInternal, domain.KindOf(errors.New("otro")))
}

func TestKindName(t *testing.T) {
	assert.Equal(t, "OK", domain.KindName(nil))
	assert.Equal(t, "INVALID_INPUT", domain.KindName(domain.ErrInvalidInput))
	assert.Equal(t, "NOT_FOUND", domain.KindName(domain.ErrNotFound))
	assert.Equal(t, "CONFLICT", domain.KindName(domain.ErrConflict))
	assert.Equal(t, "STORE_EXECUTION", domain.KindName(domain.ErrStoreExecution))
	assert.Equal(t, "INTERNAL", domain.KindName(domain.ErrInternal))
}
