package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/phonebook/core"
	"github.com/stretchr/testify/assert"
)

func TestUnavailable(t *testing.T) {
	ctx := context.Background()
	cause := errors.New("disk on fire")
	store := Unavailable(cause)

	_, err := store.LoadAll(ctx)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, cause)

	c := &core.Contact{Name: "Alice", Phone: "111", Category: core.CategoryFamily}
	assert.ErrorIs(t, store.Insert(ctx, c), ErrStoreUnavailable)
	assert.ErrorIs(t, store.Update(ctx, "111", c), ErrStoreUnavailable)
	assert.ErrorIs(t, store.Delete(ctx, "111"), ErrStoreUnavailable)
	assert.ErrorIs(t, store.ClearAll(ctx), ErrStoreUnavailable)
	assert.NoError(t, store.Close())
}

func TestUnavailable_NilCause(t *testing.T) {
	_, err := Unavailable(nil).LoadAll(context.Background())
	assert.Equal(t, ErrStoreUnavailable, err)
}
