package domain

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nickbot606/clenv/internal/errors"
)

func TestWrapIO(t *testing.T) {
	t.Run("keeps both the category and the cause", func(t *testing.T) {
		err := WrapIO(sql.ErrConnDone, "failed to get entry")

		assert.ErrorIs(t, err, ErrStorageIO)
		assert.ErrorIs(t, err, errors.ErrStorage)
		assert.ErrorIs(t, err, sql.ErrConnDone)
		assert.Contains(t, err.Error(), "failed to get entry")
	})

	t.Run("nil error", func(t *testing.T) {
		assert.NoError(t, WrapIO(nil, "noop"))
	})
}

func TestErrorCategories(t *testing.T) {
	assert.ErrorIs(t, ErrNamespaceMissing, errors.ErrNotFound)
	assert.ErrorIs(t, ErrKeyMissing, errors.ErrNotFound)
	assert.NotErrorIs(t, ErrNamespaceMissing, ErrKeyMissing)
}
