package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZero(t *testing.T) {
	t.Run("zero non-empty slice", func(t *testing.T) {
		b := []byte{1, 2, 3, 4, 5}
		Zero(b)
		assert.Equal(t, []byte{0, 0, 0, 0, 0}, b)
	})

	t.Run("zero several slices", func(t *testing.T) {
		a := []byte{9, 9}
		b := []byte{7}
		Zero(a, b)
		assert.Equal(t, []byte{0, 0}, a)
		assert.Equal(t, []byte{0}, b)
	})

	t.Run("zero empty and nil slices", func(t *testing.T) {
		var nilSlice []byte
		assert.NotPanics(t, func() { Zero([]byte{}, nilSlice) })
	})

	t.Run("zero with no arguments", func(t *testing.T) {
		assert.NotPanics(t, func() { Zero() })
	})
}
