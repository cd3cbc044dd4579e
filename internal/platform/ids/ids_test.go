package ids

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestULIDIsValidAndOrdered(t *testing.T) {
	g := NewULID()
	prev := g.New()
	assert.True(t, Valid(prev))
	for i := 0; i < 100; i++ {
		next := g.New()
		assert.True(t, Valid(next))
		assert.Greater(t, next, prev)
		prev = next
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("01HZX3K6Q8W2T9V7B5N4M3C2D1"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("1234"))
	assert.False(t, Valid("5f8d0d55b54764421b7156c9")) // mongo ObjectID
	assert.False(t, Valid("01HZX3K6Q8W2T9V7B5N4M3C2DU")) // U is not in the alphabet
}
