package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	t.Run("without params", func(t *testing.T) {
		key := GenerateCacheKey("quizgen", "result", "abc123")
		assert.Equal(t, "quizcraft:quizgen:result:abc123", key)
	})

	t.Run("with params", func(t *testing.T) {
		key := GenerateCacheKey("quizgen", "result", "abc123", "10")
		assert.Equal(t, "quizcraft:quizgen:result:abc123:10", key)
	})

	t.Run("multiple params joined by underscore", func(t *testing.T) {
		key := GenerateCacheKey("quizgen", "result", "abc123", "10", "v2")
		assert.Equal(t, "quizcraft:quizgen:result:abc123:10_v2", key)
	})
}
