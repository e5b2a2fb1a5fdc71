package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuizQuestionValidate(t *testing.T) {
	valid := QuizQuestion{
		Question: "What is the capital of France?",
		Options:  []string{"Paris", "London", "Berlin", "Madrid"},
		Answer:   "Paris",
	}

	t.Run("valid question passes", func(t *testing.T) {
		assert.NoError(t, valid.Validate(DefaultOptionCount))
	})

	t.Run("empty question text fails", func(t *testing.T) {
		q := valid
		q.Question = "   "
		assert.Error(t, q.Validate(DefaultOptionCount))
	})

	t.Run("wrong option count fails", func(t *testing.T) {
		q := valid
		q.Options = []string{"Paris", "London", "Berlin"}
		assert.Error(t, q.Validate(DefaultOptionCount))
	})

	t.Run("duplicate options fail", func(t *testing.T) {
		q := valid
		q.Options = []string{"Paris", "Paris", "Berlin", "Madrid"}
		assert.Error(t, q.Validate(DefaultOptionCount))
	})

	t.Run("empty option fails", func(t *testing.T) {
		q := valid
		q.Options = []string{"Paris", "", "Berlin", "Madrid"}
		assert.Error(t, q.Validate(DefaultOptionCount))
	})

	t.Run("answer outside options fails", func(t *testing.T) {
		q := valid
		q.Answer = "Rome"
		assert.Error(t, q.Validate(DefaultOptionCount))
	})
}
