package service

import (
	"errors"
	"testing"

	"quizcraft/internal/domain"

	"github.com/stretchr/testify/assert"
)

const validQuizJSON = `[
	{"question":"What organelle produces ATP?","options":["Mitochondria","Nucleus","Ribosome","Chloroplast"],"answer":"Mitochondria"},
	{"question":"What is the powerhouse output?","options":["ATP","DNA","RNA","Glucose"],"answer":"ATP"}
]`

func assertParseCode(t *testing.T, err error, code domain.ErrorCode) {
	t.Helper()
	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, code, domainErr.Code)
	assert.NotEmpty(t, domainErr.Context["raw_response"])
}

func TestParseQuestions_Valid(t *testing.T) {
	questions, err := ParseQuestions(validQuizJSON, domain.DefaultOptionCount, PolicyFailBatch)
	assert.NoError(t, err)
	assert.Len(t, questions, 2)
	// Order preserved
	assert.Equal(t, "What organelle produces ATP?", questions[0].Question)
	assert.Equal(t, "What is the powerhouse output?", questions[1].Question)
	assert.Equal(t, "Mitochondria", questions[0].Answer)
}

func TestParseQuestions_NotJSON(t *testing.T) {
	_, err := ParseQuestions("I'm sorry, I can't do that.", domain.DefaultOptionCount, PolicyFailBatch)
	assert.Error(t, err)
	assertParseCode(t, err, domain.CodeParseNotJSON)
}

func TestParseQuestions_NotArray(t *testing.T) {
	_, err := ParseQuestions(`{"question":"Q","options":["A","B","C","D"],"answer":"A"}`, domain.DefaultOptionCount, PolicyFailBatch)
	assert.Error(t, err)
	assertParseCode(t, err, domain.CodeParseNotArray)
}

func TestParseQuestions_SchemaInvalid(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{
			name: "three options instead of four",
			json: `[{"question":"Q","options":["A","B","C"],"answer":"A"}]`,
		},
		{
			name: "answer not among options",
			json: `[{"question":"Q","options":["A","B","C","D"],"answer":"E"}]`,
		},
		{
			name: "empty question",
			json: `[{"question":"","options":["A","B","C","D"],"answer":"A"}]`,
		},
		{
			name: "duplicate options",
			json: `[{"question":"Q","options":["A","A","C","D"],"answer":"A"}]`,
		},
		{
			name: "element is not an object",
			json: `["just a string"]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuestions(tt.json, domain.DefaultOptionCount, PolicyFailBatch)
			assert.Error(t, err)
			assertParseCode(t, err, domain.CodeParseSchemaInvalid)
		})
	}
}

func TestParseQuestions_DropInvalidPolicy(t *testing.T) {
	mixed := `[
		{"question":"Good one","options":["A","B","C","D"],"answer":"A"},
		{"question":"Bad answer","options":["A","B","C","D"],"answer":"E"},
		{"question":"Another good one","options":["W","X","Y","Z"],"answer":"Z"}
	]`

	questions, err := ParseQuestions(mixed, domain.DefaultOptionCount, PolicyDropInvalid)
	assert.NoError(t, err)
	assert.Len(t, questions, 2)
	assert.Equal(t, "Good one", questions[0].Question)
	assert.Equal(t, "Another good one", questions[1].Question)
}

func TestParseQuestions_DropInvalidStillFailsOnNonJSON(t *testing.T) {
	_, err := ParseQuestions("not json at all", domain.DefaultOptionCount, PolicyDropInvalid)
	assert.Error(t, err)
	assertParseCode(t, err, domain.CodeParseNotJSON)
}

func TestParseQuestions_EmptyArray(t *testing.T) {
	questions, err := ParseQuestions("[]", domain.DefaultOptionCount, PolicyFailBatch)
	assert.NoError(t, err)
	assert.Empty(t, questions)
}
