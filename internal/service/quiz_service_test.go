package service

import (
	"testing"

	"campuslearn_backend/internal/model"
	"campuslearn_backend/internal/util"

	"github.com/stretchr/testify/assert"
)

func sampleQuiz() *model.Quiz {
	return &model.Quiz{
		Title: "Recursion basics",
		Questions: []model.QuizQuestion{
			{Text: "Base case?", Options: model.StringList{"a", "b", "c"}, CorrectIndex: 0, Position: 0},
			{Text: "Stack depth?", Options: model.StringList{"a", "b"}, CorrectIndex: 1, Position: 1},
			{Text: "Tail call?", Options: model.StringList{"a", "b", "c", "d"}, CorrectIndex: 2, Position: 2},
		},
	}
}

func TestGradeQuiz(t *testing.T) {
	quiz := sampleQuiz()

	tests := []struct {
		name      string
		answers   map[int]int
		wantScore int
		wantErr   error
	}{
		{name: "all correct", answers: map[int]int{0: 0, 1: 1, 2: 2}, wantScore: 3},
		{name: "all wrong", answers: map[int]int{0: 1, 1: 0, 2: 0}, wantScore: 0},
		{name: "partial", answers: map[int]int{0: 0, 1: 0, 2: 2}, wantScore: 2},
		{name: "missing answer", answers: map[int]int{0: 0, 1: 1}, wantErr: util.ErrIncompleteAnswers},
		{name: "wrong question index", answers: map[int]int{0: 0, 1: 1, 7: 2}, wantErr: util.ErrIncompleteAnswers},
		{name: "no answers", answers: map[int]int{}, wantErr: util.ErrIncompleteAnswers},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, err := GradeQuiz(quiz, tt.answers)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantScore, score)

			// Score stays within [0, question count].
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, len(quiz.Questions))
		})
	}
}

func TestGradeQuizOutOfRangeChoice(t *testing.T) {
	quiz := sampleQuiz()

	// A choice outside the option range is simply not the correct answer.
	score, err := GradeQuiz(quiz, map[int]int{0: 9, 1: 1, 2: 2})
	assert.NoError(t, err)
	assert.Equal(t, 2, score)
}
