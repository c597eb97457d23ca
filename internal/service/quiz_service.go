package service

import (
	"time"

	"campuslearn_backend/internal/model"
	"campuslearn_backend/internal/repository"
	"campuslearn_backend/internal/util"

	"gorm.io/gorm"
)

type QuizService struct {
	quizRepo *repository.QuizRepository
}

func NewQuizService(quizRepo *repository.QuizRepository) *QuizService {
	return &QuizService{quizRepo: quizRepo}
}

// GradeQuiz scores answers against the quiz's stored correct indices. The
// score is the number of questions whose chosen option equals the correct
// one, so it is always within [0, N]. Every question must be answered.
func GradeQuiz(quiz *model.Quiz, answers map[int]int) (int, error) {
	if len(answers) != len(quiz.Questions) {
		return 0, util.ErrIncompleteAnswers
	}

	score := 0
	for i, q := range quiz.Questions {
		chosen, ok := answers[i]
		if !ok {
			return 0, util.ErrIncompleteAnswers
		}
		if chosen == q.CorrectIndex {
			score++
		}
	}
	return score, nil
}

type QuestionInput struct {
	Text         string   `json:"text" binding:"required"`
	Options      []string `json:"options" binding:"required,min=2"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
}

type CreateQuizInput struct {
	Title     string          `json:"title" binding:"required"`
	TopicID   *uint           `json:"topicId"`
	Questions []QuestionInput `json:"questions" binding:"required,min=1"`
}

func (s *QuizService) Create(creatorID uint, in CreateQuizInput) (*model.Quiz, error) {
	quiz := &model.Quiz{
		Title:     in.Title,
		TopicID:   in.TopicID,
		CreatorID: creatorID,
	}
	for i, q := range in.Questions {
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return nil, util.ErrInvalidQuestion
		}
		quiz.Questions = append(quiz.Questions, model.QuizQuestion{
			Text:         q.Text,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			Explanation:  q.Explanation,
			Position:     i,
		})
	}

	if err := s.quizRepo.Create(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) Get(id uint) (*model.Quiz, error) {
	quiz, err := s.quizRepo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) ListByTopic(topicID uint) ([]model.Quiz, error) {
	return s.quizRepo.ListByTopic(topicID)
}

func (s *QuizService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.quizRepo.Delete(id)
}

// Submit grades the attempt and persists it. Retakes simply create another
// attempt.
func (s *QuizService) Submit(userID, quizID uint, answers map[int]int) (*model.QuizAttempt, error) {
	quiz, err := s.Get(quizID)
	if err != nil {
		return nil, err
	}

	score, err := GradeQuiz(quiz, answers)
	if err != nil {
		return nil, err
	}

	attempt := &model.QuizAttempt{
		UserID:      userID,
		QuizID:      quizID,
		Answers:     answers,
		Score:       score,
		Total:       len(quiz.Questions),
		CompletedAt: time.Now(),
	}
	if err := s.quizRepo.CreateAttempt(attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

func (s *QuizService) ListAttempts(userID, quizID uint) ([]model.QuizAttempt, error) {
	return s.quizRepo.ListAttempts(userID, quizID)
}
