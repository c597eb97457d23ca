package model

import "time"

type Quiz struct {
	BaseModel
	Title string `gorm:"size:255;not null" json:"title"`
	// Optional owners: a quiz can hang off a topic or be referenced by a lesson.
	TopicID   *uint `gorm:"index" json:"topicId,omitempty"`
	CreatorID uint  `gorm:"index" json:"creatorId"`

	Questions []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

type QuizQuestion struct {
	BaseModel
	QuizID       uint       `gorm:"index;not null" json:"quizId"`
	Text         string     `gorm:"type:text;not null" json:"text"`
	Options      StringList `gorm:"serializer:json;type:json" json:"options"`
	CorrectIndex int        `gorm:"not null" json:"correctIndex"`
	Explanation  string     `gorm:"type:text" json:"explanation"`
	Position     int        `gorm:"default:0" json:"position"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// QuizAttempt stores a graded submission. Retakes create new attempts.
type QuizAttempt struct {
	ID          uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint        `gorm:"index;not null" json:"userId"`
	QuizID      uint        `gorm:"index;not null" json:"quizId"`
	Answers     map[int]int `gorm:"serializer:json;type:json" json:"answers"`
	Score       int         `gorm:"not null" json:"score"`
	Total       int         `gorm:"not null" json:"total"`
	CompletedAt time.Time   `json:"completedAt"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
