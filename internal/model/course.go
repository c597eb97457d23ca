package model

import "time"

type LessonType string

const (
	LessonArticle LessonType = "article"
	LessonVideo   LessonType = "video"
	LessonPDF     LessonType = "pdf"
	LessonQuiz    LessonType = "quiz"
)

type Course struct {
	BaseModel
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Instructor  string `gorm:"size:100" json:"instructor"`
	Published   bool   `gorm:"default:false" json:"published"`

	Students  IDList `gorm:"serializer:json;type:json" json:"students"`
	Lecturers IDList `gorm:"serializer:json;type:json" json:"lecturers"`
	Tutors    IDList `gorm:"serializer:json;type:json" json:"tutors"`

	Modules []CourseModule `gorm:"foreignKey:CourseID" json:"modules"`
}

func (Course) TableName() string {
	return "courses"
}

// Staff returns lecturer and tutor ids assigned to the course.
func (c *Course) Staff() []uint {
	staff := make([]uint, 0, len(c.Lecturers)+len(c.Tutors))
	staff = append(staff, c.Lecturers...)
	staff = append(staff, c.Tutors...)
	return staff
}

type CourseModule struct {
	BaseModel
	CourseID uint   `gorm:"index;not null" json:"courseId"`
	Title    string `gorm:"size:255;not null" json:"title"`
	Position int    `gorm:"default:0" json:"position"`

	Lessons []Lesson `gorm:"foreignKey:ModuleID" json:"lessons"`
}

func (CourseModule) TableName() string {
	return "course_modules"
}

type Lesson struct {
	BaseModel
	ModuleID uint       `gorm:"index;not null" json:"moduleId"`
	Title    string     `gorm:"size:255;not null" json:"title"`
	Type     LessonType `gorm:"type:enum('article','video','pdf','quiz');default:'article'" json:"type"`
	// Markdown body for articles; unused for other types.
	Content string `gorm:"type:text" json:"content"`
	// Storage URL for video/pdf lessons.
	URL string `gorm:"size:512" json:"url"`
	// Storage URL of a frame grabbed from video lessons.
	Thumbnail string `gorm:"size:512" json:"thumbnail,omitempty"`
	QuizID    *uint  `gorm:"index" json:"quizId,omitempty"`
	Position  int    `gorm:"default:0" json:"position"`
	// Seconds, probed from uploaded video files.
	Duration float64 `gorm:"default:0" json:"duration"`
}

func (Lesson) TableName() string {
	return "lessons"
}

type LessonCompletion struct {
	BaseModel
	UserID      uint      `gorm:"uniqueIndex:idx_user_lesson" json:"userId"`
	LessonID    uint      `gorm:"uniqueIndex:idx_user_lesson" json:"lessonId"`
	CompletedAt time.Time `json:"completedAt"`
}

func (LessonCompletion) TableName() string {
	return "lesson_completions"
}
