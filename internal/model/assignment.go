package model

import "time"

type Assignment struct {
	BaseModel
	CourseID    uint      `gorm:"index;not null" json:"courseId"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	DueDate     time.Time `json:"dueDate"`
	CreatorID   uint      `gorm:"index" json:"creatorId"`
}

func (Assignment) TableName() string {
	return "assignments"
}

type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "submitted"
	SubmissionGraded    SubmissionStatus = "graded"
)

type Submission struct {
	BaseModel
	AssignmentID uint             `gorm:"uniqueIndex:idx_assignment_student" json:"assignmentId"`
	StudentID    uint             `gorm:"uniqueIndex:idx_assignment_student" json:"studentId"`
	CourseID     uint             `gorm:"index" json:"courseId"`
	Content      string           `gorm:"type:text" json:"content"`
	FileURL      string           `gorm:"size:512" json:"fileUrl,omitempty"`
	SubmittedAt  time.Time        `json:"submittedAt"`
	Status       SubmissionStatus `gorm:"type:enum('submitted','graded');default:'submitted'" json:"status"`
	Grade        *float64         `json:"grade,omitempty"`
	Feedback     string           `gorm:"type:text" json:"feedback"`
	GradedBy     uint             `json:"gradedBy,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}
