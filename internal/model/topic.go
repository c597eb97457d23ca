package model

import "time"

type TopicStatus string

const (
	TopicOpen     TopicStatus = "Open"
	TopicClosed   TopicStatus = "Closed"
	TopicReopened TopicStatus = "Reopened"
)

// Topic is a student-initiated help request thread. The author fields are a
// snapshot captured at creation, not a live join against users.
type Topic struct {
	BaseModel
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	CourseID    uint   `gorm:"index" json:"courseId"`
	CourseName  string `gorm:"size:255" json:"courseName"`

	AuthorID     uint     `gorm:"index;not null" json:"authorId"`
	AuthorName   string   `gorm:"size:100" json:"authorName"`
	AuthorAvatar string   `gorm:"size:255" json:"authorAvatar"`
	AuthorRole   UserRole `gorm:"size:20" json:"authorRole"`

	Status      TopicStatus `gorm:"type:enum('Open','Closed','Reopened');default:'Open'" json:"status"`
	Subscribers IDList      `gorm:"serializer:json;type:json" json:"subscribers"`

	Replies   []Reply    `gorm:"foreignKey:TopicID" json:"replies"`
	Materials []Material `gorm:"foreignKey:TopicID" json:"materials"`
	Quizzes   []Quiz     `gorm:"foreignKey:TopicID" json:"quizzes"`
}

func (Topic) TableName() string {
	return "topics"
}

// Reply is append-only: there are no update or delete paths for replies.
type Reply struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TopicID      uint      `gorm:"index;not null" json:"topicId"`
	AuthorID     uint      `gorm:"index;not null" json:"authorId"`
	AuthorName   string    `gorm:"size:100" json:"authorName"`
	AuthorAvatar string    `gorm:"size:255" json:"authorAvatar"`
	AuthorRole   UserRole  `gorm:"size:20" json:"authorRole"`
	Body         string    `gorm:"type:text;not null" json:"body"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (Reply) TableName() string {
	return "replies"
}

// Material is a learning file attached to a topic, stored in blob storage.
type Material struct {
	BaseModel
	TopicID     uint   `gorm:"index;not null" json:"topicId"`
	Name        string `gorm:"size:255;not null" json:"name"`
	ContentType string `gorm:"size:100" json:"contentType"`
	URL         string `gorm:"size:512;not null" json:"url"`
	UploaderID  uint   `gorm:"index" json:"uploaderId"`
}

func (Material) TableName() string {
	return "materials"
}
