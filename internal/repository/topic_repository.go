package repository

import (
	"campuslearn_backend/internal/model"

	"gorm.io/gorm"
)

type TopicRepository struct {
	DB *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{DB: db}
}

func (r *TopicRepository) Create(topic *model.Topic) error {
	return r.DB.Create(topic).Error
}

func (r *TopicRepository) FindByID(id uint) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("replies.created_at ASC")
		}).
		Preload("Materials").
		Preload("Quizzes.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("quiz_questions.position ASC")
		}).
		First(&topic, id).Error
	return &topic, err
}

type TopicFilter struct {
	CourseID uint
	AuthorID uint
	Status   model.TopicStatus
	Page     int
	Limit    int
}

func (r *TopicRepository) List(f TopicFilter) ([]model.Topic, int64, error) {
	var topics []model.Topic
	var total int64

	query := r.DB.Model(&model.Topic{})
	if f.CourseID != 0 {
		query = query.Where("course_id = ?", f.CourseID)
	}
	if f.AuthorID != 0 {
		query = query.Where("author_id = ?", f.AuthorID)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}

	err := query.Order("created_at DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&topics).Error
	return topics, total, err
}

func (r *TopicRepository) UpdateStatus(id uint, status model.TopicStatus) error {
	return r.DB.Model(&model.Topic{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}

func (r *TopicRepository) UpdateSubscribers(id uint, subscribers model.IDList) error {
	return r.DB.Model(&model.Topic{}).
		Where("id = ?", id).
		Update("subscribers", subscribers).
		Error
}

func (r *TopicRepository) AddReply(reply *model.Reply) error {
	return r.DB.Create(reply).Error
}

func (r *TopicRepository) AddMaterial(material *model.Material) error {
	return r.DB.Create(material).Error
}

// Search does a LIKE lookup over titles and descriptions, used as knowledge
// base context for the tutoring AI flow.
func (r *TopicRepository) Search(term string, limit int) ([]model.Topic, error) {
	var topics []model.Topic
	err := r.DB.
		Where("title LIKE ? OR description LIKE ?", "%"+term+"%", "%"+term+"%").
		Limit(limit).
		Find(&topics).Error
	return topics, err
}

func (r *TopicRepository) CountByStatus() (map[model.TopicStatus]int64, error) {
	type row struct {
		Status model.TopicStatus
		Count  int64
	}
	var rows []row
	err := r.DB.Model(&model.Topic{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.TopicStatus]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}
