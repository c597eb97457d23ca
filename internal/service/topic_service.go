package service

import (
	"fmt"
	"time"

	"campuslearn_backend/internal/model"
	"campuslearn_backend/internal/repository"
	"campuslearn_backend/internal/util"
	"campuslearn_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TopicStore is the slice of the topic repository the service needs; tests
// substitute an in-memory fake.
type TopicStore interface {
	Create(topic *model.Topic) error
	FindByID(id uint) (*model.Topic, error)
	List(f repository.TopicFilter) ([]model.Topic, int64, error)
	UpdateStatus(id uint, status model.TopicStatus) error
	UpdateSubscribers(id uint, subscribers model.IDList) error
	AddReply(reply *model.Reply) error
	AddMaterial(material *model.Material) error
}

type CourseStaffFinder interface {
	FindByID(id uint) (*model.Course, error)
}

type TopicService struct {
	topics        TopicStore
	courses       CourseStaffFinder
	notifications *NotificationService
}

func NewTopicService(topics TopicStore, courses CourseStaffFinder, notifications *NotificationService) *TopicService {
	return &TopicService{
		topics:        topics,
		courses:       courses,
		notifications: notifications,
	}
}

type CreateTopicInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	CourseID    uint   `json:"courseId"`
	CourseName  string `json:"courseName"`
}

// Create inserts the topic with a single store call. The author identity is
// snapshotted onto the topic at creation and never live-joined afterwards.
func (s *TopicService) Create(author *model.User, in CreateTopicInput) (*model.Topic, error) {
	topic := &model.Topic{
		Title:        in.Title,
		Description:  in.Description,
		CourseID:     in.CourseID,
		CourseName:   in.CourseName,
		AuthorID:     author.ID,
		AuthorName:   author.Name,
		AuthorAvatar: author.Avatar,
		AuthorRole:   author.Role,
		Status:       model.TopicOpen,
		Subscribers:  model.IDList{author.ID},
	}

	if err := s.topics.Create(topic); err != nil {
		return nil, err
	}

	// The author's followers hear about new topics alongside course staff.
	audience := append(append([]uint{}, topic.Subscribers...), author.Subscribers...)
	s.fanout(author.ID, topic, audience, fmt.Sprintf("New topic: %s", topic.Title))
	return topic, nil
}

func (s *TopicService) Get(id uint) (*model.Topic, error) {
	topic, err := s.topics.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrTopicNotFound
		}
		return nil, err
	}
	return topic, nil
}

func (s *TopicService) List(f repository.TopicFilter) ([]model.Topic, int64, error) {
	return s.topics.List(f)
}

// Reply appends exactly one reply. Replies are immutable: there is no update
// or delete path anywhere in the service.
func (s *TopicService) Reply(author *model.User, topicID uint, body string) (*model.Reply, error) {
	topic, err := s.Get(topicID)
	if err != nil {
		return nil, err
	}
	if topic.Status == model.TopicClosed {
		return nil, util.ErrTopicClosed
	}

	reply := &model.Reply{
		TopicID:      topic.ID,
		AuthorID:     author.ID,
		AuthorName:   author.Name,
		AuthorAvatar: author.Avatar,
		AuthorRole:   author.Role,
		Body:         body,
		CreatedAt:    time.Now(),
	}
	if err := s.topics.AddReply(reply); err != nil {
		return nil, err
	}

	s.fanout(author.ID, topic, topic.Subscribers, fmt.Sprintf("%s replied to %q", author.Name, topic.Title))
	return reply, nil
}

// SetStatus enforces the Open -> Closed -> Reopened cycle.
func (s *TopicService) SetStatus(topicID uint, status model.TopicStatus) error {
	switch status {
	case model.TopicOpen, model.TopicClosed, model.TopicReopened:
	default:
		return util.ErrInvalidTopicStatus
	}

	if _, err := s.Get(topicID); err != nil {
		return err
	}
	return s.topics.UpdateStatus(topicID, status)
}

func (s *TopicService) Subscribe(userID, topicID uint) error {
	topic, err := s.Get(topicID)
	if err != nil {
		return err
	}

	subscribers := NewIDSet(topic.Subscribers...)
	subscribers.Add(userID)
	return s.topics.UpdateSubscribers(topicID, model.IDList(subscribers.Values()))
}

func (s *TopicService) Unsubscribe(userID, topicID uint) error {
	topic, err := s.Get(topicID)
	if err != nil {
		return err
	}

	subscribers := NewIDSet(topic.Subscribers...)
	subscribers.Remove(userID)
	return s.topics.UpdateSubscribers(topicID, model.IDList(subscribers.Values()))
}

func (s *TopicService) AttachMaterial(material *model.Material) error {
	if _, err := s.Get(material.TopicID); err != nil {
		return err
	}
	return s.topics.AddMaterial(material)
}

// fanout notifies (course staff ∪ subscribers) − {actor}. Fan-out is
// best-effort relative to the triggering write: a failed batch does not undo
// the reply or topic.
func (s *TopicService) fanout(actorID uint, topic *model.Topic, subscribers []uint, text string) {
	var staff []uint
	if topic.CourseID != 0 && s.courses != nil {
		if course, err := s.courses.FindByID(topic.CourseID); err == nil {
			staff = course.Staff()
		}
	}

	link := fmt.Sprintf("/topics/%d", topic.ID)
	if err := s.notifications.Fanout(actorID, subscribers, staff, text, link); err != nil {
		logger.Log.Error("topic fan-out failed", zap.Uint("topic", topic.ID), zap.Error(err))
	}
}
