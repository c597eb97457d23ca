package service

import (
	"context"
	"fmt"
	"time"

	"campuslearn_backend/internal/model"
	"campuslearn_backend/internal/util"
	"campuslearn_backend/pkg/logger"
	"campuslearn_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NotificationStore is the slice of the notification repository the service
// needs; tests substitute an in-memory fake.
type NotificationStore interface {
	CreateBatch(notifications []model.Notification) error
	ListByUser(userID uint, page, limit int) ([]model.Notification, int64, error)
	CountUnread(userID uint) (int64, error)
	MarkRead(id, userID uint) error
	MarkAllRead(userID uint) error
}

type NotificationService struct {
	store NotificationStore
	rdb   *redis.Client
}

func NewNotificationService(store NotificationStore, rdb *redis.Client) *NotificationService {
	return &NotificationService{store: store, rdb: rdb}
}

// Recipients computes the fan-out target set: (staff ∪ subscribers) − {actor}.
// The actor is excluded no matter where their id appears.
func Recipients(actorID uint, subscribers, staff []uint) []uint {
	recipients := NewIDSet(subscribers...)
	for _, id := range staff {
		recipients.Add(id)
	}
	recipients.Remove(actorID)
	return recipients.Values()
}

// Fanout writes one notification per recipient in a single transactional
// batch: a partial delivery cannot be observed.
func (s *NotificationService) Fanout(actorID uint, subscribers, staff []uint, text, link string) error {
	ids := Recipients(actorID, subscribers, staff)
	if len(ids) == 0 {
		return nil
	}

	now := time.Now()
	notifications := make([]model.Notification, 0, len(ids))
	for _, id := range ids {
		notifications = append(notifications, model.Notification{
			UserID:    id,
			Text:      text,
			Link:      link,
			CreatedAt: now,
		})
	}

	if err := s.store.CreateBatch(notifications); err != nil {
		return err
	}

	monitoring.NotificationFanout.Add(float64(len(notifications)))
	for _, id := range ids {
		s.invalidateUnread(id)
	}
	return nil
}

// Notify delivers a single notification outside of topic fan-out, e.g. when a
// submission is graded.
func (s *NotificationService) Notify(userID uint, text, link string) error {
	err := s.store.CreateBatch([]model.Notification{{
		UserID:    userID,
		Text:      text,
		Link:      link,
		CreatedAt: time.Now(),
	}})
	if err != nil {
		return err
	}
	s.invalidateUnread(userID)
	return nil
}

func (s *NotificationService) List(userID uint, page, limit int) ([]model.Notification, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return s.store.ListByUser(userID, page, limit)
}

// UnreadCount serves from Redis when possible and falls back to the store.
func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	key := unreadKey(userID)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(context.Background(), key).Int64(); err == nil {
			return cached, nil
		}
	}

	count, err := s.store.CountUnread(userID)
	if err != nil {
		return 0, err
	}

	if s.rdb != nil {
		if err := s.rdb.Set(context.Background(), key, count, 5*time.Minute).Err(); err != nil {
			logger.Log.Warn("caching unread count failed", zap.Uint("user", userID), zap.Error(err))
		}
	}
	return count, nil
}

func (s *NotificationService) MarkRead(id, userID uint) error {
	if err := s.store.MarkRead(id, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrNotificationMissing
		}
		return err
	}
	s.invalidateUnread(userID)
	return nil
}

func (s *NotificationService) MarkAllRead(userID uint) error {
	if err := s.store.MarkAllRead(userID); err != nil {
		return err
	}
	s.invalidateUnread(userID)
	return nil
}

func (s *NotificationService) invalidateUnread(userID uint) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(context.Background(), unreadKey(userID)).Err(); err != nil {
		logger.Log.Warn("invalidating unread count failed", zap.Uint("user", userID), zap.Error(err))
	}
}

func unreadKey(userID uint) string {
	return fmt.Sprintf("notifications:unread:%d", userID)
}
