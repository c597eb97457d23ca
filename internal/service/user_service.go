package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"campuslearn_backend/internal/model"
	"campuslearn_backend/internal/repository"
	"campuslearn_backend/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo *repository.UserRepository
	storage  *StorageService
}

func NewUserService(userRepo *repository.UserRepository, storage *StorageService) *UserService {
	return &UserService{userRepo: userRepo, storage: storage}
}

func (s *UserService) Get(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(role model.UserRole, page, limit int) ([]model.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return s.userRepo.List(role, page, limit)
}

type UpdateProfileInput struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

func (s *UserService) UpdateProfile(userID uint, in UpdateProfileInput) (*model.User, error) {
	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UploadAvatar stores the image and persists its URL on the profile.
func (s *UserService) UploadAvatar(ctx context.Context, userID uint, reader io.Reader, size int64, filename, contentType string) (string, error) {
	user, err := s.Get(userID)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("avatars/%s%s", uuid.New().String(), filepath.Ext(filename))
	url, err := s.storage.Upload(ctx, key, reader, size, contentType)
	if err != nil {
		return "", err
	}

	user.Avatar = url
	if err := s.userRepo.Update(user); err != nil {
		return "", err
	}
	return url, nil
}

// Subscribe makes follower follow target: target gains a subscriber, the
// follower gains a subscription. Both lists are set-deduplicated.
func (s *UserService) Subscribe(followerID, targetID uint) error {
	if followerID == targetID {
		return util.ErrPermissionDenied
	}

	target, err := s.Get(targetID)
	if err != nil {
		return err
	}
	follower, err := s.Get(followerID)
	if err != nil {
		return err
	}

	subscribers := NewIDSet(target.Subscribers...)
	subscribers.Add(followerID)
	target.Subscribers = model.IDList(subscribers.Values())

	subscribing := NewIDSet(follower.Subscribing...)
	subscribing.Add(targetID)
	follower.Subscribing = model.IDList(subscribing.Values())

	if err := s.userRepo.Update(target); err != nil {
		return err
	}
	return s.userRepo.Update(follower)
}

func (s *UserService) Unsubscribe(followerID, targetID uint) error {
	target, err := s.Get(targetID)
	if err != nil {
		return err
	}
	follower, err := s.Get(followerID)
	if err != nil {
		return err
	}

	subscribers := NewIDSet(target.Subscribers...)
	subscribers.Remove(followerID)
	target.Subscribers = model.IDList(subscribers.Values())

	subscribing := NewIDSet(follower.Subscribing...)
	subscribing.Remove(targetID)
	follower.Subscribing = model.IDList(subscribing.Values())

	if err := s.userRepo.Update(target); err != nil {
		return err
	}
	return s.userRepo.Update(follower)
}

// SetRole is admin-only, enforced at the route.
func (s *UserService) SetRole(userID uint, role model.UserRole) (*model.User, error) {
	switch role {
	case model.Student, model.Tutor, model.Lecturer, model.Admin:
	default:
		return nil, util.ErrPermissionDenied
	}

	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetStatus(userID uint, status model.UserStatus) (*model.User, error) {
	switch status {
	case model.StatusActive, model.StatusSuspended:
	default:
		return nil, util.ErrPermissionDenied
	}

	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	user.Status = status
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
