package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"campuslearn_backend/internal/model"
	"campuslearn_backend/internal/util"
	"campuslearn_backend/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CourseStore is the slice of the course repository the service needs; tests
// substitute an in-memory fake.
type CourseStore interface {
	Create(course *model.Course) error
	FindByID(id uint) (*model.Course, error)
	List(publishedOnly bool, page, limit int) ([]model.Course, int64, error)
	Update(course *model.Course) error
	Delete(id uint) error
	CreateModule(mod *model.CourseModule) error
	FindModule(id uint) (*model.CourseModule, error)
	UpdateModule(mod *model.CourseModule) error
	DeleteModule(id uint) error
	CreateLesson(lesson *model.Lesson) error
	FindLesson(id uint) (*model.Lesson, error)
	UpdateLesson(lesson *model.Lesson) error
	DeleteLesson(id uint) error
	MarkLessonComplete(completion *model.LessonCompletion) error
	ListCompletions(userID uint) ([]model.LessonCompletion, error)
}

type CourseService struct {
	store   CourseStore
	storage *StorageService
}

func NewCourseService(store CourseStore, storage *StorageService) *CourseService {
	return &CourseService{store: store, storage: storage}
}

type CreateCourseInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Instructor  string `json:"instructor"`
}

func (s *CourseService) Create(in CreateCourseInput) (*model.Course, error) {
	course := &model.Course{
		Title:       in.Title,
		Description: in.Description,
		Instructor:  in.Instructor,
		Students:    model.IDList{},
		Lecturers:   model.IDList{},
		Tutors:      model.IDList{},
	}
	if err := s.store.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Get(id uint) (*model.Course, error) {
	course, err := s.store.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (s *CourseService) List(publishedOnly bool, page, limit int) ([]model.Course, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return s.store.List(publishedOnly, page, limit)
}

type UpdateCourseInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Instructor  string `json:"instructor"`
}

func (s *CourseService) Update(id uint, in UpdateCourseInput) (*model.Course, error) {
	course, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if in.Title != "" {
		course.Title = in.Title
	}
	if in.Description != "" {
		course.Description = in.Description
	}
	if in.Instructor != "" {
		course.Instructor = in.Instructor
	}

	if err := s.store.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) SetPublished(id uint, published bool) error {
	course, err := s.Get(id)
	if err != nil {
		return err
	}
	course.Published = published
	return s.store.Update(course)
}

func (s *CourseService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.store.Delete(id)
}

type ModuleInput struct {
	Title    string `json:"title" binding:"required"`
	Position int    `json:"position"`
}

func (s *CourseService) AddModule(courseID uint, in ModuleInput) (*model.CourseModule, error) {
	if _, err := s.Get(courseID); err != nil {
		return nil, err
	}

	mod := &model.CourseModule{
		CourseID: courseID,
		Title:    in.Title,
		Position: in.Position,
	}
	if err := s.store.CreateModule(mod); err != nil {
		return nil, err
	}
	return mod, nil
}

func (s *CourseService) UpdateModule(moduleID uint, in ModuleInput) (*model.CourseModule, error) {
	mod, err := s.store.FindModule(moduleID)
	if err != nil {
		return nil, err
	}

	mod.Title = in.Title
	mod.Position = in.Position
	if err := s.store.UpdateModule(mod); err != nil {
		return nil, err
	}
	return mod, nil
}

func (s *CourseService) DeleteModule(moduleID uint) error {
	return s.store.DeleteModule(moduleID)
}

type LessonInput struct {
	Title    string           `json:"title" binding:"required"`
	Type     model.LessonType `json:"type" binding:"required"`
	Content  string           `json:"content"`
	URL      string           `json:"url"`
	QuizID   *uint            `json:"quizId"`
	Position int              `json:"position"`
}

func (s *CourseService) AddLesson(moduleID uint, in LessonInput) (*model.Lesson, error) {
	if _, err := s.store.FindModule(moduleID); err != nil {
		return nil, err
	}

	switch in.Type {
	case model.LessonArticle, model.LessonVideo, model.LessonPDF, model.LessonQuiz:
	default:
		return nil, fmt.Errorf("unknown lesson type: %s", in.Type)
	}

	lesson := &model.Lesson{
		ModuleID: moduleID,
		Title:    in.Title,
		Type:     in.Type,
		Content:  in.Content,
		URL:      in.URL,
		QuizID:   in.QuizID,
		Position: in.Position,
	}
	if err := s.store.CreateLesson(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *CourseService) UpdateLesson(lessonID uint, in LessonInput) (*model.Lesson, error) {
	lesson, err := s.store.FindLesson(lessonID)
	if err != nil {
		return nil, err
	}

	lesson.Title = in.Title
	lesson.Type = in.Type
	lesson.Content = in.Content
	lesson.URL = in.URL
	lesson.QuizID = in.QuizID
	lesson.Position = in.Position
	if err := s.store.UpdateLesson(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *CourseService) DeleteLesson(lessonID uint) error {
	return s.store.DeleteLesson(lessonID)
}

// UploadLessonMedia stores a lesson file from a local temp path. Videos are
// probed for duration before upload.
func (s *CourseService) UploadLessonMedia(ctx context.Context, lessonID uint, localPath, filename, contentType string) (*model.Lesson, error) {
	lesson, err := s.store.FindLesson(lessonID)
	if err != nil {
		return nil, err
	}

	isVideo := util.IsVideo(contentType)
	if isVideo {
		info, err := util.GetVideoInfo(localPath)
		if err != nil {
			// Probe failures are tolerated, the file still gets stored.
			logger.Log.Warn("video probe failed", zap.String("file", filename), zap.Error(err))
		} else {
			lesson.Duration = info.Duration
		}
	}

	mediaID := uuid.New().String()
	key := fmt.Sprintf("lessons/%d/%s%s", lessonID, mediaID, filepath.Ext(filename))
	url, err := s.storage.UploadFile(ctx, key, localPath, contentType)
	if err != nil {
		return nil, err
	}
	lesson.URL = url

	if isVideo {
		thumbPath := localPath + ".thumb.jpg"
		if err := util.GenerateThumbnail(localPath, thumbPath, "00:00:01"); err != nil {
			logger.Log.Warn("thumbnail generation failed", zap.String("file", filename), zap.Error(err))
		} else {
			thumbKey := fmt.Sprintf("lessons/%d/%s.jpg", lessonID, mediaID)
			if thumbURL, err := s.storage.UploadFile(ctx, thumbKey, thumbPath, "image/jpeg"); err == nil {
				lesson.Thumbnail = thumbURL
			}
			os.Remove(thumbPath)
		}
	}
	if err := s.store.UpdateLesson(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *CourseService) CompleteLesson(userID, lessonID uint) error {
	if _, err := s.store.FindLesson(lessonID); err != nil {
		return err
	}

	return s.store.MarkLessonComplete(&model.LessonCompletion{
		UserID:      userID,
		LessonID:    lessonID,
		CompletedAt: time.Now(),
	})
}

func (s *CourseService) ListCompletions(userID uint) ([]model.LessonCompletion, error) {
	return s.store.ListCompletions(userID)
}
