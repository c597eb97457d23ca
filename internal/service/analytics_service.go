package service

import (
	"campuslearn_backend/internal/model"
	"campuslearn_backend/internal/repository"
)

type AnalyticsService struct {
	userRepo       *repository.UserRepository
	courseRepo     *repository.CourseRepository
	topicRepo      *repository.TopicRepository
	assignmentRepo *repository.AssignmentRepository
}

func NewAnalyticsService(
	userRepo *repository.UserRepository,
	courseRepo *repository.CourseRepository,
	topicRepo *repository.TopicRepository,
	assignmentRepo *repository.AssignmentRepository,
) *AnalyticsService {
	return &AnalyticsService{
		userRepo:       userRepo,
		courseRepo:     courseRepo,
		topicRepo:      topicRepo,
		assignmentRepo: assignmentRepo,
	}
}

type PlatformStats struct {
	UsersByRole       map[model.UserRole]int64    `json:"usersByRole"`
	CoursesTotal      int64                       `json:"coursesTotal"`
	CoursesPublished  int64                       `json:"coursesPublished"`
	TopicsByStatus    map[model.TopicStatus]int64 `json:"topicsByStatus"`
	SubmissionsGraded int64                       `json:"submissionsGraded"`
	SubmissionsQueued int64                       `json:"submissionsQueued"`
}

func (s *AnalyticsService) PlatformStats() (*PlatformStats, error) {
	usersByRole, err := s.userRepo.CountByRole()
	if err != nil {
		return nil, err
	}

	total, published, err := s.courseRepo.CountCourses()
	if err != nil {
		return nil, err
	}

	topicsByStatus, err := s.topicRepo.CountByStatus()
	if err != nil {
		return nil, err
	}

	graded, pending, err := s.assignmentRepo.CountSubmissions()
	if err != nil {
		return nil, err
	}

	return &PlatformStats{
		UsersByRole:       usersByRole,
		CoursesTotal:      total,
		CoursesPublished:  published,
		TopicsByStatus:    topicsByStatus,
		SubmissionsGraded: graded,
		SubmissionsQueued: pending,
	}, nil
}
