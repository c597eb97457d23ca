package service

import (
	"fmt"
	"time"

	"campuslearn_backend/internal/model"
	"campuslearn_backend/internal/util"
	"campuslearn_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SubmissionStore is the slice of the assignment repository the service
// needs; tests substitute an in-memory fake.
type SubmissionStore interface {
	Create(assignment *model.Assignment) error
	FindByID(id uint) (*model.Assignment, error)
	ListByCourse(courseID uint) ([]model.Assignment, error)
	Delete(id uint) error
	CreateSubmission(submission *model.Submission) error
	FindSubmission(id uint) (*model.Submission, error)
	FindSubmissionByStudent(assignmentID, studentID uint) (*model.Submission, error)
	ListSubmissionsByCourses(courseIDs []uint) ([]model.Submission, error)
	ListSubmissionsByStudent(studentID uint) ([]model.Submission, error)
	UpdateSubmission(submission *model.Submission) error
}

type AssignmentService struct {
	store         SubmissionStore
	notifications *NotificationService
}

func NewAssignmentService(store SubmissionStore, notifications *NotificationService) *AssignmentService {
	return &AssignmentService{store: store, notifications: notifications}
}

type CreateAssignmentInput struct {
	CourseID    uint      `json:"courseId" binding:"required"`
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
}

func (s *AssignmentService) Create(creatorID uint, in CreateAssignmentInput) (*model.Assignment, error) {
	assignment := &model.Assignment{
		CourseID:    in.CourseID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		CreatorID:   creatorID,
	}
	if err := s.store.Create(assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *AssignmentService) Get(id uint) (*model.Assignment, error) {
	assignment, err := s.store.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, err
	}
	return assignment, nil
}

func (s *AssignmentService) ListByCourse(courseID uint) ([]model.Assignment, error) {
	return s.store.ListByCourse(courseID)
}

func (s *AssignmentService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.store.Delete(id)
}

type SubmitInput struct {
	Content string `json:"content"`
	FileURL string `json:"fileUrl"`
}

func (s *AssignmentService) Submit(studentID, assignmentID uint, in SubmitInput) (*model.Submission, error) {
	assignment, err := s.Get(assignmentID)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.FindSubmissionByStudent(assignmentID, studentID); err == nil {
		return nil, util.ErrAlreadySubmitted
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	submission := &model.Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		CourseID:     assignment.CourseID,
		Content:      in.Content,
		FileURL:      in.FileURL,
		SubmittedAt:  time.Now(),
		Status:       model.SubmissionSubmitted,
	}
	if err := s.store.CreateSubmission(submission); err != nil {
		return nil, err
	}
	return submission, nil
}

// ListForStaff returns submissions for the courses the staff member is
// assigned to. A tutor with no assigned courses gets an empty result without
// the store being queried at all.
func (s *AssignmentService) ListForStaff(staff *model.User) ([]model.Submission, error) {
	if len(staff.AssignedCourses) == 0 {
		return []model.Submission{}, nil
	}
	return s.store.ListSubmissionsByCourses(staff.AssignedCourses)
}

func (s *AssignmentService) ListForStudent(studentID uint) ([]model.Submission, error) {
	return s.store.ListSubmissionsByStudent(studentID)
}

type GradeInput struct {
	Grade    float64 `json:"grade" binding:"min=0,max=100"`
	Feedback string  `json:"feedback"`
}

// Grade records the mark and feedback and notifies the student.
func (s *AssignmentService) Grade(graderID, submissionID uint, in GradeInput) (*model.Submission, error) {
	submission, err := s.store.FindSubmission(submissionID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}

	grade := in.Grade
	submission.Grade = &grade
	submission.Feedback = in.Feedback
	submission.Status = model.SubmissionGraded
	submission.GradedBy = graderID

	if err := s.store.UpdateSubmission(submission); err != nil {
		return nil, err
	}

	assignment, err := s.Get(submission.AssignmentID)
	if err == nil {
		text := fmt.Sprintf("Your submission for %q was graded: %.1f", assignment.Title, grade)
		link := fmt.Sprintf("/assignments/%d", assignment.ID)
		if err := s.notifications.Notify(submission.StudentID, text, link); err != nil {
			logger.Log.Error("grade notification failed", zap.Uint("submission", submission.ID), zap.Error(err))
		}
	}

	return submission, nil
}
