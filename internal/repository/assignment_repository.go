package repository

import (
	"campuslearn_backend/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) Create(assignment *model.Assignment) error {
	return r.DB.Create(assignment).Error
}

func (r *AssignmentRepository) FindByID(id uint) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.DB.First(&assignment, id).Error
	return &assignment, err
}

func (r *AssignmentRepository) ListByCourse(courseID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.Where("course_id = ?", courseID).
		Order("due_date ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Assignment{}, id).Error
}

func (r *AssignmentRepository) CreateSubmission(submission *model.Submission) error {
	return r.DB.Create(submission).Error
}

func (r *AssignmentRepository) FindSubmission(id uint) (*model.Submission, error) {
	var submission model.Submission
	err := r.DB.First(&submission, id).Error
	return &submission, err
}

func (r *AssignmentRepository) FindSubmissionByStudent(assignmentID, studentID uint) (*model.Submission, error) {
	var submission model.Submission
	err := r.DB.
		Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		First(&submission).Error
	return &submission, err
}

func (r *AssignmentRepository) ListSubmissionsByCourses(courseIDs []uint) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.DB.Where("course_id IN ?", courseIDs).
		Order("submitted_at DESC").
		Find(&submissions).Error
	return submissions, err
}

func (r *AssignmentRepository) ListSubmissionsByStudent(studentID uint) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.DB.Where("student_id = ?", studentID).
		Order("submitted_at DESC").
		Find(&submissions).Error
	return submissions, err
}

func (r *AssignmentRepository) UpdateSubmission(submission *model.Submission) error {
	return r.DB.Save(submission).Error
}

func (r *AssignmentRepository) CountSubmissions() (graded, pending int64, err error) {
	if err = r.DB.Model(&model.Submission{}).
		Where("status = ?", model.SubmissionGraded).
		Count(&graded).Error; err != nil {
		return
	}
	err = r.DB.Model(&model.Submission{}).
		Where("status = ?", model.SubmissionSubmitted).
		Count(&pending).Error
	return
}
