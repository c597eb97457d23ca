package repository

import (
	"campuslearn_backend/internal/model"

	"gorm.io/gorm"
)

// AssignmentTx is the set of reads and writes one assignment update performs.
// All calls happen inside a single transaction.
type AssignmentTx interface {
	CourseByID(id uint) (*model.Course, error)
	UpdateCourseList(courseID uint, column string, ids model.IDList) error
	UserByID(id uint) (*model.User, error)
	UpdateUserCourses(userID uint, ids model.IDList) error
}

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

// InTransaction runs fn against a transaction-scoped AssignmentTx. An error
// from fn rolls back every write it made.
func (r *EnrollmentRepository) InTransaction(fn func(AssignmentTx) error) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return fn(&enrollmentTx{tx: tx})
	})
}

type enrollmentTx struct {
	tx *gorm.DB
}

func (t *enrollmentTx) CourseByID(id uint) (*model.Course, error) {
	var course model.Course
	err := t.tx.First(&course, id).Error
	return &course, err
}

func (t *enrollmentTx) UpdateCourseList(courseID uint, column string, ids model.IDList) error {
	return t.tx.Model(&model.Course{}).
		Where("id = ?", courseID).
		Update(column, ids).Error
}

func (t *enrollmentTx) UserByID(id uint) (*model.User, error) {
	var user model.User
	err := t.tx.First(&user, id).Error
	return &user, err
}

func (t *enrollmentTx) UpdateUserCourses(userID uint, ids model.IDList) error {
	return t.tx.Model(&model.User{}).
		Where("id = ?", userID).
		Update("assigned_courses", ids).Error
}
