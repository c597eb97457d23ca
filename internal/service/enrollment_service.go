package service

import (
	"campuslearn_backend/internal/model"
	"campuslearn_backend/internal/repository"
	"campuslearn_backend/internal/util"
	"campuslearn_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AssignmentRole selects which identifier list on the course an assignment
// update targets.
type AssignmentRole string

const (
	AssignStudents  AssignmentRole = "students"
	AssignLecturers AssignmentRole = "lecturers"
	AssignTutors    AssignmentRole = "tutors"
)

// AssignmentStore runs assignment writes inside one transaction; tests
// substitute an in-memory fake.
type AssignmentStore interface {
	InTransaction(fn func(repository.AssignmentTx) error) error
}

// EnrollmentService applies staff/enrollment assignment changes. The course
// list write and the per-user patches happen inside one transaction, so a
// failure leaves both sides untouched.
type EnrollmentService struct {
	store AssignmentStore
}

func NewEnrollmentService(store AssignmentStore) *EnrollmentService {
	return &EnrollmentService{store: store}
}

// AssignmentChange reports what an Assign call did.
type AssignmentChange struct {
	Added   []uint `json:"added"`
	Removed []uint `json:"removed"`
}

// Assign replaces the course's assignment list for the given role with
// newIDs, patching every affected user's AssignedCourses. newIDs is
// deduplicated through the set type, so persisted lists never carry
// duplicates.
func (s *EnrollmentService) Assign(courseID uint, role AssignmentRole, newIDs []uint) (*AssignmentChange, error) {
	change := &AssignmentChange{}

	err := s.store.InTransaction(func(tx repository.AssignmentTx) error {
		course, err := tx.CourseByID(courseID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return util.ErrCourseNotFound
			}
			return err
		}

		var old model.IDList
		switch role {
		case AssignStudents:
			old = course.Students
		case AssignLecturers:
			old = course.Lecturers
		case AssignTutors:
			old = course.Tutors
		default:
			return util.ErrPermissionDenied
		}

		toAdd, toRemove := DiffIDs(old, newIDs)
		change.Added = toAdd
		change.Removed = toRemove

		deduped := model.IDList(NewIDSet(newIDs...).Values())
		if err := tx.UpdateCourseList(courseID, string(role), deduped); err != nil {
			return err
		}

		for _, userID := range toAdd {
			if err := patchUserCourses(tx, userID, courseID, true); err != nil {
				return err
			}
		}
		for _, userID := range toRemove {
			if err := patchUserCourses(tx, userID, courseID, false); err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	logger.Log.Info("assignment updated",
		zap.Uint("course", courseID),
		zap.String("role", string(role)),
		zap.Uints("added", change.Added),
		zap.Uints("removed", change.Removed),
	)
	return change, nil
}

func patchUserCourses(tx repository.AssignmentTx, userID, courseID uint, add bool) error {
	user, err := tx.UserByID(userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrUserNotFound
		}
		return err
	}

	courses := NewIDSet(user.AssignedCourses...)
	if add {
		courses.Add(courseID)
	} else {
		courses.Remove(courseID)
	}

	return tx.UpdateUserCourses(userID, model.IDList(courses.Values()))
}
