package service

import (
	"errors"
	"testing"

	"campuslearn_backend/internal/model"
	"campuslearn_backend/internal/repository"
	"campuslearn_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeAssignmentStore serves as both the store and its transaction handle,
// recording every write the assignment update performs.
type fakeAssignmentStore struct {
	courses map[uint]*model.Course
	users   map[uint]*model.User

	courseLists   map[string]model.IDList
	userWrites    map[uint]model.IDList
	failUserWrite bool
}

func newFakeAssignmentStore() *fakeAssignmentStore {
	return &fakeAssignmentStore{
		courses:     map[uint]*model.Course{},
		users:       map[uint]*model.User{},
		courseLists: map[string]model.IDList{},
		userWrites:  map[uint]model.IDList{},
	}
}

func (f *fakeAssignmentStore) InTransaction(fn func(repository.AssignmentTx) error) error {
	return fn(f)
}

func (f *fakeAssignmentStore) CourseByID(id uint) (*model.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return course, nil
}

func (f *fakeAssignmentStore) UpdateCourseList(courseID uint, column string, ids model.IDList) error {
	f.courseLists[column] = ids
	return nil
}

func (f *fakeAssignmentStore) UserByID(id uint) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeAssignmentStore) UpdateUserCourses(userID uint, ids model.IDList) error {
	if f.failUserWrite {
		return errors.New("user write failed")
	}
	f.userWrites[userID] = ids
	return nil
}

func newEnrollmentFixture() (*EnrollmentService, *fakeAssignmentStore) {
	store := newFakeAssignmentStore()

	course := &model.Course{Lecturers: model.IDList{10, 11}}
	course.ID = 5
	store.courses[5] = course

	for _, id := range []uint{10, 11, 12} {
		u := &model.User{Role: model.Lecturer}
		u.ID = id
		if id != 12 {
			u.AssignedCourses = model.IDList{5}
		}
		store.users[id] = u
	}

	return NewEnrollmentService(store), store
}

func TestAssignAppliesDiff(t *testing.T) {
	svc, store := newEnrollmentFixture()

	change, err := svc.Assign(5, AssignLecturers, []uint{11, 12})
	require.NoError(t, err)

	assert.Equal(t, []uint{12}, change.Added)
	assert.Equal(t, []uint{10}, change.Removed)

	// The course row carries the new list, the joining user gains the course
	// and the leaving user loses it.
	assert.Equal(t, model.IDList{11, 12}, store.courseLists["lecturers"])
	assert.Equal(t, model.IDList{5}, store.userWrites[12])
	assert.Empty(t, store.userWrites[10])

	_, touched := store.userWrites[11]
	assert.False(t, touched, "unchanged assignments are not rewritten")
}

func TestAssignDeduplicatesNewList(t *testing.T) {
	svc, store := newEnrollmentFixture()

	change, err := svc.Assign(5, AssignTutors, []uint{12, 12})
	require.NoError(t, err)

	assert.Equal(t, []uint{12}, change.Added)
	assert.Equal(t, model.IDList{12}, store.courseLists["tutors"])
}

func TestAssignUnknownCourse(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	_, err := svc.Assign(99, AssignLecturers, []uint{10})
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestAssignUnknownRole(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	_, err := svc.Assign(5, AssignmentRole("owners"), []uint{10})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestAssignPropagatesWriteFailure(t *testing.T) {
	svc, store := newEnrollmentFixture()
	store.failUserWrite = true

	_, err := svc.Assign(5, AssignLecturers, []uint{11, 12})
	assert.Error(t, err)
}
