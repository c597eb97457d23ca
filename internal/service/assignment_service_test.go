package service

import (
	"errors"
	"testing"

	"campuslearn_backend/internal/model"
	"campuslearn_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeSubmissionStore tracks whether the course-scoped listing was queried.
type fakeSubmissionStore struct {
	assignments map[uint]*model.Assignment
	submissions map[uint]*model.Submission
	nextID      uint
	listCalls   int
}

func newFakeSubmissionStore() *fakeSubmissionStore {
	return &fakeSubmissionStore{
		assignments: map[uint]*model.Assignment{},
		submissions: map[uint]*model.Submission{},
		nextID:      1,
	}
}

func (f *fakeSubmissionStore) Create(assignment *model.Assignment) error {
	assignment.ID = f.nextID
	f.nextID++
	f.assignments[assignment.ID] = assignment
	return nil
}

func (f *fakeSubmissionStore) FindByID(id uint) (*model.Assignment, error) {
	a, ok := f.assignments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (f *fakeSubmissionStore) ListByCourse(courseID uint) ([]model.Assignment, error) {
	var out []model.Assignment
	for _, a := range f.assignments {
		if a.CourseID == courseID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeSubmissionStore) Delete(id uint) error {
	delete(f.assignments, id)
	return nil
}

func (f *fakeSubmissionStore) CreateSubmission(submission *model.Submission) error {
	submission.ID = f.nextID
	f.nextID++
	f.submissions[submission.ID] = submission
	return nil
}

func (f *fakeSubmissionStore) FindSubmission(id uint) (*model.Submission, error) {
	s, ok := f.submissions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (f *fakeSubmissionStore) FindSubmissionByStudent(assignmentID, studentID uint) (*model.Submission, error) {
	for _, s := range f.submissions {
		if s.AssignmentID == assignmentID && s.StudentID == studentID {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSubmissionStore) ListSubmissionsByCourses(courseIDs []uint) ([]model.Submission, error) {
	f.listCalls++
	wanted := NewIDSet(courseIDs...)
	var out []model.Submission
	for _, s := range f.submissions {
		if wanted.Contains(s.CourseID) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSubmissionStore) ListSubmissionsByStudent(studentID uint) ([]model.Submission, error) {
	var out []model.Submission
	for _, s := range f.submissions {
		if s.StudentID == studentID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSubmissionStore) UpdateSubmission(submission *model.Submission) error {
	f.submissions[submission.ID] = submission
	return nil
}

func newAssignmentFixture() (*AssignmentService, *fakeSubmissionStore, *fakeNotificationStore) {
	store := newFakeSubmissionStore()
	notifStore := &fakeNotificationStore{}
	svc := NewAssignmentService(store, NewNotificationService(notifStore, nil))
	return svc, store, notifStore
}

func TestSubmitRejectsDuplicate(t *testing.T) {
	svc, _, _ := newAssignmentFixture()

	assignment, err := svc.Create(10, CreateAssignmentInput{CourseID: 5, Title: "Essay 1"})
	require.NoError(t, err)

	_, err = svc.Submit(1, assignment.ID, SubmitInput{Content: "my essay"})
	require.NoError(t, err)

	_, err = svc.Submit(1, assignment.ID, SubmitInput{Content: "second try"})
	assert.ErrorIs(t, err, util.ErrAlreadySubmitted)

	// A different student is unaffected.
	_, err = svc.Submit(2, assignment.ID, SubmitInput{Content: "other essay"})
	assert.NoError(t, err)
}

func TestListForStaffWithNoCourses(t *testing.T) {
	svc, store, _ := newAssignmentFixture()

	tutor := &model.User{Role: model.Tutor}
	tutor.ID = 11

	list, err := svc.ListForStaff(tutor)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list, "empty result, not nil")
	assert.Equal(t, 0, store.listCalls, "no assigned courses means no store query")
}

func TestListForStaffScopedToCourses(t *testing.T) {
	svc, store, _ := newAssignmentFixture()

	a1, err := svc.Create(10, CreateAssignmentInput{CourseID: 5, Title: "Essay 1"})
	require.NoError(t, err)
	a2, err := svc.Create(10, CreateAssignmentInput{CourseID: 6, Title: "Essay 2"})
	require.NoError(t, err)

	_, err = svc.Submit(1, a1.ID, SubmitInput{Content: "in scope"})
	require.NoError(t, err)
	_, err = svc.Submit(2, a2.ID, SubmitInput{Content: "out of scope"})
	require.NoError(t, err)

	tutor := &model.User{Role: model.Tutor, AssignedCourses: model.IDList{5}}
	tutor.ID = 11

	list, err := svc.ListForStaff(tutor)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, uint(5), list[0].CourseID)
	assert.Equal(t, 1, store.listCalls)
}

func TestGradeNotifiesStudent(t *testing.T) {
	svc, _, notifStore := newAssignmentFixture()

	assignment, err := svc.Create(10, CreateAssignmentInput{CourseID: 5, Title: "Essay 1"})
	require.NoError(t, err)
	submission, err := svc.Submit(1, assignment.ID, SubmitInput{Content: "my essay"})
	require.NoError(t, err)

	graded, err := svc.Grade(10, submission.ID, GradeInput{Grade: 85, Feedback: "Solid work"})
	require.NoError(t, err)

	require.NotNil(t, graded.Grade)
	assert.Equal(t, 85.0, *graded.Grade)
	assert.Equal(t, "Solid work", graded.Feedback)
	assert.Equal(t, model.SubmissionGraded, graded.Status)
	assert.Equal(t, uint(10), graded.GradedBy)

	require.Len(t, notifStore.batches, 1)
	assert.Equal(t, uint(1), notifStore.batches[0][0].UserID)
}

func TestGradeSurvivesNotifyFailure(t *testing.T) {
	svc, _, notifStore := newAssignmentFixture()

	assignment, err := svc.Create(10, CreateAssignmentInput{CourseID: 5, Title: "Essay 1"})
	require.NoError(t, err)
	submission, err := svc.Submit(1, assignment.ID, SubmitInput{Content: "my essay"})
	require.NoError(t, err)

	// The grade sticks even when the student cannot be notified.
	notifStore.failNext = errors.New("notification store down")
	graded, err := svc.Grade(10, submission.ID, GradeInput{Grade: 70})
	require.NoError(t, err)
	assert.Equal(t, model.SubmissionGraded, graded.Status)
	assert.Empty(t, notifStore.batches)
}

func TestGradeMissingSubmission(t *testing.T) {
	svc, _, _ := newAssignmentFixture()

	_, err := svc.Grade(10, 99, GradeInput{Grade: 50})
	assert.ErrorIs(t, err, util.ErrSubmissionNotFound)
}
