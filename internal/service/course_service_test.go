package service

import (
	"testing"

	"campuslearn_backend/internal/model"
	"campuslearn_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeCourseStore keeps courses, modules and lessons in memory.
type fakeCourseStore struct {
	courses     map[uint]*model.Course
	modules     map[uint]*model.CourseModule
	lessons     map[uint]*model.Lesson
	completions []model.LessonCompletion
	nextID      uint
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{
		courses: map[uint]*model.Course{},
		modules: map[uint]*model.CourseModule{},
		lessons: map[uint]*model.Lesson{},
		nextID:  1,
	}
}

func (f *fakeCourseStore) assignID() uint {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeCourseStore) Create(course *model.Course) error {
	course.ID = f.assignID()
	f.courses[course.ID] = course
	return nil
}

func (f *fakeCourseStore) FindByID(id uint) (*model.Course, error) {
	course, ok := f.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return course, nil
}

func (f *fakeCourseStore) List(publishedOnly bool, page, limit int) ([]model.Course, int64, error) {
	var out []model.Course
	for _, c := range f.courses {
		if publishedOnly && !c.Published {
			continue
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCourseStore) Update(course *model.Course) error {
	f.courses[course.ID] = course
	return nil
}

func (f *fakeCourseStore) Delete(id uint) error {
	delete(f.courses, id)
	return nil
}

func (f *fakeCourseStore) CreateModule(mod *model.CourseModule) error {
	mod.ID = f.assignID()
	f.modules[mod.ID] = mod
	return nil
}

func (f *fakeCourseStore) FindModule(id uint) (*model.CourseModule, error) {
	mod, ok := f.modules[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return mod, nil
}

func (f *fakeCourseStore) UpdateModule(mod *model.CourseModule) error {
	f.modules[mod.ID] = mod
	return nil
}

func (f *fakeCourseStore) DeleteModule(id uint) error {
	delete(f.modules, id)
	return nil
}

func (f *fakeCourseStore) CreateLesson(lesson *model.Lesson) error {
	lesson.ID = f.assignID()
	f.lessons[lesson.ID] = lesson
	return nil
}

func (f *fakeCourseStore) FindLesson(id uint) (*model.Lesson, error) {
	lesson, ok := f.lessons[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return lesson, nil
}

func (f *fakeCourseStore) UpdateLesson(lesson *model.Lesson) error {
	f.lessons[lesson.ID] = lesson
	return nil
}

func (f *fakeCourseStore) DeleteLesson(id uint) error {
	delete(f.lessons, id)
	return nil
}

func (f *fakeCourseStore) MarkLessonComplete(completion *model.LessonCompletion) error {
	f.completions = append(f.completions, *completion)
	return nil
}

func (f *fakeCourseStore) ListCompletions(userID uint) ([]model.LessonCompletion, error) {
	var out []model.LessonCompletion
	for _, c := range f.completions {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func newCourseFixture() (*CourseService, *fakeCourseStore) {
	store := newFakeCourseStore()
	return NewCourseService(store, nil), store
}

func TestCreateCourseRoundTrip(t *testing.T) {
	svc, _ := newCourseFixture()

	created, err := svc.Create(CreateCourseInput{
		Title:       "Programming 101",
		Description: "Recursion and friends",
		Instructor:  "Dr Dlamini",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID, "store assigns the identifier")

	fetched, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched, "fetching returns the record as created")
	assert.Equal(t, "Programming 101", fetched.Title)
	assert.False(t, fetched.Published, "courses start unpublished")
	assert.Empty(t, fetched.Students)
}

func TestGetMissingCourse(t *testing.T) {
	svc, _ := newCourseFixture()

	_, err := svc.Get(99)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestAddLessonRejectsUnknownType(t *testing.T) {
	svc, _ := newCourseFixture()

	course, err := svc.Create(CreateCourseInput{Title: "Programming 101"})
	require.NoError(t, err)
	mod, err := svc.AddModule(course.ID, ModuleInput{Title: "Week 1"})
	require.NoError(t, err)

	_, err = svc.AddLesson(mod.ID, LessonInput{Title: "Intro", Type: model.LessonType("podcast")})
	assert.Error(t, err)

	lesson, err := svc.AddLesson(mod.ID, LessonInput{Title: "Intro", Type: model.LessonArticle, Content: "# Welcome"})
	require.NoError(t, err)
	assert.Equal(t, mod.ID, lesson.ModuleID)
}
