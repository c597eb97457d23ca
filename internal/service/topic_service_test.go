package service

import (
	"testing"

	"campuslearn_backend/internal/model"
	"campuslearn_backend/internal/repository"
	"campuslearn_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeTopicStore keeps topics in memory and counts writes.
type fakeTopicStore struct {
	topics      map[uint]*model.Topic
	nextID      uint
	createCalls int
	replies     []*model.Reply
	materials   []*model.Material
}

func newFakeTopicStore() *fakeTopicStore {
	return &fakeTopicStore{topics: map[uint]*model.Topic{}, nextID: 1}
}

func (f *fakeTopicStore) Create(topic *model.Topic) error {
	f.createCalls++
	topic.ID = f.nextID
	f.nextID++
	f.topics[topic.ID] = topic
	return nil
}

func (f *fakeTopicStore) FindByID(id uint) (*model.Topic, error) {
	topic, ok := f.topics[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return topic, nil
}

func (f *fakeTopicStore) List(filter repository.TopicFilter) ([]model.Topic, int64, error) {
	var out []model.Topic
	for _, t := range f.topics {
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (f *fakeTopicStore) UpdateStatus(id uint, status model.TopicStatus) error {
	f.topics[id].Status = status
	return nil
}

func (f *fakeTopicStore) UpdateSubscribers(id uint, subscribers model.IDList) error {
	f.topics[id].Subscribers = subscribers
	return nil
}

func (f *fakeTopicStore) AddReply(reply *model.Reply) error {
	reply.ID = uint(len(f.replies) + 1)
	f.replies = append(f.replies, reply)
	f.topics[reply.TopicID].Replies = append(f.topics[reply.TopicID].Replies, *reply)
	return nil
}

func (f *fakeTopicStore) AddMaterial(material *model.Material) error {
	f.materials = append(f.materials, material)
	return nil
}

// fakeCourseFinder serves a single course.
type fakeCourseFinder struct {
	course *model.Course
}

func (f *fakeCourseFinder) FindByID(id uint) (*model.Course, error) {
	if f.course == nil || f.course.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.course, nil
}

func newTopicFixture() (*TopicService, *fakeTopicStore, *fakeNotificationStore) {
	store := newFakeTopicStore()
	notifStore := &fakeNotificationStore{}
	course := &model.Course{
		Title:     "Programming 101",
		Lecturers: model.IDList{10},
		Tutors:    model.IDList{11},
	}
	course.ID = 5
	finder := &fakeCourseFinder{course: course}
	svc := NewTopicService(store, finder, NewNotificationService(notifStore, nil))
	return svc, store, notifStore
}

func studentUser(id uint, name string) *model.User {
	u := &model.User{Name: name, Role: model.Student}
	u.ID = id
	return u
}

func TestCreateTopic(t *testing.T) {
	svc, store, notifStore := newTopicFixture()
	author := studentUser(1, "Thabo")

	topic, err := svc.Create(author, CreateTopicInput{
		Title:       "Stuck on recursion",
		Description: "Base case confusion",
		CourseID:    5,
		CourseName:  "Programming 101",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, store.createCalls, "creation is a single store write")
	assert.Equal(t, model.TopicOpen, topic.Status)
	assert.Equal(t, model.IDList{1}, topic.Subscribers, "author starts subscribed")
	assert.Equal(t, author.ID, topic.AuthorID)
	assert.Equal(t, author.Name, topic.AuthorName)

	// Course staff get notified, the author does not.
	require.Len(t, notifStore.batches, 1)
	recipients := NewIDSet()
	for _, n := range notifStore.batches[0] {
		recipients.Add(n.UserID)
	}
	assert.Equal(t, []uint{10, 11}, recipients.Values())
}

func TestCreateTopicNotifiesAuthorFollowers(t *testing.T) {
	svc, _, notifStore := newTopicFixture()
	author := studentUser(1, "Thabo")
	author.Subscribers = model.IDList{1, 7, 8}

	_, err := svc.Create(author, CreateTopicInput{Title: "Stuck on recursion", CourseID: 5})
	require.NoError(t, err)

	// Followers join the course staff in the audience. The author stays out
	// even though they sit in their own subscriber list here.
	require.Len(t, notifStore.batches, 1)
	recipients := NewIDSet()
	for _, n := range notifStore.batches[0] {
		recipients.Add(n.UserID)
	}
	assert.Equal(t, []uint{7, 8, 10, 11}, recipients.Values())
}

func TestReply(t *testing.T) {
	svc, store, notifStore := newTopicFixture()
	author := studentUser(1, "Thabo")
	topic, err := svc.Create(author, CreateTopicInput{Title: "Stuck on recursion", CourseID: 5})
	require.NoError(t, err)

	tutor := &model.User{Name: "Naledi", Role: model.Tutor}
	tutor.ID = 11
	reply, err := svc.Reply(tutor, topic.ID, "Check your base case")
	require.NoError(t, err)

	assert.Equal(t, topic.ID, reply.TopicID)
	assert.Equal(t, tutor.Name, reply.AuthorName)
	require.Len(t, store.replies, 1)

	// Reply fan-out reaches the subscribed author and the other staff
	// member, not the replying tutor.
	require.Len(t, notifStore.batches, 2)
	recipients := NewIDSet()
	for _, n := range notifStore.batches[1] {
		recipients.Add(n.UserID)
	}
	assert.Equal(t, []uint{1, 10}, recipients.Values())
}

func TestReplyOnClosedTopic(t *testing.T) {
	svc, _, _ := newTopicFixture()
	author := studentUser(1, "Thabo")
	topic, err := svc.Create(author, CreateTopicInput{Title: "Stuck on recursion"})
	require.NoError(t, err)

	require.NoError(t, svc.SetStatus(topic.ID, model.TopicClosed))

	_, err = svc.Reply(author, topic.ID, "one more thing")
	assert.ErrorIs(t, err, util.ErrTopicClosed)

	// Reopening lifts the block.
	require.NoError(t, svc.SetStatus(topic.ID, model.TopicReopened))
	_, err = svc.Reply(author, topic.ID, "one more thing")
	assert.NoError(t, err)
}

func TestSetStatusRejectsUnknown(t *testing.T) {
	svc, _, _ := newTopicFixture()
	author := studentUser(1, "Thabo")
	topic, err := svc.Create(author, CreateTopicInput{Title: "Stuck on recursion"})
	require.NoError(t, err)

	err = svc.SetStatus(topic.ID, model.TopicStatus("Archived"))
	assert.ErrorIs(t, err, util.ErrInvalidTopicStatus)
}

func TestSubscribeIsIdempotent(t *testing.T) {
	svc, store, _ := newTopicFixture()
	author := studentUser(1, "Thabo")
	topic, err := svc.Create(author, CreateTopicInput{Title: "Stuck on recursion"})
	require.NoError(t, err)

	require.NoError(t, svc.Subscribe(2, topic.ID))
	require.NoError(t, svc.Subscribe(2, topic.ID))
	assert.Equal(t, model.IDList{1, 2}, store.topics[topic.ID].Subscribers)

	require.NoError(t, svc.Unsubscribe(2, topic.ID))
	require.NoError(t, svc.Unsubscribe(2, topic.ID))
	assert.Equal(t, model.IDList{1}, store.topics[topic.ID].Subscribers)
}

func TestTopicNotFound(t *testing.T) {
	svc, _, _ := newTopicFixture()

	_, err := svc.Get(99)
	assert.ErrorIs(t, err, util.ErrTopicNotFound)

	err = svc.Subscribe(1, 99)
	assert.ErrorIs(t, err, util.ErrTopicNotFound)
}
