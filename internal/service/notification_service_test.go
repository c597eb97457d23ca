package service

import (
	"testing"

	"campuslearn_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNotificationStore records every batch it receives.
type fakeNotificationStore struct {
	batches  [][]model.Notification
	failNext error
}

func (f *fakeNotificationStore) CreateBatch(notifications []model.Notification) error {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}
	f.batches = append(f.batches, notifications)
	return nil
}

func (f *fakeNotificationStore) ListByUser(userID uint, page, limit int) ([]model.Notification, int64, error) {
	var out []model.Notification
	for _, batch := range f.batches {
		for _, n := range batch {
			if n.UserID == userID {
				out = append(out, n)
			}
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeNotificationStore) CountUnread(userID uint) (int64, error) {
	_, total, _ := f.ListByUser(userID, 1, 100)
	return total, nil
}

func (f *fakeNotificationStore) MarkRead(id, userID uint) error { return nil }
func (f *fakeNotificationStore) MarkAllRead(userID uint) error  { return nil }

func TestRecipients(t *testing.T) {
	tests := []struct {
		name        string
		actor       uint
		subscribers []uint
		staff       []uint
		want        []uint
	}{
		{name: "actor excluded from subscribers", actor: 1, subscribers: []uint{1, 2, 3}, want: []uint{2, 3}},
		{name: "actor excluded from staff", actor: 4, subscribers: []uint{2}, staff: []uint{4, 5}, want: []uint{2, 5}},
		{name: "union deduplicates", actor: 1, subscribers: []uint{2, 3}, staff: []uint{3, 4}, want: []uint{2, 3, 4}},
		{name: "actor only", actor: 7, subscribers: []uint{7}, staff: []uint{7}, want: []uint{}},
		{name: "empty inputs", actor: 1, want: []uint{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recipients(tt.actor, tt.subscribers, tt.staff)
			assert.Equal(t, tt.want, got)

			// The actor never receives their own event.
			for _, id := range got {
				assert.NotEqual(t, tt.actor, id)
			}
		})
	}
}

func TestFanoutWritesOneBatch(t *testing.T) {
	store := &fakeNotificationStore{}
	svc := NewNotificationService(store, nil)

	err := svc.Fanout(1, []uint{1, 2, 3}, []uint{4}, "New topic: Recursion", "/topics/9")
	require.NoError(t, err)

	require.Len(t, store.batches, 1, "fan-out is a single batch write")
	batch := store.batches[0]
	require.Len(t, batch, 3)

	seen := NewIDSet()
	for _, n := range batch {
		seen.Add(n.UserID)
		assert.Equal(t, "New topic: Recursion", n.Text)
		assert.Equal(t, "/topics/9", n.Link)
		assert.False(t, n.Read)
	}
	assert.Equal(t, []uint{2, 3, 4}, seen.Values())
}

func TestFanoutNoRecipientsSkipsStore(t *testing.T) {
	store := &fakeNotificationStore{}
	svc := NewNotificationService(store, nil)

	err := svc.Fanout(1, []uint{1}, nil, "text", "/topics/1")
	require.NoError(t, err)
	assert.Empty(t, store.batches, "empty recipient set must not hit the store")
}

func TestNotify(t *testing.T) {
	store := &fakeNotificationStore{}
	svc := NewNotificationService(store, nil)

	require.NoError(t, svc.Notify(8, "Your submission was graded: 85.0", "/assignments/3"))

	list, total, err := svc.List(8, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Your submission was graded: 85.0", list[0].Text)
}
