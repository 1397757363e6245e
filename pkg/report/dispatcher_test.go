package report

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/quill/pkg/auth"
	"github.com/platinummonkey/quill/pkg/observability"
	"github.com/platinummonkey/quill/pkg/posts"
	"github.com/platinummonkey/quill/pkg/storage"
)

func testLogger() *observability.Logger {
	return observability.NewLogger(observability.ErrorLevel, io.Discard)
}

// fakeSource serves fixed users and posts to dispatcher workers
type fakeSource struct {
	users map[int64]*auth.User
	posts map[int64]*posts.Post
}

func (s *fakeSource) GetUser(_ context.Context, id int64) (*auth.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return user, nil
}

func (s *fakeSource) GetPost(_ context.Context, id int64) (*posts.Post, error) {
	post, ok := s.posts[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return post, nil
}

type delivery struct {
	userID int64
	postID int64
	rep    Report
}

// recordingMailer captures deliveries for assertions
type recordingMailer struct {
	mu         sync.Mutex
	deliveries []delivery
	err        error
}

func (m *recordingMailer) SendPostReport(_ context.Context, user *auth.User, post *posts.Post, rep Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.deliveries = append(m.deliveries, delivery{userID: user.ID, postID: post.ID, rep: rep})
	return nil
}

func (m *recordingMailer) setErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *recordingMailer) all() []delivery {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]delivery, len(m.deliveries))
	copy(out, m.deliveries)
	return out
}

func waitForDeliveries(t *testing.T, mailer *recordingMailer, n int) []delivery {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		got := mailer.all()
		if len(got) >= n {
			return got
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for %d deliveries, got %d", n, len(got))
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestDispatcher_DeliversReport(t *testing.T) {
	source := &fakeSource{
		users: map[int64]*auth.User{1: {ID: 1, Email: "alice@example.com"}},
		posts: map[int64]*posts.Post{10: {ID: 10, Title: "T", Content: "one two two"}},
	}
	mailer := &recordingMailer{}
	d := NewDispatcher(source, mailer, 1, 4, nil, testLogger())
	d.Start()
	defer d.Stop()

	require.NoError(t, d.Schedule(1, 10))

	got := waitForDeliveries(t, mailer, 1)
	assert.Equal(t, int64(1), got[0].userID)
	assert.Equal(t, int64(10), got[0].postID)
	assert.Equal(t, 3, got[0].rep.WordCount)
	assert.Equal(t, map[string]int{"one": 1, "two": 2}, got[0].rep.WordHistogram)
}

func TestDispatcher_QueueFull(t *testing.T) {
	source := &fakeSource{users: map[int64]*auth.User{}, posts: map[int64]*posts.Post{}}
	mailer := &recordingMailer{}

	// Never started: jobs stay queued, so the second schedule overflows
	d := NewDispatcher(source, mailer, 1, 1, nil, testLogger())

	require.NoError(t, d.Schedule(1, 10))
	err := d.Schedule(1, 11)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "queue is full")
}

func TestDispatcher_MailerFailureDoesNotStopWorkers(t *testing.T) {
	source := &fakeSource{
		users: map[int64]*auth.User{1: {ID: 1, Email: "alice@example.com"}},
		posts: map[int64]*posts.Post{10: {ID: 10, Content: "x"}, 11: {ID: 11, Content: "y"}},
	}
	mailer := &recordingMailer{}
	mailer.setErr(errors.New("smtp down"))
	d := NewDispatcher(source, mailer, 1, 4, nil, testLogger())
	d.Start()

	require.NoError(t, d.Schedule(1, 10))
	d.Stop()
	require.Empty(t, mailer.all(), "failed delivery is dropped")

	// The worker survives the failure: the same pool keeps processing once
	// delivery recovers.
	mailer.setErr(nil)
	d2 := NewDispatcher(source, mailer, 1, 4, nil, testLogger())
	d2.Start()
	require.NoError(t, d2.Schedule(1, 11))
	d2.Stop()

	got := mailer.all()
	require.Len(t, got, 1)
	assert.Equal(t, int64(11), got[0].postID)
}

func TestDispatcher_StopDrainsQueue(t *testing.T) {
	source := &fakeSource{
		users: map[int64]*auth.User{1: {ID: 1, Email: "alice@example.com"}},
		posts: map[int64]*posts.Post{
			10: {ID: 10, Content: "a"},
			11: {ID: 11, Content: "b"},
			12: {ID: 12, Content: "c"},
		},
	}
	mailer := &recordingMailer{}
	d := NewDispatcher(source, mailer, 2, 8, nil, testLogger())
	d.Start()

	for _, id := range []int64{10, 11, 12} {
		require.NoError(t, d.Schedule(1, id))
	}
	d.Stop()

	assert.Len(t, mailer.all(), 3, "all queued jobs ran before Stop returned")
}

func TestDispatcher_MissingPostLogsAndContinues(t *testing.T) {
	source := &fakeSource{
		users: map[int64]*auth.User{1: {ID: 1, Email: "alice@example.com"}},
		posts: map[int64]*posts.Post{10: {ID: 10, Content: "x"}},
	}
	mailer := &recordingMailer{}
	d := NewDispatcher(source, mailer, 1, 4, nil, testLogger())
	d.Start()

	require.NoError(t, d.Schedule(1, 999))
	require.NoError(t, d.Schedule(1, 10))
	d.Stop()

	got := mailer.all()
	require.Len(t, got, 1)
	assert.Equal(t, int64(10), got[0].postID)
}

func TestDispatcher_StopIsIdempotent(t *testing.T) {
	source := &fakeSource{users: map[int64]*auth.User{}, posts: map[int64]*posts.Post{}}
	d := NewDispatcher(source, &recordingMailer{}, 1, 4, nil, testLogger())
	d.Start()
	d.Stop()
	d.Stop()
}
