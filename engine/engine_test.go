package engine_test

import (
	"sync"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tp-forum-engine/engine"
	"tp-forum-engine/errs"
	"tp-forum-engine/memstore"
	"tp-forum-engine/models"
	"tp-forum-engine/paths"
)

var batchTime = time.Date(2019, 3, 4, 5, 6, 7, 0, time.UTC)

type fixture struct {
	store  *memstore.Store
	thread *models.Thread
	other  *models.Thread
	writer *engine.PostWriter
	reader *engine.PostReader
	ledger *engine.VoteLedger
}

func newFixture(t *testing.T, allocator engine.Allocator) *fixture {
	store := memstore.New()
	store.AddUser("alice")
	store.AddUser("Bob")
	store.AddForum("pirates")

	thread, err := store.AddThread(models.Thread{
		Slug:   models.NewNullString("jolly-roger"),
		Title:  "Jolly Roger",
		Forum:  "pirates",
		Author: "alice",
	})
	require.NoError(t, err)
	other, err := store.AddThread(models.Thread{
		Title:  "Other",
		Forum:  "pirates",
		Author: "alice",
	})
	require.NoError(t, err)

	if allocator == nil {
		allocator = store
	}

	return &fixture{
		store:  store,
		thread: thread,
		other:  other,
		writer: engine.NewPostWriter(store, allocator).WithClock(func() time.Time { return batchTime }),
		reader: engine.NewPostReader(store, store),
		ledger: engine.NewVoteLedger(store),
	}
}

// queueAllocator hands out a fixed list of ids and counts how many it gave.
type queueAllocator struct {
	ids   []int64
	calls int
}

func (a *queueAllocator) NextID() (int64, error) {
	if a.calls >= len(a.ids) {
		return 0, errors.New("sequence exhausted")
	}
	id := a.ids[a.calls]
	a.calls++
	return id, nil
}

func post(author string, parent int64) models.Post {
	return models.Post{Author: author, Message: "message from " + author, Parent: parent}
}

func ids(posts models.Posts) []int64 {
	result := make([]int64, len(posts))
	for i := range posts {
		result[i] = posts[i].ID
	}
	return result
}

func (f *fixture) handle() engine.ThreadHandle {
	return engine.ThreadByID(f.thread.ID)
}

func (f *fixture) create(t *testing.T, posts ...models.Post) models.Posts {
	created, err := f.writer.CreatePosts(f.handle(), posts)
	require.NoError(t, err)
	return created
}

func TestCreatePostsBuildsPaths(t *testing.T) {
	f := newFixture(t, &queueAllocator{ids: []int64{101, 102, 103}})

	a := f.create(t, post("alice", 0))[0]
	b := f.create(t, post("Bob", 101))[0]
	c := f.create(t, post("alice", 102))[0]

	assert.Equal(t, paths.Path{101}, a.Path)
	assert.Equal(t, paths.Path{101, 102}, b.Path)
	assert.Equal(t, paths.Path{101, 102, 103}, c.Path)

	tree, err := f.reader.Tree(f.handle(), 10, engine.FirstPage{}, false)
	require.NoError(t, err)
	assert.Equal(t, []int64{101, 102, 103}, ids(tree))
}

func TestCreatePostsFillsThreadAttributes(t *testing.T) {
	f := newFixture(t, nil)

	created, err := f.writer.CreatePosts(engine.ThreadBySlug("JOLLY-ROGER"), models.Posts{
		post("BOB", 0),
		post("alice", 0),
	})
	require.NoError(t, err)
	require.Len(t, created, 2)

	for _, p := range created {
		assert.Equal(t, f.thread.ID, p.Thread)
		assert.Equal(t, "pirates", p.Forum)
		assert.False(t, p.IsEdited)
		assert.Equal(t, strfmt.DateTime(batchTime), p.Created)
	}
	assert.Equal(t, "Bob", created[0].Author)
	assert.Less(t, created[0].ID, created[1].ID)
}

func TestCreatePostsChainsWithinBatch(t *testing.T) {
	f := newFixture(t, &queueAllocator{ids: []int64{1, 2, 3}})

	created := f.create(t, post("alice", 0), post("Bob", 1), post("alice", 2))

	assert.Equal(t, paths.Path{1}, created[0].Path)
	assert.Equal(t, paths.Path{1, 2}, created[1].Path)
	assert.Equal(t, paths.Path{1, 2, 3}, created[2].Path)
}

func TestCreatePostsRejectsParentLaterInBatch(t *testing.T) {
	alloc := &queueAllocator{ids: []int64{1, 2, 3}}
	f := newFixture(t, alloc)

	_, err := f.writer.CreatePosts(f.handle(), models.Posts{post("alice", 2), post("Bob", 0)})
	assert.True(t, errs.Is(err, errs.ParentConflict))
	assert.Equal(t, 0, f.store.PostCount(f.thread.ID))
}

func TestCreatePostsRejectsParentFromOtherThread(t *testing.T) {
	f := newFixture(t, nil)

	foreign, err := f.writer.CreatePosts(engine.ThreadByID(f.other.ID), models.Posts{post("alice", 0)})
	require.NoError(t, err)

	_, err = f.writer.CreatePosts(f.handle(), models.Posts{post("Bob", foreign[0].ID)})
	assert.True(t, errs.Is(err, errs.ParentConflict))
	assert.Equal(t, 0, f.store.PostCount(f.thread.ID))
}

func TestCreatePostsIsAtomic(t *testing.T) {
	alloc := &queueAllocator{ids: []int64{1, 2, 3, 4}}
	f := newFixture(t, alloc)

	_, err := f.writer.CreatePosts(f.handle(), models.Posts{
		post("alice", 0),
		post("Bob", 999),
		post("alice", 0),
	})
	assert.True(t, errs.Is(err, errs.ParentConflict))
	assert.Equal(t, 0, f.store.PostCount(f.thread.ID))

	flat, err := f.reader.Flat(f.handle(), 10, engine.FirstPage{}, false)
	require.NoError(t, err)
	assert.Empty(t, flat)

	// the id burned by the first candidate is never handed out again
	created := f.create(t, post("alice", 0))
	assert.Equal(t, int64(2), created[0].ID)
}

func TestCreatePostsThreadNotFound(t *testing.T) {
	alloc := &queueAllocator{ids: []int64{1}}
	f := newFixture(t, alloc)

	_, err := f.writer.CreatePosts(engine.ThreadBySlug("missing"), models.Posts{post("alice", 0)})
	assert.True(t, errs.Is(err, errs.ThreadNotFound))
	assert.Equal(t, 0, alloc.calls)

	_, err = f.writer.CreatePosts(engine.ThreadByID(404), models.Posts{})
	assert.True(t, errs.Is(err, errs.ThreadNotFound))
}

func TestCreatePostsEmptyBatch(t *testing.T) {
	f := newFixture(t, nil)

	created, err := f.writer.CreatePosts(f.handle(), models.Posts{})
	require.NoError(t, err)
	assert.NotNil(t, created)
	assert.Empty(t, created)
}

func TestCreatePostsUnknownAuthor(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.writer.CreatePosts(f.handle(), models.Posts{post("alice", 0), post("nobody", 0)})
	assert.True(t, errs.Is(err, errs.UserNotFound))
	assert.Equal(t, 0, f.store.PostCount(f.thread.ID))
}

func TestCreatePostsInvalidFormat(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.writer.CreatePosts(f.handle(), models.Posts{{Author: "alice"}})
	assert.True(t, errs.Is(err, errs.InvalidFormat))
}

func TestCreatePostsAllocationFailure(t *testing.T) {
	failing := engine.AllocatorFunc(func() (int64, error) {
		return 0, errors.New("sequence unavailable")
	})
	f := newFixture(t, failing)

	_, err := f.writer.CreatePosts(f.handle(), models.Posts{post("alice", 0)})
	assert.True(t, errs.Is(err, errs.AllocationFailure))
	assert.Equal(t, "sequence unavailable", errors.Cause(err).Error())
	assert.Equal(t, 0, f.store.PostCount(f.thread.ID))
}

func TestCreatePostsConcurrently(t *testing.T) {
	f := newFixture(t, nil)
	root := f.create(t, post("alice", 0))[0]

	const writers = 8
	var wg sync.WaitGroup
	results := make([]models.Posts, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			created, err := f.writer.CreatePosts(f.handle(), models.Posts{
				post("alice", root.ID),
				post("Bob", root.ID),
			})
			assert.NoError(t, err)
			results[i] = created
		}(i)
	}
	wg.Wait()

	seen := map[int64]bool{root.ID: true}
	for _, batch := range results {
		for _, p := range batch {
			assert.False(t, seen[p.ID])
			seen[p.ID] = true
			assert.Equal(t, paths.Path{root.ID, p.ID}, p.Path)
		}
	}
	assert.Equal(t, 1+2*writers, f.store.PostCount(f.thread.ID))
}

func TestCreatePostsTimestampFollowsIDs(t *testing.T) {
	f := newFixture(t, nil)
	early := batchTime
	late := batchTime.Add(time.Second)

	reading := make(chan struct{})
	slow := engine.NewPostWriter(f.store, f.store).WithClock(func() time.Time {
		close(reading)
		time.Sleep(50 * time.Millisecond)
		return early
	})
	fast := engine.NewPostWriter(f.store, f.store).WithClock(func() time.Time { return late })

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := slow.CreatePosts(f.handle(), models.Posts{post("alice", 0)})
		assert.NoError(t, err)
	}()

	<-reading
	_, err := fast.CreatePosts(f.handle(), models.Posts{post("alice", 0)})
	require.NoError(t, err)
	wg.Wait()

	posts, err := f.reader.Flat(f.handle(), 10, engine.FirstPage{}, false)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, strfmt.DateTime(early), posts[0].Created)
	assert.Equal(t, int64(1), posts[0].ID)

	all, _ := readAll(t, f.reader.Flat, f.handle(), 1, false)
	assert.Equal(t, []int64{1, 2}, all)
}
