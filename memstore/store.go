// Package memstore keeps users, threads, posts and votes in process memory.
// It implements the engine store interfaces with the same semantics as the
// PostgreSQL repositories and serializes all transactions on one mutex.
package memstore

import (
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"tp-forum-engine/engine"
	"tp-forum-engine/errs"
	"tp-forum-engine/models"
)

const (
	ThreadNotFoundErrMessage       = "thread not found"
	ThreadForumNotFoundErrMessage  = "thread forum not found"
	ThreadAuthorNotFoundErrMessage = "thread author not found"
	ThreadSlugDuplicateErrMessage  = "thread slug duplicate"
)

type voteKey struct {
	thread   int32
	nickname string
}

type Store struct {
	mu sync.Mutex

	users       map[string]string
	forums      map[string]string
	threads     map[int32]*models.Thread
	threadSlugs map[string]int32
	posts       map[int64]*models.Post
	threadPosts map[int32][]*models.Post
	votes       map[voteKey]int32

	lastThreadID int32
	lastPostID   int64

	threadNotFoundErr *errs.Error
}

func New() *Store {
	return &Store{
		users:             make(map[string]string),
		forums:            make(map[string]string),
		threads:           make(map[int32]*models.Thread),
		threadSlugs:       make(map[string]int32),
		posts:             make(map[int64]*models.Post),
		threadPosts:       make(map[int32][]*models.Post),
		votes:             make(map[voteKey]int32),
		threadNotFoundErr: errs.NewThreadNotFoundError(ThreadNotFoundErrMessage),
	}
}

// fold mirrors the case-insensitive CITEXT columns of the SQL schema.
func fold(s string) string {
	return strings.ToLower(s)
}

func (s *Store) AddUser(nickname string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[fold(nickname)] = nickname
}

func (s *Store) AddForum(slug string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forums[fold(slug)] = slug
}

// AddThread stores thread under a new id. Forum and author must exist.
func (s *Store) AddThread(thread models.Thread) (*models.Thread, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	forum, ok := s.forums[fold(thread.Forum)]
	if !ok {
		return nil, errs.NewError(errs.StoreFailure, http.StatusNotFound, ThreadForumNotFoundErrMessage)
	}
	author, ok := s.users[fold(thread.Author)]
	if !ok {
		return nil, errs.NewUserNotFoundError(ThreadAuthorNotFoundErrMessage)
	}
	if thread.Slug.Valid {
		if _, taken := s.threadSlugs[fold(thread.Slug.String)]; taken {
			return nil, errs.NewError(errs.StoreFailure, http.StatusConflict, ThreadSlugDuplicateErrMessage)
		}
	}

	s.lastThreadID++
	thread.ID = s.lastThreadID
	thread.Forum = forum
	thread.Author = author
	thread.NumVotes = 0
	if !thread.Created.Valid {
		thread.Created = models.NewNullTimestamp(time.Now().UTC())
	}

	stored := thread
	s.threads[thread.ID] = &stored
	if thread.Slug.Valid {
		s.threadSlugs[fold(thread.Slug.String)] = thread.ID
	}
	return &thread, nil
}

// NextID is the in-memory counterpart of the post id sequence. It does not
// take the store lock, so it may be called from inside a transaction.
func (s *Store) NextID() (int64, error) {
	return atomic.AddInt64(&s.lastPostID, 1), nil
}

func (s *Store) ResolveThread(h engine.ThreadHandle) (*models.ThreadRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	thread, err := s.findThread(h)
	if err != nil {
		return nil, err
	}
	return thread.Ref(), nil
}

// Thread returns a copy of the stored thread.
func (s *Store) Thread(h engine.ThreadHandle) (*models.Thread, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	thread, err := s.findThread(h)
	if err != nil {
		return nil, err
	}
	copied := *thread
	return &copied, nil
}

// VoteCount reports how many vote rows a thread has.
func (s *Store) VoteCount(threadID int32) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for key := range s.votes {
		if key.thread == threadID {
			n++
		}
	}
	return n
}

// PostCount reports how many posts a thread has.
func (s *Store) PostCount(threadID int32) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.threadPosts[threadID])
}

func (s *Store) findThread(h engine.ThreadHandle) (*models.Thread, error) {
	if slug, ok := h.Slug(); ok {
		id, found := s.threadSlugs[fold(slug)]
		if !found {
			return nil, s.threadNotFoundErr
		}
		return s.threads[id], nil
	}

	id, _ := h.ID()
	thread, found := s.threads[id]
	if !found {
		return nil, s.threadNotFoundErr
	}
	return thread, nil
}

func (s *Store) findUser(nickname string) (string, bool) {
	stored, ok := s.users[fold(nickname)]
	return stored, ok
}
