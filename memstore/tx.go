package memstore

import (
	"tp-forum-engine/engine"
	"tp-forum-engine/models"
	"tp-forum-engine/paths"
)

// WithPostTx holds the store lock for the whole of fn. Inserted posts only
// become visible when fn returns nil.
func (s *Store) WithPostTx(fn func(tx engine.PostTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &postTx{store: s}
	if err := fn(tx); err != nil {
		return err
	}

	for i := range tx.pending {
		post := tx.pending[i]
		s.posts[post.ID] = &post
		s.threadPosts[post.Thread] = append(s.threadPosts[post.Thread], &post)
	}
	return nil
}

type postTx struct {
	store   *Store
	pending models.Posts
}

func (tx *postTx) ResolveThread(h engine.ThreadHandle) (*models.ThreadRef, error) {
	thread, err := tx.store.findThread(h)
	if err != nil {
		return nil, err
	}
	return thread.Ref(), nil
}

func (tx *postTx) FindUserNickname(nickname string) (string, bool, error) {
	stored, ok := tx.store.findUser(nickname)
	return stored, ok, nil
}

func (tx *postTx) FindPostPath(threadID int32, postID int64) (paths.Path, bool, error) {
	post, ok := tx.store.posts[postID]
	if !ok || post.Thread != threadID {
		return nil, false, nil
	}
	return post.Path, true, nil
}

func (tx *postTx) InsertPosts(posts models.Posts) error {
	tx.pending = append(tx.pending, posts...)
	return nil
}

// WithVoteTx holds the store lock for the whole of fn. Vote and tally
// changes are applied only when fn returns nil.
func (s *Store) WithVoteTx(fn func(tx engine.VoteTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &voteTx{
		store:  s,
		votes:  make(map[voteKey]int32),
		deltas: make(map[int32]int32),
	}
	if err := fn(tx); err != nil {
		return err
	}

	for key, voice := range tx.votes {
		s.votes[key] = voice
	}
	for threadID, delta := range tx.deltas {
		s.threads[threadID].NumVotes += delta
	}
	return nil
}

type voteTx struct {
	store  *Store
	votes  map[voteKey]int32
	deltas map[int32]int32
}

func (tx *voteTx) LockThread(h engine.ThreadHandle) (*models.Thread, error) {
	thread, err := tx.store.findThread(h)
	if err != nil {
		return nil, err
	}
	return tx.snapshot(thread.ID), nil
}

func (tx *voteTx) FindUserNickname(nickname string) (string, bool, error) {
	stored, ok := tx.store.findUser(nickname)
	return stored, ok, nil
}

func (tx *voteTx) FindVoice(threadID int32, nickname string) (int32, bool, error) {
	key := voteKey{thread: threadID, nickname: fold(nickname)}
	if voice, ok := tx.votes[key]; ok {
		return voice, true, nil
	}
	voice, ok := tx.store.votes[key]
	return voice, ok, nil
}

func (tx *voteTx) InsertVote(threadID int32, vote *models.Vote) error {
	tx.votes[voteKey{thread: threadID, nickname: fold(vote.Nickname)}] = vote.Voice
	return nil
}

func (tx *voteTx) UpdateVote(threadID int32, vote *models.Vote) error {
	tx.votes[voteKey{thread: threadID, nickname: fold(vote.Nickname)}] = vote.Voice
	return nil
}

func (tx *voteTx) AddThreadVotes(threadID int32, delta int32) (*models.Thread, error) {
	tx.deltas[threadID] += delta
	return tx.snapshot(threadID), nil
}

func (tx *voteTx) snapshot(threadID int32) *models.Thread {
	thread := *tx.store.threads[threadID]
	thread.NumVotes += tx.deltas[threadID]
	return &thread
}
