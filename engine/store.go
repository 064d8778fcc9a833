package engine

import (
	"tp-forum-engine/models"
	"tp-forum-engine/paths"
)

// ThreadResolver turns a handle into the canonical thread. Unknown handles
// fail with errs.ThreadNotFound.
type ThreadResolver interface {
	ResolveThread(h ThreadHandle) (*models.ThreadRef, error)
}

// PostTx is the transactional view used while admitting and inserting a
// batch of posts.
type PostTx interface {
	ThreadResolver

	// FindUserNickname returns the stored spelling of nickname.
	FindUserNickname(nickname string) (string, bool, error)

	// FindPostPath returns the path of postID if it belongs to threadID.
	FindPostPath(threadID int32, postID int64) (paths.Path, bool, error)

	// InsertPosts persists fully built posts in order.
	InsertPosts(posts models.Posts) error
}

type PostWriteStore interface {
	// WithPostTx runs fn in a transaction that commits only when fn
	// returns nil.
	WithPostTx(fn func(tx PostTx) error) error
}

type PostReadStore interface {
	SelectPosts(sel *PostsSelect) (models.Posts, error)
}

// VoteTx is the transactional view of the vote ledger. LockThread must
// serialize concurrent vote transactions on the same thread.
type VoteTx interface {
	LockThread(h ThreadHandle) (*models.Thread, error)
	FindUserNickname(nickname string) (string, bool, error)
	FindVoice(threadID int32, nickname string) (int32, bool, error)
	InsertVote(threadID int32, vote *models.Vote) error
	UpdateVote(threadID int32, vote *models.Vote) error
	AddThreadVotes(threadID int32, delta int32) (*models.Thread, error)
}

type VoteStore interface {
	WithVoteTx(fn func(tx VoteTx) error) error
}
