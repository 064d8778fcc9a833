package engine

import (
	"time"

	"github.com/go-openapi/strfmt"

	"tp-forum-engine/errs"
	"tp-forum-engine/models"
	"tp-forum-engine/paths"
)

// PostWriter inserts batches of replies into a thread.
type PostWriter struct {
	store     PostWriteStore
	allocator Allocator
	validator *models.PostValidator
	now       func() time.Time
}

func NewPostWriter(store PostWriteStore, allocator Allocator) *PostWriter {
	return &PostWriter{
		store:     store,
		allocator: allocator,
		validator: models.NewPostValidator(),
		now:       time.Now,
	}
}

// WithClock replaces the source of the batch timestamp.
func (w *PostWriter) WithClock(now func() time.Time) *PostWriter {
	w.now = now
	return w
}

// CreatePosts inserts candidates as one unit, in submission order. A
// candidate may reply to a post created earlier in the same batch. Either
// every candidate is persisted or none is; ids allocated for an aborted
// batch are not reused. The batch timestamp is taken inside the store
// transaction and shared by every post of the batch.
func (w *PostWriter) CreatePosts(h ThreadHandle, candidates models.Posts) (models.Posts, error) {
	for i := range candidates {
		if err := w.validator.Validate(&candidates[i]); err != nil {
			return nil, err
		}
	}

	posts := make(models.Posts, len(candidates))
	copy(posts, candidates)

	err := w.store.WithPostTx(func(tx PostTx) error {
		// read inside the transaction so created follows id order
		created := strfmt.DateTime(w.now().UTC().Round(time.Microsecond))

		thread, err := tx.ResolveThread(h)
		if err != nil {
			return err
		}

		adm := newAdmission(tx, thread, len(posts))
		for i := range posts {
			if err := w.admit(adm, &posts[i], created); err != nil {
				return err
			}
		}

		if len(posts) == 0 {
			return nil
		}
		return errs.Wrap(tx.InsertPosts(posts), "insert posts")
	})
	if err != nil {
		return nil, err
	}

	return posts, nil
}

func (w *PostWriter) admit(adm *admission, post *models.Post, created strfmt.DateTime) error {
	parentPath, err := adm.parentPath(post.Parent)
	if err != nil {
		return err
	}

	author, err := adm.author(post.Author)
	if err != nil {
		return err
	}

	id, err := w.allocator.NextID()
	if err != nil {
		if errs.Is(err, errs.AllocationFailure) {
			return err
		}
		return errs.NewAllocationError(err)
	}

	post.ID = id
	if parentPath == nil {
		post.Path = paths.Root(id)
	} else {
		post.Path = parentPath.Child(id)
	}
	post.Author = author
	post.Thread = adm.thread.ID
	post.Forum = adm.thread.Forum
	post.Created = created
	post.IsEdited = false

	adm.stage(post)
	return nil
}
