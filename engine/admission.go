package engine

import (
	"tp-forum-engine/errs"
	"tp-forum-engine/models"
	"tp-forum-engine/paths"
)

const (
	PostParentConflictErrMessage = "parent post was created in another thread"
	PostAuthorNotFoundErrMessage = "post author not found"
)

// admission checks candidates of one batch against the thread and against
// the posts staged earlier in the same batch.
type admission struct {
	tx     PostTx
	thread *models.ThreadRef
	staged map[int64]paths.Path
	users  map[string]string

	parentConflictErr *errs.Error
	authorNotFoundErr *errs.Error
}

func newAdmission(tx PostTx, thread *models.ThreadRef, size int) *admission {
	return &admission{
		tx:                tx,
		thread:            thread,
		staged:            make(map[int64]paths.Path, size),
		users:             make(map[string]string),
		parentConflictErr: errs.NewParentConflictError(PostParentConflictErrMessage),
		authorNotFoundErr: errs.NewUserNotFoundError(PostAuthorNotFoundErrMessage),
	}
}

// parentPath returns the path a reply to parent extends, or nil for roots.
func (a *admission) parentPath(parent int64) (paths.Path, error) {
	if parent == 0 {
		return nil, nil
	}
	if path, ok := a.staged[parent]; ok {
		return path, nil
	}

	path, found, err := a.tx.FindPostPath(a.thread.ID, parent)
	if err != nil {
		return nil, errs.Wrap(err, "select parent path")
	}
	if !found {
		return nil, a.parentConflictErr
	}
	return path, nil
}

func (a *admission) author(nickname string) (string, error) {
	if stored, ok := a.users[nickname]; ok {
		return stored, nil
	}

	stored, found, err := a.tx.FindUserNickname(nickname)
	if err != nil {
		return "", errs.Wrap(err, "select post author")
	}
	if !found {
		return "", a.authorNotFoundErr
	}
	a.users[nickname] = stored
	return stored, nil
}

func (a *admission) stage(post *models.Post) {
	a.staged[post.ID] = post.Path
}
